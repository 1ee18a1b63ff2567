package llm

import "strings"

// chunkAggregator concatenates streamed text chunks in arrival order.
type chunkAggregator struct {
	sb     strings.Builder
	chunks int
}

func (a *chunkAggregator) Add(text string) {
	if text == "" {
		return
	}
	a.chunks++
	a.sb.WriteString(text)
}

func (a *chunkAggregator) Chunks() int {
	return a.chunks
}

func (a *chunkAggregator) String() string {
	return a.sb.String()
}

// finish trims the generated text and reports an EmptyResponseError when
// nothing is left.
func finish(text, model string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &EmptyResponseError{Model: model}
	}
	return text, nil
}

// StripCodeFence removes a surrounding markdown code block that models often
// add even when asked for plain text.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip a language identifier on the first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
