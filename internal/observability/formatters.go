// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
	// maxPromptLines bounds how much of a prompt is echoed
	maxPromptLines = 12
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Long lines are
// wrapped rather than cut so enhanced text stays readable.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, boxWidth-4) {
			fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, wrapped)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap splits line into chunks of at most width runes, breaking on spaces when possible.
func wrap(line string, width int) []string {
	runes := []rune(line)
	if len(runes) <= width {
		return []string{line}
	}

	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

// PrintRequest outputs what is about to be sent to the model.
func (p *Printer) PrintRequest(category, model string, streaming bool, prompt string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Category: %s\n", category))
	sb.WriteString(fmt.Sprintf("Model:    %s\n", model))
	mode := "single call"
	if streaming {
		mode = "streamed"
	}
	sb.WriteString(fmt.Sprintf("Mode:     %s\n", mode))
	sb.WriteString("\n")

	lines := strings.Split(strings.TrimSpace(prompt), "\n")
	count := min(len(lines), maxPromptLines)
	sb.WriteString(strings.Join(lines[:count], "\n"))
	if len(lines) > maxPromptLines {
		sb.WriteString(fmt.Sprintf("\n... and %d more lines", len(lines)-maxPromptLines))
	}

	p.printBox("MODEL REQUEST", sb.String())
}

// PrintEnhancement outputs the original text next to the model's rewrite.
func (p *Printer) PrintEnhancement(original, enhanced string) {
	var sb strings.Builder
	sb.WriteString("Original:\n")
	sb.WriteString(strings.TrimSpace(original))
	sb.WriteString("\n\nEnhanced:\n")
	sb.WriteString(strings.TrimSpace(enhanced))

	p.printBox("ENHANCEMENT", sb.String())
}

// PrintSkillSuggestions outputs the parsed suggestions and how many were
// dropped because the resume already lists them.
func (p *Printer) PrintSkillSuggestions(parsed, kept []string) {
	if len(parsed) == 0 {
		p.printBox("SKILL SUGGESTIONS", "The model suggested no skills.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Parsed %d, kept %d new:\n\n", len(parsed), len(kept)))

	count := min(len(kept), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", kept[i]))
	}
	if len(kept) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(kept)-maxItemsToShow))
	}
	if dropped := len(parsed) - len(kept); dropped > 0 {
		sb.WriteString(fmt.Sprintf("\n%d already listed or repeated", dropped))
	}

	p.printBox("SKILL SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}
