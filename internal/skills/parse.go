// Package skills turns free-text model replies into clean lists of skills.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/skillsculpt/internal/llm"
)

var (
	// labelPrefix matches an introductory "Anything:" on the first line.
	labelPrefix = regexp.MustCompile(`^.*:\s*`)
	// bulletPrefix matches list markers at the start of each line.
	bulletPrefix = regexp.MustCompile(`(?m)^\s*(?:[-*•]|\d+[.)])\s*`)
	separators   = regexp.MustCompile(`,|\r?\n`)
)

// ParseSuggestions splits a model reply into individual skills.
//
// A leading "label:" on the first line and per-line bullet markers are
// removed, the remainder is split on commas and line breaks, and every token
// is trimmed. Empty tokens are dropped.
func ParseSuggestions(text string) []string {
	text = llm.StripCodeFence(text)
	if text == "" {
		return []string{}
	}

	cleaned := labelPrefix.ReplaceAllString(text, "")
	cleaned = bulletPrefix.ReplaceAllString(cleaned, "")

	parts := separators.Split(cleaned, -1)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			result = append(result, skill)
		}
	}
	return result
}

// FilterExisting drops suggestions the user already lists and repeated
// suggestions, comparing case-insensitively. Order is preserved.
func FilterExisting(suggested, existing []string) []string {
	seen := make(map[string]struct{}, len(suggested)+len(existing))
	for _, skill := range existing {
		seen[normalize(skill)] = struct{}{}
	}

	result := make([]string, 0, len(suggested))
	for _, skill := range suggested {
		key := normalize(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, skill)
	}
	return result
}

func normalize(skill string) string {
	return strings.ToLower(strings.Join(strings.Fields(skill), " "))
}
