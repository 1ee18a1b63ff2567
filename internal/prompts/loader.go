// Package prompts builds the instruction text sent to the generative model.
// Templates are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.json
var promptFiles embed.FS

// Set is an immutable collection of named templates loaded from one file.
type Set map[string]string

// LoadFile parses an embedded prompt file.
// The filename should not include the path (e.g., "enhancement.json").
func LoadFile(filename string) (Set, error) {
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	return Set(prompts), nil
}

// Get retrieves a template by key.
func (s Set) Get(key string) (string, error) {
	prompt, exists := s[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// Keys returns the template keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Format replaces placeholders in the form {{.Key}} with values from data.
// Substitution is a single pass over the template: a value that itself
// contains a placeholder is inserted literally and never expanded.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
