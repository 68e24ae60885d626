package utils

import (
	"regexp"
	"strings"
)

// TrimOrEmpty normalizes user input.
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// FirstNonEmpty returns the first argument that is not blank after trimming.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

var codeFence = regexp.MustCompile("```(?:json)?\\s*")

// StripCodeFences removes markdown ``` / ```json fences a model may wrap
// around its JSON.
func StripCodeFences(s string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(s, ""))
}
