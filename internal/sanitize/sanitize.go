// Package sanitize normalizes raw model output into a candidate
// document. It only reshapes text; validation lives in the gate.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	openingFence = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\r?\n?")
	doctype      = regexp.MustCompile(`(?i)<!doctype html>`)
)

// Sanitize trims a raw model response down to the candidate document:
// code-fence wrappers are unwrapped, anything the model emitted before
// the doctype declaration is discarded, and a leading byte-order mark
// is stripped. Empty input yields an empty string. Idempotent.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	s = openingFence.ReplaceAllString(s, "")
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	s = strings.TrimSpace(s)

	// Models often prefix commentary; cut straight to the document when
	// the doctype appears anywhere in the text.
	if loc := doctype.FindStringIndex(s); loc != nil {
		s = s[loc[0]:]
	}

	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}
