package security

import (
	"html"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from untrusted text before it is displayed.
// It is safe for concurrent use.
type Sanitizer struct {
	text *bluemonday.Policy
	rich *bluemonday.Policy
}

// NewSanitizer builds the text (no markup) and rich (UGC) policies.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		text: bluemonday.StrictPolicy(),
		rich: bluemonday.UGCPolicy(),
	}
}

// Text removes all tags and collapses whitespace. The result still needs
// HTML escaping when written into markup.
func (s *Sanitizer) Text(input string) string {
	return NormalizeWhitespace(html.UnescapeString(s.text.Sanitize(input)))
}

// HTML keeps basic formatting and links, dropping scripts, handlers and
// styles.
func (s *Sanitizer) HTML(input string) string {
	return s.rich.Sanitize(input)
}

// NormalizeWhitespace trims s and collapses inner whitespace runs.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Truncate shortens s to at most maxRunes runes, adding "..." when cut.
func Truncate(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(r[:maxRunes])
	}
	return string(r[:maxRunes-3]) + "..."
}
