// Package sanitize strips markup from user-supplied course text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Text removes every HTML element, unescapes entities bluemonday produced
// and trims surrounding whitespace. It is safe for concurrent use.
type Text struct {
	policy *bluemonday.Policy
}

func NewText() *Text {
	return &Text{policy: bluemonday.StrictPolicy()}
}

func (t *Text) Clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(t.policy.Sanitize(s)))
}
