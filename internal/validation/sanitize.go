package validation

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every HTML element and attribute. Free-text fields are
// sanitized before persistence rather than escaped at render time, since
// the stored data may later be rendered by consumers we don't control.
var strict = bluemonday.StrictPolicy()

// Sanitize removes all markup from s and trims surrounding whitespace.
func Sanitize(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
