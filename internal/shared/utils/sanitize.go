package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var plainTextPolicy = bluemonday.StrictPolicy()

// SanitizeComment strips markup from operator supplied free text. The policy
// escapes entities on output; they are decoded again so the stored comment
// keeps the characters the operator typed.
func SanitizeComment(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainTextPolicy.Sanitize(s)))
}
