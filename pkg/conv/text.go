package conv

import (
	"strings"

	"github.com/inbucket/html2text"
)

// HTMLToText strips tags and decodes entities. Input that fails to parse is
// returned trimmed but otherwise untouched.
func HTMLToText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	text, err := html2text.FromString(s, html2text.Options{TextOnly: true})
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(text)
}
