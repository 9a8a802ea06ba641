package parser

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Sentence normalizes a model-generated summary into a clean sentence:
// surrounding quotes and stray fences are stripped, whitespace is collapsed,
// and a trailing period is added if no terminal punctuation is present.
func Sentence(text string) string {
	s := strings.TrimSpace(text)
	s = strings.Trim(s, "`")
	s = strings.Trim(s, `"'`)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
	default:
		s += "."
	}
	return s
}
