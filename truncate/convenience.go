package truncate

import (
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/readmegen/tokens"
)

// ToTokens truncates text to fit within the specified token limit.
// Uses end truncation with the default estimating counter.
func ToTokens(text string, maxTokens int) string {
	result, _ := NewFromEnd(tokens.NewEstimatingCounter()).Truncate(text, maxTokens)
	return result
}

// ToLines truncates text to a maximum number of lines.
func ToLines(text string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}

	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}

	return strings.Join(lines[:maxLines], "\n") + "\n..."
}

// ToLength truncates text to a maximum character length.
// Properly handles UTF-8 by counting runes, not bytes.
func ToLength(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runeCount := utf8.RuneCountInString(text)
	if runeCount <= maxLen {
		return text
	}

	runes := []rune(text)
	if maxLen < 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
