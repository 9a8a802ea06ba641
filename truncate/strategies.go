package truncate

import "strings"

// truncateEnd keeps the longest head of the text that fits.
func (t *Truncator) truncateEnd(text string, maxTokens int) string {
	markerTokens := t.codec.Count(t.marker)
	target := maxTokens - markerTokens
	if target <= 0 {
		return t.marker
	}

	head := t.codec.Truncate(text, target)
	if head == "" {
		return t.marker
	}
	return head + t.marker
}

// truncateMiddle keeps the head and tail, dropping the middle.
func (t *Truncator) truncateMiddle(text string, maxTokens int) string {
	markerTokens := t.codec.Count(t.marker)
	target := maxTokens - markerTokens
	if target <= 0 {
		return t.marker
	}

	half := target / 2
	head := t.codec.Truncate(text, half)
	tail := t.codec.TruncateTail(text, target-half)

	// Guard against head and tail overlapping on short inputs.
	if len(head)+len(tail) >= len(text) {
		return t.codec.Truncate(text, target)
	}

	var sb strings.Builder
	sb.WriteString(head)
	sb.WriteString(t.marker)
	sb.WriteString(tail)
	return sb.String()
}

// truncateStart keeps the longest tail of the text that fits.
func (t *Truncator) truncateStart(text string, maxTokens int) string {
	markerTokens := t.codec.Count(t.marker)
	target := maxTokens - markerTokens
	if target <= 0 {
		return t.marker
	}

	tail := t.codec.TruncateTail(text, target)
	if tail == "" {
		return t.marker
	}
	return t.marker + tail
}
