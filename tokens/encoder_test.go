package tokens

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEncoder_UnknownScheme(t *testing.T) {
	_, err := NewEncoder("not-a-real-encoding")
	if err == nil {
		t.Fatal("expected error for unknown encoding")
	}

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError, got %T", err)
	}
	if encErr.Scheme != "not-a-real-encoding" {
		t.Errorf("expected scheme in error, got %q", encErr.Scheme)
	}
}

// requireEncoder skips the test when the encoding's BPE vocabulary cannot
// be loaded (e.g. no network access to fetch it on first use).
func requireEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder(DefaultEncoding)
	if err != nil {
		t.Skipf("encoding %s unavailable: %v", DefaultEncoding, err)
	}
	return enc
}

func TestEncoder_CountDeterministic(t *testing.T) {
	enc := requireEncoder(t)

	text := "The quick brown fox jumps over the lazy dog."
	first := enc.Count(text)
	if first <= 0 {
		t.Fatalf("expected positive count, got %d", first)
	}
	for i := 0; i < 3; i++ {
		if got := enc.Count(text); got != first {
			t.Fatalf("count changed between calls: %d vs %d", first, got)
		}
	}
}

func TestEncoder_TruncateAtTokenBoundary(t *testing.T) {
	enc := requireEncoder(t)

	text := strings.Repeat("package main\nfunc main() { println(42) }\n", 100)
	total := enc.Count(text)

	tests := []struct {
		name      string
		maxTokens int
	}{
		{name: "zero", maxTokens: 0},
		{name: "one token", maxTokens: 1},
		{name: "half", maxTokens: total / 2},
		{name: "exact", maxTokens: total},
		{name: "over", maxTokens: total + 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Truncate(text, tt.maxTokens)

			if count := enc.Count(got); count > tt.maxTokens {
				t.Errorf("truncated count %d exceeds budget %d", count, tt.maxTokens)
			}
			if tt.maxTokens >= total && got != text {
				t.Error("text within budget should be returned unchanged")
			}
		})
	}
}

func TestEncoder_TruncateMonotonic(t *testing.T) {
	enc := requireEncoder(t)
	text := strings.Repeat("summarize this repository file by file ", 40)

	prev := -1
	for budget := 0; budget <= 80; budget += 4 {
		count := enc.Count(enc.Truncate(text, budget))
		if count < prev {
			t.Fatalf("count decreased from %d to %d at budget %d", prev, count, budget)
		}
		prev = count
	}
}

func TestEncoder_TruncateTail(t *testing.T) {
	enc := requireEncoder(t)
	text := strings.Repeat("alpha beta gamma delta ", 60)

	got := enc.TruncateTail(text, 20)
	if count := enc.Count(got); count > 20 {
		t.Errorf("tail count %d exceeds budget 20", count)
	}
	if !strings.HasSuffix(text, got) {
		t.Error("tail output is not a suffix of the input")
	}
}
