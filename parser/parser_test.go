package parser

import (
	"reflect"
	"testing"
)

func TestExtractCode(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name     string
		response string
		language string
		expected string
	}{
		{
			name:     "json block",
			response: "Here you go:\n```json\n{\"a\": 1}\n```\nDone.",
			language: "json",
			expected: `{"a": 1}`,
		},
		{
			name:     "any language",
			response: "```go\nfunc main() {}\n```",
			language: "",
			expected: "func main() {}",
		},
		{
			name:     "no match",
			response: "plain text only",
			language: "json",
			expected: "",
		},
		{
			name:     "wrong language skipped",
			response: "```python\nprint(1)\n```",
			language: "json",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ExtractCode(tt.response, tt.language); got != tt.expected {
				t.Errorf("ExtractCode = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name     string
		response string
		expected []map[string]any
	}{
		{
			name:     "fenced json array",
			response: "```json\n[{\"name\": \"CLI\"}, {\"name\": \"API\"}]\n```",
			expected: []map[string]any{{"name": "CLI"}, {"name": "API"}},
		},
		{
			name:     "unlabelled fence",
			response: "```\n[{\"name\": \"CLI\"}]\n```",
			expected: []map[string]any{{"name": "CLI"}},
		},
		{
			name:     "inline array",
			response: "Sure! [{\"name\": \"CLI\"}] Hope that helps.",
			expected: []map[string]any{{"name": "CLI"}},
		},
		{
			name:     "no array",
			response: "there is nothing structured here",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ExtractJSONArray(tt.response)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractJSONArray = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestExtractYAML(t *testing.T) {
	p := NewParser()

	got := p.ExtractYAML("```yaml\nname: readmegen\ncount: 2\n```")
	if len(got) != 1 {
		t.Fatalf("expected 1 yaml block, got %d", len(got))
	}
	if got[0]["name"] != "readmegen" {
		t.Errorf("unexpected yaml content: %v", got[0])
	}
}

func TestSentence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already clean",
			input:    "Parses config files.",
			expected: "Parses config files.",
		},
		{
			name:     "quoted",
			input:    `"Parses config files."`,
			expected: "Parses config files.",
		},
		{
			name:     "missing period",
			input:    "Parses config files",
			expected: "Parses config files.",
		},
		{
			name:     "whitespace collapsed",
			input:    "Parses   config\n\nfiles.",
			expected: "Parses config files.",
		},
		{
			name:     "backticks stripped",
			input:    "`Parses config files`",
			expected: "Parses config files.",
		},
		{
			name:     "question mark kept",
			input:    "What does it do?",
			expected: "What does it do?",
		},
		{
			name:     "empty",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sentence(tt.input); got != tt.expected {
				t.Errorf("Sentence(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
