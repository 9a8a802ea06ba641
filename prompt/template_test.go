package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/readmegen/tokens"
)

func TestNewLibrary_Defaults(t *testing.T) {
	lib, err := NewLibrary(DefaultTemplates())
	if err != nil {
		t.Fatalf("default templates must validate: %v", err)
	}

	for _, id := range IDs {
		if _, err := lib.Template(id); err != nil {
			t.Errorf("missing template %q: %v", id, err)
		}
	}
}

func TestNewLibrary_RejectsMissingTemplate(t *testing.T) {
	templates := DefaultTemplates()
	delete(templates, Slogan)

	_, err := NewLibrary(templates)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestNewLibrary_RejectsMissingSlot(t *testing.T) {
	templates := DefaultTemplates()
	templates[CodeSummary] = "Summarize {{path}} please." // no {{code}} slot

	_, err := NewLibrary(templates)
	if !errors.Is(err, ErrMissingSlot) {
		t.Fatalf("expected ErrMissingSlot, got %v", err)
	}
}

func TestLibrary_Render(t *testing.T) {
	lib, err := NewLibrary(DefaultTemplates())
	if err != nil {
		t.Fatal(err)
	}

	got, err := lib.Render(CodeSummary, map[string]any{
		"path": "internal/server.go",
		"code": "package internal",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "internal/server.go") {
		t.Error("rendered prompt missing path")
	}
	if !strings.Contains(got, "package internal") {
		t.Error("rendered prompt missing code")
	}
}

func TestLibrary_RenderMissingRequiredVar(t *testing.T) {
	lib, err := NewLibrary(DefaultTemplates())
	if err != nil {
		t.Fatal(err)
	}

	_, err = lib.Render(CodeSummary, map[string]any{"path": "a.go"})
	if !errors.Is(err, ErrMissingSlot) {
		t.Fatalf("expected ErrMissingSlot, got %v", err)
	}
}

func TestLibrary_RenderOptionalSlotDefaultsEmpty(t *testing.T) {
	lib, err := NewLibrary(DefaultTemplates())
	if err != nil {
		t.Fatal(err)
	}

	// The features template declares {{schema}}, which is optional.
	got, err := lib.Render(Features, map[string]any{"summaries": "- a.go: does things"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "does things") {
		t.Error("rendered prompt missing summaries")
	}
}

func TestLibrary_RenderUnknownTemplate(t *testing.T) {
	lib, err := NewLibrary(DefaultTemplates())
	if err != nil {
		t.Fatal(err)
	}

	_, err = lib.Render(ID("badges"), nil)
	if !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestLibrary_Overhead(t *testing.T) {
	lib, err := NewLibrary(DefaultTemplates())
	if err != nil {
		t.Fatal(err)
	}

	counter := tokens.NewEstimatingCounter()
	overhead, err := lib.Overhead(CodeSummary, counter)
	if err != nil {
		t.Fatal(err)
	}
	if overhead <= 0 {
		t.Errorf("expected positive overhead, got %d", overhead)
	}

	// Overhead is the empty-slot cost, so it must be below a filled render.
	filled, _ := lib.Render(CodeSummary, map[string]any{
		"path": "a.go",
		"code": strings.Repeat("x", 400),
	})
	if counter.Count(filled) <= overhead {
		t.Error("filled prompt should cost more than overhead")
	}
}

func TestEngine_Slots(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name     string
		template string
		expected []string
	}{
		{
			name:     "simple slots in order",
			template: "a {{one}} b {{two}} c {{one}}",
			expected: []string{"one", "two"},
		},
		{
			name:     "no slots",
			template: "plain text",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Slots(tt.template)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Slots = %v, expected %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Slots = %v, expected %v", got, tt.expected)
				}
			}
		})
	}
}

func TestEngine_RenderEmpty(t *testing.T) {
	e := NewEngine()
	if _, err := e.Render("", nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
