package prompt

import (
	"fmt"

	"github.com/randalmurphal/readmegen/tokens"
)

// ID identifies a prompt template.
type ID string

// Template identifiers used by the pipeline.
const (
	// CodeSummary summarizes a single source file.
	CodeSummary ID = "code_summary"

	// Features produces the project feature table.
	Features ID = "features"

	// Overview produces the project overview paragraph.
	Overview ID = "overview"

	// Slogan produces a one-line project slogan.
	Slogan ID = "slogan"
)

// IDs lists all template identifiers in rendering order.
var IDs = []ID{CodeSummary, Features, Overview, Slogan}

// RequiredSlots maps each template to the placeholders it must contain.
var RequiredSlots = map[ID][]string{
	CodeSummary: {"path", "code"},
	Features:    {"summaries"},
	Overview:    {"summaries"},
	Slogan:      {"summaries"},
}

// Template is one prompt template: an identifier, its text, and the
// placeholder slots the text references.
type Template struct {
	ID    ID
	Text  string
	Slots []string
}

// Library holds the validated set of templates for one run.
// Read-only after construction.
type Library struct {
	engine    *Engine
	templates map[ID]Template
}

// NewLibrary validates the given templates and builds a library.
// Every identifier in RequiredSlots must be present, parse cleanly, and
// reference all of its required slots.
func NewLibrary(templates map[ID]string) (*Library, error) {
	engine := NewEngine()
	lib := &Library{engine: engine, templates: make(map[ID]Template, len(templates))}

	for id, required := range RequiredSlots {
		text, ok := templates[id]
		if !ok || text == "" {
			return nil, fmt.Errorf("%w: template %q", ErrEmpty, id)
		}

		slots, err := engine.Slots(text)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", id, err)
		}

		declared := make(map[string]bool, len(slots))
		for _, s := range slots {
			declared[s] = true
		}
		for _, want := range required {
			if !declared[want] {
				return nil, fmt.Errorf("%w: template %q needs {{%s}}", ErrMissingSlot, id, want)
			}
		}

		lib.templates[id] = Template{ID: id, Text: text, Slots: slots}
	}

	return lib, nil
}

// Template returns the template for an identifier.
func (l *Library) Template(id ID) (Template, error) {
	tmpl, ok := l.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return tmpl, nil
}

// Render fills the identified template with the given variables.
// All of the template's required slots must be present in vars; other
// declared slots default to empty.
func (l *Library) Render(id ID, vars map[string]any) (string, error) {
	tmpl, err := l.Template(id)
	if err != nil {
		return "", err
	}

	for _, want := range RequiredSlots[id] {
		if _, ok := vars[want]; !ok {
			return "", fmt.Errorf("%w: render %q needs %q", ErrMissingSlot, id, want)
		}
	}

	filled := make(map[string]any, len(tmpl.Slots))
	for _, slot := range tmpl.Slots {
		filled[slot] = ""
	}
	for k, v := range vars {
		filled[k] = v
	}

	return l.engine.Render(tmpl.Text, filled)
}

// Overhead returns the token cost of the identified template with all
// slots empty: the fixed part of the prompt that file content must share
// the budget with.
func (l *Library) Overhead(id ID, counter tokens.Counter) (int, error) {
	tmpl, err := l.Template(id)
	if err != nil {
		return 0, err
	}

	empty := make(map[string]any, len(tmpl.Slots))
	for _, slot := range tmpl.Slots {
		empty[slot] = ""
	}
	rendered, err := l.engine.Render(tmpl.Text, empty)
	if err != nil {
		return 0, err
	}
	return counter.Count(rendered), nil
}

// DefaultTemplates returns the built-in prompt set.
func DefaultTemplates() map[ID]string {
	return map[ID]string{
		CodeSummary: `Summarize the following source file in two to three plain sentences.
Focus on what the code does, not how it is written. Do not repeat the file path.

File: {{path}}

{{code}}`,
		Features: `Below are short summaries of every file in a repository, in traversal order.
Derive the project's user-facing features from them.

Respond with a JSON array matching this schema, inside a json code block:
{{schema}}

Summaries:
{{summaries}}`,
		Overview: `Below are short summaries of every file in a repository, in traversal order.
Write a single paragraph describing what the project does and who it is for.
Avoid marketing language and file-level detail.

Summaries:
{{summaries}}`,
		Slogan: `Below are short summaries of every file in a repository.
Write one catchy sentence, at most twelve words, that captures the project.
Respond with the sentence only.

Summaries:
{{summaries}}`,
	}
}
