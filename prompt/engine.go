package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// Engine renders prompt templates with {{variable}} substitution.
// The Handlebars-like syntax is converted to Go template syntax before
// execution.
type Engine struct {
	funcs template.FuncMap
}

// NewEngine creates a template engine with the default helper functions.
func NewEngine() *Engine {
	return &Engine{
		funcs: template.FuncMap{
			"trim":   strings.TrimSpace,
			"upper":  strings.ToUpper,
			"lower":  strings.ToLower,
			"indent": indent,
		},
	}
}

// Render executes the template with the given variables.
func (e *Engine) Render(templateStr string, variables map[string]any) (string, error) {
	if templateStr == "" {
		return "", ErrEmpty
	}

	tmpl, parseErr := template.New("prompt").Funcs(e.funcs).Parse(convertSyntax(templateStr))
	if parseErr != nil {
		return "", fmt.Errorf("%w: %w", ErrParse, parseErr)
	}

	var buf strings.Builder
	if execErr := tmpl.Execute(&buf, variables); execErr != nil {
		return "", fmt.Errorf("%w: %w", ErrExecute, execErr)
	}

	return buf.String(), nil
}

// Slots validates the template and returns the variable names it references,
// in order of first appearance.
func (e *Engine) Slots(templateStr string) ([]string, error) {
	if templateStr == "" {
		return nil, ErrEmpty
	}
	if _, err := template.New("prompt").Funcs(e.funcs).Parse(convertSyntax(templateStr)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return extractSlots(templateStr), nil
}

var slotPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_]\w*)\s*\}\}`)

// helperNames lists the built-in helper function names, which are not slots.
var helperNames = map[string]bool{
	"trim":   true,
	"upper":  true,
	"lower":  true,
	"indent": true,
}

// convertSyntax converts {{variable}} to Go template {{.variable}}.
func convertSyntax(input string) string {
	return slotPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := slotPattern.FindStringSubmatch(match)[1]
		if helperNames[name] {
			return match
		}
		return "{{." + name + "}}"
	})
}

// extractSlots returns referenced variable names in order of first appearance.
func extractSlots(input string) []string {
	seen := make(map[string]bool)
	var slots []string
	for _, match := range slotPattern.FindAllStringSubmatch(input, -1) {
		name := match[1]
		if helperNames[name] || seen[name] {
			continue
		}
		seen[name] = true
		slots = append(slots, name)
	}
	return slots
}

// indent prefixes every line of text with n spaces.
func indent(n int, text string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
