// Package prompt holds the pipeline's prompt templates as data.
//
// Four template identifiers drive README generation:
//
//   - CodeSummary: summarize one source file
//   - Features: produce the project feature table
//   - Overview: produce the project overview paragraph
//   - Slogan: produce a one-line project slogan
//
// Templates are format strings with {{slot}} placeholders. Each identifier
// declares the slots it requires; a Library rejects templates missing a
// required slot at construction time, not at render time:
//
//	lib, err := prompt.NewLibrary(prompt.DefaultTemplates())
//	text, err := lib.Render(prompt.CodeSummary, map[string]any{
//	    "path": "internal/server.go",
//	    "code": contents,
//	})
//
// The Features template additionally receives a {{schema}} slot carrying a
// JSON Schema for the expected feature rows, so responses can be decoded
// with ParseFeatures instead of scraped from free text.
package prompt
