// Package parser extracts structured content from LLM responses.
//
// Models wrap answers in fenced code blocks, quotes, and uneven whitespace.
// Parser pulls out the parts the pipeline needs:
//
//	p := parser.NewParser()
//	rows := p.ExtractJSONArray(response) // feature rows as JSON objects
//	code := p.ExtractCode(response, "json")
//
// Sentence normalizes free-text summaries before they are stored:
//
//	clean := parser.Sentence(`  "Parses config files."  `)
package parser
