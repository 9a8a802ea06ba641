package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// CodeBlock represents a fenced code block.
type CodeBlock struct {
	// Language is the language specifier after the opening fence (e.g., "json").
	Language string

	// Content is the text inside the block, excluding fences.
	Content string
}

// Parser extracts structured content from LLM responses.
type Parser struct {
	codeBlockRegex *regexp.Regexp
}

// NewParser creates a response parser with compiled regexes.
func NewParser() *Parser {
	return &Parser{
		codeBlockRegex: regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```"),
	}
}

// ExtractCode returns the first code block with the given language.
// If language is empty, returns the first code block found.
func (p *Parser) ExtractCode(response, language string) string {
	for _, block := range p.extractCodeBlocks(response) {
		if language == "" || block.Language == language {
			return block.Content
		}
	}
	return ""
}

// ExtractJSONArray extracts and parses JSON arrays of objects from the
// response, looking inside code blocks first and then at inline lines.
func (p *Parser) ExtractJSONArray(response string) []map[string]any {
	var results []map[string]any

	for _, block := range p.extractCodeBlocks(response) {
		if block.Language == "json" || block.Language == "" {
			var arr []map[string]any
			if err := json.Unmarshal([]byte(block.Content), &arr); err == nil {
				results = append(results, arr...)
			}
		}
	}
	if len(results) > 0 {
		return results
	}

	// Fall back to an inline array spanning the remaining text.
	text := strings.TrimSpace(p.removeCodeBlocks(response))
	if start := strings.Index(text, "["); start >= 0 {
		if end := strings.LastIndex(text, "]"); end > start {
			var arr []map[string]any
			if err := json.Unmarshal([]byte(text[start:end+1]), &arr); err == nil {
				results = append(results, arr...)
			}
		}
	}

	return results
}

// ExtractYAML extracts and parses YAML blocks.
func (p *Parser) ExtractYAML(response string) []map[string]any {
	var blocks []map[string]any

	for _, block := range p.extractCodeBlocks(response) {
		if block.Language == "yaml" || block.Language == "yml" {
			var data map[string]any
			if err := yaml.Unmarshal([]byte(block.Content), &data); err == nil {
				blocks = append(blocks, data)
			}
		}
	}

	return blocks
}

// extractCodeBlocks finds all fenced code blocks in the response.
func (p *Parser) extractCodeBlocks(text string) []CodeBlock {
	matches := p.codeBlockRegex.FindAllStringSubmatch(text, -1)
	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, CodeBlock{
			Language: m[1],
			Content:  strings.TrimSpace(m[2]),
		})
	}
	return blocks
}

// removeCodeBlocks strips all fenced code blocks from the response.
func (p *Parser) removeCodeBlocks(text string) string {
	return p.codeBlockRegex.ReplaceAllString(text, "")
}
