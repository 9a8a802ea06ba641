package summarize

// ProjectKey is the source key for project-wide artifacts.
const ProjectKey = "project"

// SourceFile is one repository file handed to the pipeline.
// Immutable once read; traversal order and filtering belong to the caller.
type SourceFile struct {
	// Path is the file's repository-relative path.
	Path string

	// Content is the file's text content.
	Content string
}

// Summary is a generated artifact: a per-file summary or a project-wide
// aggregate. Consumed, never mutated, by the document renderer.
type Summary struct {
	// SourceKey is the file path, or ProjectKey for aggregates.
	SourceKey string

	// Text is the generated summary text.
	Text string

	// TokenCount is the token cost of Text under the pipeline's codec.
	TokenCount int
}
