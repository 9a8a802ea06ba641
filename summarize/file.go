package summarize

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/readmegen/completion"
	"github.com/randalmurphal/readmegen/parser"
	"github.com/randalmurphal/readmegen/prompt"
	"github.com/randalmurphal/readmegen/tokens"
	"github.com/randalmurphal/readmegen/truncate"
)

// FileSummarizer produces a short natural-language summary for one source
// file, fitting the file's content into the prompt budget first.
type FileSummarizer struct {
	client    completion.Client
	codec     tokens.Codec
	library   *prompt.Library
	truncator *truncate.Truncator
	logger    *slog.Logger
}

// FileOption customizes a FileSummarizer.
type FileOption func(*FileSummarizer)

// WithFileTruncator overrides the content truncator.
// The default keeps the head of the file.
func WithFileTruncator(t *truncate.Truncator) FileOption {
	return func(s *FileSummarizer) {
		if t != nil {
			s.truncator = t
		}
	}
}

// WithFileLogger sets the logger.
func WithFileLogger(logger *slog.Logger) FileOption {
	return func(s *FileSummarizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileSummarizer creates a summarizer using the given client, codec, and
// template library.
func NewFileSummarizer(client completion.Client, codec tokens.Codec, library *prompt.Library, opts ...FileOption) *FileSummarizer {
	s := &FileSummarizer{
		client:    client,
		codec:     codec,
		library:   library,
		truncator: truncate.NewFromEnd(codec),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize produces a Summary for the file under the given budget.
//
// Content that does not fit the prompt budget is truncated, not rejected:
// a lossy summary of a long file is expected behavior. A failure of the
// completion call after its internal retries is returned as a
// *SummarizationError carrying the file path.
func (s *FileSummarizer) Summarize(ctx context.Context, file SourceFile, budget tokens.Budget) (Summary, error) {
	overhead, err := s.library.Overhead(prompt.CodeSummary, s.codec)
	if err != nil {
		return Summary{}, &SummarizationError{Path: file.Path, Err: err}
	}

	contentBudget := budget.Prompt() - overhead - s.codec.Count(file.Path)
	if contentBudget < 0 {
		contentBudget = 0
	}

	content, truncated := s.truncator.Truncate(file.Content, contentBudget)
	if truncated {
		s.logger.Debug("file content truncated to fit prompt budget",
			slog.String("path", file.Path),
			slog.Int("budget", contentBudget))
	}

	rendered, err := s.library.Render(prompt.CodeSummary, map[string]any{
		"path": file.Path,
		"code": content,
	})
	if err != nil {
		return Summary{}, &SummarizationError{Path: file.Path, Err: err}
	}

	resp, err := s.client.Complete(ctx, completion.Request{
		Prompt:    rendered,
		MaxTokens: budget.ResponseFor(s.codec.Count(rendered)),
	})
	if err != nil {
		return Summary{}, &SummarizationError{Path: file.Path, Err: err}
	}

	text := parser.Sentence(resp.Content)
	return Summary{
		SourceKey:  file.Path,
		Text:       text,
		TokenCount: s.codec.Count(text),
	}, nil
}
