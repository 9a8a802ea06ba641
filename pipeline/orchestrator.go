package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/readmegen/completion"
	"github.com/randalmurphal/readmegen/prompt"
	"github.com/randalmurphal/readmegen/summarize"
	"github.com/randalmurphal/readmegen/tokens"
)

// DefaultConcurrency is the file-summarization worker count.
const DefaultConcurrency = 4

// FileFailure records one file the run had to skip.
type FileFailure struct {
	Path string
	Err  error
}

// Result is the complete artifact set of one run.
type Result struct {
	// FileSummaries maps each successfully summarized path to its summary.
	FileSummaries map[string]summarize.Summary

	// Order lists the successful paths in the caller's traversal order,
	// the order aggregation consumed them in.
	Order []string

	// Overview, Features, and Slogan are the project-wide artifacts.
	Overview summarize.Summary
	Features summarize.Summary
	Slogan   summarize.Summary

	// Failures lists files that were skipped, in traversal order.
	Failures []FileFailure

	// Usage is the run's total token consumption.
	Usage completion.TokenUsage

	// Requests is the number of completion calls that succeeded.
	Requests int

	// CostUSD is the estimated run cost for known models.
	CostUSD float64
}

// Orchestrator drives summarization over all files, then aggregation.
type Orchestrator struct {
	client      completion.Client
	codec       tokens.Codec
	library     *prompt.Library
	budget      tokens.Budget
	concurrency int
	logger      *slog.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency bounds the file-summarization worker pool.
// Values below 1 are coerced to 1.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an orchestrator. The client should already carry rate
// limiting and retries (see completion.NewRetrying); workers here only add
// concurrency on top of it.
func New(client completion.Client, codec tokens.Codec, library *prompt.Library, budget tokens.Budget, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:      client,
		codec:       codec,
		library:     library,
		budget:      budget,
		concurrency: DefaultConcurrency,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run summarizes every file and merges the results into the project-wide
// artifacts. Files are processed by a bounded worker pool; results are
// restored to input order before aggregation so output is deterministic.
//
// Per-file failures are skipped and reported in Result.Failures. Run fails
// with a *PipelineError when no file succeeds, when ctx is cancelled, or
// when an aggregation step fails; no partial Result accompanies an error.
func (o *Orchestrator) Run(ctx context.Context, files []summarize.SourceFile) (*Result, error) {
	tracker := NewUsageTracker()
	client := &trackingClient{base: o.client, tracker: tracker}
	fileSummarizer := summarize.NewFileSummarizer(client, o.codec, o.library, summarize.WithFileLogger(o.logger))

	// Indexed slots keep workers free of ordering concerns; input order is
	// re-established by walking the slices afterwards.
	outcomes := make([]summarize.Summary, len(files))
	errs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, err := fileSummarizer.Summarize(gctx, file, o.budget)
			if err != nil {
				// A file-level failure is recorded, not propagated:
				// it must not cancel the remaining workers.
				errs[i] = err
				return nil
			}
			outcomes[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &PipelineError{Reason: ReasonCancelled, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &PipelineError{Reason: ReasonCancelled, Err: err}
	}

	result := &Result{FileSummaries: make(map[string]summarize.Summary)}
	var ordered []summarize.Summary
	for i, file := range files {
		if errs[i] != nil {
			o.logger.Warn("skipping file",
				slog.String("path", file.Path),
				slog.Any("error", errs[i]))
			result.Failures = append(result.Failures, FileFailure{Path: file.Path, Err: errs[i]})
			continue
		}
		result.FileSummaries[file.Path] = outcomes[i]
		result.Order = append(result.Order, file.Path)
		ordered = append(ordered, outcomes[i])
	}

	if len(ordered) == 0 {
		return nil, &PipelineError{Reason: ReasonNoSummaries}
	}

	aggregator := summarize.NewAggregator(client, o.codec, o.library, summarize.WithAggregateLogger(o.logger))
	for _, step := range []struct {
		id  prompt.ID
		dst *summarize.Summary
	}{
		{prompt.Features, &result.Features},
		{prompt.Overview, &result.Overview},
		{prompt.Slogan, &result.Slogan},
	} {
		artifact, err := aggregator.Aggregate(ctx, ordered, step.id, o.budget)
		if err != nil {
			if ctx.Err() != nil {
				return nil, &PipelineError{Reason: ReasonCancelled, Err: err}
			}
			return nil, &PipelineError{Reason: ReasonAggregation, Err: err}
		}
		*step.dst = artifact
	}

	result.Usage, result.Requests = tracker.Total()
	result.CostUSD = tracker.CostUSD()

	o.logger.Info("run complete",
		slog.Int("files", len(files)),
		slog.Int("summaries", len(ordered)),
		slog.Int("failures", len(result.Failures)),
		slog.Int("requests", result.Requests),
		slog.Int("tokens", result.Usage.TotalTokens))

	return result, nil
}
