package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/readmegen/completion"
	"github.com/randalmurphal/readmegen/parser"
	"github.com/randalmurphal/readmegen/prompt"
	"github.com/randalmurphal/readmegen/tokens"
)

// ErrNoInput is returned when aggregation is asked to merge zero summaries.
var ErrNoInput = errors.New("no summaries to aggregate")

// ErrBudgetTooSmall is returned when the prompt budget cannot hold the
// template at all, or when a merge pass over already-merged outputs fails
// to shrink them.
var ErrBudgetTooSmall = errors.New("context window too small to merge summaries")

// Aggregator merges many bounded summaries into one project-wide artifact.
type Aggregator struct {
	client  completion.Client
	codec   tokens.Codec
	library *prompt.Library
	logger  *slog.Logger
}

// AggregateOption customizes an Aggregator.
type AggregateOption func(*Aggregator)

// WithAggregateLogger sets the logger.
func WithAggregateLogger(logger *slog.Logger) AggregateOption {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAggregator creates an aggregator using the given client, codec, and
// template library.
func NewAggregator(client completion.Client, codec tokens.Codec, library *prompt.Library, opts ...AggregateOption) *Aggregator {
	a := &Aggregator{
		client:  client,
		codec:   codec,
		library: library,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate merges the ordered summaries into a single Summary using the
// identified template, never letting one call's prompt exceed the budget.
//
// Summaries are packed greedily into batches in input order; batches run
// sequentially. With more than one batch, the batch outputs are merged in
// further passes with the same template until one result remains.
func (a *Aggregator) Aggregate(ctx context.Context, summaries []Summary, id prompt.ID, budget tokens.Budget) (Summary, error) {
	if len(summaries) == 0 {
		return Summary{}, ErrNoInput
	}

	vars, err := a.baseVars(id)
	if err != nil {
		return Summary{}, err
	}

	overhead, err := a.overhead(id, vars)
	if err != nil {
		return Summary{}, err
	}

	entryBudget := budget.Prompt() - overhead
	if entryBudget < 1 {
		return Summary{}, fmt.Errorf("%w: template overhead is %d tokens of a %d-token prompt budget",
			ErrBudgetTooSmall, overhead, budget.Prompt())
	}

	current := summaries
	for pass := 0; ; pass++ {
		batches := a.pack(current, entryBudget)

		// A first pass may yield as many batches as summaries and still
		// converge, because batch outputs are much shorter than their
		// inputs. Only a merge pass that fails to shrink its own input
		// proves the window too small.
		if pass > 0 && len(batches) > 1 && len(batches) >= len(current) {
			return Summary{}, fmt.Errorf("%w: merge pass %d left %d summaries in %d batches",
				ErrBudgetTooSmall, pass, len(current), len(batches))
		}

		outputs := make([]Summary, 0, len(batches))
		for i, batch := range batches {
			out, err := a.completeBatch(ctx, id, vars, batch, budget)
			if err != nil {
				return Summary{}, fmt.Errorf("aggregate %s batch %d/%d: %w", id, i+1, len(batches), err)
			}
			outputs = append(outputs, out)
		}

		if len(outputs) == 1 {
			final := outputs[0]
			final.Text = a.clean(id, final.Text)
			final.TokenCount = a.codec.Count(final.Text)
			return final, nil
		}

		a.logger.Debug("merging batch outputs",
			slog.String("template", string(id)),
			slog.Int("pass", pass+1),
			slog.Int("batches", len(outputs)))
		current = outputs
	}
}

// baseVars returns the template variables shared by every batch.
func (a *Aggregator) baseVars(id prompt.ID) (map[string]any, error) {
	vars := map[string]any{}
	if id == prompt.Features {
		schema, err := prompt.FeatureSchema()
		if err != nil {
			return nil, err
		}
		vars["schema"] = schema
	}
	return vars, nil
}

// overhead is the token cost of the rendered template with no summaries.
func (a *Aggregator) overhead(id prompt.ID, vars map[string]any) (int, error) {
	empty := make(map[string]any, len(vars)+1)
	for k, v := range vars {
		empty[k] = v
	}
	empty["summaries"] = ""

	rendered, err := a.library.Render(id, empty)
	if err != nil {
		return 0, err
	}
	return a.codec.Count(rendered), nil
}

// pack splits summaries into greedy, order-preserving batches whose
// formatted entries fit entryBudget. An entry too large to fit a batch on
// its own is truncated rather than dropped. entryBudget must be positive;
// Aggregate rejects budgets the template overhead already exhausts.
func (a *Aggregator) pack(summaries []Summary, entryBudget int) [][]string {
	var batches [][]string
	var current []string
	used := 0

	for _, s := range summaries {
		entry := formatEntry(s)
		cost := a.codec.Count(entry)

		if cost > entryBudget {
			a.logger.Warn("summary alone exceeds aggregation budget, truncating",
				slog.String("source", s.SourceKey),
				slog.Int("tokens", cost))
			entry = a.codec.Truncate(entry, entryBudget)
			cost = entryBudget
		}

		if used+cost > entryBudget && len(current) > 0 {
			batches = append(batches, current)
			current = nil
			used = 0
		}
		current = append(current, entry)
		used += cost
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}

// completeBatch renders one batch prompt and runs the completion.
func (a *Aggregator) completeBatch(ctx context.Context, id prompt.ID, vars map[string]any, entries []string, budget tokens.Budget) (Summary, error) {
	filled := make(map[string]any, len(vars)+1)
	for k, v := range vars {
		filled[k] = v
	}
	filled["summaries"] = strings.Join(entries, "")

	rendered, err := a.library.Render(id, filled)
	if err != nil {
		return Summary{}, err
	}

	resp, err := a.client.Complete(ctx, completion.Request{
		Prompt:    rendered,
		MaxTokens: budget.ResponseFor(a.codec.Count(rendered)),
	})
	if err != nil {
		return Summary{}, err
	}

	text := strings.TrimSpace(resp.Content)
	return Summary{
		SourceKey:  ProjectKey,
		Text:       text,
		TokenCount: a.codec.Count(text),
	}, nil
}

// clean normalizes the final artifact text for its template.
// Feature tables keep their structure; the slogan is reduced to one clean
// sentence.
func (a *Aggregator) clean(id prompt.ID, text string) string {
	if id == prompt.Slogan {
		return parser.Sentence(text)
	}
	return strings.TrimSpace(text)
}

// formatEntry renders one summary as an aggregation input line.
func formatEntry(s Summary) string {
	return fmt.Sprintf("- %s: %s\n", s.SourceKey, s.Text)
}
