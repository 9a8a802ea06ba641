package pipeline

import (
	"context"
	"sync"

	"github.com/randalmurphal/readmegen/completion"
)

// Pricing holds per-million-token pricing for a model.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// ModelPrices contains pricing for common hosted models (as of 2025).
// Unknown models report zero cost.
var ModelPrices = map[string]Pricing{
	"gpt-4o":        {InputPerMillion: 2.5, OutputPerMillion: 10.0},
	"gpt-4o-mini":   {InputPerMillion: 0.15, OutputPerMillion: 0.6},
	"gpt-4":         {InputPerMillion: 30.0, OutputPerMillion: 60.0},
	"gpt-3.5-turbo": {InputPerMillion: 0.5, OutputPerMillion: 1.5},
}

// UsageTracker accumulates token usage and request counts per model across
// one run. Safe for concurrent use.
type UsageTracker struct {
	mu       sync.Mutex
	usage    completion.TokenUsage
	requests int
	byModel  map[string]completion.TokenUsage
}

// NewUsageTracker creates an empty tracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{byModel: make(map[string]completion.TokenUsage)}
}

// Record adds one response's usage.
func (t *UsageTracker) Record(model string, usage completion.TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.usage.Add(usage)
	t.requests++
	u := t.byModel[model]
	u.Add(usage)
	t.byModel[model] = u
}

// Total returns the accumulated usage and request count.
func (t *UsageTracker) Total() (completion.TokenUsage, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage, t.requests
}

// CostUSD estimates the run's cost from ModelPrices.
func (t *UsageTracker) CostUSD() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var cost float64
	for model, usage := range t.byModel {
		price, ok := ModelPrices[model]
		if !ok {
			continue
		}
		cost += float64(usage.InputTokens) / 1e6 * price.InputPerMillion
		cost += float64(usage.OutputTokens) / 1e6 * price.OutputPerMillion
	}
	return cost
}

// trackingClient records every successful response's usage into a tracker.
type trackingClient struct {
	base    completion.Client
	tracker *UsageTracker
}

// Complete implements completion.Client.
func (c *trackingClient) Complete(ctx context.Context, req completion.Request) (*completion.Response, error) {
	resp, err := c.base.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	c.tracker.Record(resp.Model, resp.Usage)
	return resp, nil
}
