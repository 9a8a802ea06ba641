package readmegen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/readmegen/completion"
	"github.com/randalmurphal/readmegen/config"
	"github.com/randalmurphal/readmegen/pipeline"
	"github.com/randalmurphal/readmegen/prompt"
	"github.com/randalmurphal/readmegen/ratelimit"
	"github.com/randalmurphal/readmegen/summarize"
	"github.com/randalmurphal/readmegen/tokens"
)

// Generator is the assembled pipeline for one configuration.
type Generator struct {
	cfg          config.Config
	orchestrator *pipeline.Orchestrator
	logger       *slog.Logger
}

// Option customizes a Generator.
type Option func(*options)

type options struct {
	logger *slog.Logger
	client completion.Client
}

// WithLogger sets the logger used across the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClient replaces the HTTP completion client, keeping the configured
// retry, rate-limit, and cache layers on top. Useful for tests and
// alternative transports.
func WithClient(client completion.Client) Option {
	return func(o *options) { o.client = client }
}

// New assembles a Generator from configuration: tokenizer, rate limiter,
// HTTP client with retries and caching, prompt library, and orchestrator.
func New(cfg config.Config, opts ...Option) (*Generator, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	library, err := prompt.NewLibrary(cfg.TemplateSet())
	if err != nil {
		return nil, fmt.Errorf("prompt templates: %w", err)
	}

	// Exact token counts need the encoding's BPE tables; when they are
	// unavailable the estimating counter keeps the run going with
	// conservative budgets.
	var codec tokens.Codec
	if enc, err := tokens.NewEncoder(cfg.Encoding); err != nil {
		o.logger.Warn("tokenizer unavailable, falling back to estimation",
			slog.String("encoding", cfg.Encoding),
			slog.Any("error", err))
		codec = tokens.NewEstimatingCounter()
	} else {
		codec = enc
	}

	base := o.client
	if base == nil {
		httpCfg := completion.HTTPConfig{
			Endpoint: cfg.Endpoint,
			APIKey:   cfg.APIKey,
			Engine:   cfg.Engine,
			Timeout:  cfg.Timeout.Std(),
		}
		if cfg.Temperature != nil {
			httpCfg.Temperature = *cfg.Temperature
		}
		base = completion.NewHTTPClient(httpCfg)
	}

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateWindow.Std())
	var client completion.Client = completion.NewRetrying(base, limiter,
		completion.WithMaxAttempts(cfg.Attempts),
		completion.WithLogger(o.logger))
	if cfg.CacheSize > 0 {
		client = completion.NewCached(client, cfg.CacheSize, cfg.CacheTTL.Std())
	}

	orch := pipeline.New(client, codec, library,
		tokens.NewBudget(cfg.TokensMax, cfg.Tokens),
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithLogger(o.logger))

	return &Generator{cfg: cfg, orchestrator: orch, logger: o.logger}, nil
}

// Config returns the effective configuration, defaults applied.
func (g *Generator) Config() config.Config {
	return g.cfg
}

// Run summarizes the given files and produces the project artifacts.
// See pipeline.Orchestrator.Run for failure semantics.
func (g *Generator) Run(ctx context.Context, files []summarize.SourceFile) (*pipeline.Result, error) {
	return g.orchestrator.Run(ctx, files)
}
