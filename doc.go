// Package readmegen summarizes a repository's files through a
// chat-completion API and merges the summaries into README-ready
// artifacts: an overview paragraph, a feature table, and a slogan.
//
// Each subpackage can be used independently:
//
//   - tokens: token counting, encoding, and context budgets
//   - truncate: token-aware text truncation strategies
//   - prompt: prompt templates with {{variable}} syntax
//   - completion: chat-completion client with retries, rate limiting, caching
//   - ratelimit: sliding-window request pacing
//   - parser: extract JSON, YAML, and code blocks from responses
//   - summarize: per-file summarization and batched aggregation
//   - pipeline: the full concurrent run
//   - config: TOML/YAML configuration with live reload
//
// # Quick Start
//
//	cfg, err := config.Load("readmegen.toml")
//	if err != nil { ... }
//	gen, err := readmegen.New(cfg)
//	if err != nil { ... }
//	result, err := gen.Run(ctx, files)
//
// Result carries one summary per input file in traversal order, the three
// project-wide artifacts, and the run's token usage and estimated cost.
// Files that fail to summarize are skipped and reported rather than
// aborting the run.
package readmegen
