// Package pipeline sequences file summarization and aggregation into one
// run and returns the complete artifact set for the document renderer.
//
//	orch := pipeline.New(client, enc, lib, tokens.NewBudget(cfg.TokensMax, cfg.Tokens),
//	    pipeline.WithConcurrency(cfg.Concurrency))
//	result, err := orch.Run(ctx, files)
//
// Files are summarized by a bounded pool of concurrent workers; the shared
// completion client's rate limiter bounds aggregate throughput regardless
// of pool size. Completed summaries are restored to the caller's traversal
// order before aggregation, so output is deterministic no matter how
// workers interleave.
//
// Per-file failures are recorded in Result.Failures and skipped; the run
// only fails outright when no file summarizes successfully, when the
// context is cancelled, or when an aggregation call fails (a partial
// overview or feature table is never returned).
package pipeline
