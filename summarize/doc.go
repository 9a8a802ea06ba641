// Package summarize turns repository files into bounded natural-language
// summaries and merges them into project-wide artifacts.
//
// FileSummarizer produces one Summary per source file, truncating content
// to the prompt budget before calling the model:
//
//	fs := summarize.NewFileSummarizer(client, enc, lib)
//	summary, err := fs.Summarize(ctx, file, tokens.NewBudget(4000, 650))
//
// Aggregator merges an ordered sequence of summaries into a single artifact
// (overview, feature table, or slogan). When the combined input would
// exceed the context window, it splits the input into greedy, order
// preserving batches, summarizes each batch sequentially, and recursively
// merges the batch outputs into one result:
//
//	agg := summarize.NewAggregator(client, enc, lib)
//	overview, err := agg.Aggregate(ctx, summaries, prompt.Overview, 4000)
//
// Batching trades an extra aggregation pass on large repositories for a
// hard guarantee that no single call exceeds the context window, with
// deterministic output across runs.
package summarize
