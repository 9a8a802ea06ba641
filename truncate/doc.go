// Package truncate provides token-aware text truncation strategies.
//
// A Truncator pairs a tokens.Codec with a strategy describing which part of
// the text to drop when it exceeds a budget:
//
//	enc, _ := tokens.NewEncoder("cl100k_base")
//	tr := truncate.NewFromEnd(enc)
//	short, truncated := tr.Truncate(fileContents, 3500)
//
// Strategies:
//
//   - FromEnd: keep the head of the text (default, used for code summaries
//     where the file header and early declarations matter most)
//   - FromMiddle: keep head and tail, dropping the middle
//   - FromStart: keep the tail of the text
//
// A marker string is inserted where content was removed; its own token cost
// is counted against the budget, so truncated output never exceeds the
// limit.
package truncate
