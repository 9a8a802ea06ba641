package summarize_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/randalmurphal/readmegen/completion"
	"github.com/randalmurphal/readmegen/prompt"
	"github.com/randalmurphal/readmegen/summarize"
	"github.com/randalmurphal/readmegen/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryOf(key, text string) summarize.Summary {
	return summarize.Summary{
		SourceKey:  key,
		Text:       text,
		TokenCount: tokens.EstimateTokens(text),
	}
}

func TestAggregator_SingleBatchWhenInputFits(t *testing.T) {
	mock := completion.NewMockClient("A tool that generates README files.")
	agg := summarize.NewAggregator(mock, tokens.NewEstimatingCounter(), testLibrary(t))

	summaries := []summarize.Summary{
		summaryOf("cmd/main.go", "Entry point parsing flags."),
		summaryOf("internal/walk.go", "Walks the repository tree."),
		summaryOf("internal/render.go", "Renders markdown sections."),
	}

	got, err := agg.Aggregate(context.Background(), summaries, prompt.Overview, tokens.NewBudget(4000, 650))
	require.NoError(t, err)

	assert.Equal(t, summarize.ProjectKey, got.SourceKey)
	assert.Equal(t, "A tool that generates README files.", got.Text)
	assert.Equal(t, 1, mock.CallCount(), "input under budget must take exactly one call")

	// All summaries appear in the single prompt, in input order.
	req := mock.LastCall()
	require.NotNil(t, req)
	first := strings.Index(req.Prompt, "cmd/main.go")
	second := strings.Index(req.Prompt, "internal/walk.go")
	third := strings.Index(req.Prompt, "internal/render.go")
	assert.True(t, first >= 0 && first < second && second < third, "input order preserved")
}

func TestAggregator_SplitsIntoBatchesAndMerges(t *testing.T) {
	mock := completion.NewMockClient("merged")
	counter := tokens.NewEstimatingCounter()
	agg := summarize.NewAggregator(mock, counter, testLibrary(t))

	// Each summary costs ~55 tokens; a ~260-token window forces multiple
	// batches after template overhead.
	var summaries []summarize.Summary
	for i := 0; i < 8; i++ {
		summaries = append(summaries, summaryOf(
			fmt.Sprintf("pkg/file%d.go", i),
			strings.Repeat("does something important ", 9)))
	}
	budget := tokens.NewBudget(260, 40)

	got, err := agg.Aggregate(context.Background(), summaries, prompt.Overview, budget)
	require.NoError(t, err)
	assert.Equal(t, summarize.ProjectKey, got.SourceKey)
	assert.Equal(t, "merged", got.Text)

	// More than one batch, plus at least one merge pass.
	require.Greater(t, mock.CallCount(), 2)

	// Every issued prompt stays under the context ceiling.
	for _, call := range mock.Calls {
		assert.LessOrEqual(t, counter.Count(call.Prompt), budget.Prompt(),
			"no batch prompt may exceed the window")
	}

	// Batches preserve input order: file0 is prompted before file7.
	var idx0, idx7 = -1, -1
	for i, call := range mock.Calls {
		if strings.Contains(call.Prompt, "pkg/file0.go") && idx0 == -1 {
			idx0 = i
		}
		if strings.Contains(call.Prompt, "pkg/file7.go") && idx7 == -1 {
			idx7 = i
		}
	}
	require.NotEqual(t, -1, idx0)
	require.NotEqual(t, -1, idx7)
	assert.LessOrEqual(t, idx0, idx7)
}

func TestAggregator_MergesOneSummaryPerBatch(t *testing.T) {
	mock := completion.NewMockClient("merged overview.")
	counter := tokens.NewEstimatingCounter()
	agg := summarize.NewAggregator(mock, counter, testLibrary(t))

	// Two ~150-token summaries against a 300-token window: after template
	// overhead only one fits per batch. The short batch outputs must still
	// merge in a final pass instead of failing.
	summaries := []summarize.Summary{
		summaryOf("a.go", strings.Repeat("word ", 120)),
		summaryOf("b.go", strings.Repeat("term ", 120)),
	}
	budget := tokens.NewBudget(300, 40)

	got, err := agg.Aggregate(context.Background(), summaries, prompt.Overview, budget)
	require.NoError(t, err)
	assert.Equal(t, "merged overview.", got.Text)
	assert.Equal(t, 3, mock.CallCount(), "two single-summary batches plus one merge pass")

	for _, call := range mock.Calls {
		assert.LessOrEqual(t, counter.Count(call.Prompt), budget.Prompt())
	}
}

func TestAggregator_OverheadExceedsBudget(t *testing.T) {
	mock := completion.NewMockClient("unreachable")
	agg := summarize.NewAggregator(mock, tokens.NewEstimatingCounter(), testLibrary(t))

	// A 20-token prompt budget cannot even hold the empty template, so no
	// request may be issued at all.
	_, err := agg.Aggregate(context.Background(),
		[]summarize.Summary{summaryOf("a.go", "Does A.")},
		prompt.Overview, tokens.NewBudget(60, 40))

	assert.ErrorIs(t, err, summarize.ErrBudgetTooSmall)
	assert.Equal(t, 0, mock.CallCount(), "over-window prompts must never be sent")
}

func TestAggregator_TruncatesOversizedSingleSummary(t *testing.T) {
	mock := completion.NewMockClient("merged")
	counter := tokens.NewEstimatingCounter()
	agg := summarize.NewAggregator(mock, counter, testLibrary(t))

	// One summary larger than the whole window cannot be batched as-is.
	huge := summaryOf("vendor/blob.go", strings.Repeat("enormous ", 500))
	budget := tokens.NewBudget(300, 40)

	got, err := agg.Aggregate(context.Background(), []summarize.Summary{huge}, prompt.Overview, budget)
	require.NoError(t, err)
	assert.Equal(t, "merged", got.Text)

	for _, call := range mock.Calls {
		assert.LessOrEqual(t, counter.Count(call.Prompt), budget.Prompt())
	}
}

func TestAggregator_FeaturesPromptCarriesSchema(t *testing.T) {
	response := "```json\n[{\"name\": \"Summaries\", \"description\": \"Per-file summaries.\"}]\n```"
	mock := completion.NewMockClient(response)
	agg := summarize.NewAggregator(mock, tokens.NewEstimatingCounter(), testLibrary(t))

	summaries := []summarize.Summary{summaryOf("a.go", "Does A.")}
	got, err := agg.Aggregate(context.Background(), summaries, prompt.Features, tokens.NewBudget(4000, 650))
	require.NoError(t, err)

	req := mock.LastCall()
	require.NotNil(t, req)
	assert.Contains(t, req.Prompt, `"description"`, "JSON schema embedded in features prompt")

	rows, err := prompt.ParseFeatures(got.Text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Summaries", rows[0].Name)
}

func TestAggregator_SloganIsSentenceCleaned(t *testing.T) {
	mock := completion.NewMockClient(`"READMEs without the busywork"`)
	agg := summarize.NewAggregator(mock, tokens.NewEstimatingCounter(), testLibrary(t))

	got, err := agg.Aggregate(context.Background(),
		[]summarize.Summary{summaryOf("a.go", "Does A.")},
		prompt.Slogan, tokens.NewBudget(4000, 650))
	require.NoError(t, err)
	assert.Equal(t, "READMEs without the busywork.", got.Text)
}

func TestAggregator_NoInput(t *testing.T) {
	agg := summarize.NewAggregator(completion.NewMockClient("x"), tokens.NewEstimatingCounter(), testLibrary(t))

	_, err := agg.Aggregate(context.Background(), nil, prompt.Overview, tokens.NewBudget(4000, 650))
	assert.ErrorIs(t, err, summarize.ErrNoInput)
}

func TestAggregator_Deterministic(t *testing.T) {
	summaries := []summarize.Summary{
		summaryOf("b.go", "Does B."),
		summaryOf("a.go", "Does A."),
	}

	run := func() (summarize.Summary, []completion.Request) {
		mock := completion.NewMockClient("stable output")
		agg := summarize.NewAggregator(mock, tokens.NewEstimatingCounter(), testLibrary(t))
		got, err := agg.Aggregate(context.Background(), summaries, prompt.Overview, tokens.NewBudget(4000, 650))
		require.NoError(t, err)
		return got, mock.Calls
	}

	first, firstCalls := run()
	second, secondCalls := run()
	assert.Equal(t, first, second)
	assert.Equal(t, firstCalls, secondCalls, "identical inputs issue identical prompts")
}
