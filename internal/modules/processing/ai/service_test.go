package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/revyse/core/internal/pkg/llm"
)

const (
	summaryJSON    = `{"content":"Cells are the basic unit of life."}`
	flashcardsJSON = `{"flashcards":[{"front":"What is a cell?","back":"The basic unit of life."},{"front":"What is ATP?","back":"The cell's energy currency."}]}`
	quizJSON       = `{"title":"Cell Biology","questions":[{"kind":"multiple_choice","prompt":"What is the powerhouse of the cell?","options":[{"id":"a","text":"Nucleus","is_correct":false},{"id":"b","text":"Mitochondria","is_correct":true},{"id":"c","text":"Ribosome","is_correct":false},{"id":"d","text":"Golgi","is_correct":false}],"correct_answer":"b","points":1}]}`
	batchJSON      = `{"materials":[{"flashcards":[{"front":"Q1","back":"A1"}]},{"flashcards":[{"front":"Q2","back":"A2"}]},{"flashcards":[{"front":"Q3","back":"A3"}]},{"flashcards":[{"front":"Q4","back":"A4"}]},{"flashcards":[{"front":"Q5","back":"A5"}]}]}`
	nudgeJSON      = `{"message":"Your 4 day streak is still alive, one quick review keeps it going."}`
)

type fakeProvider struct {
	id    string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Generate(_ context.Context, _ llm.Request) (*llm.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Text: f.text, InputTokens: 100, OutputTokens: 50}, nil
}

func (f *fakeProvider) ID() string      { return f.id }
func (f *fakeProvider) ModelID() string { return "gpt-4o-mini" }

func newTestService(providers ...llm.Provider) *Service {
	return NewService(nil, providers, NewMemoryCache(100), NewLedger(), nil, zap.NewNop(), time.Second)
}

func TestGenerateSummaryCacheHit(t *testing.T) {
	p := &fakeProvider{id: "primary", text: summaryJSON}
	svc := newTestService(p)
	ctx := context.Background()

	first, meta1, err := svc.GenerateSummary(ctx, "cell biology notes", "brief")
	require.NoError(t, err)
	assert.False(t, meta1.CacheHit)
	assert.Equal(t, "primary", meta1.Provider)

	second, meta2, err := svc.GenerateSummary(ctx, "cell biology notes", "brief")
	require.NoError(t, err)
	assert.True(t, meta2.CacheHit)
	assert.Equal(t, first.Content, second.Content)

	assert.Equal(t, 1, p.calls, "cache hit must not call the provider")

	snap := svc.Usage()
	assert.Equal(t, int64(1), snap.TotalCalls)
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
}

func TestGenerateFallbackOnTransientFailure(t *testing.T) {
	down := &fakeProvider{id: "primary", err: &llm.UnavailableError{Err: errors.New("connection refused")}}
	up := &fakeProvider{id: "fallback", text: summaryJSON}
	svc := newTestService(down, up)

	_, meta, err := svc.GenerateSummary(context.Background(), "notes", "brief")
	require.NoError(t, err)
	assert.Equal(t, "fallback", meta.Provider)
	assert.Equal(t, 1, down.calls)
	assert.Equal(t, 1, up.calls)
}

func TestGenerateFallbackOnRateLimit(t *testing.T) {
	limited := &fakeProvider{id: "primary", err: &llm.RateLimitError{RetryAfter: time.Second, Err: errors.New("429")}}
	up := &fakeProvider{id: "fallback", text: summaryJSON}
	svc := newTestService(limited, up)

	_, meta, err := svc.GenerateSummary(context.Background(), "notes", "brief")
	require.NoError(t, err)
	assert.Equal(t, "fallback", meta.Provider)
}

func TestGenerateFallbackOnMalformedResponse(t *testing.T) {
	garbled := &fakeProvider{id: "primary", text: "here is your summary: cells are great"}
	up := &fakeProvider{id: "fallback", text: summaryJSON}
	svc := newTestService(garbled, up)

	art, meta, err := svc.GenerateSummary(context.Background(), "notes", "brief")
	require.NoError(t, err)
	assert.Equal(t, "fallback", meta.Provider)
	assert.NotEmpty(t, art.Content)
}

func TestGenerateAllProvidersExhausted(t *testing.T) {
	a := &fakeProvider{id: "a", err: &llm.UnavailableError{Err: errors.New("down")}}
	b := &fakeProvider{id: "b", err: &llm.UnavailableError{Err: errors.New("down")}}
	svc := newTestService(a, b)

	_, _, err := svc.GenerateSummary(context.Background(), "notes", "brief")
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	// failures are never cached: the next attempt retries providers
	_, _, err = svc.GenerateSummary(context.Background(), "notes", "brief")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, 2, a.calls)
}

func TestGenerateQuizValidation(t *testing.T) {
	p := &fakeProvider{id: "primary", text: quizJSON}
	svc := newTestService(p)

	quiz, _, err := svc.GenerateQuiz(context.Background(), "cell biology notes", "easy", 1)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "b", quiz.Questions[0].CorrectAnswer)
	assert.Equal(t, 1, quiz.Questions[0].Points)
}

func TestGenerateQuizRejectsMultipleCorrectOptions(t *testing.T) {
	bad := `{"title":"Broken","questions":[{"kind":"multiple_choice","prompt":"Pick one","options":[{"id":"a","text":"X","is_correct":true},{"id":"b","text":"Y","is_correct":true}],"points":1}]}`
	p := &fakeProvider{id: "primary", text: bad}
	svc := newTestService(p)

	_, _, err := svc.GenerateQuiz(context.Background(), "notes", "easy", 1)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGenerateFlashcardsBatchSingleCall(t *testing.T) {
	p := &fakeProvider{id: "primary", text: batchJSON}
	svc := newTestService(p)

	materials := []BatchMaterial{
		{ID: "m1", Content: "chapter one"},
		{ID: "m2", Content: "chapter two"},
		{ID: "m3", Content: "chapter three"},
		{ID: "m4", Content: "chapter four"},
		{ID: "m5", Content: "chapter five"},
	}

	sets, meta, err := svc.GenerateFlashcardsBatch(context.Background(), materials, 1)
	require.NoError(t, err)
	require.Len(t, sets, 5)
	assert.Equal(t, 1, p.calls, "batch must issue exactly one provider call")
	assert.False(t, meta.CacheHit)
	assert.Equal(t, int64(1), svc.Usage().TotalCalls)

	// identical batch is a cache hit
	_, meta, err = svc.GenerateFlashcardsBatch(context.Background(), materials, 1)
	require.NoError(t, err)
	assert.True(t, meta.CacheHit)
	assert.Equal(t, 1, p.calls)
}

func TestGenerateBatchCountMismatchFails(t *testing.T) {
	p := &fakeProvider{id: "primary", text: batchJSON}
	svc := newTestService(p)

	materials := []BatchMaterial{
		{ID: "m1", Content: "chapter one"},
		{ID: "m2", Content: "chapter two"},
	}
	_, _, err := svc.GenerateFlashcardsBatch(context.Background(), materials, 1)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestGenerateNudgeBypassesCache(t *testing.T) {
	p := &fakeProvider{id: "primary", text: nudgeJSON}
	svc := newTestService(p)
	ctx := context.Background()

	_, meta, err := svc.GenerateNudge(ctx, "Sam", "4 day streak")
	require.NoError(t, err)
	assert.False(t, meta.CacheHit)

	_, meta, err = svc.GenerateNudge(ctx, "Sam", "4 day streak")
	require.NoError(t, err)
	assert.False(t, meta.CacheHit)
	assert.Equal(t, 2, p.calls)
}

func TestGenerateOrientationCachedPerLevel(t *testing.T) {
	p := &fakeProvider{id: "primary", text: nudgeJSON}
	svc := newTestService(p)
	ctx := context.Background()

	_, meta, err := svc.GenerateOrientation(ctx, "college")
	require.NoError(t, err)
	assert.False(t, meta.CacheHit)

	_, meta, err = svc.GenerateOrientation(ctx, "college")
	require.NoError(t, err)
	assert.True(t, meta.CacheHit)

	_, meta, err = svc.GenerateOrientation(ctx, "graduate")
	require.NoError(t, err)
	assert.False(t, meta.CacheHit)
	assert.Equal(t, 2, p.calls)
}

func TestClearCacheResetsStats(t *testing.T) {
	p := &fakeProvider{id: "primary", text: summaryJSON}
	svc := newTestService(p)
	ctx := context.Background()

	_, _, err := svc.GenerateSummary(ctx, "notes", "brief")
	require.NoError(t, err)
	_, _, err = svc.GenerateSummary(ctx, "notes", "brief")
	require.NoError(t, err)

	require.NoError(t, svc.ClearCache(ctx))
	stats := svc.CacheStats(ctx)
	assert.Zero(t, stats.Size)
	assert.Zero(t, stats.Hits)

	// cleared cache means the next call pays again
	_, meta, err := svc.GenerateSummary(ctx, "notes", "brief")
	require.NoError(t, err)
	assert.False(t, meta.CacheHit)
	assert.Equal(t, 2, p.calls)
}
