package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/intelligence"
	"github.com/alexanderramin/uniconvert/internal/llm"
	"github.com/alexanderramin/uniconvert/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggestDataset(t *testing.T, fake *testutil.FakeSuggester, opts ...Option) *Dataset {
	t.Helper()
	d := NewDataset(append([]Option{WithSuggester(fake)}, opts...)...)
	d.OnCurriculumLoaded(testutil.CurriculumRecords("IF101=Algoritma", "IF102=Basis Data"))
	d.AddRows([]domain.RowDraft{
		testutil.NewTestDraft("Algoritma", testutil.WithCode("IF101")),
		testutil.NewTestDraft("Algoritma Dasar", testutil.WithCode("OLD1")),
		testutil.NewTestDraft("Sistem Basis Data", testutil.WithCode("OLD2")),
	})
	return d
}

func TestRequestSuggestions_AttachesToInvalidRows(t *testing.T) {
	fake := &testutil.FakeSuggester{Suggestions: []domain.Suggestion{
		{OriginalName: "Algoritma Dasar", SuggestedCode: "IF101", Reason: "same course"},
		{OriginalName: "Sistem Basis Data", SuggestedCode: "IF102", Reason: "renamed"},
	}}
	d := newSuggestDataset(t, fake)

	n, err := d.RequestSuggestions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []intelligence.InvalidCourse{
		{Name: "Algoritma Dasar", CurrentCode: "OLD1"},
		{Name: "Sistem Basis Data", CurrentCode: "OLD2"},
	}, fake.Invalid, "only invalid rows are sent")

	rows := d.Rows()
	assert.False(t, rows[0].HasSuggestion())
	assert.Equal(t, "IF101", rows[1].SuggestedCode)
	assert.Equal(t, domain.StatusInvalid, rows[1].Status)
	assert.False(t, d.AIProcessing())
}

func TestRequestSuggestions_FailureLeavesRowsUntouched(t *testing.T) {
	fake := &testutil.FakeSuggester{Err: llm.ErrMissingAPIKey}
	d := newSuggestDataset(t, fake)
	d.rows[2].SuggestedCode = "IF102"
	before := d.Rows()

	n, err := d.RequestSuggestions(context.Background())

	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Equal(t, before, d.Rows(), "earlier suggestions are kept, nothing is attached")
	assert.Contains(t, d.LastError(), "AI matching failed")
	assert.False(t, d.AIProcessing())
}

func TestRequestSuggestions_NoInvalidRows(t *testing.T) {
	fake := &testutil.FakeSuggester{}
	d := NewDataset(WithSuggester(fake))
	d.OnCurriculumLoaded(testutil.CurriculumRecords("IF101=Algoritma"))
	d.AddRows([]domain.RowDraft{testutil.NewTestDraft("Algoritma", testutil.WithCode("IF101"))})

	n, err := d.RequestSuggestions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, fake.Calls)
}

func TestBeginSuggestions_Preconditions(t *testing.T) {
	_, err := NewDataset().BeginSuggestions()
	assert.ErrorIs(t, err, ErrNoSuggester)

	_, err = NewDataset(WithSuggester(&testutil.FakeSuggester{})).BeginSuggestions()
	assert.ErrorIs(t, err, ErrNoCurriculum)
}

func TestBeginSuggestions_SecondBatchRejectedWhilePending(t *testing.T) {
	d := newSuggestDataset(t, &testutil.FakeSuggester{})

	batch, err := d.BeginSuggestions()
	require.NoError(t, err)
	assert.True(t, d.AIProcessing())
	assert.NotEmpty(t, batch.ID)
	assert.Len(t, batch.Invalid, 2)

	_, err = d.BeginSuggestions()
	assert.ErrorIs(t, err, ErrSuggestionInProgress)

	_, err = d.CompleteSuggestions(context.Background(), batch, nil, nil)
	require.NoError(t, err)
	assert.False(t, d.AIProcessing())
}

func TestCompleteSuggestions_StaleBatch(t *testing.T) {
	d := newSuggestDataset(t, &testutil.FakeSuggester{})
	batch, err := d.BeginSuggestions()
	require.NoError(t, err)

	_, err = d.CompleteSuggestions(context.Background(), &SuggestionBatch{ID: "other"}, nil, nil)
	assert.ErrorIs(t, err, ErrStaleBatch)
	assert.True(t, d.AIProcessing(), "pending batch is still pending")

	_, err = d.CompleteSuggestions(context.Background(), batch, nil, nil)
	require.NoError(t, err)
	_, err = d.CompleteSuggestions(context.Background(), batch, nil, nil)
	assert.ErrorIs(t, err, ErrStaleBatch)
}

func TestCompleteSuggestions_MergesIntoCurrentRows(t *testing.T) {
	d := newSuggestDataset(t, &testutil.FakeSuggester{})
	batch, err := d.BeginSuggestions()
	require.NoError(t, err)

	// Row deleted while the request is in flight.
	d.DeleteRow(d.Rows()[1].RowID)

	n, err := d.CompleteSuggestions(context.Background(), batch, []domain.Suggestion{
		{OriginalName: "Algoritma Dasar", SuggestedCode: "IF101"},
		{OriginalName: "Sistem Basis Data", SuggestedCode: "IF102"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, d.Rows(), 2)
}

func TestCompleteSuggestions_ErrorRecordedAndObserved(t *testing.T) {
	obs := &captureObserver{}
	d := newSuggestDataset(t, &testutil.FakeSuggester{}, WithObserver(obs))
	batch, err := d.BeginSuggestions()
	require.NoError(t, err)

	fetchErr := errors.New("connection reset")
	_, err = d.CompleteSuggestions(context.Background(), batch, nil, fetchErr)

	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, "AI matching failed: connection reset", d.LastError())
	last := obs.events[len(obs.events)-1]
	assert.Equal(t, "request_suggestions", last.Name)
	assert.False(t, last.Success)
	assert.Equal(t, batch.ID, last.Fields["batch_id"])
}

func TestApplySuggestion_UnconditionalOverride(t *testing.T) {
	d := newSuggestDataset(t, &testutil.FakeSuggester{})
	row := d.Rows()[1]
	d.rows[1].SuggestedCode = "IF101"
	d.rows[1].SuggestedReason = "same"

	err := d.ApplySuggestion(row.RowID, "NEW1")

	require.NoError(t, err)
	got, err := d.Row(row.RowID)
	require.NoError(t, err)
	assert.Equal(t, "NEW1", got.EquivalenceCode)
	assert.Equal(t, domain.StatusValid, got.Status, "not re-checked against the curriculum")
	assert.Equal(t, domain.MsgCorrectedByAI, got.Message)
	assert.False(t, got.HasSuggestion())
	assert.Empty(t, got.SuggestedReason)
	assertStatsConsistent(t, d)
}

func TestApplySuggestion_UnknownRow(t *testing.T) {
	d := newSuggestDataset(t, &testutil.FakeSuggester{})
	before := d.Rows()

	err := d.ApplySuggestion(404, "IF101")

	assert.ErrorIs(t, err, ErrRowNotFound)
	assert.Equal(t, before, d.Rows())
}

func TestApplyAttached(t *testing.T) {
	d := newSuggestDataset(t, &testutil.FakeSuggester{})
	rows := d.Rows()

	assert.ErrorIs(t, d.ApplyAttached(rows[1].RowID), ErrNoSuggestion)
	assert.ErrorIs(t, d.ApplyAttached(404), ErrRowNotFound)

	d.rows[1].SuggestedCode = "IF101"
	require.NoError(t, d.ApplyAttached(rows[1].RowID))

	got, _ := d.Row(rows[1].RowID)
	assert.Equal(t, "IF101", got.EquivalenceCode)
}

func TestApplyAllSuggestions(t *testing.T) {
	fake := &testutil.FakeSuggester{Suggestions: []domain.Suggestion{
		{OriginalName: "Algoritma Dasar", SuggestedCode: "IF101"},
		{OriginalName: "Sistem Basis Data", SuggestedCode: "IF102"},
	}}
	d := newSuggestDataset(t, fake)
	_, err := d.RequestSuggestions(context.Background())
	require.NoError(t, err)

	n := d.ApplyAllSuggestions()

	assert.Equal(t, 2, n)
	assert.Equal(t, domain.Stats{Total: 3, Valid: 3}, d.Stats())
}
