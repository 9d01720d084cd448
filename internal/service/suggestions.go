package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/intelligence"
	"github.com/google/uuid"
)

// SuggestionBatch is a snapshot of the invalid rows and curriculum taken when
// a suggestion request starts.
type SuggestionBatch struct {
	ID         string
	Invalid    []intelligence.InvalidCourse
	Curriculum []domain.CurriculumEntry
	StartedAt  time.Time
}

// BeginSuggestions snapshots the request payload and marks the dataset as
// AI-processing. Only one batch may be pending at a time.
func (d *Dataset) BeginSuggestions() (*SuggestionBatch, error) {
	switch {
	case d.pending != nil:
		return nil, ErrSuggestionInProgress
	case d.suggester == nil:
		return nil, ErrNoSuggester
	case !d.store.Loaded():
		return nil, ErrNoCurriculum
	}

	invalid := d.InvalidRows()
	if len(invalid) == 0 {
		return nil, ErrNoInvalidRows
	}

	batch := &SuggestionBatch{
		ID:         uuid.NewString(),
		Invalid:    make([]intelligence.InvalidCourse, len(invalid)),
		Curriculum: d.store.Entries(),
		StartedAt:  d.now(),
	}
	for i, r := range invalid {
		batch.Invalid[i] = intelligence.InvalidCourse{Name: r.CourseName, CurrentCode: r.EquivalenceCode}
	}
	d.pending = batch
	return batch, nil
}

// FetchSuggestions performs the AI call for batch. It touches no dataset
// state and may run on another goroutine.
func (d *Dataset) FetchSuggestions(ctx context.Context, batch *SuggestionBatch) ([]domain.Suggestion, error) {
	if d.suggester == nil {
		return nil, ErrNoSuggester
	}
	return d.suggester.Suggest(ctx, batch.Invalid, batch.Curriculum)
}

// CompleteSuggestions finishes the pending batch. On failure no row changes
// and LastError is set; otherwise suggestions are merged into the current
// rows. It returns the number of rows that gained a suggestion.
func (d *Dataset) CompleteSuggestions(ctx context.Context, batch *SuggestionBatch, suggestions []domain.Suggestion, fetchErr error) (int, error) {
	if batch == nil || d.pending == nil || d.pending.ID != batch.ID {
		return 0, ErrStaleBatch
	}
	d.pending = nil

	fields := map[string]any{
		"batch_id": batch.ID,
		"invalid":  len(batch.Invalid),
	}
	if fetchErr != nil {
		d.lastErr = "AI matching failed: " + fetchErr.Error()
		d.observe(ctx, "request_suggestions", batch.StartedAt, fetchErr, fields)
		return 0, fetchErr
	}

	var attached int
	d.rows, attached = MergeSuggestions(d.rows, suggestions)
	fields["returned"] = len(suggestions)
	fields["attached"] = attached
	d.observe(ctx, "request_suggestions", batch.StartedAt, nil, fields)
	return attached, nil
}

// RequestSuggestions runs a whole suggestion round on the calling goroutine.
// Having no invalid rows is not an error.
func (d *Dataset) RequestSuggestions(ctx context.Context) (int, error) {
	batch, err := d.BeginSuggestions()
	if errors.Is(err, ErrNoInvalidRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	suggestions, fetchErr := d.FetchSuggestions(ctx, batch)
	return d.CompleteSuggestions(ctx, batch, suggestions, fetchErr)
}

// ApplySuggestion sets the row's code to code and marks it valid without
// checking the curriculum.
func (d *Dataset) ApplySuggestion(id int64, code string) (err error) {
	start := d.now()
	defer func() {
		d.observe(context.Background(), "apply_suggestion", start, err, map[string]any{
			"row_id": id,
			"code":   code,
		})
	}()

	i := d.indexOf(id)
	if i < 0 {
		return fmt.Errorf("apply suggestion to row %d: %w", id, ErrRowNotFound)
	}
	row := &d.rows[i]
	row.EquivalenceCode = code
	row.Status = domain.StatusValid
	row.Message = domain.MsgCorrectedByAI
	row.ClearSuggestion()
	return nil
}

// ApplyAttached applies the row's own suggestion.
func (d *Dataset) ApplyAttached(id int64) error {
	row, err := d.Row(id)
	if err != nil {
		return fmt.Errorf("apply suggestion to row %d: %w", id, err)
	}
	if !row.HasSuggestion() {
		return fmt.Errorf("row %d: %w", id, ErrNoSuggestion)
	}
	return d.ApplySuggestion(id, row.SuggestedCode)
}

// ApplyAllSuggestions applies every attached suggestion and returns how many
// rows changed.
func (d *Dataset) ApplyAllSuggestions() int {
	n := 0
	for _, r := range d.Rows() {
		if r.HasSuggestion() && d.ApplySuggestion(r.RowID, r.SuggestedCode) == nil {
			n++
		}
	}
	return n
}
