// Package service owns the grade dataset for one session and coordinates
// curriculum loading, validation, AI suggestions, and export.
package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/uniconvert/internal/curriculum"
	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/importer"
	"github.com/alexanderramin/uniconvert/internal/intelligence"
	"github.com/alexanderramin/uniconvert/internal/spreadsheet"
	"github.com/alexanderramin/uniconvert/internal/validation"
	"github.com/google/uuid"
)

// SheetDecoder reads the first sheet of a workbook into header-keyed records.
type SheetDecoder func(r io.Reader) ([]map[string]string, error)

// SheetEncoder writes export records as a workbook.
type SheetEncoder func(w io.Writer, records []domain.ExportRecord) error

// Option configures a Dataset.
type Option func(*Dataset)

// WithDecoder sets the workbook decoder used for curriculum and grade files.
func WithDecoder(dec SheetDecoder) Option {
	return func(d *Dataset) { d.decode = dec }
}

// WithEncoder sets the workbook encoder used by Export.
func WithEncoder(enc SheetEncoder) Option {
	return func(d *Dataset) { d.encode = enc }
}

// WithSuggester enables AI code suggestions.
func WithSuggester(s intelligence.SuggestionService) Option {
	return func(d *Dataset) { d.suggester = s }
}

// WithObserver receives an event for every dataset operation. Nil is ignored.
func WithObserver(obs UseCaseObserver) Option {
	return func(d *Dataset) {
		if obs != nil {
			d.observer = obs
		}
	}
}

// WithClock overrides the time source used for export filenames.
func WithClock(now func() time.Time) Option {
	return func(d *Dataset) { d.now = now }
}

// Dataset is the session's grade table. All methods are meant to be called
// from a single control goroutine; only FetchSuggestions may run elsewhere.
type Dataset struct {
	sessionID string
	rows      []domain.GradeRow
	nextID    int64
	store     *curriculum.Store
	lastErr   string
	pending   *SuggestionBatch

	decode    SheetDecoder
	encode    SheetEncoder
	suggester intelligence.SuggestionService
	observer  UseCaseObserver
	now       func() time.Time
}

// NewDataset creates an empty dataset with no curriculum.
func NewDataset(opts ...Option) *Dataset {
	d := &Dataset{
		sessionID: uuid.NewString(),
		nextID:    1,
		store:     curriculum.NewStore(),
		decode:    spreadsheet.Decode,
		encode:    spreadsheet.Encode,
		observer:  NoopUseCaseObserver{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SessionID identifies this dataset in logs.
func (d *Dataset) SessionID() string { return d.sessionID }

// AddRows validates each draft against the current curriculum and appends it.
// Existing rows are not revalidated.
func (d *Dataset) AddRows(drafts []domain.RowDraft) []domain.GradeRow {
	start := d.now()
	codes, loaded := d.store.CodeSet(), d.store.Loaded()

	added := make([]domain.GradeRow, 0, len(drafts))
	for _, draft := range drafts {
		row := validation.Validate(domain.NewGradeRow(d.nextID, draft), codes, loaded)
		d.nextID++
		added = append(added, row)
	}
	d.rows = append(d.rows, added...)

	d.observe(context.Background(), "add_rows", start, nil, map[string]any{
		"added": len(added),
		"total": len(d.rows),
	})
	return cloneRows(added)
}

// DeleteRow removes the row with id. Unknown ids are ignored.
func (d *Dataset) DeleteRow(id int64) {
	start := d.now()
	removed := false
	for i, r := range d.rows {
		if r.RowID == id {
			d.rows = append(d.rows[:i:i], d.rows[i+1:]...)
			removed = true
			break
		}
	}
	d.observe(context.Background(), "delete_row", start, nil, map[string]any{
		"row_id":  id,
		"removed": removed,
	})
}

// ClearAll drops every row and the latest error. The curriculum is kept.
func (d *Dataset) ClearAll() {
	start := d.now()
	n := len(d.rows)
	d.rows = nil
	d.lastErr = ""
	d.observe(context.Background(), "clear_all", start, nil, map[string]any{"removed": n})
}

// OnCurriculumLoaded replaces the curriculum with records and revalidates
// every row. It returns the number of curriculum entries loaded.
func (d *Dataset) OnCurriculumLoaded(records []map[string]string) int {
	start := d.now()
	entries := importer.CurriculumFromRecords(importer.NormalizeAll(records))
	d.store.Load(entries)

	var stats domain.Stats
	d.rows, stats = validation.RevalidateAll(d.rows, d.store.CodeSet(), d.store.Loaded())
	d.lastErr = ""

	d.observe(context.Background(), "load_curriculum", start, nil, map[string]any{
		"entries": len(entries),
		"codes":   len(d.store.CodeSet()),
		"valid":   stats.Valid,
		"invalid": stats.Invalid,
	})
	return len(entries)
}

// Rows returns a copy of the row list in insertion order.
func (d *Dataset) Rows() []domain.GradeRow {
	return cloneRows(d.rows)
}

// Row returns the row with id.
func (d *Dataset) Row(id int64) (domain.GradeRow, error) {
	i := d.indexOf(id)
	if i < 0 {
		return domain.GradeRow{}, ErrRowNotFound
	}
	return d.rows[i], nil
}

// InvalidRows returns the rows whose code is not in the curriculum.
func (d *Dataset) InvalidRows() []domain.GradeRow {
	var out []domain.GradeRow
	for _, r := range d.rows {
		if r.Status == domain.StatusInvalid {
			out = append(out, r)
		}
	}
	return out
}

// Stats is recomputed from the row list on every call.
func (d *Dataset) Stats() domain.Stats {
	return validation.ComputeStats(d.rows)
}

func (d *Dataset) Curriculum() []domain.CurriculumEntry {
	return d.store.Entries()
}

func (d *Dataset) CurriculumLoaded() bool {
	return d.store.Loaded()
}

// LastError is the most recent user-facing failure, or "".
func (d *Dataset) LastError() string {
	return d.lastErr
}

// AIProcessing reports whether a suggestion batch is pending.
func (d *Dataset) AIProcessing() bool {
	return d.pending != nil
}

func (d *Dataset) indexOf(id int64) int {
	for i, r := range d.rows {
		if r.RowID == id {
			return i
		}
	}
	return -1
}

func (d *Dataset) observe(ctx context.Context, name string, start time.Time, err error, fields map[string]any) {
	observeUseCase(ctx, d.observer, UseCaseEvent{
		Name:      name,
		SessionID: d.sessionID,
		StartedAt: start,
		Duration:  d.now().Sub(start),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func cloneRows(rows []domain.GradeRow) []domain.GradeRow {
	if rows == nil {
		return nil
	}
	return append([]domain.GradeRow(nil), rows...)
}
