package service

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/importer"
	"github.com/alexanderramin/uniconvert/internal/spreadsheet"
)

// LoadCurriculumFile decodes a curriculum workbook and loads it. On failure
// the previous curriculum and rows are kept and LastError is set.
func (d *Dataset) LoadCurriculumFile(ctx context.Context, r io.Reader) (int, error) {
	records, err := d.decode(r)
	if err != nil {
		d.lastErr = "failed to read curriculum file: " + err.Error()
		d.observe(ctx, "load_curriculum", d.now(), err, nil)
		return 0, fmt.Errorf("reading curriculum file: %w", err)
	}
	return d.OnCurriculumLoaded(records), nil
}

// ImportGradeFile decodes a workbook of grade rows and appends them. Rows
// without a course name are skipped.
func (d *Dataset) ImportGradeFile(ctx context.Context, r io.Reader) ([]domain.GradeRow, error) {
	records, err := d.decode(r)
	if err != nil {
		d.lastErr = "failed to read grade file: " + err.Error()
		d.observe(ctx, "import_grades", d.now(), err, nil)
		return nil, fmt.Errorf("reading grade file: %w", err)
	}
	drafts := importer.GradeRowsFromRecords(importer.NormalizeAll(records))
	return d.AddRows(drafts), nil
}

// Export writes every row, in order, as a single-sheet workbook.
func (d *Dataset) Export(ctx context.Context, w io.Writer) (err error) {
	start := d.now()
	defer func() {
		d.observe(ctx, "export", start, err, map[string]any{"rows": len(d.rows)})
	}()

	if len(d.rows) == 0 {
		return ErrNothingToExport
	}
	records := make([]domain.ExportRecord, len(d.rows))
	for i, r := range d.rows {
		records[i] = r.Export()
	}
	if err = d.encode(w, records); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// ExportFilename is the default export file name for the current time.
func (d *Dataset) ExportFilename() string {
	return spreadsheet.ExportFilename(d.now())
}
