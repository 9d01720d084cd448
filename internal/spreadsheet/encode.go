package spreadsheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/importer"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the name of the single sheet in an export workbook.
const ExportSheetName = "Hasil Konversi"

// ExportFilePrefix prefixes every export file name.
const ExportFilePrefix = "Rekap_Konversi_Gabungan_"

// Encode writes records as a single-sheet workbook with the export header row.
func Encode(w io.Writer, records []domain.ExportRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, h := range importer.ExportHeaders {
		if err := setCell(f, col+1, 1, h); err != nil {
			return err
		}
	}
	for i, rec := range records {
		row := i + 2
		values := []any{
			rec.StudentID,
			rec.CourseName,
			rec.NumericGrade,
			rec.LetterGrade,
			rec.EquivalenceCode,
			rec.CurriculumLabel,
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// ExportFilename names an export produced at now, e.g.
// Rekap_Konversi_Gabungan_20250615T100000.xlsx.
func ExportFilename(now time.Time) string {
	iso := now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	stamp := strings.NewReplacer("-", "", ":", "", ".", "").Replace(iso)
	if len(stamp) > 15 {
		stamp = stamp[:15]
	}
	return ExportFilePrefix + stamp + ".xlsx"
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(ExportSheetName, cell, v); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	return nil
}
