// Package spreadsheet reads and writes .xlsx workbooks.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrDecode wraps every failure to read a workbook.
var ErrDecode = errors.New("spreadsheet decode failed")

// Decode reads the first sheet of an .xlsx workbook and returns one record
// per data row, keyed by the header row. Blank rows are skipped, empty cells
// are omitted, and repeated headers get a numeric suffix ("name_1").
func Decode(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrDecode)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrDecode, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := headerKeys(rows[0])
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(headers))
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" || cell == "" {
				continue
			}
			rec[headers[i]] = cell
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func headerKeys(row []string) []string {
	seen := make(map[string]int, len(row))
	keys := make([]string, len(row))
	for i, h := range row {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		n := seen[h]
		seen[h] = n + 1
		if n > 0 {
			h = fmt.Sprintf("%s_%d", h, n)
		}
		keys[i] = h
	}
	return keys
}
