package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/uniconvert/internal/cli/formatter"
	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/service"
)

func statsView(ds *service.Dataset) formatter.StatsView {
	return formatter.StatsView{
		Stats:            ds.Stats(),
		CurriculumLoaded: ds.CurriculumLoaded(),
		CurriculumSize:   len(ds.Curriculum()),
		AIProcessing:     ds.AIProcessing(),
		LastError:        ds.LastError(),
	}
}

// formatSuggestResult reports the outcome of a suggestion round and lists the
// rows that now carry a suggestion.
func formatSuggestResult(ds *service.Dataset, attached int, err error) string {
	switch {
	case errors.Is(err, service.ErrNoInvalidRows):
		return formatter.Dim("No invalid rows to match.")
	case err != nil:
		return formatter.Error(err)
	case attached == 0:
		return formatter.Dim("No suggestion matched an invalid row.")
	}

	var suggested []domain.GradeRow
	for _, r := range ds.Rows() {
		if r.HasSuggestion() {
			suggested = append(suggested, r)
		}
	}
	return formatter.StylePurple.Render(fmt.Sprintf("%d suggestion(s) attached.", attached)) +
		" " + formatter.Dim("Use 'apply <id>' to accept one.") + "\n" +
		formatter.FormatRows(suggested)
}

func formatApplied(n int) string {
	if n == 0 {
		return formatter.Dim("No suggestions to apply.")
	}
	return formatter.StyleGreen.Render(fmt.Sprintf("Applied %d suggestion(s).", n))
}

func formatExported(path string) string {
	return formatter.StyleGreen.Render("Exported ") + formatter.Bold(path)
}

// exportTo writes the recap workbook into dir and returns its path. A failed
// write leaves no partial file behind.
func exportTo(ctx context.Context, ds *service.Dataset, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, ds.ExportFilename())
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	if err := ds.Export(ctx, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}
