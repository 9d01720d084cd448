package formatter

import (
	"fmt"

	"github.com/alexanderramin/uniconvert/internal/domain"
)

// FormatCurriculumLoaded confirms a curriculum load and the revalidation
// result.
func FormatCurriculumLoaded(entries int, stats domain.Stats) string {
	msg := StyleGreen.Render(fmt.Sprintf("Loaded %d curriculum course(s).", entries))
	if stats.Total == 0 {
		return msg
	}
	return msg + " " + Dim(fmt.Sprintf("Revalidated %d row(s): %d valid, %d invalid.",
		stats.Total, stats.Valid, stats.Invalid))
}

// FormatCurriculum lists curriculum entries with a credit total. Entries
// without credits count as zero.
func FormatCurriculum(entries []domain.CurriculumEntry) string {
	if len(entries) == 0 {
		return StyleYellow.Render(domain.MsgCurriculumMissing)
	}
	rows := make([][]string, 0, len(entries))
	var total float64
	for _, e := range entries {
		credits := Dim("--")
		if e.Credits != nil {
			credits = FormatGrade(*e.Credits)
		}
		total += e.CreditsOr(0)
		rows = append(rows, []string{CodeCell(e.Code), StyleFg.Render(e.CourseName), credits})
	}
	footer := Dim(fmt.Sprintf("%d course(s), %s credit(s)", len(entries), FormatGrade(total)))
	return RenderTable([]string{"CODE", "COURSE", "CREDITS"}, rows, 2) + "\n" + footer
}
