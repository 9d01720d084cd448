package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/domain"
)

const maxCourseWidth = 36

// FormatRows renders the grade table. Attached AI suggestions are shown
// next to the row message.
func FormatRows(rows []domain.GradeRow) string {
	if len(rows) == 0 {
		return Dim("No rows yet. Use 'add', 'bulk', or 'import <file>'.")
	}

	headers := []string{"ID", "NIM", "COURSE", "GRADE", "LETTER", "CODE", "CURRICULUM", "STATUS", "NOTE"}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			Dim(fmt.Sprintf("#%d", r.RowID)),
			OrDash(r.StudentID),
			StyleFg.Render(Truncate(r.CourseName, maxCourseWidth)),
			FormatGrade(r.NumericGrade),
			OrDash(r.LetterGrade),
			CodeCell(r.EquivalenceCode),
			OrDash(r.CurriculumLabel),
			StatusBadge(r.Status),
			rowNote(r),
		})
	}
	return RenderTable(headers, table, 0, 3)
}

func rowNote(r domain.GradeRow) string {
	note := StatusColor(r.Status).Render(r.Message)
	if r.HasSuggestion() {
		note += "  " + FormatSuggestion(r)
	}
	return note
}

// FormatSuggestion renders an attached suggestion as "→ IF101 (reason)".
func FormatSuggestion(r domain.GradeRow) string {
	if !r.HasSuggestion() {
		return ""
	}
	s := StylePurple.Render("→ " + r.SuggestedCode)
	if r.SuggestedReason != "" {
		s += " " + Dim("("+r.SuggestedReason+")")
	}
	return s
}

// FormatAdded summarizes rows that were just appended.
func FormatAdded(rows []domain.GradeRow) string {
	if len(rows) == 0 {
		return Dim("No rows added.")
	}
	var counts [3]int
	for _, r := range rows {
		switch r.Status {
		case domain.StatusValid:
			counts[0]++
		case domain.StatusInvalid:
			counts[1]++
		case domain.StatusWarning:
			counts[2]++
		}
	}
	parts := []string{StyleGreen.Render(fmt.Sprintf("Added %d row(s)", len(rows)))}
	if counts[0] > 0 {
		parts = append(parts, StyleGreen.Render(fmt.Sprintf("%d valid", counts[0])))
	}
	if counts[1] > 0 {
		parts = append(parts, StyleRed.Render(fmt.Sprintf("%d invalid", counts[1])))
	}
	if counts[2] > 0 {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("%d unchecked", counts[2])))
	}
	return strings.Join(parts, Dim(" · "))
}
