package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/domain"
)

// StatsView is everything the stats panel shows.
type StatsView struct {
	Stats            domain.Stats
	CurriculumLoaded bool
	CurriculumSize   int
	AIProcessing     bool
	LastError        string
}

// FormatStats renders the stats line, a valid-ratio bar, and any latest error.
func FormatStats(v StatsView) string {
	var b strings.Builder

	s := v.Stats
	b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d",
		Bold("Total"), s.Total,
		StyleGreen.Render("Valid"), s.Valid,
		StyleRed.Render("Invalid"), s.Invalid,
	))
	if s.Warning > 0 {
		b.WriteString(fmt.Sprintf("  %s %d", StyleYellow.Render("Unchecked"), s.Warning))
	}
	if s.Total > 0 {
		b.WriteString("  " + RenderProgress(float64(s.Valid)/float64(s.Total), 20))
	}
	b.WriteString("\n")

	if v.CurriculumLoaded {
		b.WriteString(Dim(fmt.Sprintf("Curriculum: %d course(s) loaded", v.CurriculumSize)))
	} else {
		b.WriteString(StyleYellow.Render("Curriculum: " + domain.MsgCurriculumMissing))
	}
	if v.AIProcessing {
		b.WriteString("  " + StylePurple.Render("AI matching in progress…"))
	}
	if v.LastError != "" {
		b.WriteString("\n" + StyleRed.Render(v.LastError))
	}
	return b.String()
}
