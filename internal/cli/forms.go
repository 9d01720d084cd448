package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/cli/formatter"
	"github.com/alexanderramin/uniconvert/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// uniconvertHuhTheme returns a huh theme using the formatter palette.
func uniconvertHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func requiredField(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}

// bulkFormValues backs the bulk entry form. Each text area holds one value
// per line; the course-name column decides how many rows are created.
type bulkFormValues struct {
	StudentID       string
	CurriculumLabel string
	Names           string
	NumericGrades   string
	LetterGrades    string
	Codes           string
}

func (v *bulkFormValues) entry() importer.BulkEntry {
	return importer.BulkEntry{
		StudentID:       strings.TrimSpace(v.StudentID),
		CurriculumLabel: strings.TrimSpace(v.CurriculumLabel),
		Names:           v.Names,
		NumericGrades:   v.NumericGrades,
		LetterGrades:    v.LetterGrades,
		Codes:           v.Codes,
	}
}

func newBulkForm(v *bulkFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("NIM").
				Placeholder("2101234567").
				Value(&v.StudentID).
				Validate(requiredField("NIM")),
			huh.NewInput().
				Title("Curriculum").
				Description("Applied to every row; kept for the next entry").
				Placeholder("Kurikulum 2024").
				Value(&v.CurriculumLabel),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Course names").
				Description("One per line").
				Lines(6).
				Value(&v.Names).
				Validate(func(s string) error {
					if len(importer.CleanLines(s)) == 0 {
						return fmt.Errorf("enter at least one course name")
					}
					return nil
				}),
			huh.NewText().
				Title("Numeric grades").
				Description("Same order as the names; 85 or 85,5").
				Lines(6).
				Value(&v.NumericGrades),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Letter grades").
				Lines(6).
				Value(&v.LetterGrades),
			huh.NewText().
				Title("Equivalence codes").
				Lines(6).
				Value(&v.Codes),
		),
	).WithTheme(uniconvertHuhTheme()).WithShowHelp(false)
}

// addFormValues backs the single-row entry form.
type addFormValues struct {
	StudentID       string
	CourseName      string
	NumericGrade    string
	LetterGrade     string
	EquivalenceCode string
	CurriculumLabel string
}

func (v *addFormValues) entry() importer.SingleEntry {
	return importer.SingleEntry{
		StudentID:       strings.TrimSpace(v.StudentID),
		CourseName:      strings.TrimSpace(v.CourseName),
		NumericGrade:    strings.TrimSpace(v.NumericGrade),
		LetterGrade:     strings.TrimSpace(v.LetterGrade),
		EquivalenceCode: strings.TrimSpace(v.EquivalenceCode),
		CurriculumLabel: strings.TrimSpace(v.CurriculumLabel),
	}
}

func validateOptionalGrade(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if importer.ParseGrade(s) == 0 && strings.Trim(s, "0.,") != "" {
		return fmt.Errorf("enter a number such as 85 or 85,5")
	}
	return nil
}

func newAddForm(v *addFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("NIM").Value(&v.StudentID).Validate(requiredField("NIM")),
			huh.NewInput().Title("Course name").Value(&v.CourseName).Validate(requiredField("Course name")),
			huh.NewInput().Title("Numeric grade").Placeholder("85").Value(&v.NumericGrade).Validate(validateOptionalGrade),
			huh.NewInput().Title("Letter grade").Placeholder("A").Value(&v.LetterGrade),
			huh.NewInput().Title("Equivalence code").Placeholder("IF101").Value(&v.EquivalenceCode),
			huh.NewInput().Title("Curriculum").Placeholder("Kurikulum 2024").Value(&v.CurriculumLabel),
		),
	).WithTheme(uniconvertHuhTheme()).WithShowHelp(false)
}
