package importer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/uniconvert/internal/domain"
)

// ErrMissingField is returned when a required entry field is blank.
var ErrMissingField = errors.New("required field missing")

// BulkEntry is one bulk submission: newline-separated column blocks for a
// single student. Names is required; the other blocks may be empty.
type BulkEntry struct {
	StudentID       string
	CurriculumLabel string

	Names         string
	NumericGrades string
	LetterGrades  string
	Codes         string
}

// SingleEntry is a one-row submission. NumericGrade is the raw text typed
// by the user.
type SingleEntry struct {
	StudentID       string
	CourseName      string
	NumericGrade    string
	LetterGrade     string
	EquivalenceCode string
	CurriculumLabel string
}

// BuildBulkRows assembles row drafts from a bulk entry.
//
// The name column is authoritative: exactly one draft is produced per
// non-blank name line, in order. A secondary column with fewer lines than
// the names is padded with "" (or 0 for numeric grades); extra lines in a
// secondary column are ignored. An empty name block yields no drafts.
func BuildBulkRows(e BulkEntry) []domain.RowDraft {
	names := CleanLines(e.Names)
	if len(names) == 0 {
		return nil
	}
	grades := CleanLines(e.NumericGrades)
	letters := CleanLines(e.LetterGrades)
	codes := CleanLines(e.Codes)

	drafts := make([]domain.RowDraft, 0, len(names))
	for i, name := range names {
		drafts = append(drafts, domain.RowDraft{
			StudentID:       e.StudentID,
			CourseName:      name,
			NumericGrade:    ParseGrade(lineAt(grades, i)),
			LetterGrade:     lineAt(letters, i),
			EquivalenceCode: lineAt(codes, i),
			CurriculumLabel: e.CurriculumLabel,
		})
	}
	return drafts
}

// BuildSingleRow turns a single entry into a draft. Student id and course
// name are required.
func BuildSingleRow(e SingleEntry) (domain.RowDraft, error) {
	if strings.TrimSpace(e.StudentID) == "" {
		return domain.RowDraft{}, fmt.Errorf("%w: student id", ErrMissingField)
	}
	if strings.TrimSpace(e.CourseName) == "" {
		return domain.RowDraft{}, fmt.Errorf("%w: course name", ErrMissingField)
	}
	return domain.RowDraft{
		StudentID:       e.StudentID,
		CourseName:      e.CourseName,
		NumericGrade:    ParseGrade(e.NumericGrade),
		LetterGrade:     e.LetterGrade,
		EquivalenceCode: e.EquivalenceCode,
		CurriculumLabel: e.CurriculumLabel,
	}, nil
}

// CleanLines splits text on newlines, trims every line, and drops blanks.
func CleanLines(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseGrade parses a numeric grade, accepting a comma as the decimal
// separator. Blank or unparsable input yields 0.
func ParseGrade(s string) float64 {
	v, ok := parseNumber(s)
	if !ok {
		return 0
	}
	return v
}

func parseNumber(s string) (float64, bool) {
	s = strings.Replace(strings.TrimSpace(s), ",", ".", 1)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
