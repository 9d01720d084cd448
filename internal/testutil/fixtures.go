package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/intelligence"
)

var testStudentCounter atomic.Int64

// Row draft options
type DraftOption func(*domain.RowDraft)

func WithStudentID(id string) DraftOption {
	return func(d *domain.RowDraft) {
		d.StudentID = id
	}
}

func WithCode(code string) DraftOption {
	return func(d *domain.RowDraft) {
		d.EquivalenceCode = code
	}
}

func WithGrade(numeric float64, letter string) DraftOption {
	return func(d *domain.RowDraft) {
		d.NumericGrade = numeric
		d.LetterGrade = letter
	}
}

func WithCurriculumLabel(label string) DraftOption {
	return func(d *domain.RowDraft) {
		d.CurriculumLabel = label
	}
}

func NewTestDraft(courseName string, opts ...DraftOption) domain.RowDraft {
	n := testStudentCounter.Add(1)
	d := domain.RowDraft{
		StudentID:       fmt.Sprintf("2101%04d", n),
		CourseName:      courseName,
		NumericGrade:    80,
		LetterGrade:     "A",
		CurriculumLabel: "Kurikulum 2024",
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// CurriculumRecords builds raw curriculum records, as decoded from a sheet,
// from "CODE=Name" pairs.
func CurriculumRecords(pairs ...string) []map[string]string {
	out := make([]map[string]string, 0, len(pairs))
	for _, p := range pairs {
		code, name, ok := strings.Cut(p, "=")
		if !ok {
			name = code
		}
		out = append(out, map[string]string{"Kode MK": code, "Nama MK": name, "SKS": "3"})
	}
	return out
}

// FakeSuggester is an in-memory intelligence.SuggestionService.
type FakeSuggester struct {
	Suggestions []domain.Suggestion
	Err         error

	Calls   int
	Invalid []intelligence.InvalidCourse
}

var _ intelligence.SuggestionService = (*FakeSuggester)(nil)

func (f *FakeSuggester) Suggest(_ context.Context, invalid []intelligence.InvalidCourse, _ []domain.CurriculumEntry) ([]domain.Suggestion, error) {
	f.Calls++
	f.Invalid = invalid
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Suggestions, nil
}
