package importer

import (
	"strings"

	"github.com/alexanderramin/uniconvert/internal/domain"
)

// CurriculumFromRecords maps normalized spreadsheet rows to curriculum
// entries. Columns that are not code, name, or credits land in Extra.
func CurriculumFromRecords(records []map[string]string) []domain.CurriculumEntry {
	entries := make([]domain.CurriculumEntry, 0, len(records))
	for _, rec := range records {
		codeKey, code := lookup(rec, curriculumCodeKeys)
		nameKey, name := lookup(rec, curriculumNameKeys)
		creditsKey, credits := lookup(rec, curriculumCreditsKeys)

		entry := domain.CurriculumEntry{
			Code:       code,
			CourseName: name,
		}
		if strings.TrimSpace(credits) != "" {
			if v, ok := parseNumber(credits); ok {
				entry.Credits = &v
			}
		}

		for k, v := range rec {
			if k == codeKey || k == nameKey || k == creditsKey {
				continue
			}
			if entry.Extra == nil {
				entry.Extra = make(map[string]string)
			}
			entry.Extra[k] = v
		}
		entries = append(entries, entry)
	}
	return entries
}

// GradeRowsFromRecords maps normalized rows of a grade sheet (for example a
// previous export) to row drafts. Rows without a course name are skipped.
func GradeRowsFromRecords(records []map[string]string) []domain.RowDraft {
	drafts := make([]domain.RowDraft, 0, len(records))
	for _, rec := range records {
		name := firstValue(rec, gradeNameKeys)
		if name == "" {
			continue
		}
		drafts = append(drafts, domain.RowDraft{
			StudentID:       firstValue(rec, gradeStudentIDKeys),
			CourseName:      name,
			NumericGrade:    ParseGrade(firstValue(rec, gradeNumericKeys)),
			LetterGrade:     firstValue(rec, gradeLetterKeys),
			EquivalenceCode: firstValue(rec, gradeCodeKeys),
			CurriculumLabel: firstValue(rec, gradeLabelKeys),
		})
	}
	return drafts
}

// firstValue returns the first non-blank value among the alias columns.
func firstValue(rec map[string]string, keys []string) string {
	vals := make([]string, len(keys))
	for i, k := range keys {
		vals[i] = rec[k]
	}
	return domain.FirstNonBlank(vals...)
}

func lookup(rec map[string]string, keys []string) (string, string) {
	for _, k := range keys {
		if v, ok := rec[k]; ok {
			return k, v
		}
	}
	return "", ""
}
