package service

import "github.com/alexanderramin/uniconvert/internal/domain"

// MergeSuggestions attaches suggestions to invalid rows by exact course-name
// match and returns the updated rows and the number of rows that gained a
// suggestion.
//
// Rows are visited in order. Each invalid row consumes the first unconsumed
// suggestion with its name, so a suggestion attaches to at most one row. A
// consumed NO_MATCH suggestion attaches nothing. Status and code are never
// changed, and suggestions from earlier batches are left in place.
func MergeSuggestions(rows []domain.GradeRow, suggestions []domain.Suggestion) ([]domain.GradeRow, int) {
	byName := make(map[string][]int, len(suggestions))
	for i, s := range suggestions {
		byName[s.OriginalName] = append(byName[s.OriginalName], i)
	}

	out := make([]domain.GradeRow, len(rows))
	attached := 0
	for i, row := range rows {
		out[i] = row
		if row.Status != domain.StatusInvalid {
			continue
		}
		queue := byName[row.CourseName]
		if len(queue) == 0 {
			continue
		}
		s := suggestions[queue[0]]
		byName[row.CourseName] = queue[1:]

		if s.IsNoMatch() {
			continue
		}
		out[i].SuggestedCode = s.SuggestedCode
		out[i].SuggestedReason = s.Reason
		attached++
	}
	return out, attached
}
