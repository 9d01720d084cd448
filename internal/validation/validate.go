// Package validation checks grade rows against the curriculum code set.
// Every function here is pure.
package validation

import (
	"github.com/alexanderramin/uniconvert/internal/curriculum"
	"github.com/alexanderramin/uniconvert/internal/domain"
)

// Validate returns row with Status and Message set for the given code set.
// When loaded is false every row is a warning regardless of its code.
func Validate(row domain.GradeRow, codes curriculum.CodeSet, loaded bool) domain.GradeRow {
	row.Status, row.Message = Check(row.EquivalenceCode, codes, loaded)
	return row
}

// Check computes the status and message for a single code.
func Check(code string, codes curriculum.CodeSet, loaded bool) (domain.ValidationStatus, string) {
	if !loaded {
		return domain.StatusWarning, domain.MsgCurriculumMissing
	}
	if codes.Contains(code) {
		return domain.StatusValid, domain.MsgCodeValid
	}
	return domain.StatusInvalid, domain.MsgCodeNotFound
}

// RevalidateAll re-checks every row and returns a new slice together with
// the recomputed stats. Only Status and Message change.
func RevalidateAll(rows []domain.GradeRow, codes curriculum.CodeSet, loaded bool) ([]domain.GradeRow, domain.Stats) {
	out := make([]domain.GradeRow, len(rows))
	stats := domain.Stats{Total: len(rows)}
	for i, r := range rows {
		out[i] = Validate(r, codes, loaded)
		count(&stats, out[i].Status)
	}
	return out, stats
}

// ComputeStats counts rows by status.
func ComputeStats(rows []domain.GradeRow) domain.Stats {
	stats := domain.Stats{Total: len(rows)}
	for _, r := range rows {
		count(&stats, r.Status)
	}
	return stats
}

func count(s *domain.Stats, status domain.ValidationStatus) {
	switch status {
	case domain.StatusValid:
		s.Valid++
	case domain.StatusInvalid:
		s.Invalid++
	case domain.StatusWarning:
		s.Warning++
	}
}
