package validation

import (
	"testing"

	"github.com/alexanderramin/uniconvert/internal/curriculum"
	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(cs ...string) curriculum.CodeSet {
	set := curriculum.CodeSet{}
	for _, c := range cs {
		set[c] = struct{}{}
	}
	return set
}

func TestValidate_NotLoadedIsWarning(t *testing.T) {
	for _, code := range []string{"", "IF101", "anything"} {
		row := Validate(domain.GradeRow{EquivalenceCode: code}, codes("IF101"), false)
		assert.Equal(t, domain.StatusWarning, row.Status, "code %q", code)
		assert.Equal(t, domain.MsgCurriculumMissing, row.Message)
	}
}

func TestValidate_ValidAndInvalid(t *testing.T) {
	set := codes("IF101")

	valid := Validate(domain.GradeRow{EquivalenceCode: "  IF101 "}, set, true)
	assert.Equal(t, domain.StatusValid, valid.Status)
	assert.Equal(t, domain.MsgCodeValid, valid.Message)
	assert.Equal(t, "  IF101 ", valid.EquivalenceCode, "code text is not rewritten")

	invalid := Validate(domain.GradeRow{EquivalenceCode: "IF999"}, set, true)
	assert.Equal(t, domain.StatusInvalid, invalid.Status)
	assert.Equal(t, domain.MsgCodeNotFound, invalid.Message)
}

func TestValidate_Pure(t *testing.T) {
	set := codes("A")
	row := domain.GradeRow{RowID: 1, EquivalenceCode: "A", Status: domain.StatusInvalid}

	first := Validate(row, set, true)
	_ = Validate(domain.GradeRow{EquivalenceCode: "B"}, set, true)
	second := Validate(row, set, true)

	assert.Equal(t, first, second)
	assert.Equal(t, domain.StatusInvalid, row.Status, "input not mutated")
}

func TestRevalidateAll_OnlyStatusChanges(t *testing.T) {
	rows := []domain.GradeRow{
		{RowID: 1, CourseName: "A", EquivalenceCode: "X1", Status: domain.StatusWarning, SuggestedCode: "S"},
		{RowID: 2, CourseName: "B", EquivalenceCode: "X2", Status: domain.StatusWarning},
		{RowID: 3, CourseName: "C", EquivalenceCode: "", Status: domain.StatusWarning},
	}

	out, stats := RevalidateAll(rows, codes("X1"), true)

	require.Len(t, out, 3)
	assert.Equal(t, domain.StatusValid, out[0].Status)
	assert.Equal(t, "S", out[0].SuggestedCode)
	assert.Equal(t, domain.StatusInvalid, out[1].Status)
	assert.Equal(t, domain.StatusInvalid, out[2].Status)
	assert.Equal(t, domain.Stats{Total: 3, Valid: 1, Invalid: 2}, stats)
	assert.Equal(t, domain.StatusWarning, rows[0].Status, "input slice untouched")
}

func TestRevalidateAll_NotLoaded(t *testing.T) {
	rows := []domain.GradeRow{{EquivalenceCode: "X1"}, {EquivalenceCode: "X2"}}

	out, stats := RevalidateAll(rows, codes("X1"), false)

	for _, r := range out {
		assert.Equal(t, domain.StatusWarning, r.Status)
	}
	assert.Equal(t, domain.Stats{Total: 2, Warning: 2}, stats)
}

func TestComputeStats_TotalsAddUp(t *testing.T) {
	rows := []domain.GradeRow{
		{Status: domain.StatusValid},
		{Status: domain.StatusInvalid},
		{Status: domain.StatusInvalid},
		{Status: domain.StatusWarning},
	}
	s := ComputeStats(rows)

	assert.Equal(t, domain.Stats{Total: 4, Valid: 1, Invalid: 2, Warning: 1}, s)
	assert.Equal(t, s.Total, s.Valid+s.Invalid+s.Warning)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, ComputeStats(nil))
}
