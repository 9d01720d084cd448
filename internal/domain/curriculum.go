package domain

// CurriculumEntry is one course of the reference curriculum.
type CurriculumEntry struct {
	Code       string
	CourseName string
	Credits    *float64

	// Extra holds every other column of the source row.
	Extra map[string]string
}
