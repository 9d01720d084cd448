package domain

// GradeRow is one student course-grade record in the working dataset.
type GradeRow struct {
	RowID int64

	StudentID       string
	CourseName      string
	NumericGrade    float64
	LetterGrade     string
	EquivalenceCode string
	CurriculumLabel string

	Status  ValidationStatus
	Message string

	// Advisory AI suggestion; empty SuggestedCode means none.
	SuggestedCode   string
	SuggestedReason string
}

// RowDraft holds the user-entered fields of a row before it is given an
// identity and validated.
type RowDraft struct {
	StudentID       string
	CourseName      string
	NumericGrade    float64
	LetterGrade     string
	EquivalenceCode string
	CurriculumLabel string
}

// ExportRecord is the reduced form of a row written to the export sheet.
type ExportRecord struct {
	StudentID       string
	CourseName      string
	NumericGrade    float64
	LetterGrade     string
	EquivalenceCode string
	CurriculumLabel string
}

// HasSuggestion reports whether an AI suggestion is attached.
func (r GradeRow) HasSuggestion() bool {
	return r.SuggestedCode != ""
}

// ClearSuggestion drops any attached suggestion.
func (r *GradeRow) ClearSuggestion() {
	r.SuggestedCode = ""
	r.SuggestedReason = ""
}

// Draft returns the user-entered fields of the row.
func (r GradeRow) Draft() RowDraft {
	return RowDraft{
		StudentID:       r.StudentID,
		CourseName:      r.CourseName,
		NumericGrade:    r.NumericGrade,
		LetterGrade:     r.LetterGrade,
		EquivalenceCode: r.EquivalenceCode,
		CurriculumLabel: r.CurriculumLabel,
	}
}

// Export strips identity, validation, and suggestion fields.
func (r GradeRow) Export() ExportRecord {
	return ExportRecord(r.Draft())
}

// NewGradeRow creates an unvalidated row from a draft.
func NewGradeRow(id int64, d RowDraft) GradeRow {
	return GradeRow{
		RowID:           id,
		StudentID:       d.StudentID,
		CourseName:      d.CourseName,
		NumericGrade:    d.NumericGrade,
		LetterGrade:     d.LetterGrade,
		EquivalenceCode: d.EquivalenceCode,
		CurriculumLabel: d.CurriculumLabel,
	}
}
