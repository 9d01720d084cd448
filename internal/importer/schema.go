package importer

// Canonical column keys, as produced by NormalizeKeys. The grade-sheet keys
// double as the export header row.
const (
	KeyStudentID       = "nim"
	KeyCourseName      = "nama_mk"
	KeyNumericGrade    = "nilai_angka"
	KeyLetterGrade     = "nilai_huruf"
	KeyEquivalenceCode = "kode_mk_penyetaraan"
	KeyCurriculumLabel = "kurikulum_mk_penyetaraan"
)

// ExportHeaders is the column order of an exported grade sheet.
var ExportHeaders = []string{
	KeyStudentID,
	KeyCourseName,
	KeyNumericGrade,
	KeyLetterGrade,
	KeyEquivalenceCode,
	KeyCurriculumLabel,
}

// Accepted curriculum header aliases, first match wins.
var (
	curriculumCodeKeys    = []string{"kode_mk", "kode", "code", "course_code"}
	curriculumNameKeys    = []string{"nama_mk", "nama", "course_name", "name"}
	curriculumCreditsKeys = []string{"sks", "credits", "credit_hours"}
)

// Accepted grade-sheet header aliases, first non-blank value wins.
var (
	gradeStudentIDKeys = []string{KeyStudentID, "student_id"}
	gradeNameKeys      = []string{KeyCourseName, "nama", "course_name"}
	gradeNumericKeys   = []string{KeyNumericGrade, "nilai", "grade"}
	gradeLetterKeys    = []string{KeyLetterGrade, "huruf", "letter_grade"}
	gradeCodeKeys      = []string{KeyEquivalenceCode, "kode_mk", "kode"}
	gradeLabelKeys     = []string{KeyCurriculumLabel, "kurikulum"}
)
