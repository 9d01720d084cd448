package domain

// ValidationStatus is the outcome of checking a row's equivalence code
// against the loaded curriculum.
type ValidationStatus string

const (
	StatusValid   ValidationStatus = "valid"
	StatusInvalid ValidationStatus = "invalid"
	StatusWarning ValidationStatus = "warning"
)

// Valid reports whether s is one of the three known statuses.
func (s ValidationStatus) Valid() bool {
	switch s {
	case StatusValid, StatusInvalid, StatusWarning:
		return true
	default:
		return false
	}
}

// Validation messages attached to rows.
const (
	MsgCurriculumMissing = "curriculum not yet uploaded"
	MsgCodeValid         = "code valid"
	MsgCodeNotFound      = "code not found"
	MsgCorrectedByAI     = "corrected by AI"
)

// NoMatchCode is the sentinel the matching service returns when no
// curriculum course fits.
const NoMatchCode = "NO_MATCH"
