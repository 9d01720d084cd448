package domain

import "strings"

// FirstNonBlank returns the first value that is not blank, trimmed.
func FirstNonBlank(vals ...string) string {
	for _, v := range vals {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}

// CreditsOr returns the entry's credit hours, or fallback when the sheet
// had none.
func (e CurriculumEntry) CreditsOr(fallback float64) float64 {
	if e.Credits != nil {
		return *e.Credits
	}
	return fallback
}
