package domain

// Suggestion is one item returned by the AI matching service.
type Suggestion struct {
	OriginalName  string `json:"original_name"`
	SuggestedCode string `json:"suggested_code"`
	Reason        string `json:"reason"`
}

// IsNoMatch reports whether the service declined to pick a code.
func (s Suggestion) IsNoMatch() bool {
	return s.SuggestedCode == NoMatchCode
}
