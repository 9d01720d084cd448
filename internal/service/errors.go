package service

import "errors"

var (
	ErrRowNotFound          = errors.New("row not found")
	ErrSuggestionInProgress = errors.New("an AI suggestion request is already running")
	ErrStaleBatch           = errors.New("suggestion batch is not the pending one")
	ErrNoInvalidRows        = errors.New("no invalid rows to suggest for")
	ErrNoCurriculum         = errors.New("no curriculum loaded")
	ErrNoSuggester          = errors.New("AI suggestions are not configured")
	ErrNoSuggestion         = errors.New("row has no suggestion to apply")
	ErrNothingToExport      = errors.New("no rows to export")
)
