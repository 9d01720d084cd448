// Package intelligence asks a language model for corrected equivalence codes.
package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/uniconvert/internal/domain"
	"github.com/alexanderramin/uniconvert/internal/llm"
)

// ErrSuggestionFailed wraps every failure of a suggestion request.
var ErrSuggestionFailed = errors.New("AI suggestion failed")

// InvalidCourse is the part of an invalid row sent to the model.
type InvalidCourse struct {
	Name        string
	CurrentCode string
}

// SuggestionService proposes curriculum codes for invalid rows.
type SuggestionService interface {
	Suggest(ctx context.Context, invalid []InvalidCourse, curriculum []domain.CurriculumEntry) ([]domain.Suggestion, error)
}

type suggestionService struct {
	client llm.LLMClient
}

// NewSuggestionService creates a SuggestionService backed by an LLM client.
func NewSuggestionService(client llm.LLMClient) SuggestionService {
	return &suggestionService{client: client}
}

func (s *suggestionService) Suggest(ctx context.Context, invalid []InvalidCourse, curriculum []domain.CurriculumEntry) ([]domain.Suggestion, error) {
	if len(invalid) == 0 {
		return nil, nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggest,
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   buildSuggestUserPrompt(invalid, curriculum),
		JSONOutput:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSuggestionFailed, err)
	}

	suggestions, err := llm.ExtractJSON[[]domain.Suggestion](resp.Text, validateSuggestions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSuggestionFailed, err)
	}
	return suggestions, nil
}

// validateSuggestions is a schema validator for ExtractJSON.
func validateSuggestions(items []domain.Suggestion) error {
	for i, item := range items {
		if item.OriginalName == "" {
			return fmt.Errorf("item %d: original_name is required", i)
		}
		if item.SuggestedCode == "" {
			return fmt.Errorf("item %d: suggested_code is required", i)
		}
	}
	return nil
}
