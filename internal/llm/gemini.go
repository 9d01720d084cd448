package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// geminiTransport calls generateContent through the Google Gen AI SDK.
type geminiTransport struct {
	cfg LLMConfig

	mu     sync.Mutex
	client *genai.Client
}

func newGeminiTransport(cfg LLMConfig) *geminiTransport {
	return &geminiTransport{cfg: cfg}
}

// genaiClient builds the SDK client on first use; the SDK rejects an empty
// API key, which Generate reports as ErrMissingAPIKey before getting here.
func (t *geminiTransport) genaiClient(ctx context.Context) (*genai.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil {
		return t.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     t.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(),
	}
	if t.cfg.Endpoint != "" {
		cc.HTTPOptions.BaseURL = t.cfg.Endpoint
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	t.client = c
	return c, nil
}

func (t *geminiTransport) call(ctx context.Context, p callParams) (string, string, error) {
	c, err := t.genaiClient(ctx)
	if err != nil {
		return "", "", err
	}

	temperature := float32(p.Temperature)
	gc := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(p.MaxTokens),
	}
	if p.System != "" {
		gc.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}
	if p.JSON {
		gc.ResponseMIMEType = "application/json"
	}
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: p.Prompt}}}}

	resp, err := c.Models.GenerateContent(ctx, t.cfg.Model, contents, gc)
	if err != nil {
		return "", "", geminiError(err)
	}
	if len(resp.Candidates) == 0 {
		return "", "", fmt.Errorf("%w: no candidates in response", ErrInvalidOutput)
	}
	return resp.Text(), resp.ModelVersion, nil
}

func (t *geminiTransport) ping(ctx context.Context) bool {
	if t.cfg.APIKey == "" {
		return false
	}
	c, err := t.genaiClient(ctx)
	if err != nil {
		return false
	}
	_, err = c.Models.Get(ctx, t.cfg.Model, nil)
	return err == nil
}

// geminiError maps SDK API errors onto statusError so classify treats every
// provider alike.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &statusError{Code: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &statusError{Code: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return err
}
