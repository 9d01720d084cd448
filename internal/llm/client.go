package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default

	// JSONOutput asks providers that support it to constrain output to JSON.
	JSONOutput bool
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the provider looks usable.
	Available(ctx context.Context) bool
}

// callParams is a GenerateRequest with task defaults resolved.
type callParams struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	JSON        bool
}

// transport performs a single provider call.
type transport interface {
	call(ctx context.Context, p callParams) (text, model string, err error)
	ping(ctx context.Context) bool
}

// statusError is a non-2xx provider response.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Code, e.Body)
}

// client wraps a provider transport with timeout, retry, error
// classification, and observation.
type client struct {
	cfg      LLMConfig
	t        transport
	observer Observer
}

// NewClient creates an LLMClient for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return newClient(cfg, newGeminiTransport(cfg), observer), nil
	case ProviderAnthropic:
		return newClient(cfg, newAnthropicTransport(cfg), observer), nil
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func newClient(cfg LLMConfig, t transport, observer Observer) *client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{cfg: cfg, t: t, observer: observer}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	if c.cfg.NeedsAPIKey() && c.cfg.APIKey == "" {
		c.observe(req.Task, start, ErrMissingAPIKey)
		return nil, ErrMissingAPIKey
	}

	taskCfg := c.cfg.Tasks[req.Task]
	params := callParams{
		System:      req.SystemPrompt,
		Prompt:      req.UserPrompt,
		Temperature: taskCfg.Temperature,
		MaxTokens:   taskCfg.MaxTokens,
		JSON:        req.JSONOutput,
	}
	if req.Temperature != nil {
		params.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		params.MaxTokens = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, model, err := c.t.call(ctx, params)
		if err == nil {
			latency := c.observe(req.Task, start, nil)
			if model == "" {
				model = c.cfg.Model
			}
			return &GenerateResponse{
				Text:      text,
				Model:     model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout or a rejected credential.
		if ctx.Err() != nil || isUnauthorized(err) {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observe(req.Task, start, err)
	return nil, err
}

func (c *client) Available(ctx context.Context) bool {
	if c.cfg.NeedsAPIKey() && c.cfg.APIKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.t.ping(ctx)
}

func (c *client) observe(task TaskType, start time.Time, err error) int64 {
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return latency
}

func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	case isUnauthorized(err):
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case isConnectionError(err):
		return ErrProviderUnavailable
	case errors.Is(err, ErrInvalidOutput):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isUnauthorized(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
	}
	return false
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProviderUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrMissingAPIKey):
		return "MISSING_API_KEY"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	default:
		return "UNKNOWN"
	}
}
