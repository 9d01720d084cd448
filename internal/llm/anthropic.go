package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicTransport calls the Messages API through the official SDK.
type anthropicTransport struct {
	cfg    LLMConfig
	client anthropic.Client
}

func newAnthropicTransport(cfg LLMConfig) *anthropicTransport {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retries are handled by client.Generate.
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &anthropicTransport{cfg: cfg, client: anthropic.NewClient(opts...)}
}

func (t *anthropicTransport) call(ctx context.Context, p callParams) (string, string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(t.cfg.Model),
		MaxTokens:   int64(p.MaxTokens),
		Temperature: anthropic.Float(p.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(p.Prompt)),
		},
	}
	if p.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: p.System}}
	}

	msg, err := t.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", "", &statusError{Code: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", "", fmt.Errorf("%w: no text content in response", ErrInvalidOutput)
	}
	return b.String(), string(msg.Model), nil
}

// ping only checks that a credential is configured; the Messages API has no
// free health endpoint.
func (t *anthropicTransport) ping(context.Context) bool {
	return t.cfg.APIKey != ""
}
