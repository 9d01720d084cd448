package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the provider endpoint is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrMissingAPIKey indicates a keyed provider was called without a credential.
	ErrMissingAPIKey = errors.New("llm api key is missing")

	// ErrUnauthorized indicates the provider rejected the credential.
	ErrUnauthorized = errors.New("llm request unauthorized")

	// ErrUnknownProvider indicates an unsupported provider name in config.
	ErrUnknownProvider = errors.New("unknown llm provider")
)
