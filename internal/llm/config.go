package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider names an AI backend.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderOllama    Provider = "ollama"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskSuggest TaskType = "suggest"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider   Provider
	LogCalls   bool
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

var providerDefaults = map[Provider]struct {
	endpoint string
	model    string
}{
	ProviderGemini:    {endpoint: "https://generativelanguage.googleapis.com", model: "gemini-3-flash-preview"},
	ProviderAnthropic: {endpoint: "", model: "claude-3-5-haiku-latest"},
	ProviderOllama:    {endpoint: "http://localhost:11434", model: "llama3.2"},
}

// DefaultConfig returns an LLMConfig for the Gemini provider with no API
// key. Failed calls are not retried.
func DefaultConfig() LLMConfig {
	cfg := LLMConfig{
		Provider:   ProviderGemini,
		TimeoutMs:  60000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskSuggest: {Temperature: 0.1, MaxTokens: 8192},
		},
	}
	cfg.applyProviderDefaults()
	return cfg
}

// NeedsAPIKey reports whether the configured provider requires a credential.
func (c LLMConfig) NeedsAPIKey() bool {
	return c.Provider != ProviderOllama
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// fileConfig mirrors the optional YAML config file. Pointer fields
// distinguish "unset" from zero values.
type fileConfig struct {
	LLM struct {
		Provider         string `yaml:"provider"`
		Endpoint         string `yaml:"endpoint"`
		Model            string `yaml:"model"`
		APIKey           string `yaml:"api_key"`
		TimeoutMs        *int   `yaml:"timeout_ms"`
		MaxRetries       *int   `yaml:"max_retries"`
		LogCalls         *bool  `yaml:"log_calls"`
		SuggestTimeoutMs *int   `yaml:"suggest_timeout_ms"`
	} `yaml:"llm"`
}

// LoadConfig builds the configuration from defaults, then the YAML file at
// path (skipped when path is empty), then UNICONVERT_LLM_* environment
// variables. Environment wins over the file.
func LoadConfig(path string) (LLMConfig, error) {
	cfg := DefaultConfig()
	cfg.Endpoint, cfg.Model = "", ""

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return LLMConfig{}, err
		}
	}
	applyEnv(&cfg)

	if _, ok := providerDefaults[cfg.Provider]; !ok {
		return LLMConfig{}, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	cfg.applyProviderDefaults()
	return cfg, nil
}

func applyFile(cfg *LLMConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	l := fc.LLM
	if l.Provider != "" {
		cfg.Provider = Provider(strings.ToLower(l.Provider))
	}
	if l.Endpoint != "" {
		cfg.Endpoint = l.Endpoint
	}
	if l.Model != "" {
		cfg.Model = l.Model
	}
	if l.APIKey != "" {
		cfg.APIKey = l.APIKey
	}
	if l.TimeoutMs != nil && *l.TimeoutMs > 0 {
		cfg.TimeoutMs = *l.TimeoutMs
	}
	if l.MaxRetries != nil && *l.MaxRetries >= 0 {
		cfg.MaxRetries = *l.MaxRetries
	}
	if l.LogCalls != nil {
		cfg.LogCalls = *l.LogCalls
	}
	if l.SuggestTimeoutMs != nil && *l.SuggestTimeoutMs > 0 {
		setTaskTimeout(cfg, TaskSuggest, *l.SuggestTimeoutMs)
	}
	return nil
}

func applyEnv(cfg *LLMConfig) {
	if v := os.Getenv("UNICONVERT_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	if v := os.Getenv("UNICONVERT_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("UNICONVERT_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("UNICONVERT_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := firstEnv("UNICONVERT_LLM_API_KEY", providerKeyEnv(cfg.Provider), "API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("UNICONVERT_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("UNICONVERT_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("UNICONVERT_LLM_SUGGEST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			setTaskTimeout(cfg, TaskSuggest, n)
		}
	}
}

func (c *LLMConfig) applyProviderDefaults() {
	d := providerDefaults[c.Provider]
	if c.Endpoint == "" {
		c.Endpoint = d.endpoint
	}
	if c.Model == "" {
		c.Model = d.model
	}
}

func providerKeyEnv(p Provider) string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func setTaskTimeout(cfg *LLMConfig, task TaskType, ms int) {
	tc := cfg.Tasks[task]
	tc.TimeoutMs = ms
	cfg.Tasks[task] = tc
}
