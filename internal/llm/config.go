package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openrouter", "openai", "anthropic", "gemini", "mock"
	Provider string

	OpenRouter OpenRouterConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "meta-llama/llama-3.3-70b-instruct:free"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. OpenRouter is the
// primary provider: its free tier needs a single key and serves every model
// the tutor uses.
func DefaultConfig() Config {
	return Config{
		Provider: "openrouter",
		OpenRouter: OpenRouterConfig{
			Model: "meta-llama/llama-3.3-70b-instruct:free",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from TUTORA_-prefixed environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("TUTORA_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("TUTORA_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("TUTORA_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}
	if u := os.Getenv("TUTORA_OPENROUTER_BASE_URL"); u != "" {
		cfg.OpenRouter.BaseURL = u
	}

	if k := os.Getenv("TUTORA_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("TUTORA_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("TUTORA_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("TUTORA_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("TUTORA_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("TUTORA_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("TUTORA_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	applyModelOverride(&cfg)
	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (OpenRouter → Gemini → OpenAI → Anthropic) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		applyModelOverride(&cfg)
		return cfg, true
	}
	if k := firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		applyModelOverride(&cfg)
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		applyModelOverride(&cfg)
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		applyModelOverride(&cfg)
		return cfg, true
	}

	return Config{}, false
}

// applyModelOverride lets TUTORA_MODEL replace the model of whichever
// provider is active, without knowing provider-specific variable names.
func applyModelOverride(cfg *Config) {
	m := os.Getenv("TUTORA_MODEL")
	if m == "" {
		return
	}
	switch cfg.Provider {
	case "openrouter":
		cfg.OpenRouter.Model = m
	case "openai":
		cfg.OpenAI.Model = m
	case "anthropic":
		cfg.Anthropic.Model = m
	case "gemini":
		cfg.Gemini.Model = m
	}
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("TUTORA_OPENROUTER_API_KEY or OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("TUTORA_OPENAI_API_KEY or OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("TUTORA_ANTHROPIC_API_KEY or ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("TUTORA_GEMINI_API_KEY or GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
