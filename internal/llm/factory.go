package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/devika/tutora/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv builds a provider from the environment. A .env file in
// the working directory is loaded first (real environment variables win).
// TUTORA_-prefixed variables take priority; otherwise the standard key names
// (OPENROUTER_API_KEY, GEMINI_API_KEY, ...) are probed in discovery order.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	_ = godotenv.Load()

	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return NewProvider(ctx, cfg, eventRepo)
	}

	// An explicit provider choice with a missing key is an error, not a
	// cue to silently switch providers.
	if os.Getenv("TUTORA_PROVIDER") != "" {
		return nil, err
	}

	cfg, ok := DiscoverConfig()
	if !ok {
		return nil, fmt.Errorf("no LLM API key found: set one of OPENROUTER_API_KEY, GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY (or TUTORA_PROVIDER with its key)")
	}
	return NewProvider(ctx, cfg, eventRepo)
}
