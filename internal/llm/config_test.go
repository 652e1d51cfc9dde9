package llm

import (
	"testing"
)

// clearProviderEnv blanks every variable the config reader looks at, so
// tests are isolated from the developer's real environment.
func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"TUTORA_PROVIDER", "TUTORA_MODEL",
		"TUTORA_OPENROUTER_API_KEY", "TUTORA_OPENROUTER_MODEL", "TUTORA_OPENROUTER_BASE_URL",
		"TUTORA_OPENAI_API_KEY", "TUTORA_OPENAI_MODEL", "TUTORA_OPENAI_BASE_URL",
		"TUTORA_ANTHROPIC_API_KEY", "TUTORA_ANTHROPIC_MODEL",
		"TUTORA_GEMINI_API_KEY", "TUTORA_GEMINI_MODEL",
		"OPENROUTER_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(v, "")
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearProviderEnv(t)

	cfg := ConfigFromEnv()
	if cfg.Provider != "openrouter" {
		t.Errorf("provider = %q, want %q", cfg.Provider, "openrouter")
	}
	if cfg.OpenRouter.Model != "meta-llama/llama-3.3-70b-instruct:free" {
		t.Errorf("model = %q, want the free llama default", cfg.OpenRouter.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("retry attempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TUTORA_PROVIDER", "openai")
	t.Setenv("TUTORA_OPENAI_API_KEY", "sk-test")
	t.Setenv("TUTORA_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q, want %q", cfg.Provider, "openai")
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key = %q, want %q", cfg.OpenAI.APIKey, "sk-test")
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model = %q, want %q", cfg.OpenAI.Model, "gpt-4o")
	}
}

func TestConfigFromEnv_GenericModelOverride(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("TUTORA_OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("TUTORA_MODEL", "qwen/qwen-2.5-72b-instruct")

	cfg := ConfigFromEnv()
	if cfg.OpenRouter.Model != "qwen/qwen-2.5-72b-instruct" {
		t.Errorf("model = %q, want TUTORA_MODEL to override the active provider", cfg.OpenRouter.Model)
	}
	// Inactive providers keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("openai model = %q, want default untouched", cfg.OpenAI.Model)
	}
}

func TestDiscoverConfig_PrefersOpenRouter(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("OPENAI_API_KEY", "sk-oai-test")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "openrouter" {
		t.Errorf("provider = %q, want %q", cfg.Provider, "openrouter")
	}
	if cfg.OpenRouter.APIKey != "sk-or-test" {
		t.Errorf("api key = %q, want %q", cfg.OpenRouter.APIKey, "sk-or-test")
	}
}

func TestDiscoverConfig_GoogleKeyAlias(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("GOOGLE_API_KEY", "g-test")

	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected discovery to succeed")
	}
	if cfg.Provider != "gemini" {
		t.Errorf("provider = %q, want %q", cfg.Provider, "gemini")
	}
	if cfg.Gemini.APIKey != "g-test" {
		t.Errorf("api key = %q, want %q", cfg.Gemini.APIKey, "g-test")
	}
}

func TestDiscoverConfig_NothingSet(t *testing.T) {
	clearProviderEnv(t)

	_, ok := DiscoverConfig()
	if ok {
		t.Fatal("expected discovery to fail with no keys set")
	}
}
