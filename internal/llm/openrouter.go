package llm

import (
	"context"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "meta-llama/llama-3.3-70b-instruct:free"

	// OpenRouter attribution headers, shown on the openrouter.ai activity page.
	openRouterReferer = "https://github.com/devika/tutora"
	openRouterTitle   = "Tutora"
)

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is
// reused. Model IDs are passed through untouched: OpenRouter names models
// with vendor prefixes ("meta-llama/...", "anthropic/...") that must not go
// through the friendly-name mapping.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenRouterModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{
		Transport: &attributionTransport{
			referer: openRouterReferer,
			title:   openRouterTitle,
		},
	}

	inner := &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// Generate runs the underlying completion, salvaging the JSON payload
// before schema validation. Free-tier models behind OpenRouter do not
// reliably honor response_format and may wrap the JSON in prose.
func (p *OpenRouterProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Schema != nil {
		extracted, exErr := ExtractJSON(resp.Content)
		if exErr != nil {
			return nil, &ErrInvalidResponse{Err: exErr}
		}
		resp.Content = extracted

		if err := validateResponse(req.Schema, resp.Content); err != nil {
			return nil, err
		}
	}

	return resp, nil
}

// attributionTransport adds the OpenRouter ranking headers to every request.
type attributionTransport struct {
	base    http.RoundTripper
	referer string
	title   string
}

func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", t.referer)
	req.Header.Set("X-Title", t.title)

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
