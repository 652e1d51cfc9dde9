package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devika/tutora/internal/llm"
	"github.com/devika/tutora/internal/quiz"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw LLM response before validation.
type quizOutput struct {
	Questions []quiz.Question `json:"questions"`
}

// Generate produces a validated question set for the given request.
// Retryable validation failures trigger regeneration with the failure
// messages fed back into the next prompt, up to Config.MaxAttempts.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) (*QuestionSet, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	attempts := g.config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var rejections []string
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		set, err := g.generateOnce(ctx, req, rejections)
		if err == nil {
			return set, nil
		}
		lastErr = err

		var valErr *ValidationError
		if !errors.As(err, &valErr) || !valErr.Retryable {
			return nil, err
		}
		rejections = append(rejections, valErr.Message)
	}

	return nil, lastErr
}

func (g *LLMGenerator) generateOnce(ctx context.Context, req Request, rejections []string) (*QuestionSet, error) {
	userMsg := buildUserMessage(req, g.config, rejections)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	questions, err := parseQuestions(resp.Content)
	if err != nil {
		return nil, &ValidationError{
			Validator: "parse",
			Message:   err.Error(),
			Retryable: true,
		}
	}

	set := &QuestionSet{Questions: questions}
	for _, v := range g.config.Validators {
		if verr := v.Validate(set, req, g.config); verr != nil {
			return nil, verr
		}
	}

	return set, nil
}

// parseQuestions decodes the questions array from raw LLM output. When
// the model wraps the JSON in prose, the first balanced JSON value is
// salvaged before giving up.
func parseQuestions(content json.RawMessage) ([]quiz.Question, error) {
	var out quizOutput
	if err := json.Unmarshal(content, &out); err != nil {
		salvaged, exErr := llm.ExtractJSON(content)
		if exErr != nil {
			return nil, fmt.Errorf("response is not a JSON object: %v", err)
		}
		if err := json.Unmarshal(salvaged, &out); err != nil {
			return nil, fmt.Errorf("salvaged JSON does not match the quiz shape: %v", err)
		}
	}
	return out.Questions, nil
}
