package tutor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/devika/tutora/internal/llm"
)

const chatSystemPrompt = `You are a helpful AI tutor. Answer questions clearly, educationally, and encouragingly. Provide explanations that help students understand concepts better.`

const (
	chatMaxTokens   = 600
	chatTemperature = 0.7

	// maxContextRunes caps how much lesson text rides along with a
	// chat question.
	maxContextRunes = 400
)

// Service answers learner questions, draws concept diagrams, and
// produces study notes for uploaded images. Every operation degrades to
// a canned response when no provider is configured or the LLM fails.
type Service struct {
	provider llm.Provider
}

// NewService creates a tutor service. provider may be nil, in which
// case every response is a fallback.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Chat answers a single learner message. lessonContext is optional
// lesson text the answer should take into account; only its first 400
// runes reach the prompt.
func (s *Service) Chat(ctx context.Context, message, lessonContext string) (string, error) {
	if s.provider == nil {
		return FallbackChat(message), nil
	}

	ctx = llm.WithPurpose(ctx, "chat")

	system := chatSystemPrompt
	if lessonContext != "" {
		system += " Current lesson context: " + truncateRunes(lessonContext, maxContextRunes)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: message},
		},
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("chat generation failed, serving fallback", "error", err)
		return FallbackChat(message), nil
	}

	return strings.TrimSpace(string(resp.Content)), nil
}

// truncateRunes limits s to max runes, appending an ellipsis when cut.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
