package lessons

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/devika/tutora/internal/llm"
	"github.com/devika/tutora/internal/store"
)

// Service generates lessons asynchronously and persists them.
// When no provider is configured or generation fails, it serves canned
// fallback content instead of an error.
type Service struct {
	provider llm.Provider
	repo     store.LessonRepo
	cfg      Config

	mu      sync.Mutex
	pending *Lesson
	ready   bool
}

// NewService creates a lesson generation service. provider may be nil,
// in which case every lesson is fallback content.
func NewService(provider llm.Provider, repo store.LessonRepo, cfg Config) *Service {
	return &Service{provider: provider, repo: repo, cfg: cfg}
}

// RequestLesson starts async lesson generation. Only one lesson is
// in-flight at a time; new requests replace pending ones.
func (s *Service) RequestLesson(ctx context.Context, input Input) {
	go func() {
		lesson := s.generate(ctx, input)
		s.persist(ctx, lesson)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = lesson
		s.ready = true
	}()
}

// ConsumeLesson returns the pending lesson if one is ready.
// Returns (nil, false) if no lesson is ready yet.
// After consumption, the pending slot is cleared.
func (s *Service) ConsumeLesson() (*Lesson, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	lesson := s.pending
	s.pending = nil
	s.ready = false
	return lesson, lesson != nil
}

// Generate produces and persists a lesson synchronously.
func (s *Service) Generate(ctx context.Context, input Input) *Lesson {
	lesson := s.generate(ctx, input)
	s.persist(ctx, lesson)
	return lesson
}

func (s *Service) generate(ctx context.Context, input Input) *Lesson {
	if s.provider == nil {
		return s.fallback(input)
	}

	ctx = llm.WithPurpose(ctx, "lesson")

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(input)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		slog.Warn("lesson generation failed, serving fallback", "topic", input.Topic, "error", err)
		return s.fallback(input)
	}

	body := strings.TrimSpace(string(resp.Content))
	if body == "" {
		slog.Warn("lesson generation returned empty content, serving fallback", "topic", input.Topic)
		return s.fallback(input)
	}

	return &Lesson{
		Topic:      input.Topic,
		Difficulty: input.Difficulty,
		Body:       body,
	}
}

func (s *Service) fallback(input Input) *Lesson {
	return &Lesson{
		Topic:      input.Topic,
		Difficulty: input.Difficulty,
		Body:       FallbackBody(input.Topic, input.Difficulty),
		Fallback:   true,
	}
}

// persist saves the lesson and fills in its row ID. A storage failure
// leaves ID zero; the lesson is still shown to the learner.
func (s *Service) persist(ctx context.Context, lesson *Lesson) {
	if s.repo == nil {
		return
	}

	row := &store.Lesson{
		Topic:      lesson.Topic,
		Content:    lesson.Body,
		Difficulty: lesson.Difficulty,
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		slog.Warn("failed to save lesson", "topic", lesson.Topic, "error", err)
		return
	}
	lesson.ID = row.ID
	lesson.CreatedAt = row.CreatedAt
}

// Describe returns a short human-readable label for a difficulty level,
// e.g. "3 (intermediate)".
func Describe(difficulty int) string {
	labels := map[int]string{
		1: "beginner",
		2: "elementary",
		3: "intermediate",
		4: "advanced",
		5: "expert",
	}
	if l, ok := labels[difficulty]; ok {
		return fmt.Sprintf("%d (%s)", difficulty, l)
	}
	return fmt.Sprintf("%d", difficulty)
}
