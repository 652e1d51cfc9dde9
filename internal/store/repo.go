package store

import (
	"context"
	"time"

	"github.com/devika/tutora/internal/quiz"
)

// Lesson is one generated lesson as stored.
type Lesson struct {
	ID         int64
	Topic      string
	Content    string
	Difficulty int
	CreatedAt  time.Time
}

// Progress is the completion state of one lesson. Score holds the best quiz
// percentage achieved; TimeSpent is reading time in seconds.
type Progress struct {
	LessonID    int64
	Completed   bool
	Score       int
	TimeSpent   int
	CompletedAt *time.Time
}

// LessonStatus is a lesson joined with its progress for overview listings.
// Progress fields are zero values when the lesson was never opened.
type LessonStatus struct {
	Lesson      Lesson
	Completed   bool
	Score       int
	TimeSpent   int
	CompletedAt *time.Time
}

// QuizResult is one finished quiz attempt.
type QuizResult struct {
	ID             int64
	Sequence       int64
	LessonID       int64
	AttemptID      string
	Score          int
	TotalQuestions int
	Percentage     int
	TimeTaken      int
	Answers        []quiz.AnswerRecord
	CreatedAt      time.Time
}

// ResultEntry is a quiz result joined with its lesson's topic, for history
// listings.
type ResultEntry struct {
	QuizResult
	Topic      string
	Difficulty int
}

// QuizTotals aggregates quiz attempts for the stats view.
type QuizTotals struct {
	Attempts       int
	AvgPercentage  float64
	BestPercentage int
}

// LessonRepo manages stored lessons.
type LessonRepo interface {
	// Insert stores a lesson, filling in ID and CreatedAt.
	Insert(ctx context.Context, l *Lesson) error

	// Get returns the lesson by ID, or nil if it doesn't exist.
	Get(ctx context.Context, id int64) (*Lesson, error)

	// List returns lessons newest-first, up to limit (0 = all).
	List(ctx context.Context, limit int) ([]Lesson, error)

	// Count returns the total number of stored lessons.
	Count(ctx context.Context) (int, error)
}

// ProgressRepo manages per-lesson completion state. It is the persistence
// half of the progress recorder and the quiz availability gate.
type ProgressRepo interface {
	// Upsert creates or replaces the progress row for p.LessonID.
	Upsert(ctx context.Context, p *Progress) error

	// Get returns progress for a lesson, or nil if none recorded.
	Get(ctx context.Context, lessonID int64) (*Progress, error)

	// QuizAvailable reports whether a quiz may be started for the lesson:
	// true once the lesson has been marked completed.
	QuizAvailable(ctx context.Context, lessonID int64) (bool, error)

	// Overview returns every lesson joined with its progress, newest-first.
	Overview(ctx context.Context) ([]LessonStatus, error)
}

// QuizResultRepo manages finished quiz attempts.
type QuizResultRepo interface {
	// Insert stores a result, filling in ID, Sequence, and CreatedAt.
	Insert(ctx context.Context, r *QuizResult) error

	// ListByLesson returns attempts for one lesson, newest-first.
	ListByLesson(ctx context.Context, lessonID int64) ([]QuizResult, error)

	// ListRecent returns attempts across lessons with topics, newest-first,
	// up to limit (0 = all).
	ListRecent(ctx context.Context, limit int) ([]ResultEntry, error)

	// Totals aggregates all attempts. Zero-value totals when none exist.
	Totals(ctx context.Context) (*QuizTotals, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	From    time.Time // timestamp >= From
	Purpose string    // exact purpose match ("" = all)
}

// LLMRequestEventData captures the data for a single LLM request event.
// RequestBody and ResponseBody hold the raw prompt and completion text for
// debugging; they may be empty when capture is disabled.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose (lesson, quiz-gen, chat).
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model, for cost estimation.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMUsageTotals aggregates token usage across all requests.
type LLMUsageTotals struct {
	Requests     int
	InputTokens  int
	OutputTokens int
	Failures     int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// GetLLMEvent returns one event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// QueryLLMEvents returns events newest-first, honoring opts.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// TotalLLMUsage aggregates usage across all recorded requests.
	TotalLLMUsage(ctx context.Context) (*LLMUsageTotals, error)
}
