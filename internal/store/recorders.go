package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/devika/tutora/internal/quiz"
)

// ResultRecorder persists finished quiz reports. It implements quiz.Recorder:
// each report becomes a quiz_results row, and the lesson's progress keeps the
// best percentage achieved across attempts.
type ResultRecorder struct {
	results  QuizResultRepo
	progress ProgressRepo
}

// NewResultRecorder builds a recorder backed by the store's repositories.
func NewResultRecorder(s *Store) *ResultRecorder {
	return &ResultRecorder{
		results:  s.QuizResultRepo(),
		progress: s.ProgressRepo(),
	}
}

// RecordReport stores one attempt and folds its percentage into progress.
func (r *ResultRecorder) RecordReport(ctx context.Context, lessonID int64, rep *quiz.Report) error {
	result := &QuizResult{
		LessonID:       lessonID,
		AttemptID:      uuid.NewString(),
		Score:          rep.Score,
		TotalQuestions: rep.TotalQuestions,
		Percentage:     rep.Percentage,
		TimeTaken:      rep.DurationSeconds,
		Answers:        rep.Answers,
	}
	if err := r.results.Insert(ctx, result); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	p, err := r.progress.Get(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	if p == nil {
		p = &Progress{LessonID: lessonID}
	}
	if rep.Percentage > p.Score {
		p.Score = rep.Percentage
	}
	if err := r.progress.Upsert(ctx, p); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}
