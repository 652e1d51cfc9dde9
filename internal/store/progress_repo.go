package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Upsert(ctx context.Context, p *Progress) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (lesson_id, completed, score, time_spent, completed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (lesson_id) DO UPDATE SET
			completed = excluded.completed,
			score = excluded.score,
			time_spent = excluded.time_spent,
			completed_at = excluded.completed_at`,
		p.LessonID, p.Completed, p.Score, p.TimeSpent, nullableTime(p.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert progress for lesson %d: %w", p.LessonID, err)
	}
	return nil
}

func (r *progressRepo) Get(ctx context.Context, lessonID int64) (*Progress, error) {
	var (
		p  Progress
		at sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT lesson_id, completed, score, time_spent, completed_at FROM progress WHERE lesson_id = ?`,
		lessonID,
	).Scan(&p.LessonID, &p.Completed, &p.Score, &p.TimeSpent, &at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress for lesson %d: %w", lessonID, err)
	}
	if at.Valid {
		p.CompletedAt = &at.Time
	}
	return &p, nil
}

func (r *progressRepo) QuizAvailable(ctx context.Context, lessonID int64) (bool, error) {
	var completed bool
	err := r.db.QueryRowContext(ctx,
		`SELECT completed FROM progress WHERE lesson_id = ?`, lessonID,
	).Scan(&completed)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("quiz availability for lesson %d: %w", lessonID, err)
	}
	return completed, nil
}

func (r *progressRepo) Overview(ctx context.Context) ([]LessonStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT l.id, l.topic, l.content, l.difficulty_level, l.created_at,
			COALESCE(p.completed, FALSE), COALESCE(p.score, 0),
			COALESCE(p.time_spent, 0), p.completed_at
		 FROM lessons l
		 LEFT JOIN progress p ON p.lesson_id = l.id
		 ORDER BY l.created_at DESC, l.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("progress overview: %w", err)
	}
	defer rows.Close()

	var out []LessonStatus
	for rows.Next() {
		var (
			st LessonStatus
			at sql.NullTime
		)
		err := rows.Scan(
			&st.Lesson.ID, &st.Lesson.Topic, &st.Lesson.Content,
			&st.Lesson.Difficulty, &st.Lesson.CreatedAt,
			&st.Completed, &st.Score, &st.TimeSpent, &at,
		)
		if err != nil {
			return nil, fmt.Errorf("scan overview row: %w", err)
		}
		if at.Valid {
			st.CompletedAt = &at.Time
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// nullableTime converts an optional time into its SQL representation.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
