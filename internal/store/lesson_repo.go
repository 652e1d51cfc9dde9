package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type lessonRepo struct {
	db *sql.DB
}

func (r *lessonRepo) Insert(ctx context.Context, l *Lesson) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lessons (topic, content, difficulty_level, created_at) VALUES (?, ?, ?, ?)`,
		l.Topic, l.Content, l.Difficulty, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lesson: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("lesson id: %w", err)
	}
	l.ID = id
	return nil
}

func (r *lessonRepo) Get(ctx context.Context, id int64) (*Lesson, error) {
	var l Lesson
	err := r.db.QueryRowContext(ctx,
		`SELECT id, topic, content, difficulty_level, created_at FROM lessons WHERE id = ?`,
		id,
	).Scan(&l.ID, &l.Topic, &l.Content, &l.Difficulty, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson %d: %w", id, err)
	}
	return &l, nil
}

func (r *lessonRepo) List(ctx context.Context, limit int) ([]Lesson, error) {
	q := `SELECT id, topic, content, difficulty_level, created_at FROM lessons ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var out []Lesson
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.Topic, &l.Content, &l.Difficulty, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *lessonRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count lessons: %w", err)
	}
	return n, nil
}
