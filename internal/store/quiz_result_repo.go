package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devika/tutora/internal/quiz"
)

type quizResultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *quizResultRepo) Insert(ctx context.Context, qr *QuizResult) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	answers, err := json.Marshal(qr.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	if qr.CreatedAt.IsZero() {
		qr.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO quiz_results
			(sequence, lesson_id, attempt_id, score, total_questions, percentage, time_taken, answers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, qr.LessonID, qr.AttemptID, qr.Score, qr.TotalQuestions,
		qr.Percentage, qr.TimeTaken, string(answers), qr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("quiz result id: %w", err)
	}
	qr.ID = id
	qr.Sequence = seqNum
	return nil
}

func (r *quizResultRepo) ListByLesson(ctx context.Context, lessonID int64) ([]QuizResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, lesson_id, attempt_id, score, total_questions, percentage, time_taken, answers, created_at
		 FROM quiz_results WHERE lesson_id = ? ORDER BY sequence DESC`,
		lessonID,
	)
	if err != nil {
		return nil, fmt.Errorf("list quiz results for lesson %d: %w", lessonID, err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func (r *quizResultRepo) ListRecent(ctx context.Context, limit int) ([]ResultEntry, error) {
	q := `SELECT qr.id, qr.sequence, qr.lesson_id, qr.attempt_id, qr.score, qr.total_questions,
			qr.percentage, qr.time_taken, qr.answers, qr.created_at, l.topic, l.difficulty_level
		 FROM quiz_results qr
		 JOIN lessons l ON l.id = qr.lesson_id
		 ORDER BY qr.sequence DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent quiz results: %w", err)
	}
	defer rows.Close()

	var out []ResultEntry
	for rows.Next() {
		var (
			e   ResultEntry
			raw string
		)
		err := rows.Scan(&e.ID, &e.Sequence, &e.LessonID, &e.AttemptID, &e.Score,
			&e.TotalQuestions, &e.Percentage, &e.TimeTaken, &raw, &e.CreatedAt,
			&e.Topic, &e.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("scan result entry: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &e.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *quizResultRepo) Totals(ctx context.Context) (*QuizTotals, error) {
	var (
		t   QuizTotals
		avg sql.NullFloat64
		max sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(percentage), MAX(percentage) FROM quiz_results`,
	).Scan(&t.Attempts, &avg, &max)
	if err != nil {
		return nil, fmt.Errorf("quiz totals: %w", err)
	}
	if avg.Valid {
		t.AvgPercentage = avg.Float64
	}
	if max.Valid {
		t.BestPercentage = int(max.Int64)
	}
	return &t, nil
}

func scanResults(rows *sql.Rows) ([]QuizResult, error) {
	var out []QuizResult
	for rows.Next() {
		var (
			qr  QuizResult
			raw string
		)
		err := rows.Scan(&qr.ID, &qr.Sequence, &qr.LessonID, &qr.AttemptID, &qr.Score,
			&qr.TotalQuestions, &qr.Percentage, &qr.TimeTaken, &raw, &qr.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		var answers []quiz.AnswerRecord
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers: %w", err)
		}
		qr.Answers = answers
		out = append(out, qr)
	}
	return out, rows.Err()
}
