package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// sequenceCounter manages the global monotonic sequence number shared across
// quiz results and LLM request events. Per-table auto-increment IDs can't
// establish cross-table ordering, so this counter assigns a single increasing
// sequence to every recorded row regardless of table, enabling:
//
//   - Cross-table ordering (e.g. did the quiz finish before or after the
//     generation request?)
//   - Snapshot consistency (query all tables for sequence > snapshot)
//   - Append-only guarantees (rows are never reordered)
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo backed by the llm_requests table and the
// global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_requests
			(sequence, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens,
		data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
		data.RequestBody, data.ResponseBody, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

const llmEventColumns = `id, sequence, timestamp, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+llmEventColumns+` FROM llm_requests WHERE id = ?`, id)

	e, err := scanLLMEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return e, nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	q := `SELECT ` + llmEventColumns + ` FROM llm_requests WHERE sequence > ?`
	args := []any{opts.After}
	if !opts.From.IsZero() {
		q += ` AND timestamp >= ?`
		args = append(args, opts.From.UTC())
	}
	if opts.Purpose != "" {
		q += ` AND purpose = ?`
		args = append(args, opts.Purpose)
	}
	q += ` ORDER BY sequence DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
			CAST(AVG(latency_ms) AS INTEGER)
		 FROM llm_requests GROUP BY purpose ORDER BY purpose`,
	)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan purpose usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		 FROM llm_requests GROUP BY model ORDER BY model`,
	)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) TotalLLMUsage(ctx context.Context) (*LLMUsageTotals, error) {
	var (
		t      LLMUsageTotals
		in     sql.NullInt64
		out    sql.NullInt64
		failed sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(input_tokens), SUM(output_tokens),
			SUM(CASE WHEN success THEN 0 ELSE 1 END)
		 FROM llm_requests`,
	).Scan(&t.Requests, &in, &out, &failed)
	if err != nil {
		return nil, fmt.Errorf("total LLM usage: %w", err)
	}
	t.InputTokens = int(in.Int64)
	t.OutputTokens = int(out.Int64)
	t.Failures = int(failed.Int64)
	return &t, nil
}

// scanLLMEvent reads one event from a row scanner, so QueryRow and Query
// results share the column order in llmEventColumns.
func scanLLMEvent(row interface{ Scan(...any) error }) (*LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := row.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model,
		&e.Purpose, &e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
