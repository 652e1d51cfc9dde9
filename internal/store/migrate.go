package store

import (
	"database/sql"
	"fmt"
)

// schema is the full DDL, idempotent so Open can run it on every start.
// Timestamps are written from Go as UTC rather than relying on SQLite's
// CURRENT_TIMESTAMP, so they scan back into time.Time cleanly.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS lessons (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		topic            TEXT NOT NULL,
		content          TEXT NOT NULL,
		difficulty_level INTEGER NOT NULL DEFAULT 1,
		created_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		lesson_id    INTEGER NOT NULL UNIQUE REFERENCES lessons (id) ON DELETE CASCADE,
		completed    BOOLEAN NOT NULL DEFAULT FALSE,
		score        INTEGER NOT NULL DEFAULT 0,
		time_spent   INTEGER NOT NULL DEFAULT 0,
		completed_at TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence        INTEGER NOT NULL UNIQUE,
		lesson_id       INTEGER NOT NULL REFERENCES lessons (id) ON DELETE CASCADE,
		attempt_id      TEXT NOT NULL,
		score           INTEGER NOT NULL,
		total_questions INTEGER NOT NULL,
		percentage      INTEGER NOT NULL,
		time_taken      INTEGER NOT NULL DEFAULT 0,
		answers         TEXT NOT NULL DEFAULT '[]',
		created_at      TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_results_lesson ON quiz_results (lesson_id)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL DEFAULT TRUE,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '',
		timestamp     TIMESTAMP NOT NULL
	)`,
}

// migrate creates missing tables and indexes.
func migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
