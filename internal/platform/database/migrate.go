package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migrate applies the schema. Statements are idempotent so the server can
// run them on every startup.
func Migrate(db *sql.DB) error {
	log.Println("Running database migrations...")
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	log.Println("Database migrations completed successfully")
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL DEFAULT 'examiner',
		full_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contests (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		created_by BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGSERIAL PRIMARY KEY,
		contest_id BIGINT NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
		access_code TEXT NOT NULL,
		registration_start_time TIMESTAMPTZ NOT NULL,
		registration_end_time TIMESTAMPTZ NOT NULL,
		exam_start_time TIMESTAMPTZ NOT NULL,
		exam_end_time TIMESTAMPTZ NOT NULL,
		capacity INT NOT NULL CHECK (capacity > 0),
		auto_approve BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS candidate_labels (
		id BIGSERIAL PRIMARY KEY,
		std BIGINT NOT NULL,
		full_name TEXT NOT NULL,
		contest_id BIGINT NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
		user_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_candidate_labels_contest ON candidate_labels(contest_id)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id BIGSERIAL PRIMARY KEY,
		std BIGINT NOT NULL,
		room_id BIGINT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
		location TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		approval_status TEXT NOT NULL DEFAULT 'pending',
		registered_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		started_at TIMESTAMPTZ,
		ended_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_room ON attempts(room_id)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_approval ON attempts(approval_status)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		severity TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS violations (
		id BIGSERIAL PRIMARY KEY,
		severity TEXT NOT NULL,
		text TEXT NOT NULL,
		handled BOOLEAN NOT NULL DEFAULT FALSE,
		handled_at TIMESTAMPTZ,
		handled_by BIGINT,
		attempt_id BIGINT NOT NULL REFERENCES attempts(id) ON DELETE CASCADE,
		alert_id BIGINT REFERENCES alerts(id) ON DELETE SET NULL,
		created_by BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		log_start_time TIMESTAMPTZ NOT NULL,
		log_end_time TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_violations_attempt ON violations(attempt_id)`,
	`CREATE TABLE IF NOT EXISTS processes (
		id BIGSERIAL PRIMARY KEY,
		pid INT NOT NULL,
		name TEXT NOT NULL,
		parent_id BIGINT REFERENCES processes(id) ON DELETE SET NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ,
		data JSONB,
		attempt_id BIGINT NOT NULL REFERENCES attempts(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_processes_attempt ON processes(attempt_id)`,
	`CREATE TABLE IF NOT EXISTS images (
		id BIGSERIAL PRIMARY KEY,
		text TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		meta JSONB,
		status TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id BIGSERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		attempt_id BIGINT,
		process_id BIGINT,
		image_id BIGINT,
		alert_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		details TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		room_id BIGINT REFERENCES rooms(id) ON DELETE CASCADE,
		context_id BIGINT REFERENCES contests(id) ON DELETE CASCADE,
		created_by BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS process_blacklist (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS contest_process_blacklist (
		id BIGSERIAL PRIMARY KEY,
		process_id BIGINT NOT NULL REFERENCES process_blacklist(id) ON DELETE CASCADE,
		contest_id BIGINT NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
		UNIQUE (process_id, contest_id)
	)`,
}
