package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the
// full list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ADD COLUMN is replayed too; an existing column is fine.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS courses (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		level       TEXT NOT NULL DEFAULT 'intermediate',
		category    TEXT NOT NULL DEFAULT 'practical',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS course_modules (
		id          TEXT PRIMARY KEY,
		course_id   TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		is_published INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE INDEX IF NOT EXISTS idx_course_modules_course ON course_modules(course_id)`,

	`CREATE TABLE IF NOT EXISTS course_lessons (
		id            TEXT PRIMARY KEY,
		module_id     TEXT NOT NULL REFERENCES course_modules(id) ON DELETE CASCADE,
		title         TEXT NOT NULL,
		order_index   INTEGER NOT NULL DEFAULT 0,
		estimated_min INTEGER,
		is_published  INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE INDEX IF NOT EXISTS idx_course_lessons_module ON course_lessons(module_id)`,

	`CREATE TABLE IF NOT EXISTS lesson_progress (
		owner_id     TEXT NOT NULL,
		lesson_id    TEXT NOT NULL,
		progress_pct REAL NOT NULL DEFAULT 0
		             CHECK(progress_pct >= 0 AND progress_pct <= 100),
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (owner_id, lesson_id)
	)`,

	`CREATE TABLE IF NOT EXISTS study_plans (
		id              TEXT PRIMARY KEY,
		owner_id        TEXT NOT NULL,
		name            TEXT NOT NULL,
		generation_mode TEXT NOT NULL
		                CHECK(generation_mode IN ('manual','ai_generated')),
		session_type    TEXT NOT NULL DEFAULT 'medium'
		                CHECK(session_type IN ('short','medium','long')),
		start_date      TEXT NOT NULL,
		end_date        TEXT,
		schedule_meta   TEXT NOT NULL DEFAULT '{}',
		ai_meta         TEXT,
		is_active       INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_plans_owner ON study_plans(owner_id)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id                  TEXT PRIMARY KEY,
		plan_id             TEXT NOT NULL REFERENCES study_plans(id) ON DELETE CASCADE,
		owner_id            TEXT NOT NULL,
		lesson_id           TEXT NOT NULL,
		course_id           TEXT NOT NULL,
		scheduled_start     TEXT NOT NULL,
		scheduled_end       TEXT NOT NULL,
		duration_min        INTEGER NOT NULL CHECK(duration_min > 0),
		status              TEXT NOT NULL DEFAULT 'pending'
		                    CHECK(status IN ('pending','in_progress','completed','missed','skipped')),
		is_ai_generated     INTEGER NOT NULL DEFAULT 0,
		completed_at        TEXT,
		actual_duration_min INTEGER,
		self_evaluation     INTEGER CHECK(self_evaluation IS NULL OR (self_evaluation BETWEEN 1 AND 5)),
		notes               TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_sessions_plan ON study_sessions(plan_id, scheduled_start)`,
	`CREATE INDEX IF NOT EXISTS idx_study_sessions_owner ON study_sessions(owner_id, scheduled_start)`,

	// Spaced-repetition review sessions.
	`ALTER TABLE study_sessions ADD COLUMN is_review INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE study_sessions ADD COLUMN reschedule_count INTEGER NOT NULL DEFAULT 0`,
}
