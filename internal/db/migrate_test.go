package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"courses", "course_modules", "course_lessons", "lesson_progress", "study_plans", "study_sessions"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_AddsSessionTrackingColumns(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	for _, col := range []string{"is_review", "reschedule_count"} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('study_sessions') WHERE name = ?`, col).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "column %s", col)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_course_modules_course",
		"idx_course_lessons_module",
		"idx_study_plans_owner",
		"idx_study_sessions_plan",
		"idx_study_sessions_owner",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenDB_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "planner.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func insertPlan(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO study_plans (id, owner_id, name, generation_mode, start_date, created_at, updated_at)
		VALUES (?, 'u1', 'Plan', 'manual', '2025-03-03', '2025-03-01T00:00:00Z', '2025-03-01T00:00:00Z')`, id)
	require.NoError(t, err)
}

func insertSession(db *sql.DB, id, planID, status string, selfEval any) error {
	_, err := db.Exec(`INSERT INTO study_sessions (id, plan_id, owner_id, lesson_id, course_id, scheduled_start, scheduled_end,
		duration_min, status, self_evaluation, created_at, updated_at)
		VALUES (?, ?, 'u1', 'l1', 'c1', '2025-03-03T18:00:00Z', '2025-03-03T19:00:00Z', 60, ?, ?, '2025-03-01T00:00:00Z', '2025-03-01T00:00:00Z')`,
		id, planID, status, selfEval)
	return err
}

func TestMigrate_StudyPlanModeCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_plans (id, owner_id, name, generation_mode, start_date, created_at, updated_at)
		VALUES ('p1', 'u1', 'Plan', 'wizard', '2025-03-03', '2025-03-01T00:00:00Z', '2025-03-01T00:00:00Z')`)
	assert.Error(t, err, "unknown generation mode rejected")
}

func TestMigrate_StudySessionConstraints(t *testing.T) {
	db := openTestDB(t)
	insertPlan(t, db, "p1")

	assert.Error(t, insertSession(db, "s1", "p1", "done", nil), "unknown status rejected")
	assert.Error(t, insertSession(db, "s1", "p1", "completed", 6), "self evaluation above 5 rejected")
	assert.Error(t, insertSession(db, "s1", "missing-plan", "pending", nil), "plan must exist")
	assert.NoError(t, insertSession(db, "s1", "p1", "completed", 4))
}

func TestMigrate_DeletingPlanCascadesSessions(t *testing.T) {
	db := openTestDB(t)
	insertPlan(t, db, "p1")
	require.NoError(t, insertSession(db, "s1", "p1", "pending", nil))

	_, err := db.Exec(`DELETE FROM study_plans WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM study_sessions`).Scan(&n))
	assert.Equal(t, 0, n)
}
