package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/db"
)

// StartedThresholdPct is the progress above which a lesson counts as started.
const StartedThresholdPct = 0.0

// SQLiteProgressRepo stores per-lesson progress and serves it as a
// catalog.ProgressSource.
type SQLiteProgressRepo struct {
	db db.DBTX
}

func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

func (r *SQLiteProgressRepo) Record(ctx context.Context, ownerID, lessonID string, pct float64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO lesson_progress (owner_id, lesson_id, progress_pct, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner_id, lesson_id) DO UPDATE SET
			progress_pct = excluded.progress_pct,
			updated_at = excluded.updated_at`,
		ownerID, lessonID, pct, formatTimestamp(nowUTC()))
	if err != nil {
		return fmt.Errorf("recording progress for lesson %s: %w", lessonID, err)
	}
	return nil
}

// StartedLessons returns the lessons of the given courses on which the
// owner has non-trivial progress.
func (r *SQLiteProgressRepo) StartedLessons(ctx context.Context, ownerID string, courseIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(courseIDs) == 0 {
		return out, nil
	}

	args := []any{ownerID, StartedThresholdPct}
	for _, id := range courseIDs {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT p.lesson_id
		FROM lesson_progress p
		JOIN course_lessons l ON l.id = p.lesson_id
		JOIN course_modules m ON m.id = l.module_id
		WHERE p.owner_id = ? AND p.progress_pct > ?
		  AND m.course_id IN (`+placeholders(len(courseIDs))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("loading started lessons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning progress row: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress: %w", err)
	}
	return out, nil
}
