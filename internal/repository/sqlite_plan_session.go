package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// SQLitePlanSessionRepo implements PlanSessionRepo using a SQLite database.
type SQLitePlanSessionRepo struct {
	db db.DBTX
}

func NewSQLitePlanSessionRepo(conn db.DBTX) *SQLitePlanSessionRepo {
	return &SQLitePlanSessionRepo{db: conn}
}

const sessionColumns = `id, plan_id, owner_id, lesson_id, course_id, scheduled_start, scheduled_end,
	duration_min, status, is_ai_generated, completed_at, actual_duration_min, self_evaluation,
	notes, created_at, updated_at, is_review, reschedule_count`

// CreateBatch inserts the sessions in order. It stops at the first failure;
// run it inside a unit of work to make the batch atomic.
func (r *SQLitePlanSessionRepo) CreateBatch(ctx context.Context, sessions []*domain.PlanSession) error {
	query := `INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, s := range sessions {
		_, err := r.db.ExecContext(ctx, query,
			s.ID,
			s.PlanID,
			s.OwnerID,
			s.LessonID,
			s.CourseID,
			formatTimestamp(s.ScheduledStart),
			formatTimestamp(s.ScheduledEnd),
			s.DurationMin,
			domain.CoalesceStr(string(s.Status), string(domain.StatusPending)),
			boolToInt(s.IsAIGenerated),
			nullableTimeToString(s.CompletedAt, timestampLayout),
			nullableIntToValue(s.ActualDurationMin),
			nullableIntToValue(s.SelfEvaluation),
			s.Notes,
			formatTimestamp(s.CreatedAt),
			formatTimestamp(s.UpdatedAt),
			boolToInt(s.IsReview),
			s.RescheduleCount,
		)
		if err != nil {
			return fmt.Errorf("inserting study session %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLitePlanSessionRepo) GetByID(ctx context.Context, id string) (*domain.PlanSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM study_sessions WHERE id = ?`, id)
	s, err := scanPlanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("study session: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLitePlanSessionRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.PlanSession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+`
		FROM study_sessions WHERE plan_id = ?`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by plan: %w", err)
	}
	defer rows.Close()
	return scanPlanSessions(rows)
}

func (r *SQLitePlanSessionRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.PlanSession, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sessionColumns+`
		FROM study_sessions WHERE owner_id = ?`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by owner: %w", err)
	}
	defer rows.Close()
	return scanPlanSessions(rows)
}

// Update writes the mutable tracking fields of a session.
func (r *SQLitePlanSessionRepo) Update(ctx context.Context, s *domain.PlanSession) error {
	res, err := r.db.ExecContext(ctx, `UPDATE study_sessions SET
			scheduled_start = ?, scheduled_end = ?, duration_min = ?, status = ?,
			completed_at = ?, actual_duration_min = ?, self_evaluation = ?, notes = ?, updated_at = ?,
			reschedule_count = ?
		WHERE id = ?`,
		formatTimestamp(s.ScheduledStart),
		formatTimestamp(s.ScheduledEnd),
		s.DurationMin,
		string(s.Status),
		nullableTimeToString(s.CompletedAt, timestampLayout),
		nullableIntToValue(s.ActualDurationMin),
		nullableIntToValue(s.SelfEvaluation),
		s.Notes,
		formatTimestamp(s.UpdatedAt),
		s.RescheduleCount,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating study session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("study session: %w", ErrNotFound)
	}
	return nil
}

func scanPlanSessions(rows *sql.Rows) ([]*domain.PlanSession, error) {
	var sessions []*domain.PlanSession
	for rows.Next() {
		s, err := scanPlanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study sessions: %w", err)
	}
	// Stored starts keep their UTC offset, so text order is not time order.
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.ScheduledStart.Equal(b.ScheduledStart) {
			return a.ScheduledStart.Before(b.ScheduledStart)
		}
		return a.ID < b.ID
	})
	return sessions, nil
}

func scanPlanSession(row rowScanner) (*domain.PlanSession, error) {
	var s domain.PlanSession
	var status, startStr, endStr, createdStr, updatedStr string
	var completedStr sql.NullString
	var actual, eval sql.NullInt64
	var ai, review int

	err := row.Scan(&s.ID, &s.PlanID, &s.OwnerID, &s.LessonID, &s.CourseID, &startStr, &endStr,
		&s.DurationMin, &status, &ai, &completedStr, &actual, &eval,
		&s.Notes, &createdStr, &updatedStr, &review, &s.RescheduleCount)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning study session: %w", err)
	}

	s.Status = domain.SessionStatus(status)
	s.IsAIGenerated = intToBool(ai)
	s.IsReview = intToBool(review)
	s.CompletedAt = parseNullableTime(completedStr, timestampLayout)
	s.ActualDurationMin = nullableInt(actual)
	s.SelfEvaluation = nullableInt(eval)

	if s.ScheduledStart, err = time.Parse(timestampLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing scheduled_start: %w", err)
	}
	if s.ScheduledEnd, err = time.Parse(timestampLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing scheduled_end: %w", err)
	}
	if s.CreatedAt, err = time.Parse(timestampLayout, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(timestampLayout, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}
