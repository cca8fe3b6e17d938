package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, owner_id, name, generation_mode, session_type, start_date, end_date,
	schedule_meta, ai_meta, is_active, created_at, updated_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.StudyPlan) error {
	var aiMeta any
	if p.AIMeta != nil {
		raw, err := json.Marshal(p.AIMeta)
		if err != nil {
			return fmt.Errorf("encoding ai metadata: %w", err)
		}
		aiMeta = string(raw)
	}

	query := `INSERT INTO study_plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.Name,
		string(p.Mode),
		string(p.SessionType),
		p.StartDate.Format(dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		domain.CoalesceStr(p.ScheduleMeta, "{}"),
		aiMeta,
		boolToInt(p.IsActive),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting study plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.StudyPlan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM study_plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("study plan: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLitePlanRepo) ListByOwner(ctx context.Context, ownerID string) ([]*domain.StudyPlan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+`
		FROM study_plans WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing study plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.StudyPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating study plans: %w", err)
	}
	return plans, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlan returns sql.ErrNoRows unwrapped so callers can map it.
func scanPlan(row rowScanner) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	var mode, sessionType, startStr, createdStr, updatedStr string
	var endStr, aiMeta sql.NullString
	var active int

	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &mode, &sessionType, &startStr, &endStr,
		&p.ScheduleMeta, &aiMeta, &active, &createdStr, &updatedStr)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning study plan: %w", err)
	}

	p.Mode = domain.GenerationMode(mode)
	p.SessionType = domain.SessionType(sessionType)
	p.IsActive = intToBool(active)
	p.EndDate = parseNullableTime(endStr, dateLayout)

	if p.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(timestampLayout, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(timestampLayout, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	if aiMeta.Valid && aiMeta.String != "" {
		var meta domain.AIMetadata
		if err := json.Unmarshal([]byte(aiMeta.String), &meta); err != nil {
			return nil, fmt.Errorf("decoding ai metadata: %w", err)
		}
		p.AIMeta = &meta
	}
	return &p, nil
}
