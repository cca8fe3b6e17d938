package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/catalog"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// SQLiteCourseRepo stores the course catalog and serves it as a
// catalog.CourseSource.
type SQLiteCourseRepo struct {
	db db.DBTX
}

func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

// Upsert replaces the course and its full module/lesson tree. Callers that
// need atomicity run it inside a unit of work.
func (r *SQLiteCourseRepo) Upsert(ctx context.Context, c *CourseRecord) error {
	now := formatTimestamp(nowUTC())
	_, err := r.db.ExecContext(ctx, `INSERT INTO courses (id, title, description, level, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			level = excluded.level,
			category = excluded.category,
			updated_at = excluded.updated_at`,
		c.ID, c.Title, c.Description,
		domain.CoalesceStr(string(c.Level), string(domain.LevelIntermediate)),
		domain.CoalesceStr(string(c.Category), string(domain.CategoryPractical)),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting course %s: %w", c.ID, err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_modules WHERE course_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clearing modules of course %s: %w", c.ID, err)
	}
	for _, m := range c.Modules {
		_, err := r.db.ExecContext(ctx, `INSERT INTO course_modules (id, course_id, title, order_index, is_published)
			VALUES (?, ?, ?, ?, ?)`,
			m.ID, c.ID, m.Title, m.OrderIndex, boolToInt(m.Published))
		if err != nil {
			return fmt.Errorf("inserting module %s: %w", m.ID, err)
		}
		for _, l := range m.Lessons {
			_, err := r.db.ExecContext(ctx, `INSERT INTO course_lessons (id, module_id, title, order_index, estimated_min, is_published)
				VALUES (?, ?, ?, ?, ?, ?)`,
				l.ID, m.ID, l.Title, l.OrderIndex, nullableIntToValue(l.EstimatedMin), boolToInt(l.Published))
			if err != nil {
				return fmt.Errorf("inserting lesson %s: %w", l.ID, err)
			}
		}
	}
	return nil
}

// LookupCourse returns the published module/lesson tree of a course. A
// missing course is reported with Found=false, not as an error.
func (r *SQLiteCourseRepo) LookupCourse(ctx context.Context, courseID string) (catalog.CourseLookup, error) {
	var c catalog.CourseContent
	var level, category string
	err := r.db.QueryRowContext(ctx, `SELECT id, title, level, category FROM courses WHERE id = ?`, courseID).
		Scan(&c.ID, &c.Title, &level, &category)
	if err == sql.ErrNoRows {
		return catalog.CourseLookup{}, nil
	}
	if err != nil {
		return catalog.CourseLookup{}, fmt.Errorf("loading course %s: %w", courseID, err)
	}
	c.Level = domain.CourseLevel(level)
	c.Category = domain.CourseCategory(category)

	rows, err := r.db.QueryContext(ctx, `SELECT m.id, m.title, m.order_index, l.id, l.title, l.order_index, l.estimated_min
		FROM course_modules m
		JOIN course_lessons l ON l.module_id = m.id
		WHERE m.course_id = ? AND m.is_published = 1 AND l.is_published = 1
		ORDER BY m.order_index, m.id, l.order_index, l.id`, courseID)
	if err != nil {
		return catalog.CourseLookup{}, fmt.Errorf("loading lessons of course %s: %w", courseID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var m catalog.ModuleContent
		var l catalog.LessonContent
		var est sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Title, &m.OrderIndex, &l.ID, &l.Title, &l.OrderIndex, &est); err != nil {
			return catalog.CourseLookup{}, fmt.Errorf("scanning lesson row: %w", err)
		}
		l.EstimatedMin = nullableInt(est)
		if n := len(c.Modules); n == 0 || c.Modules[n-1].ID != m.ID {
			c.Modules = append(c.Modules, m)
		}
		last := &c.Modules[len(c.Modules)-1]
		last.Lessons = append(last.Lessons, l)
	}
	if err := rows.Err(); err != nil {
		return catalog.CourseLookup{}, fmt.Errorf("iterating lessons: %w", err)
	}
	return catalog.CourseLookup{Content: c, Found: true}, nil
}

// List summarizes every course with its published lesson count and total
// estimated minutes.
func (r *SQLiteCourseRepo) List(ctx context.Context) ([]CourseSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT c.id, c.title, c.level, c.category,
			COUNT(l.id),
			COALESCE(SUM(CASE WHEN l.id IS NULL THEN 0 ELSE COALESCE(l.estimated_min, ?) END), 0)
		FROM courses c
		LEFT JOIN course_modules m ON m.course_id = c.id AND m.is_published = 1
		LEFT JOIN course_lessons l ON l.module_id = m.id AND l.is_published = 1
		GROUP BY c.id
		ORDER BY c.title, c.id`, domain.DefaultLessonMin)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var out []CourseSummary
	for rows.Next() {
		var s CourseSummary
		var level, category string
		if err := rows.Scan(&s.ID, &s.Title, &level, &category, &s.LessonCount, &s.TotalMin); err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		s.Level = domain.CourseLevel(level)
		s.Category = domain.CourseCategory(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return out, nil
}
