package repository

import (
	"context"

	"github.com/alexanderramin/studyplanner/internal/catalog"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// LessonRecord is the stored form of a lesson.
type LessonRecord struct {
	ID           string
	Title        string
	OrderIndex   int
	EstimatedMin *int
	Published    bool
}

// ModuleRecord is the stored form of a course module.
type ModuleRecord struct {
	ID         string
	Title      string
	OrderIndex int
	Published  bool
	Lessons    []LessonRecord
}

// CourseRecord is a full course tree as written by the catalog importer.
type CourseRecord struct {
	ID          string
	Title       string
	Description string
	Level       domain.CourseLevel
	Category    domain.CourseCategory
	Modules     []ModuleRecord
}

// CourseSummary is one row of the course listing.
type CourseSummary struct {
	ID          string
	Title       string
	Level       domain.CourseLevel
	Category    domain.CourseCategory
	LessonCount int
	TotalMin    int
}

type CourseRepo interface {
	catalog.CourseSource
	Upsert(ctx context.Context, c *CourseRecord) error
	List(ctx context.Context) ([]CourseSummary, error)
}

type ProgressRepo interface {
	catalog.ProgressSource
	Record(ctx context.Context, ownerID, lessonID string, pct float64) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.StudyPlan) error
	GetByID(ctx context.Context, id string) (*domain.StudyPlan, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.StudyPlan, error)
}

type PlanSessionRepo interface {
	CreateBatch(ctx context.Context, sessions []*domain.PlanSession) error
	GetByID(ctx context.Context, id string) (*domain.PlanSession, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.PlanSession, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.PlanSession, error)
	Update(ctx context.Context, s *domain.PlanSession) error
}
