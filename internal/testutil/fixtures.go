package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/google/uuid"
)

// Course options
type CourseOption func(*repository.CourseRecord)

func WithLevel(l domain.CourseLevel) CourseOption {
	return func(c *repository.CourseRecord) {
		c.Level = l
	}
}

func WithCategory(cat domain.CourseCategory) CourseOption {
	return func(c *repository.CourseRecord) {
		c.Category = cat
	}
}

// WithModule appends a published module whose lessons carry the given
// estimates. A zero estimate leaves the lesson without one.
func WithModule(title string, estimates ...int) CourseOption {
	return func(c *repository.CourseRecord) {
		idx := len(c.Modules)
		m := repository.ModuleRecord{
			ID:         fmt.Sprintf("%s-m%d", c.ID, idx+1),
			Title:      title,
			OrderIndex: idx,
			Published:  true,
		}
		for i, est := range estimates {
			l := repository.LessonRecord{
				ID:         fmt.Sprintf("%s-l%d", m.ID, i+1),
				Title:      fmt.Sprintf("%s lesson %d", title, i+1),
				OrderIndex: i,
				Published:  true,
			}
			if est > 0 {
				e := est
				l.EstimatedMin = &e
			}
			m.Lessons = append(m.Lessons, l)
		}
		c.Modules = append(c.Modules, m)
	}
}

// WithDraftModule appends an unpublished module with one lesson.
func WithDraftModule(title string) CourseOption {
	return func(c *repository.CourseRecord) {
		idx := len(c.Modules)
		id := fmt.Sprintf("%s-m%d", c.ID, idx+1)
		c.Modules = append(c.Modules, repository.ModuleRecord{
			ID:         id,
			Title:      title,
			OrderIndex: idx,
			Lessons: []repository.LessonRecord{
				{ID: id + "-l1", Title: title + " draft", Published: true},
			},
		})
	}
}

// NewTestCourse builds a course with the given ID. Without WithModule
// options it has no modules.
func NewTestCourse(id, title string, opts ...CourseOption) *repository.CourseRecord {
	c := &repository.CourseRecord{
		ID:       id,
		Title:    title,
		Level:    domain.LevelIntermediate,
		Category: domain.CategoryPractical,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Plan options
type PlanOption func(*domain.StudyPlan)

func WithMode(m domain.GenerationMode) PlanOption {
	return func(p *domain.StudyPlan) {
		p.Mode = m
	}
}

func WithStartDate(d time.Time) PlanOption {
	return func(p *domain.StudyPlan) {
		p.StartDate = d
	}
}

func WithEndDate(d time.Time) PlanOption {
	return func(p *domain.StudyPlan) {
		p.EndDate = &d
	}
}

func WithAIMeta(m domain.AIMetadata) PlanOption {
	return func(p *domain.StudyPlan) {
		p.AIMeta = &m
	}
}

func NewTestPlan(ownerID, name string, opts ...PlanOption) *domain.StudyPlan {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.StudyPlan{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         name,
		Mode:         domain.ModeManual,
		SessionType:  domain.SessionMedium,
		StartDate:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		ScheduleMeta: "{}",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session options
type SessionOption func(*domain.PlanSession)

func WithStatus(s domain.SessionStatus) SessionOption {
	return func(ps *domain.PlanSession) {
		ps.Status = s
	}
}

func WithCompleted(at time.Time, actualMin, selfEval int) SessionOption {
	return func(ps *domain.PlanSession) {
		ps.Status = domain.StatusCompleted
		ps.CompletedAt = &at
		ps.ActualDurationMin = &actualMin
		ps.SelfEvaluation = &selfEval
	}
}

func WithLesson(courseID, lessonID string) SessionOption {
	return func(ps *domain.PlanSession) {
		ps.CourseID = courseID
		ps.LessonID = lessonID
	}
}

func WithReview() SessionOption {
	return func(ps *domain.PlanSession) {
		ps.IsReview = true
	}
}

// NewTestPlanSession builds a pending session for the plan starting at
// start and lasting durationMin.
func NewTestPlanSession(plan *domain.StudyPlan, start time.Time, durationMin int, opts ...SessionOption) *domain.PlanSession {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.PlanSession{
		ID:             uuid.New().String(),
		PlanID:         plan.ID,
		OwnerID:        plan.OwnerID,
		LessonID:       "lesson-1",
		CourseID:       "course-1",
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Duration(durationMin) * time.Minute),
		DurationMin:    durationMin,
		Status:         domain.StatusPending,
		IsAIGenerated:  plan.Mode == domain.ModeAIGenerated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
