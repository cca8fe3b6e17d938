package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

// PlannerService builds plan previews and persists plans. Preview, validate
// and create never return Go errors: failures are reported in the response.
type PlannerService interface {
	GenerateAIPreview(ctx context.Context, req contract.GeneratePreviewRequest) contract.PreviewResponse
	GenerateManualPreview(ctx context.Context, req contract.ManualPlanRequest) contract.PreviewResponse
	ValidateManual(ctx context.Context, req contract.ValidateManualRequest) contract.ValidateManualResponse
	CreateManualPlan(ctx context.Context, ownerID string, req contract.ManualPlanRequest) contract.CreatePlanResponse
	CreateAIPlan(ctx context.Context, ownerID string, req contract.GeneratePreviewRequest) contract.CreatePlanResponse
	ListPlans(ctx context.Context, ownerID string) ([]*domain.StudyPlan, error)
}

type AdherenceService interface {
	ForOwner(ctx context.Context, ownerID string) (*contract.AdherenceResponse, error)
	ForPlan(ctx context.Context, planID string) (*contract.AdherenceResponse, error)
}

type SessionService interface {
	Complete(ctx context.Context, ownerID string, c contract.SessionCompletion) (*domain.PlanSession, error)
	MarkMissed(ctx context.Context, ownerID, sessionID string) (*domain.PlanSession, error)
	Reschedule(ctx context.Context, ownerID, sessionID string, start time.Time) (*domain.PlanSession, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.PlanSession, error)
}

type CatalogService interface {
	Import(ctx context.Context, path string) (*ImportResult, error)
	List(ctx context.Context) ([]repository.CourseSummary, error)
}

// ImportResult counts what a catalog import wrote.
type ImportResult struct {
	Courses  int
	Lessons  int
	Progress int
}
