package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/validation"
)

// persist writes the plan row, reads it back, then writes the sessions in
// batches. Each batch commits on its own; a failed batch is reported and
// does not undo the batches before it.
func (s *plannerService) persist(ctx context.Context, ownerID string, d *draft, is *issues) contract.CreatePlanResponse {
	if len(d.result.Sessions) == 0 {
		is.fail(contract.ErrConfiguration, validation.FieldCourses, "nothing to schedule: the plan has no sessions")
		return createFailure(is)
	}

	now := s.opts.Now().UTC()
	plan := &domain.StudyPlan{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         d.name,
		Mode:         d.mode,
		SessionType:  d.sessionType,
		StartDate:    d.start,
		EndDate:      d.end,
		ScheduleMeta: d.scheduleMeta,
		AIMeta:       d.meta,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if plan.EndDate == nil {
		plan.EndDate = d.preview.CompletionDate
	}

	resp := contract.CreatePlanResponse{
		PlanName:          plan.Name,
		SessionsRequested: len(d.result.Sessions),
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).Create(ctx, plan)
	})
	if err != nil {
		is.failErr(contract.NewError(contract.ErrPersistenceFailure, "plan", err))
		return withIssues(resp, is)
	}
	if _, err := s.plans.GetByID(ctx, plan.ID); err != nil {
		is.failErr(contract.NewError(contract.ErrPersistenceFailure, "plan", fmt.Errorf("reading back plan %s: %w", plan.ID, err)))
		return withIssues(resp, is)
	}
	resp.PlanID = plan.ID

	sessions := toPlanSessions(plan, d.result.Sessions)
	size := s.opts.BatchSize
	for batch, off := 1, 0; off < len(sessions); batch, off = batch+1, off+size {
		chunk := sessions[off:min(off+size, len(sessions))]
		err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLitePlanSessionRepo(tx).CreateBatch(ctx, chunk)
		})
		if err != nil {
			resp.BatchErrors = append(resp.BatchErrors, contract.BatchError{
				Batch:   batch,
				Offset:  off,
				Size:    len(chunk),
				Message: err.Error(),
			})
			is.fail(contract.ErrPersistenceFailure, "sessions",
				fmt.Sprintf("batch %d (%d sessions) was not saved: %v", batch, len(chunk), err))
			continue
		}
		resp.SessionsCreated += len(chunk)
	}
	return withIssues(resp, is)
}

func withIssues(resp contract.CreatePlanResponse, is *issues) contract.CreatePlanResponse {
	resp.Success = !is.failed()
	resp.Errors = nonNil(is.errors)
	resp.Warnings = nonNil(is.warnings)
	return resp
}

func toPlanSessions(plan *domain.StudyPlan, scheduled []domain.ScheduledSession) []*domain.PlanSession {
	out := make([]*domain.PlanSession, len(scheduled))
	for i, ss := range scheduled {
		out[i] = &domain.PlanSession{
			ID:             uuid.New().String(),
			PlanID:         plan.ID,
			OwnerID:        plan.OwnerID,
			LessonID:       ss.LessonID,
			CourseID:       ss.CourseID,
			ScheduledStart: ss.Start,
			ScheduledEnd:   ss.End,
			DurationMin:    ss.DurationMin,
			Status:         domain.StatusPending,
			IsAIGenerated:  plan.Mode == domain.ModeAIGenerated,
			IsReview:       ss.IsReview,
			CreatedAt:      plan.CreatedAt,
			UpdatedAt:      plan.CreatedAt,
		}
	}
	return out
}
