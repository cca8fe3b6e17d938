package service

import (
	"context"
	"time"

	"github.com/alexanderramin/studyplanner/internal/adherence"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

type adherenceService struct {
	sessions repository.PlanSessionRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewAdherenceService(sessions repository.PlanSessionRepo, now func() time.Time, observers ...UseCaseObserver) AdherenceService {
	if now == nil {
		now = time.Now
	}
	return &adherenceService{sessions: sessions, now: now, observer: useCaseObserverOrNoop(observers)}
}

// ForOwner aggregates every session of the owner, overall and per plan, and
// derives the owner's study streak.
func (s *adherenceService) ForOwner(ctx context.Context, ownerID string) (resp *contract.AdherenceResponse, err error) {
	ctx, uc := startUseCase(ctx, s.observer, "adherence.for_owner")
	defer func() { uc.end(ctx, err) }()

	sessions, err := s.sessions.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, contract.NewError(contract.ErrDependencyUnavailable, "owner_id", err)
	}
	flat := derefSessions(sessions)
	now := s.now()
	uc.set("sessions", len(flat))
	streak := adherence.Streak(flat, now)
	uc.set("current_streak", streak.CurrentStreak)
	return &contract.AdherenceResponse{
		OwnerID: ownerID,
		Overall: adherence.Aggregate(flat, now),
		Plans:   adherence.ByPlan(flat, now),
		Streak:  &streak,
	}, nil
}

func (s *adherenceService) ForPlan(ctx context.Context, planID string) (resp *contract.AdherenceResponse, err error) {
	ctx, uc := startUseCase(ctx, s.observer, "adherence.for_plan")
	defer func() { uc.end(ctx, err) }()

	sessions, err := s.sessions.ListByPlan(ctx, planID)
	if err != nil {
		return nil, contract.NewError(contract.ErrDependencyUnavailable, "plan_id", err)
	}
	flat := derefSessions(sessions)
	uc.set("sessions", len(flat))
	return &contract.AdherenceResponse{
		PlanID:  planID,
		Overall: adherence.Aggregate(flat, s.now()),
	}, nil
}

func derefSessions(in []*domain.PlanSession) []domain.PlanSession {
	out := make([]domain.PlanSession, len(in))
	for i, s := range in {
		out[i] = *s
	}
	return out
}
