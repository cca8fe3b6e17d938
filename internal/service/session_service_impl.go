package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

// Self-evaluation bounds of a completed session.
const (
	MinSelfEvaluation = 1
	MaxSelfEvaluation = 5
)

type sessionService struct {
	sessions repository.PlanSessionRepo
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewSessionService(sessions repository.PlanSessionRepo, uow db.UnitOfWork, now func() time.Time, observers ...UseCaseObserver) SessionService {
	if now == nil {
		now = time.Now
	}
	return &sessionService{sessions: sessions, uow: uow, now: now, observer: useCaseObserverOrNoop(observers)}
}

// Complete records the outcome of a session. A session can be completed
// once; the actual duration defaults to the planned one and the completion
// time to now. A completion time in the future is rejected.
func (s *sessionService) Complete(ctx context.Context, ownerID string, c contract.SessionCompletion) (out *domain.PlanSession, err error) {
	ctx, uc := startUseCase(ctx, s.observer, "session.complete")
	uc.set("session_id", c.SessionID)
	defer func() { uc.end(ctx, err) }()

	if c.SelfEvaluation != 0 && (c.SelfEvaluation < MinSelfEvaluation || c.SelfEvaluation > MaxSelfEvaluation) {
		return nil, &contract.PlannerError{
			Code:    contract.ErrConfiguration,
			Field:   "self_evaluation",
			Message: fmt.Sprintf("self evaluation must be between %d and %d", MinSelfEvaluation, MaxSelfEvaluation),
		}
	}
	if c.ActualDurationMin < 0 {
		return nil, &contract.PlannerError{Code: contract.ErrConfiguration, Field: "actual_duration_minutes", Message: "actual duration cannot be negative"}
	}

	err = s.transition(ctx, ownerID, c.SessionID, func(ps *domain.PlanSession, now time.Time) error {
		if ps.Status == domain.StatusCompleted {
			return &contract.PlannerError{Code: contract.ErrConfiguration, Field: "session_id", Message: "session is already completed"}
		}
		actual := c.ActualDurationMin
		if actual == 0 {
			actual = ps.DurationMin
		}
		completedAt := now
		if c.CompletedAt != nil {
			if c.CompletedAt.After(now) {
				return &contract.PlannerError{Code: contract.ErrConfiguration, Field: "completed_at", Message: "completion time is in the future"}
			}
			completedAt = c.CompletedAt.UTC()
		}
		ps.Status = domain.StatusCompleted
		ps.CompletedAt = &completedAt
		ps.ActualDurationMin = &actual
		if c.SelfEvaluation != 0 {
			eval := c.SelfEvaluation
			ps.SelfEvaluation = &eval
		}
		ps.Notes = strings.TrimSpace(c.Notes)
		out = ps
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkMissed flags a session that was not done. Completed sessions keep
// their status.
func (s *sessionService) MarkMissed(ctx context.Context, ownerID, sessionID string) (out *domain.PlanSession, err error) {
	ctx, uc := startUseCase(ctx, s.observer, "session.mark_missed")
	uc.set("session_id", sessionID)
	defer func() { uc.end(ctx, err) }()

	err = s.transition(ctx, ownerID, sessionID, func(ps *domain.PlanSession, _ time.Time) error {
		if ps.Status == domain.StatusCompleted {
			return &contract.PlannerError{Code: contract.ErrConfiguration, Field: "session_id", Message: "a completed session cannot be marked missed"}
		}
		ps.Status = domain.StatusMissed
		out = ps
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reschedule moves a session to a new start, keeping its length, and puts
// it back to pending. Each move is counted.
func (s *sessionService) Reschedule(ctx context.Context, ownerID, sessionID string, start time.Time) (out *domain.PlanSession, err error) {
	ctx, uc := startUseCase(ctx, s.observer, "session.reschedule")
	uc.set("session_id", sessionID)
	defer func() { uc.end(ctx, err) }()

	if start.IsZero() {
		return nil, &contract.PlannerError{Code: contract.ErrConfiguration, Field: "start", Message: "new start time is required"}
	}

	err = s.transition(ctx, ownerID, sessionID, func(ps *domain.PlanSession, _ time.Time) error {
		if ps.Status == domain.StatusCompleted {
			return &contract.PlannerError{Code: contract.ErrConfiguration, Field: "session_id", Message: "a completed session cannot be rescheduled"}
		}
		ps.ScheduledStart = start
		ps.ScheduledEnd = start.Add(time.Duration(ps.DurationMin) * time.Minute)
		ps.Status = domain.StatusPending
		ps.RescheduleCount++
		out = ps
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *sessionService) ListByPlan(ctx context.Context, planID string) ([]*domain.PlanSession, error) {
	return s.sessions.ListByPlan(ctx, planID)
}

// transition loads a session owned by ownerID, applies fn and saves it in
// one transaction.
func (s *sessionService) transition(ctx context.Context, ownerID, sessionID string, fn func(ps *domain.PlanSession, now time.Time) error) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanSessionRepo(tx)
		ps, err := repo.GetByID(ctx, sessionID)
		if err != nil {
			return notFoundOr(err, "session_id")
		}
		if ps.OwnerID != ownerID {
			return notFoundOr(fmt.Errorf("study session: %w", repository.ErrNotFound), "session_id")
		}

		now := s.now().UTC()
		if err := fn(ps, now); err != nil {
			return err
		}
		ps.UpdatedAt = now
		if err := repo.Update(ctx, ps); err != nil {
			return contract.NewError(contract.ErrPersistenceFailure, "session_id", err)
		}
		return nil
	})
}
