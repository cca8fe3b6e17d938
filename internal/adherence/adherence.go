// Package adherence derives completion metrics from persisted sessions.
// Everything is recomputed on each call; "missed" for past-due sessions is
// a read-time classification and is never written back.
package adherence

import (
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// MaxPlausibleDurationMin excludes outliers from the average duration.
const MaxPlausibleDurationMin = 8 * 60

// Record is the adherence summary of a set of sessions.
type Record struct {
	Total          int     `json:"total_sessions"`
	Completed      int     `json:"completed_sessions"`
	Missed         int     `json:"missed_sessions"`
	InProgress     int     `json:"in_progress_sessions"`
	Pending        int     `json:"pending_sessions"`
	AdherenceRate  float64 `json:"adherence_rate"`
	OnTimeRate     float64 `json:"on_time_rate"`
	AvgDurationMin float64 `json:"avg_duration_minutes"`
}

// PlanRecord pairs a plan ID with its adherence summary.
type PlanRecord struct {
	PlanID string `json:"plan_id"`
	Record
}

// Classify returns the effective status of s at now. Completed and missed
// are kept as stored, skipped counts as missed, in-progress is kept, and a
// pending session whose scheduled end has passed reads as missed.
func Classify(s domain.PlanSession, now time.Time) domain.SessionStatus {
	switch s.Status {
	case domain.StatusCompleted, domain.StatusMissed:
		return s.Status
	case domain.StatusSkipped:
		return domain.StatusMissed
	case domain.StatusInProgress:
		return domain.StatusInProgress
	}
	if s.ScheduledEnd.Before(now) {
		return domain.StatusMissed
	}
	return domain.StatusPending
}

// Aggregate summarizes sessions as of now.
func Aggregate(sessions []domain.PlanSession, now time.Time) Record {
	r := Record{Total: len(sessions)}
	onTime := 0
	durSum, durN := 0, 0

	for _, s := range sessions {
		switch Classify(s, now) {
		case domain.StatusCompleted:
			r.Completed++
			if completedOnTime(s) {
				onTime++
			}
			if d := actualDuration(s); d > 0 && d <= MaxPlausibleDurationMin {
				durSum += d
				durN++
			}
		case domain.StatusMissed:
			r.Missed++
		case domain.StatusInProgress:
			r.InProgress++
		default:
			r.Pending++
		}
	}

	if r.Total > 0 {
		r.AdherenceRate = float64(r.Completed) / float64(r.Total)
	}
	if r.Completed > 0 {
		r.OnTimeRate = float64(onTime) / float64(r.Completed)
	}
	if durN > 0 {
		r.AvgDurationMin = float64(durSum) / float64(durN)
	}
	return r
}

// ByPlan aggregates sessions per plan, in order of first appearance.
func ByPlan(sessions []domain.PlanSession, now time.Time) []PlanRecord {
	groups := domain.GroupBy(sessions, func(s domain.PlanSession) string { return s.PlanID })
	out := make([]PlanRecord, 0, groups.Len())
	for _, id := range groups.Keys() {
		out = append(out, PlanRecord{PlanID: id, Record: Aggregate(groups.Get(id), now)})
	}
	return out
}

// completedOnTime reports whether completion happened no later than the end
// of the scheduled calendar day, in the schedule's own location.
func completedOnTime(s domain.PlanSession) bool {
	if s.CompletedAt == nil {
		return false
	}
	deadline := domain.AddDays(domain.DateOf(s.ScheduledStart), 1)
	return s.CompletedAt.Before(deadline)
}

func actualDuration(s domain.PlanSession) int {
	return domain.PositiveIntOr(s.DurationMin, s.ActualDurationMin)
}
