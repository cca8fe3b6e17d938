package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// GroupByWeek groups sessions by week number counted from start (week 1 is
// the first seven days).
func GroupByWeek(sessions []domain.ScheduledSession, start time.Time) domain.Groups[int, domain.ScheduledSession] {
	return domain.GroupBy(sessions, func(s domain.ScheduledSession) int {
		return domain.DaysBetween(start, s.Date)/7 + 1
	})
}

// GroupByCourse groups sessions by course, in order of first appearance.
func GroupByCourse(sessions []domain.ScheduledSession) domain.Groups[string, domain.ScheduledSession] {
	return domain.GroupBy(sessions, func(s domain.ScheduledSession) string {
		return s.CourseID
	})
}

// SortByDate orders sessions by calendar date, keeping the engine order
// within a day.
func SortByDate(sessions []domain.ScheduledSession) []domain.ScheduledSession {
	out := make([]domain.ScheduledSession, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// BuildPreview derives the preview aggregate from a distribution result.
// Reviews count towards totals; the completion date is the last lesson's.
func BuildPreview(name string, start time.Time, res DistributeResult) domain.PlanPreview {
	start = domain.DateOf(start)
	p := domain.PlanPreview{
		Name:             name,
		StartDate:        start,
		TotalSessions:    len(res.Sessions),
		Sessions:         res.Sessions,
		SessionsByWeek:   GroupByWeek(res.Sessions, start),
		SessionsByCourse: GroupByCourse(res.Sessions),
		UnitsRequested:   res.Requested,
		UnitsPlaced:      res.Placed,
	}
	totalMin := 0
	for _, s := range res.Sessions {
		totalMin += s.DurationMin
		if s.IsReview {
			p.ReviewSessions++
			continue
		}
		if p.CompletionDate == nil || s.Date.After(*p.CompletionDate) {
			last := s.Date
			p.CompletionDate = &last
		}
	}
	p.TotalStudyHours = float64(totalMin) / 60
	return p
}
