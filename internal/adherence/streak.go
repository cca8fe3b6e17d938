package adherence

import (
	"sort"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

const dateLayout = "2006-01-02"

// StreakRecord is the study-habit summary of a learner.
type StreakRecord struct {
	CurrentStreak            int    `json:"current_streak"`
	LongestStreak            int    `json:"longest_streak"`
	LastSessionDate          string `json:"last_session_date,omitempty"`
	TotalSessionsCompleted   int    `json:"total_sessions_completed"`
	TotalStudyMinutes        int    `json:"total_study_minutes"`
	TotalSessionsMissed      int    `json:"total_sessions_missed"`
	TotalSessionsRescheduled int    `json:"total_sessions_rescheduled"`
}

// Streak derives streak statistics as of now. A study day is a calendar
// day, in now's location, on which at least one session was completed.
// The current streak is the run of consecutive study days ending today, or
// yesterday when nothing has been completed yet today; any gap resets it.
func Streak(sessions []domain.PlanSession, now time.Time) StreakRecord {
	var r StreakRecord
	days := map[string]time.Time{}

	for _, s := range sessions {
		if s.RescheduleCount > 0 {
			r.TotalSessionsRescheduled++
		}
		switch Classify(s, now) {
		case domain.StatusCompleted:
			r.TotalSessionsCompleted++
			r.TotalStudyMinutes += actualDuration(s)
			d := activityDate(s, now.Location())
			days[d.Format(dateLayout)] = d
		case domain.StatusMissed:
			r.TotalSessionsMissed++
		}
	}
	if len(days) == 0 {
		return r
	}

	sorted := make([]time.Time, 0, len(days))
	for _, d := range days {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	run := 0
	for i, d := range sorted {
		if i > 0 && domain.DaysBetween(sorted[i-1], d) == 1 {
			run++
		} else {
			run = 1
		}
		r.LongestStreak = max(r.LongestStreak, run)
	}

	last := sorted[len(sorted)-1]
	r.LastSessionDate = last.Format(dateLayout)
	if gap := domain.DaysBetween(last, domain.DateOf(now)); gap == 0 || gap == 1 {
		r.CurrentStreak = run
	}
	return r
}

// activityDate is the day a completed session counts toward. Sessions
// without a completion time count on their scheduled day.
func activityDate(s domain.PlanSession, loc *time.Location) time.Time {
	at := s.ScheduledStart
	if s.CompletedAt != nil {
		at = *s.CompletedAt
	}
	return domain.DateOf(at.In(loc))
}
