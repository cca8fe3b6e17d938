package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

const (
	// DefaultReviewLookaheadDays is how many days past the due date a
	// review may slide to find a study day.
	DefaultReviewLookaheadDays = 14
	// DefaultReviewMaxLessonsPerDay skips days already holding this many
	// lesson sessions.
	DefaultReviewMaxLessonsPerDay = 2
)

// reviewIntervals are the spaced-repetition offsets in days per focus.
var reviewIntervals = map[domain.PriorityFocus][]int{
	domain.FocusRetention: {1, 3, 7, 14, 30},
	domain.FocusBalanced:  {1, 7, 30},
}

// ReviewIntervals returns the day offsets after a lesson at which it is
// reviewed. Completion focus and unknown values review once after a week.
func ReviewIntervals(focus domain.PriorityFocus) []int {
	if iv, ok := reviewIntervals[focus]; ok {
		return append([]int(nil), iv...)
	}
	return []int{7}
}

// ReviewOptions controls a review pass. Zero values select the defaults.
type ReviewOptions struct {
	// Start is the plan start date used for week numbers.
	Start time.Time
	// Intervals are day offsets after each lesson; see ReviewIntervals.
	Intervals []int
	// End, when set, is the last calendar day that may receive a review.
	End *time.Time
	// LookaheadDays bounds how far a review may slide past its due date.
	LookaheadDays int
	// MaxLessonsPerDay skips days already holding this many lessons.
	MaxLessonsPerDay int
}

// ScheduleReviews derives review sessions for already placed lessons. Each
// review lands on the first enabled day at or after lesson date + interval
// that holds fewer than MaxLessonsPerDay lessons, within the lookahead
// window; reviews with no such day are dropped. A review lasts half the
// lesson, starts in the day's first block and is pushed past any session
// it would overlap. Lessons are never moved.
func ScheduleReviews(lessons []domain.ScheduledSession, avail *Availability, opts ReviewOptions) []domain.ScheduledSession {
	if len(lessons) == 0 || len(opts.Intervals) == 0 || avail == nil || avail.EnabledDayCount() == 0 {
		return nil
	}
	lookahead := opts.LookaheadDays
	if lookahead <= 0 {
		lookahead = DefaultReviewLookaheadDays
	}
	maxLessons := opts.MaxLessonsPerDay
	if maxLessons <= 0 {
		maxLessons = DefaultReviewMaxLessonsPerDay
	}
	start := domain.DateOf(opts.Start)

	lessonsPerDay := map[string]int{}
	byDay := map[string][]domain.ScheduledSession{}
	for _, l := range lessons {
		d := dayKey(l.Date)
		lessonsPerDay[d]++
		byDay[d] = append(byDay[d], l)
	}
	for d, day := range byDay {
		sort.SliceStable(day, func(i, j int) bool { return day[i].Start.Before(day[j].Start) })
		byDay[d] = day
	}

	var reviews []domain.ScheduledSession
	for _, l := range lessons {
		if l.IsReview {
			continue
		}
		for _, interval := range opts.Intervals {
			date, ok := reviewDay(domain.AddDays(domain.DateOf(l.Date), interval), avail, lessonsPerDay, maxLessons, lookahead, opts.End)
			if !ok {
				continue
			}
			key := dayKey(date)
			r := newReview(l, date, avail, byDay[key], start)
			byDay[key] = insertByStart(byDay[key], r)
			reviews = append(reviews, r)
		}
	}
	return reviews
}

func reviewDay(due time.Time, avail *Availability, lessonsPerDay map[string]int, maxLessons, lookahead int, end *time.Time) (time.Time, bool) {
	for i := 0; i < lookahead; i++ {
		date := domain.AddDays(due, i)
		if end != nil && date.After(domain.DateOf(*end)) {
			return time.Time{}, false
		}
		if avail.Enabled(date.Weekday()) && lessonsPerDay[dayKey(date)] < maxLessons {
			return date, true
		}
	}
	return time.Time{}, false
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

func newReview(lesson domain.ScheduledSession, date time.Time, avail *Availability, sameDay []domain.ScheduledSession, planStart time.Time) domain.ScheduledSession {
	wd := date.Weekday()
	block := avail.BlockAt(wd, 0)
	duration := max((lesson.DurationMin+1)/2, 1)

	startAt := time.Date(date.Year(), date.Month(), date.Day(), 0, block.StartMin, 0, 0, date.Location())
	for _, s := range sameDay {
		end := startAt.Add(time.Duration(duration) * time.Minute)
		if s.Start.Before(end) && s.End.After(startAt) {
			startAt = s.End
		}
	}

	return domain.ScheduledSession{
		Day:         wd,
		Date:        date,
		Week:        domain.DaysBetween(planStart, date)/7 + 1,
		Slot:        block.Slot,
		CourseID:    lesson.CourseID,
		CourseTitle: lesson.CourseTitle,
		ModuleID:    lesson.ModuleID,
		LessonID:    lesson.LessonID,
		LessonTitle: lesson.LessonTitle,
		DurationMin: duration,
		Start:       startAt,
		End:         startAt.Add(time.Duration(duration) * time.Minute),
		IsReview:    true,
	}
}

func insertByStart(day []domain.ScheduledSession, s domain.ScheduledSession) []domain.ScheduledSession {
	i := sort.Search(len(day), func(i int) bool { return day[i].Start.After(s.Start) })
	day = append(day, domain.ScheduledSession{})
	copy(day[i+1:], day[i:])
	day[i] = s
	return day
}

// WithReviews returns a copy of res whose session list also holds reviews,
// ordered by start time. Lesson counts are unchanged.
func (r DistributeResult) WithReviews(reviews []domain.ScheduledSession) DistributeResult {
	if len(reviews) == 0 {
		return r
	}
	merged := make([]domain.ScheduledSession, 0, len(r.Sessions)+len(reviews))
	merged = append(merged, r.Sessions...)
	merged = append(merged, reviews...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})
	r.Sessions = merged
	return r
}
