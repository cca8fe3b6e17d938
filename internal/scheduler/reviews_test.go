package scheduler

import (
	"sort"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonOn(date time.Time, id string, hour, minutes int) domain.ScheduledSession {
	start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, time.UTC)
	return domain.ScheduledSession{
		Day:         date.Weekday(),
		Date:        domain.DateOf(date),
		Week:        1,
		Slot:        domain.SlotEvening,
		CourseID:    "c1",
		LessonID:    id,
		DurationMin: minutes,
		Start:       start,
		End:         start.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestReviewIntervals(t *testing.T) {
	assert.Equal(t, []int{1, 3, 7, 14, 30}, ReviewIntervals(domain.FocusRetention))
	assert.Equal(t, []int{1, 7, 30}, ReviewIntervals(domain.FocusBalanced))
	assert.Equal(t, []int{7}, ReviewIntervals(domain.FocusCompletion))
	assert.Equal(t, []int{7}, ReviewIntervals("unknown"))

	iv := ReviewIntervals(domain.FocusRetention)
	iv[0] = 99
	assert.Equal(t, 1, ReviewIntervals(domain.FocusRetention)[0])
}

func TestScheduleReviews_NextDayReviewSlidesToStudyDay(t *testing.T) {
	avail := mustAvailability(t, pattern(60, 60, 1, time.Monday, time.Wednesday, time.Friday))
	lessons := Distribute(courseUnits("c1", 2, 3, 45), avail, DistributeOptions{Start: monday}).Sessions
	require.Len(t, lessons, 6)

	reviews := ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: []int{1}})
	require.Len(t, reviews, 6)

	// Monday's lesson is due Tuesday, which is off, so it lands Wednesday
	// after that day's lesson.
	first := reviews[0]
	assert.True(t, first.IsReview)
	assert.Equal(t, lessons[0].LessonID, first.LessonID)
	assert.Equal(t, 5, first.Date.Day())
	assert.Equal(t, 30, first.DurationMin)
	assert.Equal(t, lessons[1].End, first.Start)
	assert.Equal(t, 1, first.Week)

	// Friday the 14th reviews on Monday the 17th in week three.
	last := reviews[5]
	assert.Equal(t, lessons[5].LessonID, last.LessonID)
	assert.Equal(t, 17, last.Date.Day())
	assert.Equal(t, time.Monday, last.Day)
	assert.Equal(t, 3, last.Week)
	assert.Equal(t, 18, last.Start.Hour())
}

func TestScheduleReviews_HalfLessonLength(t *testing.T) {
	avail := mustAvailability(t, pattern(30, 90, 1, time.Monday, time.Tuesday))
	lessons := []domain.ScheduledSession{lessonOn(monday, "l1", 18, 45)}

	reviews := ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: []int{1}})
	require.Len(t, reviews, 1)
	assert.Equal(t, 23, reviews[0].DurationMin)
	assert.Equal(t, reviews[0].Start.Add(23*time.Minute), reviews[0].End)
}

func TestScheduleReviews_SkipsBusyDays(t *testing.T) {
	avail := mustAvailability(t, pattern(60, 60, 1, time.Monday, time.Tuesday))
	nextMonday := domain.AddDays(monday, 7)
	lessons := []domain.ScheduledSession{
		lessonOn(monday, "l1", 18, 60),
		lessonOn(nextMonday, "l2", 18, 60),
		lessonOn(nextMonday, "l3", 19, 60),
	}

	reviews := ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: []int{7}})
	require.NotEmpty(t, reviews)
	assert.Equal(t, "l1", reviews[0].LessonID)
	assert.Equal(t, time.Tuesday, reviews[0].Day, "next Monday already holds two lessons")
	assert.Equal(t, 11, reviews[0].Date.Day())

	reviews = ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: []int{7}, MaxLessonsPerDay: 3})
	assert.Equal(t, time.Monday, reviews[0].Day)
	assert.Equal(t, 10, reviews[0].Date.Day())
}

func TestScheduleReviews_DropsOutsideLookaheadOrEnd(t *testing.T) {
	avail := mustAvailability(t, pattern(60, 60, 1, time.Monday))
	lessons := []domain.ScheduledSession{lessonOn(monday, "l1", 18, 60)}

	reviews := ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: []int{1}, LookaheadDays: 3})
	assert.Empty(t, reviews, "no Monday within three days of Tuesday")

	reviews = ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: []int{1}})
	require.Len(t, reviews, 1)
	assert.Equal(t, 10, reviews[0].Date.Day())

	end := domain.AddDays(monday, 6)
	reviews = ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: []int{1}, End: &end})
	assert.Empty(t, reviews)
}

func TestScheduleReviews_NeverOverlapsOnADay(t *testing.T) {
	avail := mustAvailability(t, pattern(60, 60, 1, time.Monday, time.Wednesday, time.Friday))
	lessons := Distribute(courseUnits("c1", 2, 3, 60), avail, DistributeOptions{Start: monday}).Sessions
	reviews := ScheduleReviews(lessons, avail, ReviewOptions{Start: monday, Intervals: ReviewIntervals(domain.FocusRetention)})
	require.Len(t, reviews, 30)

	byDay := map[string][]domain.ScheduledSession{}
	for _, s := range append(append([]domain.ScheduledSession{}, lessons...), reviews...) {
		byDay[dayKey(s.Date)] = append(byDay[dayKey(s.Date)], s)
	}
	for day, sessions := range byDay {
		sort.Slice(sessions, func(i, j int) bool { return sessions[i].Start.Before(sessions[j].Start) })
		for i := 1; i < len(sessions); i++ {
			assert.False(t, sessions[i].Start.Before(sessions[i-1].End), "overlap on %s", day)
		}
	}
}

func TestScheduleReviews_IgnoresReviewInputsAndIsDeterministic(t *testing.T) {
	avail := mustAvailability(t, pattern(60, 60, 1, time.Monday, time.Wednesday))
	review := lessonOn(monday, "old", 19, 30)
	review.IsReview = true
	lessons := []domain.ScheduledSession{lessonOn(monday, "l1", 18, 60), review}

	opts := ReviewOptions{Start: monday, Intervals: []int{1, 3}}
	first := ScheduleReviews(lessons, avail, opts)
	second := ScheduleReviews(lessons, avail, opts)
	assert.Equal(t, first, second)
	for _, r := range first {
		assert.Equal(t, "l1", r.LessonID)
	}
}

func TestWithReviews_KeepsLessonCounts(t *testing.T) {
	avail := mustAvailability(t, pattern(60, 60, 1, time.Monday, time.Wednesday, time.Friday))
	res := Distribute(courseUnits("c1", 1, 3, 45), avail, DistributeOptions{Start: monday})
	reviews := ScheduleReviews(res.Sessions, avail, ReviewOptions{Start: monday, Intervals: []int{1}})

	merged := res.WithReviews(reviews)
	assert.Equal(t, res.Requested, merged.Requested)
	assert.Equal(t, res.Placed, merged.Placed)
	assert.True(t, merged.Complete())
	require.Len(t, merged.Sessions, len(res.Sessions)+len(reviews))
	for i := 1; i < len(merged.Sessions); i++ {
		assert.False(t, merged.Sessions[i].Start.Before(merged.Sessions[i-1].Start))
	}
	assert.Len(t, res.Sessions, 3, "input result is not modified")
	assert.Equal(t, res, res.WithReviews(nil))
}
