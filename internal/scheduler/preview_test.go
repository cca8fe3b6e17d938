package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPreview_Empty(t *testing.T) {
	p := BuildPreview("Empty", monday, DistributeResult{Requested: 3})

	assert.Equal(t, 0, p.TotalSessions)
	assert.Nil(t, p.CompletionDate)
	assert.Equal(t, 0.0, p.TotalStudyHours)
	assert.Equal(t, 0, p.SessionsByWeek.Len())
	assert.Equal(t, 3, p.UnitsRequested)
}

func TestGroupByCourse_FirstSeenOrder(t *testing.T) {
	units := interleave(courseUnits("b", 1, 2, 30), courseUnits("a", 1, 2, 30))
	avail := mustAvailability(t, pattern(30, 30, 4, time.Monday))

	res := Distribute(units, avail, DistributeOptions{Start: monday})
	groups := GroupByCourse(res.Sessions)

	assert.Equal(t, []string{"b", "a"}, groups.Keys())
	assert.Len(t, groups.Get("a"), 2)
}

func TestSortByDate_DoesNotMutateInput(t *testing.T) {
	s := []domain.ScheduledSession{
		{LessonID: "late", Date: monday.AddDate(0, 0, 2)},
		{LessonID: "early", Date: monday},
	}

	sorted := SortByDate(s)

	assert.Equal(t, "early", sorted[0].LessonID)
	assert.Equal(t, "late", s[0].LessonID)
}

// Randomized invariants over many generated inputs.
func TestDistribute_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 150; trial++ {
		var units []domain.SchedulableUnit
		courses := rng.Intn(3) + 1
		for c := 0; c < courses; c++ {
			units = append(units, courseUnits(string(rune('a'+c)), rng.Intn(3)+1, rng.Intn(4)+1, rng.Intn(150)+5)...)
		}

		var days []time.Weekday
		for d := time.Sunday; d <= time.Saturday; d++ {
			if rng.Intn(2) == 0 {
				days = append(days, d)
			}
		}
		minMin := rng.Intn(40) + 15
		maxMin := minMin + rng.Intn(90)
		p := pattern(minMin, maxMin, rng.Intn(3)+1, days...)
		avail := mustAvailability(t, p)
		weeklyCap := rng.Intn(5)
		start := monday.AddDate(0, 0, rng.Intn(7))

		res := Distribute(units, avail, DistributeOptions{Start: start, HorizonDays: 120, WeeklyCap: weeklyCap})

		require.LessOrEqual(t, res.Placed, res.Requested)
		require.Len(t, res.Sessions, res.Placed)
		if len(days) == 0 {
			assert.Empty(t, res.Sessions, "trial %d: no enabled day", trial)
			continue
		}

		perDay := map[time.Time]int{}
		for i, s := range res.Sessions {
			// Each unit exactly once, in input order.
			assert.Equal(t, units[i].LessonID, s.LessonID, "trial %d", trial)
			assert.True(t, avail.Enabled(s.Day), "trial %d: session on disabled day", trial)
			assert.GreaterOrEqual(t, s.DurationMin, minMin)
			assert.LessOrEqual(t, s.DurationMin, maxMin)
			assert.Equal(t, s.Start.Add(time.Duration(s.DurationMin)*time.Minute), s.End)
			assert.False(t, s.Date.Before(start))
			if i > 0 {
				assert.False(t, s.Date.Before(res.Sessions[i-1].Date), "trial %d: dates non-decreasing", trial)
			}
			perDay[s.Date]++
		}
		for d, n := range perDay {
			assert.LessOrEqual(t, n, avail.Capacity(d.Weekday()), "trial %d: capacity exceeded on %s", trial, d)
		}

		// Flattening the weekly groups and re-sorting by date restores the list.
		weeks := GroupByWeek(res.Sessions, start)
		assert.Equal(t, res.Sessions, SortByDate(weeks.Flatten()), "trial %d", trial)
		keys := weeks.Keys()
		for i := 1; i < len(keys); i++ {
			assert.Greater(t, keys[i], keys[i-1])
		}
	}
}

func interleave(a, b []domain.SchedulableUnit) []domain.SchedulableUnit {
	var out []domain.SchedulableUnit
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}
