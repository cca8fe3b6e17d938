package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	courses  map[string]CourseContent
	fail     map[string]error
	delay    map[string]time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeSource) LookupCourse(ctx context.Context, id string) (CourseLookup, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if cur <= p || f.peak.CompareAndSwap(p, cur) {
			break
		}
	}
	if d := f.delay[id]; d > 0 {
		time.Sleep(d)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[id]; err != nil {
		return CourseLookup{}, err
	}
	c, ok := f.courses[id]
	return CourseLookup{Content: c, Found: ok}, nil
}

type fakeProgress map[string]bool

func (p fakeProgress) StartedLessons(context.Context, string, []string) (map[string]bool, error) {
	return p, nil
}

func intPtr(v int) *int { return &v }

func course(id string, modules, lessons int) CourseContent {
	c := CourseContent{ID: id, Title: "Course " + id, Level: domain.LevelIntermediate, Category: domain.CategoryTechnical}
	// Modules and lessons are stored in reverse to check sorting.
	for m := modules; m >= 1; m-- {
		mc := ModuleContent{ID: fmt.Sprintf("%s-m%d", id, m), OrderIndex: m}
		for l := lessons; l >= 1; l-- {
			mc.Lessons = append(mc.Lessons, LessonContent{
				ID:           fmt.Sprintf("%s-m%d-l%d", id, m, l),
				Title:        fmt.Sprintf("Lesson %d.%d", m, l),
				OrderIndex:   l,
				EstimatedMin: intPtr(30 + l),
			})
		}
		c.Modules = append(c.Modules, mc)
	}
	return c
}

func lessonIDs(units []domain.SchedulableUnit) []string {
	ids := make([]string, len(units))
	for i, u := range units {
		ids[i] = u.LessonID
	}
	return ids
}

func TestNormalize_OrdersByModuleThenLesson(t *testing.T) {
	src := &fakeSource{courses: map[string]CourseContent{"c1": course("c1", 2, 2)}}
	n := NewNormalizer(src, nil, 2)

	res, err := n.Normalize(context.Background(), []Selection{{CourseID: "c1"}}, NormalizeOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"c1-m1-l1", "c1-m1-l2", "c1-m2-l1", "c1-m2-l2"}, lessonIDs(res.Units))
	assert.Equal(t, 31, res.Units[0].EstimatedMin)
	assert.Equal(t, 1.15, res.Units[0].Complexity.Multiplier)
}

func TestNormalize_SelectionOrderSurvivesParallelFetch(t *testing.T) {
	src := &fakeSource{
		courses: map[string]CourseContent{"a": course("a", 1, 1), "b": course("b", 1, 1), "c": course("c", 1, 1)},
		delay:   map[string]time.Duration{"a": 30 * time.Millisecond, "b": 10 * time.Millisecond},
	}
	n := NewNormalizer(src, nil, 3)

	res, err := n.Normalize(context.Background(), []Selection{{CourseID: "a"}, {CourseID: "b"}, {CourseID: "c"}}, NormalizeOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a-m1-l1", "b-m1-l1", "c-m1-l1"}, lessonIDs(res.Units))
	assert.LessOrEqual(t, src.peak.Load(), int32(3))
}

func TestNormalize_ConcurrencyBounded(t *testing.T) {
	src := &fakeSource{courses: map[string]CourseContent{}, delay: map[string]time.Duration{}}
	var sels []Selection
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("c%d", i)
		src.courses[id] = course(id, 1, 1)
		src.delay[id] = 5 * time.Millisecond
		sels = append(sels, Selection{CourseID: id})
	}

	res, err := NewNormalizer(src, nil, 2).Normalize(context.Background(), sels, NormalizeOptions{})

	require.NoError(t, err)
	assert.Len(t, res.Units, 8)
	assert.LessOrEqual(t, src.peak.Load(), int32(2))
}

func TestNormalize_DefaultDurationAndHints(t *testing.T) {
	c := CourseContent{ID: "c1", Title: "Design", Modules: []ModuleContent{{
		ID: "m1", Lessons: []LessonContent{{ID: "l1"}, {ID: "l2", OrderIndex: 1, EstimatedMin: intPtr(0)}},
	}}}
	src := &fakeSource{courses: map[string]CourseContent{"c1": c}}

	res, err := NewNormalizer(src, nil, 1).Normalize(context.Background(),
		[]Selection{{CourseID: "c1", Level: domain.LevelAdvanced, Category: domain.CategoryTheoretical}}, NormalizeOptions{})

	require.NoError(t, err)
	require.Len(t, res.Units, 2)
	for _, u := range res.Units {
		assert.Equal(t, domain.DefaultLessonMin, u.EstimatedMin)
		assert.Equal(t, 1.44, u.Complexity.Multiplier)
	}
}

func TestNormalize_ContentGapsAreNotErrors(t *testing.T) {
	src := &fakeSource{courses: map[string]CourseContent{
		"empty": {ID: "empty", Title: "No lessons", Modules: []ModuleContent{{ID: "m1"}}},
		"full":  course("full", 1, 2),
	}}

	res, err := NewNormalizer(src, nil, 2).Normalize(context.Background(),
		[]Selection{{CourseID: "ghost"}, {CourseID: "empty"}, {CourseID: "full"}}, NormalizeOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, res.MissingCourses)
	assert.Equal(t, []string{"empty"}, res.EmptyCourses)
	assert.Len(t, res.Units, 2)
}

func TestNormalize_DuplicateSelectionCountedOnce(t *testing.T) {
	src := &fakeSource{courses: map[string]CourseContent{"c1": course("c1", 1, 2)}}

	res, err := NewNormalizer(src, nil, 2).Normalize(context.Background(),
		[]Selection{{CourseID: "c1"}, {CourseID: "c1"}}, NormalizeOptions{})

	require.NoError(t, err)
	assert.Len(t, res.Units, 2)
}

func TestNormalize_SourceFailure(t *testing.T) {
	boom := errors.New("connection refused")
	src := &fakeSource{
		courses: map[string]CourseContent{"c1": course("c1", 1, 1)},
		fail:    map[string]error{"c2": boom},
	}

	_, err := NewNormalizer(src, nil, 2).Normalize(context.Background(),
		[]Selection{{CourseID: "c1"}, {CourseID: "c2"}}, NormalizeOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "c2")
}

func TestNormalize_ExcludesStartedLessons(t *testing.T) {
	src := &fakeSource{courses: map[string]CourseContent{"c1": course("c1", 1, 3)}}
	progress := fakeProgress{"c1-m1-l2": true}

	res, err := NewNormalizer(src, progress, 1).Normalize(context.Background(),
		[]Selection{{CourseID: "c1"}}, NormalizeOptions{OwnerID: "u1", ExcludeStarted: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"c1-m1-l1", "c1-m1-l3"}, lessonIDs(res.Units))
	assert.Equal(t, 1, res.ExcludedLessons)
	assert.Empty(t, res.EmptyCourses)
}

func TestNormalize_NoSelections(t *testing.T) {
	res, err := NewNormalizer(&fakeSource{}, nil, 0).Normalize(context.Background(), nil, NormalizeOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Units)
}
