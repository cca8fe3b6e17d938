package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultFetchConcurrency bounds parallel course fetches when unset.
const DefaultFetchConcurrency = 4

// NormalizeOptions tunes a single normalization pass.
type NormalizeOptions struct {
	OwnerID string
	// ExcludeStarted drops lessons the owner has already made progress on.
	ExcludeStarted bool
}

// NormalizeResult is the flattened unit list plus content gaps found while
// building it.
type NormalizeResult struct {
	Units []domain.SchedulableUnit
	// MissingCourses lists selected course IDs the source did not know.
	MissingCourses []string
	// EmptyCourses lists courses that contributed no lessons.
	EmptyCourses []string
	// ExcludedLessons counts lessons skipped because they were started.
	ExcludedLessons int
}

// Normalizer turns course selections into an ordered list of schedulable
// units.
type Normalizer struct {
	courses     CourseSource
	progress    ProgressSource
	concurrency int
}

// NewNormalizer creates a Normalizer. progress may be nil, which disables
// started-lesson exclusion.
func NewNormalizer(courses CourseSource, progress ProgressSource, concurrency int) *Normalizer {
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}
	return &Normalizer{courses: courses, progress: progress, concurrency: concurrency}
}

// Normalize fetches every selected course in parallel and folds the results
// in selection order once all fetches have returned. Course order follows
// the selection, then module order index, then lesson order index.
func (n *Normalizer) Normalize(ctx context.Context, selections []Selection, opts NormalizeOptions) (NormalizeResult, error) {
	var res NormalizeResult
	if len(selections) == 0 {
		return res, nil
	}

	lookups := make([]CourseLookup, len(selections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.concurrency)
	for i, sel := range selections {
		i, sel := i, sel
		g.Go(func() error {
			lk, err := n.courses.LookupCourse(gctx, sel.CourseID)
			if err != nil {
				return fmt.Errorf("fetching course %s: %w", sel.CourseID, err)
			}
			lookups[i] = lk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return NormalizeResult{}, err
	}

	var started map[string]bool
	if opts.ExcludeStarted && n.progress != nil && opts.OwnerID != "" {
		ids := make([]string, 0, len(selections))
		for _, sel := range selections {
			ids = append(ids, sel.CourseID)
		}
		var err error
		started, err = n.progress.StartedLessons(ctx, opts.OwnerID, ids)
		if err != nil {
			return NormalizeResult{}, fmt.Errorf("loading lesson progress: %w", err)
		}
	}

	seen := make(map[string]bool)
	for i, sel := range selections {
		if seen[sel.CourseID] {
			continue
		}
		seen[sel.CourseID] = true

		lk := lookups[i]
		if !lk.Found {
			res.MissingCourses = append(res.MissingCourses, sel.CourseID)
			continue
		}
		units, excluded := flattenCourse(lk.Content, sel, started)
		res.ExcludedLessons += excluded
		if len(units) == 0 && excluded == 0 {
			res.EmptyCourses = append(res.EmptyCourses, sel.CourseID)
		}
		res.Units = append(res.Units, units...)
	}
	return res, nil
}

func flattenCourse(c CourseContent, sel Selection, started map[string]bool) ([]domain.SchedulableUnit, int) {
	cx := domain.NewComplexity(
		domain.CourseLevel(domain.CoalesceStr(string(sel.Level), string(c.Level))),
		domain.CourseCategory(domain.CoalesceStr(string(sel.Category), string(c.Category))),
	)
	courseID := domain.CoalesceStr(c.ID, sel.CourseID)

	modules := make([]ModuleContent, len(c.Modules))
	copy(modules, c.Modules)
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].OrderIndex < modules[j].OrderIndex
	})

	var units []domain.SchedulableUnit
	excluded := 0
	for _, m := range modules {
		lessons := make([]LessonContent, len(m.Lessons))
		copy(lessons, m.Lessons)
		sort.SliceStable(lessons, func(i, j int) bool {
			return lessons[i].OrderIndex < lessons[j].OrderIndex
		})
		for _, l := range lessons {
			if started[l.ID] {
				excluded++
				continue
			}
			units = append(units, domain.SchedulableUnit{
				LessonID:     l.ID,
				LessonTitle:  l.Title,
				CourseID:     courseID,
				CourseTitle:  c.Title,
				ModuleID:     m.ID,
				ModuleIndex:  m.OrderIndex,
				LessonIndex:  l.OrderIndex,
				EstimatedMin: domain.PositiveIntOr(domain.DefaultLessonMin, l.EstimatedMin),
				Complexity:   cx,
			})
		}
	}
	return units, excluded
}
