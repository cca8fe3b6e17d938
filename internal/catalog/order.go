package catalog

import (
	"sort"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// optimizeChunk is the window size used by ai_optimized ordering.
const optimizeChunk = 5

// Order applies a content ordering strategy. Every strategy returns a
// permutation of units; the input slice is not modified. Unknown orderings
// behave like sequential.
func Order(units []domain.SchedulableUnit, ordering domain.ContentOrdering) []domain.SchedulableUnit {
	out := make([]domain.SchedulableUnit, len(units))
	copy(out, units)

	switch ordering {
	case domain.OrderInterleaved:
		return interleaveByCourse(out)
	case domain.OrderDifficultyBased:
		sortByComplexity(out)
		return out
	case domain.OrderAIOptimized:
		out = interleaveByCourse(out)
		for i := 0; i < len(out); i += optimizeChunk {
			sortByComplexity(out[i:min(i+optimizeChunk, len(out))])
		}
		return out
	default:
		return out
	}
}

// interleaveByCourse takes one unit from each course in turn, visiting
// courses in first-seen order.
func interleaveByCourse(units []domain.SchedulableUnit) []domain.SchedulableUnit {
	byCourse := domain.GroupBy(units, func(u domain.SchedulableUnit) string { return u.CourseID })
	keys := byCourse.Keys()
	cursor := make([]int, len(keys))

	out := make([]domain.SchedulableUnit, 0, len(units))
	for len(out) < len(units) {
		for i, k := range keys {
			group := byCourse.Get(k)
			if cursor[i] < len(group) {
				out = append(out, group[cursor[i]])
				cursor[i]++
			}
		}
	}
	return out
}

func sortByComplexity(units []domain.SchedulableUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].Complexity.Multiplier < units[j].Complexity.Multiplier
	})
}
