package insight

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		s    Strategy
		want domain.Scores
	}{
		{"baseline", Strategy{Pace: domain.PaceRelaxed, Ordering: domain.OrderSequential}, domain.Scores{Retention: 50, Completion: 50, Balance: 50}},
		{"everything on", Strategy{
			Pace: domain.PaceIntensive, Review: domain.ReviewSpacedRepetition,
			Ordering: domain.OrderAIOptimized, HasTargetDate: true,
		}, domain.Scores{Retention: 100, Completion: 100, Balance: 100}},
		{"moderate interleaved", Strategy{Pace: domain.PaceModerate, Ordering: domain.OrderInterleaved}, domain.Scores{Retention: 70, Completion: 65, Balance: 68}},
		{"spaced only", Strategy{Review: domain.ReviewSpacedRepetition}, domain.Scores{Retention: 80, Completion: 50, Balance: 65}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.s))
		})
	}
}

func TestScore_Capped(t *testing.T) {
	s := Score(Strategy{Pace: domain.PaceIntensive, HasTargetDate: true})
	assert.Equal(t, 100, s.Completion)
}

func TestInsights_Thresholds(t *testing.T) {
	got := Insights(domain.Scores{Retention: 80, Completion: 79, Balance: 70}, 12, 3)

	var cats []string
	for _, in := range got {
		cats = append(cats, in.Category)
	}
	assert.Equal(t, []string{"retention", "balance"}, cats)
}

func TestInsights_SparseWeeks(t *testing.T) {
	// 5 sessions over 2 days: ceil(5/2)=3 weeks, 5/3 < 3.
	got := Insights(domain.Scores{}, 5, 2)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "scheduling", got[0].Category)
	}

	assert.Empty(t, Insights(domain.Scores{}, 12, 4), "12/ceil(12/4) = 4 per week")
	assert.Empty(t, Insights(domain.Scores{}, 0, 4), "no sessions, nothing to say")
}

func TestAvgSessionsPerWeek(t *testing.T) {
	avg, ok := AvgSessionsPerWeek(7, 3)
	assert.True(t, ok)
	assert.InDelta(t, 7.0/3.0, avg, 1e-9)

	_, ok = AvgSessionsPerWeek(5, 0)
	assert.False(t, ok)
}

func TestTechniques(t *testing.T) {
	assert.Equal(t,
		[]string{TechniqueSpacedRepetition, TechniqueInterleaving, TechniquePomodoro, TechniqueLoadBalancing, TechniqueComplexityAdaptation},
		Techniques(Strategy{Review: domain.ReviewSpacedRepetition, Ordering: domain.OrderInterleaved, Pomodoro: true}))

	assert.Equal(t,
		[]string{TechniqueLoadBalancing, TechniqueComplexityAdaptation},
		Techniques(Strategy{Ordering: domain.OrderAIOptimized}))
}

func TestBuildMetadata(t *testing.T) {
	at := time.Date(2025, 3, 3, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	s := Strategy{Goal: "Learn Go", Pace: domain.PaceModerate, Review: domain.ReviewSpacedRepetition}

	meta := BuildMetadata(s, 10, at)

	assert.Equal(t, AlgorithmVersion, meta.AlgorithmVersion)
	assert.Equal(t, time.UTC, meta.GeneratedAt.Location())
	assert.Equal(t, Score(s), meta.Scores)
	assert.Contains(t, meta.Reasoning, "Learn Go")
	assert.Contains(t, meta.Reasoning, "10 sessions")
	assert.Contains(t, meta.Reasoning, "spaced repetition")
}

func TestSessionsPerWeek(t *testing.T) {
	assert.Equal(t, 3, SessionsPerWeek(domain.PaceRelaxed, 7))
	assert.Equal(t, 4, SessionsPerWeek(domain.PaceModerate, 5))
	assert.Equal(t, 6, SessionsPerWeek(domain.PaceIntensive, 7))
	assert.Equal(t, 2, SessionsPerWeek(domain.PaceIntensive, 2))
	assert.Equal(t, 4, SessionsPerWeek("unknown", 0))
}
