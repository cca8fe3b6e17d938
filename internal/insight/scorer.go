package insight

import (
	"math"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

const (
	baseScore = 50.0
	maxScore  = 100.0
)

type factor func(Strategy) float64

var retentionFactors = []factor{
	scoreSpacedRepetition,
	scoreInterleaving,
}

var completionFactors = []factor{
	scorePace,
	scoreTargetDate,
}

// Score computes the heuristic plan scores for a strategy.
func Score(s Strategy) domain.Scores {
	retention := sum(s, retentionFactors)
	completion := sum(s, completionFactors)
	return domain.Scores{
		Retention:  int(math.Round(retention)),
		Completion: int(math.Round(completion)),
		Balance:    int(math.Round((retention + completion) / 2)),
	}
}

func sum(s Strategy, factors []factor) float64 {
	score := baseScore
	for _, f := range factors {
		score += f(s)
	}
	return math.Min(maxScore, score)
}

func scoreSpacedRepetition(s Strategy) float64 {
	if s.Review == domain.ReviewSpacedRepetition {
		return 30
	}
	return 0
}

func scoreInterleaving(s Strategy) float64 {
	switch s.Ordering {
	case domain.OrderInterleaved, domain.OrderAIOptimized:
		return 20
	}
	return 0
}

func scorePace(s Strategy) float64 {
	switch s.Pace {
	case domain.PaceIntensive:
		return 30
	case domain.PaceModerate:
		return 15
	}
	return 0
}

func scoreTargetDate(s Strategy) float64 {
	if s.HasTargetDate {
		return 20
	}
	return 0
}
