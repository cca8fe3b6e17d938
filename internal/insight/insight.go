// Package insight derives descriptive scores, insights and reasoning for
// generated plans. Nothing here alters the session list.
package insight

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// AlgorithmVersion tags stored metadata so older plans can be told apart.
const AlgorithmVersion = "1.0.0"

// Technique names recorded on generated plans.
const (
	TechniqueSpacedRepetition     = "spaced_repetition"
	TechniqueInterleaving         = "interleaving"
	TechniquePomodoro             = "pomodoro"
	TechniqueLoadBalancing        = "load_balancing"
	TechniqueComplexityAdaptation = "complexity_adaptation"
)

// Strategy is the immutable pacing choice a plan was generated with.
type Strategy struct {
	Goal          string
	Pace          domain.LearningPace
	Priority      domain.PriorityFocus
	Review        domain.ReviewStrategy
	Ordering      domain.ContentOrdering
	HasTargetDate bool
	Pomodoro      bool
}

// Kind classifies an insight for display.
type Kind string

const (
	KindTip  Kind = "tip"
	KindInfo Kind = "info"
)

// Insight is one human-readable observation about a plan.
type Insight struct {
	Kind     Kind   `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Insight thresholds.
const (
	retentionInsightMin  = 80
	completionInsightMin = 80
	balanceInsightMin    = 70
	sparseWeekSessions   = 3.0
)

// Insights returns the fixed insight catalog entries that apply to the
// given scores and session spread.
func Insights(scores domain.Scores, totalSessions, enabledDays int) []Insight {
	var out []Insight
	if scores.Retention >= retentionInsightMin {
		out = append(out, Insight{Kind: KindTip, Category: "retention", Message: "Your plan is tuned for long-term retention"})
	}
	if scores.Completion >= completionInsightMin {
		out = append(out, Insight{Kind: KindTip, Category: "completion", Message: "You will work through your courses efficiently"})
	}
	if scores.Balance >= balanceInsightMin {
		out = append(out, Insight{Kind: KindInfo, Category: "balance", Message: "Good balance between speed and retention"})
	}
	if avg, ok := AvgSessionsPerWeek(totalSessions, enabledDays); ok && avg < sparseWeekSessions {
		out = append(out, Insight{Kind: KindTip, Category: "scheduling", Message: "Consider studying more days per week to progress faster"})
	}
	return out
}

// AvgSessionsPerWeek estimates weekly load as total / ceil(total / days).
// ok is false when there is nothing to average.
func AvgSessionsPerWeek(totalSessions, enabledDays int) (float64, bool) {
	if totalSessions <= 0 || enabledDays <= 0 {
		return 0, false
	}
	weeks := math.Ceil(float64(totalSessions) / float64(enabledDays))
	return float64(totalSessions) / weeks, true
}

// SchedulesReviews reports whether the strategy adds spaced-repetition
// review sessions after the lessons.
func (s Strategy) SchedulesReviews() bool {
	return s.Review == domain.ReviewSpacedRepetition || s.Review == domain.ReviewMixed
}

// Techniques lists the learning techniques a strategy applies.
func Techniques(s Strategy) []string {
	var out []string
	if s.Review == domain.ReviewSpacedRepetition {
		out = append(out, TechniqueSpacedRepetition)
	}
	if s.Ordering == domain.OrderInterleaved {
		out = append(out, TechniqueInterleaving)
	}
	if s.Pomodoro {
		out = append(out, TechniquePomodoro)
	}
	return append(out, TechniqueLoadBalancing, TechniqueComplexityAdaptation)
}

// Reasoning summarizes why the plan looks the way it does.
func Reasoning(s Strategy, totalSessions int) string {
	parts := []string{
		fmt.Sprintf("Plan generated for goal: %s", domain.CoalesceStr(s.Goal, "general learning")),
		fmt.Sprintf("%s pace with %d sessions", domain.CoalesceStr(string(s.Pace), string(domain.PaceModerate)), totalSessions),
	}
	if s.Review == domain.ReviewSpacedRepetition {
		parts = append(parts, "Includes spaced repetition for retention")
	}
	if s.Ordering == domain.OrderInterleaved {
		parts = append(parts, "Content is interleaved across courses")
	}
	return strings.Join(parts, ". ")
}

// BuildMetadata assembles the stored metadata of a generated plan.
func BuildMetadata(s Strategy, totalSessions int, generatedAt time.Time) domain.AIMetadata {
	return domain.AIMetadata{
		AlgorithmVersion: AlgorithmVersion,
		GeneratedAt:      generatedAt.UTC(),
		Scores:           Score(s),
		Techniques:       Techniques(s),
		Reasoning:        Reasoning(s, totalSessions),
	}
}

// sessionsPerWeek is the weekly session target for each pace.
var sessionsPerWeek = map[domain.LearningPace]int{
	domain.PaceRelaxed:   3,
	domain.PaceModerate:  4,
	domain.PaceIntensive: 6,
}

// SessionsPerWeek returns the weekly session target for pace, never more
// than the number of enabled study days. Unknown paces use moderate.
func SessionsPerWeek(pace domain.LearningPace, enabledDays int) int {
	n, ok := sessionsPerWeek[pace]
	if !ok {
		n = sessionsPerWeek[domain.PaceModerate]
	}
	if enabledDays > 0 {
		n = min(n, enabledDays)
	}
	return n
}
