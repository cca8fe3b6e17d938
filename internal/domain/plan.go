package domain

import "time"

// ValidationIssue is a single finding reported by validation.
type ValidationIssue struct {
	Field    string
	Message  string
	Severity Severity
}

// PlanPreview is the derived aggregate shown before a plan is created.
// It is always recomputed from the session list.
type PlanPreview struct {
	Name             string
	StartDate        time.Time
	TotalSessions    int
	TotalStudyHours  float64
	CompletionDate   *time.Time
	Sessions         []ScheduledSession
	SessionsByWeek   Groups[int, ScheduledSession]
	SessionsByCourse Groups[string, ScheduledSession]
	UnitsRequested   int
	UnitsPlaced      int
	ReviewSessions   int
}

// Scores are the heuristic quality scores of a generated plan (0-100).
type Scores struct {
	Retention  int `json:"retention_score"`
	Completion int `json:"completion_score"`
	Balance    int `json:"balance_score"`
}

// AIMetadata is stored alongside AI-generated plans.
type AIMetadata struct {
	AlgorithmVersion string    `json:"algorithm_version"`
	GeneratedAt      time.Time `json:"generation_timestamp"`
	Scores           Scores    `json:"scores"`
	Techniques       []string  `json:"techniques_applied"`
	Reasoning        string    `json:"reasoning"`
}

// StudyPlan is the persisted plan row.
type StudyPlan struct {
	ID           string
	OwnerID      string
	Name         string
	Mode         GenerationMode
	SessionType  SessionType
	StartDate    time.Time
	EndDate      *time.Time
	ScheduleMeta string
	AIMeta       *AIMetadata
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
