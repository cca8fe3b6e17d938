package contract

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the boundary encoding of calendar dates.
const DateLayout = "2006-01-02"

type Goals struct {
	PrimaryGoal          string `json:"primary_goal" yaml:"primary_goal"`
	LearningPace         string `json:"learning_pace" yaml:"learning_pace"`
	PriorityFocus        string `json:"priority_focus,omitempty" yaml:"priority_focus,omitempty"`
	TargetCompletionDate string `json:"target_completion_date,omitempty" yaml:"target_completion_date,omitempty"`
}

// Availability is the learner's declared weekly availability. Study days use
// 0=Sunday through 6=Saturday.
type Availability struct {
	StudyDays         []int            `json:"study_days" yaml:"study_days"`
	TimeSlots         map[int][]string `json:"time_slots,omitempty" yaml:"time_slots,omitempty"`
	PreferredSlots    []string         `json:"preferred_slots,omitempty" yaml:"preferred_slots,omitempty"`
	DailyMinutes      int              `json:"daily_minutes,omitempty" yaml:"daily_minutes,omitempty"`
	MaxSessionsPerDay int              `json:"max_sessions_per_day,omitempty" yaml:"max_sessions_per_day,omitempty"`
}

type Preferences struct {
	SessionType     string `json:"session_type" yaml:"session_type"`
	ReviewStrategy  string `json:"review_strategy,omitempty" yaml:"review_strategy,omitempty"`
	ContentOrdering string `json:"content_ordering,omitempty" yaml:"content_ordering,omitempty"`
	EnablePomodoro  bool   `json:"enable_pomodoro,omitempty" yaml:"enable_pomodoro,omitempty"`
	MinStudyMin     int    `json:"min_study_minutes,omitempty" yaml:"min_study_minutes,omitempty"`
	MaxStudyMin     int    `json:"max_study_minutes,omitempty" yaml:"max_study_minutes,omitempty"`
	MinRestMin      int    `json:"min_rest_minutes,omitempty" yaml:"min_rest_minutes,omitempty"`
}

// SelectedCourse is one chosen course with optional complexity hints.
type SelectedCourse struct {
	CourseID string `json:"course_id" yaml:"course_id"`
	Level    string `json:"level,omitempty" yaml:"level,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// GeneratePreviewRequest asks for a generated plan preview.
type GeneratePreviewRequest struct {
	StartDate      string           `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	Goals          Goals            `json:"goals" yaml:"goals"`
	Availability   Availability     `json:"availability" yaml:"availability"`
	Preferences    Preferences      `json:"preferences" yaml:"preferences"`
	Courses        []SelectedCourse `json:"selected_courses" yaml:"selected_courses"`
	ExcludeStarted bool             `json:"exclude_started,omitempty" yaml:"exclude_started,omitempty"`
	// OwnerID selects whose progress ExcludeStarted consults. Plan creation
	// overrides it with the creating owner.
	OwnerID string `json:"owner_id,omitempty" yaml:"owner_id,omitempty"`
}

// ScheduleDay configures one weekday of a manual schedule.
type ScheduleDay struct {
	Day         int      `json:"day" yaml:"day"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	TimeSlots   []string `json:"time_slots" yaml:"time_slots"`
	MaxSessions int      `json:"max_sessions,omitempty" yaml:"max_sessions,omitempty"`
}

type ScheduleConfig struct {
	Days               []ScheduleDay `json:"days" yaml:"days"`
	SessionDurationMin int           `json:"session_duration_minutes" yaml:"session_duration_minutes"`
	StartDate          string        `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate            string        `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	MinStudyMin        int           `json:"min_study_minutes,omitempty" yaml:"min_study_minutes,omitempty"`
	MinRestMin         int           `json:"min_rest_minutes,omitempty" yaml:"min_rest_minutes,omitempty"`
}

// ValidateManualRequest asks for validation of a manual configuration.
type ValidateManualRequest struct {
	Courses     []SelectedCourse `json:"selected_courses" yaml:"selected_courses"`
	SessionType string           `json:"session_type" yaml:"session_type"`
	Schedule    ScheduleConfig   `json:"schedule" yaml:"schedule"`
}

// ManualPlanRequest previews or creates a learner-configured plan.
type ManualPlanRequest struct {
	PlanName              string `json:"plan_name,omitempty" yaml:"plan_name,omitempty"`
	ValidateManualRequest `yaml:",inline"`
}

// SessionCompletion records the outcome of a finished session. CompletedAt
// backdates a completion logged after the fact; it defaults to now.
type SessionCompletion struct {
	SessionID         string     `json:"session_id" yaml:"session_id"`
	ActualDurationMin int        `json:"actual_duration_minutes,omitempty" yaml:"actual_duration_minutes,omitempty"`
	SelfEvaluation    int        `json:"self_evaluation,omitempty" yaml:"self_evaluation,omitempty"`
	Notes             string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

// ParseDate decodes a boundary date in loc. An empty string yields nil.
func ParseDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}

// FormatDate encodes a date for the boundary.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
