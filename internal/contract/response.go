package contract

import (
	"github.com/alexanderramin/studyplanner/internal/adherence"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/insight"
)

type BreakView struct {
	AfterMin    int    `json:"after_minutes"`
	DurationMin int    `json:"duration_minutes"`
	Type        string `json:"type"`
}

type FitView struct {
	Fits        bool `json:"fits"`
	OverflowMin int  `json:"overflow_minutes,omitempty"`
}

type SessionView struct {
	Day         string      `json:"day"`
	DayIndex    int         `json:"day_index"`
	Date        string      `json:"date"`
	Week        int         `json:"week"`
	Slot        string      `json:"time_slot"`
	StartTime   string      `json:"start_time"`
	EndTime     string      `json:"end_time"`
	CourseID    string      `json:"course_id"`
	CourseTitle string      `json:"course_title"`
	ModuleID    string      `json:"module_id,omitempty"`
	LessonID    string      `json:"lesson_id"`
	LessonTitle string      `json:"lesson_title"`
	DurationMin int         `json:"duration_minutes"`
	Breaks      []BreakView `json:"breaks,omitempty"`
	Fit         *FitView    `json:"fit,omitempty"`
	IsReview    bool        `json:"is_review,omitempty"`
}

type WeekGroup struct {
	Week     int           `json:"week"`
	Sessions []SessionView `json:"sessions"`
}

type CourseGroup struct {
	CourseID    string        `json:"course_id"`
	CourseTitle string        `json:"course_title"`
	Sessions    []SessionView `json:"sessions"`
}

type PreviewView struct {
	PlanName         string        `json:"plan_name"`
	StartDate        string        `json:"start_date"`
	TotalSessions    int           `json:"total_sessions"`
	TotalStudyHours  float64       `json:"total_study_hours"`
	CompletionDate   string        `json:"estimated_completion_date,omitempty"`
	Sessions         []SessionView `json:"sessions"`
	SessionsByWeek   []WeekGroup   `json:"sessions_by_week"`
	SessionsByCourse []CourseGroup `json:"sessions_by_course"`
	UnitsRequested   int           `json:"lessons_requested"`
	UnitsPlaced      int           `json:"lessons_placed"`
	ReviewSessions   int           `json:"review_sessions,omitempty"`
}

// LessonFitView is one row of the per-lesson fit report.
type LessonFitView struct {
	LessonID    string `json:"lesson_id"`
	LessonTitle string `json:"lesson_title"`
	CourseID    string `json:"course_id"`
	RequiredMin int    `json:"required_minutes"`
	SessionMin  int    `json:"session_minutes"`
	Fits        bool   `json:"fits"`
	OverflowMin int    `json:"overflow_minutes,omitempty"`
}

type ValidateManualResponse struct {
	IsValid              bool            `json:"is_valid"`
	Errors               []Issue         `json:"errors"`
	Warnings             []Issue         `json:"warnings"`
	LessonFits           []LessonFitView `json:"lesson_fits"`
	SuggestedDurationMin *int            `json:"suggested_duration_minutes,omitempty"`
}

// PreviewResponse is returned by both preview operations. Scores, insights
// and metadata are only set for generated plans; Validation only for manual
// ones.
type PreviewResponse struct {
	Success    bool                    `json:"success"`
	Errors     []Issue                 `json:"errors"`
	Warnings   []Issue                 `json:"warnings"`
	Preview    *PreviewView            `json:"preview,omitempty"`
	Breaks     []BreakView             `json:"break_policy,omitempty"`
	Scores     *domain.Scores          `json:"scores,omitempty"`
	Insights   []insight.Insight       `json:"insights,omitempty"`
	Metadata   *domain.AIMetadata      `json:"ai_metadata,omitempty"`
	Validation *ValidateManualResponse `json:"validation,omitempty"`
}

// BatchError reports one failed session batch.
type BatchError struct {
	Batch   int    `json:"batch"`
	Offset  int    `json:"offset"`
	Size    int    `json:"size"`
	Message string `json:"message"`
}

type CreatePlanResponse struct {
	Success           bool         `json:"success"`
	PlanID            string       `json:"plan_id,omitempty"`
	PlanName          string       `json:"plan_name,omitempty"`
	SessionsRequested int          `json:"sessions_requested"`
	SessionsCreated   int          `json:"sessions_created"`
	Errors            []Issue      `json:"errors"`
	Warnings          []Issue      `json:"warnings"`
	BatchErrors       []BatchError `json:"batch_errors,omitempty"`
}

// Partial reports whether some sessions were not persisted.
func (r CreatePlanResponse) Partial() bool {
	return r.SessionsCreated < r.SessionsRequested
}

type AdherenceResponse struct {
	OwnerID string                  `json:"owner_id,omitempty"`
	PlanID  string                  `json:"plan_id,omitempty"`
	Overall adherence.Record        `json:"overall"`
	Plans   []adherence.PlanRecord  `json:"plans,omitempty"`
	Streak  *adherence.StreakRecord `json:"streak,omitempty"`
}
