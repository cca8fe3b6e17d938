package domain

import "time"

// Break is one rest interval inside a study session.
type Break struct {
	AfterMin    int
	DurationMin int
	Type        BreakType
}

// LessonFit records how a lesson compares with the configured session length.
type LessonFit struct {
	Fits        bool
	OverflowMin int
}

// ScheduledSession is a single placement produced by the distribution engine.
// Values are never mutated after creation.
type ScheduledSession struct {
	Day         time.Weekday
	Date        time.Time
	Week        int
	Slot        TimeSlot
	CourseID    string
	CourseTitle string
	ModuleID    string
	LessonID    string
	LessonTitle string
	DurationMin int
	Start       time.Time
	End         time.Time
	Breaks      []Break
	Fit         *LessonFit
	// IsReview marks a spaced-repetition review of an earlier lesson.
	IsReview bool
}

// DayLabel returns the weekday label of the session.
func (s ScheduledSession) DayLabel() string {
	return WeekdayLabel(s.Day)
}

// PlanSession is the persisted form of a scheduled session.
type PlanSession struct {
	ID                string
	PlanID            string
	OwnerID           string
	LessonID          string
	CourseID          string
	ScheduledStart    time.Time
	ScheduledEnd      time.Time
	DurationMin       int
	Status            SessionStatus
	IsAIGenerated     bool
	IsReview          bool
	RescheduleCount   int
	CompletedAt       *time.Time
	ActualDurationMin *int
	SelfEvaluation    *int
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
