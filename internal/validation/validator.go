// Package validation checks manual plan configurations before they are
// previewed or persisted.
package validation

import (
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

// Limits applied to manual configurations.
const (
	MinSessionDurationMin = 15
	MaxRecommendedCourses = 5
	MinRecommendedDays    = 3
)

// Field names reported on issues.
const (
	FieldCourses  = "selected_courses"
	FieldDays     = "days"
	FieldDuration = scheduler.FieldSessionDuration
	FieldLessons  = "lesson_fit"
)

// ManualConfig is the learner-authored configuration under validation.
type ManualConfig struct {
	CourseIDs          []string
	SessionType        domain.SessionType
	SessionDurationMin int
	Pattern            domain.AvailabilityPattern
	// BoundaryIssues carries warnings raised while decoding the request,
	// such as unknown slot names.
	BoundaryIssues []domain.ValidationIssue
}

// LessonFit is the per-lesson comparison against the configured duration.
type LessonFit struct {
	LessonID    string
	LessonTitle string
	CourseID    string
	RequiredMin int
	SessionMin  int
	Fits        bool
	OverflowMin int
}

// Report is the outcome of validating a manual configuration.
type Report struct {
	Errors               []domain.ValidationIssue
	Warnings             []domain.ValidationIssue
	LessonFits           []LessonFit
	SuggestedDurationMin *int
}

// IsValid reports whether the configuration may be turned into a plan.
// Warnings never block creation.
func (r Report) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *Report) fail(field, msg string) {
	r.Errors = append(r.Errors, domain.ValidationIssue{Field: field, Message: msg, Severity: domain.SeverityError})
}

func (r *Report) warn(field, msg string) {
	r.Warnings = append(r.Warnings, domain.ValidationIssue{Field: field, Message: msg, Severity: domain.SeverityWarning})
}

// Validate runs structural and advisory checks over cfg. units is the
// normalized content of the selected courses and drives the per-lesson fit
// report.
func Validate(cfg ManualConfig, units []domain.SchedulableUnit) Report {
	var r Report

	courses := distinct(cfg.CourseIDs)
	switch {
	case courses == 0:
		r.fail(FieldCourses, "select at least one course")
	case courses > MaxRecommendedCourses:
		r.warn(FieldCourses, fmt.Sprintf("%d courses selected; more than %d at once tends to dilute focus", courses, MaxRecommendedCourses))
	}

	avail, blockIssues := scheduler.NewAvailability(cfg.Pattern)
	r.Warnings = append(r.Warnings, cfg.BoundaryIssues...)
	for _, issue := range blockIssues {
		if issue.Severity == domain.SeverityError {
			r.Errors = append(r.Errors, issue)
		} else {
			r.Warnings = append(r.Warnings, issue)
		}
	}
	days := avail.EnabledDayCount()
	switch {
	case days == 0:
		r.fail(FieldDays, "enable at least one study day with a time slot")
	case days < MinRecommendedDays:
		r.warn(FieldDays, fmt.Sprintf("only %d study day(s) enabled; %d or more keeps a steadier rhythm", days, MinRecommendedDays))
	}

	duration := cfg.SessionDurationMin
	if duration < MinSessionDurationMin {
		r.fail(FieldDuration, fmt.Sprintf("session duration must be at least %d minutes", MinSessionDurationMin))
	} else if rng := domain.RangeFor(cfg.SessionType); duration < rng.MinMin || duration > rng.MaxMin {
		r.warn(FieldDuration, fmt.Sprintf("%d minutes is outside the %s session range (%d-%d)", duration, rng.Type, rng.MinMin, rng.MaxMin))
	}

	largestOverflow := 0
	for _, u := range units {
		fit := LessonFit{
			LessonID:    u.LessonID,
			LessonTitle: u.LessonTitle,
			CourseID:    u.CourseID,
			RequiredMin: u.EstimatedMin,
			SessionMin:  duration,
			Fits:        u.EstimatedMin <= duration,
		}
		if !fit.Fits {
			fit.OverflowMin = u.EstimatedMin - duration
			largestOverflow = max(largestOverflow, u.EstimatedMin)
			r.warn(FieldLessons, fmt.Sprintf("%q needs %d minutes and will be cut short by %d", domain.CoalesceStr(u.LessonTitle, u.LessonID), u.EstimatedMin, fit.OverflowMin))
		}
		r.LessonFits = append(r.LessonFits, fit)
	}
	if largestOverflow > 0 && duration >= MinSessionDurationMin {
		s := SuggestDuration(largestOverflow)
		r.SuggestedDurationMin = &s
	}
	return r
}

// SuggestDuration returns the smallest session-type upper bound that holds
// requiredMin, capped at the longest type's bound.
func SuggestDuration(requiredMin int) int {
	for _, rng := range domain.SessionTypeRanges {
		if requiredMin <= rng.MaxMin {
			return rng.MaxMin
		}
	}
	return domain.LongestRange().MaxMin
}

func distinct(ids []string) int {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			seen[id] = true
		}
	}
	return len(seen)
}
