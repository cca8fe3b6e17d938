package service

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/catalog"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/insight"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
)

// Request defaults applied when a field is left empty.
const (
	defaultPace        = domain.PaceModerate
	defaultPriority    = domain.FocusBalanced
	defaultReview      = domain.ReviewMixed
	defaultOrdering    = domain.OrderSequential
	defaultSessionType = domain.SessionMedium
	defaultSlot        = domain.SlotEvening

	// maxGeneratedPerDay caps the sessions a generated plan puts on one day
	// when only a daily minute budget is given.
	maxGeneratedPerDay = 2
)

// issues collects the errors and warnings of one request.
type issues struct {
	errors   []contract.Issue
	warnings []contract.Issue
}

func (is *issues) fail(code contract.ErrorCode, field, msg string) {
	is.errors = append(is.errors, contract.Issue{Code: code, Field: field, Message: msg, Severity: domain.SeverityError})
}

func (is *issues) warn(code contract.ErrorCode, field, msg string) {
	is.warnings = append(is.warnings, contract.Warn(code, field, msg))
}

func (is *issues) failErr(err error) {
	is.errors = append(is.errors, contract.IssueFromError(err))
}

func (is *issues) addValidation(vs []domain.ValidationIssue) {
	for _, v := range vs {
		issue := contract.IssueFromValidation(v)
		if v.Severity == domain.SeverityError {
			is.errors = append(is.errors, issue)
		} else {
			is.warnings = append(is.warnings, issue)
		}
	}
}

func (is *issues) failed() bool {
	return len(is.errors) > 0
}

// parseEnum decodes a boundary enum. An empty value yields fallback; an
// unknown one is a configuration error on field.
func parseEnum[T ~string](raw string, fallback T, valid map[T]bool, field string, is *issues) T {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v := T(raw)
	if !valid[v] {
		is.fail(contract.ErrConfiguration, field, fmt.Sprintf("unknown value %q", raw))
		return fallback
	}
	return v
}

func parseSessionType(raw, field string, is *issues) domain.SessionType {
	return parseEnum(raw, defaultSessionType, domain.ValidSessionTypes, field, is)
}

func toSelections(courses []contract.SelectedCourse, is *issues) []catalog.Selection {
	out := make([]catalog.Selection, 0, len(courses))
	for i, c := range courses {
		id := strings.TrimSpace(c.CourseID)
		if id == "" {
			is.fail(contract.ErrConfiguration, fmt.Sprintf("selected_courses[%d].course_id", i), "course id is required")
			continue
		}
		out = append(out, catalog.Selection{
			CourseID: id,
			Level:    domain.CourseLevel(c.Level),
			Category: domain.CourseCategory(c.Category),
		})
	}
	return out
}

func courseIDs(sels []catalog.Selection) []string {
	out := make([]string, len(sels))
	for i, s := range sels {
		out[i] = s.CourseID
	}
	return out
}

func toStrategy(goals contract.Goals, prefs contract.Preferences, hasTarget bool, is *issues) insight.Strategy {
	return insight.Strategy{
		Goal:          strings.TrimSpace(goals.PrimaryGoal),
		Pace:          parseEnum(goals.LearningPace, defaultPace, domain.ValidLearningPaces, "goals.learning_pace", is),
		Priority:      parseEnum(goals.PriorityFocus, defaultPriority, domain.ValidPriorityFocuses, "goals.priority_focus", is),
		Review:        parseEnum(prefs.ReviewStrategy, defaultReview, domain.ValidReviewStrategies, "preferences.review_strategy", is),
		Ordering:      parseEnum(prefs.ContentOrdering, defaultOrdering, domain.ValidContentOrderings, "preferences.content_ordering", is),
		HasTargetDate: hasTarget,
		Pomodoro:      prefs.EnablePomodoro,
	}
}

// generatedPerDay is the daily session cap of a generated plan.
func generatedPerDay(av contract.Availability, durationMin int) int {
	if av.MaxSessionsPerDay > 0 {
		return av.MaxSessionsPerDay
	}
	if av.DailyMinutes > 0 && durationMin > 0 {
		return domain.ClampInt(av.DailyMinutes/durationMin, 1, maxGeneratedPerDay)
	}
	return 1
}

// generatedPattern builds the weekly pattern of a generated plan. Every
// session uses the recommended length of the session type.
func generatedPattern(av contract.Availability, st domain.SessionType, pomodoro bool, is *issues) domain.AvailabilityPattern {
	duration := domain.RecommendedDuration(st, pomodoro)
	perDay := generatedPerDay(av, duration)
	p := domain.AvailabilityPattern{MinSessionMin: duration, MaxSessionMin: duration, SessionType: st}

	for _, idx := range av.StudyDays {
		wd, err := domain.WeekdayFromIndex(idx)
		if err != nil {
			is.warn(contract.ErrConfiguration, "availability.study_days", err.Error()+"; day ignored")
			continue
		}
		names := av.TimeSlots[idx]
		if len(names) == 0 {
			names = av.PreferredSlots
		}
		if len(names) == 0 {
			names = []string{string(defaultSlot)}
		}
		blocks, slotIssues := scheduler.ResolveSlots(wd, names)
		is.addValidation(slotIssues)
		p.Days = append(p.Days, domain.DaySchedule{Day: wd, Enabled: true, Blocks: blocks, MaxSessions: perDay})
	}
	return p
}

// manualPattern builds the weekly pattern of a learner-configured plan.
// Decoding problems are returned as warnings for the validator.
func manualPattern(sc contract.ScheduleConfig, st domain.SessionType) (domain.AvailabilityPattern, []domain.ValidationIssue) {
	p := domain.AvailabilityPattern{
		MinSessionMin: sc.SessionDurationMin,
		MaxSessionMin: sc.SessionDurationMin,
		SessionType:   st,
	}
	var warns []domain.ValidationIssue
	for _, d := range sc.Days {
		wd, err := domain.WeekdayFromIndex(d.Day)
		if err != nil {
			warns = append(warns, domain.ValidationIssue{Field: "days", Message: err.Error() + "; day ignored", Severity: domain.SeverityWarning})
			continue
		}
		var blocks []domain.TimeBlock
		if d.Enabled {
			var slotIssues []domain.ValidationIssue
			blocks, slotIssues = scheduler.ResolveSlots(wd, d.TimeSlots)
			warns = append(warns, slotIssues...)
		}
		p.Days = append(p.Days, domain.DaySchedule{Day: wd, Enabled: d.Enabled, Blocks: blocks, MaxSessions: d.MaxSessions})
	}
	return p, warns
}
