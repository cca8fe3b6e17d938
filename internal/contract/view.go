package contract

import (
	"math"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

func NewBreakViews(breaks []domain.Break) []BreakView {
	if len(breaks) == 0 {
		return nil
	}
	out := make([]BreakView, len(breaks))
	for i, b := range breaks {
		out[i] = BreakView{AfterMin: b.AfterMin, DurationMin: b.DurationMin, Type: string(b.Type)}
	}
	return out
}

func NewSessionView(s domain.ScheduledSession) SessionView {
	v := SessionView{
		Day:         s.DayLabel(),
		DayIndex:    int(s.Day),
		Date:        FormatDate(s.Date),
		Week:        s.Week,
		Slot:        string(s.Slot),
		StartTime:   s.Start.Format("15:04"),
		EndTime:     s.End.Format("15:04"),
		CourseID:    s.CourseID,
		CourseTitle: s.CourseTitle,
		ModuleID:    s.ModuleID,
		LessonID:    s.LessonID,
		LessonTitle: s.LessonTitle,
		DurationMin: s.DurationMin,
		Breaks:      NewBreakViews(s.Breaks),
		IsReview:    s.IsReview,
	}
	if s.Fit != nil {
		v.Fit = &FitView{Fits: s.Fit.Fits, OverflowMin: s.Fit.OverflowMin}
	}
	return v
}

func newSessionViews(sessions []domain.ScheduledSession) []SessionView {
	out := make([]SessionView, len(sessions))
	for i, s := range sessions {
		out[i] = NewSessionView(s)
	}
	return out
}

// NewPreviewView converts a preview aggregate for the boundary, keeping the
// group order of the aggregate.
func NewPreviewView(p domain.PlanPreview) *PreviewView {
	v := &PreviewView{
		PlanName:        p.Name,
		StartDate:       FormatDate(p.StartDate),
		TotalSessions:   p.TotalSessions,
		TotalStudyHours: math.Round(p.TotalStudyHours*100) / 100,
		Sessions:        newSessionViews(p.Sessions),
		UnitsRequested:  p.UnitsRequested,
		UnitsPlaced:     p.UnitsPlaced,
		ReviewSessions:  p.ReviewSessions,
	}
	if p.CompletionDate != nil {
		v.CompletionDate = FormatDate(*p.CompletionDate)
	}
	for _, w := range p.SessionsByWeek.Keys() {
		v.SessionsByWeek = append(v.SessionsByWeek, WeekGroup{Week: w, Sessions: newSessionViews(p.SessionsByWeek.Get(w))})
	}
	for _, c := range p.SessionsByCourse.Keys() {
		sessions := p.SessionsByCourse.Get(c)
		v.SessionsByCourse = append(v.SessionsByCourse, CourseGroup{
			CourseID:    c,
			CourseTitle: sessions[0].CourseTitle,
			Sessions:    newSessionViews(sessions),
		})
	}
	return v
}
