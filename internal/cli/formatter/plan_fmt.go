package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
)

// FormatValidation renders the outcome of a manual configuration check.
func FormatValidation(resp contract.ValidateManualResponse) string {
	var b strings.Builder

	if resp.IsValid {
		b.WriteString(StyleGreen.Render("✔ Configuration is valid") + "\n")
	} else {
		b.WriteString(StyleRed.Render("✖ Configuration is invalid") + "\n")
	}

	var overflow [][]string
	for _, f := range resp.LessonFits {
		if f.Fits {
			continue
		}
		overflow = append(overflow, []string{
			Truncate(f.LessonTitle, lessonTitleWidth),
			f.CourseID,
			FormatMinutes(f.RequiredMin),
			FormatMinutes(f.SessionMin),
			StyleYellow.Render(fmt.Sprintf("+%dm", f.OverflowMin)),
		})
	}
	if len(resp.LessonFits) > 0 {
		fmt.Fprintf(&b, "%s %d of %d lessons fit the session length\n",
			Dim("Fit:"), len(resp.LessonFits)-len(overflow), len(resp.LessonFits))
	}
	if len(overflow) > 0 {
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"LESSON", "COURSE", "NEEDS", "SESSION", "OVER"}, overflow))
	}
	if resp.SuggestedDurationMin != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Suggested session length:"), FormatMinutes(*resp.SuggestedDurationMin))
	}

	if issues := FormatIssues(resp.Errors, resp.Warnings); issues != "" {
		b.WriteString("\n")
		b.WriteString(issues)
	}
	return b.String()
}

// FormatCreateResult renders the outcome of a plan creation, including any
// session batches that were not saved.
func FormatCreateResult(resp contract.CreatePlanResponse) string {
	var b strings.Builder

	switch {
	case resp.Success:
		fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔ Created plan"), Bold(resp.PlanName), TruncID(resp.PlanID))
	case resp.PlanID != "":
		fmt.Fprintf(&b, "%s %s %s\n", StyleYellow.Render("! Plan saved with errors:"), Bold(resp.PlanName), TruncID(resp.PlanID))
	default:
		b.WriteString(StyleRed.Render("✖ Plan was not created") + "\n")
	}
	if resp.SessionsRequested > 0 {
		fmt.Fprintf(&b, "%s %d of %d\n", Dim("Sessions saved:"), resp.SessionsCreated, resp.SessionsRequested)
	}
	for _, be := range resp.BatchErrors {
		fmt.Fprintf(&b, "  %s batch %d (sessions %d-%d): %s\n",
			StyleRed.Render("✖"), be.Batch, be.Offset+1, be.Offset+be.Size, be.Message)
	}

	if issues := FormatIssues(resp.Errors, resp.Warnings); issues != "" {
		b.WriteString("\n")
		b.WriteString(issues)
	}
	return b.String()
}

// FormatPlans renders an owner's plans, newest first as given.
func FormatPlans(plans []*domain.StudyPlan, now time.Time) string {
	if len(plans) == 0 {
		return "No plans found.\n"
	}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		end := Dim("--")
		if p.EndDate != nil {
			end = contract.FormatDate(*p.EndDate)
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			ModeBadge(p.Mode),
			string(p.SessionType),
			contract.FormatDate(p.StartDate) + Dim(" ("+RelativeDateFrom(p.StartDate, now)+")"),
			end,
		})
	}
	return RenderTable([]string{"ID", "NAME", "MODE", "TYPE", "START", "END"}, rows)
}

// FormatPlanSessions renders the stored sessions of a plan in loc.
func FormatPlanSessions(sessions []*domain.PlanSession, loc *time.Location) string {
	if len(sessions) == 0 {
		return "No sessions found.\n"
	}
	if loc == nil {
		loc = time.Local
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		start := s.ScheduledStart.In(loc)
		eval := Dim("--")
		if s.SelfEvaluation != nil {
			eval = fmt.Sprintf("%d/5", *s.SelfEvaluation)
		}
		lesson := s.LessonID
		if s.IsReview {
			lesson += Dim(" (review)")
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			start.Format("Mon 2006-01-02 15:04"),
			s.CourseID,
			lesson,
			FormatMinutes(s.DurationMin),
			StatusPill(s.Status),
			eval,
		})
	}
	return RenderTable([]string{"ID", "START", "COURSE", "LESSON", "LENGTH", "STATUS", "EVAL"}, rows)
}

// FormatSession renders a single session after a status change.
func FormatSession(s *domain.PlanSession, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return fmt.Sprintf("%s %s  %s  %s\n",
		StatusPill(s.Status),
		TruncID(s.ID),
		s.ScheduledStart.In(loc).Format("Mon 2006-01-02 15:04"),
		FormatMinutes(s.DurationMin))
}
