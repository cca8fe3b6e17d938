package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/insight"
)

const lessonTitleWidth = 36

// FormatPreview renders a plan preview grouped by week, followed by the
// break policy, scores and insights when present.
func FormatPreview(resp contract.PreviewResponse) string {
	var b strings.Builder

	if p := resp.Preview; p != nil {
		b.WriteString(RenderBox("Plan Preview", previewSummary(p)))
		for _, w := range p.SessionsByWeek {
			b.WriteString("\n")
			b.WriteString(Header(fmt.Sprintf("Week %d", w.Week)))
			b.WriteString("\n")
			b.WriteString(sessionTable(w.Sessions))
		}
	}

	if len(resp.Breaks) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Break Policy"))
		b.WriteString("\n")
		b.WriteString(FormatBreaks(resp.Breaks))
	}
	if resp.Scores != nil {
		b.WriteString("\n")
		b.WriteString(Header("Scores"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Retention   %s\n", ScoreStyle(resp.Scores.Retention).Render(fmt.Sprintf("%3d", resp.Scores.Retention)))
		fmt.Fprintf(&b, "  Completion  %s\n", ScoreStyle(resp.Scores.Completion).Render(fmt.Sprintf("%3d", resp.Scores.Completion)))
		fmt.Fprintf(&b, "  Balance     %s\n", ScoreStyle(resp.Scores.Balance).Render(fmt.Sprintf("%3d", resp.Scores.Balance)))
	}
	if len(resp.Insights) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Insights"))
		b.WriteString("\n")
		for _, in := range resp.Insights {
			b.WriteString(insightLine(in))
		}
	}
	if resp.Validation != nil && resp.Validation.SuggestedDurationMin != nil {
		fmt.Fprintf(&b, "\n%s %s\n", Dim("Suggested session length:"), FormatMinutes(*resp.Validation.SuggestedDurationMin))
	}

	if issues := FormatIssues(resp.Errors, resp.Warnings); issues != "" {
		b.WriteString("\n")
		b.WriteString(issues)
	}
	if !resp.Success && resp.Preview == nil && len(resp.Errors) == 0 {
		b.WriteString(StyleRed.Render("Preview failed.") + "\n")
	}
	return b.String()
}

func previewSummary(p *contract.PreviewView) string {
	completion := dash(p.CompletionDate)
	lines := []string{
		fmt.Sprintf("%s  %s", Dim("Name:      "), Bold(p.PlanName)),
		fmt.Sprintf("%s  %s", Dim("Starts:    "), p.StartDate),
		fmt.Sprintf("%s  %s", Dim("Completes: "), completion),
		fmt.Sprintf("%s  %d (%.1fh)", Dim("Sessions:  "), p.TotalSessions, p.TotalStudyHours),
		fmt.Sprintf("%s  %d of %d", Dim("Lessons:   "), p.UnitsPlaced, p.UnitsRequested),
	}
	if p.ReviewSessions > 0 {
		lines = append(lines, fmt.Sprintf("%s  %d", Dim("Reviews:   "), p.ReviewSessions))
	}
	return strings.Join(lines, "\n")
}

func sessionTable(sessions []contract.SessionView) string {
	headers := []string{"DATE", "DAY", "SLOT", "TIME", "COURSE", "LESSON", "LENGTH", "BREAKS"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		length := FormatMinutes(s.DurationMin)
		if s.Fit != nil && !s.Fit.Fits {
			length = StyleYellow.Render(length + fmt.Sprintf(" (+%dm)", s.Fit.OverflowMin))
		}
		lesson := Truncate(s.LessonTitle, lessonTitleWidth)
		if s.IsReview {
			lesson = Dim("↺ review: ") + Truncate(s.LessonTitle, lessonTitleWidth-10)
		}
		rows = append(rows, []string{
			s.Date,
			s.Day,
			s.Slot,
			s.StartTime + "-" + s.EndTime,
			StylePurple.Render(s.CourseTitle),
			lesson,
			length,
			Dim(breakSummary(s.Breaks)),
		})
	}
	return RenderTable(headers, rows)
}

func breakSummary(breaks []contract.BreakView) string {
	if len(breaks) == 0 {
		return "--"
	}
	parts := make([]string, len(breaks))
	for i, br := range breaks {
		parts[i] = fmt.Sprintf("@%d+%d", br.AfterMin, br.DurationMin)
	}
	return strings.Join(parts, " ")
}

// FormatBreaks renders a break policy as a table.
func FormatBreaks(breaks []contract.BreakView) string {
	if len(breaks) == 0 {
		return Dim("No breaks.") + "\n"
	}
	rows := make([][]string, len(breaks))
	for i, br := range breaks {
		kind := StyleBlue.Render(br.Type)
		if br.Type == string(domain.BreakLong) {
			kind = StyleYellow.Render(br.Type)
		}
		rows[i] = []string{
			FormatMinutes(br.AfterMin),
			FormatMinutes(br.DurationMin),
			kind,
		}
	}
	return RenderTable([]string{"AFTER", "REST", "TYPE"}, rows)
}

func insightLine(in insight.Insight) string {
	marker := StyleBlue.Render("i")
	if in.Kind == insight.KindTip {
		marker = StyleGreen.Render("★")
	}
	return fmt.Sprintf("  %s  %s %s\n", marker, Dim("["+in.Category+"]"), in.Message)
}
