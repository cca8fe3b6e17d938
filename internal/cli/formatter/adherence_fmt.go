package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/adherence"
	"github.com/alexanderramin/studyplanner/internal/contract"
)

const adherenceBarWidth = 20

// FormatAdherence renders the overall record and, when present, one row
// per plan.
func FormatAdherence(resp *contract.AdherenceResponse) string {
	var b strings.Builder

	title := "Adherence"
	if resp.PlanID != "" {
		title += " · plan " + resp.PlanID
	}
	b.WriteString(RenderBox(title, adherenceSummary(resp.Overall)))
	if resp.Streak != nil && resp.Overall.Total > 0 {
		b.WriteString("\n")
		b.WriteString(RenderBox("Streak", streakSummary(*resp.Streak)))
	}

	if len(resp.Plans) > 0 {
		rows := make([][]string, 0, len(resp.Plans))
		for _, p := range resp.Plans {
			rows = append(rows, []string{
				TruncID(p.PlanID),
				fmt.Sprintf("%d", p.Total),
				fmt.Sprintf("%d", p.Completed),
				fmt.Sprintf("%d", p.Missed),
				RenderProgress(p.AdherenceRate, 10),
				FormatPercent(p.OnTimeRate),
			})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"PLAN", "TOTAL", "DONE", "MISSED", "ADHERENCE", "ON TIME"}, rows))
	}
	return b.String()
}

func adherenceSummary(r adherence.Record) string {
	if r.Total == 0 {
		return Dim("No sessions yet.")
	}
	lines := []string{
		fmt.Sprintf("%s  %s", Dim("Adherence:  "), RenderProgress(r.AdherenceRate, adherenceBarWidth)),
		fmt.Sprintf("%s  %s", Dim("On time:    "), FormatPercent(r.OnTimeRate)),
		fmt.Sprintf("%s  %d", Dim("Sessions:   "), r.Total),
		fmt.Sprintf("%s  %s  %s  %s  %s",
			Dim("Breakdown:  "),
			StyleGreen.Render(fmt.Sprintf("%d completed", r.Completed)),
			StyleRed.Render(fmt.Sprintf("%d missed", r.Missed)),
			StyleYellow.Render(fmt.Sprintf("%d in progress", r.InProgress)),
			StyleBlue.Render(fmt.Sprintf("%d pending", r.Pending))),
		fmt.Sprintf("%s  %s", Dim("Avg length: "), FormatMinutes(int(r.AvgDurationMin+0.5))),
	}
	return strings.Join(lines, "\n")
}

func streakSummary(r adherence.StreakRecord) string {
	last := r.LastSessionDate
	if last == "" {
		last = "never"
	}
	return strings.Join([]string{
		fmt.Sprintf("%s  %s", Dim("Current:    "), StyleGreen.Render(pluralDays(r.CurrentStreak))),
		fmt.Sprintf("%s  %s", Dim("Longest:    "), pluralDays(r.LongestStreak)),
		fmt.Sprintf("%s  %s", Dim("Last study: "), last),
		fmt.Sprintf("%s  %s over %d sessions", Dim("Studied:    "), FormatMinutes(r.TotalStudyMinutes), r.TotalSessionsCompleted),
		fmt.Sprintf("%s  %d missed, %d rescheduled", Dim("Slipped:    "), r.TotalSessionsMissed, r.TotalSessionsRescheduled),
	}, "\n")
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
