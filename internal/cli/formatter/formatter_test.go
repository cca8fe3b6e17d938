package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/adherence"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/insight"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{95, "1h 35m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in))
	}
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Intro to...", Truncate("Intro to generics", 11))
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"empty", 0, "0%"},
		{"half", 0.5, "50%"},
		{"over clamps", 1.5, "100%"},
		{"negative clamps", -1, "0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, 10)
			assert.Contains(t, got, tt.want)
			assert.Contains(t, got, "[")
		})
	}
	assert.Contains(t, RenderProgress(1, 4), strings.Repeat(filledBlock, 4))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long-cell", "x"}, {"s", "y"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderBox_Plain(t *testing.T) {
	SetPlain(true)
	defer SetPlain(false)

	out := RenderBox("Plan Preview", "body")
	assert.Equal(t, "PLAN PREVIEW\n\nbody\n", out)
	assert.NotContains(t, out, "╭")
}

func TestFormatIssues(t *testing.T) {
	assert.Empty(t, FormatIssues(nil, nil))

	out := FormatIssues(
		[]contract.Issue{{Code: contract.ErrConfiguration, Field: "days", Message: "no study days", Severity: domain.SeverityError}},
		[]contract.Issue{contract.Warn(contract.ErrContentGap, "selected_courses", "course x has no lessons")},
	)
	assert.Contains(t, out, "configuration_error")
	assert.Contains(t, out, "days: ")
	assert.Contains(t, out, "no study days")
	assert.Contains(t, out, "content_gap")
	assert.Less(t, strings.Index(out, "no study days"), strings.Index(out, "no lessons"))
}

func previewFixture() contract.PreviewResponse {
	session := contract.SessionView{
		Day: "Monday", Date: "2025-03-03", Week: 1, Slot: "evening",
		StartTime: "18:00", EndTime: "19:00",
		CourseID: "go-101", CourseTitle: "Go Basics", LessonID: "l1", LessonTitle: "Hello, world",
		DurationMin: 60,
		Breaks:      []contract.BreakView{{AfterMin: 25, DurationMin: 5, Type: "short"}},
		Fit:         &contract.FitView{Fits: false, OverflowMin: 15},
	}
	return contract.PreviewResponse{
		Success: true,
		Preview: &contract.PreviewView{
			PlanName: "Evenings", StartDate: "2025-03-03", CompletionDate: "2025-03-03",
			TotalSessions: 1, TotalStudyHours: 1, UnitsRequested: 1, UnitsPlaced: 1,
			Sessions:       []contract.SessionView{session},
			SessionsByWeek: []contract.WeekGroup{{Week: 1, Sessions: []contract.SessionView{session}}},
		},
		Breaks:   []contract.BreakView{{AfterMin: 25, DurationMin: 5, Type: "short"}, {AfterMin: 40, DurationMin: 10, Type: "long"}},
		Scores:   &domain.Scores{Retention: 90, Completion: 75, Balance: 50},
		Insights: []insight.Insight{{Kind: insight.KindTip, Category: "retention", Message: "Spaced repetition applied"}},
		Warnings: []contract.Issue{contract.Warn(contract.ErrCapacityExhausted, "", "2 lessons did not fit")},
	}
}

func TestFormatPreview(t *testing.T) {
	out := FormatPreview(previewFixture())

	assert.Contains(t, out, "PLAN PREVIEW")
	assert.Contains(t, out, "Evenings")
	assert.Contains(t, out, "WEEK 1")
	assert.Contains(t, out, "18:00-19:00")
	assert.Contains(t, out, "Hello, world")
	assert.Contains(t, out, "(+15m)")
	assert.Contains(t, out, "@25+5")
	assert.Contains(t, out, "BREAK POLICY")
	assert.Contains(t, out, "Retention")
	assert.Contains(t, out, "Spaced repetition applied")
	assert.Contains(t, out, "capacity_exhausted")
}

func TestFormatPreview_MarksReviews(t *testing.T) {
	resp := previewFixture()
	review := resp.Preview.Sessions[0]
	review.Date, review.LessonTitle, review.DurationMin, review.IsReview = "2025-03-04", "Hello, world", 30, true
	review.Fit = nil
	resp.Preview.Sessions = append(resp.Preview.Sessions, review)
	resp.Preview.SessionsByWeek[0].Sessions = resp.Preview.Sessions
	resp.Preview.ReviewSessions = 1
	resp.Preview.TotalSessions = 2

	out := FormatPreview(resp)
	assert.Contains(t, out, "Reviews:")
	assert.Contains(t, out, "review: Hello")
}

func TestFormatPreview_FailureWithoutPreview(t *testing.T) {
	out := FormatPreview(contract.PreviewResponse{
		Errors: []contract.Issue{{Code: contract.ErrConfiguration, Field: "study_days", Message: "at least one study day is required", Severity: domain.SeverityError}},
	})
	assert.NotContains(t, out, "PLAN PREVIEW")
	assert.Contains(t, out, "at least one study day is required")
}

func TestFormatBreaks(t *testing.T) {
	out := FormatBreaks([]contract.BreakView{{AfterMin: 25, DurationMin: 5, Type: "short"}, {AfterMin: 40, DurationMin: 10, Type: "long"}})
	assert.Contains(t, out, "AFTER")
	assert.Contains(t, out, "25m")
	assert.Contains(t, out, "long")
	assert.Contains(t, FormatBreaks(nil), "No breaks.")
}

func TestFormatValidation(t *testing.T) {
	out := FormatValidation(contract.ValidateManualResponse{
		IsValid: true,
		LessonFits: []contract.LessonFitView{
			{LessonID: "l1", LessonTitle: "Short one", CourseID: "go-101", RequiredMin: 30, SessionMin: 60, Fits: true},
			{LessonID: "l2", LessonTitle: "Long one", CourseID: "go-101", RequiredMin: 90, SessionMin: 60, OverflowMin: 30},
		},
		SuggestedDurationMin: intPtr(90),
	})
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "1 of 2 lessons fit")
	assert.Contains(t, out, "Long one")
	assert.NotContains(t, out, "Short one")
	assert.Contains(t, out, "1h 30m")

	invalid := FormatValidation(contract.ValidateManualResponse{IsValid: false})
	assert.Contains(t, invalid, "Configuration is invalid")
}

func TestFormatCreateResult(t *testing.T) {
	tests := []struct {
		name string
		resp contract.CreatePlanResponse
		want []string
	}{
		{
			name: "success",
			resp: contract.CreatePlanResponse{Success: true, PlanID: "0123456789", PlanName: "Evenings", SessionsRequested: 6, SessionsCreated: 6},
			want: []string{"Created plan", "Evenings", "01234567", "6 of 6"},
		},
		{
			name: "partial",
			resp: contract.CreatePlanResponse{
				PlanID: "p1", PlanName: "Evenings", SessionsRequested: 6, SessionsCreated: 4,
				BatchErrors: []contract.BatchError{{Batch: 2, Offset: 2, Size: 2, Message: "disk full"}},
			},
			want: []string{"saved with errors", "4 of 6", "batch 2 (sessions 3-4): disk full"},
		},
		{
			name: "not created",
			resp: contract.CreatePlanResponse{},
			want: []string{"Plan was not created"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatCreateResult(tt.resp)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestFormatPlansAndSessions(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	plans := []*domain.StudyPlan{{
		ID: "plan-0001-xyz", Name: "Evenings", Mode: domain.ModeAIGenerated, SessionType: domain.SessionMedium,
		StartDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), EndDate: &end,
	}}
	out := FormatPlans(plans, now)
	assert.Contains(t, out, "Evenings")
	assert.Contains(t, out, "generated")
	assert.Contains(t, out, "In 2d")
	assert.Contains(t, out, "2025-03-14")
	assert.Equal(t, "No plans found.\n", FormatPlans(nil, now))

	sessions := []*domain.PlanSession{{
		ID: "s1", CourseID: "go-101", LessonID: "l1", DurationMin: 45,
		ScheduledStart: time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC),
		Status:         domain.StatusCompleted, SelfEvaluation: intPtr(4),
	}}
	sessions = append(sessions, &domain.PlanSession{
		ID: "s2", CourseID: "go-101", LessonID: "l1", DurationMin: 23, IsReview: true,
		ScheduledStart: time.Date(2025, 3, 5, 18, 0, 0, 0, time.UTC), Status: domain.StatusPending,
	})
	sOut := FormatPlanSessions(sessions, time.UTC)
	assert.Contains(t, sOut, "(review)")
	assert.Equal(t, 1, strings.Count(sOut, "(review)"))
	assert.Contains(t, sOut, "Mon 2025-03-03 18:00")
	assert.Contains(t, sOut, "Completed")
	assert.Contains(t, sOut, "4/5")
}

func TestFormatAdherence(t *testing.T) {
	resp := &contract.AdherenceResponse{
		OwnerID: "u1",
		Overall: adherence.Record{Total: 5, Completed: 2, Missed: 2, Pending: 1, AdherenceRate: 0.4, OnTimeRate: 0.5, AvgDurationMin: 60},
		Plans:   []adherence.PlanRecord{{PlanID: "plan-1", Record: adherence.Record{Total: 5, Completed: 2, AdherenceRate: 0.4, OnTimeRate: 0.5}}},
		Streak: &adherence.StreakRecord{
			CurrentStreak: 1, LongestStreak: 3, LastSessionDate: "2025-03-06",
			TotalSessionsCompleted: 2, TotalStudyMinutes: 120, TotalSessionsMissed: 2, TotalSessionsRescheduled: 1,
		},
	}
	out := FormatAdherence(resp)
	assert.Contains(t, out, "STREAK")
	assert.Contains(t, out, "1 day")
	assert.Contains(t, out, "3 days")
	assert.Contains(t, out, "2025-03-06")
	assert.Contains(t, out, "2h over 2 sessions")
	assert.Contains(t, out, "2 missed, 1 rescheduled")
	assert.Contains(t, out, "ADHERENCE")
	assert.Contains(t, out, "40%")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "2 completed")
	assert.Contains(t, out, "1h")
	assert.Contains(t, out, "plan-1")

	assert.Contains(t, FormatAdherence(&contract.AdherenceResponse{}), "No sessions yet.")
}

func TestFormatCourses(t *testing.T) {
	out := FormatCourses([]repository.CourseSummary{{
		ID: "go-101", Title: "Go Basics", Level: domain.LevelBeginner, Category: domain.CategoryTechnical, LessonCount: 6, TotalMin: 270,
	}})
	assert.Contains(t, out, "go-101")
	assert.Contains(t, out, "Go Basics")
	assert.Contains(t, out, "4h 30m")
	assert.Contains(t, FormatCourses(nil), "No courses found")
}
