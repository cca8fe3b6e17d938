package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/alexanderramin/studyplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `courses:
  - id: go-101
    title: Go Basics
    level: beginner
    category: technical
    modules:
      - id: go-101-m1
        title: Intro
        lessons:
          - id: go-101-m1-l1
            title: Hello
            estimated_minutes: 30
          - id: go-101-m1-l2
            title: Packages
`

const manualRequest = `plan_name: Evenings
selected_courses:
  - course_id: go-101
session_type: medium
schedule:
  session_duration_minutes: 60
  start_date: "2025-03-03"
  days:
    - {day: 1, enabled: true, time_slots: [evening], max_sessions: 1}
    - {day: 3, enabled: true, time_slots: [evening], max_sessions: 1}
`

const aiRequest = `{
  "start_date": "2025-03-03",
  "goals": {"primary_goal": "Learn Go", "learning_pace": "moderate"},
  "availability": {"study_days": [1, 3], "time_slots": {"1": ["morning"], "3": ["evening"]}},
  "preferences": {"session_type": "medium", "review_strategy": "massed_practice"},
  "selected_courses": [{"course_id": "go-101"}]
}`

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	now := func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

	courses := repository.NewSQLiteCourseRepo(database)
	sessions := repository.NewSQLitePlanSessionRepo(database)
	return &App{
		Planner: service.NewPlannerService(
			courses,
			repository.NewSQLiteProgressRepo(database),
			repository.NewSQLitePlanRepo(database),
			uow,
			service.PlannerOptions{Location: time.UTC, Now: now},
		),
		Adherence: service.NewAdherenceService(sessions, now),
		Sessions:  service.NewSessionService(sessions, uow, now),
		Catalog:   service.NewCatalogService(courses, uow),
		OwnerID:   "u1",
		Location:  time.UTC,
		Now:       now,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(app *App, args ...string) (string, error) {
	var buf bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func importCatalog(t *testing.T, app *App) {
	t.Helper()
	out, err := run(app, "catalog", "import", writeFile(t, "catalog.yaml", testCatalog))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 courses (2 lessons)")
}

func TestCatalogCommands(t *testing.T) {
	app := newTestApp(t)
	importCatalog(t, app)

	out, err := run(app, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "go-101")
	assert.Contains(t, out, "Go Basics")
	assert.Contains(t, out, "1h 15m")
}

func TestPreviewManual(t *testing.T) {
	app := newTestApp(t)
	importCatalog(t, app)

	out, err := run(app, "preview", "manual", "-f", writeFile(t, "manual.yaml", manualRequest))
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN PREVIEW")
	assert.Contains(t, out, "Evenings")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "Packages")
	assert.Contains(t, out, "2025-03-05")
}

func TestPreviewAI_JSONRequestAndOutput(t *testing.T) {
	app := newTestApp(t)
	importCatalog(t, app)

	out, err := run(app, "--json", "preview", "ai", "-f", writeFile(t, "ai.json", aiRequest))
	require.NoError(t, err)

	var resp contract.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Preview)
	assert.Equal(t, "AI Plan - Learn Go", resp.Preview.PlanName)
	require.Len(t, resp.Preview.Sessions, 2)
	assert.Equal(t, "morning", resp.Preview.Sessions[0].Slot)
	assert.Equal(t, "evening", resp.Preview.Sessions[1].Slot)
	assert.NotNil(t, resp.Scores)
}

func TestPreview_FailureReturnsError(t *testing.T) {
	app := newTestApp(t)
	importCatalog(t, app)

	req := `{"goals": {"learning_pace": "moderate"}, "availability": {"study_days": []}, "preferences": {"session_type": "medium"}, "selected_courses": [{"course_id": "go-101"}]}`
	out, err := run(app, "preview", "ai", "-f", writeFile(t, "ai.json", req))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preview failed")
	assert.Contains(t, out, "configuration_error")
}

func TestReadRequest_RejectsUnknownFields(t *testing.T) {
	app := newTestApp(t)

	_, err := run(app, "validate", "-f", writeFile(t, "bad.yaml", "bogus: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	_, err = run(app, "validate", "-f", writeFile(t, "bad.json", `{"bogus": 1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestValidate(t *testing.T) {
	app := newTestApp(t)
	importCatalog(t, app)

	out, err := run(app, "validate", "-f", writeFile(t, "manual.yaml", manualRequest))
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "2 of 2 lessons fit")
}

func TestCreateTrackAndReport(t *testing.T) {
	app := newTestApp(t)
	importCatalog(t, app)

	out, err := run(app, "--json", "create", "manual", "-f", writeFile(t, "manual.yaml", manualRequest), "--name", "Spring")
	require.NoError(t, err)
	var created contract.CreatePlanResponse
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.True(t, created.Success)
	assert.Equal(t, "Spring", created.PlanName)
	assert.Equal(t, 2, created.SessionsCreated)

	out, err = run(app, "plans", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Spring")

	out, err = run(app, "--owner", "someone-else", "plans", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No plans found.")

	out, err = run(app, "--json", "session", "list", "--plan", created.PlanID)
	require.NoError(t, err)
	var sessions []domain.PlanSession
	require.NoError(t, json.Unmarshal([]byte(out), &sessions))
	require.Len(t, sessions, 2)

	out, err = run(app, "session", "complete", sessions[0].ID, "--eval", "4", "--minutes", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	_, err = run(app, "session", "complete", sessions[0].ID)
	require.Error(t, err)

	_, err = run(app, "session", "complete", sessions[1].ID, "--at", "later")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --at")

	out, err = run(app, "session", "reschedule", sessions[1].ID, "--at", "2025-03-06 07:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Thu 2025-03-06 07:30")

	_, err = run(app, "session", "reschedule", sessions[1].ID, "--at", "tomorrow")
	require.Error(t, err)

	out, err = run(app, "adherence")
	require.NoError(t, err)
	assert.Contains(t, out, "1 completed")
	assert.Contains(t, out, "1 pending")

	out, err = run(app, "plans", "show", created.PlanID)
	require.NoError(t, err)
	assert.Contains(t, out, "2 sessions")
	assert.Contains(t, out, "4/5")
}

func TestBreaks(t *testing.T) {
	app := newTestApp(t)

	out, err := run(app, "--json", "breaks", "--max-study", "60")
	require.NoError(t, err)
	var breaks []contract.BreakView
	require.NoError(t, json.Unmarshal([]byte(out), &breaks))
	assert.Equal(t, []contract.BreakView{
		{AfterMin: 25, DurationMin: 5, Type: "short"},
		{AfterMin: 40, DurationMin: 10, Type: "long"},
	}, breaks)

	out, err = run(app, "breaks", "--session-type", "short")
	require.NoError(t, err)
	assert.Contains(t, out, "20m")
	assert.Contains(t, out, "long")

	_, err = run(app, "breaks", "--session-type", "huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown session type")
}

func TestPlainOutputWhenNotInteractive(t *testing.T) {
	app := newTestApp(t)
	app.IsInteractive = func() bool { return false }
	importCatalog(t, app)

	out, err := run(app, "adherence")
	require.NoError(t, err)
	assert.Contains(t, out, "ADHERENCE")
	assert.NotContains(t, out, "╭")

	app.IsInteractive = func() bool { return true }
	out, err = run(app, "adherence")
	require.NoError(t, err)
	assert.Contains(t, out, "╭")
}
