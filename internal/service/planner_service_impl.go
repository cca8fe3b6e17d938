package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/catalog"
	"github.com/alexanderramin/studyplanner/internal/contract"
	"github.com/alexanderramin/studyplanner/internal/db"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/insight"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/scheduler"
	"github.com/alexanderramin/studyplanner/internal/validation"
)

// DefaultBatchSize is the number of sessions written per transaction.
const DefaultBatchSize = 50

// PlannerOptions tunes the planner. Zero values select the defaults.
type PlannerOptions struct {
	HorizonDays      int
	BatchSize        int
	FetchConcurrency int
	// Location is the zone calendar dates are interpreted in.
	Location *time.Location
	// Now is the clock used for "today" and timestamps.
	Now func() time.Time
}

func (o PlannerOptions) withDefaults() PlannerOptions {
	if o.HorizonDays <= 0 {
		o.HorizonDays = scheduler.DefaultHorizonDays
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type plannerService struct {
	normalizer *catalog.Normalizer
	plans      repository.PlanRepo
	uow        db.UnitOfWork
	opts       PlannerOptions
	observer   UseCaseObserver
}

func NewPlannerService(
	courses catalog.CourseSource,
	progress catalog.ProgressSource,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	opts PlannerOptions,
	observers ...UseCaseObserver,
) PlannerService {
	opts = opts.withDefaults()
	return &plannerService{
		normalizer: catalog.NewNormalizer(courses, progress, opts.FetchConcurrency),
		plans:      plans,
		uow:        uow,
		opts:       opts,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// draft is a fully computed plan that has not been persisted.
type draft struct {
	name         string
	mode         domain.GenerationMode
	sessionType  domain.SessionType
	start        time.Time
	end          *time.Time
	result       scheduler.DistributeResult
	preview      domain.PlanPreview
	breaks       []domain.Break
	scheduleMeta string

	scores     *domain.Scores
	insights   []insight.Insight
	meta       *domain.AIMetadata
	validation *contract.ValidateManualResponse
}

func (s *plannerService) GenerateAIPreview(ctx context.Context, req contract.GeneratePreviewRequest) (resp contract.PreviewResponse) {
	ctx, uc := startUseCase(ctx, s.observer, "planner.generate_ai_preview")
	defer func() {
		if r := recover(); r != nil {
			resp = contract.PreviewResponse{Errors: []contract.Issue{panicIssue(r)}, Warnings: []contract.Issue{}}
		}
		endPreview(ctx, uc, resp)
	}()

	is := &issues{}
	d := s.draftAI(ctx, req, is)
	if d == nil {
		return previewFailure(is)
	}
	return d.previewResponse(is)
}

func (s *plannerService) GenerateManualPreview(ctx context.Context, req contract.ManualPlanRequest) (resp contract.PreviewResponse) {
	ctx, uc := startUseCase(ctx, s.observer, "planner.generate_manual_preview")
	defer func() {
		if r := recover(); r != nil {
			resp = contract.PreviewResponse{Errors: []contract.Issue{panicIssue(r)}, Warnings: []contract.Issue{}}
		}
		endPreview(ctx, uc, resp)
	}()

	is := &issues{}
	d, check := s.draftManual(ctx, req, is)
	if d == nil {
		resp = previewFailure(is)
		resp.Validation = check
		return resp
	}
	return d.previewResponse(is)
}

func (s *plannerService) ValidateManual(ctx context.Context, req contract.ValidateManualRequest) (resp contract.ValidateManualResponse) {
	ctx, uc := startUseCase(ctx, s.observer, "planner.validate_manual")
	defer func() {
		if r := recover(); r != nil {
			resp = contract.ValidateManualResponse{Errors: []contract.Issue{panicIssue(r)}, Warnings: []contract.Issue{}}
		}
		uc.set("is_valid", resp.IsValid)
		uc.set("warnings", len(resp.Warnings))
		uc.end(ctx, firstError(resp.Errors))
	}()

	is := &issues{}
	check := s.checkManual(ctx, req, is)
	return validationResponse(check.report, is)
}

func (s *plannerService) CreateManualPlan(ctx context.Context, ownerID string, req contract.ManualPlanRequest) (resp contract.CreatePlanResponse) {
	ctx, uc := startUseCase(ctx, s.observer, "planner.create_manual_plan")
	defer func() {
		if r := recover(); r != nil {
			resp.Success = false
			resp.Errors = append(resp.Errors, panicIssue(r))
		}
		endCreate(ctx, uc, resp)
	}()

	is := &issues{}
	requireOwner(ownerID, is)
	d, _ := s.draftManual(ctx, req, is)
	if d == nil || is.failed() {
		return createFailure(is)
	}
	return s.persist(ctx, ownerID, d, is)
}

func (s *plannerService) CreateAIPlan(ctx context.Context, ownerID string, req contract.GeneratePreviewRequest) (resp contract.CreatePlanResponse) {
	ctx, uc := startUseCase(ctx, s.observer, "planner.create_ai_plan")
	defer func() {
		if r := recover(); r != nil {
			resp.Success = false
			resp.Errors = append(resp.Errors, panicIssue(r))
		}
		endCreate(ctx, uc, resp)
	}()

	is := &issues{}
	requireOwner(ownerID, is)
	req.OwnerID = ownerID
	d := s.draftAI(ctx, req, is)
	if d == nil || is.failed() {
		return createFailure(is)
	}
	return s.persist(ctx, ownerID, d, is)
}

func (s *plannerService) ListPlans(ctx context.Context, ownerID string) ([]*domain.StudyPlan, error) {
	return s.plans.ListByOwner(ctx, ownerID)
}

func (s *plannerService) today() time.Time {
	return domain.DateOf(s.opts.Now().In(s.opts.Location))
}

// parseStart decodes a start date, defaulting to today.
func (s *plannerService) parseStart(raw, field string, is *issues) time.Time {
	t, err := contract.ParseDate(raw, s.opts.Location)
	if err != nil {
		is.fail(contract.ErrConfiguration, field, err.Error())
		return s.today()
	}
	if t == nil {
		return s.today()
	}
	return *t
}

func (s *plannerService) parseOptionalDate(raw, field string, is *issues) *time.Time {
	t, err := contract.ParseDate(raw, s.opts.Location)
	if err != nil {
		is.fail(contract.ErrConfiguration, field, err.Error())
		return nil
	}
	return t
}

// loadUnits normalizes the selected courses. Content gaps become warnings;
// an unreachable source is a dependency failure.
func (s *plannerService) loadUnits(ctx context.Context, sels []catalog.Selection, opts catalog.NormalizeOptions, is *issues) []domain.SchedulableUnit {
	if len(sels) == 0 {
		return nil
	}
	res, err := s.normalizer.Normalize(ctx, sels, opts)
	if err != nil {
		is.failErr(contract.NewError(contract.ErrDependencyUnavailable, validation.FieldCourses, err))
		return nil
	}
	for _, id := range res.MissingCourses {
		is.warn(contract.ErrContentGap, validation.FieldCourses, fmt.Sprintf("course %s was not found and contributes no lessons", id))
	}
	for _, id := range res.EmptyCourses {
		is.warn(contract.ErrContentGap, validation.FieldCourses, fmt.Sprintf("course %s has no published lessons", id))
	}
	if res.ExcludedLessons > 0 {
		is.warn("", validation.FieldCourses, fmt.Sprintf("%d already started lesson(s) left out", res.ExcludedLessons))
	}
	if len(res.Units) == 0 {
		is.warn(contract.ErrContentGap, validation.FieldCourses, "the selected courses have no lessons to schedule")
	}
	return res.Units
}

func (s *plannerService) draftAI(ctx context.Context, req contract.GeneratePreviewRequest, is *issues) *draft {
	start := s.parseStart(req.StartDate, "start_date", is)
	target := s.parseOptionalDate(req.Goals.TargetCompletionDate, "goals.target_completion_date", is)
	st := parseSessionType(req.Preferences.SessionType, "preferences.session_type", is)
	strategy := toStrategy(req.Goals, req.Preferences, target != nil, is)

	sels := toSelections(req.Courses, is)
	if len(req.Courses) == 0 {
		is.fail(contract.ErrConfiguration, validation.FieldCourses, "select at least one course")
	}

	pattern := generatedPattern(req.Availability, st, req.Preferences.EnablePomodoro, is)
	avail, availIssues := scheduler.NewAvailability(pattern)
	is.addValidation(availIssues)
	if avail.EnabledDayCount() == 0 {
		is.fail(contract.ErrConfiguration, "availability.study_days", "enable at least one study day with a time slot")
	}
	if is.failed() {
		return nil
	}

	units := s.loadUnits(ctx, sels, catalog.NormalizeOptions{OwnerID: req.OwnerID, ExcludeStarted: req.ExcludeStarted}, is)
	if is.failed() {
		return nil
	}
	units = catalog.Order(units, strategy.Ordering)

	duration := pattern.MaxSessionMin
	prefs := req.Preferences
	breaks := scheduler.BreakPolicy(
		positiveOr(prefs.MinStudyMin, scheduler.DefaultMinStudyMin),
		positiveOr(prefs.MaxStudyMin, duration),
		positiveOr(prefs.MinRestMin, scheduler.DefaultMinRestMin),
	)
	res := scheduler.Distribute(units, avail, scheduler.DistributeOptions{
		Start:       start,
		HorizonDays: s.opts.HorizonDays,
		WeeklyCap:   insight.SessionsPerWeek(strategy.Pace, avail.EnabledDayCount()),
		Breaks:      breaks,
	})
	s.capacityWarnings(res, is)
	if strategy.SchedulesReviews() {
		res = res.WithReviews(scheduler.ScheduleReviews(res.Sessions, avail, scheduler.ReviewOptions{
			Start:     start,
			Intervals: scheduler.ReviewIntervals(strategy.Priority),
		}))
	}

	name := "AI Plan - " + domain.CoalesceStr(strategy.Goal, "general learning")
	preview := scheduler.BuildPreview(name, start, res)
	if target != nil && preview.CompletionDate != nil && preview.CompletionDate.After(*target) {
		is.warn(contract.ErrCapacityExhausted, "goals.target_completion_date",
			fmt.Sprintf("estimated completion %s is after the target date %s",
				contract.FormatDate(*preview.CompletionDate), contract.FormatDate(*target)))
	}

	meta := insight.BuildMetadata(strategy, preview.TotalSessions, s.opts.Now())
	return &draft{
		name:         name,
		mode:         domain.ModeAIGenerated,
		sessionType:  st,
		start:        start,
		end:          target,
		result:       res,
		preview:      preview,
		breaks:       breaks,
		scheduleMeta: marshalMeta(map[string]any{"goals": req.Goals, "availability": req.Availability, "preferences": req.Preferences}),
		scores:       &meta.Scores,
		insights:     insight.Insights(meta.Scores, preview.TotalSessions, avail.EnabledDayCount()),
		meta:         &meta,
	}
}

// manualCheck is the outcome of decoding and validating a manual request.
type manualCheck struct {
	pattern domain.AvailabilityPattern
	units   []domain.SchedulableUnit
	report  validation.Report
}

func (s *plannerService) checkManual(ctx context.Context, req contract.ValidateManualRequest, is *issues) manualCheck {
	st := parseSessionType(req.SessionType, "session_type", is)
	sels := toSelections(req.Courses, is)
	pattern, boundary := manualPattern(req.Schedule, st)
	units := s.loadUnits(ctx, sels, catalog.NormalizeOptions{}, is)

	report := validation.Validate(validation.ManualConfig{
		CourseIDs:          courseIDs(sels),
		SessionType:        st,
		SessionDurationMin: req.Schedule.SessionDurationMin,
		Pattern:            pattern,
		BoundaryIssues:     boundary,
	}, units)
	is.addValidation(report.Errors)
	is.addValidation(report.Warnings)
	return manualCheck{pattern: pattern, units: units, report: report}
}

func (s *plannerService) draftManual(ctx context.Context, req contract.ManualPlanRequest, is *issues) (*draft, *contract.ValidateManualResponse) {
	check := s.checkManual(ctx, req.ValidateManualRequest, is)
	sc := req.Schedule
	start := s.parseStart(sc.StartDate, "schedule.start_date", is)
	end := s.parseOptionalDate(sc.EndDate, "schedule.end_date", is)
	if end != nil && end.Before(start) {
		is.fail(contract.ErrConfiguration, "schedule.end_date", "end date is before the start date")
	}

	v := validationResponse(check.report, is)
	if is.failed() {
		return nil, &v
	}

	avail, _ := scheduler.NewAvailability(check.pattern)
	duration := sc.SessionDurationMin
	breaks := scheduler.BreakPolicy(
		positiveOr(sc.MinStudyMin, scheduler.DefaultMinStudyMin),
		duration,
		positiveOr(sc.MinRestMin, scheduler.DefaultMinRestMin),
	)
	res := scheduler.Distribute(check.units, avail, scheduler.DistributeOptions{
		Start:         start,
		End:           end,
		HorizonDays:   s.opts.HorizonDays,
		Breaks:        breaks,
		FitAgainstMin: duration,
	})
	s.capacityWarnings(res, is)
	v.Warnings = nonNil(is.warnings)

	name := domain.CoalesceStr(strings.TrimSpace(req.PlanName), "Manual Plan - "+contract.FormatDate(s.today()))
	return &draft{
		name:         name,
		mode:         domain.ModeManual,
		sessionType:  check.pattern.SessionType,
		start:        start,
		end:          end,
		result:       res,
		preview:      scheduler.BuildPreview(name, start, res),
		breaks:       breaks,
		scheduleMeta: marshalMeta(sc),
		validation:   &v,
	}, &v
}

func (s *plannerService) capacityWarnings(res scheduler.DistributeResult, is *issues) {
	if res.Complete() {
		return
	}
	if res.EndReached {
		is.warn(contract.ErrCapacityExhausted, "schedule.end_date",
			fmt.Sprintf("only %d of %d lessons fit before the end date", res.Placed, res.Requested))
		return
	}
	is.warn(contract.ErrCapacityExhausted, "availability",
		fmt.Sprintf("only %d of %d lessons fit within the %d-day horizon", res.Placed, res.Requested, s.opts.HorizonDays))
}

func (d *draft) previewResponse(is *issues) contract.PreviewResponse {
	return contract.PreviewResponse{
		Success:    true,
		Errors:     []contract.Issue{},
		Warnings:   nonNil(is.warnings),
		Preview:    contract.NewPreviewView(d.preview),
		Breaks:     contract.NewBreakViews(d.breaks),
		Scores:     d.scores,
		Insights:   d.insights,
		Metadata:   d.meta,
		Validation: d.validation,
	}
}

func previewFailure(is *issues) contract.PreviewResponse {
	return contract.PreviewResponse{Errors: nonNil(is.errors), Warnings: nonNil(is.warnings)}
}

func createFailure(is *issues) contract.CreatePlanResponse {
	return contract.CreatePlanResponse{Errors: nonNil(is.errors), Warnings: nonNil(is.warnings)}
}

func validationResponse(r validation.Report, is *issues) contract.ValidateManualResponse {
	v := contract.ValidateManualResponse{
		IsValid:              !is.failed(),
		Errors:               nonNil(is.errors),
		Warnings:             nonNil(is.warnings),
		LessonFits:           make([]contract.LessonFitView, 0, len(r.LessonFits)),
		SuggestedDurationMin: r.SuggestedDurationMin,
	}
	for _, f := range r.LessonFits {
		v.LessonFits = append(v.LessonFits, contract.LessonFitView{
			LessonID:    f.LessonID,
			LessonTitle: f.LessonTitle,
			CourseID:    f.CourseID,
			RequiredMin: f.RequiredMin,
			SessionMin:  f.SessionMin,
			Fits:        f.Fits,
			OverflowMin: f.OverflowMin,
		})
	}
	return v
}

func requireOwner(ownerID string, is *issues) {
	if strings.TrimSpace(ownerID) == "" {
		is.fail(contract.ErrConfiguration, "owner_id", "owner id is required")
	}
}

func endPreview(ctx context.Context, uc *useCase, resp contract.PreviewResponse) {
	if resp.Preview != nil {
		uc.set("sessions", resp.Preview.TotalSessions)
		uc.set("lessons_requested", resp.Preview.UnitsRequested)
	}
	uc.set("warnings", len(resp.Warnings))
	uc.end(ctx, firstError(resp.Errors))
}

func endCreate(ctx context.Context, uc *useCase, resp contract.CreatePlanResponse) {
	uc.set("plan_id", resp.PlanID)
	uc.set("sessions_requested", resp.SessionsRequested)
	uc.set("sessions_created", resp.SessionsCreated)
	uc.set("warnings", len(resp.Warnings))
	uc.end(ctx, firstError(resp.Errors))
}

// firstError turns the first reported error back into a Go error for
// telemetry.
func firstError(errs []contract.Issue) error {
	if len(errs) == 0 {
		return nil
	}
	e := errs[0]
	return &contract.PlannerError{Code: e.Code, Field: e.Field, Message: e.Message}
}

func panicIssue(r any) contract.Issue {
	return contract.IssueFromError(&contract.PlannerError{
		Code:    contract.ErrInternal,
		Message: fmt.Sprintf("unexpected failure: %v", r),
	})
}

func nonNil(in []contract.Issue) []contract.Issue {
	if in == nil {
		return []contract.Issue{}
	}
	return in
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func marshalMeta(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
