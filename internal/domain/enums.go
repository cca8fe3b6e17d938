package domain

type SessionType string

const (
	SessionShort  SessionType = "short"
	SessionMedium SessionType = "medium"
	SessionLong   SessionType = "long"
)

type GenerationMode string

const (
	ModeManual      GenerationMode = "manual"
	ModeAIGenerated GenerationMode = "ai_generated"
)

type SessionStatus string

const (
	StatusPending    SessionStatus = "pending"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusMissed     SessionStatus = "missed"
	StatusSkipped    SessionStatus = "skipped"
)

// IsTerminal reports whether no further transition is expected for the status.
func (s SessionStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusMissed, StatusSkipped:
		return true
	}
	return false
}

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

type CourseCategory string

const (
	CategoryTechnical   CourseCategory = "technical"
	CategoryDataScience CourseCategory = "data-science"
	CategoryConceptual  CourseCategory = "conceptual"
	CategoryLeadership  CourseCategory = "leadership"
	CategoryPractical   CourseCategory = "practical"
	CategoryCreativity  CourseCategory = "creativity"
	CategoryTheoretical CourseCategory = "theoretical"
)

type LearningPace string

const (
	PaceRelaxed   LearningPace = "relaxed"
	PaceModerate  LearningPace = "moderate"
	PaceIntensive LearningPace = "intensive"
)

type PriorityFocus string

const (
	FocusCompletion PriorityFocus = "completion"
	FocusRetention  PriorityFocus = "retention"
	FocusBalanced   PriorityFocus = "balanced"
)

type ReviewStrategy string

const (
	ReviewSpacedRepetition ReviewStrategy = "spaced_repetition"
	ReviewMassedPractice   ReviewStrategy = "massed_practice"
	ReviewMixed            ReviewStrategy = "mixed"
)

type ContentOrdering string

const (
	OrderSequential      ContentOrdering = "sequential"
	OrderInterleaved     ContentOrdering = "interleaved"
	OrderDifficultyBased ContentOrdering = "difficulty_based"
	OrderAIOptimized     ContentOrdering = "ai_optimized"
)

type BreakType string

const (
	BreakShort BreakType = "short"
	BreakLong  BreakType = "long"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidSessionTypes is the canonical set of accepted session type strings.
var ValidSessionTypes = map[SessionType]bool{
	SessionShort: true, SessionMedium: true, SessionLong: true,
}

// ValidContentOrderings is the canonical set of accepted ordering strings.
var ValidContentOrderings = map[ContentOrdering]bool{
	OrderSequential: true, OrderInterleaved: true,
	OrderDifficultyBased: true, OrderAIOptimized: true,
}

var ValidLearningPaces = map[LearningPace]bool{
	PaceRelaxed: true, PaceModerate: true, PaceIntensive: true,
}

var ValidPriorityFocuses = map[PriorityFocus]bool{
	FocusCompletion: true, FocusRetention: true, FocusBalanced: true,
}

var ValidReviewStrategies = map[ReviewStrategy]bool{
	ReviewSpacedRepetition: true, ReviewMassedPractice: true, ReviewMixed: true,
}

var ValidCourseLevels = map[CourseLevel]bool{
	LevelBeginner: true, LevelIntermediate: true, LevelAdvanced: true,
}

var ValidCourseCategories = map[CourseCategory]bool{
	CategoryTechnical: true, CategoryDataScience: true, CategoryConceptual: true,
	CategoryLeadership: true, CategoryPractical: true, CategoryCreativity: true,
	CategoryTheoretical: true,
}
