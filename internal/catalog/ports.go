package catalog

import (
	"context"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// LessonContent is one lesson as the content source describes it.
type LessonContent struct {
	ID           string
	Title        string
	OrderIndex   int
	EstimatedMin *int
}

// ModuleContent groups lessons inside a course.
type ModuleContent struct {
	ID         string
	Title      string
	OrderIndex int
	Lessons    []LessonContent
}

// CourseContent is the course tree returned by a CourseSource.
type CourseContent struct {
	ID       string
	Title    string
	Level    domain.CourseLevel
	Category domain.CourseCategory
	Modules  []ModuleContent
}

// CourseLookup is the explicit optional result of a course fetch. Found is
// false when the course does not exist; that is a content gap, not an error.
type CourseLookup struct {
	Content CourseContent
	Found   bool
}

// CourseSource supplies the module/lesson tree of a course.
type CourseSource interface {
	LookupCourse(ctx context.Context, courseID string) (CourseLookup, error)
}

// ProgressSource reports which lessons a learner has already started.
type ProgressSource interface {
	StartedLessons(ctx context.Context, ownerID string, courseIDs []string) (map[string]bool, error)
}

// Selection is one course the learner picked, with optional overrides for
// the catalog's level and category.
type Selection struct {
	CourseID string
	Level    domain.CourseLevel
	Category domain.CourseCategory
}
