package importer

import (
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// ValidateCatalog checks the catalog for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCatalog(file *CatalogFile) []error {
	var errs []error

	if len(file.Courses) == 0 {
		errs = append(errs, fmt.Errorf("courses: at least one course is required"))
	}

	courseIDs := make(map[string]bool)
	moduleIDs := make(map[string]bool)
	lessonIDs := make(map[string]bool)
	for i, c := range file.Courses {
		prefix := fmt.Sprintf("courses[%d]", i)
		errs = append(errs, checkID(prefix, c.ID, courseIDs)...)
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if c.Level != "" && !domain.ValidCourseLevels[domain.CourseLevel(c.Level)] {
			errs = append(errs, fmt.Errorf("%s.level: invalid value %q", prefix, c.Level))
		}
		if c.Category != "" && !domain.ValidCourseCategories[domain.CourseCategory(c.Category)] {
			errs = append(errs, fmt.Errorf("%s.category: invalid value %q", prefix, c.Category))
		}
		errs = append(errs, validateModules(prefix, c.Modules, moduleIDs, lessonIDs)...)
	}

	for i, p := range file.Progress {
		prefix := fmt.Sprintf("progress[%d]", i)
		if p.OwnerID == "" {
			errs = append(errs, fmt.Errorf("%s.owner_id is required", prefix))
		}
		if p.LessonID == "" {
			errs = append(errs, fmt.Errorf("%s.lesson_id is required", prefix))
		} else if !lessonIDs[p.LessonID] {
			errs = append(errs, fmt.Errorf("%s.lesson_id: lesson %q not found in courses", prefix, p.LessonID))
		}
		if p.Percent < 0 || p.Percent > 100 {
			errs = append(errs, fmt.Errorf("%s.progress_pct must be between 0 and 100, got %g", prefix, p.Percent))
		}
	}

	return errs
}

func validateModules(coursePrefix string, modules []ModuleImport, moduleIDs, lessonIDs map[string]bool) []error {
	var errs []error
	for i, m := range modules {
		prefix := fmt.Sprintf("%s.modules[%d]", coursePrefix, i)
		errs = append(errs, checkID(prefix, m.ID, moduleIDs)...)
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if m.Order != nil && *m.Order < 0 {
			errs = append(errs, fmt.Errorf("%s.order must not be negative", prefix))
		}
		for j, l := range m.Lessons {
			lp := fmt.Sprintf("%s.lessons[%d]", prefix, j)
			errs = append(errs, checkID(lp, l.ID, lessonIDs)...)
			if l.Title == "" {
				errs = append(errs, fmt.Errorf("%s.title is required", lp))
			}
			if l.Order != nil && *l.Order < 0 {
				errs = append(errs, fmt.Errorf("%s.order must not be negative", lp))
			}
			if l.EstimatedMin != nil && *l.EstimatedMin <= 0 {
				errs = append(errs, fmt.Errorf("%s.estimated_minutes must be positive", lp))
			}
		}
	}
	return errs
}

func checkID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}
