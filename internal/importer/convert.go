package importer

import (
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
)

// Catalog is a converted catalog file ready for persistence.
type Catalog struct {
	Courses  []*repository.CourseRecord
	Progress []ProgressImport
}

// Convert transforms a validated CatalogFile into course records.
// Call ValidateCatalog first; Convert assumes the file is valid.
func Convert(file *CatalogFile) *Catalog {
	out := &Catalog{Progress: file.Progress}
	for _, c := range file.Courses {
		rec := &repository.CourseRecord{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Level:       domain.CourseLevel(domain.CoalesceStr(c.Level, string(domain.LevelIntermediate))),
			Category:    domain.CourseCategory(domain.CoalesceStr(c.Category, string(domain.CategoryPractical))),
		}
		for i, m := range c.Modules {
			mod := repository.ModuleRecord{
				ID:         m.ID,
				Title:      m.Title,
				OrderIndex: intOr(i, m.Order),
				Published:  boolOr(true, m.Published),
			}
			for j, l := range m.Lessons {
				mod.Lessons = append(mod.Lessons, repository.LessonRecord{
					ID:           l.ID,
					Title:        l.Title,
					OrderIndex:   intOr(j, l.Order),
					EstimatedMin: l.EstimatedMin,
					Published:    boolOr(true, l.Published),
				})
			}
			rec.Modules = append(rec.Modules, mod)
		}
		out.Courses = append(out.Courses, rec)
	}
	return out
}

// LessonCount returns the number of lessons across all courses.
func (c *Catalog) LessonCount() int {
	n := 0
	for _, course := range c.Courses {
		for _, m := range course.Modules {
			n += len(m.Lessons)
		}
	}
	return n
}

func intOr(fallback int, p *int) int {
	if p != nil {
		return *p
	}
	return fallback
}

func boolOr(fallback bool, p *bool) bool {
	if p != nil {
		return *p
	}
	return fallback
}
