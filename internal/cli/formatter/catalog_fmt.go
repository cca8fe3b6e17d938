package formatter

import (
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/repository"
)

// FormatCourses renders the course listing.
func FormatCourses(courses []repository.CourseSummary) string {
	if len(courses) == 0 {
		return "No courses found. Import a catalog first.\n"
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			c.ID,
			Bold(c.Title),
			dash(string(c.Level)),
			StylePurple.Render(string(c.Category)),
			fmt.Sprintf("%d", c.LessonCount),
			FormatMinutes(c.TotalMin),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "LEVEL", "CATEGORY", "LESSONS", "TOTAL"}, rows)
}
