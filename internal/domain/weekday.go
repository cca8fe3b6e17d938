package domain

import (
	"fmt"
	"strings"
	"time"
)

var weekdayLabels = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayLabel returns the lowercase label used in stored schedules.
func WeekdayLabel(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayLabels[d]
}

// ParseWeekdayLabel is the inverse of WeekdayLabel. Matching is case-insensitive.
func ParseWeekdayLabel(label string) (time.Weekday, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	for i, name := range weekdayLabels {
		if name == l {
			return time.Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday label %q", label)
}

// WeekdayFromIndex converts the boundary encoding (0=Sunday..6=Saturday).
func WeekdayFromIndex(i int) (time.Weekday, error) {
	if i < 0 || i > 6 {
		return 0, fmt.Errorf("weekday index %d out of range 0..6", i)
	}
	return time.Weekday(i), nil
}
