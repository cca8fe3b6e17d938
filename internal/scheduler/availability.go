package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// Availability answers capacity questions over a recurring weekly pattern.
type Availability struct {
	days   [7]dayCapacity
	minMin int
	maxMin int
}

type dayCapacity struct {
	enabled  bool
	capacity int
	blocks   []domain.TimeBlock
}

// NewAvailability normalizes a pattern into a lookup table. Invalid or
// duplicate blocks are dropped and reported as warnings; a day listed twice
// keeps its first definition. A minimum session length above the maximum is
// an error.
func NewAvailability(p domain.AvailabilityPattern) (*Availability, []domain.ValidationIssue) {
	a := &Availability{minMin: p.MinSessionMin, maxMin: p.MaxSessionMin}
	var issues []domain.ValidationIssue
	if p.MinSessionMin > p.MaxSessionMin {
		issues = append(issues, domain.ValidationIssue{
			Field:    FieldSessionDuration,
			Message:  fmt.Sprintf("minimum session length %d exceeds the maximum %d", p.MinSessionMin, p.MaxSessionMin),
			Severity: domain.SeverityError,
		})
	}
	var seenDay [7]bool

	for _, ds := range p.Days {
		if ds.Day < time.Sunday || ds.Day > time.Saturday {
			issues = append(issues, warning("days", fmt.Sprintf("weekday %d is not mapped and was ignored", ds.Day)))
			continue
		}
		if seenDay[ds.Day] {
			issues = append(issues, warning("days", fmt.Sprintf("%s is listed more than once; using the first entry", domain.WeekdayLabel(ds.Day))))
			continue
		}
		seenDay[ds.Day] = true
		if !ds.Enabled {
			continue
		}

		seenSlot := make(map[domain.TimeBlock]bool)
		var blocks []domain.TimeBlock
		for _, b := range ds.Blocks {
			if !b.Valid() {
				issues = append(issues, warning("time_slots", fmt.Sprintf("%s: block %q ends before it starts and was dropped", domain.WeekdayLabel(ds.Day), b.Slot)))
				continue
			}
			if seenSlot[b] {
				issues = append(issues, warning("time_slots", fmt.Sprintf("%s: duplicate block %q was dropped", domain.WeekdayLabel(ds.Day), b.Slot)))
				continue
			}
			seenSlot[b] = true
			blocks = append(blocks, b)
		}
		if len(blocks) == 0 {
			continue
		}

		capacity := ds.MaxSessions
		if capacity < 1 {
			capacity = 1
		}
		a.days[ds.Day] = dayCapacity{enabled: true, capacity: capacity, blocks: blocks}
	}
	return a, issues
}

// Enabled reports whether the weekday can host sessions.
func (a *Availability) Enabled(d time.Weekday) bool {
	return a.days[d].enabled
}

// Capacity returns the maximum number of sessions on the weekday.
func (a *Availability) Capacity(d time.Weekday) int {
	if !a.days[d].enabled {
		return 0
	}
	return a.days[d].capacity
}

// Blocks returns the ordered time blocks of the weekday.
func (a *Availability) Blocks(d time.Weekday) []domain.TimeBlock {
	return a.days[d].blocks
}

// BlockAt picks the i-th block of the day, cycling when the day allows more
// sessions than it has distinct blocks.
func (a *Availability) BlockAt(d time.Weekday, i int) domain.TimeBlock {
	blocks := a.days[d].blocks
	return blocks[i%len(blocks)]
}

// EnabledDayCount counts the weekdays that have at least one usable block.
func (a *Availability) EnabledDayCount() int {
	n := 0
	for _, dc := range a.days {
		if dc.enabled {
			n++
		}
	}
	return n
}

// SessionBounds returns the min and max session duration.
func (a *Availability) SessionBounds() (int, int) {
	return a.minMin, a.maxMin
}

// ResolveSlots maps slot names to blocks, dropping unknown and repeated names.
func ResolveSlots(day time.Weekday, names []string) ([]domain.TimeBlock, []domain.ValidationIssue) {
	var blocks []domain.TimeBlock
	var issues []domain.ValidationIssue
	seen := make(map[domain.TimeSlot]bool)
	for _, n := range names {
		slot := domain.TimeSlot(n)
		b, ok := domain.BlockForSlot(slot)
		if !ok {
			issues = append(issues, warning("time_slots", fmt.Sprintf("%s: unknown time slot %q was dropped", domain.WeekdayLabel(day), n)))
			continue
		}
		if seen[slot] {
			issues = append(issues, warning("time_slots", fmt.Sprintf("%s: duplicate time slot %q was dropped", domain.WeekdayLabel(day), n)))
			continue
		}
		seen[slot] = true
		blocks = append(blocks, b)
	}
	return blocks, issues
}

// FieldSessionDuration is the field reported for inconsistent session bounds.
const FieldSessionDuration = "session_duration_minutes"

func warning(field, msg string) domain.ValidationIssue {
	return domain.ValidationIssue{Field: field, Message: msg, Severity: domain.SeverityWarning}
}
