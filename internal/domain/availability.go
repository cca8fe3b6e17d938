package domain

import (
	"fmt"
	"time"
)

// TimeSlot names a recurring block of the day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
	SlotNight     TimeSlot = "night"
)

// TimeBlock is a window of the day expressed in minutes since midnight.
type TimeBlock struct {
	Slot     TimeSlot
	StartMin int
	EndMin   int
}

var slotBlocks = map[TimeSlot]TimeBlock{
	SlotMorning:   {Slot: SlotMorning, StartMin: 6 * 60, EndMin: 12 * 60},
	SlotAfternoon: {Slot: SlotAfternoon, StartMin: 12 * 60, EndMin: 18 * 60},
	SlotEvening:   {Slot: SlotEvening, StartMin: 18 * 60, EndMin: 22 * 60},
	SlotNight:     {Slot: SlotNight, StartMin: 22 * 60, EndMin: 24 * 60},
}

// BlockForSlot resolves a named slot to its canonical time window.
func BlockForSlot(slot TimeSlot) (TimeBlock, bool) {
	b, ok := slotBlocks[slot]
	return b, ok
}

// Valid reports whether the block ends after it starts.
func (b TimeBlock) Valid() bool {
	return b.EndMin > b.StartMin && b.StartMin >= 0
}

// StartClock returns the block start as HH:MM.
func (b TimeBlock) StartClock() string {
	return fmt.Sprintf("%02d:%02d", b.StartMin/60, b.StartMin%60)
}

// DaySchedule is the template for one weekday.
type DaySchedule struct {
	Day         time.Weekday
	Enabled     bool
	Blocks      []TimeBlock
	MaxSessions int
}

// AvailabilityPattern is the learner's recurring weekly template.
type AvailabilityPattern struct {
	Days          []DaySchedule
	MinSessionMin int
	MaxSessionMin int
	SessionType   SessionType
}

// EnabledDays counts distinct enabled weekdays.
func (p AvailabilityPattern) EnabledDays() int {
	seen := make(map[time.Weekday]bool)
	for _, d := range p.Days {
		if d.Enabled {
			seen[d.Day] = true
		}
	}
	return len(seen)
}
