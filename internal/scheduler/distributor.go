package scheduler

import (
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// DefaultHorizonDays bounds how far ahead the engine scans for capacity.
const DefaultHorizonDays = 365

// DistributeOptions controls a single distribution pass.
type DistributeOptions struct {
	// Start is the first calendar day considered. Only its date is used.
	Start time.Time
	// End, when set, is the last calendar day that may receive a session.
	End *time.Time
	// HorizonDays caps the number of calendar days scanned.
	HorizonDays int
	// WeeklyCap limits sessions per Sunday-to-Saturday week; 0 means no cap.
	WeeklyCap int
	// Breaks is the plan's rest schedule used to annotate sessions.
	Breaks []domain.Break
	// FitAgainstMin, when positive, records each lesson's fit against this
	// configured session length.
	FitAgainstMin int
}

// DistributeResult is the outcome of a distribution pass. Running out of
// horizon or hitting the end date is not an error: Placed < Requested.
type DistributeResult struct {
	Sessions         []domain.ScheduledSession
	Requested        int
	Placed           int
	HorizonExhausted bool
	EndReached       bool
}

// Complete reports whether every unit was placed.
func (r DistributeResult) Complete() bool {
	return r.Placed == r.Requested
}

// Distribute walks calendar days from opts.Start and assigns units in order
// to available blocks. The pass is deterministic: identical inputs yield an
// identical session list.
func Distribute(units []domain.SchedulableUnit, avail *Availability, opts DistributeOptions) DistributeResult {
	res := DistributeResult{Requested: len(units)}
	if len(units) == 0 || avail == nil || avail.EnabledDayCount() == 0 {
		return res
	}

	horizon := opts.HorizonDays
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	minMin, maxMin := avail.SessionBounds()
	start := domain.DateOf(opts.Start)

	next := 0
	weekCount := 0
	day := 0
	for ; day < horizon && next < len(units); day++ {
		date := domain.AddDays(start, day)
		if opts.End != nil && date.After(domain.DateOf(*opts.End)) {
			res.EndReached = true
			break
		}
		wd := date.Weekday()
		if wd == time.Sunday && day > 0 {
			weekCount = 0
		}
		if !avail.Enabled(wd) {
			continue
		}

		capacity := avail.Capacity(wd)
		for i := 0; i < capacity && next < len(units); i++ {
			if opts.WeeklyCap > 0 && weekCount >= opts.WeeklyCap {
				break
			}
			u := units[next]
			block := avail.BlockAt(wd, i)
			duration := domain.ClampInt(u.EstimatedMin, minMin, maxMin)
			startAt := time.Date(date.Year(), date.Month(), date.Day(), 0, block.StartMin, 0, 0, date.Location())

			s := domain.ScheduledSession{
				Day:         wd,
				Date:        date,
				Week:        day/7 + 1,
				Slot:        block.Slot,
				CourseID:    u.CourseID,
				CourseTitle: u.CourseTitle,
				ModuleID:    u.ModuleID,
				LessonID:    u.LessonID,
				LessonTitle: u.LessonTitle,
				DurationMin: duration,
				Start:       startAt,
				End:         startAt.Add(time.Duration(duration) * time.Minute),
				Breaks:      AnnotateBreaks(opts.Breaks, duration),
			}
			if opts.FitAgainstMin > 0 {
				s.Fit = lessonFit(u.EstimatedMin, opts.FitAgainstMin)
			}
			res.Sessions = append(res.Sessions, s)
			next++
			weekCount++
		}
	}

	res.Placed = next
	if next < len(units) && !res.EndReached && day >= horizon {
		res.HorizonExhausted = true
	}
	return res
}

func lessonFit(requiredMin, sessionMin int) *domain.LessonFit {
	if requiredMin <= sessionMin {
		return &domain.LessonFit{Fits: true}
	}
	return &domain.LessonFit{Fits: false, OverflowMin: requiredMin - sessionMin}
}
