package scheduler

import "github.com/alexanderramin/studyplanner/internal/domain"

// Default rest settings used when a request leaves them unset.
const (
	DefaultMinStudyMin = 25
	DefaultMinRestMin  = 5
)

// Long break length bounds. The floor is 10, not 15: a five-minute rest
// preference must yield a ten-minute long break, double the short one.
const (
	longBreakFloorMin = 10
	longBreakCapMin   = 30
)

// BreakPolicy derives the rest schedule for a plan from the learner's
// minimum study length, maximum session length and minimum rest length.
// The result is strictly increasing by AfterMin and holds at most one long
// break.
func BreakPolicy(minStudyMin, maxStudyMin, minRestMin int) []domain.Break {
	shortInterval := domain.ClampInt(minStudyMin, 25, 30)
	shortDuration := max(5, minRestMin)
	longThreshold := min(90, maxStudyMin*67/100)
	longDuration := domain.ClampInt(minRestMin*2, longBreakFloorMin, longBreakCapMin)

	var out []domain.Break
	if longThreshold > 0 && maxStudyMin >= longThreshold {
		for at := shortInterval; at < longThreshold; at += shortInterval {
			out = append(out, domain.Break{AfterMin: at, DurationMin: shortDuration, Type: domain.BreakShort})
		}
		out = append(out, domain.Break{AfterMin: longThreshold, DurationMin: longDuration, Type: domain.BreakLong})
		return out
	}
	for at := shortInterval; at <= maxStudyMin; at += shortInterval {
		out = append(out, domain.Break{AfterMin: at, DurationMin: shortDuration, Type: domain.BreakShort})
	}
	return out
}

// AnnotateBreaks returns the breaks that fall strictly inside a session of
// the given length. Sessions are annotated, never split.
func AnnotateBreaks(policy []domain.Break, durationMin int) []domain.Break {
	var out []domain.Break
	for _, b := range policy {
		if b.AfterMin >= durationMin {
			break
		}
		out = append(out, b)
	}
	return out
}
