package domain

// SessionTypeRange is the recommended duration band of a session type.
type SessionTypeRange struct {
	Type           SessionType
	MinMin         int
	MaxMin         int
	RecommendedMin int
}

// SessionTypeRanges lists the bands from shortest to longest.
var SessionTypeRanges = []SessionTypeRange{
	{Type: SessionShort, MinMin: 20, MaxMin: 35, RecommendedMin: 30},
	{Type: SessionMedium, MinMin: 45, MaxMin: 60, RecommendedMin: 60},
	{Type: SessionLong, MinMin: 75, MaxMin: 120, RecommendedMin: 90},
}

const pomodoroCycleMin = 30

// RangeFor returns the duration band for t. Unknown types resolve to medium.
func RangeFor(t SessionType) SessionTypeRange {
	for _, r := range SessionTypeRanges {
		if r.Type == t {
			return r
		}
	}
	return SessionTypeRanges[1]
}

// RecommendedDuration returns the fixed session length used for generated
// plans. With pomodoro enabled it is rounded up to whole 25+5 cycles.
func RecommendedDuration(t SessionType, pomodoro bool) int {
	d := RangeFor(t).RecommendedMin
	if pomodoro {
		cycles := (d + pomodoroCycleMin - 1) / pomodoroCycleMin
		return cycles * pomodoroCycleMin
	}
	return d
}

// LongestRange returns the widest band; suggestions never exceed its upper bound.
func LongestRange() SessionTypeRange {
	return SessionTypeRanges[len(SessionTypeRanges)-1]
}
