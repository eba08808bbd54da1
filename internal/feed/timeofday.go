package feed

import (
	"fanpulse/internal/core"
)

// TimePreference maps a wall-clock hour (0-23) to its time-of-day bucket:
// morning [6,12), afternoon [12,17), evening [17,22), night [22,6).
// Every hour lands in exactly one bucket.
func TimePreference(hour int) core.TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return core.TimeMorning
	case hour >= 12 && hour < 17:
		return core.TimeAfternoon
	case hour >= 17 && hour < 22:
		return core.TimeEvening
	default:
		return core.TimeNight
	}
}
