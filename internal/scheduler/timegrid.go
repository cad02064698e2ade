package scheduler

import "time"

const (
	// GridStep is the snapping and bucket granularity in minutes.
	GridStep = 15
	// MinutesPerDay bounds every minute-of-day value.
	MinutesPerDay = 24 * 60
	// DaysPerWeek with Monday = 0.
	DaysPerWeek = 7
)

// NormalizedWeekStart floors t to the Monday-anchored week start at
// midnight in loc. Every week-scoped comparison must go through this so
// DST transitions cannot shift the anchor.
func NormalizedWeekStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	daysBack := (int(local.Weekday()) + 6) % 7 // Monday -> 0, Sunday -> 6
	monday := local.AddDate(0, 0, -daysBack)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
}

// DateForDay resolves day (0-6, Monday = 0) within the week anchored at
// weekStart to a concrete midnight in weekStart's location.
func DateForDay(weekStart time.Time, day int) time.Time {
	return weekStart.AddDate(0, 0, day)
}

// AbsoluteTime converts a (day, minute-of-day) pair into a timestamp.
// Going through Date rather than Add keeps the result correct across
// DST boundaries.
func AbsoluteTime(weekStart time.Time, day int, minute int) time.Time {
	d := DateForDay(weekStart, day)
	return time.Date(d.Year(), d.Month(), d.Day(), minute/60, minute%60, 0, 0, d.Location())
}

// Snap rounds minutes to the nearest grid step; exact half steps round
// down so snapping is stable.
func Snap(minutes int) int {
	return SnapTo(minutes, GridStep)
}

// SnapTo rounds minutes to the nearest multiple of step.
func SnapTo(minutes, step int) int {
	if step <= 0 {
		return minutes
	}
	rem := ((minutes % step) + step) % step
	base := minutes - rem
	if rem*2 > step {
		return base + step
	}
	return base
}

// Clamp bounds v to [min, max].
func Clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// SameDate reports whether a and b fall on the same calendar day in a's
// location.
func SameDate(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// overlaps is the strict interval intersection test used for conflict
// and override checks.
func overlaps(startA, endA, startB, endB int) bool {
	return max(startA, startB) < min(endA, endB)
}

// contains uses inclusive bounds: the outer interval must fully hold
// the inner one.
func contains(outerStart, outerEnd, innerStart, innerEnd int) bool {
	return outerStart <= innerStart && outerEnd >= innerEnd
}
