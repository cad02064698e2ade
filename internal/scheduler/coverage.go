package scheduler

import (
	"fmt"
	"sort"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

// TimeWindow is the visible slice of the day the evaluator accounts
// for, in minutes since midnight.
type TimeWindow struct {
	StartMinute int
	EndMinute   int
}

// DefaultWindow covers the whole day.
func DefaultWindow() TimeWindow {
	return TimeWindow{StartMinute: 0, EndMinute: MinutesPerDay}
}

// Snapped aligns the window outward to the bucket grid.
func (w TimeWindow) Snapped() TimeWindow {
	start := w.StartMinute - (((w.StartMinute % GridStep) + GridStep) % GridStep)
	end := w.EndMinute
	if rem := ((end % GridStep) + GridStep) % GridStep; rem != 0 {
		end += GridStep - rem
	}
	return TimeWindow{
		StartMinute: Clamp(start, 0, MinutesPerDay),
		EndMinute:   Clamp(end, 0, MinutesPerDay),
	}
}

// CoverageEvaluation is the bucketized heat-map state for one week of
// drafts, plus the per-day uncovered warnings derived from it.
type CoverageEvaluation struct {
	Buckets  []domain.CoverageBucket
	Warnings []domain.ScheduleWarning
}

type bucketKey struct {
	day   int
	start int
}

// EvaluateCoverage quantifies, per 15-minute bucket, whether the drafts
// meet the requirements inside the visible window. It is a pure
// headcount pass: role matching is the validator's job. Uncovered
// warnings are emitted once per day at the first uncovered bucket so a
// long gap does not flood the UI.
func EvaluateCoverage(
	requirements []domain.CoverageRequirement,
	drafts []*domain.DraftShift,
	window TimeWindow,
) CoverageEvaluation {
	window = window.Snapped()

	needed := make(map[bucketKey]int)
	assigned := make(map[bucketKey]int)

	for _, req := range requirements {
		head := req.Headcount
		if head < 1 {
			head = 1
		}
		forEachBucket(req.Day, req.StartMinute, req.EndMinute, window, func(k bucketKey) {
			needed[k] += head
		})
	}

	for _, shift := range drafts {
		forEachBucket(shift.Day, shift.StartMinute, shift.EndMinute, window, func(k bucketKey) {
			assigned[k]++
		})
	}

	keys := make([]bucketKey, 0, len(needed)+len(assigned))
	seen := make(map[bucketKey]bool, len(needed)+len(assigned))
	for k := range needed {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range assigned {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].start < keys[j].start
	})

	eval := CoverageEvaluation{
		Buckets: make([]domain.CoverageBucket, 0, len(keys)),
	}
	warnedDays := make(map[int]bool)
	for _, k := range keys {
		b := domain.CoverageBucket{
			Day:         k.day,
			StartMinute: k.start,
			Needed:      needed[k],
			Assigned:    assigned[k],
		}
		b.Delta = b.Assigned - b.Needed
		eval.Buckets = append(eval.Buckets, b)

		if b.Delta < 0 && !warnedDays[k.day] {
			warnedDays[k.day] = true
			day := k.day
			eval.Warnings = append(eval.Warnings, domain.ScheduleWarning{
				Kind:     domain.WarningUncovered,
				Severity: domain.SeverityCritical,
				Message: fmt.Sprintf("%s has uncovered time starting at %s (%d short)",
					DayName(day), FormatMinute(k.start), -b.Delta),
				Day: &day,
			})
		}
	}

	return eval
}

// UncoveredBucketDeficit sums how many person-buckets are missing
// across the evaluation; the scorer penalizes this directly.
func (e CoverageEvaluation) UncoveredBucketDeficit() int {
	total := 0
	for _, b := range e.Buckets {
		if b.Delta < 0 {
			total += -b.Delta
		}
	}
	return total
}

// OverCoverageSurplus sums wasted person-buckets above requirements.
func (e CoverageEvaluation) OverCoverageSurplus() int {
	total := 0
	for _, b := range e.Buckets {
		if b.Needed > 0 && b.Delta > 0 {
			total += b.Delta
		}
	}
	return total
}

func forEachBucket(day, startMin, endMin int, window TimeWindow, fn func(bucketKey)) {
	if day < 0 || day >= DaysPerWeek || endMin <= startMin {
		return
	}
	start := max(startMin, window.StartMinute)
	end := min(endMin, window.EndMinute)
	if end <= start {
		return
	}
	// clip to the grid so partial buckets still count once
	first := start - (((start % GridStep) + GridStep) % GridStep)
	for b := first; b < end; b += GridStep {
		if b+GridStep <= start {
			continue
		}
		fn(bucketKey{day: day, start: b})
	}
}

var dayNames = [DaysPerWeek]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayName maps a 0-6 day index (Monday first) to its English name.
func DayName(day int) string {
	if day < 0 || day >= DaysPerWeek {
		return "unknown"
	}
	return dayNames[day]
}

// FormatMinute renders a minute-of-day as HH:MM.
func FormatMinute(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
