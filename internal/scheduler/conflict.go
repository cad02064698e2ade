package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

// interval is a week-relative span in minutes since the week anchor,
// which makes cross-day rest arithmetic plain integer math.
type interval struct {
	start   int
	end     int
	shiftID string
}

func draftInterval(d *domain.DraftShift) interval {
	return interval{
		start:   d.Day*MinutesPerDay + d.StartMinute,
		end:     d.Day*MinutesPerDay + d.EndMinute,
		shiftID: d.ID,
	}
}

// publishedInterval projects a persisted shift onto the anchored week;
// ok is false when the shift lies outside it. Projection goes through
// wall-clock local time, not elapsed time, so published shifts line up
// with drafts across a DST transition.
func publishedInterval(p *domain.PlannedShift, weekStart time.Time) (interval, bool) {
	start := weekRelativeMinutes(p.StartTime, weekStart)
	end := weekRelativeMinutes(p.EndTime, weekStart)
	if end <= 0 || start >= DaysPerWeek*MinutesPerDay {
		return interval{}, false
	}
	return interval{start: start, end: end}, true
}

// weekRelativeMinutes maps t to calendar days from the anchor times
// MinutesPerDay plus the local minute of day, matching how drafts are
// projected (day*1440 + minute).
func weekRelativeMinutes(t time.Time, weekStart time.Time) int {
	local := t.In(weekStart.Location())
	return calendarDaysBetween(weekStart, local)*MinutesPerDay + local.Hour()*60 + local.Minute()
}

// calendarDaysBetween counts whole calendar days from from's date to
// to's date. Anchoring both at noon keeps the division exact on 23h and
// 25h DST days.
func calendarDaysBetween(from, to time.Time) int {
	loc := from.Location()
	fromNoon := time.Date(from.Year(), from.Month(), from.Day(), 12, 0, 0, 0, loc)
	toNoon := time.Date(to.Year(), to.Month(), to.Day(), 12, 0, 0, 0, loc)
	return int(math.Round(toNoon.Sub(fromNoon).Hours() / 24))
}

// DetectOverlaps flags every pair of same-employee drafts whose minute
// intervals strictly overlap, and every draft overlapping an existing
// published shift for that employee.
func DetectOverlaps(
	drafts []*domain.DraftShift,
	published []*domain.PlannedShift,
	weekStart time.Time,
) []domain.ScheduleWarning {
	var warnings []domain.ScheduleWarning

	byEmployee := make(map[int64][]*domain.DraftShift)
	for _, d := range drafts {
		if d.EmployeeID == nil {
			continue
		}
		byEmployee[*d.EmployeeID] = append(byEmployee[*d.EmployeeID], d)
	}

	employeeIDs := sortedEmployeeIDs(byEmployee)
	for _, empID := range employeeIDs {
		group := byEmployee[empID]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Day != group[j].Day {
				return group[i].Day < group[j].Day
			}
			return group[i].StartMinute < group[j].StartMinute
		})

		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.Day != b.Day {
					continue
				}
				if overlaps(a.StartMinute, a.EndMinute, b.StartMinute, b.EndMinute) {
					day := a.Day
					id := empID
					warnings = append(warnings, domain.ScheduleWarning{
						Kind:     domain.WarningConflict,
						Severity: domain.SeverityCritical,
						Message: fmt.Sprintf("employee %d is double-booked on %s (%s-%s overlaps %s-%s)",
							empID, DayName(day),
							FormatMinute(a.StartMinute), FormatMinute(a.EndMinute),
							FormatMinute(b.StartMinute), FormatMinute(b.EndMinute)),
						Day:        &day,
						EmployeeID: &id,
						ShiftID:    a.ID,
					})
				}
			}
		}

		for _, d := range group {
			di := draftInterval(d)
			for _, p := range published {
				if p.EmployeeID != empID || p.Status == domain.ShiftStatusCompleted {
					continue
				}
				pi, ok := publishedInterval(p, weekStart)
				if !ok {
					continue
				}
				if overlaps(di.start, di.end, pi.start, pi.end) {
					day := d.Day
					id := empID
					warnings = append(warnings, domain.ScheduleWarning{
						Kind:     domain.WarningConflict,
						Severity: domain.SeverityCritical,
						Message: fmt.Sprintf("employee %d already has a published shift overlapping %s %s-%s",
							empID, DayName(day), FormatMinute(d.StartMinute), FormatMinute(d.EndMinute)),
						Day:        &day,
						EmployeeID: &id,
						ShiftID:    d.ID,
					})
				}
			}
		}
	}

	return warnings
}

// DetectOvertime sums weekly minutes per employee across drafts plus
// non-completed published shifts and flags totals above the cap.
func DetectOvertime(
	drafts []*domain.DraftShift,
	published []*domain.PlannedShift,
	weekStart time.Time,
	maxHoursPerWeek float64,
) []domain.ScheduleWarning {
	minutes := make(map[int64]int)
	for _, d := range drafts {
		if d.EmployeeID == nil || d.EndMinute <= d.StartMinute {
			continue
		}
		minutes[*d.EmployeeID] += d.DurationMinutes()
	}
	for _, p := range published {
		if p.Status == domain.ShiftStatusCompleted {
			continue
		}
		if _, ok := publishedInterval(p, weekStart); !ok {
			continue
		}
		minutes[p.EmployeeID] += int(p.EndTime.Sub(p.StartTime).Minutes())
	}

	capMinutes := int(maxHoursPerWeek * 60)
	var warnings []domain.ScheduleWarning
	for _, empID := range sortedEmployeeIDs(minutes) {
		total := minutes[empID]
		if total <= capMinutes {
			continue
		}
		id := empID
		warnings = append(warnings, domain.ScheduleWarning{
			Kind:     domain.WarningOvertime,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("employee %d is scheduled %.1fh, above the %.0fh weekly cap",
				empID, float64(total)/60, maxHoursPerWeek),
			EmployeeID: &id,
		})
	}
	return warnings
}

// DetectRestViolations sorts each employee's shifts by week-relative
// start and flags consecutive pairs whose gap is below the minimum.
func DetectRestViolations(
	drafts []*domain.DraftShift,
	published []*domain.PlannedShift,
	weekStart time.Time,
	minRestHours float64,
) []domain.ScheduleWarning {
	spans := make(map[int64][]interval)
	for _, d := range drafts {
		if d.EmployeeID == nil || d.EndMinute <= d.StartMinute {
			continue
		}
		spans[*d.EmployeeID] = append(spans[*d.EmployeeID], draftInterval(d))
	}
	for _, p := range published {
		if p.Status == domain.ShiftStatusCompleted {
			continue
		}
		if pi, ok := publishedInterval(p, weekStart); ok {
			spans[p.EmployeeID] = append(spans[p.EmployeeID], pi)
		}
	}

	minRest := int(minRestHours * 60)
	var warnings []domain.ScheduleWarning
	for _, empID := range sortedEmployeeIDs(spans) {
		list := spans[empID]
		sort.Slice(list, func(i, j int) bool { return list[i].start < list[j].start })
		for i := 1; i < len(list); i++ {
			gap := list[i].start - list[i-1].end
			if gap < 0 {
				// overlap, reported by DetectOverlaps
				continue
			}
			if gap < minRest {
				id := empID
				warnings = append(warnings, domain.ScheduleWarning{
					Kind:     domain.WarningRestViolation,
					Severity: domain.SeverityWarning,
					Message: fmt.Sprintf("employee %d has only %.1fh rest before their next shift (minimum %.0fh)",
						empID, float64(gap)/60, minRestHours),
					EmployeeID: &id,
					ShiftID:    list[i].shiftID,
				})
			}
		}
	}
	return warnings
}

func sortedEmployeeIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
