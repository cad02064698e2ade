package scheduler

import (
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

// AvailabilityResolver answers "can this employee work this interval"
// for one anchored week. All inputs are indexed once at construction so
// the generation loop can query it in O(windows per employee).
//
// Precedence, highest first:
//  1. an UnavailableDate on the resolved calendar date blocks the day
//  2. an IsAvailable=false override overlapping the interval blocks it
//  3. full containment in a recurring window grants it
//  4. no recurring windows at all for that weekday grants it
//  5. an IsAvailable=true override containing the interval grants it
//  6. otherwise unavailable
type AvailabilityResolver struct {
	weekStart time.Time

	windows     map[int64]map[int][]domain.AvailabilityWindow // employee -> day -> windows
	overrides   map[int64]map[int][]domain.AvailabilityOverride
	unavailable map[int64]map[int]bool
}

func NewAvailabilityResolver(
	weekStart time.Time,
	loc *time.Location,
	windows []domain.AvailabilityWindow,
	overrides []domain.AvailabilityOverride,
	unavailableDates []domain.UnavailableDate,
) *AvailabilityResolver {
	r := &AvailabilityResolver{
		weekStart:   NormalizedWeekStart(weekStart, loc),
		windows:     make(map[int64]map[int][]domain.AvailabilityWindow),
		overrides:   make(map[int64]map[int][]domain.AvailabilityOverride),
		unavailable: make(map[int64]map[int]bool),
	}

	for _, w := range windows {
		if w.Day < 0 || w.Day >= DaysPerWeek {
			continue
		}
		if r.windows[w.EmployeeID] == nil {
			r.windows[w.EmployeeID] = make(map[int][]domain.AvailabilityWindow)
		}
		r.windows[w.EmployeeID][w.Day] = append(r.windows[w.EmployeeID][w.Day], w)
	}

	// date-scoped records only matter if they land inside this week
	for _, o := range overrides {
		day, ok := r.dayForDate(o.Date)
		if !ok {
			continue
		}
		if r.overrides[o.EmployeeID] == nil {
			r.overrides[o.EmployeeID] = make(map[int][]domain.AvailabilityOverride)
		}
		r.overrides[o.EmployeeID][day] = append(r.overrides[o.EmployeeID][day], o)
	}

	for _, u := range unavailableDates {
		day, ok := r.dayForDate(u.Date)
		if !ok {
			continue
		}
		if r.unavailable[u.EmployeeID] == nil {
			r.unavailable[u.EmployeeID] = make(map[int]bool)
		}
		r.unavailable[u.EmployeeID][day] = true
	}

	return r
}

func (r *AvailabilityResolver) dayForDate(date time.Time) (int, bool) {
	for day := 0; day < DaysPerWeek; day++ {
		if SameDate(DateForDay(r.weekStart, day), date) {
			return day, true
		}
	}
	return 0, false
}

// IsAvailable resolves the precedence chain for one requested interval.
// Zero or negative length intervals are never available.
func (r *AvailabilityResolver) IsAvailable(employeeID int64, day, startMin, endMin int) bool {
	if endMin <= startMin || day < 0 || day >= DaysPerWeek {
		return false
	}

	if r.unavailable[employeeID][day] {
		return false
	}

	dayOverrides := r.overrides[employeeID][day]
	for _, o := range dayOverrides {
		if !o.IsAvailable && overlaps(o.StartMinute, o.EndMinute, startMin, endMin) {
			return false
		}
	}

	dayWindows := r.windows[employeeID][day]
	for _, w := range dayWindows {
		if contains(w.StartMinute, w.EndMinute, startMin, endMin) {
			return true
		}
	}

	// no recorded windows for this weekday: absence of data is not
	// evidence of unavailability
	if len(dayWindows) == 0 {
		return true
	}

	for _, o := range dayOverrides {
		if o.IsAvailable && contains(o.StartMinute, o.EndMinute, startMin, endMin) {
			return true
		}
	}

	return false
}

// HasWindows reports whether the employee submitted any recurring
// windows for the given weekday.
func (r *AvailabilityResolver) HasWindows(employeeID int64, day int) bool {
	return len(r.windows[employeeID][day]) > 0
}

// WeekStart returns the normalized anchor the resolver was built for.
func (r *AvailabilityResolver) WeekStart() time.Time {
	return r.weekStart
}
