package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// testWeekStart is a Monday midnight anchor; tests pass a mid-week
// timestamp on purpose so normalization is exercised everywhere.
func testWeekStart(t *testing.T) (time.Time, *time.Location) {
	t.Helper()
	loc := testLocation(t)
	anchor := time.Date(2026, time.March, 4, 15, 30, 0, 0, loc) // a Wednesday
	return NormalizedWeekStart(anchor, loc), loc
}

func testRoster() map[int64]*domain.Employee {
	return map[int64]*domain.Employee{
		1: {ID: 1, FullName: "Avery Hall", Email: "avery@example.com", Role: domain.RoleManager, IsActive: true},
		2: {ID: 2, FullName: "Brooke Chen", Email: "brooke@example.com", Role: domain.RoleShiftLead, IsActive: true},
		3: {ID: 3, FullName: "Casey Ortiz", Email: "casey@example.com", Role: domain.RoleEmployee, IsActive: true},
		4: {ID: 4, FullName: "Devon Reyes", Email: "devon@example.com", Role: domain.RoleEmployee, IsActive: true},
	}
}

func emptyResolver(t *testing.T) *AvailabilityResolver {
	t.Helper()
	weekStart, loc := testWeekStart(t)
	return NewAvailabilityResolver(weekStart, loc, nil, nil, nil)
}

func testValidator(
	t *testing.T,
	resolver *AvailabilityResolver,
	requirements []domain.CoverageRequirement,
	published []*domain.PlannedShift,
) *Validator {
	t.Helper()
	if resolver == nil {
		resolver = emptyResolver(t)
	}
	return NewValidator(
		domain.DefaultConstraints(),
		testRoster(),
		resolver,
		requirements,
		published,
		DefaultWindow(),
	)
}

func ref[T any](v T) *T {
	return &v
}

func draft(id string, employeeID int64, day, start, end int) *domain.DraftShift {
	return &domain.DraftShift{
		ID:          id,
		EmployeeID:  ref(employeeID),
		Day:         day,
		StartMinute: start,
		EndMinute:   end,
	}
}

func openDraft(id string, day, start, end int) *domain.DraftShift {
	return &domain.DraftShift{
		ID:          id,
		Day:         day,
		StartMinute: start,
		EndMinute:   end,
	}
}

func requirement(day, start, end, headcount int) domain.CoverageRequirement {
	return domain.CoverageRequirement{
		Day:         day,
		StartMinute: start,
		EndMinute:   end,
		Headcount:   headcount,
	}
}

func warningsOfKind(warnings []domain.ScheduleWarning, kind domain.WarningKind) []domain.ScheduleWarning {
	var out []domain.ScheduleWarning
	for _, w := range warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}
