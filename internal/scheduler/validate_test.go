package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func TestValidateCleanScheduleHasNoWarnings(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	v := testValidator(t, nil, reqs, nil)

	warnings := v.Validate([]*domain.DraftShift{draft("s1", 3, 0, 9*60, 17*60)})
	assert.Empty(t, warnings)
}

func TestValidateAvailabilityWarningUsesEmployeeName(t *testing.T) {
	weekStart, loc := testWeekStart(t)
	resolver := NewAvailabilityResolver(weekStart, loc,
		[]domain.AvailabilityWindow{{EmployeeID: 3, Day: 0, StartMinute: 8 * 60, EndMinute: 12 * 60}},
		nil, nil)
	v := testValidator(t, resolver, nil, nil)

	warnings := v.Validate([]*domain.DraftShift{draft("s1", 3, 0, 10*60, 14*60)})

	avail := warningsOfKind(warnings, domain.WarningAvailability)
	require.Len(t, avail, 1)
	assert.Contains(t, avail[0].Message, "Casey Ortiz")
	assert.Equal(t, domain.SeverityWarning, avail[0].Severity)
}

func TestValidateInvalidRange(t *testing.T) {
	v := testValidator(t, nil, nil, nil)
	warnings := v.Validate([]*domain.DraftShift{draft("bad", 3, 0, 14*60, 10*60)})

	invalid := warningsOfKind(warnings, domain.WarningInvalidShift)
	require.Len(t, invalid, 1)
	assert.Equal(t, "bad", invalid[0].ShiftID)
}

func TestValidateUnassignedShiftIsInfo(t *testing.T) {
	v := testValidator(t, nil, nil, nil)
	warnings := v.Validate([]*domain.DraftShift{openDraft("open", 0, 9*60, 13*60)})

	open := warningsOfKind(warnings, domain.WarningUnassigned)
	require.Len(t, open, 1)
	assert.Equal(t, domain.SeverityInfo, open[0].Severity)
}

func TestValidateShiftAboveMaxLength(t *testing.T) {
	v := testValidator(t, nil, nil, nil)
	// 10h against the default 8h single-shift cap
	warnings := v.Validate([]*domain.DraftShift{draft("long", 3, 0, 8*60, 18*60)})

	invalid := warningsOfKind(warnings, domain.WarningInvalidShift)
	require.Len(t, invalid, 1)
	assert.Contains(t, invalid[0].Message, "10.0h")
}

func TestValidateRoleAwareCoverage(t *testing.T) {
	reqs := []domain.CoverageRequirement{{
		Day: 0, StartMinute: 9 * 60, EndMinute: 11 * 60, Headcount: 1,
		Role: ref(domain.RoleShiftLead),
	}}
	v := testValidator(t, nil, reqs, nil)

	// employee 3 is a plain employee: the role-blind heat map is happy
	// but the validator still reports the requirement unmet
	warnings := v.Validate([]*domain.DraftShift{draft("s1", 3, 0, 9*60, 11*60)})
	uncovered := warningsOfKind(warnings, domain.WarningUncovered)
	require.Len(t, uncovered, 1)
	assert.Equal(t, domain.SeverityCritical, uncovered[0].Severity)

	// employee 1 is a manager and outranks the shift lead requirement
	warnings = v.Validate([]*domain.DraftShift{draft("s1", 1, 0, 9*60, 11*60)})
	assert.Empty(t, warningsOfKind(warnings, domain.WarningUncovered))
}

func TestValidateWarningsSortedBySeverity(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(2, 9*60, 10*60, 1)}
	v := testValidator(t, nil, reqs, nil)

	// an open shift (info) plus an uncovered day (critical)
	warnings := v.Validate([]*domain.DraftShift{openDraft("open", 0, 9*60, 13*60)})
	require.GreaterOrEqual(t, len(warnings), 2)
	for i := 1; i < len(warnings); i++ {
		assert.GreaterOrEqual(t, warnings[i-1].Severity, warnings[i].Severity)
	}
	assert.Equal(t, domain.SeverityCritical, warnings[0].Severity)
}

func TestValidateNormalizesConstraints(t *testing.T) {
	v := NewValidator(domain.SchedulingConstraints{}, testRoster(), emptyResolver(t), nil, nil, DefaultWindow())
	assert.Equal(t, domain.DefaultConstraints(), v.Constraints())
}
