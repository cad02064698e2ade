package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func TestBuildWeekPlan(t *testing.T) {
	weekStart, _ := testWeekStart(t)
	role := domain.RoleShiftLead
	drafts := []*domain.DraftShift{
		{ID: "a", EmployeeID: ref(int64(2)), Day: 0, StartMinute: 9 * 60, EndMinute: 17 * 60, Role: &role, Notes: "opening"},
		draft("b", 3, 4, 12 * 60, 20 * 60),
		openDraft("open", 2, 9*60, 13*60), // dropped, nothing to persist
	}

	plan, err := BuildWeekPlan(drafts, weekStart, testRoster(), "shop-1")

	require.NoError(t, err)
	require.Len(t, plan, 2)

	first := plan[0]
	assert.Equal(t, "shop-1", first.ShopID)
	assert.Equal(t, int64(2), first.EmployeeID)
	assert.Equal(t, domain.ShiftStatusPublished, first.Status)
	assert.True(t, first.StartTime.Equal(AbsoluteTime(weekStart, 0, 9*60)))
	assert.True(t, first.EndTime.Equal(AbsoluteTime(weekStart, 0, 17*60)))
	require.NotNil(t, first.Role)
	assert.Equal(t, domain.RoleShiftLead, *first.Role)
	assert.Equal(t, "opening", first.Notes)

	assert.True(t, plan[1].StartTime.Equal(AbsoluteTime(weekStart, 4, 12*60)))
}

func TestBuildWeekPlanUnknownEmployeeProducesNothing(t *testing.T) {
	weekStart, _ := testWeekStart(t)
	drafts := []*domain.DraftShift{
		draft("a", 2, 0, 9*60, 17*60),
		draft("b", 999, 1, 9*60, 17*60),
	}

	plan, err := BuildWeekPlan(drafts, weekStart, testRoster(), "shop-1")

	require.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Nil(t, plan, "validation fails before any record is produced")
}

func TestBuildWeekPlanInvalidShiftRejected(t *testing.T) {
	weekStart, _ := testWeekStart(t)
	drafts := []*domain.DraftShift{
		draft("a", 2, 0, 9*60, 17*60),
		draft("bad", 3, 0, 17*60, 9*60),
	}

	plan, err := BuildWeekPlan(drafts, weekStart, testRoster(), "shop-1")

	require.ErrorIs(t, err, ErrInvalidShift)
	assert.Nil(t, plan)
}

func TestBuildWeekPlanOpenShiftsSkipValidationOfAssignee(t *testing.T) {
	weekStart, _ := testWeekStart(t)
	plan, err := BuildWeekPlan([]*domain.DraftShift{openDraft("o", 0, 9*60, 12*60)}, weekStart, testRoster(), "shop-1")
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestBuildMonthPlanRepeatsWeeklyPattern(t *testing.T) {
	loc := testLocation(t)
	// June 2026: June 1st is a Monday, four full Mondays plus the 29th
	anchor := time.Date(2026, time.June, 10, 0, 0, 0, 0, loc)
	drafts := []*domain.DraftShift{draft("mon", 2, 0, 9*60, 17*60)}

	plan, err := BuildMonthPlan(drafts, anchor, loc, testRoster(), "shop-1")

	require.NoError(t, err)
	require.Len(t, plan, 5, "five Mondays in June 2026")
	for i, p := range plan {
		assert.Equal(t, time.Monday, p.StartTime.Weekday())
		assert.Equal(t, time.June, p.StartTime.Month())
		assert.Equal(t, 1+7*i, p.StartTime.Day())
	}
}

func TestBuildMonthPlanSkipsDaysOutsideMonth(t *testing.T) {
	loc := testLocation(t)
	// July 2026 starts on a Wednesday: the first partial week has no
	// Monday or Tuesday inside the month
	anchor := time.Date(2026, time.July, 1, 0, 0, 0, 0, loc)
	drafts := []*domain.DraftShift{
		draft("mon", 2, 0, 9*60, 17*60),
		draft("wed", 3, 2, 9*60, 17*60),
	}

	plan, err := BuildMonthPlan(drafts, anchor, loc, testRoster(), "shop-1")

	require.NoError(t, err)
	mondays, wednesdays := 0, 0
	for _, p := range plan {
		require.Equal(t, time.July, p.StartTime.Month())
		switch p.StartTime.Weekday() {
		case time.Monday:
			mondays++
		case time.Wednesday:
			wednesdays++
		}
	}
	assert.Equal(t, 4, mondays, "July 2026 has four Mondays")
	assert.Equal(t, 5, wednesdays, "July 2026 has five Wednesdays")
}

func TestBuildMonthPlanValidatesBeforeOutput(t *testing.T) {
	loc := testLocation(t)
	anchor := time.Date(2026, time.June, 1, 0, 0, 0, 0, loc)
	drafts := []*domain.DraftShift{draft("ghost", 999, 0, 9*60, 17*60)}

	plan, err := BuildMonthPlan(drafts, anchor, loc, testRoster(), "shop-1")
	require.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Nil(t, plan)
}
