package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func TestGeneratorDeterministicForEqualSeed(t *testing.T) {
	reqs := []domain.CoverageRequirement{
		requirement(0, 8*60, 16*60, 2),
		requirement(1, 8*60, 16*60, 2),
		requirement(2, 12*60, 20*60, 1),
	}
	v := testValidator(t, nil, reqs, nil)

	for s := Strategy(0); s < strategyCount; s++ {
		first := NewGenerator(v, reqs, 42).RunStrategy(s, 0)
		second := NewGenerator(v, reqs, 42).RunStrategy(s, 0)

		require.Equal(t, len(first.Shifts), len(second.Shifts), "strategy %s", s)
		for i := range first.Shifts {
			assert.Equal(t, first.Shifts[i], second.Shifts[i], "strategy %s shift %d", s, i)
		}
		assert.Equal(t, first.Score, second.Score)
	}
}

func TestGeneratorDifferentSeedsMayDiffer(t *testing.T) {
	reqs := []domain.CoverageRequirement{
		requirement(0, 8*60, 16*60, 2),
		requirement(1, 8*60, 16*60, 2),
	}
	v := testValidator(t, nil, reqs, nil)

	a := NewGenerator(v, reqs, 1).RunStrategy(StrategyFairness, 0)
	b := NewGenerator(v, reqs, 99).RunStrategy(StrategyFairness, 0)

	// both must still be complete schedules regardless of ordering
	assert.NotEmpty(t, a.Shifts)
	assert.NotEmpty(t, b.Shifts)
}

func TestGeneratePerfectScenario(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	v := testValidator(t, nil, reqs, nil)

	options := NewGenerator(v, reqs, 7).Generate()

	require.NotEmpty(t, options)
	best := options[0]
	assert.Equal(t, "Option 1", best.Name)
	require.Len(t, best.Shifts, 1)
	require.NotNil(t, best.Shifts[0].EmployeeID)
	assert.Empty(t, best.Warnings)
	assert.Greater(t, best.Score, baseScore)
}

func TestGenerateOptionsSortedAndDeduplicated(t *testing.T) {
	reqs := []domain.CoverageRequirement{
		requirement(0, 8*60, 14*60, 1),
		requirement(3, 10*60, 18*60, 1),
	}
	v := testValidator(t, nil, reqs, nil)

	options := NewGenerator(v, reqs, 11).Generate()

	require.NotEmpty(t, options)
	assert.LessOrEqual(t, len(options), domain.DefaultConstraints().OptionCount)

	seen := make(map[string]bool)
	for i, opt := range options {
		if i > 0 {
			assert.LessOrEqual(t, opt.Score, options[i-1].Score, "score order")
		}
		sig := scheduleSignature(opt.Shifts)
		assert.False(t, seen[sig], "duplicate schedule survived dedupe")
		seen[sig] = true
		assert.NotEmpty(t, opt.ID)
		assert.NotEmpty(t, opt.Strategy)
	}
}

func TestGenerateUnsatisfiableSlotStaysOpenUnderStrictAvailability(t *testing.T) {
	weekStart, loc := testWeekStart(t)
	// every employee is only free early morning, far from the requirement
	var windows []domain.AvailabilityWindow
	for id := int64(1); id <= 4; id++ {
		windows = append(windows, domain.AvailabilityWindow{
			EmployeeID: id, Day: 0, StartMinute: 5 * 60, EndMinute: 6 * 60,
		})
	}
	resolver := NewAvailabilityResolver(weekStart, loc, windows, nil, nil)
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	v := testValidator(t, resolver, reqs, nil)
	g := NewGenerator(v, reqs, 3)

	strict := g.RunStrategy(StrategyStrictAvailability, 0)
	require.Len(t, strict.Shifts, 1)
	assert.Nil(t, strict.Shifts[0].EmployeeID, "strict run leaves the slot open")

	relaxed := g.RunStrategy(StrategyBalanced, 0)
	require.Len(t, relaxed.Shifts, 1)
	require.NotNil(t, relaxed.Shifts[0].EmployeeID, "relaxed run assigns despite availability")
	assert.NotEmpty(t, warningsOfKind(relaxed.Warnings, domain.WarningAvailability))
}

func TestGeneratorRespectsRoleRequirement(t *testing.T) {
	reqs := []domain.CoverageRequirement{{
		Day: 0, StartMinute: 9 * 60, EndMinute: 13 * 60, Headcount: 1,
		Role: ref(domain.RoleManager),
	}}
	v := testValidator(t, nil, reqs, nil)

	opt := NewGenerator(v, reqs, 5).RunStrategy(StrategyBalanced, 0)
	require.Len(t, opt.Shifts, 1)
	require.NotNil(t, opt.Shifts[0].EmployeeID)
	// only employee 1 is a manager
	assert.Equal(t, int64(1), *opt.Shifts[0].EmployeeID)
}

func TestGeneratorSkipsInactiveEmployees(t *testing.T) {
	roster := testRoster()
	for _, e := range roster {
		e.IsActive = false
	}
	roster[2].IsActive = true

	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 13*60, 1)}
	v := NewValidator(domain.DefaultConstraints(), roster, emptyResolver(t), reqs, nil, DefaultWindow())

	opt := NewGenerator(v, reqs, 5).RunStrategy(StrategyBalanced, 0)
	require.Len(t, opt.Shifts, 1)
	require.NotNil(t, opt.Shifts[0].EmployeeID)
	assert.Equal(t, int64(2), *opt.Shifts[0].EmployeeID)
}

func TestCondenseMergesTouchingShifts(t *testing.T) {
	drafts := []*domain.DraftShift{
		draft("a", 3, 0, 9*60, 12*60),
		draft("b", 3, 0, 12*60, 15*60),
		draft("c", 3, 0, 16*60, 18*60), // gap, stays separate
		draft("d", 4, 0, 12*60, 15*60), // other employee
	}

	out := Condense(drafts)

	require.Len(t, out, 3)
	merged := out[0]
	assert.Equal(t, 9*60, merged.StartMinute)
	assert.Equal(t, 15*60, merged.EndMinute)

	totalBefore := 0
	for _, d := range drafts {
		totalBefore += d.DurationMinutes()
	}
	totalAfter := 0
	for _, d := range out {
		totalAfter += d.DurationMinutes()
	}
	assert.Equal(t, totalBefore, totalAfter, "condensing preserves covered minutes")
}

func TestCondenseNeverMergesOpenShifts(t *testing.T) {
	drafts := []*domain.DraftShift{
		openDraft("a", 0, 9*60, 12*60),
		openDraft("b", 0, 12*60, 15*60),
	}
	assert.Len(t, Condense(drafts), 2)
}

func TestCondenseDoesNotMutateInput(t *testing.T) {
	a := draft("a", 3, 0, 9*60, 12*60)
	b := draft("b", 3, 0, 12*60, 15*60)
	Condense([]*domain.DraftShift{a, b})
	assert.Equal(t, 12*60, a.EndMinute, "input shifts are untouched")
}

func TestScheduleSignatureIsOrderBlind(t *testing.T) {
	a := []*domain.DraftShift{
		draft("x", 3, 0, 9*60, 12*60),
		draft("y", 4, 1, 9*60, 12*60),
	}
	b := []*domain.DraftShift{
		draft("p", 4, 1, 9*60, 12*60),
		draft("q", 3, 0, 9*60, 12*60),
	}
	assert.Equal(t, scheduleSignature(a), scheduleSignature(b))
}
