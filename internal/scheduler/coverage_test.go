package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func TestEvaluateCoverageFullyStaffed(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	drafts := []*domain.DraftShift{draft("s1", 3, 0, 9*60, 17*60)}

	eval := EvaluateCoverage(reqs, drafts, DefaultWindow())

	assert.Empty(t, eval.Warnings)
	assert.Zero(t, eval.UncoveredBucketDeficit())
	assert.Zero(t, eval.OverCoverageSurplus())
	require.Len(t, eval.Buckets, (17-9)*60/GridStep)
	for _, b := range eval.Buckets {
		assert.Zero(t, b.Delta)
	}
}

func TestEvaluateCoverageEmptyDraftIsAllUncovered(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 12*60, 2)}

	eval := EvaluateCoverage(reqs, nil, DefaultWindow())

	assert.Equal(t, 2*(12-9)*60/GridStep, eval.UncoveredBucketDeficit())
	require.Len(t, eval.Warnings, 1, "one warning per day, not per bucket")
	assert.Equal(t, domain.WarningUncovered, eval.Warnings[0].Kind)
	assert.Equal(t, domain.SeverityCritical, eval.Warnings[0].Severity)
	require.NotNil(t, eval.Warnings[0].Day)
	assert.Equal(t, 0, *eval.Warnings[0].Day)
}

func TestEvaluateCoverageOneWarningPerDayAcrossGaps(t *testing.T) {
	reqs := []domain.CoverageRequirement{
		requirement(0, 8*60, 10*60, 1),
		requirement(0, 14*60, 16*60, 1),
		requirement(2, 9*60, 11*60, 1),
	}

	eval := EvaluateCoverage(reqs, nil, DefaultWindow())

	require.Len(t, eval.Warnings, 2)
	assert.Equal(t, 0, *eval.Warnings[0].Day)
	assert.Equal(t, 2, *eval.Warnings[1].Day)
}

func TestEvaluateCoverageIsRoleBlind(t *testing.T) {
	reqs := []domain.CoverageRequirement{{
		Day: 0, StartMinute: 9 * 60, EndMinute: 10 * 60, Headcount: 1,
		Role: ref(domain.RoleShiftLead),
	}}
	// a plain employee still counts for the heat map
	drafts := []*domain.DraftShift{draft("s1", 3, 0, 9*60, 10*60)}

	eval := EvaluateCoverage(reqs, drafts, DefaultWindow())
	assert.Zero(t, eval.UncoveredBucketDeficit())
	assert.Empty(t, eval.Warnings)
}

func TestEvaluateCoverageSurplusOnlyWhereNeeded(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 10*60, 1)}
	drafts := []*domain.DraftShift{
		draft("s1", 3, 0, 9*60, 10*60),
		draft("s2", 4, 0, 9*60, 10*60),
		// nothing required on Tuesday, so this adds no surplus
		draft("s3", 3, 1, 9*60, 10*60),
	}

	eval := EvaluateCoverage(reqs, drafts, DefaultWindow())
	assert.Equal(t, 4, eval.OverCoverageSurplus())
	assert.Zero(t, eval.UncoveredBucketDeficit())
}

func TestEvaluateCoverageZeroHeadcountMeansOne(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 10*60, 0)}
	eval := EvaluateCoverage(reqs, nil, DefaultWindow())
	assert.Equal(t, 4, eval.UncoveredBucketDeficit())
}

func TestEvaluateCoverageClipsToWindow(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 4*60, 7*60, 1)}
	window := TimeWindow{StartMinute: 5 * 60, EndMinute: 24 * 60}

	eval := EvaluateCoverage(reqs, nil, window)
	// only 05:00-07:00 is accounted
	assert.Equal(t, 2*60/GridStep, eval.UncoveredBucketDeficit())
}

func TestEvaluateCoveragePartialBucketCounts(t *testing.T) {
	// a requirement ending mid-bucket still claims that bucket
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 9*60 + 20, 1)}
	eval := EvaluateCoverage(reqs, nil, DefaultWindow())
	assert.Equal(t, 2, eval.UncoveredBucketDeficit())
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Monday", DayName(0))
	assert.Equal(t, "Sunday", DayName(6))
	assert.Equal(t, "unknown", DayName(7))
}

func TestFormatMinute(t *testing.T) {
	assert.Equal(t, "09:05", FormatMinute(9*60+5))
	assert.Equal(t, "00:00", FormatMinute(0))
}
