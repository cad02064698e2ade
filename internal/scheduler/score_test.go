package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func TestScorePerfectScheduleNearBase(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	drafts := []*domain.DraftShift{draft("s1", 3, 0, 9*60, 17*60)}
	eval := EvaluateCoverage(reqs, drafts, DefaultWindow())

	score := ScoreSchedule(drafts, nil, eval, 1.0)
	assert.Equal(t, baseScore+simplicityBase-simplicityPerShift, score)
}

func TestScoreSeverityDominates(t *testing.T) {
	eval := CoverageEvaluation{}
	critical := []domain.ScheduleWarning{{Severity: domain.SeverityCritical}}
	warning := []domain.ScheduleWarning{{Severity: domain.SeverityWarning}, {Severity: domain.SeverityWarning}, {Severity: domain.SeverityWarning}}

	// one critical outweighs three plain warnings
	assert.Less(t,
		ScoreSchedule(nil, critical, eval, 1.0),
		ScoreSchedule(nil, warning, eval, 1.0))
}

func TestScoreUncoveredBucketsPenalized(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	full := EvaluateCoverage(reqs, []*domain.DraftShift{draft("s1", 3, 0, 9*60, 17*60)}, DefaultWindow())
	empty := EvaluateCoverage(reqs, nil, DefaultWindow())

	drafts := []*domain.DraftShift{draft("s1", 3, 0, 9*60, 17*60)}
	assert.Greater(t,
		ScoreSchedule(drafts, nil, full, 1.0),
		ScoreSchedule(drafts, nil, empty, 1.0))
}

func TestScoreFairnessSpread(t *testing.T) {
	eval := CoverageEvaluation{}
	balanced := []*domain.DraftShift{
		draft("a", 3, 0, 9*60, 17*60),
		draft("b", 4, 1, 9*60, 17*60),
	}
	lopsided := []*domain.DraftShift{
		draft("a", 3, 0, 9*60, 17*60),
		draft("b", 3, 1, 9*60, 17*60),
		draft("c", 4, 2, 9*60, 11*60),
	}

	assert.Greater(t,
		ScoreSchedule(balanced, nil, eval, 1.0),
		ScoreSchedule(lopsided, nil, eval, 1.0))
}

func TestScoreNeverNegative(t *testing.T) {
	warnings := make([]domain.ScheduleWarning, 50)
	for i := range warnings {
		warnings[i] = domain.ScheduleWarning{Severity: domain.SeverityCritical}
	}
	assert.Equal(t, 0, ScoreSchedule(nil, warnings, CoverageEvaluation{}, 1.0))
}

func TestAssignedSpreadMinutes(t *testing.T) {
	assert.Zero(t, assignedSpreadMinutes(nil))
	assert.Zero(t, assignedSpreadMinutes([]*domain.DraftShift{draft("a", 3, 0, 9*60, 17*60)}),
		"single employee has no spread")

	spread := assignedSpreadMinutes([]*domain.DraftShift{
		draft("a", 3, 0, 9*60, 17*60), // 480m
		draft("b", 4, 0, 9*60, 11*60), // 120m
	})
	assert.Equal(t, 360, spread)
}
