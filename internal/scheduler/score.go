package scheduler

import "github.com/daybreak-coffee/shift-planner/internal/domain"

// Penalty weights for the explicit linear scoring function. Severity
// weights dominate everything else so an invalid schedule can never
// outrank a valid-but-imperfect one.
const (
	baseScore = 1000

	penaltyCritical = 150
	penaltyWarning  = 40
	penaltyInfo     = 10

	penaltyPerUncoveredBucket = 2
	penaltyPerSurplusBucket   = 1

	// fairness: penalty per half hour of spread between the most and
	// least loaded employees, scaled by the configured fairness weight
	fairnessSpreadStep = 30

	simplicityBase     = 40
	simplicityPerShift = 2
)

// ScoreSchedule ranks a candidate schedule. Inputs are the validated
// warnings and the role-blind coverage evaluation for the same drafts.
func ScoreSchedule(
	drafts []*domain.DraftShift,
	warnings []domain.ScheduleWarning,
	eval CoverageEvaluation,
	fairnessWeight float64,
) int {
	warningPenalty := 0
	for _, w := range warnings {
		switch w.Severity {
		case domain.SeverityCritical:
			warningPenalty += penaltyCritical
		case domain.SeverityWarning:
			warningPenalty += penaltyWarning
		default:
			warningPenalty += penaltyInfo
		}
	}

	uncoveredPenalty := penaltyPerUncoveredBucket * eval.UncoveredBucketDeficit()
	surplusPenalty := penaltyPerSurplusBucket * eval.OverCoverageSurplus()

	fairnessPenalty := 0
	if spread := assignedSpreadMinutes(drafts); spread > 0 {
		fairnessPenalty = int(fairnessWeight * float64(spread/fairnessSpreadStep))
	}

	simplicityBonus := simplicityBase - simplicityPerShift*len(drafts)
	if simplicityBonus < 0 {
		simplicityBonus = 0
	}

	score := baseScore - warningPenalty - uncoveredPenalty - surplusPenalty - fairnessPenalty + simplicityBonus
	if score < 0 {
		score = 0
	}
	return score
}

// assignedSpreadMinutes is the gap between the most and least loaded
// assigned employees; a single employee has zero spread by definition.
func assignedSpreadMinutes(drafts []*domain.DraftShift) int {
	minutes := make(map[int64]int)
	for _, d := range drafts {
		if d.EmployeeID == nil || d.EndMinute <= d.StartMinute {
			continue
		}
		minutes[*d.EmployeeID] += d.DurationMinutes()
	}
	if len(minutes) < 2 {
		return 0
	}
	first := true
	var lo, hi int
	for _, m := range minutes {
		if first {
			lo, hi = m, m
			first = false
			continue
		}
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	return hi - lo
}
