package scheduler

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

// Strategy selects the heuristic profile a generation run uses to rank
// candidates for each slot.
type Strategy int

const (
	StrategyFairness Strategy = iota
	StrategyConsistency
	StrategyFewestShifts
	StrategyStrictAvailability
	StrategyBalanced

	strategyCount
)

func (s Strategy) String() string {
	switch s {
	case StrategyFairness:
		return "fairness-first"
	case StrategyConsistency:
		return "consistency-first"
	case StrategyFewestShifts:
		return "fewest-shifts"
	case StrategyStrictAvailability:
		return "strict-availability"
	case StrategyBalanced:
		return "balanced"
	default:
		return "unknown"
	}
}

type strategyProfile struct {
	shuffle           bool
	strict            bool // never fall back to ignoring availability
	fairnessWeight    float64
	consistencyWeight float64
	contiguityBonus   float64
	jitter            float64
}

func (s Strategy) profile(constraints domain.SchedulingConstraints) strategyProfile {
	consistency := 0.5
	if !constraints.PreferConsistentStart {
		consistency = 0.1
	}
	switch s {
	case StrategyFairness:
		return strategyProfile{shuffle: true, fairnessWeight: 3, consistencyWeight: 0.2, contiguityBonus: 20, jitter: 5}
	case StrategyConsistency:
		return strategyProfile{shuffle: false, fairnessWeight: 0.5, consistencyWeight: consistency * 4, contiguityBonus: 30, jitter: 3}
	case StrategyFewestShifts:
		return strategyProfile{shuffle: false, fairnessWeight: 0.3, consistencyWeight: 0.2, contiguityBonus: 120, jitter: 3}
	case StrategyStrictAvailability:
		return strategyProfile{shuffle: true, strict: true, fairnessWeight: 1, consistencyWeight: consistency, contiguityBonus: 30, jitter: 5}
	default: // StrategyBalanced
		return strategyProfile{shuffle: true, fairnessWeight: 1, consistencyWeight: consistency, contiguityBonus: 40, jitter: 8}
	}
}

// overtimeSlackMinutes lets a candidate run slightly past the weekly
// cap during generation; the validator still reports the overtime.
const overtimeSlackMinutes = 120

// attemptsPerStrategy controls how many seeded orderings each strategy
// explores before deduplication.
const attemptsPerStrategy = 2

// Generator runs the bounded multi-start heuristic search. It never
// errors: an unsatisfiable slot stays open and surfaces as warnings on
// the resulting option.
type Generator struct {
	validator    *Validator
	requirements []domain.CoverageRequirement
	seed         int64
}

func NewGenerator(validator *Validator, requirements []domain.CoverageRequirement, seed int64) *Generator {
	return &Generator{
		validator:    validator,
		requirements: requirements,
		seed:         seed,
	}
}

// slot is one unit of required headcount within a coverage block.
type slot struct {
	day   int
	start int
	end   int
	role  *domain.Role
	notes string
}

func (g *Generator) expandSlots() []slot {
	var slots []slot
	for _, req := range g.requirements {
		if req.EndMinute <= req.StartMinute || req.Day < 0 || req.Day >= DaysPerWeek {
			continue
		}
		head := req.Headcount
		if head < 1 {
			head = 1
		}
		for i := 0; i < head; i++ {
			slots = append(slots, slot{
				day:   req.Day,
				start: req.StartMinute,
				end:   req.EndMinute,
				role:  req.Role,
				notes: req.Notes,
			})
		}
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].day != slots[j].day {
			return slots[i].day < slots[j].day
		}
		if slots[i].start != slots[j].start {
			return slots[i].start < slots[j].start
		}
		return slots[i].end < slots[j].end
	})
	return slots
}

// Generate runs every strategy for a fixed number of seeded attempts,
// deduplicates the candidates by canonical signature and returns the
// top options relabelled "Option 1..N" in score order.
func (g *Generator) Generate() []*domain.ScheduleOption {
	constraints := g.validator.Constraints()

	var candidates []*domain.ScheduleOption
	for s := Strategy(0); s < strategyCount; s++ {
		for attempt := 0; attempt < attemptsPerStrategy; attempt++ {
			candidates = append(candidates, g.runStrategy(s, attempt))
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return len(candidates[i].Warnings) < len(candidates[j].Warnings)
	})

	seen := make(map[string]bool)
	options := make([]*domain.ScheduleOption, 0, constraints.OptionCount)
	for _, c := range candidates {
		sig := scheduleSignature(c.Shifts)
		if seen[sig] {
			continue
		}
		seen[sig] = true
		c.Name = fmt.Sprintf("Option %d", len(options)+1)
		options = append(options, c)
		if len(options) == constraints.OptionCount {
			break
		}
	}
	return options
}

// RunStrategy exposes a single seeded run; two calls with the same
// strategy and attempt are deterministic.
func (g *Generator) RunStrategy(s Strategy, attempt int) *domain.ScheduleOption {
	return g.runStrategy(s, attempt)
}

func (g *Generator) runStrategy(s Strategy, attempt int) *domain.ScheduleOption {
	constraints := g.validator.Constraints()
	profile := s.profile(constraints)

	// one deterministic stream per (strategy, attempt) so reruns are
	// reproducible while different attempts explore different orderings
	rng := rand.New(rand.NewSource(g.seed + int64(s)*1009 + int64(attempt)))

	slots := g.expandSlots()
	if profile.shuffle {
		rng.Shuffle(len(slots), func(i, j int) {
			slots[i], slots[j] = slots[j], slots[i]
		})
	}

	run := newRunState(g.validator)
	for _, sl := range slots {
		empID, ok := run.pickCandidate(sl, profile, constraints, rng)
		draft := &domain.DraftShift{
			Day:         sl.day,
			StartMinute: sl.start,
			EndMinute:   sl.end,
			Role:        sl.role,
			Notes:       sl.notes,
		}
		if ok {
			id := empID
			draft.EmployeeID = &id
		}
		run.place(draft)
	}

	drafts := Condense(run.drafts)
	for i, d := range drafts {
		// deterministic identity keeps equal-seed runs byte-identical
		d.ID = fmt.Sprintf("%s-a%d-%02d", s.String(), attempt, i)
	}

	warnings := g.validator.Validate(drafts)
	eval := EvaluateCoverage(g.requirements, drafts, g.validator.Window())
	score := ScoreSchedule(drafts, warnings, eval, constraints.FairnessWeight)

	return &domain.ScheduleOption{
		ID:       uuid.NewString(),
		Strategy: s.String(),
		Score:    score,
		Shifts:   drafts,
		Warnings: warnings,
	}
}

type runState struct {
	validator       *Validator
	drafts          []*domain.DraftShift
	assignedMinutes map[int64]int
	startSum        map[int64]int
	startCount      map[int64]int
}

func newRunState(v *Validator) *runState {
	return &runState{
		validator:       v,
		assignedMinutes: make(map[int64]int),
		startSum:        make(map[int64]int),
		startCount:      make(map[int64]int),
	}
}

func (r *runState) place(d *domain.DraftShift) {
	r.drafts = append(r.drafts, d)
	if d.EmployeeID != nil {
		r.assignedMinutes[*d.EmployeeID] += d.DurationMinutes()
		r.startSum[*d.EmployeeID] += d.StartMinute
		r.startCount[*d.EmployeeID]++
	}
}

// pickCandidate computes the candidate pool for a slot and returns the
// minimum-cost employee. The bool is false when nobody qualifies and
// the slot must stay open.
func (r *runState) pickCandidate(
	sl slot,
	profile strategyProfile,
	constraints domain.SchedulingConstraints,
	rng *rand.Rand,
) (int64, bool) {
	pool := r.candidatePool(sl, constraints, true)
	if len(pool) == 0 && !profile.strict {
		// ignore-availability fallback: a product decision carried over
		// from the original behavior, not a proven-correct invariant
		pool = r.candidatePool(sl, constraints, false)
	}
	if len(pool) == 0 {
		return 0, false
	}

	bestID := pool[0]
	bestCost := math.MaxFloat64
	for _, id := range pool {
		cost := r.candidateCost(id, sl, profile, constraints, rng)
		if cost < bestCost {
			bestCost = cost
			bestID = id
		}
	}
	return bestID, true
}

func (r *runState) candidatePool(sl slot, constraints domain.SchedulingConstraints, requireAvailability bool) []int64 {
	capMinutes := int(constraints.MaxHoursPerWeek*60) + overtimeSlackMinutes
	duration := sl.end - sl.start

	ids := make([]int64, 0, len(r.validator.Employees()))
	for id := range r.validator.Employees() {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var pool []int64
	for _, id := range ids {
		emp := r.validator.Employees()[id]
		if !emp.IsActive {
			continue
		}
		if sl.role != nil && !emp.Role.Satisfies(*sl.role) {
			continue
		}
		if r.overlapsExisting(id, sl) {
			continue
		}
		if r.overlapsPublished(id, sl) {
			continue
		}
		if requireAvailability && !r.validator.Resolver().IsAvailable(id, sl.day, sl.start, sl.end) {
			continue
		}
		if r.assignedMinutes[id]+duration > capMinutes {
			continue
		}
		pool = append(pool, id)
	}
	return pool
}

func (r *runState) overlapsExisting(employeeID int64, sl slot) bool {
	for _, d := range r.drafts {
		if d.EmployeeID == nil || *d.EmployeeID != employeeID || d.Day != sl.day {
			continue
		}
		if overlaps(d.StartMinute, d.EndMinute, sl.start, sl.end) {
			return true
		}
	}
	return false
}

func (r *runState) overlapsPublished(employeeID int64, sl slot) bool {
	slotStart := sl.day*MinutesPerDay + sl.start
	slotEnd := sl.day*MinutesPerDay + sl.end
	for _, p := range r.validator.Published() {
		if p.EmployeeID != employeeID || p.Status == domain.ShiftStatusCompleted {
			continue
		}
		pi, ok := publishedInterval(p, r.validator.WeekStart())
		if !ok {
			continue
		}
		if overlaps(slotStart, slotEnd, pi.start, pi.end) {
			return true
		}
	}
	return false
}

// candidateCost combines fairness (minutes already assigned this week),
// start-time consistency, a contiguity bonus for shifts touching an
// existing one, and a small random jitter for tie-breaking.
func (r *runState) candidateCost(
	employeeID int64,
	sl slot,
	profile strategyProfile,
	constraints domain.SchedulingConstraints,
	rng *rand.Rand,
) float64 {
	cost := profile.fairnessWeight * constraints.FairnessWeight * float64(r.assignedMinutes[employeeID]) / 60

	if r.startCount[employeeID] > 0 {
		avgStart := float64(r.startSum[employeeID]) / float64(r.startCount[employeeID])
		cost += profile.consistencyWeight * math.Abs(float64(sl.start)-avgStart) / 60
	}

	for _, d := range r.drafts {
		if d.EmployeeID == nil || *d.EmployeeID != employeeID || d.Day != sl.day {
			continue
		}
		if d.EndMinute == sl.start || d.StartMinute == sl.end {
			cost -= profile.contiguityBonus
			break
		}
	}

	cost += profile.jitter * rng.Float64()
	return cost
}

// Condense merges adjacent same-employee, same-day, same-role drafts
// whose end exactly touches the next start. Open shifts are never
// merged. Total covered minutes are preserved.
func Condense(drafts []*domain.DraftShift) []*domain.DraftShift {
	sorted := make([]*domain.DraftShift, len(drafts))
	copy(sorted, drafts)
	sort.SliceStable(sorted, func(i, j int) bool {
		ei, ej := int64(-1), int64(-1)
		if sorted[i].EmployeeID != nil {
			ei = *sorted[i].EmployeeID
		}
		if sorted[j].EmployeeID != nil {
			ej = *sorted[j].EmployeeID
		}
		if ei != ej {
			return ei < ej
		}
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].StartMinute < sorted[j].StartMinute
	})

	var out []*domain.DraftShift
	for _, d := range sorted {
		if len(out) > 0 {
			last := out[len(out)-1]
			if last.EmployeeID != nil && d.EmployeeID != nil &&
				*last.EmployeeID == *d.EmployeeID &&
				last.Day == d.Day &&
				sameRole(last.Role, d.Role) &&
				last.EndMinute == d.StartMinute {
				last.EndMinute = d.EndMinute
				continue
			}
		}
		out = append(out, d.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].StartMinute < out[j].StartMinute
	})
	return out
}

func sameRole(a, b *domain.Role) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// scheduleSignature is the canonical dedupe key: the sorted list of
// employee-day-start-end tuples, blind to shift identity and notes.
func scheduleSignature(drafts []*domain.DraftShift) string {
	parts := make([]string, 0, len(drafts))
	for _, d := range drafts {
		emp := "-"
		if d.EmployeeID != nil {
			emp = fmt.Sprintf("%d", *d.EmployeeID)
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d:%d", emp, d.Day, d.StartMinute, d.EndMinute))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
