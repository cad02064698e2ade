package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

// Validator is the single source of truth for schedule warnings. Both
// the generation engine and the interactive board run their drafts
// through the same instance so a generated option and a hand-edited
// draft are judged by identical predicates.
type Validator struct {
	constraints  domain.SchedulingConstraints
	employees    map[int64]*domain.Employee
	resolver     *AvailabilityResolver
	requirements []domain.CoverageRequirement
	published    []*domain.PlannedShift
	weekStart    time.Time
	window       TimeWindow
}

func NewValidator(
	constraints domain.SchedulingConstraints,
	employees map[int64]*domain.Employee,
	resolver *AvailabilityResolver,
	requirements []domain.CoverageRequirement,
	published []*domain.PlannedShift,
	window TimeWindow,
) *Validator {
	return &Validator{
		constraints:  constraints.Normalize(),
		employees:    employees,
		resolver:     resolver,
		requirements: requirements,
		published:    published,
		weekStart:    resolver.WeekStart(),
		window:       window.Snapped(),
	}
}

// Validate produces the full ordered warning list for a draft set.
func (v *Validator) Validate(drafts []*domain.DraftShift) []domain.ScheduleWarning {
	var warnings []domain.ScheduleWarning

	warnings = append(warnings, v.shiftShapeWarnings(drafts)...)
	warnings = append(warnings, v.availabilityWarnings(drafts)...)
	warnings = append(warnings, DetectOverlaps(drafts, v.published, v.weekStart)...)
	warnings = append(warnings, v.roleAwareCoverageWarnings(drafts)...)
	warnings = append(warnings, DetectRestViolations(drafts, v.published, v.weekStart, v.constraints.MinRestHours)...)
	warnings = append(warnings, DetectOvertime(drafts, v.published, v.weekStart, v.constraints.MaxHoursPerWeek)...)

	// severity first for UI ordering, original order within a tier
	sort.SliceStable(warnings, func(i, j int) bool {
		return warnings[i].Severity > warnings[j].Severity
	})
	return warnings
}

func (v *Validator) shiftShapeWarnings(drafts []*domain.DraftShift) []domain.ScheduleWarning {
	maxLen := int(v.constraints.MaxShiftLengthHours * 60)
	var warnings []domain.ScheduleWarning
	for _, d := range drafts {
		day := d.Day
		if d.EndMinute <= d.StartMinute || d.Day < 0 || d.Day >= DaysPerWeek {
			warnings = append(warnings, domain.ScheduleWarning{
				Kind:     domain.WarningInvalidShift,
				Severity: domain.SeverityWarning,
				Message: fmt.Sprintf("shift on %s has an invalid time range %s-%s",
					DayName(d.Day), FormatMinute(d.StartMinute), FormatMinute(d.EndMinute)),
				Day:     &day,
				ShiftID: d.ID,
			})
			continue
		}
		if d.EmployeeID == nil {
			warnings = append(warnings, domain.ScheduleWarning{
				Kind:     domain.WarningUnassigned,
				Severity: domain.SeverityInfo,
				Message: fmt.Sprintf("open shift on %s %s-%s has no one assigned",
					DayName(d.Day), FormatMinute(d.StartMinute), FormatMinute(d.EndMinute)),
				Day:     &day,
				ShiftID: d.ID,
			})
		}
		if d.DurationMinutes() > maxLen {
			empID := d.EmployeeID
			warnings = append(warnings, domain.ScheduleWarning{
				Kind:     domain.WarningInvalidShift,
				Severity: domain.SeverityWarning,
				Message: fmt.Sprintf("shift on %s runs %.1fh, above the %.0fh single-shift cap",
					DayName(d.Day), float64(d.DurationMinutes())/60, v.constraints.MaxShiftLengthHours),
				Day:        &day,
				EmployeeID: empID,
				ShiftID:    d.ID,
			})
		}
	}
	return warnings
}

func (v *Validator) availabilityWarnings(drafts []*domain.DraftShift) []domain.ScheduleWarning {
	var warnings []domain.ScheduleWarning
	for _, d := range drafts {
		if d.EmployeeID == nil || d.EndMinute <= d.StartMinute {
			continue
		}
		if v.resolver.IsAvailable(*d.EmployeeID, d.Day, d.StartMinute, d.EndMinute) {
			continue
		}
		day := d.Day
		id := *d.EmployeeID
		name := fmt.Sprintf("employee %d", id)
		if emp, ok := v.employees[id]; ok {
			name = emp.FullName
		}
		warnings = append(warnings, domain.ScheduleWarning{
			Kind:     domain.WarningAvailability,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("%s is not available %s %s-%s",
				name, DayName(d.Day), FormatMinute(d.StartMinute), FormatMinute(d.EndMinute)),
			Day:        &day,
			EmployeeID: &id,
			ShiftID:    d.ID,
		})
	}
	return warnings
}

// roleAwareCoverageWarnings counts, per bucket of each requirement, the
// assigned shifts whose employee satisfies the required role. Unlike the
// heat map this is role-aware, so a requirement for a shift lead is not
// "covered" by two baristas. One warning per day, at the first
// under-covered bucket.
func (v *Validator) roleAwareCoverageWarnings(drafts []*domain.DraftShift) []domain.ScheduleWarning {
	type reqBucket struct {
		day   int
		start int
	}
	deficit := make(map[reqBucket]int)

	for _, req := range v.requirements {
		head := req.Headcount
		if head < 1 {
			head = 1
		}
		forEachBucket(req.Day, req.StartMinute, req.EndMinute, v.window, func(k bucketKey) {
			covering := 0
			for _, d := range drafts {
				if d.EmployeeID == nil || d.Day != req.Day || d.EndMinute <= d.StartMinute {
					continue
				}
				if !overlaps(d.StartMinute, d.EndMinute, k.start, k.start+GridStep) {
					continue
				}
				if req.Role != nil {
					emp, ok := v.employees[*d.EmployeeID]
					if !ok || !emp.Role.Satisfies(*req.Role) {
						continue
					}
				}
				covering++
			}
			if covering < head {
				rb := reqBucket{day: k.day, start: k.start}
				if head-covering > deficit[rb] {
					deficit[rb] = head - covering
				}
			}
		})
	}

	buckets := make([]reqBucket, 0, len(deficit))
	for b := range deficit {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].day != buckets[j].day {
			return buckets[i].day < buckets[j].day
		}
		return buckets[i].start < buckets[j].start
	})

	var warnings []domain.ScheduleWarning
	warnedDays := make(map[int]bool)
	for _, b := range buckets {
		if warnedDays[b.day] {
			continue
		}
		warnedDays[b.day] = true
		day := b.day
		warnings = append(warnings, domain.ScheduleWarning{
			Kind:     domain.WarningUncovered,
			Severity: domain.SeverityCritical,
			Message: fmt.Sprintf("%s coverage falls short starting at %s (%d short)",
				DayName(day), FormatMinute(b.start), deficit[b]),
			Day: &day,
		})
	}
	return warnings
}

// Constraints exposes the normalized constraints the validator applies.
func (v *Validator) Constraints() domain.SchedulingConstraints {
	return v.constraints
}

// Employees exposes the roster lookup the validator was built with.
func (v *Validator) Employees() map[int64]*domain.Employee {
	return v.employees
}

// Resolver exposes the availability resolver for generation-time reuse.
func (v *Validator) Resolver() *AvailabilityResolver {
	return v.resolver
}

// Published exposes the persisted shifts used in cross checks.
func (v *Validator) Published() []*domain.PlannedShift {
	return v.published
}

// Window exposes the snapped visible window.
func (v *Validator) Window() TimeWindow {
	return v.window
}

// WeekStart exposes the normalized week anchor.
func (v *Validator) WeekStart() time.Time {
	return v.weekStart
}
