package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

var (
	// ErrEmployeeNotFound means a draft references an employee missing
	// from the roster snapshot.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrInvalidShift means a draft has a non-positive time range.
	ErrInvalidShift = errors.New("invalid shift")
)

// BuildWeekPlan converts the draft board into persisted shift records
// for the anchored week. Every draft is validated before a single
// record is produced: either the whole plan converts or none of it
// does. Open shifts are dropped, they carry no assignment to persist.
func BuildWeekPlan(
	drafts []*domain.DraftShift,
	weekStart time.Time,
	employees map[int64]*domain.Employee,
	shopID string,
) ([]*domain.PlannedShift, error) {
	if err := checkDrafts(drafts, employees); err != nil {
		return nil, err
	}

	var plan []*domain.PlannedShift
	for _, d := range drafts {
		if d.EmployeeID == nil {
			continue
		}
		plan = append(plan, plannedFromDraft(d, weekStart, shopID))
	}
	return plan, nil
}

// BuildMonthPlan repeats the weekly pattern across every week that
// touches the month containing monthAnchor. A shift is emitted only
// when its concrete date falls inside that month, so a Monday shift is
// skipped in a week whose Monday belongs to the previous month.
func BuildMonthPlan(
	drafts []*domain.DraftShift,
	monthAnchor time.Time,
	loc *time.Location,
	employees map[int64]*domain.Employee,
	shopID string,
) ([]*domain.PlannedShift, error) {
	if err := checkDrafts(drafts, employees); err != nil {
		return nil, err
	}

	anchor := monthAnchor.In(loc)
	firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
	firstWeek := NormalizedWeekStart(firstOfMonth, loc)

	var plan []*domain.PlannedShift
	for weekStart := firstWeek; ; weekStart = weekStart.AddDate(0, 0, DaysPerWeek) {
		if weekStart.Month() != anchor.Month() && weekStart.After(firstOfMonth) {
			break
		}
		for _, d := range drafts {
			if d.EmployeeID == nil {
				continue
			}
			date := DateForDay(weekStart, d.Day)
			if date.Month() != anchor.Month() || date.Year() != anchor.Year() {
				continue
			}
			plan = append(plan, plannedFromDraft(d, weekStart, shopID))
		}
	}
	return plan, nil
}

// checkDrafts runs the fail-fast validation pass shared by the week and
// month builders.
func checkDrafts(drafts []*domain.DraftShift, employees map[int64]*domain.Employee) error {
	for _, d := range drafts {
		if d.EndMinute <= d.StartMinute || d.Day < 0 || d.Day >= DaysPerWeek {
			return fmt.Errorf("%w: %s %s-%s", ErrInvalidShift,
				DayName(d.Day), FormatMinute(d.StartMinute), FormatMinute(d.EndMinute))
		}
		if d.EmployeeID == nil {
			continue
		}
		if _, ok := employees[*d.EmployeeID]; !ok {
			return fmt.Errorf("%w: id %d", ErrEmployeeNotFound, *d.EmployeeID)
		}
	}
	return nil
}

func plannedFromDraft(d *domain.DraftShift, weekStart time.Time, shopID string) *domain.PlannedShift {
	p := &domain.PlannedShift{
		ShopID:     shopID,
		EmployeeID: *d.EmployeeID,
		StartTime:  AbsoluteTime(weekStart, d.Day, d.StartMinute),
		EndTime:    AbsoluteTime(weekStart, d.Day, d.EndMinute),
		Status:     domain.ShiftStatusPublished,
		Notes:      d.Notes,
	}
	if d.Role != nil {
		role := *d.Role
		p.Role = &role
	}
	return p
}
