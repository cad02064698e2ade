package seed

import (
	"log/slog"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/config"
	"github.com/daybreak-coffee/shift-planner/internal/domain"
	"github.com/daybreak-coffee/shift-planner/internal/repository"
	"github.com/daybreak-coffee/shift-planner/internal/scheduler"
	"github.com/daybreak-coffee/shift-planner/internal/utils"
)

const demoEmailDomain = "daybreak.test"

// SeedEmployees inserts count random employees, each with a plausible
// recurring availability submission. All of them share the configured
// seed password so they can be logged into during development.
func SeedEmployees(r *repository.Repository, cfg *config.Config, count int) {
	inserted := 0
	for i := 0; i < count; i++ {
		employee, err := utils.GenerateRandomEmployee(cfg.Seed.EmployeePassword, demoEmailDomain)
		if err != nil {
			slog.Error("failed to generate employee", "error", err)
			continue
		}

		exists, err := r.CheckEmailIfExists(employee.Email)
		if err != nil {
			slog.Error("failed to check email", "error", err)
			continue
		}
		if exists {
			// random names collide occasionally, just skip
			continue
		}

		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("failed to insert employee", "email", employee.Email, "error", err)
			continue
		}

		windows := utils.GenerateRandomAvailabilityWindows()
		if err := r.ReplaceAvailabilityWindows(cfg.Shop.ID, employee.ID, windows); err != nil {
			slog.Error("failed to insert availability windows", "employeeID", employee.ID, "error", err)
			continue
		}

		inserted++
	}

	slog.Info("seeded employees", "count", inserted)
}

// SeedCoverageWeek inserts the demo coverage requirements for the week
// containing anchor. Existing requirements for that week are left
// untouched, so running it twice doubles the headcounts.
func SeedCoverageWeek(r *repository.Repository, cfg *config.Config, anchor time.Time) {
	loc, err := time.LoadLocation(cfg.Shop.Timezone)
	if err != nil {
		slog.Error("failed to load shop timezone", "error", err)
		return
	}

	weekStart := scheduler.NormalizedWeekStart(anchor, loc)

	inserted := 0
	for _, requirement := range utils.GenerateDemoCoverageWeek() {
		requirement.ShopID = cfg.Shop.ID
		requirement.WeekStart = weekStart

		if err := r.CreateCoverageRequirement(&requirement); err != nil {
			slog.Error("failed to insert coverage requirement", "day", requirement.Day, "error", err)
			continue
		}

		inserted++
	}

	slog.Info("seeded coverage requirements", "weekStart", weekStart.Format("2006-01-02"), "count", inserted)
}

// SeedDemoSchedule publishes a generated draft for the week containing
// anchor, so a fresh environment has something on the board. It uses
// the same engine the API uses.
func SeedDemoSchedule(r *repository.Repository, cfg *config.Config, anchor time.Time) {
	loc, err := time.LoadLocation(cfg.Shop.Timezone)
	if err != nil {
		slog.Error("failed to load shop timezone", "error", err)
		return
	}

	weekStart := scheduler.NormalizedWeekStart(anchor, loc)

	requirements, err := r.GetCoverageRequirementsByWeek(cfg.Shop.ID, weekStart)
	if err != nil {
		slog.Error("failed to load coverage requirements", "error", err)
		return
	}
	if len(requirements) == 0 {
		slog.Error("no coverage requirements for week, seed coverage first", "weekStart", weekStart.Format("2006-01-02"))
		return
	}

	employeeList, err := r.GetAllEmployees()
	if err != nil {
		slog.Error("failed to load employees", "error", err)
		return
	}
	roster := make(map[int64]*domain.Employee, len(employeeList))
	for _, employee := range employeeList {
		roster[employee.ID] = employee
	}

	windows, err := r.GetAvailabilityWindowsByShop(cfg.Shop.ID)
	if err != nil {
		slog.Error("failed to load availability windows", "error", err)
		return
	}

	resolver := scheduler.NewAvailabilityResolver(weekStart, loc, windows, nil, nil)

	constraints := domain.SchedulingConstraints{
		MaxHoursPerWeek:       cfg.Scheduling.MaxHoursPerWeek,
		MaxShiftLengthHours:   cfg.Scheduling.MaxShiftLengthHours,
		MinRestHours:          cfg.Scheduling.MinRestHours,
		FairnessWeight:        cfg.Scheduling.FairnessWeight,
		PreferConsistentStart: cfg.Scheduling.PreferConsistentStart,
		OptionCount:           cfg.Scheduling.OptionCount,
	}
	window := scheduler.TimeWindow{
		StartMinute: cfg.Scheduling.VisibleWindowStartHour * 60,
		EndMinute:   cfg.Scheduling.VisibleWindowEndHour * 60,
	}

	validator := scheduler.NewValidator(constraints, roster, resolver, requirements, nil, window)

	generator := scheduler.NewGenerator(validator, requirements, weekStart.Unix())
	options := generator.Generate()
	if len(options) == 0 {
		slog.Error("generator produced no options")
		return
	}

	plan, err := scheduler.BuildWeekPlan(options[0].Shifts, weekStart, roster, cfg.Shop.ID)
	if err != nil {
		slog.Error("failed to build week plan", "error", err)
		return
	}

	if err := r.ReplacePlannedShifts(cfg.Shop.ID, weekStart, weekStart.AddDate(0, 0, 7), plan); err != nil {
		slog.Error("failed to publish seeded schedule", "error", err)
		return
	}

	slog.Info("seeded published schedule", "weekStart", weekStart.Format("2006-01-02"), "shifts", len(plan))
}
