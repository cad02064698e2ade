package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
	"github.com/daybreak-coffee/shift-planner/internal/repository"
	"github.com/daybreak-coffee/shift-planner/internal/scheduler"
	"github.com/daybreak-coffee/shift-planner/internal/utils"
)

// engineInputs bundles everything the scheduling engine needs for one
// week, loaded in a single place so generation, evaluation and publish
// all judge drafts against the same data.
type engineInputs struct {
	weekStart    time.Time
	location     *time.Location
	validator    *scheduler.Validator
	requirements []domain.CoverageRequirement
	employees    map[int64]*domain.Employee
}

func (h *Handler) loadEngineInputs(weekStart time.Time, loc *time.Location) (*engineInputs, error) {
	weekEnd := weekStart.AddDate(0, 0, scheduler.DaysPerWeek)

	requirements, err := h.repository.GetCoverageRequirementsByWeek(h.config.Shop.ID, weekStart)
	if err != nil {
		return nil, err
	}

	employeeList, err := h.repository.GetAllEmployees()
	if err != nil {
		return nil, err
	}
	employees := make(map[int64]*domain.Employee, len(employeeList))
	for _, e := range employeeList {
		employees[e.ID] = e
	}

	windows, err := h.repository.GetAvailabilityWindowsByShop(h.config.Shop.ID)
	if err != nil {
		return nil, err
	}
	overrides, err := h.repository.GetAvailabilityOverridesInRange(h.config.Shop.ID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	unavailable, err := h.repository.GetUnavailableDatesInRange(h.config.Shop.ID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	published, err := h.repository.GetPlannedShiftsInRange(h.config.Shop.ID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	resolver := scheduler.NewAvailabilityResolver(weekStart, loc, windows, overrides, unavailable)

	constraints := domain.SchedulingConstraints{
		MaxHoursPerWeek:       h.config.Scheduling.MaxHoursPerWeek,
		MaxShiftLengthHours:   h.config.Scheduling.MaxShiftLengthHours,
		MinRestHours:          h.config.Scheduling.MinRestHours,
		FairnessWeight:        h.config.Scheduling.FairnessWeight,
		PreferConsistentStart: h.config.Scheduling.PreferConsistentStart,
		OptionCount:           h.config.Scheduling.OptionCount,
	}

	window := scheduler.TimeWindow{
		StartMinute: h.config.Scheduling.VisibleWindowStartHour * 60,
		EndMinute:   h.config.Scheduling.VisibleWindowEndHour * 60,
	}

	validator := scheduler.NewValidator(constraints, employees, resolver, requirements, published, window)

	return &engineInputs{
		weekStart:    weekStart,
		location:     loc,
		validator:    validator,
		requirements: requirements,
		employees:    employees,
	}, nil
}

func (h *Handler) optionCacheKey(weekStart time.Time) string {
	return fmt.Sprintf("schedule_options_%s_%s", h.config.Shop.ID, weekStart.Format("2006-01-02"))
}

func (h *Handler) GenerateScheduleOptions(w http.ResponseWriter, r *http.Request) {
	weekStart, loc, err := h.parseWeekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	inputs, err := h.loadEngineInputs(weekStart, loc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(inputs.requirements) == 0 {
		h.errorResponse(w, r, "no coverage requirements defined for this week")
		return
	}

	// seeded per week so regenerating the same week reproduces the
	// same options until the inputs change
	seed := weekStart.Unix()
	generator := scheduler.NewGenerator(inputs.validator, inputs.requirements, seed)
	options := generator.Generate()

	// cache the batch so the board can reload options without rerunning
	// the search
	payload, err := json.Marshal(options)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.Scheduling.OptionCacheExpiration) * time.Second
	if err := h.redisClient.Set(ctx, h.optionCacheKey(weekStart), payload, expiration).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "schedule options generated", options)
}

func (h *Handler) GetCachedScheduleOptions(w http.ResponseWriter, r *http.Request) {
	weekStart, _, err := h.parseWeekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	payload, err := h.redisClient.Get(ctx, h.optionCacheKey(weekStart)).Bytes()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.successResponse(w, r, "no generated options for this week", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	var options []*domain.ScheduleOption
	if err := json.Unmarshal(payload, &options); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", options)
}

func (h *Handler) EvaluateDraft(w http.ResponseWriter, r *http.Request) {
	weekStart, loc, err := h.parseWeekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Shifts []*domain.DraftShift `json:"shifts" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	inputs, err := h.loadEngineInputs(weekStart, loc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	warnings := inputs.validator.Validate(req.Shifts)
	eval := scheduler.EvaluateCoverage(inputs.requirements, req.Shifts, inputs.validator.Window())
	score := scheduler.ScoreSchedule(req.Shifts, warnings, eval, inputs.validator.Constraints().FairnessWeight)

	h.successResponse(w, r, "ok", map[string]any{
		"warnings": warnings,
		"buckets":  eval.Buckets,
		"score":    score,
	})
}

func (h *Handler) PublishWeek(w http.ResponseWriter, r *http.Request) {
	weekStart, loc, err := h.parseWeekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	var req struct {
		Shifts []*domain.DraftShift `json:"shifts" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	inputs, err := h.loadEngineInputs(weekStart, loc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan, err := scheduler.BuildWeekPlan(req.Shifts, weekStart, inputs.employees, h.config.Shop.ID)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrEmployeeNotFound), errors.Is(err, scheduler.ErrInvalidShift):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	weekEnd := weekStart.AddDate(0, 0, scheduler.DaysPerWeek)
	if err := h.repository.ReplacePlannedShifts(h.config.Shop.ID, weekStart, weekEnd, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrCompletedShiftsInWindow):
			h.errorResponse(w, r, "some shifts in this week are already completed and cannot be replaced")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.notifyPublishedShifts(plan, inputs.employees, weekStart); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "week published", plan)
}

func (h *Handler) PublishMonth(w http.ResponseWriter, r *http.Request) {
	loc, err := time.LoadLocation(h.config.Shop.Timezone)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var req struct {
		Month  string               `json:"month" validate:"required"`
		Shifts []*domain.DraftShift `json:"shifts" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	monthAnchor, err := time.ParseInLocation("2006-01", req.Month, loc)
	if err != nil {
		h.errorResponse(w, r, "month must be formatted as YYYY-MM")
		return
	}

	weekStart := scheduler.NormalizedWeekStart(monthAnchor, loc)
	inputs, err := h.loadEngineInputs(weekStart, loc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	plan, err := scheduler.BuildMonthPlan(req.Shifts, monthAnchor, loc, inputs.employees, h.config.Shop.ID)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrEmployeeNotFound), errors.Is(err, scheduler.ErrInvalidShift):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	monthStart := time.Date(monthAnchor.Year(), monthAnchor.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)
	if err := h.repository.ReplacePlannedShifts(h.config.Shop.ID, monthStart, monthEnd, plan); err != nil {
		switch {
		case errors.Is(err, repository.ErrCompletedShiftsInWindow):
			h.errorResponse(w, r, "some shifts in this month are already completed and cannot be replaced")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.notifyPublishedShifts(plan, inputs.employees, monthStart); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "month published", plan)
}

// notifyPublishedShifts queues one summary email per affected employee.
func (h *Handler) notifyPublishedShifts(plan []*domain.PlannedShift, employees map[int64]*domain.Employee, periodStart time.Time) error {
	byEmployee := make(map[int64][]string)
	for _, shift := range plan {
		line := utils.FormatShiftLine(
			shift.StartTime.Format("Mon Jan 2"),
			shift.StartTime.Hour()*60+shift.StartTime.Minute(),
			shift.EndTime.Hour()*60+shift.EndTime.Minute(),
		)
		byEmployee[shift.EmployeeID] = append(byEmployee[shift.EmployeeID], line)
	}

	for employeeID, lines := range byEmployee {
		employee, ok := employees[employeeID]
		if !ok {
			continue
		}
		msg := domain.MailMessage{
			Type: "schedule_published",
			To:   employee.Email,
			Data: domain.SchedulePublishedMailData{
				FullName:  employee.FullName,
				WeekStart: periodStart.Format("2006-01-02"),
				Shifts:    lines,
			},
		}
		if err := h.publishNotification(msg); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	weekStart, _, err := h.parseWeekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekEnd := weekStart.AddDate(0, 0, scheduler.DaysPerWeek)
	shifts, err := h.repository.GetPlannedShiftsInRange(h.config.Shop.ID, weekStart, weekEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", shifts)
}

func (h *Handler) GetMyShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	weekStart, _, err := h.parseWeekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekEnd := weekStart.AddDate(0, 0, scheduler.DaysPerWeek)
	shifts, err := h.repository.GetPlannedShiftsByEmployee(myInfo.ID, weekStart, weekEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", shifts)
}
