package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
	"github.com/daybreak-coffee/shift-planner/internal/scheduler"
)

// parseWeekParam resolves the ?week= query parameter (any date inside
// the wanted week, RFC 3339 date) to the normalized Monday anchor in
// the shop's timezone.
func (h *Handler) parseWeekParam(r *http.Request) (time.Time, *time.Location, error) {
	loc, err := time.LoadLocation(h.config.Shop.Timezone)
	if err != nil {
		return time.Time{}, nil, err
	}

	weekParam := r.URL.Query().Get("week")
	if weekParam == "" {
		return scheduler.NormalizedWeekStart(time.Now(), loc), loc, nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", weekParam, loc)
	if err != nil {
		return time.Time{}, nil, errors.New("week must be a date formatted as YYYY-MM-DD")
	}

	return scheduler.NormalizedWeekStart(parsed, loc), loc, nil
}

func (h *Handler) GetCoverageRequirements(w http.ResponseWriter, r *http.Request) {
	weekStart, _, err := h.parseWeekParam(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	requirements, err := h.repository.GetCoverageRequirementsByWeek(h.config.Shop.ID, weekStart)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", requirements)
}

func (h *Handler) CreateCoverageRequirement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Week        string  `json:"week" validate:"required"`
		Day         int     `json:"day" validate:"min=0,max=6"`
		StartMinute int     `json:"startMinute" validate:"min=0,max=1440"`
		EndMinute   int     `json:"endMinute" validate:"min=0,max=1440"`
		Headcount   int     `json:"headcount" validate:"min=1"`
		Role        *string `json:"role" validate:"omitempty,oneof=employee shift_lead manager"`
		Notes       string  `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.EndMinute <= req.StartMinute {
		h.errorResponse(w, r, "end must be after start")
		return
	}

	loc, err := time.LoadLocation(h.config.Shop.Timezone)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	parsed, err := time.ParseInLocation("2006-01-02", req.Week, loc)
	if err != nil {
		h.errorResponse(w, r, "week must be a date formatted as YYYY-MM-DD")
		return
	}

	requirement := &domain.CoverageRequirement{
		ShopID:      h.config.Shop.ID,
		WeekStart:   scheduler.NormalizedWeekStart(parsed, loc),
		Day:         req.Day,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		Headcount:   req.Headcount,
		Notes:       req.Notes,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		requirement.Role = &role
	}

	if err := h.repository.CreateCoverageRequirement(requirement); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "coverage requirement created", requirement)
}

func (h *Handler) UpdateCoverageRequirement(w http.ResponseWriter, r *http.Request) {
	requirement := r.Context().Value(CoverageRequirementCtx).(*domain.CoverageRequirement)

	var req struct {
		Day         *int    `json:"day" validate:"omitempty,min=0,max=6"`
		StartMinute *int    `json:"startMinute" validate:"omitempty,min=0,max=1440"`
		EndMinute   *int    `json:"endMinute" validate:"omitempty,min=0,max=1440"`
		Headcount   *int    `json:"headcount" validate:"omitempty,min=1"`
		Role        *string `json:"role" validate:"omitempty,oneof=employee shift_lead manager"`
		Notes       *string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Day != nil {
		requirement.Day = *req.Day
	}
	if req.StartMinute != nil {
		requirement.StartMinute = *req.StartMinute
	}
	if req.EndMinute != nil {
		requirement.EndMinute = *req.EndMinute
	}
	if req.Headcount != nil {
		requirement.Headcount = *req.Headcount
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		requirement.Role = &role
	}
	if req.Notes != nil {
		requirement.Notes = *req.Notes
	}

	if requirement.EndMinute <= requirement.StartMinute {
		h.errorResponse(w, r, "end must be after start")
		return
	}

	if err := h.repository.UpdateCoverageRequirement(requirement); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "coverage requirement updated", requirement)
}

func (h *Handler) DeleteCoverageRequirement(w http.ResponseWriter, r *http.Request) {
	requirement := r.Context().Value(CoverageRequirementCtx).(*domain.CoverageRequirement)

	if err := h.repository.DeleteCoverageRequirement(requirement.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "coverage requirement deleted", nil)
}

func (h *Handler) CopyCoverageWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromWeek string `json:"fromWeek" validate:"required"`
		ToWeek   string `json:"toWeek" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	loc, err := time.LoadLocation(h.config.Shop.Timezone)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	fromParsed, err := time.ParseInLocation("2006-01-02", req.FromWeek, loc)
	if err != nil {
		h.errorResponse(w, r, "fromWeek must be a date formatted as YYYY-MM-DD")
		return
	}
	toParsed, err := time.ParseInLocation("2006-01-02", req.ToWeek, loc)
	if err != nil {
		h.errorResponse(w, r, "toWeek must be a date formatted as YYYY-MM-DD")
		return
	}

	fromWeek := scheduler.NormalizedWeekStart(fromParsed, loc)
	toWeek := scheduler.NormalizedWeekStart(toParsed, loc)
	if fromWeek.Equal(toWeek) {
		h.errorResponse(w, r, "source and target week are the same")
		return
	}

	if err := h.repository.CopyCoverageRequirements(h.config.Shop.ID, fromWeek, toWeek); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "coverage requirements copied", nil)
}
