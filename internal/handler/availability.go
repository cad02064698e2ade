package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
	"github.com/daybreak-coffee/shift-planner/internal/utils"
)

func (h *Handler) GetMyAvailabilityWindows(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	windows, err := h.repository.GetAvailabilityWindowsByEmployee(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "ok", windows)
}

func (h *Handler) ReplaceMyAvailabilityWindows(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		Windows []struct {
			Day         int `json:"day" validate:"min=0,max=6"`
			StartMinute int `json:"startMinute" validate:"min=0,max=1440"`
			EndMinute   int `json:"endMinute" validate:"min=0,max=1440"`
		} `json:"windows" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	windows := make([]domain.AvailabilityWindow, 0, len(req.Windows))
	for _, win := range req.Windows {
		windows = append(windows, domain.AvailabilityWindow{
			Day:         win.Day,
			StartMinute: win.StartMinute,
			EndMinute:   win.EndMinute,
		})
	}

	if err := utils.ValidateAvailabilityWindows(windows); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.ReplaceAvailabilityWindows(h.config.Shop.ID, myInfo.ID, windows); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "availability updated", windows)
}

func (h *Handler) CreateAvailabilityOverride(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		Date        string `json:"date" validate:"required"`
		StartMinute int    `json:"startMinute" validate:"min=0,max=1440"`
		EndMinute   int    `json:"endMinute" validate:"min=0,max=1440"`
		IsAvailable bool   `json:"isAvailable"`
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
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		h.errorResponse(w, r, "date must be formatted as YYYY-MM-DD")
		return
	}

	override := &domain.AvailabilityOverride{
		ShopID:      h.config.Shop.ID,
		EmployeeID:  myInfo.ID,
		Date:        date,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		IsAvailable: req.IsAvailable,
	}

	if err := h.repository.CreateAvailabilityOverride(override); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "override created", override)
}

func (h *Handler) DeleteAvailabilityOverride(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid override id")
		return
	}

	if err := h.repository.DeleteAvailabilityOverride(id, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "override not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "override deleted", nil)
}

func (h *Handler) CreateUnavailableDate(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	var req struct {
		Date   string `json:"date" validate:"required"`
		Reason string `json:"reason"`
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
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		h.errorResponse(w, r, "date must be formatted as YYYY-MM-DD")
		return
	}

	unavailable := &domain.UnavailableDate{
		ShopID:     h.config.Shop.ID,
		EmployeeID: myInfo.ID,
		Date:       date,
		Reason:     req.Reason,
	}

	if err := h.repository.CreateUnavailableDate(unavailable); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "unavailable date created", unavailable)
}

func (h *Handler) DeleteUnavailableDate(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Employee)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid id")
		return
	}

	if err := h.repository.DeleteUnavailableDate(id, myInfo.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "unavailable date not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "unavailable date deleted", nil)
}
