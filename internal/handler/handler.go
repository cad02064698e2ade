package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/daybreak-coffee/shift-planner/internal/config"
	"github.com/daybreak-coffee/shift-planner/internal/domain"
	"github.com/daybreak-coffee/shift-planner/internal/repository"
)

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	translator    ut.Translator
	notifyChannel *amqp.Channel
	redisClient   *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		translator:    trans,
		notifyChannel: notifyCh,
		redisClient:   rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a valid session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Get("/shifts", h.GetMyShifts)
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateEmployee)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteEmployee)
			})
		})

		r.Route("/coverage-requirements", func(r chi.Router) {
			r.Get("/", h.GetCoverageRequirements)
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleShiftLead}))
				r.Post("/", h.CreateCoverageRequirement)
				r.Post("/copy-week", h.CopyCoverageWeek)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.coverageRequirement)
					r.Patch("/", h.UpdateCoverageRequirement)
					r.Delete("/", h.DeleteCoverageRequirement)
				})
			})
		})

		r.Route("/availability", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Route("/windows", func(r chi.Router) {
				r.Use(h.preventInactiveEmployee)
				r.Get("/", h.GetMyAvailabilityWindows)
				r.Put("/", h.ReplaceMyAvailabilityWindows)
			})
			r.Route("/overrides", func(r chi.Router) {
				r.Post("/", h.CreateAvailabilityOverride)
				r.Delete("/{id}", h.DeleteAvailabilityOverride)
			})
			r.Route("/unavailable-dates", func(r chi.Router) {
				r.Post("/", h.CreateUnavailableDate)
				r.Delete("/{id}", h.DeleteUnavailableDate)
			})
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Get("/week", h.GetWeekSchedule)
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleManager, domain.RoleShiftLead}))
				r.Post("/generate", h.GenerateScheduleOptions)
				r.Get("/options", h.GetCachedScheduleOptions)
				r.Post("/evaluate", h.EvaluateDraft)
			})
			r.Group(func(r chi.Router) {
				r.Use(h.RequiredRole([]domain.Role{domain.RoleManager}))
				r.Post("/publish/week", h.PublishWeek)
				r.Post("/publish/month", h.PublishMonth)
			})
		})
	})
}
