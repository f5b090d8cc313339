package kpihandler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"studioplan/internal/domain/kpi"
	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
	"studioplan/internal/domain/settings"
	"studioplan/internal/transport/http/api"
	"studioplan/internal/transport/http/middleware"
	"studioplan/internal/transport/http/shared"
)

type Handler struct {
	Projects *project.Service
	Planning *planning.Service
	Settings *settings.Service
}

func NewHandler(projects *project.Service, planningSvc *planning.Service, settingsSvc *settings.Service) *Handler {
	return &Handler{Projects: projects, Planning: planningSvc, Settings: settingsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router, requireAdminKey func(http.Handler) http.Handler) {
	r.Route("/kpi", func(r chi.Router) {
		r.Get("/weights", h.handleGetWeights)
		r.With(requireAdminKey).Put("/weights", h.handlePutWeights)
		r.Get("/monthly", h.handleMonthly)
		r.Get("/leaderboard", h.handleLeaderboard)
	})
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.With(requireAdminKey).Post("/", h.handleCreateEmployee)
		r.With(requireAdminKey).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(requireAdminKey).Delete("/{employeeID}", h.handleDeleteEmployee)
	})
}

func (h *Handler) handleGetWeights(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Settings.WeightConfig(r.Context())
	if err != nil {
		slog.Warn("weight config load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "weights_load_failed", "failed to load weight config", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cfg, middleware.GetRequestID(r.Context()))
}

// handlePutWeights accepts any split but flags stages whose task
// weights drift off 100 so the editor can warn without blocking.
func (h *Handler) handlePutWeights(w http.ResponseWriter, r *http.Request) {
	var cfg kpi.WeightConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Settings.SaveWeightConfig(r.Context(), cfg); err != nil {
		slog.Warn("weight config save failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "weights_save_failed", "failed to save weight config", middleware.GetRequestID(r.Context()))
		return
	}

	var unbalanced []int
	for _, sw := range cfg.Stages {
		if math.Abs(cfg.StageTaskTotal(sw.StageID)-100) > 0.5 {
			unbalanced = append(unbalanced, sw.StageID)
		}
	}
	api.Success(w, map[string]any{
		"config":           cfg,
		"unbalancedStages": unbalanced,
	}, middleware.GetRequestID(r.Context()))
}

// monthContext loads everything a monthly KPI question needs.
func (h *Handler) monthContext(r *http.Request) ([]planning.Entry, map[string]project.Project, kpi.WeightConfig, error) {
	entries, err := h.Planning.List(r.Context())
	if err != nil {
		return nil, nil, kpi.WeightConfig{}, err
	}
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		return nil, nil, kpi.WeightConfig{}, err
	}
	cfg, err := h.Settings.WeightConfig(r.Context())
	if err != nil {
		return nil, nil, kpi.WeightConfig{}, err
	}

	byID := make(map[string]project.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	return entries, byID, cfg, nil
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	assignee := r.URL.Query().Get("assignee")
	if assignee == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "assignee is required", middleware.GetRequestID(r.Context()))
		return
	}

	entries, projects, cfg, err := h.monthContext(r)
	if err != nil {
		slog.Warn("monthly kpi failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "kpi_failed", "failed to compute monthly kpi", middleware.GetRequestID(r.Context()))
		return
	}

	month, year := shared.ParseMonth(r, time.Now())
	earned := kpi.MonthlyEarnedKPI(assignee, month, year, entries, projects, cfg)
	api.Success(w, map[string]any{
		"assignee": assignee,
		"month":    int(month),
		"year":     year,
		"earned":   earned,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Settings.Employees(r.Context())
	if err != nil {
		slog.Warn("leaderboard roster load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "kpi_failed", "failed to load roster", middleware.GetRequestID(r.Context()))
		return
	}

	entries, projects, cfg, err := h.monthContext(r)
	if err != nil {
		slog.Warn("leaderboard failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "kpi_failed", "failed to compute leaderboard", middleware.GetRequestID(r.Context()))
		return
	}

	month, year := shared.ParseMonth(r, time.Now())
	rows := kpi.Leaderboard(employees, month, year, entries, projects, cfg)
	api.Success(w, map[string]any{
		"month": int(month),
		"year":  year,
		"rows":  rows,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Settings.Employees(r.Context())
	if err != nil {
		slog.Warn("employee list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp kpi.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if emp.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	emp.ID = uuid.NewString()

	employees, err := h.Settings.Employees(r.Context())
	if err != nil {
		slog.Warn("employee create load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_save_failed", "failed to load roster", middleware.GetRequestID(r.Context()))
		return
	}
	employees = append(employees, emp)

	if err := h.Settings.SaveEmployees(r.Context(), employees); err != nil {
		slog.Warn("employee create save failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_save_failed", "failed to save roster", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var emp kpi.Employee
	if err := json.NewDecoder(r.Body).Decode(&emp); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	emp.ID = chi.URLParam(r, "employeeID")

	employees, err := h.Settings.Employees(r.Context())
	if err != nil {
		slog.Warn("employee update load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_save_failed", "failed to load roster", middleware.GetRequestID(r.Context()))
		return
	}

	found := false
	for i := range employees {
		if employees[i].ID == emp.ID {
			employees[i] = emp
			found = true
			break
		}
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Settings.SaveEmployees(r.Context(), employees); err != nil {
		slog.Warn("employee update save failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_save_failed", "failed to save roster", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")

	employees, err := h.Settings.Employees(r.Context())
	if err != nil {
		slog.Warn("employee delete load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_save_failed", "failed to load roster", middleware.GetRequestID(r.Context()))
		return
	}

	kept := employees[:0]
	found := false
	for _, e := range employees {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Settings.SaveEmployees(r.Context(), kept); err != nil {
		slog.Warn("employee delete save failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_save_failed", "failed to save roster", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
