package projecthandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studioplan/internal/domain/kpi"
	"studioplan/internal/domain/project"
	"studioplan/internal/domain/settings"
	"studioplan/internal/transport/http/api"
	"studioplan/internal/transport/http/middleware"
)

type Handler struct {
	Service  *project.Service
	Settings *settings.Service
}

func NewHandler(service *project.Service, settingsSvc *settings.Service) *Handler {
	return &Handler{Service: service, Settings: settingsSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router, requireAdminKey func(http.Handler) http.Handler) {
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/bulk", h.handleCreateBulk)
		r.Get("/{projectID}", h.handleGet)
		r.Put("/{projectID}", h.handleUpdate)
		r.With(requireAdminKey).Delete("/{projectID}", h.handleDelete)
		r.Get("/{projectID}/progress", h.handleProgress)
		r.Get("/{projectID}/kpi-base", h.handleKPIBase)
	})
}

// projectView decorates a stored project with its derived numbers.
type projectView struct {
	project.Project
	Progress float64 `json:"progress"`
}

func view(p project.Project) projectView {
	return projectView{Project: p, Progress: project.CalculateProgress(p)}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.List(r.Context())
	if err != nil {
		slog.Warn("project list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "project_list_failed", "failed to list projects", middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, view(p))
	}
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, project.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "project_not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("project get failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "project_get_failed", "failed to load project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view(p), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Year     string           `json:"year"`
		Name     string           `json:"name"`
		Code     string           `json:"code"`
		Metadata project.Metadata `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	p, err := h.Service.Create(r.Context(), project.CreateInput{
		Year:     payload.Year,
		Name:     payload.Name,
		Code:     payload.Code,
		Metadata: payload.Metadata,
	})
	if err != nil {
		slog.Warn("project create failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "project_create_failed", "failed to create project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, view(p), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateBulk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Year  string `json:"year"`
		Lines string `json:"lines"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	lines := project.ParseBulkLines(payload.Lines)
	if len(lines) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "no valid project lines", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Year == "" {
		payload.Year = time.Now().Format("2006")
	}

	created, err := h.Service.CreateBulk(r.Context(), payload.Year, lines)
	if err != nil {
		slog.Warn("project bulk create failed", "err", err, "created", len(created))
		api.Fail(w, http.StatusInternalServerError, "project_bulk_failed", "bulk creation failed partway", middleware.GetRequestID(r.Context()))
		return
	}

	views := make([]projectView, 0, len(created))
	for _, p := range created {
		views = append(views, view(p))
	}
	api.Created(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload project.Project
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.ID = chi.URLParam(r, "projectID")

	p, err := h.Service.Update(r.Context(), payload)
	if errors.Is(err, project.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "project_not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("project update failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "project_update_failed", "failed to update project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view(p), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, project.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "project_not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("project delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "project_delete_failed", "failed to delete project", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, project.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "project_not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("project progress failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "project_get_failed", "failed to load project", middleware.GetRequestID(r.Context()))
		return
	}

	progress := project.CalculateProgress(p)
	api.Success(w, map[string]any{
		"progress": progress,
		"status":   project.DeriveStatus(progress),
	}, middleware.GetRequestID(r.Context()))
}

// handleKPIBase returns the project's effective KPI base plus the
// formula suggestion for the edit form.
func (h *Handler) handleKPIBase(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, project.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "project_not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("project kpi base failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "project_get_failed", "failed to load project", middleware.GetRequestID(r.Context()))
		return
	}

	baseCost, err := h.Settings.BaseDesignCost(r.Context())
	if err != nil {
		slog.Warn("base cost lookup failed", "err", err)
		baseCost = kpi.DefaultBaseCost
	}

	suggested := kpi.ProjectBase(
		kpi.ParseAmount(p.Metadata.UsableArea),
		kpi.ParseAmount(p.Metadata.GardenArea),
		baseCost,
	)
	api.Success(w, map[string]any{
		"effective": kpi.BaseFor(p),
		"suggested": suggested,
		"baseCost":  baseCost,
	}, middleware.GetRequestID(r.Context()))
}
