package scopehandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studioplan/internal/domain/scope"
	"studioplan/internal/transport/http/api"
	"studioplan/internal/transport/http/middleware"
)

type Handler struct {
	Service *scope.Service
}

func NewHandler(service *scope.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, requireAdminKey func(http.Handler) http.Handler) {
	r.Route("/scope", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/toggle", h.handleToggle)
		r.With(requireAdminKey).Delete("/", h.handleClear)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Service.Tags(r.Context())
	if err != nil {
		slog.Warn("scope load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to load scope tags", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tags.Keys(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ProjectID string `json:"projectId"`
		StageID   int    `json:"stageId"`
		ItemIndex int    `json:"itemIndex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.ProjectID == "" || payload.StageID < 1 || payload.ItemIndex < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "projectId, stageId and itemIndex are required", middleware.GetRequestID(r.Context()))
		return
	}

	on, err := h.Service.Toggle(r.Context(), payload.ProjectID, payload.StageID, payload.ItemIndex)
	if err != nil {
		slog.Warn("scope toggle failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to toggle scope tag", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"tagged": on}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Clear(r.Context()); err != nil {
		slog.Warn("scope clear failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "scope_failed", "failed to clear scope tags", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"cleared": true}, middleware.GetRequestID(r.Context()))
}
