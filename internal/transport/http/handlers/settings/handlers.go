package settingshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"studioplan/internal/domain/settings"
	"studioplan/internal/transport/http/api"
	"studioplan/internal/transport/http/middleware"
)

type Handler struct {
	Service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/app-links", h.handleGetAppLinks)
		r.Put("/app-links", h.handlePutAppLinks)
		r.Post("/app-links/{linkID}/favorite", h.handleToggleFavorite)
		r.Get("/base-cost", h.handleGetBaseCost)
		r.Put("/base-cost", h.handlePutBaseCost)
	})
}

func (h *Handler) handleGetAppLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.Service.AppLinks(r.Context())
	if err != nil {
		slog.Warn("app links load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to load app links", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, links, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePutAppLinks(w http.ResponseWriter, r *http.Request) {
	var links []settings.AppLink
	if err := json.NewDecoder(r.Body).Decode(&links); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	for _, l := range links {
		if l.Label == "" || l.URL == "" {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "every link needs a label and url", middleware.GetRequestID(r.Context()))
			return
		}
	}

	if err := h.Service.SaveAppLinks(r.Context(), links); err != nil {
		slog.Warn("app links save failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to save app links", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, links, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	linkID := chi.URLParam(r, "linkID")
	links, err := h.Service.ToggleFavorite(r.Context(), linkID)
	if err != nil {
		if errors.Is(err, settings.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "link_not_found", "app link not found", middleware.GetRequestID(r.Context()))
			return
		}
		slog.Warn("app link favorite failed", "err", err, "link", linkID)
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to update app link", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, links, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetBaseCost(w http.ResponseWriter, r *http.Request) {
	cost, err := h.Service.BaseDesignCost(r.Context())
	if err != nil {
		slog.Warn("base cost load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to load base cost", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]float64{"baseCost": cost}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePutBaseCost(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		BaseCost float64 `json:"baseCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.SetBaseDesignCost(r.Context(), payload.BaseCost); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]float64{"baseCost": payload.BaseCost}, middleware.GetRequestID(r.Context()))
}
