package assistanthandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"studioplan/internal/domain/assistant"
	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
	"studioplan/internal/transport/http/api"
	"studioplan/internal/transport/http/middleware"
)

type Handler struct {
	Service  *assistant.Service
	Projects *project.Service
	Planning *planning.Service
}

func NewHandler(service *assistant.Service, projects *project.Service, planningSvc *planning.Service) *Handler {
	return &Handler{Service: service, Projects: projects, Planning: planningSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/assistant/ask", h.handleAsk)
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if strings.TrimSpace(payload.Question) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "question is required", middleware.GetRequestID(r.Context()))
		return
	}

	projects, err := h.Projects.List(r.Context())
	if err != nil {
		slog.Warn("assistant project load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "assistant_failed", "failed to load projects", middleware.GetRequestID(r.Context()))
		return
	}
	entries, err := h.Planning.List(r.Context())
	if err != nil {
		slog.Warn("assistant plan load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "assistant_failed", "failed to load plan entries", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, h.Service.Ask(payload.Question, projects, entries), middleware.GetRequestID(r.Context()))
}
