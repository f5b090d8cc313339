package alertshandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studioplan/internal/domain/alerts"
	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
	"studioplan/internal/transport/http/api"
	"studioplan/internal/transport/http/middleware"
)

type Handler struct {
	Projects *project.Service
	Planning *planning.Service
}

func NewHandler(projects *project.Service, planningSvc *planning.Service) *Handler {
	return &Handler{Projects: projects, Planning: planningSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/alerts", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/strict", h.handleStrict)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		slog.Warn("alert project load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "alerts_failed", "failed to load projects", middleware.GetRequestID(r.Context()))
		return
	}

	out := alerts.Generate(projects, time.Now())

	// Stale plan entries ride along so the board can clean them up.
	if entries, err := h.Planning.List(r.Context()); err != nil {
		slog.Warn("alert plan load failed", "err", err)
	} else {
		byID := make(map[string]project.Project, len(projects))
		for _, p := range projects {
			byID[p.ID] = p
		}
		out = append(out, alerts.DanglingAssignments(entries, byID)...)
	}

	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStrict(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		slog.Warn("strict alert load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "alerts_failed", "failed to load projects", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, alerts.StrictDelays(projects, time.Now()), middleware.GetRequestID(r.Context()))
}
