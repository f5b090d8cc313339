package reportshandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studioplan/internal/domain/kpi"
	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
	"studioplan/internal/domain/reports"
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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/plan.pdf", h.handlePlanPDF)
		r.Get("/kpi.pdf", h.handleKPIPDF)
	})
}

func (h *Handler) handlePlanPDF(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Planning.List(r.Context())
	if err != nil {
		slog.Warn("plan report load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load plan entries", middleware.GetRequestID(r.Context()))
		return
	}

	weekOf := shared.ParseWeekOf(r, time.Now())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=plan-week-%s.pdf", weekOf.Format("2006-01-02")))

	if err := reports.WeeklyPlanPDF(w, weekOf, entries); err != nil {
		slog.Warn("plan report render failed", "err", err)
	}
}

func (h *Handler) handleKPIPDF(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Settings.Employees(r.Context())
	if err != nil {
		slog.Warn("kpi report roster load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load roster", middleware.GetRequestID(r.Context()))
		return
	}
	entries, err := h.Planning.List(r.Context())
	if err != nil {
		slog.Warn("kpi report plan load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load plan entries", middleware.GetRequestID(r.Context()))
		return
	}
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		slog.Warn("kpi report project load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load projects", middleware.GetRequestID(r.Context()))
		return
	}
	cfg, err := h.Settings.WeightConfig(r.Context())
	if err != nil {
		slog.Warn("kpi report weights load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to load weight config", middleware.GetRequestID(r.Context()))
		return
	}
	byID := make(map[string]project.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	month, year := shared.ParseMonth(r, time.Now())
	rows := kpi.Leaderboard(employees, month, year, entries, byID, cfg)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=kpi-%d-%02d.pdf", year, month))

	if err := reports.MonthlyKPIPDF(w, month, year, rows); err != nil {
		slog.Warn("kpi report render failed", "err", err)
	}
}
