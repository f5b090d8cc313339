package planninghandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/project"
	"studioplan/internal/domain/schedule"
	"studioplan/internal/domain/scope"
	"studioplan/internal/domain/stage"
	"studioplan/internal/transport/http/api"
	"studioplan/internal/transport/http/middleware"
	"studioplan/internal/transport/http/shared"
)

type Handler struct {
	Service  *planning.Service
	Projects *project.Service
	Scope    *scope.Service
}

func NewHandler(service *planning.Service, projects *project.Service, scopeSvc *scope.Service) *Handler {
	return &Handler{Service: service, Projects: projects, Scope: scopeSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router, requireAdminKey func(http.Handler) http.Handler) {
	r.Route("/planning", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/{entryID}", h.handleUpdate)
		r.With(requireAdminKey).Delete("/{entryID}", h.handleDelete)
		r.Post("/{entryID}/review", h.handleReview)
		r.Get("/availability/{projectID}", h.handleAvailability)
		r.Get("/layout/week", h.handleWeekLayout)
		r.Get("/layout/month", h.handleMonthLayout)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context())
	if err != nil {
		slog.Warn("plan list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "plan_list_failed", "failed to list plan entries", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

type entryPayload struct {
	AssignedTo string `json:"assignedTo"`
	ProjectID  string `json:"projectId"`
	StageIndex int    `json:"stageIndex"`
	TaskType   string `json:"taskType"`
	Detail     string `json:"detail"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
}

func (p entryPayload) toEntry() (planning.Entry, error) {
	start, err := shared.ParseDate(p.StartTime)
	if err != nil {
		return planning.Entry{}, errors.New("invalid startTime")
	}
	end, err := shared.ParseDate(p.EndTime)
	if err != nil {
		return planning.Entry{}, errors.New("invalid endTime")
	}
	if start.IsZero() {
		return planning.Entry{}, errors.New("startTime is required")
	}
	if end.IsZero() {
		end = start
	}
	return planning.Entry{
		AssignedTo: p.AssignedTo,
		ProjectID:  p.ProjectID,
		StageIndex: p.StageIndex,
		TaskType:   p.TaskType,
		Detail:     p.Detail,
		StartTime:  start,
		EndTime:    end,
		Status:     p.Status,
	}, nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	entry, err := payload.toEntry()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Create(r.Context(), entry)
	if err != nil {
		slog.Warn("plan create failed", "err", err)
		api.Fail(w, http.StatusBadRequest, "plan_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload entryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	entry, err := payload.toEntry()
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	entry.ID = chi.URLParam(r, "entryID")

	updated, err := h.Service.Update(r.Context(), entry)
	if errors.Is(err, planning.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "plan_not_found", "plan entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("plan update failed", "err", err)
		api.Fail(w, http.StatusBadRequest, "plan_update_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.Delete(r.Context(), chi.URLParam(r, "entryID"))
	if errors.Is(err, planning.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "plan_not_found", "plan entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("plan delete failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "plan_delete_failed", "failed to delete plan entry", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	entry, err := h.Service.Review(r.Context(), chi.URLParam(r, "entryID"), payload.Score, payload.Comment)
	if errors.Is(err, planning.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "plan_not_found", "plan entry not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("plan review failed", "err", err)
		api.Fail(w, http.StatusBadRequest, "plan_review_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

// handleAvailability lists the checklist items of one project that are
// still open for scheduling, plus the per-stage counts of tagged items
// waiting for a slot. The editing query parameter names a plan entry
// whose own task should stay offered.
func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	p, err := h.Projects.Get(r.Context(), chi.URLParam(r, "projectID"))
	if errors.Is(err, project.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "project_not_found", "project not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		slog.Warn("availability project load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "availability_failed", "failed to load project", middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.Service.List(r.Context())
	if err != nil {
		slog.Warn("availability plan load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "availability_failed", "failed to load plan entries", middleware.GetRequestID(r.Context()))
		return
	}

	tags, err := h.Scope.Tags(r.Context())
	if err != nil {
		slog.Warn("availability scope load failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "availability_failed", "failed to load scope tags", middleware.GetRequestID(r.Context()))
		return
	}

	offered := planning.OfferedItems(p, entries, r.URL.Query().Get("editing"))

	scheduled := planning.ScheduledSignatures(entries, "")
	urgentByStage := make(map[int]int)
	for _, def := range stage.Definitions {
		if n := planning.StageUrgentCount(p, def.ID, tags, scheduled); n > 0 {
			urgentByStage[def.ID] = n
		}
	}

	api.Success(w, map[string]any{
		"items":       offered,
		"stageUrgent": urgentByStage,
		"urgentTotal": planning.ProjectUnscheduledCount(p, entries, tags),
	}, middleware.GetRequestID(r.Context()))
}

// personRow is one row of the weekly board: an assignee with their
// packed bars and the row height the front end should render.
type personRow struct {
	Person    string         `json:"person"`
	Bars      []schedule.Bar `json:"bars"`
	RowHeight int            `json:"rowHeight"`
}

func spanFor(e planning.Entry) schedule.Span {
	return schedule.Span{ID: e.ID, Start: e.StartTime, End: e.EndTime, Done: e.IsDone()}
}

func (h *Handler) handleWeekLayout(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context())
	if err != nil {
		slog.Warn("week layout failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "layout_failed", "failed to load plan entries", middleware.GetRequestID(r.Context()))
		return
	}

	weekStart := schedule.StartOfWeek(shared.ParseWeekOf(r, time.Now()))
	weekEnd := schedule.DayEnd(weekStart.AddDate(0, 0, 6))

	byPerson := map[string][]planning.Entry{}
	var people []string
	for _, e := range entries {
		if !schedule.Overlaps(e.StartTime, e.EndTime, weekStart, weekEnd) {
			continue
		}
		if _, seen := byPerson[e.AssignedTo]; !seen {
			people = append(people, e.AssignedTo)
		}
		byPerson[e.AssignedTo] = append(byPerson[e.AssignedTo], e)
	}

	rows := make([]personRow, 0, len(people))
	for _, person := range people {
		spans := make([]schedule.Span, 0, len(byPerson[person]))
		for _, e := range byPerson[person] {
			spans = append(spans, spanFor(e))
		}
		tracks := schedule.PackTracks(spans)
		rows = append(rows, personRow{
			Person:    person,
			Bars:      schedule.WeekBars(spans, tracks, weekStart),
			RowHeight: schedule.WeekRowHeight(schedule.TrackCount(tracks)),
		})
	}

	api.Success(w, map[string]any{
		"weekStart":  weekStart,
		"weekNumber": schedule.WeekNumber(weekStart),
		"days":       schedule.WeekDays(weekStart),
		"rows":       rows,
	}, middleware.GetRequestID(r.Context()))
}

// weekRow is one week of the monthly calendar with its packed bars.
type weekRow struct {
	Days      []time.Time    `json:"days"`
	Bars      []schedule.Bar `json:"bars"`
	RowHeight int            `json:"rowHeight"`
}

func (h *Handler) handleMonthLayout(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context())
	if err != nil {
		slog.Warn("month layout failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "layout_failed", "failed to load plan entries", middleware.GetRequestID(r.Context()))
		return
	}

	month, year := shared.ParseMonth(r, time.Now())
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	spans := make([]schedule.Span, 0, len(entries))
	for _, e := range entries {
		spans = append(spans, spanFor(e))
	}

	weeks := make([]weekRow, 0, 6)
	for _, days := range schedule.CalendarWeeks(anchor) {
		bars := schedule.PackWindow(spans, days[0])
		tracks := 0
		for _, b := range bars {
			if b.Track+1 > tracks {
				tracks = b.Track + 1
			}
		}
		weeks = append(weeks, weekRow{
			Days:      days,
			Bars:      bars,
			RowHeight: schedule.CalendarRowHeight(tracks),
		})
	}

	api.Success(w, map[string]any{
		"month": int(month),
		"year":  year,
		"weeks": weeks,
	}, middleware.GetRequestID(r.Context()))
}
