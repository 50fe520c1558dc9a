package handlers

import (
	"commute-compensation-service/internal/api/dto"
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/ports"
	"commute-compensation-service/internal/services"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// EntryHandler serves the JSON API over the caller's session.
type EntryHandler struct {
	Directory ports.Directory
	Provider  ports.DistanceProvider
	Now       func() time.Time
}

func (h *EntryHandler) Technicians(w http.ResponseWriter, r *http.Request) {
	techs := h.Directory.Technicians()
	res := dto.ListTechniciansResponse{Technicians: make([]dto.TechnicianResponse, 0, len(techs))}
	for _, t := range techs {
		res.Technicians = append(res.Technicians, dto.TechnicianResponse{Name: t.Name, HomeAddress: t.HomeAddress})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *EntryHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects := h.Directory.Projects()
	res := dto.ListProjectsResponse{Projects: make([]dto.ProjectResponse, 0, len(projects))}
	for _, p := range projects {
		res.Projects = append(res.Projects, dto.ProjectResponse{Name: p.Name, Address: p.Address})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *EntryHandler) Week(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r.URL.Query().Get("date"), h.Now)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	week := domain.AnchorWeek(date)
	res := dto.WeekResponse{
		Monday: week.Monday.Format(time.DateOnly),
		Days:   make([]dto.DayResponse, 0, len(week.Days)),
	}
	for _, d := range week.Days {
		res.Days = append(res.Days, dto.DayResponse{Weekday: d.Weekday.String(), Date: d.ISO()})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	entries := sess.Entries()
	res := dto.ListEntriesResponse{
		Entries:            make([]dto.EntryResponse, 0, len(entries)),
		TotalCompensatedKm: sess.Total(),
	}
	for _, e := range entries {
		res.Entries = append(res.Entries, dto.NewEntryResponse(e))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Create records one trip. Committing the same date, technician and row
// again replaces the earlier entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	req := &dto.TripRequest{}
	if err := render.Bind(r, req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	trip, err := req.ToService()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := services.RecordTrip(r.Context(), h.Directory, h.Provider, trip)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteEntry) {
			writeError(w, r, http.StatusUnprocessableEntity, services.ErrIncompleteEntry.Error())
			return
		}
		slog.ErrorContext(r.Context(), "record trip failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	replaced := sess.Commit(trip.Key(), entry)
	writeJSON(w, r, http.StatusCreated, dto.CommitEntryResponse{
		Entry:    dto.NewEntryResponse(entry),
		Replaced: replaced,
	})
}

func (h *EntryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	sess.Clear()
	render.NoContent(w, r)
}
