package handlers

import (
	"bytes"
	"commute-compensation-service/internal/api/dto"
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/ports"
	"commute-compensation-service/internal/report"
	"commute-compensation-service/internal/services"
	"commute-compensation-service/internal/session"
	"commute-compensation-service/internal/view"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// FormHandler serves the htmx weekly form.
type FormHandler struct {
	Directory ports.Directory
	Provider  ports.DistanceProvider
	Title     string
	Now       func() time.Time
}

func (h *FormHandler) options() view.Options {
	return view.NewOptions(h.Directory.Technicians(), h.Directory.Projects())
}

func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	week := sess.Week()
	props := view.PageProps{
		Title:   h.Title,
		Week:    view.NewWeek(week.Monday, week, h.options(), sess.DayRows),
		Results: view.NewResults(sess.Entries(), sess.Total()),
	}

	setHTML(w)
	if err := view.Page(props).Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render page failed", "err", err)
	}
}

// Week anchors the session on the week of the picked date and returns the
// five day sections.
func (h *FormHandler) Week(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	date, err := dateParam(r.URL.Query().Get("date"), h.Now)
	if err != nil {
		showError(w, http.StatusBadRequest, "Pick a valid date.")
		return
	}

	week := sess.SelectWeek(date)

	setHTML(w)
	_ = htmx.NewResponse().
		AddTrigger(view.TriggerSetStatusMessage("")).
		RenderTempl(r.Context(), w, view.Week(view.NewWeek(date, week, h.options(), sess.DayRows)))
}

// DayRows stores how many technicians work on a day and returns that many
// row editors.
func (h *FormHandler) DayRows(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	date, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		showError(w, http.StatusBadRequest, "Unknown day.")
		return
	}
	if !sess.Week().Contains(date) {
		showError(w, http.StatusBadRequest, "That day is not in the selected week.")
		return
	}

	count := session.DefaultDayRows
	if raw := strings.TrimSpace(r.URL.Query().Get("count")); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil {
			showError(w, http.StatusBadRequest, "The number of technicians must be a whole number.")
			return
		}
	}

	day := domain.Day{Weekday: date.Weekday(), Date: date}
	n := sess.SetDayRows(day.ISO(), count)

	setHTML(w)
	_ = htmx.NewResponse().RenderTempl(r.Context(), w, view.DayRows(view.NewDay(day, n, h.options())))
}

// Commit records one form row and returns the refreshed result table.
// Rows naming an unknown technician or project are skipped.
func (h *FormHandler) Commit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	req := &dto.TripRequest{}
	if err := render.Bind(r, req); err != nil {
		showError(w, http.StatusBadRequest, err.Error())
		return
	}
	trip, err := req.ToService()
	if err != nil {
		showError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := services.RecordTrip(r.Context(), h.Directory, h.Provider, trip)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteEntry) {
			slog.DebugContext(r.Context(), "form row skipped", "err", err)
			_ = htmx.NewResponse().
				Reswap(htmx.SwapNone).
				AddTrigger(view.TriggerSetStatusMessage("Nothing added: pick a technician and both projects.")).
				Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "record trip failed", "err", err)
		showError(w, http.StatusInternalServerError, "Could not record the trip.")
		return
	}

	verb := "added"
	if sess.Commit(trip.Key(), entry) {
		verb = "updated"
	}
	msg := fmt.Sprintf("Trip %s for %s on %s.", verb, entry.Technician, entry.Date.Weekday())

	h.renderResults(w, r, sess, view.TriggerEntriesChanged, view.TriggerSetStatusMessage(msg))
}

// Clear empties the session's result set.
func (h *FormHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	sess.Clear()
	h.renderResults(w, r, sess, view.TriggerEntriesChanged, view.TriggerSetStatusMessage("Results cleared."))
}

func (h *FormHandler) Results(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	h.renderResults(w, r, sess)
}

func (h *FormHandler) renderResults(
	w http.ResponseWriter,
	r *http.Request,
	sess *session.Session,
	triggers ...htmx.EventTrigger,
) {
	resp := htmx.NewResponse().
		Retarget("#results").
		Reswap(htmx.SwapOuterHTML)
	if len(triggers) > 0 {
		resp = resp.AddTrigger(triggers...)
	}

	setHTML(w)
	if err := resp.RenderTempl(r.Context(), w, view.Results(view.NewResults(sess.Entries(), sess.Total()))); err != nil {
		slog.ErrorContext(r.Context(), "render results failed", "err", err)
	}
}

// Report downloads the session's entries as a spreadsheet.
func (h *FormHandler) Report(w http.ResponseWriter, r *http.Request) {
	sess, ok := requestSession(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, sess.Entries()); err != nil {
		slog.ErrorContext(r.Context(), "write report failed", "err", err)
		http.Error(w, "could not build report", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("commute-report-%s.xlsx", sess.Week().Monday.Format(time.DateOnly))
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
