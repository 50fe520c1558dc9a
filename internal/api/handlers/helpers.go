package handlers

import (
	"commute-compensation-service/internal/domain"
	"commute-compensation-service/internal/session"
	"commute-compensation-service/internal/view"
	"net/http"
	"strings"
	"time"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/render"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// showError reports a failure to an htmx caller without swapping content.
func showError(w http.ResponseWriter, code int, msg string) {
	_ = htmx.NewResponse().
		StatusCode(code).
		Reswap(htmx.SwapNone).
		AddTrigger(view.TriggerSetStatusMessage(msg)).
		Write(w)
}

// requestSession fetches the session attached by the session middleware.
// It writes the error response itself when there is none.
func requestSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		if htmx.IsHTMX(r) {
			showError(w, http.StatusInternalServerError, "session unavailable")
		} else {
			writeError(w, r, http.StatusInternalServerError, "session unavailable")
		}
		return nil, false
	}
	return sess, true
}

// dateParam parses a YYYY-MM-DD value, defaulting to today when empty.
func dateParam(raw string, now func() time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DateOf(now()), nil
	}
	return domain.ParseDate(raw)
}

func setHTML(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
