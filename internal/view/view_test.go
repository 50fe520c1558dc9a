package view

import (
	"bytes"
	"commute-compensation-service/internal/domain"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekRendersFiveDays(t *testing.T) {
	opts := Options{Technicians: []string{"Alice", "Bob"}, Projects: []string{"Site <A>"}}
	selected := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	props := NewWeek(selected, domain.AnchorWeek(selected), opts, func(day string) int {
		if day == "2024-03-05" {
			return 3
		}
		return 1
	})

	require.Len(t, props.Days, 5)
	assert.Equal(t, "2024-03-04", props.Monday)
	assert.Equal(t, "Monday", props.Days[0].Weekday)
	assert.Len(t, props.Days[1].Rows, 3)

	var buf bytes.Buffer
	require.NoError(t, Week(props).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `id="rows-2024-03-08"`)
	assert.Contains(t, html, `Friday (2024-03-08)`)
	assert.Contains(t, html, `Site &lt;A&gt;`)
	assert.Equal(t, 7, bytes.Count(buf.Bytes(), []byte(`hx-post="/entries"`)))
}

func TestResultsRendering(t *testing.T) {
	date := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := []domain.TripEntry{
		domain.NewTripEntry(date, "Alice", "Far", "1 Far Rd", "Near", "2 Near St", domain.LegKm(50), domain.LegFailed(nil)),
	}

	props := NewResults(entries, 10)
	require.Len(t, props.Rows, 1)
	assert.Equal(t, "50.00", props.Rows[0].MorningKm)
	assert.Equal(t, "n/a", props.Rows[0].EveningKm)
	assert.Equal(t, "10.00", props.Total)

	var buf bytes.Buffer
	require.NoError(t, Results(props).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<td>10.00</td>")

	buf.Reset()
	require.NoError(t, Results(NewResults(nil, 0)).Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "No trips recorded yet.")
}

func TestPageRenders(t *testing.T) {
	selected := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	week := NewWeek(selected, domain.AnchorWeek(selected), Options{}, func(string) int { return 1 })

	var buf bytes.Buffer
	require.NoError(t, Page(PageProps{Title: "Weekly commute", Week: week, Results: NewResults(nil, 0)}).
		Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, "<title>Weekly commute</title>")
	assert.Contains(t, html, `value="2024-03-04"`)
	assert.Contains(t, html, `id="results"`)
}

func TestEventListen(t *testing.T) {
	attrs := SetStatusMessage.Listen("message = $event.detail.value")
	assert.Equal(t, "message = $event.detail.value", attrs["x-on:set-status-message.window"])
}

func TestPageListensForStatusMessages(t *testing.T) {
	selected := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	week := NewWeek(selected, domain.AnchorWeek(selected), Options{}, func(string) int { return 1 })

	var buf bytes.Buffer
	require.NoError(t, Page(PageProps{Title: "Weekly commute", Week: week, Results: NewResults(nil, 0)}).
		Render(context.Background(), &buf))

	html := buf.String()
	assert.Contains(t, html, `x-on:set-status-message.window="message = $event.detail.value"`)
	assert.NotContains(t, html, "addEventListener")
}

func TestDayRowsRendersOnlyRows(t *testing.T) {
	day := domain.Day{Weekday: time.Tuesday, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}
	props := NewDay(day, 2, Options{Technicians: []string{"Alice"}, Projects: []string{"Far", "Near"}})

	var buf bytes.Buffer
	require.NoError(t, DayRows(props).Render(context.Background(), &buf))

	html := buf.String()
	assert.Equal(t, 2, strings.Count(html, `hx-post="/entries"`))
	assert.Contains(t, html, `<input type="hidden" name="row" value="1">`)
	assert.Contains(t, html, `<option value="Near">Near</option>`)
	assert.NotContains(t, html, "<section")
}
