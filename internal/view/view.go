// Package view renders the weekly form. The components live in the .templ
// files; this file holds their props and the builders that fill them.
package view

import (
	"commute-compensation-service/internal/domain"
	"strconv"
	"time"
)

type PageProps struct {
	Title   string
	Week    WeekProps
	Results ResultsProps
}

type WeekProps struct {
	Selected string
	Monday   string
	Days     []DayProps
}

type DayProps struct {
	Weekday string
	Date    string
	Count   int
	Rows    []RowProps
}

// RowProps is one technician row of a day. The option lists are repeated on
// every row so the row template can be rendered on its own.
type RowProps struct {
	Date        string
	Index       int
	Technicians []string
	Projects    []string
}

type ResultsProps struct {
	Rows  []ResultRow
	Total string
}

type ResultRow struct {
	Date           string
	Technician     string
	MorningProject string
	EveningProject string
	MorningAddress string
	EveningAddress string
	MorningKm      string
	EveningKm      string
	CompensatedKm  string
}

// Options are the names offered in the row selectors.
type Options struct {
	Technicians []string
	Projects    []string
}

func NewOptions(techs []domain.Technician, projects []domain.Project) Options {
	o := Options{
		Technicians: make([]string, 0, len(techs)),
		Projects:    make([]string, 0, len(projects)),
	}
	for _, t := range techs {
		o.Technicians = append(o.Technicians, t.Name)
	}
	for _, p := range projects {
		o.Projects = append(o.Projects, p.Name)
	}
	return o
}

// NewDay builds the props of one day with n row editors.
func NewDay(day domain.Day, n int, opts Options) DayProps {
	rows := make([]RowProps, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, RowProps{
			Date:        day.ISO(),
			Index:       i,
			Technicians: opts.Technicians,
			Projects:    opts.Projects,
		})
	}
	return DayProps{
		Weekday: day.Weekday.String(),
		Date:    day.ISO(),
		Count:   n,
		Rows:    rows,
	}
}

// NewWeek builds the five day sections. rowsFor returns the row count of a
// day given as YYYY-MM-DD.
func NewWeek(selected time.Time, w domain.Week, opts Options, rowsFor func(string) int) WeekProps {
	days := make([]DayProps, 0, len(w.Days))
	for _, d := range w.Days {
		days = append(days, NewDay(d, rowsFor(d.ISO()), opts))
	}
	return WeekProps{
		Selected: selected.Format(time.DateOnly),
		Monday:   w.Monday.Format(time.DateOnly),
		Days:     days,
	}
}

func NewResults(entries []domain.TripEntry, total float64) ResultsProps {
	rows := make([]ResultRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ResultRow{
			Date:           e.Date.Format(time.DateOnly),
			Technician:     e.Technician,
			MorningProject: e.MorningProject,
			EveningProject: e.EveningProject,
			MorningAddress: e.MorningAddress,
			EveningAddress: e.EveningAddress,
			MorningKm:      formatKm(e.MorningDistanceKm),
			EveningKm:      formatKm(e.EveningDistanceKm),
			CompensatedKm:  strconv.FormatFloat(e.CompensatedKm, 'f', 2, 64),
		})
	}
	return ResultsProps{
		Rows:  rows,
		Total: strconv.FormatFloat(total, 'f', 2, 64),
	}
}

func formatKm(km *float64) string {
	if km == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*km, 'f', 2, 64)
}
