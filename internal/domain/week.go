package domain

import "time"

// WorkdaysPerWeek is the number of days shown for an anchor week.
const WorkdaysPerWeek = 5

// Day is a single weekday of the anchor week.
type Day struct {
	Weekday time.Weekday
	Date    time.Time
}

// ISO returns the day formatted as YYYY-MM-DD.
func (d Day) ISO() string { return d.Date.Format(time.DateOnly) }

// Week is the Monday to Friday span containing a selected date.
type Week struct {
	Monday time.Time
	Days   []Day
}

// AnchorWeek normalizes any date to the Monday of its week and lists the
// five weekdays that follow. Saturdays and Sundays belong to the week that
// started on the preceding Monday.
func AnchorWeek(date time.Time) Week {
	d := DateOf(date)

	// time.Weekday counts from Sunday; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)

	days := make([]Day, 0, WorkdaysPerWeek)
	for i := 0; i < WorkdaysPerWeek; i++ {
		day := monday.AddDate(0, 0, i)
		days = append(days, Day{Weekday: day.Weekday(), Date: day})
	}

	return Week{Monday: monday, Days: days}
}

// Contains reports whether the date falls on one of the week's workdays.
func (w Week) Contains(date time.Time) bool {
	d := DateOf(date)
	for _, day := range w.Days {
		if day.Date.Equal(d) {
			return true
		}
	}
	return false
}

// DateOf truncates a time to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}
