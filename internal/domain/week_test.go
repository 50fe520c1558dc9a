package domain

import (
	"testing"
	"time"
)

func TestAnchorWeek(t *testing.T) {
	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		selected := monday.AddDate(0, 0, offset).Add(17 * time.Hour)

		week := AnchorWeek(selected)
		if !week.Monday.Equal(monday) {
			t.Fatalf("selected %s: monday = %s, want %s", selected.Weekday(), week.Monday, monday)
		}

		if len(week.Days) != WorkdaysPerWeek {
			t.Fatalf("expected %d days, got %d", WorkdaysPerWeek, len(week.Days))
		}

		for i, d := range week.Days {
			want := time.Weekday(i + 1)
			if d.Weekday != want {
				t.Errorf("day %d weekday = %s, want %s", i, d.Weekday, want)
			}
			if !d.Date.Equal(monday.AddDate(0, 0, i)) {
				t.Errorf("day %d date = %s", i, d.ISO())
			}
		}
	}
}

func TestAnchorWeekAcrossMonthBoundary(t *testing.T) {
	week := AnchorWeek(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) // Sunday

	if got := week.Days[0].ISO(); got != "2026-02-23" {
		t.Fatalf("monday = %s, want 2026-02-23", got)
	}
	if got := week.Days[4].ISO(); got != "2026-02-27" {
		t.Fatalf("friday = %s, want 2026-02-27", got)
	}
}

func TestWeekContains(t *testing.T) {
	week := AnchorWeek(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC))

	if !week.Contains(time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("friday should be in the week")
	}
	if week.Contains(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("saturday should not be in the week")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Weekday() != time.Wednesday {
		t.Fatalf("weekday = %s, want Wednesday", d.Weekday())
	}

	if _, err := ParseDate("11/03/2026"); err == nil {
		t.Fatalf("expected error for non ISO date")
	}
}
