package calendar_test

import (
	"testing"
	"time"

	"github.com/mkrupp/roomledger/internal/util/calendar"
)

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "ordinary date", date: "2025-06-01", want: true},
		{name: "last day of december", date: "2024-12-31", want: true},
		{name: "leap day in leap year", date: "2024-02-29", want: true},
		{name: "leap day in non-leap year", date: "2023-02-29", want: false},
		{name: "century non-leap year", date: "1900-02-29", want: false},
		{name: "quadricentennial leap year", date: "2000-02-29", want: true},
		{name: "thirty-first of april", date: "2025-04-31", want: false},
		{name: "thirtieth of april", date: "2025-04-30", want: true},
		{name: "thirty-first of june", date: "2025-06-31", want: false},
		{name: "month zero", date: "2025-00-10", want: false},
		{name: "month thirteen", date: "2025-13-10", want: false},
		{name: "day zero", date: "2025-06-00", want: false},
		{name: "day above thirty-one", date: "2025-01-32", want: false},
		{name: "wrong separators", date: "2025/06/01", want: false},
		{name: "missing padding", date: "2025-6-1", want: false},
		{name: "too short", date: "2025-06", want: false},
		{name: "too long", date: "2025-06-011", want: false},
		{name: "non-numeric", date: "yyyy-mm-dd", want: false},
		{name: "empty", date: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := calendar.IsValidDate(tt.date); got != tt.want {
				t.Errorf("IsValidDate(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestIsValidTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tod  string
		want bool
	}{
		{name: "midnight", tod: "00:00", want: true},
		{name: "last minute of day", tod: "23:59", want: true},
		{name: "afternoon", tod: "14:30", want: true},
		{name: "hour twenty-four", tod: "24:00", want: false},
		{name: "minute sixty", tod: "12:60", want: false},
		{name: "missing padding", tod: "9:30", want: false},
		{name: "wrong separator", tod: "09.30", want: false},
		{name: "non-numeric", tod: "ab:cd", want: false},
		{name: "empty", tod: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := calendar.IsValidTime(tt.tod); got != tt.want {
				t.Errorf("IsValidTime(%q) = %v, want %v", tt.tod, got, tt.want)
			}
		})
	}
}

func TestCompareDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		date1 string
		date2 string
		want  int
	}{
		{name: "equal", date1: "2025-06-01", date2: "2025-06-01", want: 0},
		{name: "earlier year", date1: "2024-12-31", date2: "2025-01-01", want: -1},
		{name: "later year", date1: "2026-01-01", date2: "2025-12-31", want: 1},
		{name: "earlier month same year", date1: "2025-05-31", date2: "2025-06-01", want: -1},
		{name: "earlier day same month", date1: "2025-06-01", date2: "2025-06-02", want: -1},
		{name: "leap day ordering", date1: "2024-02-29", date2: "2024-03-01", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := calendar.CompareDates(tt.date1, tt.date2); got != tt.want {
				t.Errorf("CompareDates(%q, %q) = %d, want %d", tt.date1, tt.date2, got, tt.want)
			}
			if got := calendar.CompareDates(tt.date2, tt.date1); got != -tt.want {
				t.Errorf("CompareDates(%q, %q) = %d, want %d", tt.date2, tt.date1, got, -tt.want)
			}
		})
	}
}

func TestCompareDateTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                       string
		date1, time1, date2, time2 string
		want                       int
	}{
		{name: "date decides", date1: "2025-06-01", time1: "23:59", date2: "2025-06-02", time2: "00:00", want: -1},
		{name: "time breaks tie", date1: "2025-06-01", time1: "09:00", date2: "2025-06-01", time2: "18:00", want: -1},
		{name: "identical", date1: "2025-06-01", time1: "12:00", date2: "2025-06-01", time2: "12:00", want: 0},
		{name: "later time same date", date1: "2025-06-01", time1: "18:00", date2: "2025-06-01", time2: "09:00", want: 1},
		{name: "month boundary", date1: "2025-05-31", time1: "23:59", date2: "2025-06-01", time2: "00:00", want: -1},
		{name: "leap year boundary", date1: "2024-02-29", time1: "12:00", date2: "2024-03-01", time2: "00:00", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := calendar.CompareDateTime(tt.date1, tt.time1, tt.date2, tt.time2)
			if got != tt.want {
				t.Errorf("CompareDateTime(%q %q, %q %q) = %d, want %d",
					tt.date1, tt.time1, tt.date2, tt.time2, got, tt.want)
			}
		})
	}
}

func TestStamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 9, 5, 30, 0, time.Local)

	date, tod := calendar.Stamp(now)
	if date != "2025-06-01" {
		t.Errorf("Stamp date = %q, want %q", date, "2025-06-01")
	}
	if tod != "09:05" {
		t.Errorf("Stamp time = %q, want %q", tod, "09:05")
	}

	if !calendar.IsValidDate(date) || !calendar.IsValidTime(tod) {
		t.Errorf("Stamp output %q %q does not round-trip validation", date, tod)
	}
}

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	if got := calendar.FormatDateTime("2025-06-01", "14:00"); got != "2025-06-01 14:00" {
		t.Errorf("FormatDateTime = %q, want %q", got, "2025-06-01 14:00")
	}
}
