package calendar

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for dates: zero-padded "YYYY-MM-DD".
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for times of day: zero-padded "HH:MM".
	TimeLayout = "15:04"
)

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func parseDate(date string) (year, month, day int, ok bool) {
	if len(date) != 10 || date[4] != '-' || date[7] != '-' {
		return 0, 0, 0, false
	}
	if !digits(date[:4]) || !digits(date[5:7]) || !digits(date[8:]) {
		return 0, 0, 0, false
	}
	for _, c := range date[:4] {
		year = year*10 + int(c-'0')
	}
	month = int(date[5]-'0')*10 + int(date[6]-'0')
	day = int(date[8]-'0')*10 + int(date[9]-'0')

	return year, month, day, true
}

// IsValidDate reports whether date is a well-formed "YYYY-MM-DD" calendar
// date. Month and day bounds are checked, including the leap-year rule for
// February. The year range is not restricted.
func IsValidDate(date string) bool {
	year, month, day, ok := parseDate(date)
	if !ok {
		return false
	}

	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > 31 {
		return false
	}

	switch month {
	case 2:
		if IsLeapYear(year) {
			return day <= 29
		}
		return day <= 28
	case 4, 6, 9, 11:
		return day <= 30
	}

	return true
}

// IsValidTime reports whether t is a well-formed "HH:MM" time of day with
// hour in [0,23] and minute in [0,59].
func IsValidTime(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	if !digits(t[:2]) || !digits(t[3:]) {
		return false
	}

	hour := int(t[0]-'0')*10 + int(t[1]-'0')
	minute := int(t[3]-'0')*10 + int(t[4]-'0')

	return hour <= 23 && minute <= 59
}

// CompareDates compares two valid dates and returns -1, 0, or 1 as date1 is
// before, equal to, or after date2. Both inputs must already satisfy
// IsValidDate.
func CompareDates(date1, date2 string) int {
	y1, m1, d1, _ := parseDate(date1)
	y2, m2, d2, _ := parseDate(date2)

	switch {
	case y1 != y2:
		return sign(y1 - y2)
	case m1 != m2:
		return sign(m1 - m2)
	default:
		return sign(d1 - d2)
	}
}

// CompareDateTime compares two combined date+time instants. Dates are
// compared first; on a tie the zero-padded time strings compare
// lexicographically, which matches chronological order for the "HH:MM"
// format.
func CompareDateTime(date1, time1, date2, time2 string) int {
	if cmp := CompareDates(date1, date2); cmp != 0 {
		return cmp
	}

	switch {
	case time1 < time2:
		return -1
	case time1 > time2:
		return 1
	default:
		return 0
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// Stamp renders t as a wire-format (date, time) pair.
func Stamp(t time.Time) (date, tod string) {
	return t.Format(DateLayout), t.Format(TimeLayout)
}

// FormatDateTime joins a date and a time of day for display.
func FormatDateTime(date, tod string) string {
	return fmt.Sprintf("%s %s", date, tod)
}
