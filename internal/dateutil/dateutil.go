// Package dateutil provides pure date helpers for the booking flows.  All
// functions are deterministic, perform no I/O, and work on ISO
// "YYYY-MM-DD" strings, which compare correctly as plain strings because
// both sides are zero-padded.
package dateutil

import "time"

const isoLayout = "2006-01-02"

// Spanish weekday names indexed 0=Sunday..6=Saturday, matching
// time.Weekday.
var weekdayNames = [7]string{
	"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado",
}

// Today returns today's date in the local timezone as an ISO string.
func Today() string {
	return time.Now().Format(isoLayout)
}

// FormatForDisplay renders an ISO date as "dd/mm/yyyy".  When the input
// does not parse it is returned unchanged; display formatting never fails.
func FormatForDisplay(dateISO string) string {
	t, err := time.Parse(isoLayout, dateISO)
	if err != nil {
		return dateISO
	}
	return t.Format("02/01/2006")
}

// ValidateRange reports whether end is on or after start.  Equal dates are
// a valid one-day range.
func ValidateRange(startISO, endISO string) bool {
	return endISO >= startISO
}

// NextDay returns the ISO date one calendar day after the input, rolling
// over month and year boundaries.
func NextDay(dateISO string) (string, error) {
	t, err := time.Parse(isoLayout, dateISO)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(isoLayout), nil
}

// WeekdayName returns the Spanish name for a weekday index, or an empty
// string for an out-of-range index.
func WeekdayName(idx int) string {
	if idx < 0 || idx > 6 {
		return ""
	}
	return weekdayNames[idx]
}

// WeekdayOf returns the weekday index (0=Sunday..6=Saturday) of an ISO
// date, or -1 when the date does not parse.
func WeekdayOf(dateISO string) int {
	t, err := time.Parse(isoLayout, dateISO)
	if err != nil {
		return -1
	}
	return int(t.Weekday())
}

// DatesForRange expands [startISO, endISO] into the calendar dates it
// covers.  A non-empty weekdays set keeps only matching days.  An invalid
// range or unparseable date yields nil.
func DatesForRange(startISO, endISO string, weekdays []int) []string {
	start, err := time.Parse(isoLayout, startISO)
	if err != nil {
		return nil
	}
	end, err := time.Parse(isoLayout, endISO)
	if err != nil || end.Before(start) {
		return nil
	}
	var filter map[int]struct{}
	if len(weekdays) > 0 {
		filter = make(map[int]struct{}, len(weekdays))
		for _, d := range weekdays {
			filter[d] = struct{}{}
		}
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if filter != nil {
			if _, ok := filter[int(d.Weekday())]; !ok {
				continue
			}
		}
		dates = append(dates, d.Format(isoLayout))
	}
	return dates
}
