// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const (
	minutesInAnHour  = 60
	secondsInAMinute = 60

	HoursInADay = 24

	// DayLayout is the layout of daily statistic keys.
	DayLayout = "2006-01-02"
)

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundTo rounds a value to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow10(places)

	return math.Round(v*p) / p
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	if val < 0 {
		val = 0
	}

	return val / secondsInAMinute, val % secondsInAMinute
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	return val / minutesInAnHour, val % minutesInAnHour
}

// Clock formats seconds as MM:SS, or HH:MM:SS past the hour.
func Clock(seconds int) string {
	m, s := SecsToMinsAndSecs(seconds)
	if m >= minutesInAnHour {
		h, m := MinsToHoursAndMins(m)
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}

	return fmt.Sprintf("%02d:%02d", m, s)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey returns the calendar day of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// HourInterval returns the label for an hour-of-day slot, e.g. "09:00-10:00".
func HourInterval(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, (hour+1)%HoursInADay)
}

// FromStr parses a natural language or absolute date relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}

	cfg := &dps.Configuration{
		CurrentTime: now,
	}

	dt, err := dps.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, err)
	}

	return dt.Time, nil
}
