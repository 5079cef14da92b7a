// Package stats aggregates focus sessions into daily and hourly summaries
package stats

import (
	"time"

	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/internal/timeutil"
)

// DaysInReport is the number of calendar days in the daily breakdown,
// today included.
const DaysInReport = 7

type (
	// Day is the focus time logged on one calendar day.
	Day struct {
		Date          string  `json:"date"`
		Weekday       string  `json:"day"`
		SessionsCount int     `json:"sessions"`
		TotalHours    float64 `json:"hours"`
		minutes       int
	}

	// Hour is the focus time logged today within one hour-of-day slot.
	Hour struct {
		Interval      string `json:"interval"`
		Hour          int    `json:"hour"`
		SessionsCount int    `json:"sessions"`
		TotalMinutes  int    `json:"minutes"`
	}

	// TodayTotals sums the hourly breakdown.
	TodayTotals struct {
		SessionsCount int `json:"sessions"`
		TotalMinutes  int `json:"minutes"`
	}

	// WeekTotals sums the daily breakdown.
	WeekTotals struct {
		SessionsCount int     `json:"sessions"`
		TotalHours    float64 `json:"hours"`
	}

	// Report is the result of getDailyAndHourlyStats.
	Report struct {
		Hourly      []Hour      `json:"hourly"`
		Daily       []Day       `json:"daily"`
		TodayTotals TodayTotals `json:"todayTotals"`
		Totals      WeekTotals  `json:"totals"`
	}
)

// Since returns the start of the earliest day covered by a report generated
// at now. Sessions before it never contribute to the report.
func Since(now time.Time) time.Time {
	return timeutil.RoundToStart(now).AddDate(0, 0, -(DaysInReport - 1))
}

// sessionMinutes is the rounded minute value each session contributes.
func sessionMinutes(s *models.FocusSession) int {
	return timeutil.Round(float64(s.FocusSeconds) / 60)
}

// Compute groups sessions by calendar day over the last seven days and by
// hour of day for today. Days and hours are taken in now's location, and
// every slot is present even if empty.
func Compute(sessions []models.FocusSession, now time.Time) Report {
	loc := now.Location()
	today := timeutil.RoundToStart(now)
	start := Since(now)

	daily := make([]Day, DaysInReport)
	dayIndex := make(map[string]int, DaysInReport)

	for i := range daily {
		d := start.AddDate(0, 0, i)
		key := timeutil.DayKey(d)

		daily[i] = Day{
			Date:    key,
			Weekday: d.Weekday().String()[:3],
		}
		dayIndex[key] = i
	}

	hourly := make([]Hour, timeutil.HoursInADay)
	for h := range hourly {
		hourly[h] = Hour{Hour: h, Interval: timeutil.HourInterval(h)}
	}

	for i := range sessions {
		s := &sessions[i]
		created := s.CreatedAt.In(loc)
		mins := sessionMinutes(s)

		if idx, ok := dayIndex[timeutil.DayKey(created)]; ok {
			daily[idx].SessionsCount++
			daily[idx].minutes += mins
		}

		if timeutil.RoundToStart(created).Equal(today) {
			hourly[created.Hour()].SessionsCount++
			hourly[created.Hour()].TotalMinutes += mins
		}
	}

	var r Report

	for i := range daily {
		daily[i].TotalHours = timeutil.RoundTo(float64(daily[i].minutes)/60, 1)
		r.Totals.SessionsCount += daily[i].SessionsCount
		r.Totals.TotalHours += daily[i].TotalHours
	}

	r.Totals.TotalHours = timeutil.RoundTo(r.Totals.TotalHours, 1)

	for _, h := range hourly {
		r.TodayTotals.SessionsCount += h.SessionsCount
		r.TodayTotals.TotalMinutes += h.TotalMinutes
	}

	r.Daily = daily
	r.Hourly = hourly

	return r
}

// Totals computes the all-time summary from a session count and the sum of
// focus seconds.
func Totals(count, focusSeconds int) models.Totals {
	return models.Totals{
		SessionsCount: count,
		TotalMinutes:  timeutil.Round(float64(focusSeconds) / 60),
	}
}
