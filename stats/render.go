package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/internal/timeutil"
	"github.com/ctdp-app/ctdp/internal/ui"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No focus sessions logged today"
)

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

func summary(r Report, totals models.Totals) string {
	hrs, mins := timeutil.MinsToHoursAndMins(totals.TotalMinutes)

	return fmt.Sprintf(
		"%s\nAll time: %s sessions, %s\nLast %d days: %s sessions, %s hours\nToday: %s sessions, %s minutes\n",
		ui.Cyan("Summary"),
		ui.Green(totals.SessionsCount),
		ui.Green(fmt.Sprintf("%dh %dm", hrs, mins)),
		DaysInReport,
		ui.Green(r.Totals.SessionsCount),
		ui.Green(strconv.FormatFloat(r.Totals.TotalHours, 'f', 1, 64)),
		ui.Green(r.TodayTotals.SessionsCount),
		ui.Green(r.TodayTotals.TotalMinutes),
	)
}

func dailyTable(r Report) [][]string {
	data := [][]string{{"DATE", "DAY", "SESSIONS", "HOURS"}}

	for _, d := range r.Daily {
		data = append(data, []string{
			d.Date,
			d.Weekday,
			strconv.Itoa(d.SessionsCount),
			strconv.FormatFloat(d.TotalHours, 'f', 1, 64),
		})
	}

	return data
}

func hourlyChart(r Report) string {
	if r.TodayTotals.SessionsCount == 0 {
		return noSessionsMsg
	}

	bars := make(pterm.Bars, 0, len(r.Hourly))

	for _, h := range r.Hourly {
		if h.SessionsCount == 0 {
			continue
		}

		bars = append(bars, pterm.Bar{
			Value: h.TotalMinutes,
			Label: h.Interval,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return chart
}

// Print writes the console rendering of the report.
func Print(w io.Writer, r Report, totals models.Totals) {
	fmt.Fprintln(w, summary(r, totals))
	fmt.Fprintln(w, ui.Cyan("Daily breakdown"))
	ui.PrintTable(dailyTable(r), w)
	fmt.Fprintln(w, ui.Cyan("Today by hour (minutes)"))
	fmt.Fprintln(w, hourlyChart(r))
}
