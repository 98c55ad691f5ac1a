// Package dates computes the reporting windows used by dashboard and simulation filters.
package dates

import (
	"fmt"
	"time"
)

// Layout is the ISO date format exchanged with the browser and the cost API.
const Layout = "2006-01-02"

// Window is an inclusive date range in ISO YYYY-MM-DD form.
type Window struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// ToInput formats t as YYYY-MM-DD in its own location.
func ToInput(t time.Time) string {
	return t.Format(Layout)
}

// Parse reads a YYYY-MM-DD date as midnight UTC.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("dates: invalid date %q: %w", value, err)
	}
	return t, nil
}

// DefaultDashboardWindow is the six-month trailing window ending today.
func DefaultDashboardWindow(now time.Time) Window {
	start := time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, now.Location())
	return Window{Start: ToInput(start), End: ToInput(now)}
}

// CurrentMonthWindow spans the first to the last day of now's month.
func CurrentMonthWindow(now time.Time) Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
	return Window{Start: ToInput(start), End: ToInput(end)}
}

// IsValid reports whether Start <= End. ISO dates compare correctly as strings.
func (w Window) IsValid() bool {
	return w.Start <= w.End
}

// Days returns the whole-day distance between Start and End, clamped at zero.
func (w Window) Days() (int, error) {
	start, err := Parse(w.Start)
	if err != nil {
		return 0, err
	}
	end, err := Parse(w.End)
	if err != nil {
		return 0, err
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, nil
}

// PreviousPeriod returns the window of equal length that ends the day before Start.
// An inverted window collapses to the single day before Start.
func PreviousPeriod(w Window) (Window, error) {
	days, err := w.Days()
	if err != nil {
		return Window{}, err
	}
	start, _ := Parse(w.Start)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -days)
	return Window{Start: ToInput(prevStart), End: ToInput(prevEnd)}, nil
}
