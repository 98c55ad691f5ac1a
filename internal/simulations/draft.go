// Package simulations holds the what-if budget simulator: the editable cut
// draft, canned templates, the validation gate and the single-flight runner.
package simulations

import (
	"time"

	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dates"
	"github.com/costintel/costintel/internal/scenarios"
)

// Cut bounds.
const (
	MinPercentCut = 0
	MaxPercentCut = 100
)

// Draft is the simulation being edited. At most one cut exists per dimension id.
type Draft struct {
	StartDate    string                `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string                `json:"endDate" validate:"required,datetime=2006-01-02"`
	CenterCuts   []costapi.CenterCut   `json:"centerCuts"`
	CategoryCuts []costapi.CategoryCut `json:"categoryCuts"`
}

// NewDraft starts an empty draft over the current month.
func NewDraft(now time.Time) Draft {
	w := dates.CurrentMonthWindow(now)
	return Draft{StartDate: w.Start, EndDate: w.End}
}

// Window is the date range of the draft.
func (d Draft) Window() dates.Window {
	return dates.Window{Start: d.StartDate, End: d.EndDate}
}

// HasCuts reports whether at least one cut is configured.
func (d Draft) HasCuts() bool {
	return len(d.CenterCuts) > 0 || len(d.CategoryCuts) > 0
}

// CutCount is the number of configured cuts.
func (d Draft) CutCount() int {
	return len(d.CenterCuts) + len(d.CategoryCuts)
}

// AddCenterCut appends a zero cut for id. Zero ids and ids already present are ignored.
func (d *Draft) AddCenterCut(id int64) bool {
	if id <= 0 || d.centerIndex(id) >= 0 {
		return false
	}
	d.CenterCuts = append(d.CenterCuts, costapi.CenterCut{CostCenterID: id})
	return true
}

// AddCategoryCut appends a zero cut for id. Zero ids and ids already present are ignored.
func (d *Draft) AddCategoryCut(id int64) bool {
	if id <= 0 || d.categoryIndex(id) >= 0 {
		return false
	}
	d.CategoryCuts = append(d.CategoryCuts, costapi.CategoryCut{CategoryID: id})
	return true
}

// RemoveCenterCut drops the cut for id, if any.
func (d *Draft) RemoveCenterCut(id int64) bool {
	i := d.centerIndex(id)
	if i < 0 {
		return false
	}
	d.CenterCuts = append(d.CenterCuts[:i:i], d.CenterCuts[i+1:]...)
	return true
}

// RemoveCategoryCut drops the cut for id, if any.
func (d *Draft) RemoveCategoryCut(id int64) bool {
	i := d.categoryIndex(id)
	if i < 0 {
		return false
	}
	d.CategoryCuts = append(d.CategoryCuts[:i:i], d.CategoryCuts[i+1:]...)
	return true
}

// SetCenterCut adjusts an existing center cut. Percent is clamped to [0,100]
// and a negative absolute cut becomes zero.
func (d *Draft) SetCenterCut(id int64, percent, absolute float64) bool {
	i := d.centerIndex(id)
	if i < 0 {
		return false
	}
	d.CenterCuts[i].PercentCut = clampPercent(percent)
	d.CenterCuts[i].AbsoluteCut = clampAbsolute(absolute)
	return true
}

// SetCategoryCut adjusts an existing category cut with the same clamping as SetCenterCut.
func (d *Draft) SetCategoryCut(id int64, percent, absolute float64) bool {
	i := d.categoryIndex(id)
	if i < 0 {
		return false
	}
	d.CategoryCuts[i].PercentCut = clampPercent(percent)
	d.CategoryCuts[i].AbsoluteCut = clampAbsolute(absolute)
	return true
}

// Clear removes every cut and keeps the window.
func (d *Draft) Clear() {
	d.CenterCuts = nil
	d.CategoryCuts = nil
}

// LoadScenario replaces the whole draft with a saved scenario.
func (d *Draft) LoadScenario(s scenarios.SavedScenario) {
	*d = Draft{
		StartDate:    s.StartDate,
		EndDate:      s.EndDate,
		CenterCuts:   append([]costapi.CenterCut(nil), s.CenterCuts...),
		CategoryCuts: append([]costapi.CategoryCut(nil), s.CategoryCuts...),
	}
}

// Request builds the API body. Cut lists are never nil so they encode as [].
func (d Draft) Request() costapi.SimulationRequest {
	return costapi.SimulationRequest{
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		CenterCuts:   append([]costapi.CenterCut{}, d.CenterCuts...),
		CategoryCuts: append([]costapi.CategoryCut{}, d.CategoryCuts...),
	}
}

// ScenarioDraft converts the draft into a named scenario for the store.
func (d Draft) ScenarioDraft(name string) scenarios.Draft {
	return scenarios.Draft{
		Name:         name,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		CenterCuts:   append([]costapi.CenterCut(nil), d.CenterCuts...),
		CategoryCuts: append([]costapi.CategoryCut(nil), d.CategoryCuts...),
	}
}

func (d Draft) centerIndex(id int64) int {
	for i, cut := range d.CenterCuts {
		if cut.CostCenterID == id {
			return i
		}
	}
	return -1
}

func (d Draft) categoryIndex(id int64) int {
	for i, cut := range d.CategoryCuts {
		if cut.CategoryID == id {
			return i
		}
	}
	return -1
}

func clampPercent(v float64) float64 {
	switch {
	case v < MinPercentCut:
		return MinPercentCut
	case v > MaxPercentCut:
		return MaxPercentCut
	default:
		return v
	}
}

func clampAbsolute(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
