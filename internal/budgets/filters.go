// Package budgets shows planned versus actual spend per cost center.
package budgets

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dates"
)

// Query keys of the variance form.
const (
	QueryStart     = "start"
	QueryEnd       = "end"
	QueryCenter    = "center"
	QueryTolerance = "tolerance"
	QueryOnTrack   = "on_track"
	QueryTopN      = "top"
)

// DefaultTolerance is the percent band around plan that still counts as on track.
const DefaultTolerance = 3.0

// Validation messages.
const (
	MsgInvalidWindow    = "A data inicial deve ser anterior ou igual à data final."
	MsgInvalidTolerance = "A tolerância deve estar entre 0% e 30%."
	MsgInvalidTopN      = "O limite de centros deve estar entre 1 e 100."
)

var validate = validator.New()

// Filters is one variance query.
type Filters struct {
	Start          string  `validate:"required,datetime=2006-01-02"`
	End            string  `validate:"required,datetime=2006-01-02"`
	CenterID       int64   `validate:"gte=0"`
	Tolerance      float64 `validate:"gte=0,lte=30"`
	IncludeOnTrack bool
	TopN           int `validate:"omitempty,gte=1,lte=100"`
}

// DefaultFilters covers the current month with the default tolerance.
func DefaultFilters(w dates.Window) Filters {
	return Filters{Start: w.Start, End: w.End, Tolerance: DefaultTolerance, IncludeOnTrack: true}
}

// FiltersFromQuery reads the variance form. A form without dates is treated as
// a first visit and returns defaults untouched.
func FiltersFromQuery(q url.Values, defaults Filters) Filters {
	start, end := strings.TrimSpace(q.Get(QueryStart)), strings.TrimSpace(q.Get(QueryEnd))
	if start == "" && end == "" {
		return defaults
	}
	f := Filters{Start: start, End: end, Tolerance: defaults.Tolerance}
	if f.Start == "" {
		f.Start = defaults.Start
	}
	if f.End == "" {
		f.End = defaults.End
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(q.Get(QueryCenter)), 10, 64); err == nil && id > 0 {
		f.CenterID = id
	}
	if raw := strings.TrimSpace(q.Get(QueryTolerance)); raw != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err == nil {
			f.Tolerance = v
		} else {
			f.Tolerance = -1
		}
	}
	f.IncludeOnTrack = q.Get(QueryOnTrack) == "1"
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get(QueryTopN))); err == nil {
		f.TopN = n
	}
	return f
}

// Query serialises the filters for links.
func (f Filters) Query() url.Values {
	q := url.Values{}
	q.Set(QueryStart, f.Start)
	q.Set(QueryEnd, f.End)
	if f.CenterID > 0 {
		q.Set(QueryCenter, strconv.FormatInt(f.CenterID, 10))
	}
	q.Set(QueryTolerance, strconv.FormatFloat(f.Tolerance, 'f', -1, 64))
	if f.IncludeOnTrack {
		q.Set(QueryOnTrack, "1")
	}
	if f.TopN > 0 {
		q.Set(QueryTopN, strconv.Itoa(f.TopN))
	}
	return q
}

// Validate returns the first user-facing problem with f, or "".
func (f Filters) Validate() string {
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Tolerance":
				return MsgInvalidTolerance
			case "TopN":
				return MsgInvalidTopN
			}
		}
		return MsgInvalidWindow
	}
	if !(dates.Window{Start: f.Start, End: f.End}).IsValid() {
		return MsgInvalidWindow
	}
	return ""
}

// Params converts the filters into API parameters.
func (f Filters) Params() costapi.VarianceParams {
	includeOnTrack := f.IncludeOnTrack
	tolerance := f.Tolerance
	p := costapi.VarianceParams{
		StartDate:        f.Start,
		EndDate:          f.End,
		TolerancePercent: &tolerance,
		IncludeOnTrack:   &includeOnTrack,
		TopN:             f.TopN,
	}
	if f.CenterID > 0 {
		p.CostCenterIDs = []int64{f.CenterID}
	}
	return p
}
