// Package dashboard drives the executive cost dashboard: filter state, the
// parallel data load and the values derived from it.
package dashboard

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/costintel/costintel/internal/dates"
)

// Query keys mirrored into shareable URLs.
const (
	QueryStart    = "start"
	QueryEnd      = "end"
	QueryCenter   = "center"
	QueryProject  = "project"
	QueryCategory = "category"
)

// ShareConfirmationTTL is how long the "link copied" confirmation stays visible.
const ShareConfirmationTTL = 2500 * time.Millisecond

// Filters is one dashboard filter selection. Zero ids mean "all".
type Filters struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	CenterID   int64  `json:"center,omitempty"`
	ProjectID  int64  `json:"project,omitempty"`
	CategoryID int64  `json:"category,omitempty"`
}

// FiltersFromQuery seeds filters from URL parameters, falling back to defaults
// for missing dates. Unparsable or non-positive ids are dropped.
func FiltersFromQuery(q url.Values, defaults dates.Window) Filters {
	f := Filters{
		Start: strings.TrimSpace(q.Get(QueryStart)),
		End:   strings.TrimSpace(q.Get(QueryEnd)),
	}
	if f.Start == "" {
		f.Start = defaults.Start
	}
	if f.End == "" {
		f.End = defaults.End
	}
	f.CenterID = parseID(q.Get(QueryCenter))
	f.ProjectID = parseID(q.Get(QueryProject))
	f.CategoryID = parseID(q.Get(QueryCategory))
	return f
}

// Window is the date range of the selection.
func (f Filters) Window() dates.Window {
	return dates.Window{Start: f.Start, End: f.End}
}

// Query serialises the selection, leaving out empty filters.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Start != "" {
		q.Set(QueryStart, f.Start)
	}
	if f.End != "" {
		q.Set(QueryEnd, f.End)
	}
	setID(q, QueryCenter, f.CenterID)
	setID(q, QueryProject, f.ProjectID)
	setID(q, QueryCategory, f.CategoryID)
	return q
}

// ActiveCount counts the dimension filters in use.
func (f Filters) ActiveCount() int {
	n := 0
	for _, id := range []int64{f.CenterID, f.ProjectID, f.CategoryID} {
		if id > 0 {
			n++
		}
	}
	return n
}

func (f Filters) ids(id int64) []int64 {
	if id <= 0 {
		return nil
	}
	return []int64{id}
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func setID(q url.Values, key string, id int64) {
	if id > 0 {
		q.Set(key, strconv.FormatInt(id, 10))
	}
}
