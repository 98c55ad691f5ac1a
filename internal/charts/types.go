// Package charts renders accessible inline SVG charts behind a one-time registration gate.
package charts

import "errors"

// Kind names a chart renderer.
type Kind string

const (
	KindLine     Kind = "line"
	KindBar      Kind = "bar"
	KindDoughnut Kind = "doughnut"
)

// Palette colours.
const (
	PrimaryColor   = "#0f7b8f"
	SecondaryColor = "#d68b23"
	axisColor      = "#4b5b68"
	gridColor      = "#d7e1e6"
)

// CategoryPalette is rotated across categorical slices and bars.
var CategoryPalette = []string{"#0f7b8f", "#d68b23", "#1f8a5c", "#2f4f88", "#bf3f4a", "#8f6cb7"}

// Defaults for the portal charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 260
	DefaultPadding = 32.0
	DefaultTicks   = 5
)

var (
	// ErrNotRegistered is returned when rendering a kind before EnsureRegistered ran.
	ErrNotRegistered = errors.New("charts: renderer not registered")
	// ErrEmptyDataset is returned for datasets with no labels or values.
	ErrEmptyDataset = errors.New("charts: dataset is empty")
)

// Series is one named run of values aligned with Dataset.Labels.
type Series struct {
	Name   string
	Values []float64

	// Color applies to the whole series. Colors, when set, colours each point.
	Color  string
	Colors []string
}

// Dataset is the chart-library-agnostic input of every renderer.
type Dataset struct {
	Labels []string
	Series []Series
}

// Options customises a rendered chart.
type Options struct {
	Title       string
	Description string
	Width       int
	Height      int

	// Fill shades the area under line charts.
	Fill bool

	// TickFormat labels the value axis. Compact numbers are used when nil.
	TickFormat func(float64) string
}

// Empty reports whether ds has nothing to draw.
func (ds Dataset) Empty() bool {
	if len(ds.Labels) == 0 || len(ds.Series) == 0 {
		return true
	}
	for _, s := range ds.Series {
		if len(s.Values) > 0 {
			return false
		}
	}
	return true
}

// PaletteColor returns the palette colour for index i, wrapping around.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return CategoryPalette[i%len(CategoryPalette)]
}
