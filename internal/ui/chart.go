package ui

import (
	"errors"
	"html/template"

	"github.com/costintel/costintel/internal/charts"
)

// ChartPanel is a panel holding one SVG chart or, when there is nothing to draw, its empty state.
type ChartPanel struct {
	Panel Panel
	SVG   template.HTML
	Empty *EmptyState
}

// NewChartPanel renders ds into a panel. The panel title and subtitle double as the SVG title and description.
func NewChartPanel(kind charts.Kind, ds charts.Dataset, panel Panel, opts charts.Options, emptyMessage string) (ChartPanel, error) {
	opts.Title = panel.Title
	opts.Description = panel.Subtitle
	svg, err := charts.Render(kind, ds, opts)
	if errors.Is(err, charts.ErrEmptyDataset) {
		empty := Empty(emptyMessage)
		return ChartPanel{Panel: panel, Empty: &empty}, nil
	}
	if err != nil {
		return ChartPanel{}, err
	}
	return ChartPanel{Panel: panel, SVG: svg}, nil
}
