package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costintel/costintel/internal/charts"
)

func TestNewChartPanelRendersSVG(t *testing.T) {
	charts.EnsureRegistered()
	ds := charts.Dataset{
		Labels: []string{"Tecnologia", "RH"},
		Series: []charts.Series{{Name: "Total", Values: []float64{600, 400}, Color: charts.PrimaryColor}},
	}
	panel, err := NewChartPanel(charts.KindBar, ds, Panel{Title: "Ranking", Subtitle: "Por centro"}, charts.Options{}, "vazio")
	require.NoError(t, err)
	assert.Nil(t, panel.Empty)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(string(panel.SVG)), "<svg"))
	assert.Contains(t, string(panel.SVG), "Ranking")
	assert.Equal(t, "Por centro", panel.Panel.Subtitle)
}

func TestNewChartPanelEmptyDataset(t *testing.T) {
	charts.EnsureRegistered()
	panel, err := NewChartPanel(charts.KindLine, charts.Dataset{}, Panel{Title: "Tendência"}, charts.Options{}, "Sem lançamentos.")
	require.NoError(t, err)
	require.NotNil(t, panel.Empty)
	assert.Equal(t, "Sem lançamentos.", panel.Empty.Message)
	assert.Equal(t, DefaultEmptyTitle, panel.Empty.Heading())
	assert.Empty(t, panel.SVG)
}
