package dashboard

import (
	"github.com/costintel/costintel/internal/charts"
	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/format"
)

// QuickWinTopN is the number of leading quick wins summed into the headline potential.
const QuickWinTopN = 3

// CostDelta is the percent change of current against previous. It reports
// false when previous is zero and no meaningful delta exists.
func CostDelta(current, previous float64) (float64, bool) {
	if previous == 0 {
		return 0, false
	}
	return (current - previous) / previous * 100, true
}

// QuickWinPotential sums the estimated savings of the first n quick wins.
func QuickWinPotential(items []costapi.QuickWinOpportunity, n int) float64 {
	if n > len(items) {
		n = len(items)
	}
	total := 0.0
	for _, item := range items[:n] {
		total += item.EstimatedSavings
	}
	return total
}

// LargestWaste is the estimated waste of the top-ranked item, or zero.
func LargestWaste(items []costapi.WasteRankingItem) float64 {
	if len(items) == 0 {
		return 0
	}
	return items[0].EstimatedWaste
}

// TrendDataset projects the monthly trend for the line chart.
func TrendDataset(overview costapi.CostOverviewResponse) charts.Dataset {
	labels := make([]string, 0, len(overview.Trend))
	values := make([]float64, 0, len(overview.Trend))
	for _, item := range overview.Trend {
		labels = append(labels, format.MonthLabel(item.Label))
		values = append(values, item.TotalAmount)
	}
	return charts.Dataset{
		Labels: labels,
		Series: []charts.Series{{Name: "Custos totais", Values: values, Color: charts.PrimaryColor}},
	}
}

// CenterDataset projects totals per cost center for the bar chart.
func CenterDataset(overview costapi.CostOverviewResponse) charts.Dataset {
	labels, values := labelled(overview.ByCostCenter)
	return charts.Dataset{
		Labels: labels,
		Series: []charts.Series{{Name: "Total por centro", Values: values, Color: charts.SecondaryColor}},
	}
}

// CategoryDataset projects the category split for the doughnut chart, rotating the palette.
func CategoryDataset(overview costapi.CostOverviewResponse) charts.Dataset {
	labels, values := labelled(overview.ByCategory)
	colors := make([]string, len(values))
	for i := range colors {
		colors[i] = charts.PaletteColor(i)
	}
	return charts.Dataset{
		Labels: labels,
		Series: []charts.Series{{Name: "Distribuição por categoria", Values: values, Colors: colors}},
	}
}

func labelled(items []costapi.CostAggregate) ([]string, []float64) {
	labels := make([]string, 0, len(items))
	values := make([]float64, 0, len(items))
	for _, item := range items {
		label := item.Label
		if label == "" {
			label = "N/A"
		}
		labels = append(labels, label)
		values = append(values, item.TotalAmount)
	}
	return labels, values
}
