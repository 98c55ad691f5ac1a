package simulations

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/costintel/costintel/internal/charts"
	"github.com/costintel/costintel/internal/costapi"
)

// ExportHeader is the fixed first row of the ranking export.
var ExportHeader = []string{"Tipo", "Entidade", "Baseline", "Projetado", "Economia", "Impacto (%)"}

// Entity types in the export.
const (
	ExportTypeCenter   = "Centro"
	ExportTypeCategory = "Categoria"
)

// WriteRankingCSV writes both impact rankings as one semicolon-delimited table.
// Quotes inside fields are doubled.
func WriteRankingCSV(w io.Writer, resp costapi.SimulationResponse) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	if err := writer.Write(ExportHeader); err != nil {
		return err
	}
	for _, group := range []struct {
		kind  string
		items []costapi.ImpactRankingItem
	}{
		{ExportTypeCenter, resp.CenterImpactRanking},
		{ExportTypeCategory, resp.CategoryImpactRanking},
	} {
		for _, item := range group.items {
			if err := writer.Write([]string{
				group.kind,
				item.EntityName,
				formatAmount(item.BaselineAmount),
				formatAmount(item.ProjectedAmount),
				formatAmount(item.EstimatedSavings),
				formatAmount(item.ImpactPercent),
			}); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// CenterSavingsDataset projects the center ranking for the savings bar chart.
func CenterSavingsDataset(resp costapi.SimulationResponse) charts.Dataset {
	labels := make([]string, 0, len(resp.CenterImpactRanking))
	values := make([]float64, 0, len(resp.CenterImpactRanking))
	for _, item := range resp.CenterImpactRanking {
		labels = append(labels, item.EntityName)
		values = append(values, item.EstimatedSavings)
	}
	return charts.Dataset{
		Labels: labels,
		Series: []charts.Series{{Name: "Economia estimada por centro", Values: values, Color: charts.PrimaryColor}},
	}
}
