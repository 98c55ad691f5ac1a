package dashboardhttp

import (
	"github.com/costintel/costintel/internal/charts"
	"github.com/costintel/costintel/internal/dashboard"
	"github.com/costintel/costintel/internal/dimensions"
	"github.com/costintel/costintel/internal/format"
	"github.com/costintel/costintel/internal/ui"
)

// Page copy.
const (
	msgDimensionsFailed = "Falha ao carregar dimensões de filtro."
	msgLoading          = "Carregando indicadores financeiros..."
	msgNoAnomalies      = "Nenhuma anomalia relevante foi detectada no período analisado."
	msgNoQuickWins      = "Não foram encontradas oportunidades acima do mínimo configurado."
	msgNoWaste          = "Nenhum aumento relevante de gasto foi encontrado na janela analisada."
	msgNoChartData      = "Não há lançamentos para os filtros aplicados."
	msgNoSnapshot       = "Aplique os filtros para carregar os indicadores."
)

// WasteRow is one line of the waste table.
type WasteRow struct {
	CostCenter string
	Category   string
	Waste      string
	Variation  string
	Tone       ui.Tone
}

// AnomalyRow is one line of the anomaly table.
type AnomalyRow struct {
	Month      string
	CostCenter string
	Category   string
	Amount     string
	ZScore     string
}

// QuickWinRow is one recommended quick win.
type QuickWinRow struct {
	Title    string
	Savings  string
	Score    string
	Progress float64
	Target   string
}

// ViewModel is everything the dashboard page template needs.
type ViewModel struct {
	Hero            ui.Hero
	Draft           dashboard.Filters
	ActiveFilters   int
	Dimensions      dimensions.Set
	DimensionsError *ui.Notice
	Error           *ui.Notice
	Loading         ui.Notice
	Placeholder     *ui.EmptyState

	HasData   bool
	KPIs      []ui.KPICard
	Trend     ui.ChartPanel
	Category  ui.ChartPanel
	Centers   ui.ChartPanel
	Waste     []WasteRow
	Anomalies []AnomalyRow
	QuickWins []QuickWinRow

	WasteEmpty     ui.EmptyState
	AnomaliesEmpty ui.EmptyState
	QuickWinsEmpty ui.EmptyState

	ShareURL string
	ResetURL string
	LoadedAt string
}

func buildViewModel(state dashboard.State, dims dimensions.Set, dimsErr error, shareURL string) (ViewModel, error) {
	vm := ViewModel{
		Hero: ui.Hero{
			Eyebrow:     "Visão executiva",
			Title:       "Dashboard de custos com alertas de desperdício e oportunidades priorizadas",
			Description: "Acompanhe tendência, distribuição e variações do período filtrado contra o período anterior de mesma duração.",
		},
		Draft:          state.Draft,
		ActiveFilters:  state.Draft.ActiveCount(),
		Dimensions:     dims,
		Error:          ui.ErrorNotice(state.Error),
		Loading:        ui.Notice{Kind: ui.NoticeInfo, Message: msgLoading},
		WasteEmpty:     ui.Empty(msgNoWaste),
		AnomaliesEmpty: ui.Empty(msgNoAnomalies),
		QuickWinsEmpty: ui.Empty(msgNoQuickWins),
		ShareURL:       shareURL,
	}
	if dimsErr != nil {
		vm.DimensionsError = ui.ErrorNotice(msgDimensionsFailed)
	}

	snap := state.Snapshot
	if snap == nil {
		empty := ui.Empty(msgNoSnapshot)
		vm.Placeholder = &empty
		return vm, nil
	}
	vm.HasData = true
	vm.LoadedAt = snap.LoadedAt.Local().Format("02/01/2006 15:04")
	vm.KPIs = kpis(snap)

	var err error
	if vm.Trend, err = ui.NewChartPanel(charts.KindLine, dashboard.TrendDataset(snap.Overview),
		ui.Panel{Title: "Tendência temporal", Subtitle: "Custos totais por mês"},
		charts.Options{Fill: true, TickFormat: format.Currency}, msgNoChartData); err != nil {
		return ViewModel{}, err
	}
	if vm.Category, err = ui.NewChartPanel(charts.KindDoughnut, dashboard.CategoryDataset(snap.Overview),
		ui.Panel{Title: "Distribuição por categoria", Subtitle: "Participação de cada categoria no total"},
		charts.Options{}, msgNoChartData); err != nil {
		return ViewModel{}, err
	}
	if vm.Centers, err = ui.NewChartPanel(charts.KindBar, dashboard.CenterDataset(snap.Overview),
		ui.Panel{Title: "Ranking por centro de custo", Subtitle: "Total acumulado por centro"},
		charts.Options{TickFormat: format.Currency}, msgNoChartData); err != nil {
		return ViewModel{}, err
	}

	for _, item := range snap.Waste.Items {
		vm.Waste = append(vm.Waste, WasteRow{
			CostCenter: item.CostCenter,
			Category:   item.Category,
			Waste:      format.Currency(item.EstimatedWaste),
			Variation:  format.SignedPercent(item.VariationPercent),
			Tone:       ui.ToneFor(item.VariationPercent),
		})
	}
	for _, item := range snap.Anomalies.Items {
		vm.Anomalies = append(vm.Anomalies, AnomalyRow{
			Month:      format.MonthLabel(item.Month),
			CostCenter: item.CostCenter,
			Category:   item.Category,
			Amount:     format.Currency(item.Amount),
			ZScore:     format.Decimal(item.ZScore, 2),
		})
	}
	for _, item := range snap.QuickWins.Items {
		vm.QuickWins = append(vm.QuickWins, QuickWinRow{
			Title:    item.CostCenter + " · " + item.Category,
			Savings:  format.Currency(item.EstimatedSavings),
			Score:    format.Decimal(item.OpportunityScore, 1),
			Progress: item.OpportunityScore,
			Target:   format.CompactPercent(snap.QuickWins.TargetReductionPercent),
		})
	}
	return vm, nil
}

func kpis(snap *dashboard.Snapshot) []ui.KPICard {
	total := ui.KPICard{
		Label:    "Custo total",
		Value:    format.Currency(snap.Overview.TotalCost),
		Subtitle: "Período filtrado",
	}
	if delta, ok := dashboard.CostDelta(snap.Overview.TotalCost, snap.Previous.TotalCost); ok {
		total.Delta = format.SignedPercent(delta) + " vs. período anterior"
		total.Tone = ui.ToneFor(delta)
	}
	return []ui.KPICard{
		total,
		{
			Label:    "Média mensal",
			Value:    format.Currency(snap.Overview.MonthlyAverage),
			Subtitle: "Referência de baseline",
		},
		{
			Label:    "Quick wins (top 3)",
			Value:    format.Currency(dashboard.QuickWinPotential(snap.QuickWins.Items, dashboard.QuickWinTopN)),
			Tone:     ui.TonePositive,
			Subtitle: "Potencial de economia imediata",
		},
		{
			Label:    "Maior desperdício",
			Value:    format.Currency(dashboard.LargestWaste(snap.Waste.Items)),
			Tone:     ui.ToneDanger,
			Subtitle: "Comparação com período anterior",
		},
	}
}
