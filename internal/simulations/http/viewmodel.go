package simulationhttp

import (
	"github.com/costintel/costintel/internal/charts"
	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dimensions"
	"github.com/costintel/costintel/internal/format"
	"github.com/costintel/costintel/internal/scenarios"
	"github.com/costintel/costintel/internal/simulations"
	"github.com/costintel/costintel/internal/ui"
)

// Page copy.
const (
	msgNoCenterCuts   = "Nenhum centro configurado."
	msgNoCategoryCuts = "Nenhuma categoria configurada."
	msgNoResult       = "Configure os cortes e execute a simulação para ver o impacto."
	msgNoRanking      = "A simulação não retornou impacto por centro."
	msgNoCategoryRank = "A simulação não retornou impacto por categoria."
	msgNoSaved        = "Nenhum cenário salvo neste navegador."
	msgNoComparison   = "Selecione ao menos dois cenários salvos e compare."
)

// CutRow is one editable cut line.
type CutRow struct {
	ID       int64
	Name     string
	Percent  float64
	Absolute float64
}

// RankingRow is one line of the category impact table.
type RankingRow struct {
	Name      string
	Baseline  string
	Projected string
	Savings   string
	Impact    string
	Tone      ui.Tone
}

// ScenarioRow is one saved scenario.
type ScenarioRow struct {
	ID        string
	Name      string
	Window    string
	CutCount  int
	CreatedAt string
}

// ComparisonRow is one ranked scenario of a comparison.
type ComparisonRow struct {
	Rank    int
	Name    string
	Savings string
	Impact  string
	Best    bool
}

// ViewModel is everything the simulator page template needs.
type ViewModel struct {
	Hero            ui.Hero
	Draft           simulations.Draft
	DimensionsError *ui.Notice
	Templates       []simulations.Template

	CenterCuts        []CutRow
	CategoryCuts      []CutRow
	CenterOptions     []costapi.DimensionItem
	CategoryOptions   []costapi.DimensionItem
	CenterCutsEmpty   ui.EmptyState
	CategoryCutsEmpty ui.EmptyState
	CutCount          int

	HasResult     bool
	ResultWindow  string
	RanAt         string
	KPIs          []ui.KPICard
	CenterRanking ui.ChartPanel
	Categories    []RankingRow
	CategoryEmpty ui.EmptyState
	Placeholder   *ui.EmptyState

	Saved      []ScenarioRow
	SavedEmpty ui.EmptyState
	MaxSaved   int

	Comparison      []ComparisonRow
	ComparisonBest  string
	ComparisonEmpty ui.EmptyState
}

func buildViewModel(
	draft simulations.Draft,
	dims dimensions.Set,
	dimsErr error,
	result *simulations.Result,
	comparison *costapi.ComparisonResponse,
	saved []scenarios.SavedScenario,
) (ViewModel, error) {
	vm := ViewModel{
		Hero: ui.Hero{
			Eyebrow:     "Simulação estratégica",
			Title:       "Modele cenários de redução e priorize ações com maior economia",
			Description: "Defina cortes percentuais e absolutos por centro de custo e categoria para testar impacto financeiro antes da execução.",
		},
		Draft:             draft,
		Templates:         simulations.Templates(),
		CenterCutsEmpty:   ui.Empty(msgNoCenterCuts),
		CategoryCutsEmpty: ui.Empty(msgNoCategoryCuts),
		CutCount:          draft.CutCount(),
		CategoryEmpty:     ui.Empty(msgNoCategoryRank),
		SavedEmpty:        ui.Empty(msgNoSaved),
		MaxSaved:          scenarios.MaxSaved,
		ComparisonEmpty:   ui.Empty(msgNoComparison),
	}
	if dimsErr != nil {
		vm.DimensionsError = ui.ErrorNotice(msgDimensionsFailed)
	}

	used := make(map[int64]bool, len(draft.CenterCuts))
	for _, cut := range draft.CenterCuts {
		used[cut.CostCenterID] = true
		vm.CenterCuts = append(vm.CenterCuts, CutRow{
			ID:       cut.CostCenterID,
			Name:     dims.CenterName(cut.CostCenterID),
			Percent:  cut.PercentCut,
			Absolute: cut.AbsoluteCut,
		})
	}
	vm.CenterOptions = remaining(dims.Centers, used)

	used = make(map[int64]bool, len(draft.CategoryCuts))
	for _, cut := range draft.CategoryCuts {
		used[cut.CategoryID] = true
		vm.CategoryCuts = append(vm.CategoryCuts, CutRow{
			ID:       cut.CategoryID,
			Name:     dims.CategoryName(cut.CategoryID),
			Percent:  cut.PercentCut,
			Absolute: cut.AbsoluteCut,
		})
	}
	vm.CategoryOptions = remaining(dims.Categories, used)

	for _, s := range saved {
		vm.Saved = append(vm.Saved, ScenarioRow{
			ID:        s.ID,
			Name:      s.Name,
			Window:    s.StartDate + " a " + s.EndDate,
			CutCount:  s.CutCount(),
			CreatedAt: s.CreatedAt,
		})
	}

	if comparison != nil {
		if comparison.BestScenario != nil {
			vm.ComparisonBest = *comparison.BestScenario
		}
		for _, item := range comparison.Items {
			vm.Comparison = append(vm.Comparison, ComparisonRow{
				Rank:    item.Rank,
				Name:    item.ScenarioName,
				Savings: format.Currency(item.EstimatedSavings),
				Impact:  format.Percent(item.ImpactPercent, 2),
				Best:    item.ScenarioName == vm.ComparisonBest,
			})
		}
	}

	if result == nil {
		empty := ui.Empty(msgNoResult)
		vm.Placeholder = &empty
		return vm, nil
	}
	resp := result.Response
	vm.HasResult = true
	vm.ResultWindow = result.Request.StartDate + " a " + result.Request.EndDate
	vm.RanAt = result.RanAt.Local().Format("02/01/2006 15:04")
	vm.KPIs = []ui.KPICard{
		{Label: "Baseline", Value: format.Currency(resp.BaselineTotal), Subtitle: "Custo total de referência"},
		{Label: "Projetado", Value: format.Currency(resp.ProjectedTotal), Subtitle: "Após aplicação dos cortes"},
		{Label: "Economia estimada", Value: format.Currency(resp.EstimatedSavings), Tone: ui.TonePositive},
		{Label: "Impacto percentual", Value: format.Percent(resp.ImpactPercent, 2), Tone: ui.TonePositive},
	}

	var err error
	if vm.CenterRanking, err = ui.NewChartPanel(charts.KindBar, simulations.CenterSavingsDataset(resp),
		ui.Panel{Title: "Ranking de impacto por centro", Subtitle: "Economia estimada por centro de custo"},
		charts.Options{TickFormat: format.Currency}, msgNoRanking); err != nil {
		return ViewModel{}, err
	}
	for _, item := range resp.CategoryImpactRanking {
		vm.Categories = append(vm.Categories, RankingRow{
			Name:      item.EntityName,
			Baseline:  format.Currency(item.BaselineAmount),
			Projected: format.Currency(item.ProjectedAmount),
			Savings:   format.Currency(item.EstimatedSavings),
			Impact:    format.Percent(item.ImpactPercent, 2),
			Tone:      ui.ToneFor(-item.EstimatedSavings),
		})
	}
	return vm, nil
}

// remaining filters out dimension items that already carry a cut.
func remaining(items []costapi.DimensionItem, used map[int64]bool) []costapi.DimensionItem {
	out := make([]costapi.DimensionItem, 0, len(items))
	for _, item := range items {
		if !used[item.ID] {
			out = append(out, item)
		}
	}
	return out
}
