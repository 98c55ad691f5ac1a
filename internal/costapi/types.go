package costapi

// DimensionItem is a selectable cost center, project or category.
type DimensionItem struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CostOverviewResponse summarises costs for a window.
type CostOverviewResponse struct {
	TotalCost      float64         `json:"total_cost"`
	MonthlyAverage float64         `json:"monthly_average"`
	PeriodStart    string          `json:"period_start"`
	PeriodEnd      string          `json:"period_end"`
	Trend          []CostAggregate `json:"trend"`
	ByCostCenter   []CostAggregate `json:"by_cost_center"`
	ByCategory     []CostAggregate `json:"by_category"`
}

// WasteRankingItem is a center/category pair whose spend grew against the comparable period.
type WasteRankingItem struct {
	CostCenter          string  `json:"cost_center"`
	Category            string  `json:"category"`
	PreviousPeriodTotal float64 `json:"previous_period_total"`
	CurrentPeriodTotal  float64 `json:"current_period_total"`
	EstimatedWaste      float64 `json:"estimated_waste"`
	VariationPercent    float64 `json:"variation_percent"`
}

// WasteRankingResponse is returned pre-ranked by the backend.
type WasteRankingResponse struct {
	PeriodStart string             `json:"period_start"`
	PeriodEnd   string             `json:"period_end"`
	Items       []WasteRankingItem `json:"items"`
}

// AnomalyItem is a monthly amount flagged by z-score.
type AnomalyItem struct {
	Month        string  `json:"month"`
	CostCenter   string  `json:"cost_center"`
	Category     string  `json:"category"`
	Amount       float64 `json:"amount"`
	BaselineMean float64 `json:"baseline_mean"`
	BaselineStd  float64 `json:"baseline_std"`
	ZScore       float64 `json:"z_score"`
}

// AnomalyDetectionResponse lists anomalies above ThresholdZ.
type AnomalyDetectionResponse struct {
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	ThresholdZ  float64       `json:"threshold_z"`
	Items       []AnomalyItem `json:"items"`
}

// QuickWinOpportunity is a high-opportunity, low-effort savings candidate.
type QuickWinOpportunity struct {
	CostCenter       string  `json:"cost_center"`
	Category         string  `json:"category"`
	PeriodTotal      float64 `json:"period_total"`
	MonthlyAverage   float64 `json:"monthly_average"`
	TrendPercent     float64 `json:"trend_percent"`
	Volatility       float64 `json:"volatility"`
	OpportunityScore float64 `json:"opportunity_score"`
	EstimatedSavings float64 `json:"estimated_savings"`
}

// QuickWinsResponse is returned ordered by opportunity score.
type QuickWinsResponse struct {
	PeriodStart            string                `json:"period_start"`
	PeriodEnd              string                `json:"period_end"`
	TargetReductionPercent float64               `json:"target_reduction_percent"`
	MinimumTotal           float64               `json:"minimum_total"`
	Items                  []QuickWinOpportunity `json:"items"`
}

// BudgetVarianceStatus classifies actual spend against plan and tolerance.
type BudgetVarianceStatus string

const (
	StatusOverBudget  BudgetVarianceStatus = "over_budget"
	StatusOnTrack     BudgetVarianceStatus = "on_track"
	StatusUnderBudget BudgetVarianceStatus = "under_budget"
)

// BudgetVarianceItem compares planned and actual spend for one cost center.
type BudgetVarianceItem struct {
	CostCenterID    int64                `json:"cost_center_id"`
	CostCenter      string               `json:"cost_center"`
	PlannedAmount   float64              `json:"planned_amount"`
	ActualAmount    float64              `json:"actual_amount"`
	VarianceAmount  float64              `json:"variance_amount"`
	VariancePercent float64              `json:"variance_percent"`
	Status          BudgetVarianceStatus `json:"status"`
}

// BudgetVarianceResponse aggregates variance items and totals.
type BudgetVarianceResponse struct {
	PeriodStart      string               `json:"period_start"`
	PeriodEnd        string               `json:"period_end"`
	TolerancePercent float64              `json:"tolerance_percent"`
	TotalPlanned     float64              `json:"total_planned"`
	TotalActual      float64              `json:"total_actual"`
	TotalVariance    float64              `json:"total_variance"`
	Items            []BudgetVarianceItem `json:"items"`
}

// CenterCut reduces one cost center by a percentage and/or an absolute amount.
type CenterCut struct {
	CostCenterID int64   `json:"cost_center_id"`
	PercentCut   float64 `json:"percent_cut"`
	AbsoluteCut  float64 `json:"absolute_cut"`
}

// CategoryCut reduces one category by a percentage and/or an absolute amount.
type CategoryCut struct {
	CategoryID  int64   `json:"category_id"`
	PercentCut  float64 `json:"percent_cut"`
	AbsoluteCut float64 `json:"absolute_cut"`
}

// ImpactRankingItem is one entity in a simulation impact ranking.
type ImpactRankingItem struct {
	EntityID         int64   `json:"entity_id"`
	EntityName       string  `json:"entity_name"`
	BaselineAmount   float64 `json:"baseline_amount"`
	ProjectedAmount  float64 `json:"projected_amount"`
	EstimatedSavings float64 `json:"estimated_savings"`
	ImpactPercent    float64 `json:"impact_percent"`
}

// SimulationResponse is the remote outcome of a set of cuts.
type SimulationResponse struct {
	BaselineTotal         float64             `json:"baseline_total"`
	ProjectedTotal        float64             `json:"projected_total"`
	EstimatedSavings      float64             `json:"estimated_savings"`
	ImpactPercent         float64             `json:"impact_percent"`
	CenterImpactRanking   []ImpactRankingItem `json:"center_impact_ranking"`
	CategoryImpactRanking []ImpactRankingItem `json:"category_impact_ranking"`
}

// ComparisonScenario is one named cut set sent for comparison.
type ComparisonScenario struct {
	ScenarioName string        `json:"scenario_name"`
	CenterCuts   []CenterCut   `json:"center_cuts"`
	CategoryCuts []CategoryCut `json:"category_cuts"`
}

// ComparisonItem is the ranked outcome of one compared scenario.
type ComparisonItem struct {
	ScenarioName     string  `json:"scenario_name"`
	BaselineTotal    float64 `json:"baseline_total"`
	ProjectedTotal   float64 `json:"projected_total"`
	EstimatedSavings float64 `json:"estimated_savings"`
	ImpactPercent    float64 `json:"impact_percent"`
	Rank             int     `json:"rank"`
}

// ComparisonResponse ranks scenarios by savings. BestScenario is nil when none qualifies.
type ComparisonResponse struct {
	PeriodStart  string           `json:"period_start"`
	PeriodEnd    string           `json:"period_end"`
	BestScenario *string          `json:"best_scenario"`
	Items        []ComparisonItem `json:"items"`
}
