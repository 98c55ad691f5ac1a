package costapi

import (
	"context"
	"net/url"
)

// Paths of the consumed API.
const (
	PathCostOverview       = "/api/v1/costs/overview"
	PathWasteRanking       = "/api/v1/waste/ranking"
	PathAnomalies          = "/api/v1/anomalies/detect"
	PathQuickWins          = "/api/v1/opportunities/quick-wins"
	PathBudgetVariance     = "/api/v1/budgets/variance"
	PathCostCenters        = "/api/v1/dimensions/cost-centers"
	PathProjects           = "/api/v1/dimensions/projects"
	PathCategories         = "/api/v1/dimensions/categories"
	PathRunSimulation      = "/api/v1/simulations/run"
	PathCompareSimulations = "/api/v1/simulations/compare"
)

// OverviewParams filters the cost overview.
type OverviewParams struct {
	StartDate     string
	EndDate       string
	CostCenterIDs []int64
	ProjectIDs    []int64
	CategoryIDs   []int64
}

// WasteParams drives the waste ranking. Zero values fall back to 3 months / top 10.
type WasteParams struct {
	EndDate        string
	LookbackMonths int
	TopN           int
}

// AnomalyParams drives anomaly detection. Zero values fall back to 12 months, z=2, top 20.
type AnomalyParams struct {
	EndDate        string
	LookbackMonths int
	ThresholdZ     float64
	TopN           int
}

// QuickWinParams drives quick-win scoring. Zero values fall back to 6 months, 8%, 10000, top 10.
type QuickWinParams struct {
	EndDate                string
	LookbackMonths         int
	TargetReductionPercent float64
	MinimumTotal           float64
	TopN                   int
}

// VarianceParams filters budget variance. A nil TolerancePercent falls back to
// 3; zero is sent as is. TopN is omitted when zero.
type VarianceParams struct {
	StartDate        string
	EndDate          string
	CostCenterIDs    []int64
	TolerancePercent *float64
	IncludeOnTrack   *bool
	TopN             int
}

// SimulationRequest is the body of a simulation run.
type SimulationRequest struct {
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	CenterCuts   []CenterCut   `json:"center_cuts"`
	CategoryCuts []CategoryCut `json:"category_cuts"`
}

// ComparisonRequest is the body of a scenario comparison.
type ComparisonRequest struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Scenarios []ComparisonScenario `json:"scenarios"`
}

// CostCenters lists cost centers.
func (c *Client) CostCenters(ctx context.Context) ([]DimensionItem, error) {
	var items []DimensionItem
	if err := c.getJSON(ctx, "cost_centers", PathCostCenters, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Projects lists projects.
func (c *Client) Projects(ctx context.Context) ([]DimensionItem, error) {
	var items []DimensionItem
	if err := c.getJSON(ctx, "projects", PathProjects, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Categories lists categories.
func (c *Client) Categories(ctx context.Context) ([]DimensionItem, error) {
	var items []DimensionItem
	if err := c.getJSON(ctx, "categories", PathCategories, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CostOverview loads totals, trend and breakdowns for a window.
func (c *Client) CostOverview(ctx context.Context, params OverviewParams) (CostOverviewResponse, error) {
	q := url.Values{}
	appendParam(q, "start_date", params.StartDate)
	appendParam(q, "end_date", params.EndDate)
	appendParam(q, "cost_center_ids", params.CostCenterIDs)
	appendParam(q, "project_ids", params.ProjectIDs)
	appendParam(q, "category_ids", params.CategoryIDs)
	var out CostOverviewResponse
	err := c.getJSON(ctx, "cost_overview", withQuery(PathCostOverview, q), &out)
	return out, err
}

// WasteRanking loads the waste ranking.
func (c *Client) WasteRanking(ctx context.Context, params WasteParams) (WasteRankingResponse, error) {
	q := url.Values{}
	appendParam(q, "end_date", params.EndDate)
	appendParam(q, "lookback_months", orInt(params.LookbackMonths, 3))
	appendParam(q, "top_n", orInt(params.TopN, 10))
	var out WasteRankingResponse
	err := c.getJSON(ctx, "waste_ranking", withQuery(PathWasteRanking, q), &out)
	return out, err
}

// Anomalies runs anomaly detection.
func (c *Client) Anomalies(ctx context.Context, params AnomalyParams) (AnomalyDetectionResponse, error) {
	q := url.Values{}
	appendParam(q, "end_date", params.EndDate)
	appendParam(q, "lookback_months", orInt(params.LookbackMonths, 12))
	appendParam(q, "threshold_z", orFloat(params.ThresholdZ, 2))
	appendParam(q, "top_n", orInt(params.TopN, 20))
	var out AnomalyDetectionResponse
	err := c.getJSON(ctx, "anomalies", withQuery(PathAnomalies, q), &out)
	return out, err
}

// QuickWins loads quick-win opportunities.
func (c *Client) QuickWins(ctx context.Context, params QuickWinParams) (QuickWinsResponse, error) {
	q := url.Values{}
	appendParam(q, "end_date", params.EndDate)
	appendParam(q, "lookback_months", orInt(params.LookbackMonths, 6))
	appendParam(q, "target_reduction_percent", orFloat(params.TargetReductionPercent, 8))
	appendParam(q, "minimum_total", orFloat(params.MinimumTotal, 10000))
	appendParam(q, "top_n", orInt(params.TopN, 10))
	var out QuickWinsResponse
	err := c.getJSON(ctx, "quick_wins", withQuery(PathQuickWins, q), &out)
	return out, err
}

// BudgetVariance loads planned vs actual spend per cost center.
func (c *Client) BudgetVariance(ctx context.Context, params VarianceParams) (BudgetVarianceResponse, error) {
	includeOnTrack := true
	if params.IncludeOnTrack != nil {
		includeOnTrack = *params.IncludeOnTrack
	}
	tolerance := 3.0
	if params.TolerancePercent != nil {
		tolerance = *params.TolerancePercent
	}
	q := url.Values{}
	appendParam(q, "start_date", params.StartDate)
	appendParam(q, "end_date", params.EndDate)
	appendParam(q, "cost_center_ids", params.CostCenterIDs)
	appendParam(q, "tolerance_percent", tolerance)
	appendParam(q, "include_on_track", includeOnTrack)
	if params.TopN > 0 {
		appendParam(q, "top_n", params.TopN)
	}
	var out BudgetVarianceResponse
	err := c.getJSON(ctx, "budget_variance", withQuery(PathBudgetVariance, q), &out)
	return out, err
}

// RunSimulation projects the effect of a set of cuts.
func (c *Client) RunSimulation(ctx context.Context, req SimulationRequest) (SimulationResponse, error) {
	if req.CenterCuts == nil {
		req.CenterCuts = []CenterCut{}
	}
	if req.CategoryCuts == nil {
		req.CategoryCuts = []CategoryCut{}
	}
	var out SimulationResponse
	err := c.postJSON(ctx, "run_simulation", PathRunSimulation, req, &out)
	return out, err
}

// CompareSimulations ranks several named cut sets over the same window.
func (c *Client) CompareSimulations(ctx context.Context, req ComparisonRequest) (ComparisonResponse, error) {
	req.Scenarios = append([]ComparisonScenario{}, req.Scenarios...)
	for i := range req.Scenarios {
		if req.Scenarios[i].CenterCuts == nil {
			req.Scenarios[i].CenterCuts = []CenterCut{}
		}
		if req.Scenarios[i].CategoryCuts == nil {
			req.Scenarios[i].CategoryCuts = []CategoryCut{}
		}
	}
	var out ComparisonResponse
	err := c.postJSON(ctx, "compare_simulations", PathCompareSimulations, req, &out)
	return out, err
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func orFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
