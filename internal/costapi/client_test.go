package costapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   string
}

type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
	delay    time.Duration
}

func (f *fakeAPI) handler(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		method: r.Method,
		path:   r.URL.Path,
		query:  r.URL.Query(),
		header: r.Header.Clone(),
		body:   string(raw),
	})
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-r.Context().Done():
			return
		}
	}
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.body))
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

type recordingObserver struct {
	calls []string
}

func (r *recordingObserver) ObserveAPICall(operation, outcome string, elapsed time.Duration) {
	r.calls = append(r.calls, operation+":"+outcome)
}

func newTestClient(t *testing.T, api *fakeAPI, cfg Config, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(api.handler))
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL + "/"
	return New(cfg, opts...)
}

func TestCostOverviewOmitsEmptyFilters(t *testing.T) {
	api := &fakeAPI{body: `{"total_cost":10,"monthly_average":5,"period_start":"2024-01-01","period_end":"2024-02-29","trend":[],"by_cost_center":[],"by_category":[]}`}
	client := newTestClient(t, api, Config{})

	_, err := client.CostOverview(context.Background(), OverviewParams{
		StartDate:     "2024-01-01",
		EndDate:       "2024-02-29",
		CostCenterIDs: []int64{},
	})
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, PathCostOverview, req.path)
	assert.Equal(t, []string{"2024-01-01"}, req.query["start_date"])
	_, hasCenters := req.query["cost_center_ids"]
	assert.False(t, hasCenters, "empty ids must not be serialised")
	_, hasProjects := req.query["project_ids"]
	assert.False(t, hasProjects)
}

func TestCostOverviewRepeatsArrayKeys(t *testing.T) {
	api := &fakeAPI{body: `{"trend":[{"month":"2024-01","total_amount":3}],"by_cost_center":[{"cost_center":"TI","total_amount":3}],"by_category":[{"category":"Cloud","total_amount":3}]}`}
	client := newTestClient(t, api, Config{})

	out, err := client.CostOverview(context.Background(), OverviewParams{
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-31",
		CostCenterIDs: []int64{4, 0, 9},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "9"}, api.last(t).query["cost_center_ids"])
	require.Len(t, out.Trend, 1)
	assert.Equal(t, CostAggregate{Kind: ByMonth, Label: "2024-01", TotalAmount: 3}, out.Trend[0])
	assert.Equal(t, ByCostCenter, out.ByCostCenter[0].Kind)
	assert.Equal(t, ByCategory, out.ByCategory[0].Kind)
}

func TestRequestsCarryHeaders(t *testing.T) {
	api := &fakeAPI{body: `[]`}
	client := newTestClient(t, api, Config{APIKey: "secret-key"})

	_, err := client.CostCenters(context.Background())
	require.NoError(t, err)
	req := api.last(t)
	assert.Equal(t, "secret-key", req.header.Get(APIKeyHeader))
	assert.Equal(t, "no-cache", req.header.Get("Cache-Control"))
	assert.Empty(t, req.header.Get("Content-Type"))

	clientNoKey := newTestClient(t, api, Config{})
	_, err = clientNoKey.Projects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, api.last(t).header.Get(APIKeyHeader))
}

func TestDefaultsApplied(t *testing.T) {
	api := &fakeAPI{body: `{"items":[]}`}
	client := newTestClient(t, api, Config{})

	_, err := client.QuickWins(context.Background(), QuickWinParams{EndDate: "2024-06-30", TopN: 8})
	require.NoError(t, err)
	q := api.last(t).query
	assert.Equal(t, "6", q.Get("lookback_months"))
	assert.Equal(t, "8", q.Get("target_reduction_percent"))
	assert.Equal(t, "10000", q.Get("minimum_total"))
	assert.Equal(t, "8", q.Get("top_n"))

	_, err = client.Anomalies(context.Background(), AnomalyParams{})
	require.NoError(t, err)
	q = api.last(t).query
	_, hasEnd := q["end_date"]
	assert.False(t, hasEnd)
	assert.Equal(t, "2", q.Get("threshold_z"))

	_, err = client.BudgetVariance(context.Background(), VarianceParams{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	q = api.last(t).query
	assert.Equal(t, "true", q.Get("include_on_track"))
	assert.Equal(t, "3", q.Get("tolerance_percent"))
	_, hasTop := q["top_n"]
	assert.False(t, hasTop)
}

func TestBudgetVarianceSendsZeroTolerance(t *testing.T) {
	api := &fakeAPI{body: `{"items":[]}`}
	client := newTestClient(t, api, Config{})

	zero := 0.0
	_, err := client.BudgetVariance(context.Background(), VarianceParams{
		StartDate:        "2024-01-01",
		EndDate:          "2024-01-31",
		TolerancePercent: &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, "0", api.last(t).query.Get("tolerance_percent"))
}

func TestRunSimulationBody(t *testing.T) {
	api := &fakeAPI{body: `{"baseline_total":100,"projected_total":90,"estimated_savings":10,"impact_percent":10,"center_impact_ranking":[],"category_impact_ranking":[]}`}
	client := newTestClient(t, api, Config{})

	out, err := client.RunSimulation(context.Background(), SimulationRequest{
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-31",
		CenterCuts: []CenterCut{{CostCenterID: 3, PercentCut: 12}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 10, out.EstimatedSavings, 0.0001)

	req := api.last(t)
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "application/json", req.header.Get("Content-Type"))
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(req.body), &body))
	assert.JSONEq(t, `[]`, string(body["category_cuts"]))
	assert.JSONEq(t, `[{"cost_center_id":3,"percent_cut":12,"absolute_cut":0}]`, string(body["center_cuts"]))
	assert.JSONEq(t, `"2024-01-01"`, string(body["start_date"]))
}

func TestNonSuccessStatusCarriesBody(t *testing.T) {
	api := &fakeAPI{status: http.StatusUnprocessableEntity, body: `{"detail":"Periodo invalido"}`}
	obs := &recordingObserver{}
	client := newTestClient(t, api, Config{}, WithObserver(obs))

	_, err := client.WasteRanking(context.Background(), WasteParams{EndDate: "2024-01-31"})
	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "Periodo invalido")
	assert.Equal(t, "Periodo invalido", UserMessage(err, "fallback"))
	assert.Equal(t, []string{"waste_ranking:status"}, obs.calls)
}

func TestTimeoutSurfacesSlowResponse(t *testing.T) {
	api := &fakeAPI{body: `[]`, delay: 500 * time.Millisecond}
	client := newTestClient(t, api, Config{Timeout: 30 * time.Millisecond})

	_, err := client.Categories(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlowResponse)
	assert.Equal(t, SlowResponseMessage, UserMessage(err, "fallback"))
}

func TestCallerCancellationIsNotSlowResponse(t *testing.T) {
	api := &fakeAPI{body: `[]`, delay: 500 * time.Millisecond}
	client := newTestClient(t, api, Config{Timeout: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Categories(ctx)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSlowResponse))
}

func TestMalformedJSONIsGenericFailure(t *testing.T) {
	api := &fakeAPI{body: `{"total_cost":`}
	client := newTestClient(t, api, Config{})

	_, err := client.CostOverview(context.Background(), OverviewParams{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.False(t, errors.Is(err, ErrSlowResponse))
	assert.Equal(t, "Erro ao carregar", UserMessage(err, "Erro ao carregar"))
}

func TestCompareSimulationsDecodesNullBest(t *testing.T) {
	api := &fakeAPI{body: `{"period_start":"2024-01-01","period_end":"2024-01-31","best_scenario":null,"items":[]}`}
	client := newTestClient(t, api, Config{})

	out, err := client.CompareSimulations(context.Background(), ComparisonRequest{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Scenarios: []ComparisonScenario{{ScenarioName: "A"}},
	})
	require.NoError(t, err)
	assert.Nil(t, out.BestScenario)
	assert.True(t, strings.Contains(api.last(t).body, `"center_cuts":[]`))
}
