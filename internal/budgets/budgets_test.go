package budgets

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dates"
	"github.com/costintel/costintel/internal/ui"
)

type countingAPI struct {
	calls  int
	params costapi.VarianceParams
}

func (c *countingAPI) BudgetVariance(ctx context.Context, p costapi.VarianceParams) (costapi.BudgetVarianceResponse, error) {
	c.calls++
	c.params = p
	return costapi.BudgetVarianceResponse{
		PeriodStart:  p.StartDate,
		PeriodEnd:    p.EndDate,
		TotalPlanned: 1000,
		Items: []costapi.BudgetVarianceItem{
			{CostCenter: "Tecnologia", Status: costapi.StatusOverBudget},
			{CostCenter: "RH", Status: costapi.StatusOnTrack},
		},
	}, nil
}

var march = dates.Window{Start: "2024-03-01", End: "2024-03-31"}

func TestFiltersFromQueryFirstVisitUsesDefaults(t *testing.T) {
	defaults := DefaultFilters(march)
	f := FiltersFromQuery(url.Values{}, defaults)
	assert.Equal(t, defaults, f)
	assert.True(t, f.IncludeOnTrack)
	assert.Equal(t, DefaultTolerance, f.Tolerance)
	assert.Empty(t, f.Validate())
}

func TestFiltersFromQueryReadsForm(t *testing.T) {
	q := url.Values{
		QueryStart:     {"2024-01-01"},
		QueryEnd:       {"2024-02-29"},
		QueryCenter:    {"7"},
		QueryTolerance: {"5,5"},
	}
	f := FiltersFromQuery(q, DefaultFilters(march))
	assert.Equal(t, int64(7), f.CenterID)
	assert.Equal(t, 5.5, f.Tolerance)
	assert.False(t, f.IncludeOnTrack, "unchecked box means exclude on-track centers")

	params := f.Params()
	assert.Equal(t, []int64{7}, params.CostCenterIDs)
	require.NotNil(t, params.IncludeOnTrack)
	assert.False(t, *params.IncludeOnTrack)
	assert.Equal(t, "center=7&end=2024-02-29&start=2024-01-01&tolerance=5.5", f.Query().Encode())
}

func TestFiltersValidate(t *testing.T) {
	base := DefaultFilters(march)

	inverted := base
	inverted.Start, inverted.End = "2024-04-01", "2024-03-01"
	assert.Equal(t, MsgInvalidWindow, inverted.Validate())

	garbage := base
	garbage.Start = "ontem"
	assert.Equal(t, MsgInvalidWindow, garbage.Validate())

	tolerance := base
	tolerance.Tolerance = 31
	assert.Equal(t, MsgInvalidTolerance, tolerance.Validate())

	top := base
	top.TopN = 101
	assert.Equal(t, MsgInvalidTopN, top.Validate())
}

func TestVarianceCallsAPIOnEveryLoad(t *testing.T) {
	api := &countingAPI{}
	svc := NewService(api, nil)
	f := DefaultFilters(march)

	first, err := svc.Variance(context.Background(), f)
	require.NoError(t, err)
	second, err := svc.Variance(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 2, api.calls, "identical filters still reach the API")
	assert.Equal(t, first, second)
	assert.Equal(t, "2024-03-01", api.params.StartDate)
}

func TestZeroToleranceIsKept(t *testing.T) {
	q := url.Values{
		QueryStart:     {"2024-03-01"},
		QueryEnd:       {"2024-03-31"},
		QueryTolerance: {"0"},
	}
	f := FiltersFromQuery(q, DefaultFilters(march))
	assert.Zero(t, f.Tolerance)
	assert.Empty(t, f.Validate())

	api := &countingAPI{}
	_, err := NewService(api, nil).Variance(context.Background(), f)
	require.NoError(t, err)
	require.NotNil(t, api.params.TolerancePercent)
	assert.Zero(t, *api.params.TolerancePercent)
}

func TestStatusPresentation(t *testing.T) {
	assert.Equal(t, "Acima do orçamento", StatusLabel(costapi.StatusOverBudget))
	assert.Equal(t, ui.ToneDanger, StatusTone(costapi.StatusOverBudget))
	assert.Equal(t, ui.TonePositive, StatusTone(costapi.StatusUnderBudget))
	assert.Equal(t, ui.ToneNeutral, StatusTone(costapi.StatusOnTrack))

	counts := CountByStatus([]costapi.BudgetVarianceItem{
		{Status: costapi.StatusOverBudget}, {Status: costapi.StatusOverBudget}, {Status: costapi.StatusOnTrack},
	})
	assert.Equal(t, 2, counts[costapi.StatusOverBudget])
	assert.Equal(t, 0, counts[costapi.StatusUnderBudget])
}
