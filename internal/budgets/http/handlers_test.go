package budgethttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/costintel/costintel/internal/budgets"
	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dimensions"
	"github.com/costintel/costintel/internal/view"
)

type stubAPI struct {
	calls  int
	params costapi.VarianceParams
	err    error
}

func (s *stubAPI) BudgetVariance(ctx context.Context, p costapi.VarianceParams) (costapi.BudgetVarianceResponse, error) {
	s.calls++
	if s.err != nil {
		return costapi.BudgetVarianceResponse{}, s.err
	}
	s.params = p
	return costapi.BudgetVarianceResponse{
		PeriodStart:      p.StartDate,
		PeriodEnd:        p.EndDate,
		TolerancePercent: *p.TolerancePercent,
		TotalPlanned:     2000,
		TotalActual:      2300,
		TotalVariance:    300,
		Items: []costapi.BudgetVarianceItem{
			{CostCenterID: 4, CostCenter: "Tecnologia", PlannedAmount: 1000, ActualAmount: 1300, VarianceAmount: 300, VariancePercent: 30, Status: costapi.StatusOverBudget},
		},
	}, nil
}

func (s *stubAPI) CostCenters(ctx context.Context) ([]costapi.DimensionItem, error) {
	return []costapi.DimensionItem{{ID: 4, Name: "Tecnologia"}}, nil
}

func (s *stubAPI) Projects(ctx context.Context) ([]costapi.DimensionItem, error) {
	return nil, nil
}

func (s *stubAPI) Categories(ctx context.Context) ([]costapi.DimensionItem, error) {
	return nil, nil
}

func newRouter(t *testing.T, api *stubAPI) http.Handler {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	h := NewHandler(nil, budgets.NewService(api, nil), dimensions.NewLoader(api, nil), templates)
	h.WithNow(func() time.Time { return time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC) })
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestVarianceRendersDefaults(t *testing.T) {
	api := &stubAPI{}
	rr := get(newRouter(t, api), "/orcamento")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`value="2024-03-01"`,
		`value="2024-03-31"`,
		"R$ 2.300,00",
		"+30,0%",
		`<span class="pill pill-danger">Acima do orçamento</span>`,
		"Tolerância de 3,0%",
		`name="on_track" value="1" checked`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestVarianceInvalidWindowSkipsAPI(t *testing.T) {
	api := &stubAPI{}
	rr := get(newRouter(t, api), "/orcamento?start=2024-04-01&end=2024-03-01")
	if api.calls != 0 {
		t.Fatalf("expected no API call, got %d", api.calls)
	}
	if !strings.Contains(rr.Body.String(), budgets.MsgInvalidWindow) {
		t.Fatalf("expected window error in page")
	}
}

func TestVarianceShowsServerDetail(t *testing.T) {
	api := &stubAPI{err: &costapi.StatusError{StatusCode: http.StatusForbidden, Body: `{"detail":"Escopo insuficiente"}`}}
	body := get(newRouter(t, api), "/orcamento").Body.String()
	if !strings.Contains(body, "Escopo insuficiente") {
		t.Fatalf("expected server detail in page")
	}
	if strings.Contains(body, "Variação por centro de custo") {
		t.Fatalf("table should not render on failure")
	}
}

func TestVarianceForwardsZeroTolerance(t *testing.T) {
	api := &stubAPI{}
	body := get(newRouter(t, api), "/orcamento?start=2024-03-01&end=2024-03-31&tolerance=0").Body.String()
	if api.calls != 1 {
		t.Fatalf("expected one API call, got %d", api.calls)
	}
	if api.params.TolerancePercent == nil || *api.params.TolerancePercent != 0 {
		t.Fatalf("expected tolerance 0 to be forwarded, got %v", api.params.TolerancePercent)
	}
	if !strings.Contains(body, "Tolerância de 0,0%") {
		t.Fatalf("expected zero tolerance in subtitle")
	}
}
