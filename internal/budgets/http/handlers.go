// Package budgethttp serves the budget variance page.
package budgethttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/costintel/costintel/internal/budgets"
	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dates"
	"github.com/costintel/costintel/internal/dimensions"
	"github.com/costintel/costintel/internal/format"
	"github.com/costintel/costintel/internal/shared"
	"github.com/costintel/costintel/internal/ui"
	"github.com/costintel/costintel/internal/view"
)

const msgDimensionsFailed = "Falha ao carregar centros de custo."

// Handler renders the variance page.
type Handler struct {
	logger     *slog.Logger
	service    *budgets.Service
	dimensions *dimensions.Loader
	templates  *view.Engine
	now        func() time.Time
}

// NewHandler constructs the budget handler.
func NewHandler(logger *slog.Logger, service *budgets.Service, dims *dimensions.Loader, templates *view.Engine) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, dimensions: dims, templates: templates, now: time.Now}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

// MountRoutes registers the budget endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/orcamento", h.handleVariance)
}

// Row is one cost center line of the variance table.
type Row struct {
	CostCenter string
	Planned    string
	Actual     string
	Variance   string
	Percent    string
	Status     ui.Pill
}

// ViewModel is everything the budget page needs.
type ViewModel struct {
	Hero            ui.Hero
	Filters         budgets.Filters
	Centers         []costapi.DimensionItem
	DimensionsError *ui.Notice
	Error           *ui.Notice
	HasData         bool
	KPIs            []ui.KPICard
	Rows            []Row
	Empty           ui.EmptyState
}

func (h *Handler) handleVariance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defaults := budgets.DefaultFilters(dates.CurrentMonthWindow(h.now()))
	filters := budgets.FiltersFromQuery(r.URL.Query(), defaults)

	vm := ViewModel{
		Hero: ui.Hero{
			Eyebrow:     "Controle orçamentário",
			Title:       "Variação entre orçado e realizado por centro de custo",
			Description: "Identifique centros acima do orçamento considerando a tolerância definida para o período.",
		},
		Filters: filters,
		Empty:   ui.Empty("Nenhum centro de custo fora da tolerância no período."),
	}

	dims, err := h.dimensions.Load(ctx, dimensions.CostCenters)
	if err != nil {
		h.logger.Warn("budget dimensions", slog.Any("error", err))
		vm.DimensionsError = ui.ErrorNotice(msgDimensionsFailed)
	}
	vm.Centers = dims.Centers

	if msg := filters.Validate(); msg != "" {
		vm.Error = ui.ErrorNotice(msg)
	} else {
		report, err := h.service.Variance(ctx, filters)
		if err != nil {
			vm.Error = ui.ErrorNotice(costapi.UserMessage(err, budgets.MsgLoadFailed))
		} else {
			fill(&vm, report)
		}
	}

	var flash *shared.FlashMessage
	if sess := shared.SessionFromContext(ctx); sess != nil {
		flash = sess.PopFlash()
	}
	data := view.TemplateData{
		Title:       "Orçamento",
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/budgets.html", data); err != nil {
		h.logger.Error("render budgets", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func fill(vm *ViewModel, report costapi.BudgetVarianceResponse) {
	vm.HasData = true
	counts := budgets.CountByStatus(report.Items)
	vm.KPIs = []ui.KPICard{
		{Label: "Orçado", Value: format.Currency(report.TotalPlanned), Subtitle: report.PeriodStart + " a " + report.PeriodEnd},
		{Label: "Realizado", Value: format.Currency(report.TotalActual)},
		{
			Label:    "Variação total",
			Value:    format.Currency(report.TotalVariance),
			Tone:     ui.ToneFor(report.TotalVariance),
			Subtitle: "Tolerância de " + format.CompactPercent(report.TolerancePercent),
		},
		{
			Label: "Centros acima do orçamento",
			Value: format.Decimal(float64(counts[costapi.StatusOverBudget]), 0),
			Tone:  ui.ToneDanger,
		},
	}
	for _, item := range report.Items {
		vm.Rows = append(vm.Rows, Row{
			CostCenter: item.CostCenter,
			Planned:    format.Currency(item.PlannedAmount),
			Actual:     format.Currency(item.ActualAmount),
			Variance:   format.Currency(item.VarianceAmount),
			Percent:    format.SignedPercent(item.VariancePercent),
			Status:     ui.Pill{Label: budgets.StatusLabel(item.Status), Tone: budgets.StatusTone(item.Status)},
		})
	}
}
