package budgets

import (
	"context"
	"log/slog"

	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/ui"
)

// MsgLoadFailed is shown when the variance request fails without a server detail.
const MsgLoadFailed = "Falha ao carregar variação orçamentária."

// API is the part of the cost API the budget page calls.
type API interface {
	BudgetVariance(ctx context.Context, params costapi.VarianceParams) (costapi.BudgetVarianceResponse, error)
}

// Service loads variance reports. Every load goes to the API.
type Service struct {
	api    API
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(api API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, logger: logger}
}

// Variance returns the report for f. Callers validate f first.
func (s *Service) Variance(ctx context.Context, f Filters) (costapi.BudgetVarianceResponse, error) {
	out, err := s.api.BudgetVariance(ctx, f.Params())
	if err != nil {
		s.logger.Error("budget variance", slog.Any("error", err))
		return costapi.BudgetVarianceResponse{}, err
	}
	return out, nil
}

// StatusLabel is the pt-BR label of a variance status.
func StatusLabel(status costapi.BudgetVarianceStatus) string {
	switch status {
	case costapi.StatusOverBudget:
		return "Acima do orçamento"
	case costapi.StatusUnderBudget:
		return "Abaixo do orçamento"
	case costapi.StatusOnTrack:
		return "Dentro da tolerância"
	default:
		return string(status)
	}
}

// StatusTone colours a variance status: overspend is danger, underspend positive.
func StatusTone(status costapi.BudgetVarianceStatus) ui.Tone {
	switch status {
	case costapi.StatusOverBudget:
		return ui.ToneDanger
	case costapi.StatusUnderBudget:
		return ui.TonePositive
	default:
		return ui.ToneNeutral
	}
}

// CountByStatus tallies items per status.
func CountByStatus(items []costapi.BudgetVarianceItem) map[costapi.BudgetVarianceStatus]int {
	out := make(map[costapi.BudgetVarianceStatus]int, 3)
	for _, item := range items {
		out[item.Status]++
	}
	return out
}
