package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dates"
)

// Backend parameters of the dashboard panels.
const (
	wasteLookbackMonths    = 3
	wasteTopN              = 10
	anomalyLookbackMonths  = 12
	anomalyThresholdZ      = 2.0
	anomalyTopN            = 8
	quickWinLookbackMonths = 6
	quickWinTopN           = 8
	quickWinMinimumTotal   = 7000
	quickWinTargetPercent  = 8
)

// API is the part of the cost API the dashboard reads.
type API interface {
	CostOverview(ctx context.Context, params costapi.OverviewParams) (costapi.CostOverviewResponse, error)
	WasteRanking(ctx context.Context, params costapi.WasteParams) (costapi.WasteRankingResponse, error)
	Anomalies(ctx context.Context, params costapi.AnomalyParams) (costapi.AnomalyDetectionResponse, error)
	QuickWins(ctx context.Context, params costapi.QuickWinParams) (costapi.QuickWinsResponse, error)
}

// Snapshot is the data of one complete dashboard load.
type Snapshot struct {
	Filters   Filters                          `json:"filters"`
	Overview  costapi.CostOverviewResponse     `json:"overview"`
	Previous  costapi.CostOverviewResponse     `json:"previous"`
	Waste     costapi.WasteRankingResponse     `json:"waste"`
	Anomalies costapi.AnomalyDetectionResponse `json:"anomalies"`
	QuickWins costapi.QuickWinsResponse        `json:"quickWins"`
	LoadedAt  time.Time                        `json:"loadedAt"`
}

// Loader performs the five dashboard requests concurrently.
type Loader struct {
	api    API
	logger *slog.Logger
	now    func() time.Time
}

// NewLoader constructs a Loader.
func NewLoader(api API, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{api: api, logger: logger, now: time.Now}
}

// Load fetches current and previous overview, waste, anomalies and quick wins
// in parallel. The result is all or nothing.
func (l *Loader) Load(ctx context.Context, f Filters) (Snapshot, error) {
	previous, err := dates.PreviousPeriod(f.Window())
	if err != nil {
		return Snapshot{}, fmt.Errorf("dashboard: previous period: %w", err)
	}

	snap := Snapshot{Filters: f}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := l.api.CostOverview(ctx, f.overviewParams(f.Window()))
		if err != nil {
			return err
		}
		snap.Overview = out
		return nil
	})

	g.Go(func() error {
		out, err := l.api.CostOverview(ctx, f.overviewParams(previous))
		if err != nil {
			return err
		}
		snap.Previous = out
		return nil
	})

	g.Go(func() error {
		out, err := l.api.WasteRanking(ctx, costapi.WasteParams{
			EndDate:        f.End,
			LookbackMonths: wasteLookbackMonths,
			TopN:           wasteTopN,
		})
		if err != nil {
			return err
		}
		snap.Waste = out
		return nil
	})

	g.Go(func() error {
		out, err := l.api.Anomalies(ctx, costapi.AnomalyParams{
			EndDate:        f.End,
			LookbackMonths: anomalyLookbackMonths,
			ThresholdZ:     anomalyThresholdZ,
			TopN:           anomalyTopN,
		})
		if err != nil {
			return err
		}
		snap.Anomalies = out
		return nil
	})

	g.Go(func() error {
		out, err := l.api.QuickWins(ctx, costapi.QuickWinParams{
			EndDate:                f.End,
			LookbackMonths:         quickWinLookbackMonths,
			TargetReductionPercent: quickWinTargetPercent,
			MinimumTotal:           quickWinMinimumTotal,
			TopN:                   quickWinTopN,
		})
		if err != nil {
			return err
		}
		snap.QuickWins = out
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	snap.LoadedAt = l.now().UTC()
	return snap, nil
}

func (f Filters) overviewParams(w dates.Window) costapi.OverviewParams {
	return costapi.OverviewParams{
		StartDate:     w.Start,
		EndDate:       w.End,
		CostCenterIDs: f.ids(f.CenterID),
		ProjectIDs:    f.ids(f.ProjectID),
		CategoryIDs:   f.ids(f.CategoryID),
	}
}
