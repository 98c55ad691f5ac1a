package simulations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/scenarios"
	"github.com/costintel/costintel/internal/shared"
)

// Run outcome messages.
const (
	MsgRunInFlight  = "Já existe uma simulação em andamento. Aguarde o resultado."
	MsgRunFailed    = "Falha ao executar simulação."
	MsgCompareFail  = "Falha ao comparar cenários."
	minCompareCount = 2
)

// ErrRunInFlight is returned when the same browser already has a run in progress.
var ErrRunInFlight = errors.New(MsgRunInFlight)

// API is the part of the cost API the simulator calls.
type API interface {
	RunSimulation(ctx context.Context, req costapi.SimulationRequest) (costapi.SimulationResponse, error)
	CompareSimulations(ctx context.Context, req costapi.ComparisonRequest) (costapi.ComparisonResponse, error)
}

// Locker serialises runs per key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// Recorder counts run outcomes.
type Recorder interface {
	ObserveSimulation(outcome string)
}

// Result is the last successful run.
type Result struct {
	Request  costapi.SimulationRequest  `json:"request"`
	Response costapi.SimulationResponse `json:"response"`
	RanAt    time.Time                  `json:"ranAt"`
}

// Runner executes simulations, at most one at a time per key.
type Runner struct {
	api      API
	locker   Locker
	lockTTL  time.Duration
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewRunner constructs a Runner. lockTTL should exceed the API timeout so a
// slow run keeps its lock. A nil locker disables the in-flight guard.
func NewRunner(api API, locker Locker, lockTTL time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{api: api, locker: locker, lockTTL: lockTTL, logger: logger, now: time.Now}
}

// WithRecorder attaches an outcome recorder.
func (r *Runner) WithRecorder(rec Recorder) *Runner {
	r.recorder = rec
	return r
}

// Run validates d and executes it. On any failure the previous result is
// returned unchanged together with the error.
func (r *Runner) Run(ctx context.Context, key string, d Draft, previous *Result) (*Result, error) {
	if err := Validate(d); err != nil {
		r.observe("invalid")
		return previous, err
	}

	if r.locker != nil {
		release, err := r.locker.Acquire(ctx, key, r.lockTTL)
		if errors.Is(err, shared.ErrLockHeld) {
			r.observe("in_flight")
			return previous, ErrRunInFlight
		}
		if err != nil {
			r.observe("error")
			return previous, fmt.Errorf("simulations: lock: %w", err)
		}
		defer release()
	}

	req := d.Request()
	resp, err := r.api.RunSimulation(ctx, req)
	if err != nil {
		r.observe("error")
		r.logger.Error("run simulation", slog.Any("error", err), slog.Int("cuts", d.CutCount()))
		return previous, err
	}
	r.observe("ok")
	return &Result{Request: req, Response: resp, RanAt: r.now().UTC()}, nil
}

// Compare ranks saved scenarios over the start..end window.
func (r *Runner) Compare(ctx context.Context, start, end string, saved []scenarios.SavedScenario) (costapi.ComparisonResponse, error) {
	d := Draft{StartDate: start, EndDate: end}
	if err := ValidateWindow(d.Window()); err != nil {
		return costapi.ComparisonResponse{}, err
	}
	if len(saved) < minCompareCount {
		return costapi.ComparisonResponse{}, &ValidationError{Message: MsgNoScenarios}
	}
	req := costapi.ComparisonRequest{StartDate: start, EndDate: end}
	for _, s := range saved {
		req.Scenarios = append(req.Scenarios, costapi.ComparisonScenario{
			ScenarioName: s.Name,
			CenterCuts:   append([]costapi.CenterCut{}, s.CenterCuts...),
			CategoryCuts: append([]costapi.CategoryCut{}, s.CategoryCuts...),
		})
	}
	out, err := r.api.CompareSimulations(ctx, req)
	if err != nil {
		r.logger.Error("compare simulations", slog.Any("error", err), slog.Int("scenarios", len(saved)))
		return costapi.ComparisonResponse{}, err
	}
	return out, nil
}

// UserMessage converts a run failure into the message shown next to the form.
func UserMessage(err error) string {
	var vErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, ErrRunInFlight):
		return MsgRunInFlight
	default:
		return costapi.UserMessage(err, MsgRunFailed)
	}
}

func (r *Runner) observe(outcome string) {
	if r.recorder != nil {
		r.recorder.ObserveSimulation(outcome)
	}
}
