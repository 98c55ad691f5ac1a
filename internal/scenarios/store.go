package scenarios

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/costintel/costintel/internal/costapi"
)

// MaxSaved bounds the number of scenarios kept per browser.
const MaxSaved = 12

// SavedScenario is a named, replayable window plus cuts.
type SavedScenario struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	CreatedAt    string                `json:"createdAt"`
	StartDate    string                `json:"startDate"`
	EndDate      string                `json:"endDate"`
	CenterCuts   []costapi.CenterCut   `json:"centerCuts"`
	CategoryCuts []costapi.CategoryCut `json:"categoryCuts"`
}

// CutCount is the total number of cuts in the scenario.
func (s SavedScenario) CutCount() int {
	return len(s.CenterCuts) + len(s.CategoryCuts)
}

// Draft is a scenario before it is given an id and timestamp.
type Draft struct {
	Name         string `validate:"required,max=120"`
	StartDate    string `validate:"required,datetime=2006-01-02"`
	EndDate      string `validate:"required,datetime=2006-01-02"`
	CenterCuts   []costapi.CenterCut
	CategoryCuts []costapi.CategoryCut
}

// Store reads and writes the saved scenario list. It holds no state of its own.
type Store struct {
	storage  Storage
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewStore constructs a Store. A nil storage turns every mutation into a no-op.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage:  storage,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// WithNow overrides the store clock for testing.
func (s *Store) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// List returns saved scenarios newest first. Missing or unreadable data yields an empty list.
func (s *Store) List(ctx context.Context) []SavedScenario {
	if s == nil || s.storage == nil {
		return []SavedScenario{}
	}
	raw, ok, err := s.storage.Load(ctx)
	if err != nil {
		s.logger.Warn("load saved scenarios", slog.Any("error", err))
		return []SavedScenario{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []SavedScenario{}
	}
	var items []SavedScenario
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warn("discard unreadable saved scenarios", slog.Any("error", err))
		return []SavedScenario{}
	}
	if items == nil {
		return []SavedScenario{}
	}
	return items
}

// Get finds a saved scenario by id.
func (s *Store) Get(ctx context.Context, id string) (SavedScenario, bool) {
	for _, item := range s.List(ctx) {
		if item.ID == id {
			return item, true
		}
	}
	return SavedScenario{}, false
}

// Save prepends draft with a fresh id and timestamp, keeping the newest MaxSaved entries.
func (s *Store) Save(ctx context.Context, draft Draft) ([]SavedScenario, error) {
	if s == nil {
		return []SavedScenario{}, nil
	}
	draft.Name = strings.TrimSpace(draft.Name)
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("scenarios: invalid draft: %w", err)
	}
	if len(draft.CenterCuts)+len(draft.CategoryCuts) == 0 {
		return nil, fmt.Errorf("scenarios: invalid draft: no cuts")
	}
	if s.storage == nil {
		return []SavedScenario{}, nil
	}
	item := SavedScenario{
		ID:           s.newID(),
		Name:         draft.Name,
		CreatedAt:    s.now().UTC().Format(time.RFC3339Nano),
		StartDate:    draft.StartDate,
		EndDate:      draft.EndDate,
		CenterCuts:   append([]costapi.CenterCut{}, draft.CenterCuts...),
		CategoryCuts: append([]costapi.CategoryCut{}, draft.CategoryCuts...),
	}
	next := append([]SavedScenario{item}, s.List(ctx)...)
	if len(next) > MaxSaved {
		next = next[:MaxSaved]
	}
	if err := s.write(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes the scenario with id, keeping the order of the rest. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) ([]SavedScenario, error) {
	if s == nil || s.storage == nil {
		return []SavedScenario{}, nil
	}
	current := s.List(ctx)
	next := make([]SavedScenario, 0, len(current))
	for _, item := range current {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if len(next) == len(current) {
		return next, nil
	}
	if err := s.write(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Store) write(ctx context.Context, items []SavedScenario) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("scenarios: encode: %w", err)
	}
	if err := s.storage.Save(ctx, string(raw)); err != nil {
		return fmt.Errorf("scenarios: persist: %w", err)
	}
	return nil
}
