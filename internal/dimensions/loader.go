// Package dimensions loads the selectable cost centers, projects and categories.
package dimensions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/costintel/costintel/internal/costapi"
)

// Source lists the dimensions.
type Source interface {
	CostCenters(ctx context.Context) ([]costapi.DimensionItem, error)
	Projects(ctx context.Context) ([]costapi.DimensionItem, error)
	Categories(ctx context.Context) ([]costapi.DimensionItem, error)
}

// Kind selects one dimension list.
type Kind string

const (
	CostCenters Kind = "cost_centers"
	Projects    Kind = "projects"
	Categories  Kind = "categories"
)

// Set is the result of one Load.
type Set struct {
	Centers    []costapi.DimensionItem
	Projects   []costapi.DimensionItem
	Categories []costapi.DimensionItem
}

// CenterName resolves a cost center id, falling back to "Centro #id".
func (s Set) CenterName(id int64) string {
	return nameOf(s.Centers, id, "Centro")
}

// ProjectName resolves a project id, falling back to "Projeto #id".
func (s Set) ProjectName(id int64) string {
	return nameOf(s.Projects, id, "Projeto")
}

// CategoryName resolves a category id, falling back to "Categoria #id".
func (s Set) CategoryName(id int64) string {
	return nameOf(s.Categories, id, "Categoria")
}

func nameOf(items []costapi.DimensionItem, id int64, fallback string) string {
	for _, item := range items {
		if item.ID == id {
			if name := strings.TrimSpace(item.Name); name != "" {
				return name
			}
			break
		}
	}
	return fmt.Sprintf("%s #%d", fallback, id)
}

// Loader fetches dimension lists concurrently and collapses identical
// in-flight fetches across requests.
type Loader struct {
	source Source
	logger *slog.Logger
	group  singleflight.Group
}

// NewLoader constructs a Loader.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, logger: logger}
}

// Load fetches the requested kinds in parallel. Any failure fails the whole load.
func (l *Loader) Load(ctx context.Context, kinds ...Kind) (Set, error) {
	var set Set
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		kind := kind
		g.Go(func() error {
			items, err := l.fetch(gctx, kind)
			if err != nil {
				return err
			}
			switch kind {
			case CostCenters:
				set.Centers = items
			case Projects:
				set.Projects = items
			case Categories:
				set.Categories = items
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.logger.Warn("load dimensions", slog.Any("error", err))
		return Set{}, err
	}
	return set, nil
}

func (l *Loader) fetch(ctx context.Context, kind Kind) ([]costapi.DimensionItem, error) {
	ch := l.group.DoChan(string(kind), func() (any, error) {
		// Detached from the first caller so that its cancellation does not fail the others.
		fctx := context.WithoutCancel(ctx)
		var (
			items []costapi.DimensionItem
			err   error
		)
		switch kind {
		case CostCenters:
			items, err = l.source.CostCenters(fctx)
		case Projects:
			items, err = l.source.Projects(fctx)
		case Categories:
			items, err = l.source.Categories(fctx)
		default:
			err = fmt.Errorf("dimensions: unknown kind %q", kind)
		}
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []costapi.DimensionItem{}
		}
		return items, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]costapi.DimensionItem), nil
	}
}
