package charts

import (
	"fmt"
	"html/template"
	"sort"
	"sync"
	"sync/atomic"
)

// Renderer draws a dataset as inline SVG.
type Renderer func(ds Dataset, opts Options) (template.HTML, error)

var (
	registered atomic.Bool
	mu         sync.RWMutex
	renderers  = map[Kind]Renderer{}
)

// EnsureRegistered installs the built-in renderers once per process. Later calls are no-ops.
func EnsureRegistered() {
	if registered.Load() {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if registered.Load() {
		return
	}
	renderers[KindLine] = renderLine
	renderers[KindBar] = renderBar
	renderers[KindDoughnut] = renderDoughnut
	registered.Store(true)
}

// Registered lists the installed kinds in name order.
func Registered() []Kind {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]Kind, 0, len(renderers))
	for kind := range renderers {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Render draws ds with the renderer registered for kind.
func Render(kind Kind, ds Dataset, opts Options) (template.HTML, error) {
	mu.RLock()
	render, ok := renderers[kind]
	mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotRegistered, kind)
	}
	if ds.Empty() {
		return "", ErrEmptyDataset
	}
	return render(ds, opts)
}
