package simulationhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/costintel/costintel/internal/shared"
)

const (
	rateLimit  = 10
	rateWindow = time.Minute
)

// MountRoutes registers the simulator endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(rateLimit, rateWindow,
		httprate.WithKeyFuncs(shared.RateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Route(basePath, func(sr chi.Router) {
		sr.Get("/", h.handlePage)
		sr.Post("/draft", h.handleDraft)
		sr.Post("/cuts/center", h.handleAddCenter)
		sr.Post("/cuts/center/{id}/delete", h.handleRemoveCenter)
		sr.Post("/cuts/category", h.handleAddCategory)
		sr.Post("/cuts/category/{id}/delete", h.handleRemoveCategory)
		sr.Post("/template", h.handleTemplate)
		sr.Post("/clear", h.handleClear)
		sr.Post("/scenarios", h.handleSaveScenario)
		sr.Post("/scenarios/{id}/load", h.handleLoadScenario)
		sr.Post("/scenarios/{id}/delete", h.handleDeleteScenario)
		sr.Group(func(gr chi.Router) {
			gr.Use(limiter)
			gr.Post("/run", h.handleRun)
			gr.Post("/compare", h.handleCompare)
			gr.Get("/export.csv", h.handleExport)
		})
	})
}
