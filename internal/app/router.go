package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/costintel/costintel/internal/bi"
	budgethttp "github.com/costintel/costintel/internal/budgets/http"
	dashboardhttp "github.com/costintel/costintel/internal/dashboard/http"
	"github.com/costintel/costintel/internal/observability"
	"github.com/costintel/costintel/internal/shared"
	simulationhttp "github.com/costintel/costintel/internal/simulations/http"
	"github.com/costintel/costintel/internal/view"
	"github.com/costintel/costintel/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Templates         *view.Engine
	SessionManager    *shared.SessionManager
	CSRFManager       *shared.CSRFManager
	DashboardHandler  *dashboardhttp.Handler
	SimulationHandler *simulationhttp.Handler
	BudgetHandler     *budgethttp.Handler
	BIHandler         *bi.Handler
	Embed             bi.Embed
	Health            HealthCheck
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with portal defaults.
func NewRouter(params RouterParams) http.Handler {
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	registerStaticTypes(params.Logger)
	r := chi.NewRouter()

	r.Get("/healthz", healthHandler(params.Health))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		// Static files skip sessions, CSRF and rate limiting.
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
			FrameOrigin:    params.Embed.Origin(),
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		r.Get("/", homeHandler(params.Logger, params.Templates))
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
		if params.SimulationHandler != nil {
			params.SimulationHandler.MountRoutes(r)
		}
		if params.BudgetHandler != nil {
			params.BudgetHandler.MountRoutes(r)
		}
		if params.BIHandler != nil {
			params.BIHandler.MountRoutes(r)
		}
	})

	return r
}

// staticCacheHandler caches embedded assets in the browser for one hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
