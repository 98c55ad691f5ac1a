// Package dashboardhttp serves the executive dashboard page.
package dashboardhttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/costintel/costintel/internal/charts"
	"github.com/costintel/costintel/internal/dashboard"
	"github.com/costintel/costintel/internal/dates"
	"github.com/costintel/costintel/internal/dimensions"
	"github.com/costintel/costintel/internal/platform/cache"
	"github.com/costintel/costintel/internal/platform/httpx"
	"github.com/costintel/costintel/internal/shared"
	"github.com/costintel/costintel/internal/view"
)

const stateKey = "dashboard"

// Handler coordinates HTTP requests for the dashboard.
type Handler struct {
	logger      *slog.Logger
	controller  *dashboard.Controller
	dimensions  *dimensions.Loader
	templates   *view.Engine
	csrf        *shared.CSRFManager
	states      *cache.JSONStore
	generations *shared.Generations
	publicURL   string
	now         func() time.Time
}

// NewHandler constructs the dashboard HTTP handler. states and generations
// may be nil, in which case every visit starts from an empty state.
func NewHandler(
	logger *slog.Logger,
	controller *dashboard.Controller,
	dims *dimensions.Loader,
	templates *view.Engine,
	csrf *shared.CSRFManager,
	states *cache.JSONStore,
	generations *shared.Generations,
	publicURL string,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	charts.EnsureRegistered()
	return &Handler{
		logger:      logger,
		controller:  controller,
		dimensions:  dims,
		templates:   templates,
		csrf:        csrf,
		states:      states,
		generations: generations,
		publicURL:   strings.TrimRight(publicURL, "/"),
		now:         time.Now,
	}
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	prev := h.loadState(ctx, sess)

	q := r.URL.Query()
	if !hasFilterParams(q) {
		// Mirror the filters into the URL so the address bar is always shareable.
		applied := prev.Applied
		if applied.Start == "" || applied.End == "" {
			applied = h.defaults()
		}
		http.Redirect(w, r, "/dashboard?"+applied.Query().Encode(), http.StatusFound)
		return
	}
	draft := dashboard.FiltersFromQuery(q, dates.DefaultDashboardWindow(h.now()))

	ticket := h.nextTicket(ctx, sess)
	next := h.controller.Apply(ctx, prev, draft)
	h.storeState(ctx, sess, ticket, next)

	dims, dimsErr := h.dimensions.Load(ctx, dimensions.CostCenters, dimensions.Projects, dimensions.Categories)
	if dimsErr != nil {
		h.logger.Warn("dashboard dimensions", slog.Any("error", dimsErr))
	}

	vm, err := buildViewModel(next, dims, dimsErr, h.shareURL(next.Applied))
	if err != nil {
		h.handleServerError(w, "build dashboard view", err)
		return
	}
	vm.ResetURL = "/dashboard?" + h.defaults().Query().Encode()

	var flash *shared.FlashMessage
	csrfToken := ""
	if sess != nil {
		flash = sess.PopFlash()
		if h.csrf != nil {
			csrfToken, _ = h.csrf.EnsureToken(ctx, sess)
		}
	}
	data := view.TemplateData{
		Title:       "Dashboard executivo",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/dashboard.html", data); err != nil {
		h.handleServerError(w, "render dashboard", err)
	}
}

// handleShare returns the absolute URL of the applied filters.
func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request) {
	state := h.loadState(r.Context(), shared.SessionFromContext(r.Context()))
	applied := state.Applied
	if applied.Start == "" || applied.End == "" {
		applied = h.defaults()
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"url":             h.shareURL(applied),
		"confirmation_ms": dashboard.ShareConfirmationTTL.Milliseconds(),
	})
}

func (h *Handler) defaults() dashboard.Filters {
	return dashboard.FiltersFromQuery(nil, dates.DefaultDashboardWindow(h.now()))
}

func (h *Handler) shareURL(f dashboard.Filters) string {
	path := "/dashboard"
	if q := f.Query().Encode(); q != "" {
		path += "?" + q
	}
	return h.publicURL + path
}

func (h *Handler) loadState(ctx context.Context, sess *shared.Session) dashboard.State {
	var state dashboard.State
	if sess == nil || h.states == nil {
		return state
	}
	if err := h.states.Get(ctx, h.states.Key(stateKey, sess.ID), &state); err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			h.logger.Warn("load dashboard state", slog.Any("error", err))
		}
		return dashboard.State{}
	}
	return state
}

func (h *Handler) nextTicket(ctx context.Context, sess *shared.Session) int64 {
	if sess == nil || h.generations == nil {
		return 0
	}
	ticket, err := h.generations.Next(ctx, stateKey+":"+sess.ID)
	if err != nil {
		h.logger.Warn("dashboard generation", slog.Any("error", err))
	}
	return ticket
}

// storeState persists next only when no newer load started meanwhile.
func (h *Handler) storeState(ctx context.Context, sess *shared.Session, ticket int64, next dashboard.State) {
	if sess == nil || h.states == nil {
		return
	}
	current, err := h.generations.IsCurrent(ctx, stateKey+":"+sess.ID, ticket)
	if err != nil {
		h.logger.Warn("dashboard generation", slog.Any("error", err))
		return
	}
	if !current {
		h.logger.Debug("discarding superseded dashboard load", slog.Int64("ticket", ticket))
		return
	}
	if err := h.states.Set(ctx, h.states.Key(stateKey, sess.ID), next); err != nil {
		h.logger.Warn("store dashboard state", slog.Any("error", err))
	}
}

func hasFilterParams(q map[string][]string) bool {
	for _, key := range []string{dashboard.QueryStart, dashboard.QueryEnd, dashboard.QueryCenter, dashboard.QueryProject, dashboard.QueryCategory} {
		if _, ok := q[key]; ok {
			return true
		}
	}
	return false
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logger.Error(context, slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
