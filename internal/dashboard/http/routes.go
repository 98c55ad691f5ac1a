package dashboardhttp

import "github.com/go-chi/chi/v5"

// MountRoutes registers the dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/dashboard", h.handleDashboard)
	r.Get("/dashboard/share", h.handleShare)
}
