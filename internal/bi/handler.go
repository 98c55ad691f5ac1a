package bi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/costintel/costintel/internal/ui"
	"github.com/costintel/costintel/internal/view"
)

// EmbedEnvVar names the configuration that enables the iframe.
const EmbedEnvVar = "SUPERSET_EMBED_URL"

// Catalog describes one dashboard published in the BI layer.
type Catalog struct {
	Name    string
	Purpose string
}

var catalog = []Catalog{
	{Name: "Visão geral de custos", Purpose: "Consolidação por período, centro, projeto e categoria."},
	{Name: "Tendência temporal", Purpose: "Monitoramento de evolução mensal e sazonalidade."},
	{Name: "Maiores desperdícios", Purpose: "Priorizar frentes com maior potencial de economia."},
}

// ViewModel is everything the BI page needs.
type ViewModel struct {
	Hero     ui.Hero
	Catalog  []Catalog
	EmbedURL string
	Empty    *ui.EmptyState
}

// Handler renders the BI page.
type Handler struct {
	logger    *slog.Logger
	embed     Embed
	templates *view.Engine
}

// NewHandler constructs the BI handler.
func NewHandler(logger *slog.Logger, embed Embed, templates *view.Engine) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, embed: embed, templates: templates}
}

// MountRoutes registers the BI endpoint.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Get("/bi", h.handlePage)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	data := view.TemplateData{
		Title:       "BI",
		CurrentPath: r.URL.Path,
		Data:        h.viewModel(),
	}
	if err := h.templates.Render(w, "pages/bi.html", data); err != nil {
		h.logger.Error("render bi", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) viewModel() ViewModel {
	vm := ViewModel{
		Hero: ui.Hero{
			Eyebrow:     "Business intelligence",
			Title:       "Camada BI Integrada (Apache Superset)",
			Description: "Dashboards de custos, tendência temporal e desperdícios podem ser consumidos no próprio portal para reduzir tempo entre análise e decisão.",
		},
		Catalog: catalog,
	}
	if h.embed.Configured() {
		vm.EmbedURL = h.embed.URL()
		return vm
	}
	vm.Empty = &ui.EmptyState{
		Title:   "Dashboard BI não configurado",
		Message: "Defina " + EmbedEnvVar + " no arquivo .env.local para exibir o dashboard embedado nesta tela.",
	}
	return vm
}
