package app

import (
	"log/slog"
	"net/http"

	"github.com/costintel/costintel/internal/shared"
	"github.com/costintel/costintel/internal/ui"
	"github.com/costintel/costintel/internal/view"
)

type homeSection struct {
	Title       string
	Description string
	Href        string
	Action      string
}

type homeViewModel struct {
	Hero     ui.Hero
	Sections []homeSection
}

var homePage = homeViewModel{
	Hero: ui.Hero{
		Eyebrow:     "CostIntel",
		Title:       "Plataforma de Gestão e Otimização de Custos Corporativos",
		Description: "Solução para CFOs e controllers com análise por centro de custo, detecção de desperdício, simulações e camada BI integrada para decisões orientadas por impacto financeiro.",
		Actions: []ui.Link{
			{Href: "/dashboard", Label: "Abrir dashboard executivo"},
			{Href: "/simulacoes", Label: `Executar simulação "e se..."`, Secondary: true},
		},
	},
	Sections: []homeSection{
		{Title: "Dashboard executivo", Description: "Tendência, distribuição, desperdícios, anomalias e quick wins do período.", Href: "/dashboard", Action: "Abrir dashboard"},
		{Title: "Orçamento", Description: "Variação entre orçado e realizado por centro de custo.", Href: "/orcamento", Action: "Ver variação"},
		{Title: "BI integrado", Description: "Dashboards do Apache Superset dentro do portal.", Href: "/bi", Action: "Abrir BI"},
	},
}

func homeHandler(logger *slog.Logger, templates *view.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var flash *shared.FlashMessage
		if sess := shared.SessionFromContext(r.Context()); sess != nil {
			flash = sess.PopFlash()
		}
		data := view.TemplateData{
			Flash:       flash,
			CurrentPath: r.URL.Path,
			Data:        homePage,
		}
		if err := templates.Render(w, "pages/home.html", data); err != nil {
			logger.Error("render home", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
