package bi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costintel/costintel/internal/view"
)

func TestParseEmbed(t *testing.T) {
	e, ok := ParseEmbed("")
	assert.True(t, ok)
	assert.False(t, e.Configured())

	e, ok = ParseEmbed(" https://bi.example.com/superset/dashboard/3/?standalone=1 ")
	require.True(t, ok)
	assert.True(t, e.Configured())
	assert.Equal(t, "https://bi.example.com", e.Origin())
	assert.Equal(t, "https://bi.example.com/superset/dashboard/3/?standalone=1", e.URL())

	for _, raw := range []string{"javascript:alert(1)", "/relative/path", "ftp://bi.example.com"} {
		e, ok = ParseEmbed(raw)
		assert.False(t, ok, raw)
		assert.False(t, e.Configured(), raw)
	}
}

func render(t *testing.T, embed Embed) string {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	r := chi.NewRouter()
	NewHandler(nil, embed, templates).MountRoutes(r)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bi", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestPageWithoutEmbedShowsInstructions(t *testing.T) {
	body := render(t, Embed{})
	assert.Contains(t, body, "Dashboard BI não configurado")
	assert.Contains(t, body, "SUPERSET_EMBED_URL")
	assert.NotContains(t, body, "<iframe")
	assert.Contains(t, body, "Maiores desperdícios")
}

func TestPageEmbedsConfiguredDashboard(t *testing.T) {
	embed, ok := ParseEmbed("https://bi.example.com/superset/dashboard/3/")
	require.True(t, ok)
	body := render(t, embed)
	assert.True(t, strings.Contains(body, `<iframe class="bi-frame" title="Superset Dashboard" src="https://bi.example.com/superset/dashboard/3/"`))
	assert.Contains(t, body, `aria-current="page"`)
}
