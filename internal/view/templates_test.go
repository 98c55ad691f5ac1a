package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costintel/costintel/internal/shared"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestRenderStatusWritesLayoutNavAndFlash(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	err = engine.RenderStatus(rr, http.StatusServiceUnavailable, "pages/home.html", TemplateData{
		Title:       "Início",
		CurrentPath: "/",
		Flash:       &shared.FlashMessage{Kind: shared.FlashError, Message: "Falhou."},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Início · CostIntel</title>")
	assert.Contains(t, body, `href="/" class="nav-link is-active" aria-current="page"`)
	assert.Contains(t, body, `role="alert"`)
	assert.Contains(t, body, "Falhou.")
}

func TestRenderUnknownTemplateWritesNothing(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	err = engine.Render(rr, "pages/missing.html", TemplateData{})
	assert.Error(t, err)
	assert.Empty(t, rr.Body.String())

	var nilEngine *Engine
	assert.Error(t, nilEngine.Render(httptest.NewRecorder(), "pages/home.html", TemplateData{}))
}

func TestDictRejectsOddArguments(t *testing.T) {
	dict := funcMap()["dict"].(func(...any) (map[string]any, error))

	out, err := dict("Title", "Painel", "Subtitle", "")
	require.NoError(t, err)
	assert.Equal(t, "Painel", out["Title"])

	_, err = dict("Title")
	assert.Error(t, err)
	_, err = dict(1, "x")
	assert.Error(t, err)
}
