package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/costintel/costintel/internal/format"
	"github.com/costintel/costintel/internal/shared"
	"github.com/costintel/costintel/internal/ui"
	"github.com/costintel/costintel/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
	buffers   sync.Pool
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Nav         []ui.NavItem
	Data        any
}

// FlashNotice adapts the pending flash to the notice partial.
func (d TemplateData) FlashNotice() *ui.Notice {
	if d.Flash == nil || d.Flash.Message == "" {
		return nil
	}
	kind := ui.NoticeInfo
	switch d.Flash.Kind {
	case shared.FlashError:
		kind = ui.NoticeError
	case shared.FlashSuccess:
		kind = ui.NoticeSuccess
	}
	return &ui.Notice{Kind: kind, Message: d.Flash.Message}
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(funcMap()).ParseFS(web.Templates,
		"templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	e := &Engine{templates: tpl}
	e.buffers.New = func() any { return new(bytes.Buffer) }
	return e, nil
}

// Render executes a named template with a 200 status.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	return e.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus executes a named template into a buffer first so that a
// template failure never leaves a half-written page behind.
func (e *Engine) RenderStatus(w http.ResponseWriter, status int, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	if data.Nav == nil {
		data.Nav = ui.Navigation(data.CurrentPath)
	}
	buf := e.buffers.Get().(*bytes.Buffer)
	buf.Reset()
	defer e.buffers.Put(buf)
	if err := e.templates.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"currency":      format.Currency,
		"percent":       format.Percent,
		"pct":           format.CompactPercent,
		"signedPercent": format.SignedPercent,
		"decimal":       format.Decimal,
		"monthLabel":    format.MonthLabel,
		"progress": func(v float64) float64 {
			switch {
			case v < 0:
				return 0
			case v > 100:
				return 100
			default:
				return v
			}
		},
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			out := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				out[key] = pairs[i+1]
			}
			return out, nil
		},
	}
}
