// Package simulationhttp serves the what-if simulator pages.
package simulationhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/costintel/costintel/internal/charts"
	"github.com/costintel/costintel/internal/costapi"
	"github.com/costintel/costintel/internal/dimensions"
	"github.com/costintel/costintel/internal/platform/cache"
	"github.com/costintel/costintel/internal/platform/httpx"
	"github.com/costintel/costintel/internal/scenarios"
	"github.com/costintel/costintel/internal/shared"
	"github.com/costintel/costintel/internal/simulations"
	"github.com/costintel/costintel/internal/view"
)

// Session and cache keys.
const (
	draftKey      = "simulations.draft"
	resultKey     = "result"
	comparisonKey = "comparison"
	basePath      = "/simulacoes"
)

// Flash copy.
const (
	msgDimensionsFailed = "Falha ao carregar dimensões para simulação."
	msgScenarioSaved    = "Cenário salvo."
	msgScenarioInvalid  = "Informe um nome e configure ao menos um corte para salvar o cenário."
	msgScenarioLoaded   = "Cenário carregado."
	msgScenarioDeleted  = "Cenário removido."
	msgScenarioMissing  = "Cenário não encontrado."
	msgSimulationDone   = "Simulação concluída."
	msgNothingToExport  = "Execute uma simulação antes de exportar."
)

// Handler coordinates HTTP requests for the simulator.
type Handler struct {
	logger     *slog.Logger
	runner     *simulations.Runner
	dimensions *dimensions.Loader
	templates  *view.Engine
	csrf       *shared.CSRFManager
	results    *cache.JSONStore
	csvPool    sync.Pool
	now        func() time.Time
}

// NewHandler constructs the simulator HTTP handler.
func NewHandler(
	logger *slog.Logger,
	runner *simulations.Runner,
	dims *dimensions.Loader,
	templates *view.Engine,
	csrf *shared.CSRFManager,
	results *cache.JSONStore,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	charts.EnsureRegistered()
	h := &Handler{
		logger:     logger,
		runner:     runner,
		dimensions: dims,
		templates:  templates,
		csrf:       csrf,
		results:    results,
		now:        time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	draft := h.loadDraft(sess)

	dims, dimsErr := h.dimensions.Load(ctx, dimensions.CostCenters, dimensions.Categories)
	if dimsErr != nil {
		h.logger.Warn("simulation dimensions", slog.Any("error", dimsErr))
	}

	result := h.loadResult(ctx, sess)
	comparison := h.loadComparison(ctx, sess)
	saved := h.store(sess).List(ctx)

	vm, err := buildViewModel(draft, dims, dimsErr, result, comparison, saved)
	if err != nil {
		h.handleServerError(w, "build simulation view", err)
		return
	}

	var flash *shared.FlashMessage
	csrfToken := ""
	if sess != nil {
		flash = sess.PopFlash()
		if h.csrf != nil {
			csrfToken, _ = h.csrf.EnsureToken(ctx, sess)
		}
	}
	data := view.TemplateData{
		Title:       "Simulações",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/simulations.html", data); err != nil {
		h.handleServerError(w, "render simulations", err)
	}
}

// handleDraft stores the window and cut values posted by the editor form.
func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
	})
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
		previous := h.loadResult(ctx, sess)
		next, err := h.runner.Run(ctx, shared.SimulationLockKey(sess.ID), *d, previous)
		if err != nil {
			flashError(sess, simulations.UserMessage(err))
			return
		}
		h.storeResult(ctx, sess, next)
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashSuccess, Message: msgSimulationDone})
	})
}

func (h *Handler) handleAddCenter(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
		d.AddCenterCut(formID(r, "add_center_id"))
	})
}

func (h *Handler) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
		d.AddCategoryCut(formID(r, "add_category_id"))
	})
}

func (h *Handler) handleRemoveCenter(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
		d.RemoveCenterCut(pathID(r))
	})
}

func (h *Handler) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
		d.RemoveCategoryCut(pathID(r))
	})
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
		tpl, ok := simulations.TemplateByKey(r.PostFormValue("template"))
		if !ok {
			return
		}
		dims, err := h.dimensions.Load(ctx, dimensions.CostCenters, dimensions.Categories)
		if err != nil {
			flashError(sess, msgDimensionsFailed)
			return
		}
		d.ApplyTemplate(tpl, dims.Centers, dims.Categories)
	})
}

// handleClear drops every cut together with the last result.
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		d.Clear()
		if h.results != nil {
			if err := h.results.Delete(ctx, h.results.Key(resultKey, sess.ID)); err != nil {
				h.logger.Warn("clear simulation result", slog.Any("error", err))
			}
		}
	})
}

func (h *Handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		syncDraft(r, d)
		if _, err := h.store(sess).Save(ctx, d.ScenarioDraft(r.PostFormValue("name"))); err != nil {
			h.logger.Info("reject scenario", slog.Any("error", err))
			flashError(sess, msgScenarioInvalid)
			return
		}
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashSuccess, Message: msgScenarioSaved})
	})
}

func (h *Handler) handleLoadScenario(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		saved, ok := h.store(sess).Get(ctx, chi.URLParam(r, "id"))
		if !ok {
			flashError(sess, msgScenarioMissing)
			return
		}
		d.LoadScenario(saved)
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashInfo, Message: msgScenarioLoaded})
	})
}

func (h *Handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		if _, err := h.store(sess).Delete(ctx, chi.URLParam(r, "id")); err != nil {
			h.logger.Error("delete scenario", slog.Any("error", err))
			return
		}
		h.clearComparison(ctx, sess)
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashInfo, Message: msgScenarioDeleted})
	})
}

// handleCompare ranks the selected saved scenarios over the draft window.
func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, sess *shared.Session, d *simulations.Draft) {
		store := h.store(sess)
		var selected []scenarios.SavedScenario
		for _, id := range r.PostForm["scenario"] {
			if saved, ok := store.Get(ctx, id); ok {
				selected = append(selected, saved)
			}
		}
		out, err := h.runner.Compare(ctx, d.StartDate, d.EndDate, selected)
		if err != nil {
			if simulations.IsValidationError(err) {
				flashError(sess, simulations.UserMessage(err))
				return
			}
			flashError(sess, costapi.UserMessage(err, simulations.MsgCompareFail))
			return
		}
		if h.results != nil {
			if err := h.results.Set(ctx, h.results.Key(comparisonKey, sess.ID), out); err != nil {
				h.logger.Warn("store comparison", slog.Any("error", err))
			}
		}
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	result := h.loadResult(ctx, sess)
	if result == nil {
		httpx.Problem(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), msgNothingToExport)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()
	if err := simulations.WriteRankingCSV(buf, result.Response); err != nil {
		h.handleServerError(w, "write simulation csv", err)
		return
	}

	filename := fmt.Sprintf("simulacao-%s-%s.csv", result.Request.StartDate, result.Request.EndDate)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("stream simulation csv", slog.Any("error", err))
	}
}

// mutate loads the draft, applies fn, saves the draft and redirects back to the page.
// A comparison ranked over a window the draft no longer has is dropped.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, sess *shared.Session, d *simulations.Draft)) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}
	draft := h.loadDraft(sess)
	window := draft.Window()
	fn(r.Context(), sess, &draft)
	if draft.Window() != window {
		h.clearComparison(r.Context(), sess)
	}
	if err := h.saveDraft(sess, draft); err != nil {
		h.handleServerError(w, "save simulation draft", err)
		return
	}
	http.Redirect(w, r, basePath, http.StatusSeeOther)
}

func (h *Handler) loadDraft(sess *shared.Session) simulations.Draft {
	if sess != nil {
		if raw := sess.Get(draftKey); raw != "" {
			var d simulations.Draft
			if err := json.Unmarshal([]byte(raw), &d); err == nil {
				return d
			}
			h.logger.Warn("discard unreadable simulation draft")
		}
	}
	return simulations.NewDraft(h.now())
}

func (h *Handler) saveDraft(sess *shared.Session, d simulations.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	sess.Set(draftKey, string(raw))
	return nil
}

func (h *Handler) store(sess *shared.Session) *scenarios.Store {
	return scenarios.NewStore(scenarios.NewSessionStorage(sess), h.logger)
}

func (h *Handler) loadResult(ctx context.Context, sess *shared.Session) *simulations.Result {
	if sess == nil || h.results == nil {
		return nil
	}
	var result simulations.Result
	if err := h.results.Get(ctx, h.results.Key(resultKey, sess.ID), &result); err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			h.logger.Warn("load simulation result", slog.Any("error", err))
		}
		return nil
	}
	return &result
}

func (h *Handler) storeResult(ctx context.Context, sess *shared.Session, result *simulations.Result) {
	if h.results == nil || result == nil {
		return
	}
	if err := h.results.Set(ctx, h.results.Key(resultKey, sess.ID), result); err != nil {
		h.logger.Warn("store simulation result", slog.Any("error", err))
	}
}

func (h *Handler) loadComparison(ctx context.Context, sess *shared.Session) *costapi.ComparisonResponse {
	if sess == nil || h.results == nil {
		return nil
	}
	var out costapi.ComparisonResponse
	if err := h.results.Get(ctx, h.results.Key(comparisonKey, sess.ID), &out); err != nil {
		return nil
	}
	return &out
}

func (h *Handler) clearComparison(ctx context.Context, sess *shared.Session) {
	if h.results == nil {
		return
	}
	if err := h.results.Delete(ctx, h.results.Key(comparisonKey, sess.ID)); err != nil {
		h.logger.Warn("clear scenario comparison", slog.Any("error", err))
	}
}

// syncDraft copies the editor form into d. Cut fields arrive as parallel lists.
func syncDraft(r *http.Request, d *simulations.Draft) {
	if start := strings.TrimSpace(r.PostFormValue("start")); start != "" {
		d.StartDate = start
	}
	if end := strings.TrimSpace(r.PostFormValue("end")); end != "" {
		d.EndDate = end
	}
	ids, percents, absolutes := r.PostForm["center_id"], r.PostForm["center_percent"], r.PostForm["center_absolute"]
	for i, raw := range ids {
		d.SetCenterCut(parseID(raw), formFloat(percents, i), formFloat(absolutes, i))
	}
	ids, percents, absolutes = r.PostForm["category_id"], r.PostForm["category_percent"], r.PostForm["category_absolute"]
	for i, raw := range ids {
		d.SetCategoryCut(parseID(raw), formFloat(percents, i), formFloat(absolutes, i))
	}
}

func flashError(sess *shared.Session, message string) {
	sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: message})
}

func formID(r *http.Request, field string) int64 {
	return parseID(r.PostFormValue(field))
}

func pathID(r *http.Request) int64 {
	return parseID(chi.URLParam(r, "id"))
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func formFloat(values []string, i int) float64 {
	if i >= len(values) {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(values[i]), ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logger.Error(context, slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
