// Package server exposes the calculators over HTTP: HTML pages driven by
// htmx and a small JSON API.
package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	"github.com/iwvelando/calc-widgets/internal/cache"
	"github.com/iwvelando/calc-widgets/internal/render"
	"github.com/iwvelando/calc-widgets/internal/widget"
	"github.com/iwvelando/calc-widgets/pkg/constants"
	"github.com/iwvelando/calc-widgets/pkg/format"
	"github.com/iwvelando/calc-widgets/pkg/share"
	"github.com/iwvelando/calc-widgets/pkg/validation"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

// Options wires the handler's collaborators. Only Registry is required.
type Options struct {
	Logger       *zap.Logger
	Registry     *widget.Registry
	Formatter    *format.Formatter
	SiteName     string
	SiteURL      string
	ShareMessage string
	MaxFormSize  int64
	Cache        cache.Cache
	Limiter      *RateLimiter
	Version      string
}

type handler struct {
	logger       *zap.Logger
	registry     *widget.Registry
	formatter    *format.Formatter
	site         render.Site
	siteURL      string
	shareMessage string
	maxFormSize  int64
	cache        cache.Cache
	version      string
}

// NewHandler constructs the HTTP handler that serves the calculator pages and API.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Registry == nil {
		return nil, errors.New("server requires a calculator registry")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	formatter := opts.Formatter
	if formatter == nil {
		formatter = format.Default()
	}

	maxFormSize := opts.MaxFormSize
	if maxFormSize <= 0 {
		maxFormSize = constants.DefaultMaxFormSizeBytes
	}

	resultCache := opts.Cache
	if resultCache == nil {
		resultCache = cache.Noop{}
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	siteName := opts.SiteName
	if siteName == "" {
		siteName = constants.DefaultSiteName
	}

	shareMessage := opts.ShareMessage
	if shareMessage == "" {
		shareMessage = constants.DefaultShareMessage
	}

	h := &handler{
		logger:       logger,
		registry:     opts.Registry,
		formatter:    formatter,
		site:         render.Site{
			Name:    siteName,
			Lang:    formatter.Locale(),
			Version: trimmedVersion,
			Decimal: formatter.DecimalSeparator(),
			Group:   formatter.GroupSeparator(),
		},
		siteURL:      opts.SiteURL,
		shareMessage: shareMessage,
		maxFormSize:  maxFormSize,
		cache:        resultCache,
		version:      trimmedVersion,
	}

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare embedded static files: %w", err)
	}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(h.handleNotFound)

	router.HandleFunc("/", h.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(sub)))).Methods(http.MethodGet)
	router.HandleFunc("/calculators/{slug}", h.handleCalculator).Methods(http.MethodGet)
	router.Handle("/calculators/{slug}", RateLimitMiddleware(opts.Limiter, http.HandlerFunc(h.handleEvaluate))).Methods(http.MethodPost)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)
	api.HandleFunc("/calculators", h.handleCatalogue).Methods(http.MethodGet)
	api.Handle("/calculators/{slug}", RateLimitMiddleware(opts.Limiter, http.HandlerFunc(h.handleAPIEvaluate))).Methods(http.MethodPost)

	return router, nil
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := render.Index(h.site, h.registry.Categories())
	h.renderPage(w, r, http.StatusOK, page, page, "server.handleIndex")
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	page := render.NotFound(h.site, strings.TrimPrefix(r.URL.Path, "/"))
	h.renderPage(w, r, http.StatusNotFound, page, page, "server.handleNotFound")
}

// handleCalculator shows the form. A query string, as produced by a shared
// link, is evaluated so the recipient sees the same result.
func (h *handler) handleCalculator(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculator"

	wd, ok := h.lookup(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	form := widget.NewForm(query)
	var panel templ.Component
	if len(query) > 0 {
		panel = h.resultPanel(r.Context(), wd, form, op)
	}

	page := render.Calculator(render.CalculatorView{
		Site:  h.site,
		Info:  wd.Info(),
		Form:  form,
		Panel: panel,
	})
	h.renderPage(w, r, http.StatusOK, page, page, op)
}

// handleEvaluate answers a form submission. Input errors are still 200 so
// htmx swaps the error panel in.
func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEvaluate"

	wd, ok := h.lookup(w, r)
	if !ok {
		return
	}

	form, status, err := h.parseForm(w, r)
	if err != nil {
		h.logger.Warn("rejected calculator form",
			zap.String("op", op),
			zap.Int("status", status),
			zap.Error(err),
		)
		http.Error(w, err.Error(), status)
		return
	}

	panel := h.resultPanel(r.Context(), wd, form, op)
	page := render.Calculator(render.CalculatorView{
		Site:  h.site,
		Info:  wd.Info(),
		Form:  form,
		Panel: panel,
	})
	h.renderPage(w, r, http.StatusOK, panel, page, op)
}

type catalogueEntry struct {
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Fields      []fieldEntry `json:"fields"`
}

type fieldEntry struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Unit     string   `json:"unit,omitempty"`
	Default  string   `json:"default,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Options  []string `json:"options,omitempty"`
}

func (h *handler) handleCatalogue(w http.ResponseWriter, r *http.Request) {
	widgets := h.registry.All()
	entries := make([]catalogueEntry, 0, len(widgets))
	for _, wd := range widgets {
		info := wd.Info()
		fields := make([]fieldEntry, 0, len(info.Fields))
		for _, f := range info.Fields {
			entry := fieldEntry{
				Name:     f.Name,
				Label:    f.Label,
				Kind:     string(f.Kind),
				Unit:     f.Unit,
				Default:  f.DefaultValue,
				Optional: f.Optional,
			}
			for _, o := range f.Options {
				entry.Options = append(entry.Options, o.Value)
			}
			fields = append(fields, entry)
		}
		entries = append(entries, catalogueEntry{
			Slug:        info.Slug,
			Title:       info.Title,
			Category:    string(info.Category),
			Description: info.Description,
			Fields:      fields,
		})
	}
	h.writeJSON(w, http.StatusOK, entries)
}

type evaluateResponse struct {
	Slug     string       `json:"slug"`
	Headline string       `json:"headline,omitempty"`
	Rows     []rowEntry   `json:"rows"`
	Tables   []tableEntry `json:"tables,omitempty"`
	Notes    []string     `json:"notes,omitempty"`
	ShareURL string       `json:"shareUrl"`
	HTML     string       `json:"html"`
}

type rowEntry struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

type tableEntry struct {
	Caption string     `json:"caption,omitempty"`
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
}

type inputErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *handler) handleAPIEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAPIEvaluate"

	slug := mux.Vars(r)["slug"]
	wd, ok := h.registry.Get(slug)
	if !ok {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("unknown calculator %q", slug), op)
		return
	}

	form, status, err := h.parseForm(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	outcome := h.evaluate(wd, form, op)
	if outcome.Err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, inputErrorResponse{
			Error: outcome.Err.Message,
			Field: outcome.Err.Field,
		})
		return
	}

	var buf bytes.Buffer
	if err := render.ResultPanel(outcome).Render(r.Context(), &buf); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render result: %v", err), op)
		return
	}

	result := outcome.Result
	resp := evaluateResponse{
		Slug:     slug,
		Headline: result.Headline,
		Rows:     make([]rowEntry, 0, len(result.Rows)),
		Notes:    result.Notes,
		ShareURL: outcome.ShareURL,
		HTML:     buf.String(),
	}
	for _, row := range result.Rows {
		resp.Rows = append(resp.Rows, rowEntry{Label: row.Label, Value: row.Value, Emphasis: row.Emphasis})
	}
	for _, t := range result.Tables {
		resp.Tables = append(resp.Tables, tableEntry{Caption: t.Caption, Header: t.Header, Rows: t.Rows})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) lookup(w http.ResponseWriter, r *http.Request) (widget.Widget, bool) {
	slug := mux.Vars(r)["slug"]
	wd, ok := h.registry.Get(slug)
	if !ok {
		page := render.NotFound(h.site, slug)
		h.renderPage(w, r, http.StatusNotFound, page, page, "server.lookup")
		return nil, false
	}
	return wd, true
}

func (h *handler) parseForm(w http.ResponseWriter, r *http.Request) (widget.Form, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFormSize)
	if err := r.ParseForm(); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return widget.Form{}, http.StatusRequestEntityTooLarge,
				fmt.Errorf("form exceeds limit of %d bytes", h.maxFormSize)
		}
		return widget.Form{}, http.StatusBadRequest, fmt.Errorf("failed to parse form: %w", err)
	}
	return widget.NewForm(r.PostForm), http.StatusOK, nil
}

// evaluate runs wd and turns the result or input error into a panel outcome.
func (h *handler) evaluate(wd widget.Widget, form widget.Form, op string) render.Outcome {
	info := wd.Info()
	result, err := wd.Evaluate(h.formatter, form)
	if err != nil {
		inputErr, ok := validation.AsInputError(err)
		if !ok {
			inputErr = &validation.InputError{Message: err.Error()}
			h.logger.Error("calculator returned an unexpected error",
				zap.String("op", op),
				zap.String("calculator", info.Slug),
				zap.Error(err),
			)
		} else {
			h.logger.Debug("calculator input rejected",
				zap.String("op", op),
				zap.String("calculator", info.Slug),
				zap.String("field", inputErr.Field),
				zap.String("error", inputErr.Message),
			)
		}
		return render.Outcome{Err: inputErr}
	}
	return render.Outcome{Result: &result, ShareURL: h.shareURL(info.Slug, result, form)}
}

func (h *handler) shareURL(slug string, result widget.Result, form widget.Form) string {
	message := result.Summary
	if message == "" {
		message = h.shareMessage
	}
	path := render.CalculatorPath(slug)
	if encoded := form.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return share.WhatsAppURL(message, share.PageURL(h.siteURL, path))
}

// resultPanel returns the rendered panel for form, from the cache when a
// previous identical evaluation succeeded. Error panels are never cached.
func (h *handler) resultPanel(ctx context.Context, wd widget.Widget, form widget.Form, op string) templ.Component {
	key := cache.Key(wd.Info().Slug, h.formatter.Locale(), h.formatter.Symbol(), form.Encode())

	cached, hit, err := h.cache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("result cache read failed", zap.String("op", op), zap.Error(err))
	} else if hit {
		return templ.Raw(cached)
	}

	outcome := h.evaluate(wd, form, op)
	panel := render.ResultPanel(outcome)
	if outcome.Result == nil {
		return panel
	}

	var buf bytes.Buffer
	if err := panel.Render(ctx, &buf); err != nil {
		h.logger.Error("failed to render result panel", zap.String("op", op), zap.Error(err))
		return panel
	}
	if err := h.cache.Set(ctx, key, buf.String()); err != nil {
		h.logger.Warn("result cache write failed", zap.String("op", op), zap.Error(err))
	}
	return templ.Raw(buf.String())
}

func (h *handler) renderPage(w http.ResponseWriter, r *http.Request, status int, fragment, full templ.Component, op string) {
	if err := render.Page(w, r, status, fragment, full); err != nil {
		h.logger.Error("failed to write page",
			zap.String("op", op),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
