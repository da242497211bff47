package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fraudlens/app"
	"fraudlens/domain/core"
	"fraudlens/domain/scoring"
	"fraudlens/domain/tabular"
	"fraudlens/internal/errors"
)

//go:embed templates/* static/* content/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router         *chi.Mux
	analyzer       *app.AnalyzerService
	dashboard      *app.DashboardService
	monitor        *healthMonitor
	templates      *template.Template
	aboutHTML      template.HTML
	port           string
	uploadMaxBytes int64
}

// Config holds UI application configuration
type Config struct {
	Port           string
	UploadMaxBytes int64
}

// NewApp creates a new UI application
func NewApp(cfg Config, analyzer *app.AnalyzerService, dashboard *app.DashboardService) (*App, error) {
	funcMap := template.FuncMap{
		"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f) },
		"prob": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
		"money": func(f float64) string { return fmt.Sprintf("%.2f", f) },
		"riskClass": func(r scoring.RiskLevel) string {
			switch r {
			case scoring.RiskLow:
				return "risk-low"
			case scoring.RiskMedium:
				return "risk-medium"
			case scoring.RiskHigh:
				return "risk-high"
			default:
				return "risk-unknown"
			}
		},
		"timefmt": func(ts core.Timestamp) string {
			return ts.Time().Format("2006-01-02 15:04")
		},
		// index can't convert a literal string to the RiskLevel key type.
		"riskCount": func(m map[scoring.RiskLevel]int, tier string) int {
			return m[scoring.RiskLevel(tier)]
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	aboutHTML, err := renderModelCard()
	if err != nil {
		return nil, fmt.Errorf("failed to render model card: %w", err)
	}

	a := &App{
		router:         chi.NewRouter(),
		analyzer:       analyzer,
		dashboard:      dashboard,
		monitor:        newHealthMonitor(analyzer),
		templates:      templates,
		aboutHTML:      aboutHTML,
		port:           cfg.Port,
		uploadMaxBytes: cfg.UploadMaxBytes,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	// Serve static files
	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Main pages
	a.router.Get("/", a.handleDashboardPage)
	a.router.Get("/analyze", a.handleAnalyzePage)
	a.router.Get("/batch", a.handleBatchPage)
	a.router.Get("/history", a.handleHistoryPage)
	a.router.Get("/about", a.handleAboutPage)

	// Form actions
	a.router.Post("/analyze", a.handleAnalyze)

	// API endpoints
	a.router.Post("/api/batch/upload", a.handleBatchUpload)
	a.router.Get("/api/health", a.handleHealth)
	a.router.Get("/api/dashboard/summary", a.handleDashboardSummary)
	a.router.Get("/api/history", a.handleHistoryList)
	a.router.Post("/api/history/clear", a.handleHistoryClear)

	// HTMX fragment endpoints
	a.router.Get("/api/fragments/history", a.handleHistoryFragment)
	a.router.Get("/api/fragments/health", a.handleHealthFragment)
}

// Start runs the health poller and serves HTTP until the listener fails.
func (a *App) Start() error {
	a.monitor.start()

	addr := ":" + a.port
	log.Printf("Starting fraudlens console on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Router exposes the configured mux, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// HTMX helpers
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (a *App) renderPartial(w http.ResponseWriter, templateName string, data interface{}) {
	a.renderTemplate(w, templateName, data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[UI] Failed to encode JSON response: %v", err)
	}
}

// classifyError maps a pipeline failure to an HTTP status and error code.
// Input-side failures are the user's to fix; everything else is the scoring
// service's.
func classifyError(err error) (int, string) {
	switch {
	case core.IsValidationError(err),
		tabular.IsEmptyInput(err),
		tabular.IsNoDataRows(err),
		tabular.IsMissingColumns(err),
		tabular.IsRowLimit(err):
		return http.StatusBadRequest, errors.CodeInvalidInput
	default:
		return http.StatusBadGateway, errors.CodeExternalService
	}
}

// respondError reports err to the client: an inline error card for HTMX
// requests, a JSON body with status and code otherwise.
func (a *App) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classifyError(err)
	log.Printf("[UI] %s %s failed (%s): %v", r.Method, r.URL.Path, code, err)

	if isHTMX(r) {
		// HTMX swaps 2xx responses only, so the error card ships with 200.
		a.renderPartial(w, "error_card", map[string]interface{}{
			"Message": err.Error(),
		})
		return
	}

	writeJSON(w, status, map[string]interface{}{
		"error": err.Error(),
		"code":  code,
	})
}
