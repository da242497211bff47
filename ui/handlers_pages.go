package ui

import (
	"log"
	"net/http"

	"fraudlens/domain/history"
	"fraudlens/domain/transaction"
)

// handleDashboardPage renders the KPI dashboard over the retained history.
func (a *App) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	summary, err := a.dashboard.Summary(r.Context())
	if err != nil {
		log.Printf("[UI] Failed to build dashboard summary: %v", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	entries, err := a.analyzer.History(r.Context())
	if err != nil {
		log.Printf("[UI] Failed to load history for dashboard: %v", err)
		entries = nil
	}
	const recentLimit = 5
	if len(entries) > recentLimit {
		entries = entries[:recentLimit]
	}

	health, checkedAt := a.monitor.snapshot()

	data := map[string]interface{}{
		"Title":     "Dashboard",
		"Active":    "dashboard",
		"Summary":   summary,
		"Recent":    entries,
		"Health":    health,
		"CheckedAt": checkedAt,
	}
	a.renderTemplate(w, "dashboard.html", data)
}

// handleAnalyzePage renders the single-transaction form.
func (a *App) handleAnalyzePage(w http.ResponseWriter, r *http.Request) {
	health, _ := a.monitor.snapshot()

	data := map[string]interface{}{
		"Title":      "Analyze Transaction",
		"Active":     "analyze",
		"Categories": transaction.Categories(),
		"Health":     health,
	}
	a.renderTemplate(w, "analyze.html", data)
}

// handleBatchPage renders the CSV/XLSX upload form.
func (a *App) handleBatchPage(w http.ResponseWriter, r *http.Request) {
	health, _ := a.monitor.snapshot()

	data := map[string]interface{}{
		"Title":           "Batch Analysis",
		"Active":          "batch",
		"RowLimit":        a.analyzer.RowLimit(),
		"MaxUploadMB":     a.uploadMaxBytes / (1024 * 1024),
		"RequiredColumns": transaction.RequiredColumns(),
		"Health":          health,
	}
	a.renderTemplate(w, "batch.html", data)
}

// handleHistoryPage renders the retained prediction history.
func (a *App) handleHistoryPage(w http.ResponseWriter, r *http.Request) {
	entries, err := a.analyzer.History(r.Context())
	if err != nil {
		log.Printf("[UI] Failed to load history: %v", err)
		entries = []history.Entry{}
	}

	data := map[string]interface{}{
		"Title":   "History",
		"Active":  "history",
		"Entries": entries,
	}
	a.renderTemplate(w, "history.html", data)
}

// handleAboutPage renders the embedded model card.
func (a *App) handleAboutPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title":   "About",
		"Active":  "about",
		"Content": a.aboutHTML,
	}
	a.renderTemplate(w, "about.html", data)
}
