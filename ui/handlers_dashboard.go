package ui

import (
	"log"
	"net/http"
)

// handleDashboardSummary returns the aggregated KPI view as JSON.
func (a *App) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.dashboard.Summary(r.Context())
	if err != nil {
		log.Printf("[UI] Failed to build dashboard summary: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to build summary",
		})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
