package ui

import (
	"log"
	"net/http"

	"fraudlens/domain/history"
)

// handleHistoryList returns the retained entries, newest first.
func (a *App) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	entries, err := a.analyzer.History(r.Context())
	if err != nil {
		log.Printf("[UI] Failed to list history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to retrieve history",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// handleHistoryClear drops every retained entry. HTMX callers get the emptied
// table back so the page updates in place.
func (a *App) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	if err := a.analyzer.ClearHistory(r.Context()); err != nil {
		log.Printf("[UI] Failed to clear history: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error": "Failed to clear history",
		})
		return
	}

	log.Printf("[UI] History cleared")
	if isHTMX(r) {
		a.renderPartial(w, "history_table", map[string]interface{}{
			"Entries": []history.Entry{},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "history cleared",
	})
}

// handleHistoryFragment renders the history table fragment.
func (a *App) handleHistoryFragment(w http.ResponseWriter, r *http.Request) {
	entries, err := a.analyzer.History(r.Context())
	if err != nil {
		log.Printf("[UI] Failed to load history fragment: %v", err)
		entries = []history.Entry{}
	}

	a.renderPartial(w, "history_table", map[string]interface{}{
		"Entries": entries,
	})
}
