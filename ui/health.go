package ui

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"fraudlens/app"
	"fraudlens/domain/scoring"
)

const (
	healthPollInterval = 30 * time.Second
	healthProbeTimeout = 10 * time.Second
)

// healthMonitor polls the scorer in the background and caches the latest
// report, so page loads never wait on the remote service.
type healthMonitor struct {
	analyzer *app.AnalyzerService

	mu        sync.RWMutex
	current   scoring.Health
	checkedAt time.Time
}

func newHealthMonitor(analyzer *app.AnalyzerService) *healthMonitor {
	return &healthMonitor{
		analyzer: analyzer,
		current:  scoring.Offline(),
	}
}

// start launches the background poll loop. The loop runs for the process
// lifetime; offline is a reported state, never a reason to stop probing.
func (m *healthMonitor) start() {
	go func() {
		m.probe()
		for {
			time.Sleep(healthPollInterval)
			m.probe()
		}
	}()
}

func (m *healthMonitor) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), healthProbeTimeout)
	defer cancel()

	health := m.analyzer.ServiceHealth(ctx)

	m.mu.Lock()
	wasOnline := m.current.Online
	m.current = health
	m.checkedAt = time.Now()
	m.mu.Unlock()

	if wasOnline != health.Online {
		state := "offline"
		if health.Online {
			state = "online"
		}
		log.Printf("[Health] Scoring service is now %s", state)
	}
}

// snapshot returns the cached report and when it was taken.
func (m *healthMonitor) snapshot() (scoring.Health, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.checkedAt
}

// handleHealth reports the cached service status as JSON.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	health, checkedAt := a.monitor.snapshot()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"online":        health.Online,
		"status":        health.Status,
		"model_loaded":  health.ModelLoaded,
		"model_version": health.ModelVersion,
		"threshold":     health.Threshold,
		"checked_at":    checkedAt,
	})
}

// handleHealthFragment renders the status badge used in the navigation bar.
func (a *App) handleHealthFragment(w http.ResponseWriter, r *http.Request) {
	health, _ := a.monitor.snapshot()
	a.renderPartial(w, "health_badge", map[string]interface{}{
		"Health": health,
	})
}
