package main

import (
	"context"
	"net/http"
	"time"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.Env,
		"version": version,
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		app.logger.Errorw("write health response", "error", err.Error())
	}
}

// readinessHandler pings the database; load balancers stop routing to the
// instance while it fails.
func (app *application) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.store.Ping(ctx); err != nil {
		app.logger.Warnw("readiness check failed", "error", err.Error())
		_ = writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}

	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
