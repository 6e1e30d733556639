package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/movie-ticket-booking/api"
)

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": statusUp,
		"redis":    statusUp,
	}

	if err := app.db.Ping(ctx); err != nil {
		app.contextGetLogger(r).Error("database health check failed", "error", err)
		checks["database"] = statusDown
	}

	if err := app.redis.Ping(ctx).Err(); err != nil {
		app.contextGetLogger(r).Error("redis health check failed", "error", err)
		checks["redis"] = statusDown
	}

	status := statusUp
	code := http.StatusOK

	for _, c := range checks {
		if c == statusDown {
			status = statusDown
			code = http.StatusServiceUnavailable
		}
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
		Checks: checks,
	}

	err := app.writeJSON(w, code, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
