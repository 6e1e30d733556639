package app

import (
	"log/slog"
	"net/http"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

type contextKey string

const (
	SessionKeyUserId = "userID"
	SessionKeyRole   = "role"

	actorContextKey  = contextKey("actor")
	loggerContextKey = contextKey("logger")
)

func (app *Application) contextGetActor(r *http.Request) domain.Actor {
	actor, ok := r.Context().Value(actorContextKey).(domain.Actor)
	if !ok {
		panic("missing actor from context")
	}

	return actor
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	logger, ok := r.Context().Value(loggerContextKey).(*slog.Logger)
	if !ok {
		return app.logger
	}

	return logger
}
