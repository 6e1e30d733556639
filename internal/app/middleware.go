package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestLogger stores a logger tagged with the request id in the context.
func (app *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := app.logger.With("request_id", middleware.GetReqID(r.Context()))

		ctx := context.WithValue(r.Context(), loggerContextKey, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuthentication resolves the session into the actor of the request.
// Sessions without a role belong to customers.
func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := app.sessionManager.GetInt(r.Context(), SessionKeyUserId)
		if userId == 0 {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		role := domain.Role(app.sessionManager.GetString(r.Context(), SessionKeyRole))
		if role != domain.RoleAdmin {
			role = domain.RoleCustomer
		}

		actor := domain.Actor{UserID: userId, Role: role}

		ctx := context.WithValue(r.Context(), actorContextKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireSession guards the operations that declare cookie security.
func (app *Application) requireSession(next http.Handler) http.Handler {
	authenticated := app.requireAuthentication(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(api.CookieAuthScopes).([]string); !ok {
			next.ServeHTTP(w, r)
			return
		}

		authenticated.ServeHTTP(w, r)
	})
}
