package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	appvalidator "github.com/metinatakli/movie-ticket-booking/internal/validator"
)

const (
	ErrInternalServer     = "The server encountered a problem and could not process your request"
	ErrNotFound           = "The requested resource not found"
	ErrUnauthorizedAccess = "You must be authenticated to access this resource"
	ErrMethodNotAllowed   = "The method is not supported for this resource"
	ErrFailedValidation   = "One or more fields have invalid values"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeError(w, r, status, api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	})
}

func (app *Application) writeError(w http.ResponseWriter, r *http.Request, status int, resp any) {
	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// invalidParamResponse handles parameters the generated router could not bind.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var formatErr *api.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		err = errInvalidParam(formatErr.ParamName)
	}

	app.badRequestResponse(w, r, err)
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorizedAccess)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, len(validationErrors)),
	}

	for i, e := range validationErrors {
		resp.ValidationErrors[i] = api.ValidationError{
			Field: e.Field(),
			Issue: appvalidator.ValidationMessage(e),
		}
	}

	app.writeError(w, r, http.StatusUnprocessableEntity, resp)
}

// bookingErrorResponse maps a failure of the booking core to its HTTP status.
// Anything that is not a *domain.BookingError is a server error.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var bookingErr *domain.BookingError
	if !errors.As(err, &bookingErr) {
		app.serverErrorResponse(w, r, err)
		return
	}

	var status int

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	app.writeError(w, r, status, api.ErrorResponse{
		Message:   bookingErr.Message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
		Seats:     bookingErr.Seats,
	})
}
