package app

import (
	"errors"
	"io"
	"net/http"

	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/booking"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/metinatakli/movie-ticket-booking/internal/payment"
)

const (
	webhookResultProcessed = "processed"
	webhookResultIgnored   = "ignored"
	webhookResultRejected  = "rejected"
)

// StripeWebhookHandler confirms bookings from verified Stripe events. Events that
// cannot be applied are acknowledged so that Stripe stops redelivering them.
func (app *Application) StripeWebhookHandler(
	w http.ResponseWriter,
	r *http.Request,
	params api.StripeWebhookHandlerParams) {

	logger := app.contextGetLogger(r)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	confirmation, err := app.paymentWebhook.Parse(payload, deref(params.StripeSignature))
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		logger.Warn("rejected webhook with invalid signature", "error", err)
		app.badRequestResponse(w, r, err)
		return
	case errors.Is(err, payment.ErrIgnoredEvent):
		logger.Info("ignored webhook event", "reason", err)
		app.webhookResponse(w, r, webhookResultIgnored)
		return
	case err != nil:
		app.badRequestResponse(w, r, err)
		return
	}

	transactionID := confirmation.TransactionID

	_, err = app.bookingService.ProcessPayment(r.Context(), domain.SystemActor, booking.ProcessPaymentInput{
		BookingID:     confirmation.BookingID,
		Method:        confirmation.Method,
		TransactionID: &transactionID,
	})
	if err != nil {
		var bookingErr *domain.BookingError
		if !errors.As(err, &bookingErr) {
			app.serverErrorResponse(w, r, err)
			return
		}

		logger.Warn("webhook payment not applied",
			"event_id", confirmation.EventID,
			"booking_id", confirmation.BookingID,
			"error", err,
		)
		app.webhookResponse(w, r, webhookResultRejected)
		return
	}

	logger.Info("webhook payment applied", "event_id", confirmation.EventID, "booking_id", confirmation.BookingID)
	app.webhookResponse(w, r, webhookResultProcessed)
}

func (app *Application) webhookResponse(w http.ResponseWriter, r *http.Request, result string) {
	err := app.writeJSON(w, http.StatusOK, api.WebhookResponse{Received: true, Result: result}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
