package app

import (
	"net/http"

	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/booking"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

func (app *Application) ProcessPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var input api.ProcessPaymentRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	payment, err := app.bookingService.ProcessPayment(r.Context(), app.contextGetActor(r), booking.ProcessPaymentInput{
		BookingID:     input.BookingId,
		Method:        domain.PaymentMethod(input.Method),
		TransactionID: input.TransactionId,
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toPaymentResponse(payment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListPaymentsHandler(
	w http.ResponseWriter,
	r *http.Request,
	params api.ListPaymentsHandlerParams) {

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filter := domain.PaymentFilter{
		Pagination: toPagination(params.Page, params.PageSize),
	}

	if params.Status != nil {
		status := domain.PaymentStatus(*params.Status)
		filter.Status = &status
	}

	payments, metadata, err := app.bookingService.ListPayments(r.Context(), app.contextGetActor(r), filter)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.PaymentsResponse{
		Payments: make([]api.PaymentResponse, len(payments)),
		Metadata: toApiMetadata(metadata),
	}

	for i := range payments {
		resp.Payments[i] = toPaymentResponse(&payments[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPaymentHandler(w http.ResponseWriter, r *http.Request, paymentId int) {
	if paymentId < 1 {
		app.badRequestResponse(w, r, errInvalidParam("paymentId"))
		return
	}

	payment, err := app.bookingService.GetPayment(r.Context(), app.contextGetActor(r), paymentId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toPaymentResponse(payment), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPaymentResponse(p *domain.Payment) api.PaymentResponse {
	return api.PaymentResponse{
		Id:            p.ID,
		BookingId:     p.BookingID,
		UserId:        p.UserID,
		Method:        string(p.Method),
		TransactionId: p.TransactionID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        string(p.Status),
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}
