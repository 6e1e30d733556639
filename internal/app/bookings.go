package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/booking"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var input api.CreateBookingRequest

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

	actor := app.contextGetActor(r)

	created, err := app.bookingService.CreateBooking(r.Context(), actor, booking.CreateBookingInput{
		ShowID:  input.ShowId,
		SeatIDs: input.SeatIds,
		Notes:   deref(input.Notes),
	})
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/bookings/%d", created.ID))

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(created), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListBookingsHandler(
	w http.ResponseWriter,
	r *http.Request,
	params api.ListBookingsHandlerParams) {

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	actor := app.contextGetActor(r)

	bookings, metadata, err := app.bookingService.ListBookings(r.Context(), actor, toBookingFilter(params))
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	resp := api.BookingsResponse{
		Bookings: make([]api.BookingResponse, len(bookings)),
		Metadata: toApiMetadata(metadata),
	}

	for i := range bookings {
		resp.Bookings[i] = toBookingResponse(&bookings[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingHandler(w http.ResponseWriter, r *http.Request, bookingId int) {
	if bookingId < 1 {
		app.badRequestResponse(w, r, errInvalidParam("bookingId"))
		return
	}

	found, err := app.bookingService.GetBooking(r.Context(), app.contextGetActor(r), bookingId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(found), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBookingHandler accepts an optional body carrying the reason.
func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request, bookingId int) {
	if bookingId < 1 {
		app.badRequestResponse(w, r, errInvalidParam("bookingId"))
		return
	}

	var input api.CancelBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil && !errors.Is(err, errEmptyBody) {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	cancelled, err := app.bookingService.CancelBooking(
		r.Context(),
		app.contextGetActor(r),
		bookingId,
		deref(input.Reason),
	)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(cancelled), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingFilter(params api.ListBookingsHandlerParams) domain.BookingFilter {
	filter := domain.BookingFilter{
		Pagination: toPagination(params.Page, params.PageSize),
	}

	if params.Status != nil {
		status := domain.BookingStatus(*params.Status)
		filter.Status = &status
	}

	return filter
}

func toPagination(page, pageSize *int) domain.Pagination {
	p := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if page != nil {
		p.Page = *page
	}
	if pageSize != nil {
		p.PageSize = *pageSize
	}

	return p
}

func toBookingResponse(b *domain.Booking) api.BookingResponse {
	seats := make([]api.BookedSeat, len(b.Seats))

	for i, s := range b.Seats {
		seats[i] = api.BookedSeat{
			SeatId:     s.SeatID,
			SeatNumber: s.SeatNumber,
			Price:      s.Price,
		}
	}

	return api.BookingResponse{
		Id:          b.ID,
		Reference:   b.Reference,
		UserId:      b.UserID,
		ShowId:      b.ShowID,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		Notes:       b.Notes,
		Seats:       seats,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}

	return *v
}
