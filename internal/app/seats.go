package app

import (
	"net/http"

	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (app *Application) GetSeatMapHandler(w http.ResponseWriter, r *http.Request, showId int) {
	if showId < 1 {
		app.badRequestResponse(w, r, errInvalidParam("showId"))
		return
	}

	seatMap, err := app.bookingService.ListAvailableSeats(r.Context(), showId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatMapResponse(seatMap), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatMapResponse(seatMap *domain.SeatMap) api.SeatMapResponse {
	seats := make([]api.Seat, len(seatMap.Seats))

	for i, s := range seatMap.Seats {
		seats[i] = api.Seat{
			Id:              s.ID,
			SeatNumber:      s.SeatNumber,
			Row:             s.Row,
			Type:            string(s.Type),
			PriceMultiplier: s.PriceMultiplier,
			Price:           s.Price,
			Available:       s.Available,
		}
	}

	return api.SeatMapResponse{
		ShowId:         seatMap.Show.ID,
		ShowDate:       openapi_types.Date{Time: seatMap.Show.ShowDate},
		ShowTime:       seatMap.Show.ShowTime,
		BasePrice:      seatMap.Show.BasePrice,
		AvailableCount: seatMap.AvailableCount(),
		Seats:          seats,
	}
}
