package booking

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/stretchr/testify/mock"
)

func (s *ServiceTestSuite) TestCompletePastBookings() {
	confirmed := withStatus(pendingBooking(), domain.BookingStatusConfirmed)

	other := pendingBooking()
	other.ID = 8
	other.Status = domain.BookingStatusCancelled

	s.bookings.On("GetIdsByStatusAndShowStartBefore", mock.Anything, domain.BookingStatusConfirmed, fixedNow, 50).
		Return([]int{7, 8, 9}, nil)
	s.bookings.On("GetByIdForUpdate", mock.Anything, 7).Return(confirmed, nil)
	s.bookings.On("GetByIdForUpdate", mock.Anything, 8).Return(other, nil)
	s.bookings.On("GetByIdForUpdate", mock.Anything, 9).Return(nil, domain.ErrRecordNotFound)
	s.bookings.On("UpdateStatus", mock.Anything, 7, []domain.BookingStatus{domain.BookingStatusConfirmed},
		domain.BookingStatusCompleted, (*string)(nil)).
		Return(withStatus(pendingBooking(), domain.BookingStatusCompleted), nil)
	s.bookings.On("ReleaseSeats", mock.Anything, 7).Return(nil)
	s.publisher.On("Publish", mock.Anything, eventOfType(domain.EventBookingCompleted)).Return(nil)

	n, err := s.service.CompletePastBookings(context.Background())

	s.Require().NoError(err)
	s.Equal(1, n)
	s.bookings.AssertNotCalled(s.T(), "UpdateStatus", mock.Anything, 8, mock.Anything, mock.Anything, mock.Anything)
	s.payments.AssertNotCalled(s.T(), "GetByBookingId", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestCancelUnpaidPastBookings() {
	s.bookings.On("GetIdsByStatusAndShowStartBefore", mock.Anything, domain.BookingStatusPending, fixedNow, 50).
		Return([]int{7, 8}, nil)

	failing := pendingBooking()
	failing.ID = 8

	s.bookings.On("GetByIdForUpdate", mock.Anything, 7).Return(pendingBooking(), nil)
	s.bookings.On("GetByIdForUpdate", mock.Anything, 8).Return(failing, nil)
	s.bookings.On("UpdateStatus", mock.Anything, 7, mock.Anything, domain.BookingStatusCancelled,
		mock.MatchedBy(func(notes *string) bool { return *notes == "Cancelled: unpaid at show time" })).
		Return(withStatus(pendingBooking(), domain.BookingStatusCancelled), nil)
	s.bookings.On("UpdateStatus", mock.Anything, 8, mock.Anything, domain.BookingStatusCancelled, mock.Anything).
		Return(nil, errors.New("connection lost"))
	s.bookings.On("ReleaseSeats", mock.Anything, 7).Return(nil)
	s.payments.On("GetByBookingId", mock.Anything, 7).Return(nil, domain.ErrRecordNotFound)
	s.publisher.On("Publish", mock.Anything, eventOfType(domain.EventBookingCancelled)).Return(nil)

	n, err := s.service.CancelUnpaidPastBookings(context.Background())

	s.Equal(1, n)
	s.ErrorContains(err, "booking 8")
	s.publisher.AssertNumberOfCalls(s.T(), "Publish", 1)
}

func (s *ServiceTestSuite) TestScheduleHousekeeping() {
	sched, err := gocron.NewScheduler()
	s.Require().NoError(err)
	defer sched.Shutdown()

	err = s.service.ScheduleHousekeeping(sched, time.Minute)
	s.Require().NoError(err)

	names := make([]string, 0, 2)
	for _, job := range sched.Jobs() {
		names = append(names, job.Name())
	}

	s.ElementsMatch([]string{completeJobName, cancelJobName}, names)
}
