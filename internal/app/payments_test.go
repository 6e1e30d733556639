package app

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/movie-ticket-booking/api"
	"github.com/metinatakli/movie-ticket-booking/internal/booking"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/metinatakli/movie-ticket-booking/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentsTestSuite struct {
	suite.Suite
	app            *Application
	bookingService *MockBookingService
}

func (s *PaymentsTestSuite) SetupTest() {
	s.bookingService = new(MockBookingService)
	s.app = newTestApplication(func(a *Application) {
		a.bookingService = s.bookingService
	})
}

func TestPaymentsSuite(t *testing.T) {
	suite.Run(t, new(PaymentsTestSuite))
}

func (s *PaymentsTestSuite) TestProcessPaymentHandler() {
	paidAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           any
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "unknown method",
			body:           api.ProcessPaymentRequest{BookingId: 7, Method: "cheque"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrPaymentMethod,
		},
		{
			name:           "missing booking",
			body:           api.ProcessPaymentRequest{Method: "cash"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrRequired,
		},
		{
			name: "booking not visible",
			body: api.ProcessPaymentRequest{BookingId: 8, Method: "cash"},
			setupMock: func() {
				s.bookingService.On("ProcessPayment", mock.Anything, customer, booking.ProcessPaymentInput{
					BookingID: 8,
					Method:    domain.PaymentMethodCash,
				}).Return(nil, domain.NewError(domain.ErrNotFound, "booking not found"))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "booking not found",
		},
		{
			name: "already confirmed",
			body: api.ProcessPaymentRequest{BookingId: 7, Method: "cash"},
			setupMock: func() {
				s.bookingService.On("ProcessPayment", mock.Anything, customer, mock.Anything).
					Return(nil, domain.NewError(domain.ErrInvalidState, "booking is already confirmed"))
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "booking is already confirmed",
		},
		{
			name: "payment recorded",
			body: api.ProcessPaymentRequest{BookingId: 7, Method: "credit_card", TransactionId: ptr("txn_1")},
			setupMock: func() {
				s.bookingService.On("ProcessPayment", mock.Anything, customer, booking.ProcessPaymentInput{
					BookingID:     7,
					Method:        domain.PaymentMethodCreditCard,
					TransactionID: ptr("txn_1"),
				}).Return(&domain.Payment{
					ID:            1,
					BookingID:     7,
					Method:        domain.PaymentMethodCreditCard,
					TransactionID: ptr("txn_1"),
					Amount:        decimal.RequireFromString("250.00"),
					Currency:      "USD",
					Status:        domain.PaymentStatusCompleted,
					PaidAt:        &paidAt,
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/payments", tt.body)
			r = setupTestSession(s.T(), s.app, r, customer)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.PaymentResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal("completed", resp.Status)
				s.Equal("USD", resp.Currency)
				s.True(decimal.RequireFromString("250").Equal(resp.Amount))
			} else {
				checkErrorResponse(s.T(), w, struct {
					wantStatus     int
					wantErrMessage string
				}{tt.wantStatus, tt.wantErrMessage})
			}

			s.bookingService.AssertExpectations(s.T())
		})
	}
}

func testPayment() domain.Payment {
	paidAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	return domain.Payment{
		ID:        4,
		BookingID: 7,
		UserID:    customer.UserID,
		Method:    domain.PaymentMethodCash,
		Amount:    decimal.RequireFromString("250.00"),
		Currency:  "USD",
		Status:    domain.PaymentStatusRefunded,
		PaidAt:    &paidAt,
		CreatedAt: paidAt,
	}
}

func (s *PaymentsTestSuite) TestListPaymentsHandler() {
	refunded := domain.PaymentStatusRefunded

	tests := []struct {
		name           string
		actor          domain.Actor
		query          string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantPayments   int
	}{
		{
			name:           "unknown status",
			actor:          customer,
			query:          "?status=chargeback",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrPaymentStatus,
		},
		{
			name:           "non numeric page size",
			actor:          customer,
			query:          "?page_size=all",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid page_size parameter",
		},
		{
			name:  "customer lists refunded payments",
			actor: customer,
			query: "?status=refunded",
			setupMock: func() {
				s.bookingService.On("ListPayments", mock.Anything, customer, domain.PaymentFilter{
					Status:     &refunded,
					Pagination: domain.Pagination{Page: DefaultPage, PageSize: DefaultPageSize},
				}).Return([]domain.Payment{testPayment()}, domain.NewMetadata(1, 1, 10), nil)
			},
			wantStatus:   http.StatusOK,
			wantPayments: 1,
		},
		{
			name:  "admin pages through payments",
			actor: admin,
			query: "?page=3&page_size=5",
			setupMock: func() {
				s.bookingService.On("ListPayments", mock.Anything, admin, domain.PaymentFilter{
					Pagination: domain.Pagination{Page: 3, PageSize: 5},
				}).Return([]domain.Payment{}, domain.NewMetadata(10, 3, 5), nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/payments"+tt.query, nil)
			r = setupTestSession(s.T(), s.app, r, tt.actor)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.PaymentsResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Len(resp.Payments, tt.wantPayments)
			} else {
				checkErrorResponse(s.T(), w, struct {
					wantStatus     int
					wantErrMessage string
				}{tt.wantStatus, tt.wantErrMessage})
			}

			s.bookingService.AssertExpectations(s.T())
		})
	}
}

func (s *PaymentsTestSuite) TestGetPaymentHandler() {
	tests := []struct {
		name           string
		path           string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "invalid id",
			path:           "/payments/abc",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid paymentId parameter",
		},
		{
			name:           "zero id",
			path:           "/payments/0",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid paymentId parameter",
		},
		{
			name: "payment of another customer",
			path: "/payments/5",
			setupMock: func() {
				s.bookingService.On("GetPayment", mock.Anything, customer, 5).
					Return(nil, domain.NewError(domain.ErrNotFound, "payment not found"))
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "payment not found",
		},
		{
			name: "own payment",
			path: "/payments/4",
			setupMock: func() {
				p := testPayment()
				s.bookingService.On("GetPayment", mock.Anything, customer, 4).Return(&p, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.path, nil)
			r = setupTestSession(s.T(), s.app, r, customer)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.PaymentResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(4, resp.Id)
				s.Equal(customer.UserID, resp.UserId)
				s.Equal("refunded", resp.Status)
			} else {
				checkErrorResponse(s.T(), w, struct {
					wantStatus     int
					wantErrMessage string
				}{tt.wantStatus, tt.wantErrMessage})
			}

			s.bookingService.AssertExpectations(s.T())
		})
	}
}

func (s *PaymentsTestSuite) TestPaymentsRequireSession() {
	for _, path := range []string{"/payments", "/payments/4"} {
		w, r := executeRequest(s.T(), http.MethodGet, path, nil)

		s.app.Routes().ServeHTTP(w, r)

		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
}
