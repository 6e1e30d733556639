package booking

import (
	"context"
	"errors"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func paidPayment() *domain.Payment {
	paidAt := fixedNow

	return &domain.Payment{
		ID:        3,
		BookingID: 7,
		UserID:    customer.UserID,
		Method:    domain.PaymentMethodCash,
		Amount:    decimal.NewFromInt(25000),
		Currency:  "USD",
		Status:    domain.PaymentStatusCompleted,
		PaidAt:    &paidAt,
	}
}

func (s *ServiceTestSuite) TestGetPayment() {
	tests := []struct {
		name      string
		actor     domain.Actor
		paymentID int
		setupMock func()
		wantKind  error
		wantErr   bool
	}{
		{
			name:      "owner reads the payment of their booking",
			actor:     customer,
			paymentID: 3,
			setupMock: func() {
				s.payments.On("GetById", mock.Anything, 3).Return(paidPayment(), nil)
			},
		},
		{
			name:      "admin reads any payment",
			actor:     admin,
			paymentID: 3,
			setupMock: func() {
				s.payments.On("GetById", mock.Anything, 3).Return(paidPayment(), nil)
			},
		},
		{
			name:      "another customer's payment is reported as missing",
			actor:     stranger,
			paymentID: 3,
			setupMock: func() {
				s.payments.On("GetById", mock.Anything, 3).Return(paidPayment(), nil)
			},
			wantKind: domain.ErrNotFound,
		},
		{
			name:      "unknown payment",
			actor:     customer,
			paymentID: 42,
			setupMock: func() {
				s.payments.On("GetById", mock.Anything, 42).Return(nil, domain.ErrRecordNotFound)
			},
			wantKind: domain.ErrNotFound,
		},
		{
			name:      "storage failure is not a domain error",
			actor:     customer,
			paymentID: 3,
			setupMock: func() {
				s.payments.On("GetById", mock.Anything, 3).Return(nil, errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMock()

			payment, err := s.service.GetPayment(context.Background(), tt.actor, tt.paymentID)

			switch {
			case tt.wantKind != nil:
				s.assertKind(err, tt.wantKind)
				s.Nil(payment)
			case tt.wantErr:
				s.Require().Error(err)
				var bookingErr *domain.BookingError
				s.False(errors.As(err, &bookingErr))
			default:
				s.Require().NoError(err)
				s.Equal(paidPayment(), payment)
			}
		})
	}
}

func (s *ServiceTestSuite) TestListPayments() {
	refunded := domain.PaymentStatusRefunded
	metadata := domain.NewMetadata(1, 1, 10)
	page := domain.Pagination{Page: 1, PageSize: 10}

	s.payments.On("GetAll", mock.Anything, mock.MatchedBy(func(f domain.PaymentFilter) bool {
		return f.UserID != nil && *f.UserID == customer.UserID
	})).Return([]domain.Payment{*paidPayment()}, metadata, nil)
	s.payments.On("GetAll", mock.Anything, mock.MatchedBy(func(f domain.PaymentFilter) bool {
		return f.UserID == nil && f.Status != nil && *f.Status == refunded
	})).Return([]domain.Payment{}, domain.NewMetadata(0, 1, 10), nil)

	payments, meta, err := s.service.ListPayments(context.Background(), customer, domain.PaymentFilter{Pagination: page})
	s.Require().NoError(err)
	s.Len(payments, 1)
	s.Equal(metadata, meta)

	// a customer cannot widen the listing to someone else
	other := stranger.UserID
	payments, _, err = s.service.ListPayments(context.Background(), customer,
		domain.PaymentFilter{UserID: &other, Pagination: page})
	s.Require().NoError(err)
	s.Len(payments, 1)

	payments, _, err = s.service.ListPayments(context.Background(), admin,
		domain.PaymentFilter{Status: &refunded, Pagination: page})
	s.Require().NoError(err)
	s.Empty(payments)

	bogus := domain.PaymentStatus("chargeback")
	_, _, err = s.service.ListPayments(context.Background(), admin,
		domain.PaymentFilter{Status: &bogus, Pagination: page})
	s.assertKind(err, domain.ErrInvalidRequest)

	_, _, err = s.service.ListPayments(context.Background(), admin,
		domain.PaymentFilter{Pagination: domain.Pagination{Page: 1, PageSize: 101}})
	s.assertKind(err, domain.ErrInvalidRequest)
}
