package domain

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

func (s PaymentStatus) Valid() bool {
	return slices.Contains(PaymentStatuses, s)
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodMobileMoney,
	PaymentMethodBankTransfer,
}

func (m PaymentMethod) Valid() bool {
	return slices.Contains(PaymentMethods, m)
}

type Payment struct {
	ID        int
	BookingID int
	// UserID owns the paid booking.
	UserID        int
	Method        PaymentMethod
	TransactionID *string
	Amount        decimal.Decimal
	Currency      string
	Status        PaymentStatus
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type PaymentFilter struct {
	UserID *int
	Status *PaymentStatus
	Pagination
}

type PaymentRepository interface {
	GetById(ctx context.Context, id int) (*Payment, error)
	GetByBookingId(ctx context.Context, bookingID int) (*Payment, error)
	GetAll(ctx context.Context, filter PaymentFilter) ([]Payment, *Metadata, error)
	// Upsert creates the booking's payment or overwrites the existing one.
	Upsert(ctx context.Context, payment *Payment) error
	UpdateStatus(ctx context.Context, bookingID int, status PaymentStatus) error
}
