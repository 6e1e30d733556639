// Package payment turns verified payment-gateway webhooks into payment
// confirmations for the booking core.
package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/metinatakli/movie-ticket-booking/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const bookingIDMetadataKey = "booking_id"

var (
	// ErrInvalidSignature means the payload was not signed with our webhook secret.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrIgnoredEvent means the event is authentic but does not confirm a payment.
	ErrIgnoredEvent = errors.New("webhook event ignored")
)

// Confirmation is a trusted signal that a booking has been paid.
type Confirmation struct {
	EventID       string
	BookingID     int
	Method        domain.PaymentMethod
	TransactionID string
}

type StripeWebhook struct {
	secret string
}

func NewStripeWebhook(secret string) *StripeWebhook {
	return &StripeWebhook{
		secret: secret,
	}
}

// Parse verifies the Stripe-Signature header of payload and extracts the
// payment confirmation it carries.
func (s *StripeWebhook) Parse(payload []byte, signature string) (*Confirmation, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	var (
		metadata      map[string]string
		transactionID string
	)

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var cs stripe.CheckoutSession
		err = json.Unmarshal(event.Data.Raw, &cs)
		if err != nil {
			return nil, fmt.Errorf("failed to parse checkout session of event %s: %w", event.ID, err)
		}

		if cs.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			return nil, fmt.Errorf("%w: checkout session %s is %s", ErrIgnoredEvent, cs.ID, cs.PaymentStatus)
		}

		metadata = cs.Metadata
		transactionID = cs.ID
		if cs.PaymentIntent != nil && cs.PaymentIntent.ID != "" {
			transactionID = cs.PaymentIntent.ID
		}
	case stripe.EventTypePaymentIntentSucceeded:
		var pi stripe.PaymentIntent
		err = json.Unmarshal(event.Data.Raw, &pi)
		if err != nil {
			return nil, fmt.Errorf("failed to parse payment intent of event %s: %w", event.ID, err)
		}

		metadata = pi.Metadata
		transactionID = pi.ID
	default:
		return nil, fmt.Errorf("%w: %s", ErrIgnoredEvent, event.Type)
	}

	raw, ok := metadata[bookingIDMetadataKey]
	if !ok {
		return nil, fmt.Errorf("%w: event %s has no %s metadata", ErrIgnoredEvent, event.ID, bookingIDMetadataKey)
	}

	bookingID, err := strconv.Atoi(raw)
	if err != nil || bookingID < 1 {
		return nil, fmt.Errorf("event %s carries invalid booking id %q", event.ID, raw)
	}

	return &Confirmation{
		EventID:       event.ID,
		BookingID:     bookingID,
		Method:        domain.PaymentMethodCreditCard,
		TransactionID: transactionID,
	}, nil
}
