package validator

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-ticket-booking/internal/domain"
)

const (
	ErrRequired      = "is required"
	ErrMinValue      = "must be greater than or equal to %s"
	ErrMaxValue      = "must be less than or equal to %s"
	ErrGreaterThan   = "must be greater than %s"
	ErrMinItems      = "must contain at least %s item(s)"
	ErrMaxItems      = "must contain at most %s item(s)"
	ErrMinLength     = "must be at least %s characters long"
	ErrMaxLength     = "must be at most %s characters long"
	ErrPaymentMethod = "must be one of cash, credit_card, debit_card, mobile_money, bank_transfer"
	ErrBookingStatus = "must be one of pending, confirmed, cancelled, completed"
	ErrPaymentStatus = "must be one of pending, completed, failed, refunded"
	ErrInvalid       = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("payment_method", validatePaymentMethod)
	validator.RegisterValidation("booking_status", validateBookingStatus)
	validator.RegisterValidation("payment_status", validatePaymentStatus)

	return validator
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return domain.PaymentMethod(fl.Field().String()).Valid()
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	return domain.BookingStatus(fl.Field().String()).Valid()
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	return domain.PaymentStatus(fl.Field().String()).Valid()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	kind := err.Kind()
	isCollection := kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map
	isString := kind == reflect.String

	switch err.Tag() {
	case "required":
		return ErrRequired
	case "gt":
		return fmt.Sprintf(ErrGreaterThan, err.Param())
	case "min":
		switch {
		case isCollection:
			return fmt.Sprintf(ErrMinItems, err.Param())
		case isString:
			return fmt.Sprintf(ErrMinLength, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		switch {
		case isCollection:
			return fmt.Sprintf(ErrMaxItems, err.Param())
		case isString:
			return fmt.Sprintf(ErrMaxLength, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "payment_method":
		return ErrPaymentMethod
	case "booking_status":
		return ErrBookingStatus
	case "payment_status":
		return ErrPaymentStatus
	default:
		return ErrInvalid
	}
}
