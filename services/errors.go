package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindInvalidState
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInvalidState:
		return "INVALID_STATE"
	case KindForbidden:
		return "FORBIDDEN"
	default:
		return "UNKNOWN"
	}
}

// Error is a failure the caller can act on. Anything else returned by a
// service is an infrastructure error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

const (
	ErrMsgQuantityPositive  = "quantity must be greater than 0"
	ErrMsgQuantityNegative  = "quantity cannot be negative"
	ErrMsgDishNotFound      = "dish not found"
	ErrMsgDishUnavailable   = "dish is not available"
	ErrMsgCartNotFound      = "cart not found"
	ErrMsgCartItemNotFound  = "cart item not found"
	ErrMsgCartEmpty         = "cart is empty"
	ErrMsgOrderNotFound     = "order not found"
	ErrMsgAddressNotFound   = "address not found"
	ErrMsgDriverNotFound    = "driver not found"
	ErrMsgRestaurantMissing = "restaurant not found"
	ErrMsgInProgress        = "request already in progress"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewValidationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewNotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

func NewInvalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// IsKind reports whether err is a service error of kind k.
func IsKind(err error, k Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == k
}

// notFoundOr maps gorm.ErrRecordNotFound to a NotFound error with msg and
// wraps anything else with op.
func notFoundOr(err error, msg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
