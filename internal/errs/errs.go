package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Sentinel errors for the parking engine. Lot-full is deliberately not an
// error: allocation returns a nil space and callers render a business
// message.
var (
	ErrTicketNotFound      = cr.New("ticket not found")
	ErrReservationNotFound = cr.New("reservation not found")
	ErrCustomerNotFound    = cr.New("customer not found")
	ErrSpaceNotFound       = cr.New("parking space not found")

	// ErrInvalidTransition marks a space status transition requested from an
	// incompatible status. It indicates a logic or concurrency defect, not a
	// user-recoverable condition.
	ErrInvalidTransition = cr.New("invalid space status transition")

	ErrInsufficientCash = cr.New("insufficient cash tendered")
	ErrTicketNotActive  = cr.New("ticket already resolved")
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

func Is(err, target error) bool {
	return cr.Is(err, target)
}
