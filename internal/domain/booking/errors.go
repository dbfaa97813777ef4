package booking

import (
	"fmt"

	"github.com/google/uuid"
)

// Operation names a settlement action for error reporting.
type Operation string

const (
	OpAttachPaymentProof Operation = "attach_payment_proof"
	OpConfirm            Operation = "confirm"
	OpReject             Operation = "reject"
	OpDisburse           Operation = "disburse"
	OpManualCheckout     Operation = "manual_checkout"
	OpChangeRoom         Operation = "change_room"
)

// ErrBookingNotFound indicates a missing booking
type ErrBookingNotFound struct {
	BookingID uuid.UUID
}

func (e ErrBookingNotFound) Error() string {
	return "booking not found: " + e.BookingID.String()
}

// ErrInvalidTransition indicates an operation that is not permitted in the
// booking's current lifecycle state. The booking is left unchanged.
type ErrInvalidTransition struct {
	BookingID     uuid.UUID
	CurrentStatus Status
	Operation     Operation
	Detail        string
}

func (e ErrInvalidTransition) Error() string {
	msg := fmt.Sprintf("booking %s: cannot %s in status %s", e.BookingID, e.Operation, e.CurrentStatus)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ErrInvalidInput indicates a request rejected before any state was touched
type ErrInvalidInput struct {
	Reason string
}

func (e ErrInvalidInput) Error() string {
	return "invalid input: " + e.Reason
}

// ErrConcurrentModification indicates an optimistic lock failure: the booking
// row changed between load and save. The caller may reload and retry.
type ErrConcurrentModification struct {
	BookingID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "booking modified concurrently: " + e.BookingID.String()
}
