package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/booking"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/ledger"
)

// TxRunner runs a function inside a Postgres transaction. Satisfied by
// persistence.PostgresDB.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// BookingService defines the interface for booking settlement operations
type BookingService interface {
	// CreateBooking opens a PENDING booking for the given room, snapshotting
	// the room price and derived amounts
	CreateBooking(ctx context.Context, tenantID, propertyID, roomID uuid.UUID, checkInDate time.Time) (*booking.Booking, error)

	// GetBooking retrieves a booking by its ID
	// Returns ErrBookingNotFound if the booking doesn't exist
	GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)

	// ListBookings retrieves a paginated list of bookings
	// Returns bookings, total count, and any error
	ListBookings(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int64, error)

	// AttachPaymentProof records the tenant's payment proof on a pending booking
	AttachPaymentProof(ctx context.Context, id uuid.UUID, proofRef string) (*booking.Booking, error)

	// Confirm moves a pending booking with payment proof to CONFIRMED
	Confirm(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, error)

	// Reject moves a pending booking to the terminal REJECTED state
	Reject(ctx context.Context, id uuid.UUID) (*booking.Booking, error)

	// ChangeRoom swaps the booked room type on the check-in date.
	// Returns the updated booking and the price delta (new minus old) left
	// for out-of-band reconciliation
	ChangeRoom(ctx context.Context, id, roomID uuid.UUID) (*booking.Booking, int64, error)

	// Disburse records the owner payout, platform fee, and tax reserve as
	// three ledger records in one transaction. A booking disburses at most
	// once; a second call returns ErrInvalidTransition
	Disburse(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, []*ledger.Record, error)

	// ManualCheckout ends a confirmed rental early and computes the tenant
	// refund entitlement from the fault assignment
	ManualCheckout(ctx context.Context, id uuid.UUID, reason booking.CheckoutReason, correlationID string) (*booking.Booking, error)
}

// OperatorEntryInput carries a manually recorded platform ledger line,
// such as a tax remittance or an office expense.
type OperatorEntryInput struct {
	Direction    ledger.Direction
	Amount       int64
	Category     string
	Description  string
	SourceBucket ledger.SourceBucket
	Date         time.Time
}

// LedgerService defines the interface for ledger reporting operations
type LedgerService interface {
	// Summary aggregates the platform financial position
	Summary(ctx context.Context) (*ledger.Summary, error)

	// ListRecords retrieves a paginated, filtered list of ledger records
	ListRecords(ctx context.Context, filter ledger.Filter) ([]*ledger.Record, int64, error)

	// ListByBooking retrieves the settlement records of one booking
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ledger.Record, error)

	// RecordOperatorEntry appends a manually entered platform record
	RecordOperatorEntry(ctx context.Context, input OperatorEntryInput) (*ledger.Record, error)
}
