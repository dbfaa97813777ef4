package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/booking"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/ledger"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/outbox"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/pricing"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/property"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
)

// BookingServiceImpl implements the BookingService interface
type BookingServiceImpl struct {
	bookingRepo  booking.Repository
	propertyRepo property.Repository
	ledgerRepo   ledger.Repository
	outboxRepo   outbox.Repository
	txRunner     TxRunner
	policy       pricing.Policy
	logger       *slog.Logger
}

// NewBookingService creates a new booking settlement service
func NewBookingService(
	logger *slog.Logger,
	bookingRepo booking.Repository,
	propertyRepo property.Repository,
	ledgerRepo ledger.Repository,
	outboxRepo outbox.Repository,
	txRunner TxRunner,
	policy pricing.Policy,
) BookingService {
	return &BookingServiceImpl{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		ledgerRepo:   ledgerRepo,
		outboxRepo:   outboxRepo,
		txRunner:     txRunner,
		policy:       policy,
		logger:       logger,
	}
}

// CreateBooking opens a PENDING booking after validating the property and room
func (s *BookingServiceImpl) CreateBooking(ctx context.Context, tenantID, propertyID, roomID uuid.UUID, checkInDate time.Time) (*booking.Booking, error) {
	prop, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsVerified {
		return nil, booking.ErrInvalidInput{Reason: "property is not verified for bookings"}
	}

	room, err := s.propertyRepo.GetRoom(ctx, propertyID, roomID)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(tenantID, propertyID, room, checkInDate, s.policy)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		"booking_id", b.ID,
		"property_id", propertyID,
		"room_type", room.TypeLabel,
		"total_price", b.TotalPrice,
	)
	return b, nil
}

// GetBooking retrieves a booking by its ID
func (s *BookingServiceImpl) GetBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

// ListBookings retrieves a paginated list of bookings
func (s *BookingServiceImpl) ListBookings(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int64, error) {
	return s.bookingRepo.List(ctx, filter)
}

// AttachPaymentProof records the tenant's payment proof on a pending booking
func (s *BookingServiceImpl) AttachPaymentProof(ctx context.Context, id uuid.UUID, proofRef string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.AttachPaymentProof(proofRef); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Confirm moves a pending booking to CONFIRMED and emits a settlement event
func (s *BookingServiceImpl) Confirm(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Confirm(); err != nil {
		return nil, err
	}

	msg, err := newEventMessage(b, shared.EventBookingConfirmed, nil, correlationID)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.bookingRepo.WithTx(tx).Save(ctx, b); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking confirmed", "booking_id", b.ID, "correlation_id", correlationID)
	return b, nil
}

// Reject moves a pending booking to the terminal REJECTED state
func (s *BookingServiceImpl) Reject(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.Reject(); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("Booking rejected", "booking_id", b.ID)
	return b, nil
}

// ChangeRoom swaps the booked room type on the check-in date and returns the
// price delta for out-of-band reconciliation
func (s *BookingServiceImpl) ChangeRoom(ctx context.Context, id, roomID uuid.UUID) (*booking.Booking, int64, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	room, err := s.propertyRepo.GetRoom(ctx, b.PropertyID, roomID)
	if err != nil {
		return nil, 0, err
	}

	delta, err := b.ChangeRoom(room, time.Now())
	if err != nil {
		return nil, 0, err
	}

	if err := s.bookingRepo.Save(ctx, b); err != nil {
		return nil, 0, err
	}

	s.logger.Info("Booking room changed",
		"booking_id", b.ID,
		"room_type", room.TypeLabel,
		"price_delta", delta,
	)
	return b, delta, nil
}

// Disburse writes the owner payout, platform fee, and tax reserve records
// atomically with the booking's disbursed flag and a settlement event.
// The amounts come from the booking's creation-time snapshot.
func (s *BookingServiceImpl) Disburse(ctx context.Context, id uuid.UUID, correlationID string) (*booking.Booking, []*ledger.Record, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	prop, err := s.propertyRepo.GetByID(ctx, b.PropertyID)
	if err != nil {
		return nil, nil, err
	}

	if err := b.MarkDisbursed(); err != nil {
		return nil, nil, err
	}

	records := disbursementRecords(b, prop.OwnerID)
	msg, err := newEventMessage(b, shared.EventBookingDisbursed, records, correlationID)
	if err != nil {
		return nil, nil, err
	}

	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.bookingRepo.WithTx(tx).Save(ctx, b); err != nil {
			return err
		}
		if err := s.ledgerRepo.WithTx(tx).Append(ctx, records); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Booking disbursed",
		"booking_id", b.ID,
		"owner_id", prop.OwnerID,
		"owner_payout", records[0].Amount,
		"platform_fee", b.PlatformFee,
		"tax_amount", b.TaxAmount,
		"correlation_id", correlationID,
	)
	return b, records, nil
}

// ManualCheckout ends a confirmed rental early, records the refund
// entitlement, and emits a settlement event
func (s *BookingServiceImpl) ManualCheckout(ctx context.Context, id uuid.UUID, reason booking.CheckoutReason, correlationID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := b.ManualCheckout(reason, s.policy); err != nil {
		return nil, err
	}

	msg, err := newEventMessage(b, shared.EventBookingCheckedOut, nil, correlationID)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := s.bookingRepo.WithTx(tx).Save(ctx, b); err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Booking checked out",
		"booking_id", b.ID,
		"reason", string(reason),
		"refund_amount", b.RefundAmount,
		"correlation_id", correlationID,
	)
	return b, nil
}

// disbursementRecords builds the three settlement legs from the booking's
// snapshotted amounts. The legs always sum to the tenant-paid total.
func disbursementRecords(b *booking.Booking, ownerID uuid.UUID) []*ledger.Record {
	now := time.Now()
	return []*ledger.Record{
		{
			// Owner payouts carry no platform bucket; buckets track the
			// operator's own pools only.
			ID:                 uuid.New(),
			BeneficiaryID:      ownerID,
			Direction:          ledger.DirectionIncome,
			Amount:             b.BasePrice - b.PlatformFee,
			Category:           ledger.CategoryRentDisbursement,
			Description:        fmt.Sprintf("Rent payout for booking %s (%s)", b.ID, b.RoomTypeLabel),
			ReferenceBookingID: b.ID,
			Date:               now,
			CreatedAt:          now,
		},
		{
			ID:                 uuid.New(),
			BeneficiaryID:      ledger.PlatformAccountID,
			Direction:          ledger.DirectionIncome,
			Amount:             b.PlatformFee,
			Category:           ledger.CategoryServiceFee,
			Description:        fmt.Sprintf("Service fee for booking %s", b.ID),
			SourceBucket:       ledger.BucketOperatingCash,
			ReferenceBookingID: b.ID,
			Date:               now,
			CreatedAt:          now,
		},
		{
			ID:                 uuid.New(),
			BeneficiaryID:      ledger.PlatformAccountID,
			Direction:          ledger.DirectionIncome,
			Amount:             b.TaxAmount,
			Category:           ledger.CategoryTax,
			Description:        fmt.Sprintf("Tax collected for booking %s", b.ID),
			SourceBucket:       ledger.BucketTaxReserve,
			ReferenceBookingID: b.ID,
			Date:               now,
			CreatedAt:          now,
		},
	}
}

// newEventMessage wraps the booking's current state into an outbox message
func newEventMessage(b *booking.Booking, eventType shared.EventType, records []*ledger.Record, correlationID string) (*outbox.Message, error) {
	event := &shared.SettlementEvent{
		EventID:        uuid.New(),
		Type:           eventType,
		BookingID:      b.ID,
		PropertyID:     b.PropertyID,
		TenantID:       b.TenantID,
		TotalPrice:     b.TotalPrice,
		RefundAmount:   b.RefundAmount,
		CheckoutReason: string(b.CheckoutReason),
		CorrelationID:  correlationID,
		OccurredAt:     time.Now(),
	}
	for _, r := range records {
		event.Records = append(event.Records, shared.LedgerEntrySnapshot{
			RecordID:      r.ID,
			BeneficiaryID: r.BeneficiaryID,
			Direction:     string(r.Direction),
			Amount:        r.Amount,
			Category:      r.Category,
			SourceBucket:  string(r.SourceBucket),
		})
	}
	return outbox.NewMessage(event)
}
