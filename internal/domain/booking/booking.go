// Package booking implements the booking lifecycle state machine. A booking
// moves PENDING -> CONFIRMED -> CHECKED_OUT, or PENDING -> REJECTED; both
// REJECTED and CHECKED_OUT are terminal. All monetary fields are snapshotted
// once at creation from the room price and the settlement policy, and are
// never recomputed afterwards.
package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/pricing"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/property"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusRejected   Status = "REJECTED"
	StatusCheckedOut Status = "CHECKED_OUT"
)

// CheckoutReason identifies who is at fault on a manual checkout. It selects
// which deduction rate applies to the tenant refund.
type CheckoutReason string

const (
	CheckoutOwnerFault  CheckoutReason = "OWNER_FAULT"
	CheckoutTenantFault CheckoutReason = "TENANT_FAULT"
)

// Valid reports whether the reason is one of the known fault assignments.
func (r CheckoutReason) Valid() bool {
	return r == CheckoutOwnerFault || r == CheckoutTenantFault
}

// Booking represents one tenant's reservation of one room type at one
// property for one rental period. Version supports optimistic locking in
// the repository; every mutation increments it.
type Booking struct {
	ID              uuid.UUID      `json:"id"`
	TenantID        uuid.UUID      `json:"tenant_id"`
	PropertyID      uuid.UUID      `json:"property_id"`
	RoomTypeID      uuid.UUID      `json:"room_type_id"`
	RoomTypeLabel   string         `json:"room_type_label"`
	CheckInDate     time.Time      `json:"check_in_date"`
	CheckOutDate    time.Time      `json:"check_out_date"`
	BasePrice       int64          `json:"base_price"` // Whole rupiah, snapshotted at creation
	TaxAmount       int64          `json:"tax_amount"`
	PlatformFee     int64          `json:"platform_fee"`
	TotalPrice      int64          `json:"total_price"`
	Status          Status         `json:"status"`
	PaymentProofRef string         `json:"payment_proof_ref,omitempty"`
	IsDisbursed     bool           `json:"is_disbursed"`
	IsCheckedOut    bool           `json:"is_checked_out"`
	CheckoutReason  CheckoutReason `json:"checkout_reason,omitempty"`
	RefundAmount    int64          `json:"refund_amount,omitempty"`
	Version         int            `json:"version"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewBooking creates a PENDING booking for the given room, snapshotting the
// room price and all derived amounts. The checkout date is the check-in date
// plus one billing period of the room.
func NewBooking(tenantID, propertyID uuid.UUID, room *property.Room, checkInDate time.Time, policy pricing.Policy) (*Booking, error) {
	if tenantID == uuid.Nil {
		return nil, ErrInvalidInput{Reason: "tenant id is required"}
	}
	if checkInDate.IsZero() {
		return nil, ErrInvalidInput{Reason: "check-in date is required"}
	}
	if !room.HasStock() {
		return nil, ErrInvalidInput{Reason: "room type is fully booked"}
	}
	if room.Price <= 0 {
		return nil, ErrInvalidInput{Reason: "room price must be positive"}
	}
	if !room.BillingPeriod.Valid() {
		return nil, ErrInvalidInput{Reason: "unknown billing period: " + string(room.BillingPeriod)}
	}

	now := time.Now()
	return &Booking{
		ID:            uuid.New(),
		TenantID:      tenantID,
		PropertyID:    propertyID,
		RoomTypeID:    room.ID,
		RoomTypeLabel: room.TypeLabel,
		CheckInDate:   checkInDate,
		CheckOutDate:  room.BillingPeriod.Next(checkInDate),
		BasePrice:     room.Price,
		TaxAmount:     policy.Tax(room.Price),
		PlatformFee:   policy.PlatformFee(room.Price),
		TotalPrice:    policy.TotalPrice(room.Price),
		Status:        StatusPending,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (b *Booking) touch() {
	b.UpdatedAt = time.Now()
	b.Version++
}

// AttachPaymentProof records the tenant's payment proof reference. Only a
// pending booking accepts proof; confirmation is gated on its presence.
func (b *Booking) AttachPaymentProof(proofRef string) error {
	if b.Status != StatusPending {
		return ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpAttachPaymentProof}
	}
	if proofRef == "" {
		return ErrInvalidInput{Reason: "payment proof reference is required"}
	}

	b.PaymentProofRef = proofRef
	b.touch()
	return nil
}

// Confirm moves a pending booking to CONFIRMED. Confirmation is blocked
// until a payment proof has been attached; money does not move here.
func (b *Booking) Confirm() error {
	if b.Status != StatusPending {
		return ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpConfirm}
	}
	if b.PaymentProofRef == "" {
		return ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpConfirm, Detail: "payment proof not attached"}
	}

	b.Status = StatusConfirmed
	b.touch()
	return nil
}

// Reject moves a pending booking to the terminal REJECTED state.
func (b *Booking) Reject() error {
	if b.Status != StatusPending {
		return ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpReject}
	}

	b.Status = StatusRejected
	b.touch()
	return nil
}

// MarkDisbursed flags the booking's owner payout as recorded. The caller
// must persist this together with the ledger entries in one transaction;
// a booking can be disbursed at most once.
func (b *Booking) MarkDisbursed() error {
	if b.Status != StatusConfirmed || b.IsCheckedOut {
		return ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpDisburse}
	}
	if b.IsDisbursed {
		return ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpDisburse, Detail: "already disbursed"}
	}

	b.IsDisbursed = true
	b.touch()
	return nil
}

// ManualCheckout ends a confirmed rental early and computes the tenant
// refund from the fault assignment. Refund issuance itself is a manual act
// outside this engine; only the entitlement is recorded here.
func (b *Booking) ManualCheckout(reason CheckoutReason, policy pricing.Policy) error {
	if b.Status != StatusConfirmed || b.IsCheckedOut {
		return ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpManualCheckout}
	}
	if !reason.Valid() {
		return ErrInvalidInput{Reason: "unknown checkout reason: " + string(reason)}
	}

	if reason == CheckoutOwnerFault {
		b.RefundAmount = policy.RefundForOwnerFault(b.TotalPrice)
	} else {
		b.RefundAmount = policy.RefundForTenantFault(b.TotalPrice)
	}

	b.Status = StatusCheckedOut
	b.IsCheckedOut = true
	b.CheckoutReason = reason
	b.touch()
	return nil
}

// ChangeRoom swaps the booked room type. Allowed only for a confirmed, not
// yet checked-out booking on its check-in date. Prices are NOT reconciled:
// the returned delta (new room price minus snapshotted base price) is
// surfaced to the caller for out-of-band handling.
func (b *Booking) ChangeRoom(room *property.Room, today time.Time) (int64, error) {
	if b.Status != StatusConfirmed || b.IsCheckedOut {
		return 0, ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpChangeRoom}
	}
	if !sameDate(today, b.CheckInDate) {
		return 0, ErrInvalidTransition{BookingID: b.ID, CurrentStatus: b.Status, Operation: OpChangeRoom, Detail: "room change is only allowed on the check-in date"}
	}
	if room.PropertyID != b.PropertyID {
		return 0, ErrInvalidInput{Reason: "room belongs to a different property"}
	}
	if !room.HasStock() {
		return 0, ErrInvalidInput{Reason: "room type is fully booked"}
	}

	priceDelta := room.Price - b.BasePrice
	b.RoomTypeID = room.ID
	b.RoomTypeLabel = room.TypeLabel
	b.touch()
	return priceDelta, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
