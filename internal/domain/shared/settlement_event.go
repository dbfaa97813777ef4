package shared

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies what settlement fact an event carries
type EventType string

const (
	EventBookingConfirmed  EventType = "BOOKING_CONFIRMED"
	EventBookingDisbursed  EventType = "BOOKING_DISBURSED"
	EventBookingCheckedOut EventType = "BOOKING_CHECKED_OUT"
)

// LedgerEntrySnapshot is a denormalized copy of a ledger record embedded in
// a settlement event, so downstream consumers never query Postgres.
type LedgerEntrySnapshot struct {
	RecordID      uuid.UUID `json:"record_id"`
	BeneficiaryID uuid.UUID `json:"beneficiary_id"`
	Direction     string    `json:"direction"`
	Amount        int64     `json:"amount"`
	Category      string    `json:"category"`
	SourceBucket  string    `json:"source_bucket,omitempty"`
}

// SettlementEvent defines a Kafka message describing one completed
// settlement action. EventID makes projection idempotent.
type SettlementEvent struct {
	EventID        uuid.UUID             `json:"event_id"`
	Type           EventType             `json:"type"`
	BookingID      uuid.UUID             `json:"booking_id"`
	PropertyID     uuid.UUID             `json:"property_id"`
	TenantID       uuid.UUID             `json:"tenant_id"`
	TotalPrice     int64                 `json:"total_price"`
	Records        []LedgerEntrySnapshot `json:"records,omitempty"`
	RefundAmount   int64                 `json:"refund_amount,omitempty"`
	CheckoutReason string                `json:"checkout_reason,omitempty"`
	CorrelationID  string                `json:"correlation_id"`
	OccurredAt     time.Time             `json:"occurred_at"`
}
