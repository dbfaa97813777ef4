// Package reporting holds the read model projected from settlement events.
// Documents live in MongoDB and serve dashboards without touching the
// transactional Postgres store.
package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
)

// RecordDocument is the projected form of one ledger record
type RecordDocument struct {
	RecordID      uuid.UUID `bson:"record_id" json:"record_id"`
	BeneficiaryID uuid.UUID `bson:"beneficiary_id" json:"beneficiary_id"`
	Direction     string    `bson:"direction" json:"direction"`
	Amount        int64     `bson:"amount" json:"amount"`
	Category      string    `bson:"category" json:"category"`
	SourceBucket  string    `bson:"source_bucket,omitempty" json:"source_bucket,omitempty"`
}

// SettlementDocument is one projected settlement event. EventID is unique;
// replayed events are dropped by the repository.
type SettlementDocument struct {
	EventID        uuid.UUID        `bson:"event_id" json:"event_id"`
	Type           shared.EventType `bson:"type" json:"type"`
	BookingID      uuid.UUID        `bson:"booking_id" json:"booking_id"`
	PropertyID     uuid.UUID        `bson:"property_id" json:"property_id"`
	TenantID       uuid.UUID        `bson:"tenant_id" json:"tenant_id"`
	TotalPrice     int64            `bson:"total_price" json:"total_price"`
	Records        []RecordDocument `bson:"records,omitempty" json:"records,omitempty"`
	RefundAmount   int64            `bson:"refund_amount,omitempty" json:"refund_amount,omitempty"`
	CheckoutReason string           `bson:"checkout_reason,omitempty" json:"checkout_reason,omitempty"`
	CorrelationID  string           `bson:"correlation_id" json:"correlation_id"`
	OccurredAt     time.Time        `bson:"occurred_at" json:"occurred_at"`
	ProjectedAt    time.Time        `bson:"projected_at" json:"projected_at"`
}

// FromEvent builds the projected document for a settlement event
func FromEvent(event *shared.SettlementEvent) *SettlementDocument {
	doc := &SettlementDocument{
		EventID:        event.EventID,
		Type:           event.Type,
		BookingID:      event.BookingID,
		PropertyID:     event.PropertyID,
		TenantID:       event.TenantID,
		TotalPrice:     event.TotalPrice,
		RefundAmount:   event.RefundAmount,
		CheckoutReason: event.CheckoutReason,
		CorrelationID:  event.CorrelationID,
		OccurredAt:     event.OccurredAt,
		ProjectedAt:    time.Now(),
	}
	for _, r := range event.Records {
		doc.Records = append(doc.Records, RecordDocument{
			RecordID:      r.RecordID,
			BeneficiaryID: r.BeneficiaryID,
			Direction:     r.Direction,
			Amount:        r.Amount,
			Category:      r.Category,
			SourceBucket:  r.SourceBucket,
		})
	}
	return doc
}

// Repository defines persistence for the settlement read model
type Repository interface {
	// Insert stores a projected event. Returns ErrDuplicateEvent when a
	// document with the same event ID already exists.
	Insert(ctx context.Context, doc *SettlementDocument) error

	// GetByEventID retrieves a projected event by its event ID.
	// Returns ErrEventNotFound if no document exists.
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*SettlementDocument, error)

	// ListByBooking retrieves the projected history of one booking, oldest first
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*SettlementDocument, error)

	// ListByTimeRange retrieves paginated events within the window, newest first
	ListByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*SettlementDocument, error)
}

// ErrEventNotFound indicates a missing projected event
type ErrEventNotFound struct {
	EventID uuid.UUID
}

func (e ErrEventNotFound) Error() string {
	return "projected settlement event not found: " + e.EventID.String()
}

// ErrDuplicateEvent indicates event uniqueness violation on projection
type ErrDuplicateEvent struct {
	EventID uuid.UUID
}

func (e ErrDuplicateEvent) Error() string {
	return "settlement event already projected: " + e.EventID.String()
}
