package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Filter narrows List queries. Zero-value fields are ignored.
type Filter struct {
	BeneficiaryID uuid.UUID
	Direction     Direction
	SourceBucket  SourceBucket
	Category      string
	From          time.Time
	To            time.Time
	Page          int
	PageSize      int
}

// Repository defines persistence for ledger records. Append is the only
// write path; there is deliberately no update or delete.
type Repository interface {
	// Append inserts the given records as one batch. Callers group the legs
	// of a settlement into a single Append inside a transaction.
	Append(ctx context.Context, records []*Record) error

	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	List(ctx context.Context, filter Filter) ([]*Record, int64, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*Record, error)

	// Summary aggregates the platform position across all records.
	Summary(ctx context.Context) (*Summary, error)

	// WithTx returns a repository whose operations run inside the given
	// transaction, so ledger writes commit atomically with booking updates.
	WithTx(tx pgx.Tx) Repository
}

// ErrRecordNotFound indicates a missing ledger record
type ErrRecordNotFound struct {
	RecordID uuid.UUID
}

func (e ErrRecordNotFound) Error() string {
	return "ledger record not found: " + e.RecordID.String()
}
