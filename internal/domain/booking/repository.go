package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Filter narrows List queries. Zero-value fields are ignored.
type Filter struct {
	TenantID   uuid.UUID
	PropertyID uuid.UUID
	Status     Status
	Page       int
	PageSize   int
}

// Repository defines persistence for bookings. Save enforces optimistic
// locking on Version and returns ErrConcurrentModification when the stored
// row has moved on.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	List(ctx context.Context, filter Filter) ([]*Booking, int64, error)

	// WithTx returns a repository whose operations run inside the given
	// transaction, so booking updates commit atomically with ledger writes.
	WithTx(tx pgx.Tx) Repository
}
