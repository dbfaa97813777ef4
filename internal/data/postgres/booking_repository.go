// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations while maintaining
// transaction safety and proper error handling for the settlement engine.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/booking"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/platform/persistence"
)

// BookingRepository implements the booking.Repository interface for PostgreSQL
type BookingRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewBookingRepository creates a new PostgreSQL booking repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewBookingRepository(logger *slog.Logger, db *persistence.PostgresDB) booking.Repository {
	return &BookingRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing booking updates
// to commit atomically with ledger and outbox writes.
func (r *BookingRepository) WithTx(tx pgx.Tx) booking.Repository {
	return &BookingRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const bookingColumns = `id, tenant_id, property_id, room_type_id, room_type_label,
		check_in_date, check_out_date, base_price, tax_amount, platform_fee, total_price,
		status, payment_proof_ref, is_disbursed, is_checked_out, checkout_reason,
		refund_amount, version, created_at, updated_at`

// Create stores a new booking in the database
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := r.querier.Exec(ctx, query,
		b.ID,
		b.TenantID,
		b.PropertyID,
		b.RoomTypeID,
		b.RoomTypeLabel,
		b.CheckInDate,
		b.CheckOutDate,
		b.BasePrice,
		b.TaxAmount,
		b.PlatformFee,
		b.TotalPrice,
		b.Status,
		b.PaymentProofRef,
		b.IsDisbursed,
		b.IsCheckedOut,
		b.CheckoutReason,
		b.RefundAmount,
		b.Version,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create booking", "error", err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var b booking.Booking
	err := row.Scan(
		&b.ID,
		&b.TenantID,
		&b.PropertyID,
		&b.RoomTypeID,
		&b.RoomTypeLabel,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.BasePrice,
		&b.TaxAmount,
		&b.PlatformFee,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentProofRef,
		&b.IsDisbursed,
		&b.IsCheckedOut,
		&b.CheckoutReason,
		&b.RefundAmount,
		&b.Version,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID retrieves a booking by its ID
func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	b, err := scanBooking(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, booking.ErrBookingNotFound{BookingID: id}
		}
		r.logger.Error("Failed to get booking", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

// Save persists a mutated booking using optimistic locking on the version
// column. Returns ErrConcurrentModification if the stored row has moved on.
func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	query := `
		UPDATE bookings
		SET room_type_id = $1, room_type_label = $2, status = $3, payment_proof_ref = $4,
			is_disbursed = $5, is_checked_out = $6, checkout_reason = $7, refund_amount = $8,
			version = $9, updated_at = $10
		WHERE id = $11 AND version = $12
	`

	result, err := r.querier.Exec(ctx, query,
		b.RoomTypeID,
		b.RoomTypeLabel,
		b.Status,
		b.PaymentProofRef,
		b.IsDisbursed,
		b.IsCheckedOut,
		b.CheckoutReason,
		b.RefundAmount,
		b.Version,
		b.UpdatedAt,
		b.ID,
		b.Version-1, // Check previous version for optimistic locking
	)
	if err != nil {
		r.logger.Error("Failed to save booking", "id", b.ID.String(), "error", err)
		return fmt.Errorf("failed to save booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		return booking.ErrConcurrentModification{BookingID: b.ID}
	}

	return nil
}

// List retrieves a filtered, paginated page of bookings ordered by creation
// time, newest first, along with the total matching count.
func (r *BookingRepository) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int64, error) {
	where := ""
	var args []interface{}

	addClause := func(column string, value interface{}) {
		args = append(args, value)
		if where == "" {
			where = fmt.Sprintf("WHERE %s = $%d", column, len(args))
		} else {
			where += fmt.Sprintf(" AND %s = $%d", column, len(args))
		}
	}

	if filter.TenantID != uuid.Nil {
		addClause("tenant_id", filter.TenantID)
	}
	if filter.PropertyID != uuid.Nil {
		addClause("property_id", filter.PropertyID)
	}
	if filter.Status != "" {
		addClause("status", filter.Status)
	}

	countQuery := "SELECT COUNT(*) FROM bookings " + where
	var total int64
	if err := r.querier.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count bookings", "error", err)
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`
		SELECT `+bookingColumns+`
		FROM bookings
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list bookings", "error", err)
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			r.logger.Error("Failed to scan booking", "error", err)
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over bookings", "error", err)
		return nil, 0, fmt.Errorf("error iterating over bookings: %w", err)
	}

	return bookings, total, nil
}
