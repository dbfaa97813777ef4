package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/booking"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testBooking() *booking.Booking {
	now := time.Now()
	return &booking.Booking{
		ID:            uuid.New(),
		TenantID:      uuid.New(),
		PropertyID:    uuid.New(),
		RoomTypeID:    uuid.New(),
		RoomTypeLabel: "Standard",
		CheckInDate:   now,
		CheckOutDate:  now.AddDate(0, 1, 0),
		BasePrice:     2_500_000,
		TaxAmount:     275_000,
		PlatformFee:   87_500,
		TotalPrice:    2_775_000,
		Status:        booking.StatusPending,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func bookingRow(b *booking.Booking) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "tenant_id", "property_id", "room_type_id", "room_type_label",
		"check_in_date", "check_out_date", "base_price", "tax_amount", "platform_fee", "total_price",
		"status", "payment_proof_ref", "is_disbursed", "is_checked_out", "checkout_reason",
		"refund_amount", "version", "created_at", "updated_at",
	}).AddRow(
		b.ID, b.TenantID, b.PropertyID, b.RoomTypeID, b.RoomTypeLabel,
		b.CheckInDate, b.CheckOutDate, b.BasePrice, b.TaxAmount, b.PlatformFee, b.TotalPrice,
		b.Status, b.PaymentProofRef, b.IsDisbursed, b.IsCheckedOut, b.CheckoutReason,
		b.RefundAmount, b.Version, b.CreatedAt, b.UpdatedAt,
	)
}

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &BookingRepository{querier: mock, logger: newTestLogger()}
	b := testBooking()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(b.ID, b.TenantID, b.PropertyID, b.RoomTypeID, b.RoomTypeLabel,
				b.CheckInDate, b.CheckOutDate, b.BasePrice, b.TaxAmount, b.PlatformFee, b.TotalPrice,
				b.Status, b.PaymentProofRef, b.IsDisbursed, b.IsCheckedOut, b.CheckoutReason,
				b.RefundAmount, b.Version, b.CreatedAt, b.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(ctx, b)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		expectedErr := errors.New("db error")
		mock.ExpectExec(`INSERT INTO bookings`).
			WithArgs(b.ID, b.TenantID, b.PropertyID, b.RoomTypeID, b.RoomTypeLabel,
				b.CheckInDate, b.CheckOutDate, b.BasePrice, b.TaxAmount, b.PlatformFee, b.TotalPrice,
				b.Status, b.PaymentProofRef, b.IsDisbursed, b.IsCheckedOut, b.CheckoutReason,
				b.RefundAmount, b.Version, b.CreatedAt, b.UpdatedAt).
			WillReturnError(expectedErr)

		err := repo.Create(ctx, b)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")
		assert.ErrorIs(t, err, expectedErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &BookingRepository{querier: mock, logger: newTestLogger()}
	b := testBooking()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(b.ID).
			WillReturnRows(bookingRow(b))

		got, err := repo.GetByID(ctx, b.ID)
		assert.NoError(t, err)
		assert.Equal(t, b, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetByID(ctx, id)
		assert.Nil(t, got)
		var notFoundErr booking.ErrBookingNotFound
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, id, notFoundErr.BookingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_Save(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &BookingRepository{querier: mock, logger: newTestLogger()}
	b := testBooking()
	b.Status = booking.StatusConfirmed
	b.PaymentProofRef = "proofs/tf-001.jpg"
	b.Version = 3

	saveArgs := func() []interface{} {
		return []interface{}{
			b.RoomTypeID, b.RoomTypeLabel, b.Status, b.PaymentProofRef,
			b.IsDisbursed, b.IsCheckedOut, b.CheckoutReason, b.RefundAmount,
			b.Version, b.UpdatedAt, b.ID, b.Version - 1,
		}
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(saveArgs()...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Save(ctx, b)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent modification", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(saveArgs()...).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.Save(ctx, b)
		var concurrentErr booking.ErrConcurrentModification
		require.ErrorAs(t, err, &concurrentErr)
		assert.Equal(t, b.ID, concurrentErr.BookingID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_List(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &BookingRepository{querier: mock, logger: newTestLogger()}
	b := testBooking()

	t.Run("filtered by status", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WithArgs(booking.StatusPending).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(booking.StatusPending, 20, 0).
			WillReturnRows(bookingRow(b))

		bookings, total, err := repo.List(ctx, booking.Filter{Status: booking.StatusPending})
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, bookings, 1)
		assert.Equal(t, b.ID, bookings[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count failure", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
			WillReturnError(errors.New("db error"))

		_, _, err := repo.List(ctx, booking.Filter{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count bookings")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_WithTx(t *testing.T) {
	repo := &BookingRepository{querier: nil, logger: newTestLogger()}

	txRepo := repo.WithTx(pgx.Tx(nil))

	require.IsType(t, &BookingRepository{}, txRepo)
	assert.Equal(t, repo.logger, txRepo.(*BookingRepository).logger)
}
