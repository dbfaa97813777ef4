package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/ledger"
)

func testRecords(bookingID uuid.UUID) []*ledger.Record {
	now := time.Now()
	ownerID := uuid.New()
	return []*ledger.Record{
		{
			ID: uuid.New(), BeneficiaryID: ownerID, Direction: ledger.DirectionIncome,
			Amount: 2_412_500, Category: ledger.CategoryRentDisbursement, Description: "Rent payout",
			ReferenceBookingID: bookingID, Date: now, CreatedAt: now,
		},
		{
			ID: uuid.New(), BeneficiaryID: ledger.PlatformAccountID, Direction: ledger.DirectionIncome,
			Amount: 87_500, Category: ledger.CategoryServiceFee, Description: "Service fee",
			SourceBucket: ledger.BucketOperatingCash, ReferenceBookingID: bookingID, Date: now, CreatedAt: now,
		},
		{
			ID: uuid.New(), BeneficiaryID: ledger.PlatformAccountID, Direction: ledger.DirectionIncome,
			Amount: 275_000, Category: ledger.CategoryTax, Description: "Tax collected",
			SourceBucket: ledger.BucketTaxReserve, ReferenceBookingID: bookingID, Date: now, CreatedAt: now,
		},
	}
}

func recordRows(records []*ledger.Record) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{
		"id", "beneficiary_id", "direction", "amount", "category", "description",
		"source_bucket", "reference_booking_id", "date", "created_at",
	})
	for _, r := range records {
		ref := r.ReferenceBookingID
		var bucket *ledger.SourceBucket
		if r.SourceBucket != "" {
			b := r.SourceBucket
			bucket = &b
		}
		rows.AddRow(r.ID, r.BeneficiaryID, r.Direction, r.Amount, r.Category, r.Description,
			bucket, &ref, r.Date, r.CreatedAt)
	}
	return rows
}

func TestLedgerRepository_Append(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &LedgerRepository{querier: mock, logger: newTestLogger()}
	bookingID := uuid.New()
	records := testRecords(bookingID)

	t.Run("success", func(t *testing.T) {
		for _, r := range records {
			mock.ExpectExec(`INSERT INTO ledger_records`).
				WithArgs(r.ID, r.BeneficiaryID, r.Direction, r.Amount, r.Category, r.Description,
					nullableBucket(r.SourceBucket), r.ReferenceBookingID, r.Date, r.CreatedAt).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))
		}

		err := repo.Append(ctx, records)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure stops the batch", func(t *testing.T) {
		r := records[0]
		mock.ExpectExec(`INSERT INTO ledger_records`).
			WithArgs(r.ID, r.BeneficiaryID, r.Direction, r.Amount, r.Category, r.Description,
				nullableBucket(r.SourceBucket), r.ReferenceBookingID, r.Date, r.CreatedAt).
			WillReturnError(errors.New("db error"))

		err := repo.Append(ctx, records)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to append ledger record")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &LedgerRepository{querier: mock, logger: newTestLogger()}

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM ledger_records`).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetByID(ctx, id)
		assert.Nil(t, got)
		var notFoundErr ledger.ErrRecordNotFound
		require.ErrorAs(t, err, &notFoundErr)
		assert.Equal(t, id, notFoundErr.RecordID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerRepository_ListByBooking(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &LedgerRepository{querier: mock, logger: newTestLogger()}
	bookingID := uuid.New()
	records := testRecords(bookingID)

	mock.ExpectQuery(`SELECT (.+) FROM ledger_records`).
		WithArgs(bookingID).
		WillReturnRows(recordRows(records))

	got, err := repo.ListByBooking(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ledger.CategoryRentDisbursement, got[0].Category)
	assert.Equal(t, bookingID, got[0].ReferenceBookingID)
	assert.Empty(t, got[0].SourceBucket)
	assert.Equal(t, ledger.BucketOperatingCash, got[1].SourceBucket)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_Summary(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &LedgerRepository{querier: mock, logger: newTestLogger()}

	t.Run("success", func(t *testing.T) {
		// Operating cash counts service fee income by category, so owner
		// payouts and ad hoc operator income never inflate it
		mock.ExpectQuery(`WHEN category = 'Service Fee' AND direction = 'INCOME' THEN amount`).
			WillReturnRows(pgxmock.NewRows([]string{"operating_cash", "tax_reserve", "total_disbursed"}).
				AddRow(int64(1_250_000), int64(825_000), int64(7_237_500)))

		summary, err := repo.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1_250_000), summary.OperatingCash)
		assert.Equal(t, int64(825_000), summary.TaxReserve)
		assert.Equal(t, int64(7_237_500), summary.TotalDisbursed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		mock.ExpectQuery(`SELECT`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Summary(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to aggregate ledger summary")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerRepository_List(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &LedgerRepository{querier: mock, logger: newTestLogger()}
	bookingID := uuid.New()
	records := testRecords(bookingID)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ledger_records`).
		WithArgs(ledger.BucketTaxReserve).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`SELECT (.+) FROM ledger_records`).
		WithArgs(ledger.BucketTaxReserve, 20, 0).
		WillReturnRows(recordRows(records[2:]))

	got, total, err := repo.List(ctx, ledger.Filter{SourceBucket: ledger.BucketTaxReserve})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, ledger.CategoryTax, got[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}
