package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/ledger"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/platform/persistence"
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL.
// Records are append-only; the repository exposes no update or delete.
type LedgerRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so ledger writes commit
// atomically with booking updates.
func (r *LedgerRepository) WithTx(tx pgx.Tx) ledger.Repository {
	return &LedgerRepository{
		querier: tx,
		logger:  r.logger,
	}
}

const ledgerColumns = `id, beneficiary_id, direction, amount, category, description,
		source_bucket, reference_booking_id, date, created_at`

// Append inserts the given records as one batch
func (r *LedgerRepository) Append(ctx context.Context, records []*ledger.Record) error {
	query := `
		INSERT INTO ledger_records (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, record := range records {
		_, err := r.querier.Exec(ctx, query,
			record.ID,
			record.BeneficiaryID,
			record.Direction,
			record.Amount,
			record.Category,
			record.Description,
			nullableBucket(record.SourceBucket),
			nullableUUID(record.ReferenceBookingID),
			record.Date,
			record.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to append ledger record", "record_id", record.ID.String(), "error", err)
			return fmt.Errorf("failed to append ledger record: %w", err)
		}
	}

	return nil
}

func nullableUUID(id uuid.UUID) interface{} {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func nullableBucket(bucket ledger.SourceBucket) interface{} {
	if bucket == "" {
		return nil
	}
	return bucket
}

func scanRecord(row pgx.Row) (*ledger.Record, error) {
	var record ledger.Record
	var sourceBucket *ledger.SourceBucket
	var referenceBookingID *uuid.UUID
	err := row.Scan(
		&record.ID,
		&record.BeneficiaryID,
		&record.Direction,
		&record.Amount,
		&record.Category,
		&record.Description,
		&sourceBucket,
		&referenceBookingID,
		&record.Date,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sourceBucket != nil {
		record.SourceBucket = *sourceBucket
	}
	if referenceBookingID != nil {
		record.ReferenceBookingID = *referenceBookingID
	}
	return &record, nil
}

// GetByID retrieves a ledger record by its ID
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Record, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_records
		WHERE id = $1
	`

	record, err := scanRecord(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrRecordNotFound{RecordID: id}
		}
		r.logger.Error("Failed to get ledger record", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get ledger record: %w", err)
	}

	return record, nil
}

// List retrieves a filtered, paginated page of records ordered by date,
// newest first, along with the total matching count.
func (r *LedgerRepository) List(ctx context.Context, filter ledger.Filter) ([]*ledger.Record, int64, error) {
	where := ""
	var args []interface{}

	addClause := func(clause string, value interface{}) {
		args = append(args, value)
		if where == "" {
			where = fmt.Sprintf("WHERE %s $%d", clause, len(args))
		} else {
			where += fmt.Sprintf(" AND %s $%d", clause, len(args))
		}
	}

	if filter.BeneficiaryID != uuid.Nil {
		addClause("beneficiary_id =", filter.BeneficiaryID)
	}
	if filter.Direction != "" {
		addClause("direction =", filter.Direction)
	}
	if filter.SourceBucket != "" {
		addClause("source_bucket =", filter.SourceBucket)
	}
	if filter.Category != "" {
		addClause("category =", filter.Category)
	}
	if !filter.From.IsZero() {
		addClause("date >=", filter.From)
	}
	if !filter.To.IsZero() {
		addClause("date <=", filter.To)
	}

	countQuery := "SELECT COUNT(*) FROM ledger_records " + where
	var total int64
	if err := r.querier.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count ledger records", "error", err)
		return nil, 0, fmt.Errorf("failed to count ledger records: %w", err)
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
		SELECT `+ledgerColumns+`
		FROM ledger_records
		%s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list ledger records", "error", err)
		return nil, 0, fmt.Errorf("failed to list ledger records: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		r.logger.Error("Failed to scan ledger records", "error", err)
		return nil, 0, err
	}

	return records, total, nil
}

// ListByBooking retrieves all settlement records referencing one booking
func (r *LedgerRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ledger.Record, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_records
		WHERE reference_booking_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.querier.Query(ctx, query, bookingID)
	if err != nil {
		r.logger.Error("Failed to list ledger records by booking", "booking_id", bookingID.String(), "error", err)
		return nil, fmt.Errorf("failed to list ledger records by booking: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		r.logger.Error("Failed to scan ledger records", "error", err)
		return nil, err
	}

	return records, nil
}

func collectRecords(rows pgx.Rows) ([]*ledger.Record, error) {
	var records []*ledger.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over ledger records: %w", err)
	}
	return records, nil
}

// Summary aggregates the platform position in a single pass over the ledger.
// Operating cash is service fee income net of operating expenses; the tax
// reserve nets collections against remittances; total disbursed sums
// lifetime rent payouts.
func (r *LedgerRepository) Summary(ctx context.Context) (*ledger.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE
				WHEN category = 'Service Fee' AND direction = 'INCOME' THEN amount
				WHEN source_bucket = 'OPERATING_CASH' AND direction = 'EXPENSE' THEN -amount
				ELSE 0 END), 0) AS operating_cash,
			COALESCE(SUM(CASE
				WHEN source_bucket = 'TAX_RESERVE' AND direction = 'INCOME' THEN amount
				WHEN source_bucket = 'TAX_RESERVE' AND direction = 'EXPENSE' THEN -amount
				ELSE 0 END), 0) AS tax_reserve,
			COALESCE(SUM(CASE
				WHEN category = 'Pencairan Sewa' AND direction = 'INCOME' THEN amount
				ELSE 0 END), 0) AS total_disbursed
		FROM ledger_records
	`

	var summary ledger.Summary
	err := r.querier.QueryRow(ctx, query).Scan(
		&summary.OperatingCash,
		&summary.TaxReserve,
		&summary.TotalDisbursed,
	)
	if err != nil {
		r.logger.Error("Failed to aggregate ledger summary", "error", err)
		return nil, fmt.Errorf("failed to aggregate ledger summary: %w", err)
	}

	return &summary, nil
}
