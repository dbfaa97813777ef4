package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/booking"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/ledger"
)

// LedgerServiceImpl implements the LedgerService interface
type LedgerServiceImpl struct {
	ledgerRepo ledger.Repository
	logger     *slog.Logger
}

// NewLedgerService creates a new ledger reporting service
func NewLedgerService(logger *slog.Logger, ledgerRepo ledger.Repository) LedgerService {
	return &LedgerServiceImpl{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// Summary aggregates the platform financial position
func (s *LedgerServiceImpl) Summary(ctx context.Context) (*ledger.Summary, error) {
	return s.ledgerRepo.Summary(ctx)
}

// ListRecords retrieves a paginated, filtered list of ledger records
func (s *LedgerServiceImpl) ListRecords(ctx context.Context, filter ledger.Filter) ([]*ledger.Record, int64, error) {
	return s.ledgerRepo.List(ctx, filter)
}

// ListByBooking retrieves the settlement records of one booking
func (s *LedgerServiceImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ledger.Record, error) {
	return s.ledgerRepo.ListByBooking(ctx, bookingID)
}

// RecordOperatorEntry appends a manually entered platform record, such as a
// tax remittance or an office expense
func (s *LedgerServiceImpl) RecordOperatorEntry(ctx context.Context, input OperatorEntryInput) (*ledger.Record, error) {
	if input.Amount <= 0 {
		return nil, booking.ErrInvalidInput{Reason: "amount must be positive"}
	}
	if input.Direction != ledger.DirectionIncome && input.Direction != ledger.DirectionExpense {
		return nil, booking.ErrInvalidInput{Reason: "unknown direction: " + string(input.Direction)}
	}
	switch input.SourceBucket {
	case ledger.BucketOperatingCash, ledger.BucketPersonalCash, ledger.BucketTaxReserve:
	default:
		return nil, booking.ErrInvalidInput{Reason: "unknown source bucket: " + string(input.SourceBucket)}
	}
	if input.Category == "" {
		return nil, booking.ErrInvalidInput{Reason: "category is required"}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	record := &ledger.Record{
		ID:            uuid.New(),
		BeneficiaryID: ledger.PlatformAccountID,
		Direction:     input.Direction,
		Amount:        input.Amount,
		Category:      input.Category,
		Description:   input.Description,
		SourceBucket:  input.SourceBucket,
		Date:          date,
		CreatedAt:     time.Now(),
	}

	if err := s.ledgerRepo.Append(ctx, []*ledger.Record{record}); err != nil {
		return nil, err
	}

	s.logger.Info("Operator ledger entry recorded",
		"record_id", record.ID,
		"direction", string(record.Direction),
		"amount", record.Amount,
		"category", record.Category,
		"source_bucket", string(record.SourceBucket),
	)
	return record, nil
}
