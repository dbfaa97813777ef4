package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/reporting"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
)

// MockReportingRepo mocks the reporting.Repository interface
type MockReportingRepo struct {
	mock.Mock
}

func (m *MockReportingRepo) Insert(ctx context.Context, doc *reporting.SettlementDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReportingRepo) GetByEventID(ctx context.Context, eventID uuid.UUID) (*reporting.SettlementDocument, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.SettlementDocument), args.Error(1)
}

func (m *MockReportingRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*reporting.SettlementDocument, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reporting.SettlementDocument), args.Error(1)
}

func (m *MockReportingRepo) ListByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*reporting.SettlementDocument, error) {
	args := m.Called(ctx, startTime, endTime, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reporting.SettlementDocument), args.Error(1)
}

var _ reporting.Repository = (*MockReportingRepo)(nil)

func disbursedEvent() *shared.SettlementEvent {
	bookingID := uuid.New()
	return &shared.SettlementEvent{
		EventID:    uuid.New(),
		Type:       shared.EventBookingDisbursed,
		BookingID:  bookingID,
		PropertyID: uuid.New(),
		TenantID:   uuid.New(),
		TotalPrice: 2_775_000,
		Records: []shared.LedgerEntrySnapshot{
			{RecordID: uuid.New(), BeneficiaryID: uuid.New(), Direction: "INCOME", Amount: 2_412_500, Category: "Pencairan Sewa"},
			{RecordID: uuid.New(), BeneficiaryID: uuid.New(), Direction: "INCOME", Amount: 87_500, Category: "Service Fee", SourceBucket: "OPERATING_CASH"},
			{RecordID: uuid.New(), BeneficiaryID: uuid.New(), Direction: "INCOME", Amount: 275_000, Category: "Pajak (PPN/PB1)", SourceBucket: "TAX_RESERVE"},
		},
		CorrelationID: "corr-1",
		OccurredAt:    time.Now(),
	}
}

func TestProjectionService_ProjectEvent(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("ProjectsDisbursedEvent", func(t *testing.T) {
		mockRepo := &MockReportingRepo{}
		svc := NewProjectionService(mockRepo, logger)

		event := disbursedEvent()
		mockRepo.On("Insert", mock.Anything, mock.MatchedBy(func(doc *reporting.SettlementDocument) bool {
			return doc.EventID == event.EventID &&
				doc.BookingID == event.BookingID &&
				doc.Type == shared.EventBookingDisbursed &&
				len(doc.Records) == 3 &&
				!doc.ProjectedAt.IsZero()
		})).Return(nil).Once()

		err := svc.ProjectEvent(ctx, event)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEventIsNotAnError", func(t *testing.T) {
		mockRepo := &MockReportingRepo{}
		svc := NewProjectionService(mockRepo, logger)

		event := disbursedEvent()
		mockRepo.On("Insert", mock.Anything, mock.Anything).
			Return(reporting.ErrDuplicateEvent{EventID: event.EventID}).Once()

		err := svc.ProjectEvent(ctx, event)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepositoryErrorIsPropagated", func(t *testing.T) {
		mockRepo := &MockReportingRepo{}
		svc := NewProjectionService(mockRepo, logger)

		event := disbursedEvent()
		mockRepo.On("Insert", mock.Anything, mock.Anything).
			Return(errors.New("mongo unavailable")).Once()

		err := svc.ProjectEvent(ctx, event)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to project settlement event")
		mockRepo.AssertExpectations(t)
	})
}
