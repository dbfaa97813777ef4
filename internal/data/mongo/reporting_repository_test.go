package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/reporting"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
)

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) Insert(ctx context.Context, doc *reporting.SettlementDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockReportingRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*reporting.SettlementDocument, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.SettlementDocument), args.Error(1)
}

func (m *MockReportingRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*reporting.SettlementDocument, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reporting.SettlementDocument), args.Error(1)
}

func (m *MockReportingRepository) ListByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*reporting.SettlementDocument, error) {
	args := m.Called(ctx, startTime, endTime, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reporting.SettlementDocument), args.Error(1)
}

func TestNewReportingRepository(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	repo := NewReportingRepository(logger, db)

	assert.NotNil(t, repo)
	assert.IsType(t, &ReportingRepository{}, repo)
}

func TestReportingRepository_Insert(t *testing.T) {
	eventID := uuid.New()
	doc := &reporting.SettlementDocument{
		EventID:     eventID,
		Type:        shared.EventBookingDisbursed,
		BookingID:   uuid.New(),
		PropertyID:  uuid.New(),
		TenantID:    uuid.New(),
		TotalPrice:  2_775_000,
		OccurredAt:  time.Now(),
		ProjectedAt: time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func(m *MockReportingRepository)
		expectedError error
	}{
		{
			name: "successful insert",
			setupMocks: func(m *MockReportingRepository) {
				m.On("Insert", mock.Anything, doc).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate event",
			setupMocks: func(m *MockReportingRepository) {
				m.On("Insert", mock.Anything, doc).Return(reporting.ErrDuplicateEvent{EventID: eventID})
			},
			expectedError: reporting.ErrDuplicateEvent{EventID: eventID},
		},
		{
			name: "database error",
			setupMocks: func(m *MockReportingRepository) {
				m.On("Insert", mock.Anything, doc).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockReportingRepository{}
			tt.setupMocks(mockRepo)

			err := mockRepo.Insert(context.Background(), doc)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReportingRepository_GetByEventID(t *testing.T) {
	eventID := uuid.New()
	doc := &reporting.SettlementDocument{
		EventID:    eventID,
		Type:       shared.EventBookingConfirmed,
		BookingID:  uuid.New(),
		OccurredAt: time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func(m *MockReportingRepository)
		expectedDoc   *reporting.SettlementDocument
		expectedError error
	}{
		{
			name: "document found",
			setupMocks: func(m *MockReportingRepository) {
				m.On("GetByEventID", mock.Anything, eventID).Return(doc, nil)
			},
			expectedDoc:   doc,
			expectedError: nil,
		},
		{
			name: "document not found",
			setupMocks: func(m *MockReportingRepository) {
				m.On("GetByEventID", mock.Anything, eventID).Return(nil, reporting.ErrEventNotFound{EventID: eventID})
			},
			expectedDoc:   nil,
			expectedError: reporting.ErrEventNotFound{EventID: eventID},
		},
		{
			name: "database error",
			setupMocks: func(m *MockReportingRepository) {
				m.On("GetByEventID", mock.Anything, eventID).Return(nil, errors.New("db error"))
			},
			expectedDoc:   nil,
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockReportingRepository{}
			tt.setupMocks(mockRepo)

			result, err := mockRepo.GetByEventID(context.Background(), eventID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedDoc, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
