package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/reporting"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
)

// ProjectionServiceImpl implements ProjectionService backed by the MongoDB
// reporting repository.
type ProjectionServiceImpl struct {
	reportingRepo reporting.Repository
	logger        *slog.Logger
}

// NewProjectionService creates a new projection service
func NewProjectionService(reportingRepo reporting.Repository, logger *slog.Logger) *ProjectionServiceImpl {
	return &ProjectionServiceImpl{
		reportingRepo: reportingRepo,
		logger:        logger,
	}
}

// ProjectEvent stores the settlement event in the read model. Replayed
// events are detected by event ID and dropped without error, so at-least-once
// delivery from Kafka never duplicates documents.
func (s *ProjectionServiceImpl) ProjectEvent(ctx context.Context, event *shared.SettlementEvent) error {
	logger := s.logger
	if event.CorrelationID != "" {
		logger = s.logger.With("correlation_id", event.CorrelationID)
	}

	doc := reporting.FromEvent(event)

	if err := s.reportingRepo.Insert(ctx, doc); err != nil {
		var dup reporting.ErrDuplicateEvent
		if errors.As(err, &dup) {
			logger.Info("Settlement event already projected, skipping",
				"event_id", event.EventID.String(),
				"booking_id", event.BookingID.String(),
			)
			return nil
		}
		logger.Error("Failed to project settlement event",
			"event_id", event.EventID.String(),
			"booking_id", event.BookingID.String(),
			"error", err,
		)
		return fmt.Errorf("failed to project settlement event %s: %w", event.EventID.String(), err)
	}

	logger.Info("Projected settlement event",
		"event_id", event.EventID.String(),
		"booking_id", event.BookingID.String(),
		"type", event.Type,
	)
	return nil
}
