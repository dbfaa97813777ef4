package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/platform/messaging/producers"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/settlement_projector/service"
)

// SettlementEventHandler handles incoming settlement event messages from Kafka
type SettlementEventHandler struct {
	projectionService service.ProjectionService
	producer          producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewSettlementEventHandler creates a new handler
func NewSettlementEventHandler(
	logger *slog.Logger,
	projectionService service.ProjectionService,
	producer producers.DeadLetterPublisher,
) *SettlementEventHandler {
	return &SettlementEventHandler{
		projectionService: projectionService,
		producer:          producer,
		logger:            logger,
	}
}

// HandleMessage processes Kafka messages
func (h *SettlementEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var event shared.SettlementEvent
	if err := json.Unmarshal(value, &event); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal settlement event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		// Send to DLQ if available
		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				// Message handled, commit offset
				return nil
			}
		}
		// Allow Kafka retries
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if event.CorrelationID != "" {
		logger = h.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Received settlement event for projection",
		"event_id", event.EventID.String(),
		"booking_id", event.BookingID.String(),
		"type", event.Type,
	)

	if err := h.projectionService.ProjectEvent(ctx, &event); err != nil {
		logger.Error("Failed to project settlement event",
			"event_id", event.EventID.String(),
			"booking_id", event.BookingID.String(),
			"error", err,
		)
		return fmt.Errorf("projecting settlement event %s failed: %w", event.EventID.String(), err)
	}

	logger.Info("Successfully projected settlement event", "event_id", event.EventID.String())
	return nil // Success, commit offset
}
