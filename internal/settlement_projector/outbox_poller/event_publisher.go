package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/outbox"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/platform/messaging/producers"
)

// EventPublisher publishes outbox messages to the settlement event stream
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// EventPublisherImpl implements EventPublisher on top of the Kafka producer
type EventPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewEventPublisher creates a new publisher
func NewEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &EventPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishEvent writes one outbox message to Kafka and marks it processed.
// Messages are keyed by booking ID so all events of a booking land on the
// same partition and stay ordered.
func (p *EventPublisherImpl) PublishEvent(ctx context.Context, message *outbox.Message) error {
	event, err := message.GetSettlementEvent()
	if err != nil {
		p.logger.Error("Failed to unmarshal settlement event from outbox payload",
			"outbox_id", message.ID, "booking_id", message.BookingID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if event.CorrelationID != "" {
		logger = p.logger.With("correlation_id", event.CorrelationID)
	}

	logger.Info("Attempting to publish outbox message to Kafka",
		"outbox_id", message.ID, "event_id", event.EventID.String(), "type", event.Type,
	)

	if err := p.producer.Publish(ctx, event.BookingID.String(), event); err != nil {
		logger.Error("Failed to publish settlement event to Kafka",
			"outbox_id", message.ID, "event_id", event.EventID.String(), "error", err,
		)
		return fmt.Errorf("failed to publish settlement event %s: %w", event.EventID.String(), err)
	}

	// The producer writes synchronously with full acks, so marking the row
	// processed here cannot lose the event. A crash between the two steps
	// republishes it, which the consumer's event ID check absorbs.
	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, shared.OutboxStatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "event_id", event.EventID.String(), "error", err,
		)
		return fmt.Errorf("event %s published, but failed to mark outbox %d as PROCESSED: %w", event.EventID.String(), message.ID, err)
	}

	logger.Info("Outbox message successfully published and marked as PROCESSED",
		"outbox_id", message.ID, "event_id", event.EventID.String(),
	)
	return nil
}
