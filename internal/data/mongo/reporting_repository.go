package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/reporting"
)

const (
	// SettlementCollectionName is the name of the projected settlement
	// event collection in MongoDB
	SettlementCollectionName = "settlement_events"
)

// ReportingRepository implements the reporting.Repository interface for MongoDB
type ReportingRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewReportingRepository creates a new MongoDB reporting repository
func NewReportingRepository(logger *slog.Logger, db *mongo.Database) reporting.Repository {
	return &ReportingRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a projected settlement event after checking for duplicates,
// making projection safe under Kafka's at-least-once delivery.
func (r *ReportingRepository) Insert(ctx context.Context, doc *reporting.SettlementDocument) error {
	collection := r.db.Collection(SettlementCollectionName)

	existing, err := r.GetByEventID(ctx, doc.EventID)
	if err != nil && !errors.Is(err, reporting.ErrEventNotFound{EventID: doc.EventID}) {
		r.logger.Error("Failed to check for existing settlement document",
			"event_id", doc.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing settlement document: %w", err)
	}

	if existing != nil {
		return reporting.ErrDuplicateEvent{EventID: doc.EventID}
	}

	_, err = collection.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("Failed to insert settlement document",
			"event_id", doc.EventID.String(),
			"error", err)
		return fmt.Errorf("failed to insert settlement document: %w", err)
	}

	return nil
}

// GetByEventID retrieves a projected event by its event ID.
// Returns ErrEventNotFound if no document exists.
func (r *ReportingRepository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*reporting.SettlementDocument, error) {
	collection := r.db.Collection(SettlementCollectionName)

	filter := bson.M{"event_id": eventID}
	var doc reporting.SettlementDocument
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reporting.ErrEventNotFound{EventID: eventID}
		}
		r.logger.Error("Failed to get settlement document",
			"event_id", eventID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get settlement document: %w", err)
	}

	return &doc, nil
}

// ListByBooking retrieves the projected history of one booking, oldest first
func (r *ReportingRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*reporting.SettlementDocument, error) {
	collection := r.db.Collection(SettlementCollectionName)

	filter := bson.M{"booking_id": bookingID}
	opts := options.Find().SetSort(bson.M{"occurred_at": 1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list settlement documents",
			"booking_id", bookingID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to list settlement documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*reporting.SettlementDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode settlement documents",
			"booking_id", bookingID.String(),
			"error", err)
		return nil, fmt.Errorf("failed to decode settlement documents: %w", err)
	}

	return docs, nil
}

// ListByTimeRange retrieves paginated events within the window, newest first
func (r *ReportingRepository) ListByTimeRange(ctx context.Context, startTime, endTime time.Time, limit, offset int) ([]*reporting.SettlementDocument, error) {
	collection := r.db.Collection(SettlementCollectionName)

	filter := bson.M{
		"occurred_at": bson.M{
			"$gte": startTime,
			"$lte": endTime,
		},
	}
	opts := options.Find().
		SetSort(bson.M{"occurred_at": -1}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list settlement documents by time range",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to list settlement documents by time range: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*reporting.SettlementDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("Failed to decode settlement documents",
			"start_time", startTime,
			"end_time", endTime,
			"error", err)
		return nil, fmt.Errorf("failed to decode settlement documents: %w", err)
	}

	return docs, nil
}
