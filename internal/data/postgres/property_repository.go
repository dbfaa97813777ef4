package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/property"
	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/platform/persistence"
)

// PropertyRepository implements the property.Repository interface for
// PostgreSQL. The settlement engine reads the catalog only.
type PropertyRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewPropertyRepository creates a new PostgreSQL property repository
func NewPropertyRepository(logger *slog.Logger, db *persistence.PostgresDB) property.Repository {
	return &PropertyRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// GetByID retrieves a property by its ID
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	query := `
		SELECT id, owner_id, name, category, province, district, address, is_verified, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	var prop property.Property
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&prop.ID,
		&prop.OwnerID,
		&prop.Name,
		&prop.Category,
		&prop.Province,
		&prop.District,
		&prop.Address,
		&prop.IsVerified,
		&prop.CreatedAt,
		&prop.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, property.ErrPropertyNotFound{PropertyID: id}
		}
		r.logger.Error("Failed to get property", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &prop, nil
}

// GetRoom loads a room type and verifies it belongs to the given property
func (r *PropertyRepository) GetRoom(ctx context.Context, propertyID, roomID uuid.UUID) (*property.Room, error) {
	query := `
		SELECT id, property_id, type_label, price, billing_period, stock
		FROM rooms
		WHERE id = $1 AND property_id = $2
	`

	var room property.Room
	err := r.querier.QueryRow(ctx, query, roomID, propertyID).Scan(
		&room.ID,
		&room.PropertyID,
		&room.TypeLabel,
		&room.Price,
		&room.BillingPeriod,
		&room.Stock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, property.ErrRoomNotFound{PropertyID: propertyID, RoomID: roomID}
		}
		r.logger.Error("Failed to get room", "room_id", roomID.String(), "error", err)
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}
