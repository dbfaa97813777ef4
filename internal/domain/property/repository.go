package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to the property and room catalog. The
// settlement engine only reads the catalog; listing management lives in the
// dashboard collaborators.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// GetRoom loads a room type and verifies it belongs to the given property.
	GetRoom(ctx context.Context, propertyID, roomID uuid.UUID) (*Room, error)
}

// ErrPropertyNotFound indicates a missing property
type ErrPropertyNotFound struct {
	PropertyID uuid.UUID
}

func (e ErrPropertyNotFound) Error() string {
	return "property not found: " + e.PropertyID.String()
}

// ErrRoomNotFound indicates a missing room type, or a room that does not
// belong to the requested property
type ErrRoomNotFound struct {
	PropertyID uuid.UUID
	RoomID     uuid.UUID
}

func (e ErrRoomNotFound) Error() string {
	return "room " + e.RoomID.String() + " not found at property " + e.PropertyID.String()
}
