package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/property"
)

func TestPropertyRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PropertyRepository{querier: mock, logger: newTestLogger()}
	id := uuid.New()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{
			"id", "owner_id", "name", "category", "province", "district", "address", "is_verified", "created_at", "updated_at",
		}).AddRow(
			id, uuid.New(), "Kost Melati", property.CategoryMixed, "Jawa Barat", "Bandung", "Jl. Melati No. 5", true, now, now,
		)

		mock.ExpectQuery(`SELECT (.+) FROM properties`).WithArgs(id).WillReturnRows(rows)

		prop, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, prop.ID)
		assert.Equal(t, property.CategoryMixed, prop.Category)
		assert.True(t, prop.IsVerified)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM properties`).WithArgs(id).WillReturnError(pgx.ErrNoRows)

		prop, err := repo.GetByID(ctx, id)
		assert.Nil(t, prop)

		var notFound property.ErrPropertyNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, id, notFound.PropertyID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM properties`).WithArgs(id).WillReturnError(errors.New("connection lost"))

		prop, err := repo.GetByID(ctx, id)
		assert.Nil(t, prop)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPropertyRepository_GetRoom(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := &PropertyRepository{querier: mock, logger: newTestLogger()}
	propertyID := uuid.New()
	roomID := uuid.New()

	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{
			"id", "property_id", "type_label", "price", "billing_period", "stock",
		}).AddRow(
			roomID, propertyID, "VIP", int64(3_200_000), property.BillingMonthly, 3,
		)

		mock.ExpectQuery(`SELECT (.+) FROM rooms`).WithArgs(roomID, propertyID).WillReturnRows(rows)

		room, err := repo.GetRoom(ctx, propertyID, roomID)
		require.NoError(t, err)
		assert.Equal(t, int64(3_200_000), room.Price)
		assert.Equal(t, property.BillingMonthly, room.BillingPeriod)
		assert.True(t, room.HasStock())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("room of another property is not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM rooms`).WithArgs(roomID, propertyID).WillReturnError(pgx.ErrNoRows)

		room, err := repo.GetRoom(ctx, propertyID, roomID)
		assert.Nil(t, room)

		var notFound property.ErrRoomNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, roomID, notFound.RoomID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
