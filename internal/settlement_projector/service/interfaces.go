package service

import (
	"context"

	"github.com/cafthen-cip/TRAVEL-KOZT-ID/internal/domain/shared"
)

// ProjectionService defines the interface for projecting settlement events
// into the reporting read model.
type ProjectionService interface {
	ProjectEvent(ctx context.Context, event *shared.SettlementEvent) error
}
