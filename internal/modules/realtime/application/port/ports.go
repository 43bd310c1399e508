package port

import (
	"context"

	orders "veroxos/internal/modules/orders/domain"
	"veroxos/internal/modules/realtime/domain"
)

// Broadcaster pushes a message to every connection joined to a room.
type Broadcaster interface {
	BroadcastToRoom(ctx context.Context, room string, msg *domain.Message)
}

// BoardSnapshotFetcher returns the current orders for a restaurant slug. It
// is the only path from the realtime layer to order data, keeping the hub
// free of repository access.
type BoardSnapshotFetcher interface {
	BoardSnapshot(ctx context.Context, slug string) ([]orders.Order, error)
}
