package vanish

import (
	"context"
	"github.com/google/uuid"
)

type Client interface {
	// Toggle sets the vanish state of the named player and returns the state the authority reports.
	Toggle(ctx context.Context, playerName string, vanished bool) (bool, error)

	// IsVanished reports false when the player is unknown or the authority cannot be reached.
	IsVanished(ctx context.Context, playerId uuid.UUID) bool

	// CanSeeVanished fails closed.
	CanSeeVanished(ctx context.Context, viewerId uuid.UUID, targetId uuid.UUID) bool
}
