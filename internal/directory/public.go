package directory

import (
	"context"
	"github.com/google/uuid"
	"lobby-service/internal/directory/model"
)

// Directory resolves player profiles from the authority. Lookups never return
// errors: a missing, unreachable or malformed profile is reported as absent.
type Directory interface {
	GetProfile(ctx context.Context, playerId uuid.UUID) (*model.PlayerProfile, bool)
	GetProfileByName(ctx context.Context, username string) (*model.PlayerProfile, bool)

	// HasPermission resolves the profile and evaluates perm against it. An
	// absent profile is denied.
	HasPermission(ctx context.Context, playerId uuid.UUID, perm string) bool

	Invalidate(playerId uuid.UUID)
	InvalidateAll()
}
