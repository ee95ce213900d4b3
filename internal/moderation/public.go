package moderation

import "context"

// Client applies and lifts punishments on the authority. It never retries and
// never broadcasts; callers decide whether to notify staff.
type Client interface {
	Issue(ctx context.Context, req PunishmentRequest) Result
	Revoke(ctx context.Context, req RevokeRequest) Result
}
