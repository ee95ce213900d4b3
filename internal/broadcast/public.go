package broadcast

import (
	"context"
	"github.com/google/uuid"
)

// SystemSender marks a message as already formatted. The authority does not
// decorate it with a rank prefix.
const SystemSender = "__SYSTEM__"

//go:generate mockgen -source=public.go -destination=broadcast_mock.go -package=broadcast

// Broadcaster fans messages out to connected staff through the authority. The
// result only says whether the authority accepted the message.
type Broadcaster interface {
	// BroadcastToStaff sends a pre-formatted system message to all staff.
	BroadcastToStaff(ctx context.Context, message string) bool
	// BroadcastToStaffAs sends a staff chat message from a player.
	BroadcastToStaffAs(ctx context.Context, senderName string, message string) bool
	BroadcastToAdmins(ctx context.Context, senderId uuid.UUID, senderName string, message string) bool
}
