package safety

import (
	"context"
	"github.com/google/uuid"
)

//go:generate mockgen -source=public.go -destination=safety_mock.go -package=safety

// PlayerNotifier delivers a chat message to a player connected to this lobby.
type PlayerNotifier interface {
	SendMessage(ctx context.Context, playerId uuid.UUID, message string) error
}

// EventPublisher shares safety transitions with the other lobby processes.
type EventPublisher interface {
	PublishStateChange(ctx context.Context, change StateChange) error
}
