package safety

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"lobby-service/internal/authority"
	"time"
)

const panicPlayersPath = "/panic/players"

// RemotePanicState is a panic state as recorded by the authority across the network.
type RemotePanicState struct {
	PlayerID    uuid.UUID
	PlayerName  string
	ActivatedAt time.Time
	Reason      string
}

type panicPlayerResponse struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	// ActivationTime is in epoch milliseconds.
	ActivationTime int64  `json:"activation_time"`
	Reason         string `json:"reason"`
}

type panicPlayersResponse struct {
	PanicPlayers []panicPlayerResponse `json:"panic_players"`
}

type RemoteClient struct {
	logger *zap.SugaredLogger
	api    *authority.Client
}

func NewRemoteClient(logger *zap.SugaredLogger, api *authority.Client) *RemoteClient {
	return &RemoteClient{logger: logger, api: api}
}

// ListPanicPlayers returns the network-wide panic states. A 404 means none.
func (c *RemoteClient) ListPanicPlayers(ctx context.Context) ([]RemotePanicState, error) {
	var resp panicPlayersResponse
	if err := c.api.Get(ctx, panicPlayersPath, &resp); err != nil {
		if errors.Is(err, authority.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list panic players: %w", err)
	}

	states := make([]RemotePanicState, 0, len(resp.PanicPlayers))
	for _, entry := range resp.PanicPlayers {
		id, err := uuid.Parse(entry.UUID)
		if err != nil {
			c.logger.Warnw("skipping panic entry with invalid uuid", "uuid", entry.UUID, "username", entry.Username)
			continue
		}
		states = append(states, RemotePanicState{
			PlayerID:    id,
			PlayerName:  entry.Username,
			ActivatedAt: time.UnixMilli(entry.ActivationTime),
			Reason:      entry.Reason,
		})
	}
	return states, nil
}
