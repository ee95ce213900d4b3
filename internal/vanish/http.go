package vanish

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"lobby-service/internal/authority"
	"net/url"
)

type toggleRequest struct {
	Player   string `json:"player"`
	Vanished bool   `json:"vanished"`
}

type toggleResponse struct {
	Success  bool   `json:"success"`
	Vanished bool   `json:"vanished"`
	Message  string `json:"message"`
}

type statusResponse struct {
	Vanished bool `json:"vanished"`
}

type visibilityResponse struct {
	CanSee bool `json:"canSee"`
}

var ErrRejected = errors.New("vanish toggle rejected")

type httpClient struct {
	logger *zap.SugaredLogger
	api    *authority.Client
}

func NewHTTPClient(logger *zap.SugaredLogger, api *authority.Client) Client {
	return &httpClient{logger: logger, api: api}
}

func (c *httpClient) Toggle(ctx context.Context, playerName string, vanished bool) (bool, error) {
	path := fmt.Sprintf("/players/%s/vanish", url.PathEscape(playerName))

	var resp toggleResponse
	if err := c.api.Post(ctx, path, toggleRequest{Player: playerName, Vanished: vanished}, &resp); err != nil {
		return false, fmt.Errorf("failed to toggle vanish for %s: %w", playerName, err)
	}
	if !resp.Success {
		if resp.Message != "" {
			return false, fmt.Errorf("%w: %s", ErrRejected, resp.Message)
		}
		return false, ErrRejected
	}

	c.logger.Infow("vanish toggled", "player", playerName, "vanished", resp.Vanished)
	return resp.Vanished, nil
}

func (c *httpClient) IsVanished(ctx context.Context, playerId uuid.UUID) bool {
	var resp statusResponse
	if err := c.api.Get(ctx, fmt.Sprintf("/players/uuid/%s/vanish", playerId), &resp); err != nil {
		c.logFailure("vanish status lookup failed", err, "playerId", playerId)
		return false
	}
	return resp.Vanished
}

func (c *httpClient) CanSeeVanished(ctx context.Context, viewerId uuid.UUID, targetId uuid.UUID) bool {
	var resp visibilityResponse
	path := fmt.Sprintf("/players/uuid/%s/can-see-vanished/%s", viewerId, targetId)
	if err := c.api.Get(ctx, path, &resp); err != nil {
		c.logFailure("vanish visibility check failed", err, "viewerId", viewerId, "targetId", targetId)
		return false
	}
	return resp.CanSee
}

func (c *httpClient) logFailure(msg string, err error, keysAndValues ...any) {
	switch {
	case errors.Is(err, authority.ErrNotFound):
		c.logger.Debugw(msg, append(keysAndValues, "error", err)...)
	case authority.IsTransport(err):
		c.logger.Warnw(msg, append(keysAndValues, "error", err)...)
	default:
		c.logger.Errorw(msg, append(keysAndValues, "error", err)...)
	}
}
