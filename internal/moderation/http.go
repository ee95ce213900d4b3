package moderation

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"lobby-service/internal/authority"
	"lobby-service/internal/metrics"
	"strings"
)

const (
	issuePath  = "/punishments"
	revokePath = "/punishments/revoke"

	actionIssue  = "issue"
	actionRevoke = "revoke"
)

type httpClient struct {
	logger  *zap.SugaredLogger
	api     *authority.Client
	metrics *metrics.Metrics
}

func NewHTTPClient(logger *zap.SugaredLogger, api *authority.Client, m *metrics.Metrics) Client {
	return &httpClient{
		logger:  logger,
		api:     api,
		metrics: m,
	}
}

func (c *httpClient) Issue(ctx context.Context, req PunishmentRequest) Result {
	if f, ok := validate(req.Target, req.Type, req.Reason); !ok {
		return c.record(actionIssue, req.Type, f)
	}

	body := punishmentBody{
		Target:         req.Target,
		Type:           string(req.Type),
		Reason:         req.Reason,
		StaffID:        req.StaffID,
		Silent:         req.Silent,
		ClearInventory: req.ClearInventory,
		Priority:       req.Priority,
	}

	if req.Type.Temporal() && req.Duration != nil {
		if _, err := ParseDuration(*req.Duration); err != nil {
			return c.record(actionIssue, req.Type, Failure{Message: "Invalid duration: " + *req.Duration, Cause: err})
		}
		duration := *req.Duration
		body.Duration = &duration
	}

	return c.record(actionIssue, req.Type, c.send(ctx, issuePath, req.Target, body))
}

func (c *httpClient) Revoke(ctx context.Context, req RevokeRequest) Result {
	if f, ok := validate(req.Target, req.Type, req.Reason); !ok {
		return c.record(actionRevoke, req.Type, f)
	}
	if !req.Type.Revocable() {
		return c.record(actionRevoke, req.Type, Failure{Message: fmt.Sprintf("%s punishments cannot be revoked", req.Type)})
	}

	body := punishmentBody{
		Target:         req.Target,
		Type:           string(req.Type),
		Reason:         req.Reason,
		StaffID:        req.StaffID,
		Silent:         req.Silent,
		ClearInventory: req.ClearInventory,
		Priority:       req.Priority,
	}

	return c.record(actionRevoke, req.Type, c.send(ctx, revokePath, req.Target, body))
}

func validate(target string, t PunishmentType, reason string) (Failure, bool) {
	switch {
	case strings.TrimSpace(target) == "":
		return Failure{Message: "A target is required"}, false
	case !t.IsValid():
		return Failure{Message: fmt.Sprintf("Unknown punishment type %q", t)}, false
	case strings.TrimSpace(reason) == "":
		return Failure{Message: "A reason is required"}, false
	}
	return Failure{}, true
}

func (c *httpClient) send(ctx context.Context, path string, target string, body punishmentBody) Result {
	var resp punishmentResponse
	err := c.api.Post(ctx, path, body, &resp)

	if err != nil {
		var httpErr *authority.HTTPError
		switch {
		case errors.As(err, &httpErr):
			msg := httpErr.Message
			if msg == "" {
				msg = fmt.Sprintf("Authority responded with HTTP %d", httpErr.StatusCode)
			}
			return Failure{Message: msg, StatusCode: httpErr.StatusCode, Cause: err}
		case authority.IsTransport(err):
			return Failure{Message: "Service unavailable", Cause: err}
		case errors.Is(err, authority.ErrMalformed):
			return Failure{Message: "Malformed response from authority", Cause: err}
		default:
			c.logger.Errorw("unexpected error sending punishment request", "path", path, "target", target, "error", err)
			return Failure{Message: "Unexpected error", Cause: err}
		}
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = resp.Error
		}
		if msg == "" {
			msg = "Authority rejected the request"
		}
		return Failure{Message: msg}
	}

	if resp.Target == "" {
		resp.Target = target
	}
	return Success{Target: resp.Target, Message: resp.Message}
}

func (c *httpClient) record(action string, t PunishmentType, result Result) Result {
	switch r := result.(type) {
	case Success:
		c.metrics.Punishments.WithLabelValues(action, string(t), "success").Inc()
		c.logger.Infow("punishment request applied", "action", action, "type", t, "target", r.Target)
	case Failure:
		c.metrics.Punishments.WithLabelValues(action, string(t), "failure").Inc()
		c.logger.Warnw("punishment request failed", "action", action, "type", t, "message", r.Message,
			"hint", Classify(r).String(), "error", r.Cause)
	}
	return result
}
