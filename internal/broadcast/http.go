package broadcast

import (
	"context"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"lobby-service/internal/authority"
	"lobby-service/internal/metrics"
	"time"
)

const (
	staffChatPath = "/chat/staff"
	adminChatPath = "/chat/admin"

	channelStaff = "staff"
	channelAdmin = "admin"
)

type staffChatRequest struct {
	SenderName string `json:"sender_name"`
	Message    string `json:"message"`
}

type staffChatResponse struct {
	Success    bool `json:"success"`
	Recipients int  `json:"recipients"`
}

type adminChatRequest struct {
	SenderUUID string `json:"sender_uuid"`
	SenderName string `json:"sender_name"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

type adminChatResponse struct {
	Success bool `json:"success"`
}

type httpBroadcaster struct {
	logger  *zap.SugaredLogger
	api     *authority.Client
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewHTTPBroadcaster(logger *zap.SugaredLogger, api *authority.Client, m *metrics.Metrics) Broadcaster {
	return &httpBroadcaster{
		logger:  logger,
		api:     api,
		metrics: m,
		now:     time.Now,
	}
}

func (b *httpBroadcaster) BroadcastToStaff(ctx context.Context, message string) bool {
	return b.BroadcastToStaffAs(ctx, SystemSender, message)
}

func (b *httpBroadcaster) BroadcastToStaffAs(ctx context.Context, senderName string, message string) bool {
	var resp staffChatResponse
	err := b.api.Post(ctx, staffChatPath, staffChatRequest{SenderName: senderName, Message: message}, &resp)
	if !b.check(channelStaff, err, resp.Success) {
		return false
	}

	b.logger.Debugw("staff broadcast delivered", "sender", senderName, "recipients", resp.Recipients)
	return true
}

func (b *httpBroadcaster) BroadcastToAdmins(ctx context.Context, senderId uuid.UUID, senderName string, message string) bool {
	req := adminChatRequest{
		SenderUUID: senderId.String(),
		SenderName: senderName,
		Message:    message,
		Timestamp:  b.now().UTC().Format(time.RFC3339),
	}

	var resp adminChatResponse
	err := b.api.Post(ctx, adminChatPath, req, &resp)
	return b.check(channelAdmin, err, resp.Success)
}

// check logs connectivity failures and authority rejections separately. Both
// are reported to the caller as false.
func (b *httpBroadcaster) check(channel string, err error, success bool) bool {
	switch {
	case err != nil && authority.IsTransport(err):
		b.metrics.Broadcasts.WithLabelValues(channel, "unreachable").Inc()
		b.logger.Warnw("could not reach authority for broadcast", "channel", channel, "error", err)
		return false
	case err != nil:
		b.metrics.Broadcasts.WithLabelValues(channel, "rejected").Inc()
		b.logger.Errorw("authority rejected broadcast", "channel", channel, "status", authority.StatusCode(err), "error", err)
		return false
	case !success:
		b.metrics.Broadcasts.WithLabelValues(channel, "rejected").Inc()
		b.logger.Errorw("authority reported broadcast failure", "channel", channel)
		return false
	}

	b.metrics.Broadcasts.WithLabelValues(channel, "delivered").Inc()
	return true
}
