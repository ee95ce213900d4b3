package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/emortalmc/proto-specs/gen/go/message/permission"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"lobby-service/internal/config"
	"lobby-service/internal/directory"
	"lobby-service/internal/kafka/notifier"
	"lobby-service/internal/metrics"
	"lobby-service/internal/safety"
	"sync"
	"time"
)

const (
	PermissionTopic = "permission-manager"

	protoTypeHeader = "X-Proto-Type"

	defaultRetryDelay = time.Second
)

var (
	roleUpdateType        = string((&permission.RoleUpdateMessage{}).ProtoReflect().Descriptor().FullName())
	playerRolesUpdateType = string((&permission.PlayerRolesUpdateMessage{}).ProtoReflect().Descriptor().FullName())
)

// errIgnored marks messages that are valid but need no action here.
var errIgnored = errors.New("message ignored")

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	logger  *zap.SugaredLogger
	metrics *metrics.Metrics
	reader  messageReader

	directory directory.Directory
	managers  map[safety.Mode]*safety.Manager
	origin    string

	// retryDelay is the pause after a failed read before trying again.
	retryDelay time.Duration
}

// NewKafkaConsumer reads permission changes and safety transitions from other lobbies.
// Every lobby uses its own consumer group so each one sees every message.
func NewKafkaConsumer(cfg *config.Config, logger *zap.SugaredLogger, m *metrics.Metrics, dir directory.Directory,
	managers ...*safety.Manager) *KafkaConsumer {

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)},
		GroupID:     "lobby-service-" + cfg.ServerID,
		GroupTopics: []string{PermissionTopic, notifier.SafetyTopic},
		StartOffset: kafka.LastOffset,
		Logger:      kafka.LoggerFunc(logger.Debugf),
		ErrorLogger: zap.NewStdLog(logger.Desugar()),
	})

	return newConsumer(logger, m, reader, dir, cfg.ServerID, managers...)
}

func newConsumer(logger *zap.SugaredLogger, m *metrics.Metrics, reader messageReader, dir directory.Directory,
	origin string, managers ...*safety.Manager) *KafkaConsumer {

	byMode := make(map[safety.Mode]*safety.Manager, len(managers))
	for _, manager := range managers {
		byMode[manager.Mode()] = manager
	}

	return &KafkaConsumer{
		logger:     logger,
		metrics:    m,
		reader:     reader,
		directory:  dir,
		managers:   byMode,
		origin:     origin,
		retryDelay: defaultRetryDelay,
	}
}

// Run consumes until ctx is done, then closes the reader.
func (c *KafkaConsumer) Run(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if err := c.reader.Close(); err != nil {
				c.logger.Errorw("failed to close kafka reader", "error", err)
			}
		}()

		c.logger.Infow("listening for kafka messages", "topics", []string{PermissionTopic, notifier.SafetyTopic})
		for {
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.logger.Info("shutting down kafka consumer")
					return
				}
				c.logger.Errorw("failed to read kafka message, retrying", "error", err, "retryIn", c.retryDelay)
				select {
				case <-ctx.Done():
					c.logger.Info("shutting down kafka consumer")
					return
				case <-time.After(c.retryDelay):
				}
				continue
			}

			c.handle(ctx, msg)
		}
	}()
}

func (c *KafkaConsumer) handle(ctx context.Context, msg kafka.Message) {
	msgType, err := c.dispatch(ctx, msg)
	switch {
	case err == nil:
		c.metrics.KafkaMessages.WithLabelValues(msgType, "handled").Inc()
	case errors.Is(err, errIgnored):
		c.metrics.KafkaMessages.WithLabelValues(msgType, "ignored").Inc()
	default:
		c.metrics.KafkaMessages.WithLabelValues(msgType, "failed").Inc()
		c.logger.Errorw("failed to handle kafka message", "topic", msg.Topic, "type", msgType, "offset", msg.Offset, "error", err)
	}
}

func (c *KafkaConsumer) dispatch(ctx context.Context, msg kafka.Message) (string, error) {
	if msgType, ok := header(msg, notifier.MessageTypeHeader); ok {
		if msgType != notifier.StateChangeType {
			return msgType, errIgnored
		}
		return msgType, c.handleStateChange(msg.Value)
	}

	protoType, ok := header(msg, protoTypeHeader)
	if !ok {
		return "unknown", errIgnored
	}

	switch protoType {
	case roleUpdateType:
		var update permission.RoleUpdateMessage
		if err := proto.Unmarshal(msg.Value, &update); err != nil {
			return protoType, fmt.Errorf("failed to unmarshal role update: %w", err)
		}
		// A role message carries one role, not the inheritance graph, so every cached profile is suspect.
		c.directory.InvalidateAll()
		c.logger.Debugw("role updated, profile cache cleared", "roleId", update.GetRole().GetId(), "changeType", update.GetChangeType())
		return protoType, nil

	case playerRolesUpdateType:
		var update permission.PlayerRolesUpdateMessage
		if err := proto.Unmarshal(msg.Value, &update); err != nil {
			return protoType, fmt.Errorf("failed to unmarshal player roles update: %w", err)
		}
		playerId, err := uuid.Parse(update.GetPlayerId())
		if err != nil {
			return protoType, fmt.Errorf("invalid player id %q: %w", update.GetPlayerId(), err)
		}
		c.directory.Invalidate(playerId)
		c.logger.Debugw("player roles updated, profile invalidated", "playerId", playerId, "roleId", update.GetRoleId())
		return protoType, nil

	default:
		return protoType, errIgnored
	}
}

func (c *KafkaConsumer) handleStateChange(value []byte) error {
	var change safety.StateChange
	if err := json.Unmarshal(value, &change); err != nil {
		return fmt.Errorf("failed to unmarshal state change: %w", err)
	}
	if change.Origin == c.origin {
		return errIgnored
	}

	manager, ok := c.managers[change.Mode]
	if !ok || change.Change != safety.ChangeDeactivated || change.CooldownUntil == nil {
		return errIgnored
	}

	manager.ApplyRemoteCooldown(change.PlayerID, *change.CooldownUntil)
	c.logger.Debugw("applied remote cooldown", "mode", change.Mode, "playerId", change.PlayerID,
		"until", *change.CooldownUntil, "origin", change.Origin)
	return nil
}

func header(msg kafka.Message, key string) (string, bool) {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value), true
		}
	}
	return "", false
}
