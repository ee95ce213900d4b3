package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"lobby-service/internal/config"
	"lobby-service/internal/safety"
	"sync"
)

const (
	SafetyTopic = "lobby-safety"

	MessageTypeHeader = "X-Message-Type"
	StateChangeType   = "safety.StateChange"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaNotifier struct {
	logger *zap.SugaredLogger
	w      messageWriter
	origin string
}

// NewKafkaNotifier publishes safety transitions. The writer is closed once ctx is done.
func NewKafkaNotifier(ctx context.Context, wg *sync.WaitGroup, logger *zap.SugaredLogger, cfg config.KafkaConfig,
	origin string) safety.EventPublisher {

	w := &kafka.Writer{
		Addr:        kafka.TCP(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		Topic:       SafetyTopic,
		Async:       true,
		Balancer:    &kafka.Hash{},
		ErrorLogger: zap.NewStdLog(logger.Desugar()),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down kafka writer")
		if err := w.Close(); err != nil {
			logger.Errorw("failed to close kafka writer", "error", err)
		}
	}()

	return newNotifier(logger, w, origin)
}

func newNotifier(logger *zap.SugaredLogger, w messageWriter, origin string) *kafkaNotifier {
	return &kafkaNotifier{
		logger: logger,
		w:      w,
		origin: origin,
	}
}

func (k *kafkaNotifier) PublishStateChange(ctx context.Context, change safety.StateChange) error {
	change.Origin = k.origin

	bytes, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("failed to marshal state change: %w", err)
	}

	// Keyed by player so every change for one player lands on the same partition in order.
	if err := k.w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(change.PlayerID.String()),
		Value:   bytes,
		Headers: []kafka.Header{{Key: MessageTypeHeader, Value: []byte(StateChangeType)}},
	}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	k.logger.Debugw("published state change", "mode", change.Mode, "playerId", change.PlayerID, "change", change.Change)
	return nil
}
