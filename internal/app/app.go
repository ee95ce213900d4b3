package app

import (
	"context"
	"go.uber.org/zap"
	"lobby-service/internal/config"
	"lobby-service/internal/kafka/consumer"
	"lobby-service/internal/metrics"
	"lobby-service/internal/service"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const taskShutdownTimeout = 10 * time.Second

func Run(cfg *config.Config, logger *zap.SugaredLogger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	wg := &sync.WaitGroup{}

	delayedCtx, delayedCancel := context.WithCancel(context.Background())
	delayedWg := &sync.WaitGroup{}

	registry, m := metrics.NewRegistry()
	lobby := NewLobby(delayedCtx, delayedWg, cfg, logger, m, nil)

	for _, manager := range lobby.Managers() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			manager.Run(ctx, cfg.Safety.SweepInterval)
		}()
	}

	if cfg.Kafka.Enabled {
		consumer.NewKafkaConsumer(cfg, logger, m, lobby.Directory, lobby.Managers()...).Run(ctx, wg)
	}

	service.RunServices(ctx, logger, wg, cfg, registry, lobby.Managers()...)

	<-ctx.Done()
	wg.Wait()
	logger.Info("shutting down")

	// Broadcasts and events still in flight need the kafka writer, so tasks drain first.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), taskShutdownTimeout)
	defer shutdownCancel()
	if err := lobby.Runner.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("background tasks did not finish", "error", err)
	}

	logger.Info("shutting down delayed services")
	delayedCancel()
	delayedWg.Wait()
}
