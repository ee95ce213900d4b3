package app

import (
	"context"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"lobby-service/internal/authority"
	"lobby-service/internal/broadcast"
	"lobby-service/internal/config"
	"lobby-service/internal/contact"
	"lobby-service/internal/directory"
	"lobby-service/internal/kafka/notifier"
	"lobby-service/internal/metrics"
	"lobby-service/internal/moderation"
	"lobby-service/internal/permission"
	"lobby-service/internal/safety"
	"lobby-service/internal/tasks"
	"lobby-service/internal/vanish"
	"sync"
)

// Lobby is the set of components a game server adapter talks to.
type Lobby struct {
	logger *zap.SugaredLogger

	Directory   directory.Directory
	Ranks       *permission.RankIndex
	Moderation  moderation.Client
	Broadcaster broadcast.Broadcaster
	Vanish      vanish.Client
	Contacts    *contact.Directory

	Panic       *safety.Manager
	Freeze      *safety.Manager
	Interceptor *safety.Interceptor
	PanicList   *safety.RemoteClient

	Runner *tasks.Runner
}

// NewLobby builds every component. When Kafka is enabled its writer closes once
// delayedCtx is done and delayedWg is released.
func NewLobby(delayedCtx context.Context, delayedWg *sync.WaitGroup, cfg *config.Config, logger *zap.SugaredLogger,
	m *metrics.Metrics, players safety.PlayerNotifier) *Lobby {

	api := authority.NewClient(cfg.Authority)
	runner := tasks.NewRunner(logger, m)
	broadcaster := broadcast.NewHTTPBroadcaster(logger, api, m)

	var safetyOpts []safety.Option
	if cfg.Kafka.Enabled {
		safetyOpts = append(safetyOpts, safety.WithPublisher(notifier.NewKafkaNotifier(delayedCtx, delayedWg, logger, cfg.Kafka, cfg.ServerID)))
	}

	panicManager := safety.NewManager(logger, m, safety.PanicSettings(cfg.Safety.PanicDuration, cfg.Safety.PanicCooldown),
		broadcaster, players, runner, safetyOpts...)
	freezeManager := safety.NewManager(logger, m, safety.FreezeSettings(cfg.Safety.FreezeDuration),
		broadcaster, players, runner, safetyOpts...)

	// Rank definitions are pushed by the game adapter through Ranks.Rebuild.
	ranks := permission.NewRankIndex(nil)

	return &Lobby{
		logger:      logger,
		Directory:   directory.NewHTTPDirectory(logger, api, m, cfg.Authority.ProfileCacheTTL, directory.WithRankIndex(ranks)),
		Ranks:       ranks,
		Moderation:  moderation.NewHTTPClient(logger, api, m),
		Broadcaster: broadcaster,
		Vanish:      vanish.NewHTTPClient(logger, api),
		Contacts:    contact.NewDirectory(),
		Panic:       panicManager,
		Freeze:      freezeManager,
		Interceptor: safety.NewInterceptor(panicManager, freezeManager),
		PanicList:   safety.NewRemoteClient(logger, api),
		Runner:      runner,
	}
}

func (l *Lobby) Managers() []*safety.Manager {
	return []*safety.Manager{l.Panic, l.Freeze}
}

// Authorize reports whether the player holds any of perms. Checks run concurrently.
func (l *Lobby) Authorize(ctx context.Context, playerId uuid.UUID, perms ...string) bool {
	checks := make([]permission.Check, 0, len(perms))
	for _, perm := range perms {
		checks = append(checks, func(ctx context.Context) (bool, error) {
			return l.Directory.HasPermission(ctx, playerId, perm), nil
		})
	}

	allowed, err := permission.AnyOf(ctx, checks...)
	if err != nil {
		l.logger.Warnw("permission check failed", "playerId", playerId, "perms", perms, "error", err)
		return false
	}
	return allowed
}

// HandleDisconnect drops per-player state when a player leaves this lobby.
// Safety cooldowns survive.
func (l *Lobby) HandleDisconnect(playerId uuid.UUID) {
	for _, m := range l.Managers() {
		m.HandleDisconnect(playerId)
	}
	l.Contacts.Forget(playerId)
	l.Directory.Invalidate(playerId)
}
