package safety

import (
	"cmp"
	"context"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"lobby-service/internal/broadcast"
	"lobby-service/internal/metrics"
	"lobby-service/internal/tasks"
	"slices"
	"sync"
	"time"
)

const DefaultSweepInterval = time.Minute

type Manager struct {
	logger   *zap.SugaredLogger
	metrics  *metrics.Metrics
	settings Settings

	broadcaster broadcast.Broadcaster
	notifier    PlayerNotifier
	publisher   EventPublisher
	runner      *tasks.Runner

	now func() time.Time

	active    sync.Map // uuid.UUID -> State
	cooldowns sync.Map // uuid.UUID -> time.Time
	inFlight  sync.Map // uuid.UUID -> struct{}

	// transitions orders activation against deactivation so a player is never
	// active and cooling down at once. Reads do not take it.
	transitions sync.Mutex
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithPublisher shares transitions with other lobbies.
func WithPublisher(publisher EventPublisher) Option {
	return func(m *Manager) {
		m.publisher = publisher
	}
}

func NewManager(logger *zap.SugaredLogger, m *metrics.Metrics, settings Settings, broadcaster broadcast.Broadcaster,
	notifier PlayerNotifier, runner *tasks.Runner, opts ...Option) *Manager {

	manager := &Manager{
		logger:      logger.With("mode", settings.Mode),
		metrics:     m,
		settings:    settings,
		broadcaster: broadcaster,
		notifier:    notifier,
		runner:      runner,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

func (m *Manager) Mode() Mode {
	return m.settings.Mode
}

func (m *Manager) Activate(ctx context.Context, player Player, activatorName string, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, loaded := m.inFlight.LoadOrStore(player.ID, struct{}{}); loaded {
		return ErrInProgress
	}
	defer m.inFlight.Delete(player.ID)

	now, err := m.insert(player, activatorName, reason)
	if err != nil {
		return err
	}

	m.metrics.SafetyTransitions.WithLabelValues(string(m.settings.Mode), string(ChangeActivated)).Inc()
	m.logger.Infow("safety mode activated", "playerId", player.ID, "player", player.Name, "activatedBy", activatorName, "reason", reason)

	messages := m.settings.Messages
	m.notify(player.ID, fmt.Sprintf(messages.PlayerActivated, activatorName))
	m.broadcast(fmt.Sprintf(messages.StaffActivated, player.Name, activatorName, reason))
	m.publish(StateChange{
		Mode:        m.settings.Mode,
		PlayerID:    player.ID,
		Change:      ChangeActivated,
		ActivatedBy: activatorName,
		Reason:      reason,
		At:          now,
	})

	return nil
}

// Deactivate ends the mode for id. It returns false when the mode was not active,
// in which case nothing else happens.
func (m *Manager) Deactivate(ctx context.Context, id uuid.UUID, reason string) bool {
	state, now, until, ok := m.remove(id)
	if !ok {
		return false
	}

	change := StateChange{
		Mode:          m.settings.Mode,
		PlayerID:      id,
		Change:        ChangeDeactivated,
		Reason:        reason,
		CooldownUntil: until,
		At:            now,
	}

	m.metrics.SafetyTransitions.WithLabelValues(string(m.settings.Mode), string(ChangeDeactivated)).Inc()
	m.logger.Infow("safety mode deactivated", "playerId", id, "player", state.PlayerName, "reason", reason,
		"activeFor", now.Sub(state.ActivationTime))

	messages := m.settings.Messages
	m.notify(id, fmt.Sprintf(messages.PlayerDeactivated, reason))
	m.broadcast(fmt.Sprintf(messages.StaffDeactivated, state.PlayerName, reason))
	m.publish(change)

	return true
}

func (m *Manager) insert(player Player, activatorName string, reason string) (time.Time, error) {
	m.transitions.Lock()
	defer m.transitions.Unlock()

	now := m.now()
	if remaining := m.cooldownRemaining(player.ID, now); remaining > 0 {
		return now, &CooldownError{Mode: m.settings.Mode, Remaining: remaining}
	}

	state := State{
		PlayerID:       player.ID,
		PlayerName:     player.Name,
		ActivationTime: now,
		ActivatedBy:    activatorName,
		Reason:         reason,
	}
	if _, loaded := m.active.LoadOrStore(player.ID, state); loaded {
		return now, ErrAlreadyActive
	}
	m.metrics.SafetyActive.WithLabelValues(string(m.settings.Mode)).Inc()
	return now, nil
}

// remove drops the active entry and starts the cooldown in one step.
func (m *Manager) remove(id uuid.UUID) (State, time.Time, *time.Time, bool) {
	m.transitions.Lock()
	defer m.transitions.Unlock()

	value, ok := m.active.LoadAndDelete(id)
	if !ok {
		return State{}, time.Time{}, nil, false
	}
	m.metrics.SafetyActive.WithLabelValues(string(m.settings.Mode)).Dec()

	now := m.now()
	if m.settings.Cooldown <= 0 {
		return value.(State), now, nil, true
	}
	until := now.Add(m.settings.Cooldown)
	m.cooldowns.Store(id, until)
	return value.(State), now, &until, true
}

func (m *Manager) IsActive(id uuid.UUID) bool {
	_, ok := m.active.Load(id)
	return ok
}

// State returns the status of id and, when active, its state record.
func (m *Manager) State(id uuid.UUID) (Status, State) {
	if value, ok := m.active.Load(id); ok {
		return StatusActive, value.(State)
	}
	if m.cooldownRemaining(id, m.now()) > 0 {
		return StatusCooldown, State{}
	}
	return StatusNormal, State{}
}

func (m *Manager) CooldownRemaining(id uuid.UUID) time.Duration {
	return m.cooldownRemaining(id, m.now())
}

// cooldownRemaining drops expired cooldown entries as it finds them.
func (m *Manager) cooldownRemaining(id uuid.UUID, now time.Time) time.Duration {
	value, ok := m.cooldowns.Load(id)
	if !ok {
		return 0
	}
	until := value.(time.Time)
	if !now.Before(until) {
		m.cooldowns.CompareAndDelete(id, value)
		return 0
	}
	return until.Sub(now)
}

// Snapshot lists the active states ordered by activation time.
func (m *Manager) Snapshot() []State {
	var states []State
	m.active.Range(func(_, value any) bool {
		states = append(states, value.(State))
		return true
	})

	slices.SortFunc(states, func(a, b State) int {
		return cmp.Or(a.ActivationTime.Compare(b.ActivationTime), cmp.Compare(a.PlayerName, b.PlayerName))
	})
	return states
}

// Sweep deactivates every state that outlived the active duration and returns
// how many this call ended.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.settings.ActiveDuration <= 0 {
		return 0
	}

	now := m.now()
	var expired []uuid.UUID
	for _, state := range m.Snapshot() {
		if now.Sub(state.ActivationTime) >= m.settings.ActiveDuration {
			expired = append(expired, state.PlayerID)
		}
	}

	count := 0
	for _, id := range expired {
		if m.Deactivate(ctx, id, AutomaticExpirationReason) {
			count++
		}
	}
	return count
}

// Run sweeps on every tick until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if count := m.Sweep(ctx); count > 0 {
				m.logger.Debugw("expired safety modes", "count", count)
			}
		}
	}
}

// HandleDisconnect forgets the active state of a player who left. The cooldown is kept.
func (m *Manager) HandleDisconnect(id uuid.UUID) {
	m.transitions.Lock()
	defer m.transitions.Unlock()

	if _, ok := m.active.LoadAndDelete(id); ok {
		m.metrics.SafetyActive.WithLabelValues(string(m.settings.Mode)).Dec()
		m.logger.Debugw("dropped safety mode on disconnect", "playerId", id)
	}
}

// ApplyRemoteCooldown adopts a cooldown set by another lobby unless a later one is already known.
func (m *Manager) ApplyRemoteCooldown(id uuid.UUID, until time.Time) {
	for {
		current, loaded := m.cooldowns.LoadOrStore(id, until)
		if !loaded || !until.After(current.(time.Time)) {
			return
		}
		if m.cooldowns.CompareAndSwap(id, current, until) {
			return
		}
	}
}

func (m *Manager) notify(id uuid.UUID, message string) {
	if m.notifier == nil {
		return
	}
	m.submit("safety-notify", func(ctx context.Context) error {
		return m.notifier.SendMessage(ctx, id, message)
	})
}

func (m *Manager) broadcast(message string) {
	m.submit("safety-broadcast", func(ctx context.Context) error {
		if !m.broadcaster.BroadcastToStaff(ctx, message) {
			return fmt.Errorf("staff broadcast for %s mode was not delivered", m.settings.Mode)
		}
		return nil
	})
}

func (m *Manager) publish(change StateChange) {
	if m.publisher == nil {
		return
	}
	m.submit("safety-publish", func(ctx context.Context) error {
		return m.publisher.PublishStateChange(ctx, change)
	})
}

func (m *Manager) submit(name string, fn func(ctx context.Context) error) {
	if err := m.runner.Go(name, fn); err != nil {
		m.logger.Warnw("dropped safety side effect", "task", name, "error", err)
	}
}
