package safety

import "github.com/google/uuid"

type EventKind int

const (
	EventMove EventKind = iota
	EventBlockBreak
	EventBlockPlace
	EventInventoryClick
	EventItemDrop
	EventChat
	EventCommand
)

// GameEvent is the view of a cancellable gameplay event the interceptor needs.
type GameEvent interface {
	Kind() EventKind
	PlayerID() uuid.UUID
	SetCancelled(cancelled bool)
}

// Interceptor cancels restricted events for players in any safety mode.
type Interceptor struct {
	managers []*Manager
}

func NewInterceptor(managers ...*Manager) *Interceptor {
	return &Interceptor{managers: managers}
}

// Restricted reports whether any mode is active for id.
func (i *Interceptor) Restricted(id uuid.UUID) bool {
	for _, m := range i.managers {
		if m.IsActive(id) {
			return true
		}
	}
	return false
}

// Intercept cancels event when its kind is restricted and the player is in a
// safety mode. It returns whether the event was cancelled.
func (i *Interceptor) Intercept(event GameEvent) bool {
	if !restrictedKind(event.Kind()) || !i.Restricted(event.PlayerID()) {
		return false
	}

	event.SetCancelled(true)
	return true
}

// Movement is cancelled even when only the rotation changes.
func restrictedKind(kind EventKind) bool {
	switch kind {
	case EventMove, EventBlockBreak, EventBlockPlace, EventInventoryClick, EventItemDrop:
		return true
	default:
		return false
	}
}

// Event is a plain GameEvent for adapters that do not carry their own.
type Event struct {
	EventKind EventKind
	Player    uuid.UUID
	Cancelled bool
}

func (e *Event) Kind() EventKind {
	return e.EventKind
}

func (e *Event) PlayerID() uuid.UUID {
	return e.Player
}

func (e *Event) SetCancelled(cancelled bool) {
	e.Cancelled = cancelled
}
