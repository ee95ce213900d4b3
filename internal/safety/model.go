package safety

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"math"
	"time"
)

type Mode string

const (
	ModePanic  Mode = "panic"
	ModeFreeze Mode = "freeze"
)

type Status int

const (
	StatusNormal Status = iota
	StatusActive
	StatusCooldown
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCooldown:
		return "cooldown"
	default:
		return "normal"
	}
}

type Player struct {
	ID   uuid.UUID
	Name string
}

// State is the record of an active safety mode.
type State struct {
	PlayerID       uuid.UUID
	PlayerName     string
	ActivationTime time.Time
	ActivatedBy    string
	Reason         string
}

var (
	ErrInProgress    = errors.New("an activation for this player is already in progress")
	ErrAlreadyActive = errors.New("already active for this player")
)

type CooldownError struct {
	Mode      Mode
	Remaining time.Duration
}

// Minutes returns the remaining cooldown in whole minutes, rounded up.
func (e *CooldownError) Minutes() int {
	return int(math.Ceil(e.Remaining.Minutes()))
}

func (e *CooldownError) Error() string {
	minutes := e.Minutes()
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}
	return fmt.Sprintf("%s mode is on cooldown, try again in %d %s", e.Mode, minutes, unit)
}

type Change string

const (
	ChangeActivated   Change = "activated"
	ChangeDeactivated Change = "deactivated"
)

// StateChange is the cross-process description of a transition.
type StateChange struct {
	Mode        Mode      `json:"mode"`
	PlayerID    uuid.UUID `json:"player_id"`
	Change      Change    `json:"change"`
	ActivatedBy string    `json:"activated_by,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	// CooldownUntil is set on deactivation when the mode has a cooldown.
	CooldownUntil *time.Time `json:"cooldown_until,omitempty"`
	At            time.Time  `json:"at"`
	// Origin is the server id of the lobby that produced the change.
	Origin string `json:"origin"`
}
