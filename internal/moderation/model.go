package moderation

import (
	"fmt"
	"strings"
)

type PunishmentType string

const (
	TypeBan       PunishmentType = "BAN"
	TypeMute      PunishmentType = "MUTE"
	TypeKick      PunishmentType = "KICK"
	TypeWarn      PunishmentType = "WARN"
	TypeBlacklist PunishmentType = "BLACKLIST"
)

var punishmentTypes = []PunishmentType{TypeBan, TypeMute, TypeKick, TypeWarn, TypeBlacklist}

func ParsePunishmentType(s string) (PunishmentType, error) {
	t := PunishmentType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown punishment type %q", s)
	}
	return t, nil
}

func (t PunishmentType) IsValid() bool {
	for _, v := range punishmentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Temporal reports whether the type honours a duration. Kicks and warnings are
// instantaneous and blacklists are always permanent.
func (t PunishmentType) Temporal() bool {
	return t == TypeBan || t == TypeMute
}

// Revocable reports whether a punishment of this type can be lifted.
func (t PunishmentType) Revocable() bool {
	return t == TypeBan || t == TypeMute || t == TypeBlacklist
}

type PunishmentRequest struct {
	// Target is a username or a UUID string.
	Target string
	Type   PunishmentType
	Reason string
	// StaffID is the UUID of the issuing staff member.
	StaffID string
	// Duration such as "1d" or "2h30m". Nil means permanent.
	Duration       *string
	Silent         bool
	ClearInventory bool
	Priority       int
}

// IsPermanent reports whether the punishment has no expiry.
func (r PunishmentRequest) IsPermanent() bool {
	return !r.Type.Temporal() || r.Duration == nil
}

type RevokeRequest struct {
	Target         string
	Type           PunishmentType
	Reason         string
	StaffID        string
	Silent         bool
	ClearInventory bool
	Priority       int
}

// Result is either Success or Failure.
type Result interface {
	isResult()
}

type Success struct {
	Target  string
	Message string
}

type Failure struct {
	Message string
	// StatusCode is the authority's HTTP status, 0 when no response was received.
	StatusCode int
	Cause      error
}

func (Success) isResult() {}
func (Failure) isResult() {}

func (f Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Cause)
	}
	return f.Message
}

func (f Failure) Unwrap() error {
	return f.Cause
}

// punishmentBody is the authority's request format for issue and revoke.
type punishmentBody struct {
	Target         string  `json:"target"`
	Type           string  `json:"type"`
	Reason         string  `json:"reason"`
	StaffID        string  `json:"staff_id"`
	Duration       *string `json:"duration,omitempty"`
	Silent         bool    `json:"silent"`
	ClearInventory bool    `json:"clear_inventory"`
	Priority       int     `json:"priority"`
}

type punishmentResponse struct {
	Success bool   `json:"success"`
	Target  string `json:"target"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
