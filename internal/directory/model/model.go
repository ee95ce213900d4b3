package model

import (
	"github.com/google/uuid"
	"slices"
	"time"
)

type Rank struct {
	Name        string   `json:"name"`
	Weight      int      `json:"weight"`
	Prefix      string   `json:"prefix"`
	Color       string   `json:"color"`
	Permissions []string `json:"permissions"`
	NameTag     *string  `json:"nameTag,omitempty"`
	// Inherits names the ranks whose permissions this rank also grants.
	Inherits []string `json:"inherits,omitempty"`
}

func (r *Rank) Clone() *Rank {
	if r == nil {
		return nil
	}

	c := *r
	c.Permissions = slices.Clone(r.Permissions)
	c.Inherits = slices.Clone(r.Inherits)
	if r.NameTag != nil {
		tag := *r.NameTag
		c.NameTag = &tag
	}
	return &c
}

// PlayerProfile is the lobby's read-only view of a player as known to the authority.
type PlayerProfile struct {
	UUID        uuid.UUID `json:"uuid"`
	Username    string    `json:"username"`
	Rank        *Rank     `json:"rank"`
	Permissions []string  `json:"permissions"`

	// CachedAt is set by the directory when the profile is fetched.
	CachedAt time.Time `json:"-"`
}

func (p *PlayerProfile) Clone() *PlayerProfile {
	if p == nil {
		return nil
	}

	c := *p
	c.Rank = p.Rank.Clone()
	c.Permissions = slices.Clone(p.Permissions)
	return &c
}

// Weight returns the rank weight, or 0 for a player without a rank.
func (p *PlayerProfile) Weight() int {
	if p == nil || p.Rank == nil {
		return 0
	}
	return p.Rank.Weight
}
