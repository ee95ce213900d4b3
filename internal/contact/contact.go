// Package contact remembers who each player last exchanged a private message with,
// so reply commands know their recipient.
package contact

import (
	"github.com/google/uuid"
	"sync"
)

type Directory struct {
	mu   sync.RWMutex
	last map[uuid.UUID]uuid.UUID
}

func NewDirectory() *Directory {
	return &Directory{last: make(map[uuid.UUID]uuid.UUID)}
}

// Record stores the contact in both directions so either side can reply.
func (d *Directory) Record(from, to uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last[from] = to
	d.last[to] = from
}

// Set stores only from -> to.
func (d *Directory) Set(from, to uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last[from] = to
}

func (d *Directory) Get(from uuid.UUID) (uuid.UUID, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	to, ok := d.last[from]
	return to, ok
}

// Forget drops the player's own entry and every entry pointing at them. Call it on disconnect.
func (d *Directory) Forget(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.last, id)
	for from, to := range d.last {
		if to == id {
			delete(d.last, from)
		}
	}
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.last)
}
