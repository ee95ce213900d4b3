package contact

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

func TestDirectory_SetGet(t *testing.T) {
	d := NewDirectory()
	alice, bob := uuid.New(), uuid.New()

	_, ok := d.Get(alice)
	assert.False(t, ok)

	d.Set(alice, bob)
	to, ok := d.Get(alice)
	assert.True(t, ok)
	assert.Equal(t, bob, to)

	_, ok = d.Get(bob)
	assert.False(t, ok, "Set is one directional")
}

func TestDirectory_Record(t *testing.T) {
	d := NewDirectory()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	d.Record(alice, bob)
	to, _ := d.Get(bob)
	assert.Equal(t, alice, to)

	// last write wins
	d.Record(carol, bob)
	to, _ = d.Get(bob)
	assert.Equal(t, carol, to)
	to, _ = d.Get(alice)
	assert.Equal(t, bob, to)
}

func TestDirectory_Forget(t *testing.T) {
	d := NewDirectory()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	d.Record(alice, bob)
	d.Set(carol, bob)
	assert.Equal(t, 3, d.Len())

	d.Forget(bob)
	assert.Equal(t, 0, d.Len())
	_, ok := d.Get(alice)
	assert.False(t, ok)
}

func TestDirectory_Concurrent(t *testing.T) {
	d := NewDirectory()
	target := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := uuid.New()
			d.Record(id, target)
			_, _ = d.Get(id)
		}()
	}
	wg.Wait()

	d.Forget(target)
	assert.Equal(t, 0, d.Len())
}
