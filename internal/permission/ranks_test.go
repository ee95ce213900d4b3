package permission

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lobby-service/internal/directory/model"
	"testing"
)

var testRanks = map[string]*model.Rank{
	"default": {Name: "default", Weight: 0, Permissions: []string{"lobby.chat", "lobby.spawn"}},
	"helper":  {Name: "helper", Weight: 10, Permissions: []string{"moderation.warn", "lobby.chat"}, Inherits: []string{"default"}},
	"mod":     {Name: "mod", Weight: 50, Permissions: []string{"moderation.*"}, Inherits: []string{"helper", "default"}},
	// cycle: a -> b -> a
	"a": {Name: "a", Permissions: []string{"a.perm"}, Inherits: []string{"b"}},
	"b": {Name: "b", Permissions: []string{"b.perm"}, Inherits: []string{"a", "missing"}},
	// self inheritance
	"self": {Name: "self", Permissions: []string{"self.perm"}, Inherits: []string{"self"}},
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		rank string
		want []string
	}{
		{rank: "default", want: []string{"lobby.chat", "lobby.spawn"}},
		{rank: "helper", want: []string{"moderation.warn", "lobby.chat", "lobby.spawn"}},
		{rank: "mod", want: []string{"moderation.*", "moderation.warn", "lobby.chat", "lobby.spawn"}},
		{rank: "a", want: []string{"a.perm", "b.perm"}},
		{rank: "b", want: []string{"b.perm", "a.perm"}},
		{rank: "self", want: []string{"self.perm"}},
		{rank: "unknown", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.rank, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(testRanks, tt.rank))
		})
	}
}

func TestRankIndex(t *testing.T) {
	idx := NewRankIndex(testRanks)

	perms, ok := idx.Permissions("helper")
	require.True(t, ok)
	assert.Equal(t, []string{"moderation.warn", "lobby.chat", "lobby.spawn"}, perms)

	_, ok = idx.Permissions("unknown")
	assert.False(t, ok)

	profile := &model.PlayerProfile{
		UUID:     uuid.New(),
		Username: "Alice",
		Rank:     &model.Rank{Name: "helper", Weight: 10, Permissions: []string{"moderation.warn"}},
	}

	applied := idx.Apply(profile)
	assert.True(t, HasPermission(applied, "lobby.spawn"))
	assert.False(t, HasPermission(profile, "lobby.spawn"), "Apply must not mutate the input")

	// Rebuild replaces the whole index
	idx.Rebuild(map[string]*model.Rank{
		"helper": {Name: "helper", Permissions: []string{"only.this"}},
	})
	applied = idx.Apply(profile)
	assert.Equal(t, []string{"only.this"}, applied.Rank.Permissions)
	_, ok = idx.Permissions("mod")
	assert.False(t, ok)
}

func TestRankIndex_ApplyWithoutRank(t *testing.T) {
	idx := NewRankIndex(testRanks)

	assert.Nil(t, idx.Apply(nil))

	unranked := &model.PlayerProfile{Username: "Bob"}
	assert.Equal(t, unranked, idx.Apply(unranked))

	unknown := &model.PlayerProfile{Rank: &model.Rank{Name: "ghost", Permissions: []string{"x"}}}
	assert.Equal(t, []string{"x"}, idx.Apply(unknown).Rank.Permissions)
}
