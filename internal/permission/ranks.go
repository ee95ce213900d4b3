package permission

import (
	"lobby-service/internal/directory/model"
	"sync/atomic"
)

// Flatten resolves a rank's own permissions plus everything it inherits,
// depth first. Each rank is visited at most once so inheritance cycles terminate.
// Unknown rank names are skipped. The result is deduplicated in first-seen order.
func Flatten(ranks map[string]*model.Rank, name string) []string {
	visited := make(map[string]struct{})
	seen := make(map[string]struct{})
	result := make([]string, 0)

	var walk func(string)
	walk = func(current string) {
		if _, ok := visited[current]; ok {
			return
		}
		visited[current] = struct{}{}

		rank, ok := ranks[current]
		if !ok || rank == nil {
			return
		}

		for _, p := range rank.Permissions {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			result = append(result, p)
		}

		for _, parent := range rank.Inherits {
			walk(parent)
		}
	}
	walk(name)

	return result
}

// RankIndex holds a precomputed flattened permission set per rank. It is
// rebuilt wholesale whenever rank definitions change, so lookups never walk
// the inheritance graph.
type RankIndex struct {
	flattened atomic.Pointer[map[string][]string]
}

func NewRankIndex(ranks map[string]*model.Rank) *RankIndex {
	idx := &RankIndex{}
	idx.Rebuild(ranks)
	return idx
}

func (i *RankIndex) Rebuild(ranks map[string]*model.Rank) {
	flattened := make(map[string][]string, len(ranks))
	for name := range ranks {
		flattened[name] = Flatten(ranks, name)
	}
	i.flattened.Store(&flattened)
}

// Permissions returns the flattened permission set of the named rank.
func (i *RankIndex) Permissions(rank string) ([]string, bool) {
	m := i.flattened.Load()
	if m == nil {
		return nil, false
	}
	perms, ok := (*m)[rank]
	return perms, ok
}

// Apply returns a copy of profile whose rank permissions are replaced by the
// flattened set. Profiles with an unknown or missing rank are returned as a plain copy.
func (i *RankIndex) Apply(profile *model.PlayerProfile) *model.PlayerProfile {
	c := profile.Clone()
	if c == nil || c.Rank == nil {
		return c
	}

	if perms, ok := i.Permissions(c.Rank.Name); ok {
		c.Rank.Permissions = append([]string(nil), perms...)
	}
	return c
}
