package permission

import (
	"lobby-service/internal/directory/model"
	"strings"
)

const (
	Wildcard  = "*"
	separator = "."
)

// HasPermission reports whether the profile grants perm, either directly or
// through its rank. A nil profile or an empty permission is always denied.
func HasPermission(profile *model.PlayerProfile, perm string) bool {
	if profile == nil || perm == "" {
		return false
	}

	if grants(profile.Permissions, perm) {
		return true
	}

	if profile.Rank != nil && grants(profile.Rank.Permissions, perm) {
		return true
	}

	return false
}

// grants checks an exact match, then every hierarchical wildcard from the
// shortest prefix up ("a.*", "a.b.*", ...), then the global wildcard.
func grants(nodes []string, perm string) bool {
	if len(nodes) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		set[n] = struct{}{}
	}

	if _, ok := set[perm]; ok {
		return true
	}

	parts := strings.Split(perm, separator)
	var prefix strings.Builder
	for i, part := range parts {
		if i > 0 {
			prefix.WriteString(separator)
		}
		prefix.WriteString(part)

		if _, ok := set[prefix.String()+separator+Wildcard]; ok {
			return true
		}
	}

	_, ok := set[Wildcard]
	return ok
}

// CanPunish reports whether actor outranks target. Actors without a rank can never punish.
func CanPunish(actor, target *model.PlayerProfile) bool {
	if actor == nil || actor.Rank == nil {
		return false
	}
	return actor.Weight() > target.Weight()
}
