package directory

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"lobby-service/internal/authority"
	"lobby-service/internal/directory/model"
	"lobby-service/internal/metrics"
	"lobby-service/internal/permission"
	"net/url"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

type httpDirectory struct {
	logger  *zap.SugaredLogger
	api     *authority.Client
	metrics *metrics.Metrics

	ttl   time.Duration
	now   func() time.Time
	ranks *permission.RankIndex

	// cache maps uuid.UUID to *model.PlayerProfile
	cache sync.Map
}

type Option func(d *httpDirectory)

// WithClock overrides the time source used for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(d *httpDirectory) {
		d.now = now
	}
}

// WithRankIndex replaces fetched rank permissions with the index's flattened set.
func WithRankIndex(idx *permission.RankIndex) Option {
	return func(d *httpDirectory) {
		d.ranks = idx
	}
}

func NewHTTPDirectory(logger *zap.SugaredLogger, api *authority.Client, m *metrics.Metrics, ttl time.Duration, opts ...Option) Directory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	d := &httpDirectory{
		logger:  logger,
		api:     api,
		metrics: m,
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// profileResponse is the authority's wire format. UUID is kept as a string so
// a missing or invalid id does not fail the whole decode.
type profileResponse struct {
	UUID        string      `json:"uuid"`
	Username    string      `json:"username"`
	Rank        *model.Rank `json:"rank"`
	Permissions []string    `json:"permissions"`
}

func (d *httpDirectory) GetProfile(ctx context.Context, playerId uuid.UUID) (*model.PlayerProfile, bool) {
	if cached, ok := d.cached(playerId); ok {
		d.metrics.ProfileLookups.WithLabelValues("hit").Inc()
		return cached, true
	}

	resp, ok := d.fetch(ctx, fmt.Sprintf("/profiles/uuid/%s", playerId), "playerId", playerId.String())
	if !ok {
		return nil, false
	}

	profile := d.toProfile(resp)
	// the requested id is authoritative for the cache key even if the body omits it
	profile.UUID = playerId
	d.store(profile)

	return profile.Clone(), true
}

func (d *httpDirectory) GetProfileByName(ctx context.Context, username string) (*model.PlayerProfile, bool) {
	resp, ok := d.fetch(ctx, "/profiles/"+url.PathEscape(username), "username", username)
	if !ok {
		return nil, false
	}

	profile := d.toProfile(resp)
	if profile.UUID != uuid.Nil {
		d.store(profile)
	}

	return profile.Clone(), true
}

func (d *httpDirectory) HasPermission(ctx context.Context, playerId uuid.UUID, perm string) bool {
	profile, ok := d.GetProfile(ctx, playerId)
	if !ok {
		return false
	}
	return permission.HasPermission(profile, perm)
}

func (d *httpDirectory) Invalidate(playerId uuid.UUID) {
	d.cache.Delete(playerId)
}

func (d *httpDirectory) InvalidateAll() {
	d.cache.Range(func(key, _ any) bool {
		d.cache.Delete(key)
		return true
	})
}

func (d *httpDirectory) cached(playerId uuid.UUID) (*model.PlayerProfile, bool) {
	v, ok := d.cache.Load(playerId)
	if !ok {
		return nil, false
	}

	profile := v.(*model.PlayerProfile)
	if d.now().Sub(profile.CachedAt) >= d.ttl {
		return nil, false
	}
	return profile.Clone(), true
}

func (d *httpDirectory) store(profile *model.PlayerProfile) {
	d.cache.Store(profile.UUID, profile.Clone())
}

func (d *httpDirectory) fetch(ctx context.Context, path string, keyName, key string) (*profileResponse, bool) {
	var resp profileResponse
	err := d.api.Get(ctx, path, &resp)
	if err == nil {
		d.metrics.ProfileLookups.WithLabelValues("miss").Inc()
		return &resp, true
	}

	if errors.Is(err, authority.ErrNotFound) {
		d.metrics.ProfileLookups.WithLabelValues("not_found").Inc()
		d.logger.Debugw("profile not known to authority", keyName, key)
		return nil, false
	}

	d.metrics.ProfileLookups.WithLabelValues("error").Inc()
	if authority.IsTransport(err) {
		d.logger.Warnw("authority unreachable while resolving profile", keyName, key, "error", err)
	} else {
		d.logger.Errorw("failed to resolve profile", keyName, key, "error", err)
	}
	return nil, false
}

func (d *httpDirectory) toProfile(resp *profileResponse) *model.PlayerProfile {
	profile := &model.PlayerProfile{
		Username:    resp.Username,
		Rank:        resp.Rank,
		Permissions: resp.Permissions,
		CachedAt:    d.now(),
	}
	if profile.Permissions == nil {
		profile.Permissions = make([]string, 0)
	}

	if id, err := uuid.Parse(resp.UUID); err == nil {
		profile.UUID = id
	} else if resp.UUID != "" {
		d.logger.Warnw("authority returned an invalid profile uuid", "username", resp.Username, "uuid", resp.UUID)
	}

	if d.ranks != nil {
		profile = d.ranks.Apply(profile)
	}
	return profile
}
