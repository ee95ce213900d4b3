package directory

import (
	"context"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"lobby-service/internal/authority/authoritytest"
	"lobby-service/internal/directory/model"
	"lobby-service/internal/metrics"
	"lobby-service/internal/permission"
	"net/http"
	"sync"
	"testing"
	"time"
)

const (
	uuidRoute = "GET /profiles/uuid/{uuid}"
	nameRoute = "GET /profiles/{name}"
)

var (
	aliceId = uuid.MustParse("7e4e1f6a-3c6b-4a4e-9a57-6f1d0c2b8a11")
	bobId   = uuid.MustParse("0d9c5b3e-1a2f-4c8d-b7e6-2f4a9c1d3e55")
)

func aliceBody() map[string]any {
	return map[string]any{
		"uuid":     aliceId.String(),
		"username": "Alice",
		"rank": map[string]any{
			"name":        "mod",
			"weight":      50,
			"prefix":      "[MOD]",
			"color":       "blue",
			"permissions": []string{"moderation.*"},
			"nameTag":     "MOD",
		},
		"permissions": []string{"lobby.fly"},
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestDirectory(t *testing.T, srv *authoritytest.Server, opts ...Option) (Directory, *fakeClock, *metrics.Metrics) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := metrics.NewUnregistered()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	return NewHTTPDirectory(zap.NewNop().Sugar(), srv.Client(), m, DefaultTTL, opts...), clock, m
}

func TestHttpDirectory_GetProfile(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusOK, aliceBody())
	dir, _, _ := newTestDirectory(t, srv)

	profile, ok := dir.GetProfile(context.Background(), aliceId)
	require.True(t, ok)
	assert.Equal(t, aliceId, profile.UUID)
	assert.Equal(t, "Alice", profile.Username)
	assert.Equal(t, []string{"lobby.fly"}, profile.Permissions)
	require.NotNil(t, profile.Rank)
	assert.Equal(t, "mod", profile.Rank.Name)
	assert.Equal(t, 50, profile.Rank.Weight)
	assert.Equal(t, "[MOD]", profile.Rank.Prefix)
	assert.Equal(t, "blue", profile.Rank.Color)
	require.NotNil(t, profile.Rank.NameTag)
	assert.Equal(t, "MOD", *profile.Rank.NameTag)
	assert.False(t, profile.CachedAt.IsZero())
}

func TestHttpDirectory_CacheWithinTTL(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusOK, aliceBody())
	dir, clock, m := newTestDirectory(t, srv)

	first, ok := dir.GetProfile(context.Background(), aliceId)
	require.True(t, ok)
	assert.Equal(t, 1, srv.Hits(uuidRoute))

	clock.Advance(DefaultTTL - time.Second)
	second, ok := dir.GetProfile(context.Background(), aliceId)
	require.True(t, ok)
	assert.Equal(t, 1, srv.Hits(uuidRoute), "cache hit must not touch the network")
	assert.Equal(t, first, second)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProfileLookups.WithLabelValues("hit")))

	// mutating a returned profile must not leak into the cache
	second.Permissions[0] = "tampered"
	second.Rank.Weight = 1000
	third, _ := dir.GetProfile(context.Background(), aliceId)
	assert.Equal(t, first, third)
}

func TestHttpDirectory_CacheExpires(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusOK, aliceBody())
	dir, clock, _ := newTestDirectory(t, srv)

	first, _ := dir.GetProfile(context.Background(), aliceId)

	clock.Advance(DefaultTTL)
	second, ok := dir.GetProfile(context.Background(), aliceId)
	require.True(t, ok)
	assert.Equal(t, 2, srv.Hits(uuidRoute))
	assert.True(t, second.CachedAt.After(first.CachedAt))
}

func TestHttpDirectory_NotFound(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusNotFound, map[string]string{"message": "unknown player"})
	dir, _, m := newTestDirectory(t, srv)

	profile, ok := dir.GetProfile(context.Background(), bobId)
	assert.False(t, ok)
	assert.Nil(t, profile)
	assert.False(t, dir.HasPermission(context.Background(), bobId, "lobby.fly"))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.ProfileLookups.WithLabelValues("not_found")))

	// absent results are not cached
	assert.Equal(t, 2, srv.Hits(uuidRoute))
}

func TestHttpDirectory_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				authoritytest.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"uuid": 12`))
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(5 * time.Second):
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := authoritytest.NewServer(t)
			srv.Handle(http.MethodGet, "/profiles/uuid/{uuid}", tt.handler)
			dir, _, m := newTestDirectory(t, srv)

			profile, ok := dir.GetProfile(context.Background(), aliceId)
			assert.False(t, ok)
			assert.Nil(t, profile)
			assert.Equal(t, float64(1), testutil.ToFloat64(m.ProfileLookups.WithLabelValues("error")))
		})
	}
}

func TestHttpDirectory_TransportFailureFailsClosed(t *testing.T) {
	srv := authoritytest.NewServer(t)
	dir, _, _ := newTestDirectory(t, srv)
	srv.Close()

	assert.False(t, dir.HasPermission(context.Background(), aliceId, "lobby.fly"))
}

func TestHttpDirectory_GetProfileByNameBackfills(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.Handle(http.MethodGet, "/profiles/{name}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["name"] != "Alice" {
			authoritytest.WriteJSON(w, http.StatusNotFound, nil)
			return
		}
		authoritytest.WriteJSON(w, http.StatusOK, aliceBody())
	})
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusOK, aliceBody())
	dir, _, _ := newTestDirectory(t, srv)

	byName, ok := dir.GetProfileByName(context.Background(), "Alice")
	require.True(t, ok)
	assert.Equal(t, aliceId, byName.UUID)

	byId, ok := dir.GetProfile(context.Background(), aliceId)
	require.True(t, ok)
	assert.Equal(t, byName, byId)
	assert.Equal(t, 0, srv.Hits(uuidRoute), "uuid lookup after name lookup must be a cache hit")

	_, ok = dir.GetProfileByName(context.Background(), "Nobody")
	assert.False(t, ok)
	assert.Equal(t, 2, srv.Hits(nameRoute))
}

func TestHttpDirectory_GetProfileByNameWithoutUUID(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/{name}", http.StatusOK, map[string]any{"username": "Ghost"})
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusNotFound, nil)
	dir, _, _ := newTestDirectory(t, srv)

	profile, ok := dir.GetProfileByName(context.Background(), "Ghost")
	require.True(t, ok)
	assert.Equal(t, uuid.Nil, profile.UUID)

	_, ok = dir.GetProfile(context.Background(), uuid.Nil)
	assert.False(t, ok, "a profile without uuid must not be cached")
}

func TestHttpDirectory_Invalidate(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusOK, aliceBody())
	dir, _, _ := newTestDirectory(t, srv)

	_, _ = dir.GetProfile(context.Background(), aliceId)
	_, _ = dir.GetProfile(context.Background(), bobId)
	assert.Equal(t, 2, srv.Hits(uuidRoute))

	dir.Invalidate(aliceId)
	_, _ = dir.GetProfile(context.Background(), aliceId)
	_, _ = dir.GetProfile(context.Background(), bobId)
	assert.Equal(t, 3, srv.Hits(uuidRoute))

	dir.InvalidateAll()
	_, _ = dir.GetProfile(context.Background(), aliceId)
	_, _ = dir.GetProfile(context.Background(), bobId)
	assert.Equal(t, 5, srv.Hits(uuidRoute))
}

func TestHttpDirectory_HasPermission(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusOK, aliceBody())
	dir, _, _ := newTestDirectory(t, srv)

	assert.True(t, dir.HasPermission(context.Background(), aliceId, "lobby.fly"))
	assert.True(t, dir.HasPermission(context.Background(), aliceId, "moderation.ban"))
	assert.False(t, dir.HasPermission(context.Background(), aliceId, "admin.shutdown"))
	assert.Equal(t, 1, srv.Hits(uuidRoute))
}

func TestHttpDirectory_RankIndex(t *testing.T) {
	srv := authoritytest.NewServer(t)
	srv.JSON(http.MethodGet, "/profiles/uuid/{uuid}", http.StatusOK, aliceBody())

	idx := permission.NewRankIndex(map[string]*model.Rank{
		"default": {Name: "default", Permissions: []string{"lobby.spawn"}},
		"mod":     {Name: "mod", Permissions: []string{"moderation.*"}, Inherits: []string{"default"}},
	})
	dir, _, _ := newTestDirectory(t, srv, WithRankIndex(idx))

	assert.True(t, dir.HasPermission(context.Background(), aliceId, "lobby.spawn"))
}
