package service

import (
	"context"
	"encoding/json"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"lobby-service/internal/broadcast"
	"lobby-service/internal/metrics"
	"lobby-service/internal/safety"
	"lobby-service/internal/tasks"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpsRouter(t *testing.T) {
	logger := zap.NewNop().Sugar()
	registry, m := metrics.NewRegistry()

	ctrl := gomock.NewController(t)
	broadcaster := broadcast.NewMockBroadcaster(ctrl)
	broadcaster.EXPECT().BroadcastToStaff(gomock.Any(), gomock.Any()).Return(true).AnyTimes()

	runner := tasks.NewRunner(logger, m)
	t.Cleanup(func() {
		require.NoError(t, runner.Shutdown(context.Background()))
	})
	panicManager := safety.NewManager(logger, m, safety.PanicSettings(10*time.Minute, 30*time.Minute), broadcaster, nil, runner)

	alice := safety.Player{ID: uuid.MustParse("5a0a6c3e-8c7e-4b7a-9d8e-1f2a3b4c5d6e"), Name: "Alice"}
	require.NoError(t, panicManager.Activate(context.Background(), alice, "Alice", "spawn campers"))
	runner.Drain()

	router := newOpsRouter(logger, registry, []*safety.Manager{panicManager})

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "liveness", path: "/healthz/liveness", wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "metrics", path: "/metrics", wantStatus: http.StatusOK, wantBody: "lobby_safety_active_players"},
		{name: "unknown mode", path: "/safety/freeze", wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}

	t.Run("panic listing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/safety/panic", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var states []safetyStateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
		require.Len(t, states, 1)
		assert.Equal(t, alice.ID, states[0].PlayerID)
		assert.Equal(t, "spawn campers", states[0].Reason)
	})
}
