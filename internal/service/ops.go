package service

import (
	"encoding/json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"lobby-service/internal/safety"
	"net/http"
	"time"
)

type safetyStateResponse struct {
	PlayerID       uuid.UUID `json:"player_id"`
	PlayerName     string    `json:"player_name"`
	ActivationTime time.Time `json:"activation_time"`
	ActivatedBy    string    `json:"activated_by"`
	Reason         string    `json:"reason,omitempty"`
}

func newOpsRouter(logger *zap.SugaredLogger, registry *prometheus.Registry, managers []*safety.Manager) *mux.Router {
	byMode := make(map[safety.Mode]*safety.Manager, len(managers))
	for _, m := range managers {
		byMode[m.Mode()] = m
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.HandleFunc("/healthz/liveness", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Lists the players currently in a safety mode on this lobby.
	router.HandleFunc("/safety/{mode}", func(w http.ResponseWriter, r *http.Request) {
		manager, ok := byMode[safety.Mode(mux.Vars(r)["mode"])]
		if !ok {
			http.Error(w, "unknown safety mode", http.StatusNotFound)
			return
		}

		snapshot := manager.Snapshot()
		resp := make([]safetyStateResponse, 0, len(snapshot))
		for _, state := range snapshot {
			resp = append(resp, safetyStateResponse{
				PlayerID:       state.PlayerID,
				PlayerName:     state.PlayerName,
				ActivationTime: state.ActivationTime,
				ActivatedBy:    state.ActivatedBy,
				Reason:         state.Reason,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Errorw("failed to write safety listing", "error", err)
		}
	}).Methods(http.MethodGet)

	return router
}
