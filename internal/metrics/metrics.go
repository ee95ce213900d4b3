// Package metrics holds the prometheus collectors shared by the lobby components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "lobby"

type Metrics struct {
	// ProfileLookups counts directory lookups by result: hit, miss, not_found, error.
	ProfileLookups *prometheus.CounterVec
	// Punishments counts moderation calls by action (issue, revoke), type and outcome.
	Punishments *prometheus.CounterVec
	// SafetyTransitions counts safety mode changes by mode and transition.
	SafetyTransitions *prometheus.CounterVec
	SafetyActive      *prometheus.GaugeVec
	// Broadcasts counts chat broadcasts by channel and outcome.
	Broadcasts *prometheus.CounterVec

	TasksInFlight *prometheus.GaugeVec
	TaskFailures  *prometheus.CounterVec

	// KafkaMessages counts consumed messages by type and outcome.
	KafkaMessages *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProfileLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_lookups_total",
			Help:      "Player profile lookups by result",
		}, []string{"result"}),
		Punishments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "punishments_total",
			Help:      "Punishment requests sent to the authority by action, type and outcome",
		}, []string{"action", "type", "outcome"}),
		SafetyTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safety_transitions_total",
			Help:      "Safety mode transitions by mode and transition",
		}, []string{"mode", "transition"}),
		SafetyActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "safety_active_players",
			Help:      "Players currently in a safety mode",
		}, []string{"mode"}),
		Broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "broadcasts_total",
			Help:      "Chat broadcasts by channel and outcome",
		}, []string{"channel", "outcome"}),
		TasksInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tasks_in_flight",
			Help:      "Background tasks currently running by name",
		}, []string{"task"}),
		TaskFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "task_failures_total",
			Help:      "Background task failures by name and kind (error, panic)",
		}, []string{"task", "kind"}),
		KafkaMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_messages_total",
			Help:      "Consumed Kafka messages by type and outcome",
		}, []string{"type", "outcome"}),
	}

	reg.MustRegister(
		m.ProfileLookups,
		m.Punishments,
		m.SafetyTransitions,
		m.SafetyActive,
		m.Broadcasts,
		m.TasksInFlight,
		m.TaskFailures,
		m.KafkaMessages,
	)

	return m
}

// NewRegistry returns a registry with the Go and process collectors plus the lobby metrics.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return registry, New(registry)
}

// NewUnregistered creates collectors bound to a throwaway registry. Intended for tests.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
