// Package metrics exposes Prometheus counters for the game server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mudra",
		Name:      "frames_total",
		Help:      "Landmark frames received from clients.",
	})

	roundsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mudra",
		Name:      "rounds_total",
		Help:      "Resolved rounds by outcome from the player's perspective.",
	}, []string{"outcome"})

	matchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mudra",
		Name:      "matches_total",
		Help:      "Completed matches by winner.",
	}, []string{"winner"})

	connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mudra",
		Name:      "connected_clients",
		Help:      "Currently connected play WebSocket clients.",
	})
)

// RecordFrame counts one received landmark frame.
func RecordFrame() {
	framesTotal.Inc()
}

// RecordRound counts one resolved round.
func RecordRound(outcome string) {
	roundsTotal.WithLabelValues(outcome).Inc()
}

// RecordMatch counts one completed match.
func RecordMatch(winner string) {
	matchesTotal.WithLabelValues(winner).Inc()
}

// ClientConnected tracks a new play client.
func ClientConnected() {
	connectedClients.Inc()
}

// ClientDisconnected tracks a departed play client.
func ClientDisconnected() {
	connectedClients.Dec()
}
