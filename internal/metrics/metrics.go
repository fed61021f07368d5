// internal/metrics/metrics.go
//
// Prometheus collectors shared across the app, registered at init.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "material_hero_games_started_total",
			Help: "Games started",
		},
	)
	GamesFinished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "material_hero_games_finished_total",
			Help: "Games that reached game over",
		},
	)
	RoundsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "material_hero_rounds_resolved_total",
			Help: "Resolved rounds by outcome",
		},
		[]string{"outcome"},
	)
	Explanations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "material_hero_explanations_total",
			Help: "Explanation requests by result (ok, empty, error, no_key)",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(GamesStarted)
	prometheus.MustRegister(GamesFinished)
	prometheus.MustRegister(RoundsResolved)
	prometheus.MustRegister(Explanations)
}
