// Package metrics holds the Prometheus counters for game traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered for one server.
type Metrics struct {
	reg *prometheus.Registry

	GamesStarted  *prometheus.CounterVec // by mode
	GamesFinished *prometheus.CounterVec // by outcome (won/lost)
	Guesses       *prometheus.CounterVec // by result (accepted or a rejection reason)
	LiveSessions  prometheus.GaugeFunc
}

// New registers the collectors on a fresh registry.
// liveSessions is sampled at scrape time.
func New(liveSessions func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		GamesStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordle",
			Name:      "games_started_total",
			Help:      "Games created, by mode.",
		}, []string{"mode"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordle",
			Name:      "games_finished_total",
			Help:      "Games that ended, by outcome.",
		}, []string{"outcome"}),
		Guesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordle",
			Name:      "guesses_total",
			Help:      "Submitted guesses, by result.",
		}, []string{"result"}),
		LiveSessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "wordle",
			Name:      "live_sessions",
			Help:      "Sessions currently held in memory.",
		}, func() float64 { return float64(liveSessions()) }),
	}
	reg.MustRegister(m.GamesStarted, m.GamesFinished, m.Guesses, m.LiveSessions)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry (useful for tests).
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }
