package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweeper_games_started_total",
		Help: "Boards generated, by difficulty preset (or 'custom').",
	}, []string{"preset"})

	GamesEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweeper_games_ended_total",
		Help: "Games that reached a terminal status, by outcome.",
	}, []string{"outcome"})

	Moves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweeper_moves_total",
		Help: "Moves applied to live boards, by kind.",
	}, []string{"kind"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
