package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/okulov/sweeper/internal/config"
	"github.com/okulov/sweeper/internal/handlers"
	"github.com/okulov/sweeper/internal/metrics"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, config.NewWebSocket(), createRand(),
	)

	a.router.HandleFunc("GET /v1/status", game.Status)
	a.router.Handle("GET /metrics", metrics.Handler())

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/open", game.Open)
	a.router.HandleFunc("POST /v1/game/{id}/flag", game.Flag)
	a.router.HandleFunc("POST /v1/game/{id}/chord", game.Chord)
	a.router.HandleFunc("POST /v1/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("POST /v1/game/{id}/reset", game.Reset)
	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)
}
