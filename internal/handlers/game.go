package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/okulov/sweeper/internal/config"
	"github.com/okulov/sweeper/internal/metrics"
	"github.com/okulov/sweeper/internal/mines"
	"github.com/okulov/sweeper/internal/session"
)

type GameHandler struct {
	log   *logrus.Logger
	store *session.Store
	ws    *config.WebSocket
	rnd   *rand.Rand
	rndMu sync.Mutex // rand.Rand is not goroutine-safe
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:   log,
		store: store,
		ws:    ws,
		rnd:   rnd,
	}
}

func (g *GameHandler) newState(params mines.GameParams) (*mines.GameState, error) {
	g.rndMu.Lock()
	defer g.rndMu.Unlock()
	return mines.NewGame(params, g.rnd)
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	params, label, err := dto.GameParams()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	state, err := g.newState(params)
	if err != nil {
		var ipe mines.InvalidParamsError
		if errors.As(err, &ipe) {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.log, wrapError(err))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to generate a new game")
		return
	}

	s := g.store.Create(state)
	metrics.GamesStarted.WithLabelValues(label).Inc()
	g.log.WithFields(logrus.Fields{
		"sessionId": s.Id,
		"seed":      params.Seed(),
	}).Debug("created game session")

	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.log, NewGameSessionDTO(s))
}

func (g *GameHandler) session(
	w http.ResponseWriter, r *http.Request,
) (*session.Session, bool) {
	s, err := g.store.Get(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to fetch session")
		return nil, false
	}
	return s, true
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}
	s.Lock()
	defer s.Unlock()
	sendJSONOrLog(w, g.log, NewGameSessionDTO(s))
}

// move applies one mutation under the session lock and reports the final
// snapshot. Coordinates outside the grid are rejected here; the engine
// would treat them as no-ops anyway.
func (g *GameHandler) move(
	w http.ResponseWriter, r *http.Request,
	kind string,
	apply func(state *mines.GameState, x, y int),
) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(err))
		return
	}

	s, ok := g.session(w, r)
	if !ok {
		return
	}

	s.Lock()
	defer s.Unlock()

	if !s.State.PointInBounds(pos.X, pos.Y) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.log, wrapError(errors.New("invalid cell position")))
		return
	}

	before := s.State.Status()
	apply(s.State, pos.X, pos.Y)
	metrics.Moves.WithLabelValues(kind).Inc()

	if after := s.State.Status(); before == mines.StatusPlaying &&
		after != mines.StatusPlaying {
		metrics.GamesEnded.WithLabelValues(after.String()).Inc()
		s.Finish()
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(s))
}

func (g *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, "open", func(state *mines.GameState, x, y int) {
		state.OpenCell(x, y)
	})
}

func (g *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, "flag", func(state *mines.GameState, x, y int) {
		state.FlagCell(x, y)
	})
}

func (g *GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, "chord", func(state *mines.GameState, x, y int) {
		state.ChordCell(x, y)
	})
}

func (g *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	s.Lock()
	defer s.Unlock()

	before := s.State.Status()
	s.State.Forfeit()
	if before == mines.StatusPlaying {
		metrics.GamesEnded.WithLabelValues(s.State.Status().String()).Inc()
		s.Finish()
	}

	sendJSONOrLog(w, g.log, NewGameSessionDTO(s))
}

// Reset discards the board and deals a fresh one with the same params.
func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	s.Lock()
	defer s.Unlock()

	state, err := g.newState(s.State.GameParams)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithField("error", err).Error("unable to regenerate game")
		return
	}
	s.Restart(state)
	metrics.GamesStarted.WithLabelValues("reset").Inc()

	sendJSONOrLog(w, g.log, NewGameSessionDTO(s))
}

func (g *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, map[string]any{
		"status":   "ok",
		"sessions": g.store.Len(),
	})
}
