package handlers

import (
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulov/sweeper/internal/config"
	"github.com/okulov/sweeper/internal/mines"
	"github.com/okulov/sweeper/internal/session"
)

func newTestHandler() *GameHandler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewGameHandler(
		log,
		session.NewStore(time.Hour),
		config.NewWebSocket(),
		rand.New(rand.NewPCG(1, 2)),
	)
}

func do(
	t *testing.T, h http.HandlerFunc, target string, id string,
) (*httptest.ResponseRecorder, *GameSessionDTO) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, nil)
	if id != "" {
		r.SetPathValue("id", id)
	}
	w := httptest.NewRecorder()
	h(w, r)

	if w.Code >= 400 || w.Body.Len() == 0 {
		return w, nil
	}
	var dto GameSessionDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	return w, &dto
}

func TestNewGamePreset(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	w, dto := do(t, g.NewGame, "/v1/game?preset=beginner", "")

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, dto)
	assert.NotEmpty(t, dto.SessionId)
	assert.Equal(t, 8, dto.Width)
	assert.Equal(t, 8, dto.Height)
	assert.Equal(t, 10, dto.MineCount)
	assert.Equal(t, "playing", dto.Status)
	require.Len(t, dto.Grid, 64)
	for _, s := range dto.Grid {
		assert.Equal(t, mines.Unknown, s, "fresh boards leak nothing")
	}
}

func TestNewGameCustom(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	w, dto := do(t, g.NewGame, "/v1/game?width=5&height=4&mine_count=3", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 5, dto.Width)
	assert.Equal(t, 4, dto.Height)
	assert.Equal(t, 3, dto.MineCount)
}

func TestNewGameRejectsBadParams(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	for _, target := range []string{
		"/v1/game?width=5&height=4&mine_count=20",
		"/v1/game?width=0&height=4&mine_count=1",
		"/v1/game?preset=nightmare",
		"/v1/game",
	} {
		w, _ := do(t, g.NewGame, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestFetchUnknownSession(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	w, _ := do(t, g.Fetch, "/v1/game/nope", "nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveValidation(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	_, created := do(t, g.NewGame, "/v1/game?preset=beginner", "")
	id := created.SessionId

	w, _ := do(t, g.Open, "/v1/game/x/open?x=8&y=0", id)
	assert.Equal(t, http.StatusBadRequest, w.Code, "out of bounds")

	w, _ = do(t, g.Open, "/v1/game/x/open?x=1", id)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing y")

	w, _ = do(t, g.Open, "/v1/game/x/open?x=0&y=0", "gone")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlagOpenFlow(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	_, created := do(t, g.NewGame, "/v1/game?preset=beginner", "")
	id := created.SessionId

	w, dto := do(t, g.Flag, "/v1/game/x/flag?x=0&y=0", id)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, mines.Flagged, dto.Grid[0])

	// Opening the flagged cell must change nothing.
	_, dto = do(t, g.Open, "/v1/game/x/open?x=0&y=0", id)
	assert.Equal(t, mines.Flagged, dto.Grid[0])
	assert.Equal(t, "playing", dto.Status)

	_, dto = do(t, g.Flag, "/v1/game/x/flag?x=0&y=0", id)
	assert.Equal(t, mines.Unknown, dto.Grid[0])
}

func TestForfeitAndTerminalNoOps(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	_, created := do(t, g.NewGame, "/v1/game?preset=intermediate", "")
	id := created.SessionId

	w, dto := do(t, g.Forfeit, "/v1/game/x/forfeit", id)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lost", dto.Status)
	require.NotNil(t, dto.EndedAt)
	endedAt := *dto.EndedAt

	// Moves against a finished game change nothing, including the
	// end timestamp.
	after := dto.Grid
	_, dto = do(t, g.Open, "/v1/game/x/open?x=1&y=1", id)
	assert.Equal(t, "lost", dto.Status)
	assert.Equal(t, after, dto.Grid)
	require.NotNil(t, dto.EndedAt)
	assert.Equal(t, endedAt, *dto.EndedAt)
}

func TestReset(t *testing.T) {
	t.Parallel()

	g := newTestHandler()
	_, created := do(t, g.NewGame, "/v1/game?preset=beginner", "")
	id := created.SessionId

	_, dto := do(t, g.Forfeit, "/v1/game/x/forfeit", id)
	require.Equal(t, "lost", dto.Status)

	w, dto := do(t, g.Reset, "/v1/game/x/reset", id)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, dto.SessionId, "reset keeps the session id")
	assert.Equal(t, "playing", dto.Status)
	assert.Nil(t, dto.EndedAt)
	assert.Equal(t, 8, dto.Width)
	for _, s := range dto.Grid {
		assert.Equal(t, mines.Unknown, s)
	}
}

func TestExecuteCommand(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	state, err := mines.NewGame(mines.Presets["beginner"], r)
	require.NoError(t, err)

	assert.NoError(t, executeCommand(state, "g"))
	assert.NoError(t, executeCommand(state, "f 0 0"))
	assert.Equal(t, mines.Flagged, state.Snapshot()[0])
	assert.NoError(t, executeCommand(state, "f 0 0"))

	assert.Error(t, executeCommand(state, "boom"))
	assert.Error(t, executeCommand(state, "o 1"))
	assert.Error(t, executeCommand(state, "o a b"))
	assert.Error(t, executeCommand(state, "o 99 0"))

	assert.NoError(t, executeCommand(state, "ff"))
	assert.Equal(t, mines.StatusLost, state.Status())
}
