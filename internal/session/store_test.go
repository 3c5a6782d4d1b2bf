package session

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okulov/sweeper/internal/mines"
)

func newTestState(t *testing.T) *mines.GameState {
	t.Helper()
	r := rand.New(rand.NewPCG(1, 2))
	state, err := mines.NewGame(mines.Presets["beginner"], r)
	require.NoError(t, err)
	return state
}

func TestStoreReadEmpty(t *testing.T) {
	t.Parallel()

	st := NewStore(time.Hour)
	_, err := st.Get("no such id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreCreateAndGet(t *testing.T) {
	t.Parallel()

	st := NewStore(time.Hour)
	s := st.Create(newTestState(t))
	require.NotEmpty(t, s.Id)
	assert.False(t, s.StartedAt.IsZero())
	assert.True(t, s.EndedAt.IsZero())

	got, err := st.Get(s.Id)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())
}

func TestStoreDistinctIds(t *testing.T) {
	t.Parallel()

	st := NewStore(time.Hour)
	seen := map[string]bool{}
	for range 100 {
		s := st.Create(newTestState(t))
		require.False(t, seen[s.Id], "duplicate session id %s", s.Id)
		seen[s.Id] = true
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	st := NewStore(time.Hour)
	s := st.Create(newTestState(t))
	st.Delete(s.Id)
	_, err := st.Get(s.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, st.Len())
}

func TestStoreSweep(t *testing.T) {
	t.Parallel()

	st := NewStore(time.Minute)
	stale := st.Create(newTestState(t))
	fresh := st.Create(newTestState(t))

	// Touch only one of the two, then sweep from two minutes ahead.
	future := time.Now().UTC().Add(2 * time.Minute)
	st.mu.Lock()
	st.sessions[fresh.Id].touchedAt = future
	st.mu.Unlock()

	assert.Equal(t, 1, st.Sweep(future))
	_, err := st.Get(stale.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(fresh.Id)
	assert.NoError(t, err)
}

func TestStoreSweepDisabled(t *testing.T) {
	t.Parallel()

	st := NewStore(0)
	st.Create(newTestState(t))
	assert.Equal(t, 0, st.Sweep(time.Now().Add(24*time.Hour)))
	assert.Equal(t, 1, st.Len())
}

func TestSessionFinish(t *testing.T) {
	t.Parallel()

	st := NewStore(time.Hour)
	s := st.Create(newTestState(t))

	s.Finish()
	assert.True(t, s.EndedAt.IsZero(), "a live game has no end timestamp")

	s.State.Forfeit()
	s.Finish()
	require.False(t, s.EndedAt.IsZero())

	endedAt := s.EndedAt
	s.Finish()
	assert.Equal(t, endedAt, s.EndedAt, "Finish stamps only once")
}

func TestSessionRestart(t *testing.T) {
	t.Parallel()

	st := NewStore(time.Hour)
	s := st.Create(newTestState(t))
	s.State.Forfeit()
	s.Finish()

	s.Restart(newTestState(t))
	assert.Equal(t, mines.StatusPlaying, s.State.Status())
	assert.True(t, s.EndedAt.IsZero())
}
