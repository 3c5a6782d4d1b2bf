package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/okulov/sweeper/internal/mines"
)

var Log = logrus.New()

var ErrNotFound = errors.New("session not found")

// Session pairs one live board with its identity and timestamps. Moves must
// run under the session lock; the engine itself makes no thread-safety
// guarantee, the boundary does.
type Session struct {
	sync.Mutex

	Id        string
	State     *mines.GameState
	StartedAt time.Time
	EndedAt   time.Time

	touchedAt time.Time
}

// Finish stamps EndedAt the first time the game reaches a terminal status.
func (s *Session) Finish() {
	if s.State.Status() != mines.StatusPlaying && s.EndedAt.IsZero() {
		s.EndedAt = time.Now().UTC()
	}
}

// Restart swaps in a fresh board and clears the timestamps.
func (s *Session) Restart(state *mines.GameState) {
	s.State = state
	s.StartedAt = time.Now().UTC()
	s.EndedAt = time.Time{}
}

// Store is an in-memory session registry. Sessions live exactly as long as
// the process, or until they sit untouched past the TTL.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func newId() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

func (st *Store) Create(state *mines.GameState) *Session {
	now := time.Now().UTC()
	s := &Session{
		Id:        newId(),
		State:     state,
		StartedAt: now,
		touchedAt: now,
	}
	st.mu.Lock()
	st.sessions[s.Id] = s
	st.mu.Unlock()
	return s
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	st.mu.Lock()
	s.touchedAt = time.Now().UTC()
	st.mu.Unlock()
	return s, nil
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep evicts sessions untouched for longer than the TTL and returns how
// many were dropped. A zero TTL disables eviction.
func (st *Store) Sweep(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	evicted := 0
	for id, s := range st.sessions {
		if now.Sub(s.touchedAt) > st.ttl {
			delete(st.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps periodically until the context is cancelled.
func (st *Store) Run(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if n := st.Sweep(now); n > 0 {
				Log.WithField("evicted", n).Debug("swept idle sessions")
			}
		}
	}
}
