package session

import (
	"context"
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/mines"
)

var Log = logrus.New()

var ErrNotFound = errors.New("session not found")

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// Session owns a single game. All access to the game goes through Do,
// which serialises callers.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	mu        sync.Mutex
	touchedAt time.Time
	game      *mines.Game
	now       func() time.Time
}

// Do runs fn with exclusive access to the game and returns the state it
// left behind.
func (s *Session) Do(fn func(g *mines.Game) error) (mines.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchedAt = s.now()
	err := fn(s.game)
	return s.game.Snapshot(), err
}

func (s *Session) Snapshot() mines.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}

func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns an empty store. Sessions idle for longer than ttl are
// dropped by Sweep; a ttl of zero keeps them forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *Store) Create(params mines.GameParams) (*Session, error) {
	game, err := mines.NewGame(params, createRand())
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	now := st.now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		touchedAt: now,
		game:      game,
		now:       st.now,
	}

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()

	Log.WithFields(logrus.Fields{
		"session": id.String(),
		"params":  params.String(),
	}).Debug("session created")
	return s, nil
}

func (st *Store) Get(id uuid.UUID) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Delete(id uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	Log.WithField("session", id.String()).Debug("session deleted")
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops every session that has not been touched since now-ttl and
// returns how many were dropped.
func (st *Store) Sweep(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	deadline := now.Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	swept := 0
	for id, s := range st.sessions {
		if s.TouchedAt().Before(deadline) {
			delete(st.sessions, id)
			swept++
		}
	}
	return swept
}

// Run sweeps the store every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	if st.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := st.Sweep(st.now()); n > 0 {
				Log.WithFields(logrus.Fields{
					"swept": n,
					"left":  st.Len(),
				}).Info("idle sessions dropped")
			}
		}
	}
}
