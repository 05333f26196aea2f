// internal/store/session.go
//
// Session is the caller-side wrapper around a game.Game.
// The engine keeps no attempt counter and no finished flag; hosts that serve
// games over a network keep them here, next to the lock that serializes
// guesses for one game.

package store

import (
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
)

// ErrFinished is returned when guessing in a game that is already won or lost.
var ErrFinished = errors.New("game finished")

// State is the coarse outcome of a session.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Session holds one game plus the attempt bookkeeping around it.
type Session struct {
	mu        sync.Mutex
	game      *game.Game
	mode      string
	remaining int
	state     State
	history   []game.Result
	updatedAt time.Time
}

// NewSession wraps g with the standard number of attempts.
func NewSession(g *game.Game, mode string) *Session {
	return &Session{
		game:      g,
		mode:      mode,
		remaining: game.MaxAttempts,
		state:     StatePlaying,
		updatedAt: time.Now(),
	}
}

// Guess applies one guess. Invalid guesses (words.Err*) do not use up an attempt.
func (s *Session) Guess(raw string) (game.Result, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return game.Result{}, s.snapshotLocked(), ErrFinished
	}
	r, err := s.game.MakeGuess(raw)
	if err != nil {
		return game.Result{}, s.snapshotLocked(), err
	}
	s.remaining--
	s.history = append(s.history, r)
	s.updatedAt = time.Now()

	switch {
	case game.Won(r):
		s.state = StateWon
	case s.remaining == 0:
		s.state = StateLost
	}
	return r, s.snapshotLocked(), nil
}

// Snapshot is a consistent, read-only view of a session.
type Snapshot struct {
	ID        string
	Mode      string
	Remaining int
	State     State
	Keyboard  game.Keyboard
	History   []game.Result
	Secret    string // Only set once the game is over.
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:        s.game.ID,
		Mode:      s.mode,
		Remaining: s.remaining,
		State:     s.state,
		Keyboard:  s.game.Keyboard(),
		History:   append([]game.Result(nil), s.history...),
	}
	if s.state != StatePlaying {
		snap.Secret = s.game.Secret()
	}
	return snap
}

// ID returns the id of the wrapped game.
func (s *Session) ID() string { return s.game.ID }

func (s *Session) lastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
