package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

func newSession(t *testing.T, secret string) *Session {
	t.Helper()
	g, err := game.NewWithSecret(words.MustEmbedded(), secret)
	require.NoError(t, err)
	return NewSession(g, "random")
}

func TestSessionWin(t *testing.T) {
	s := newSession(t, "DYSON")

	_, snap, err := s.Guess("wordy")
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, game.MaxAttempts-1, snap.Remaining)
	assert.Empty(t, snap.Secret)

	r, snap, err := s.Guess("dyson")
	require.NoError(t, err)
	assert.True(t, game.Won(r))
	assert.Equal(t, StateWon, snap.State)
	assert.Equal(t, "DYSON", snap.Secret)
	assert.Len(t, snap.History, 2)

	_, _, err = s.Guess("crane")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSessionLoss(t *testing.T) {
	s := newSession(t, "DYSON")
	var snap Snapshot
	var err error
	for i := 0; i < game.MaxAttempts; i++ {
		_, snap, err = s.Guess("crane")
		require.NoError(t, err)
	}
	assert.Equal(t, StateLost, snap.State)
	assert.Equal(t, 0, snap.Remaining)
	assert.Equal(t, "DYSON", snap.Secret)

	_, _, err = s.Guess("dyson")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSessionInvalidGuessKeepsAttempts(t *testing.T) {
	s := newSession(t, "DYSON")
	_, snap, err := s.Guess("olleh")
	assert.ErrorIs(t, err, words.ErrNotAWord)
	assert.Equal(t, game.MaxAttempts, snap.Remaining)
	assert.Empty(t, snap.History)
}

func TestSessionConcurrentGuesses(t *testing.T) {
	s := newSession(t, "DYSON")
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.Guess("crane")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok, finished := 0, 0
	for err := range errs {
		switch err {
		case nil:
			ok++
		case ErrFinished:
			finished++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, game.MaxAttempts, ok)
	assert.Equal(t, 20-game.MaxAttempts, finished)
	assert.Equal(t, StateLost, s.Snapshot().State)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t, "DYSON")

	require.NoError(t, st.Save(ctx, s))
	got, err := st.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, 1, st.Len())

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore().(*memory)
	now := time.Now()
	m.now = func() time.Time { return now.Add(time.Hour) }

	stale := newSession(t, "DYSON")
	fresh := newSession(t, "CRANE")
	fresh.updatedAt = now.Add(59 * time.Minute)
	require.NoError(t, m.Save(ctx, stale))
	require.NoError(t, m.Save(ctx, fresh))

	assert.Equal(t, 1, m.Sweep(ctx, 30*time.Minute))
	_, err := m.Get(ctx, stale.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, fresh.ID())
	assert.NoError(t, err)
}

func TestRunSweeperStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunSweeper(ctx, NewMemoryStore(), time.Millisecond, time.Minute) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
