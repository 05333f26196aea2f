package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

func newGame(t *testing.T, secret string) *game.Game {
	t.Helper()
	g, err := game.NewWithSecret(words.MustEmbedded(), secret)
	require.NoError(t, err)
	return g
}

func TestPlayWin(t *testing.T) {
	g := newGame(t, "DYSON")
	in := strings.NewReader("wordy\n\nolleh\nhi\ndyson\n")
	var out bytes.Buffer

	res, err := Play(context.Background(), g, in, &out, Options{ShowKeyboard: true})
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.False(t, res.Quit)
	assert.Equal(t, 2, res.Attempts)

	s := out.String()
	assert.Contains(t, s, "Welcome to Wordle!")
	assert.Contains(t, s, words.ErrNotAWord.Error())
	assert.Contains(t, s, words.ErrWrongLength.Error())
	assert.Contains(t, s, "[6 left]")
	assert.Contains(t, s, "[5 left]")
	assert.NotContains(t, s, "[4 left]")
	assert.Contains(t, s, "Congratulations! The word was DYSON!")
}

func TestPlayLoss(t *testing.T) {
	g := newGame(t, "DYSON")
	in := strings.NewReader(strings.Repeat("crane\n", 10))
	var out bytes.Buffer

	res, err := Play(context.Background(), g, in, &out, Options{})
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.False(t, res.Quit)
	assert.Equal(t, game.MaxAttempts, res.Attempts)
	assert.Contains(t, out.String(), "Out of guesses! The word was DYSON!")
}

func TestPlayCustomAttempts(t *testing.T) {
	g := newGame(t, "DYSON")
	res, err := Play(context.Background(), g, strings.NewReader("crane\ncrane\ncrane\n"), &bytes.Buffer{}, Options{Attempts: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
}

func TestPlayQuitOnEOF(t *testing.T) {
	g := newGame(t, "DYSON")
	var out bytes.Buffer
	res, err := Play(context.Background(), g, strings.NewReader("crane\n"), &out, Options{})
	require.NoError(t, err)
	assert.True(t, res.Quit)
	assert.Equal(t, 1, res.Attempts)
	assert.Contains(t, out.String(), "Thanks for playing Wordle! The word was DYSON!")
}

func TestPlayQuitOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Play(ctx, newGame(t, "DYSON"), strings.NewReader("dyson\n"), &bytes.Buffer{}, Options{})
	require.NoError(t, err)
	assert.True(t, res.Quit)
	assert.Equal(t, 0, res.Attempts)
}

func TestPlayQuitOnCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	type result struct {
		res Outcome
		err error
	}
	done := make(chan result, 1)
	go func() {
		res, err := Play(ctx, newGame(t, "DYSON"), pr, &out, Options{})
		done <- result{res, err}
	}()

	// Nothing is ever written to the pipe, so Play is blocked on input.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.True(t, r.res.Quit)
		assert.Equal(t, 0, r.res.Attempts)
		assert.Contains(t, out.String(), "Thanks for playing Wordle! The word was DYSON!")
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after cancel")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPlayReportsWriteError(t *testing.T) {
	_, err := Play(context.Background(), newGame(t, "DYSON"), strings.NewReader("dyson\n"), failingWriter{}, Options{})
	assert.Error(t, err)
}

func TestRenderResultKeepsLetterOrder(t *testing.T) {
	r := game.Score("DYSON", "WORDY")
	out := RenderResult(r)
	idx := -1
	for _, c := range "WORDY" {
		i := strings.IndexRune(out, c)
		require.Greater(t, i, idx, "letter %c out of order in %q", c, out)
		idx = i
	}
}

func TestRenderKeyboardHasEveryKey(t *testing.T) {
	var kb game.Keyboard
	out := RenderKeyboard(kb)
	for c := 'A'; c <= 'Z'; c++ {
		assert.Contains(t, out, string(c))
	}
	assert.Equal(t, 3, strings.Count(out, "\n")+1)
}
