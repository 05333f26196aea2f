package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/metrics"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

type testEnv struct {
	srv *Server
	now time.Time
}

func newTestEnv(t *testing.T, mutate func(*Options)) *testEnv {
	t.Helper()
	env := &testEnv{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	nop := zerolog.Nop()
	opts := Options{
		ClientOrigin:     "http://localhost:5173",
		JWTSecret:        "test-secret",
		TokenTTL:         time.Hour,
		DailySalt:        "test-salt",
		AllowFixedAnswer: true,
		Now:              func() time.Time { return env.now },
		Logger:           &nop,
	}
	if mutate != nil {
		mutate(&opts)
	}
	st := store.NewMemoryStore()
	env.srv = New(st, words.MustEmbedded(), metrics.New(st.Len), opts)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) newGame(t *testing.T, body any) newGameRes {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/game/new", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.GameID)
	require.NotEmpty(t, res.Token)
	return res
}

func decodeGuess(t *testing.T, rec *httptest.ResponseRecorder) guessRes {
	t.Helper()
	var res guessRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return res
}

func positionsOf(ls []letterDTO) []letters.Position {
	out := make([]letters.Position, len(ls))
	for i, l := range ls {
		out[i] = l.Position
	}
	return out
}

func TestHealthAndIndex(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "POST /game/guess")

	rec = env.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/nope"`)

	rec = env.do(t, http.MethodOptions, "/game/guess", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDebugWords(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/debug/words", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counts map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	a, g := words.MustEmbedded().Stats()
	assert.Equal(t, a, counts["answers"])
	assert.Equal(t, g, counts["allowed"])
}

func TestPlayToWin(t *testing.T) {
	env := newTestEnv(t, nil)
	ng := env.newGame(t, newGameReq{Answer: "dyson"})
	assert.Equal(t, game.MaxAttempts, ng.Remaining)
	assert.Equal(t, modeRandom, ng.Mode)

	rec := env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "wordy"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeGuess(t, rec)
	assert.Equal(t, []letters.Position{
		letters.NotInWord, letters.WrongPosition, letters.NotInWord, letters.WrongPosition, letters.WrongPosition,
	}, positionsOf(res.Letters))
	assert.Equal(t, "W", res.Letters[0].Char)
	assert.Equal(t, 5, res.Remaining)
	assert.Equal(t, store.StatePlaying, res.State)
	assert.Empty(t, res.Answer)
	assert.Contains(t, rec.Body.String(), `"position":"present"`)

	rec = env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: " DADDY "})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []letters.Position{
		letters.Correct, letters.NotInWord, letters.NotInWord, letters.NotInWord, letters.WrongPosition,
	}, positionsOf(decodeGuess(t, rec).Letters))

	rec = env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "dyson"})
	require.Equal(t, http.StatusOK, rec.Code)
	res = decodeGuess(t, rec)
	assert.Equal(t, store.StateWon, res.State)
	assert.Equal(t, "DYSON", res.Answer)
	assert.Equal(t, 3, res.Remaining)

	rec = env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "crane"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "game_finished")
}

func TestPlayToLoss(t *testing.T) {
	env := newTestEnv(t, nil)
	ng := env.newGame(t, newGameReq{Answer: "dyson"})

	var res guessRes
	for i := 0; i < game.MaxAttempts; i++ {
		rec := env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "crane"})
		require.Equal(t, http.StatusOK, rec.Code)
		res = decodeGuess(t, rec)
	}
	assert.Equal(t, store.StateLost, res.State)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, "DYSON", res.Answer)
}

func TestInvalidGuessDoesNotCostAnAttempt(t *testing.T) {
	env := newTestEnv(t, nil)
	ng := env.newGame(t, nil)

	tests := []struct {
		guess  string
		reason string
	}{
		{"Öster", "not_ascii"},
		{"hi", "wrong_length"},
		{"olleh", "not_a_word"},
	}
	for _, tt := range tests {
		rec := env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: tt.guess})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tt.guess)
		assert.Contains(t, rec.Body.String(), `"error":"`+tt.reason+`"`)
	}

	rec := env.do(t, http.MethodGet, "/game/"+ng.GameID+"/keyboard", ng.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var kb keyboardRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kb))
	assert.Equal(t, game.MaxAttempts, kb.Remaining)
	assert.Empty(t, kb.Guesses)
}

func TestTokenRequired(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.newGame(t, newGameReq{Answer: "dyson"})
	b := env.newGame(t, newGameReq{Answer: "crane"})

	rec := env.do(t, http.MethodPost, "/game/guess", "", guessReq{GameID: a.GameID, Guess: "wordy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/game/guess", "garbage", guessReq{GameID: a.GameID, Guess: "wordy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/game/guess", b.Token, guessReq{GameID: a.GameID, Guess: "wordy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token_mismatch")

	rec = env.do(t, http.MethodGet, "/game/"+a.GameID+"/keyboard", b.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A token signed with another key is rejected.
	other := &tokenIssuer{secret: []byte("other"), ttl: time.Hour, now: time.Now}
	forged, _, err := other.Issue(a.GameID)
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/game/guess", forged, guessReq{GameID: a.GameID, Guess: "wordy"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	env := newTestEnv(t, nil)
	ng := env.newGame(t, nil)

	env.now = env.now.Add(2 * time.Hour)
	rec := env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "crane"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownGame(t *testing.T) {
	env := newTestEnv(t, nil)
	tok, _, err := env.srv.tokens.Issue("no-such-game")
	require.NoError(t, err)
	rec := env.do(t, http.MethodPost, "/game/guess", tok, guessReq{GameID: "no-such-game", Guess: "crane"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFixedAnswerDisabled(t *testing.T) {
	env := newTestEnv(t, func(o *Options) { o.AllowFixedAnswer = false })
	rec := env.do(t, http.MethodPost, "/game/new", "", newGameReq{Answer: "dyson"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNewGameBadInput(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, http.MethodPost, "/game/new", "", newGameReq{Mode: "blitz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/game/new", "", newGameReq{Answer: "toolong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/game/new", strings.NewReader("{"))
	w := httptest.NewRecorder()
	env.srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNewGameEmptyBodyIsRandom(t *testing.T) {
	env := newTestEnv(t, nil)

	bodies := map[string]io.Reader{
		"no body":    nil,
		"empty":      strings.NewReader(""),
		"chunked":    struct{ io.Reader }{strings.NewReader("")},
		"whitespace": struct{ io.Reader }{strings.NewReader(" \n")},
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/game/new", body)
			if name == "chunked" || name == "whitespace" {
				require.EqualValues(t, -1, req.ContentLength)
			}
			w := httptest.NewRecorder()
			env.srv.Handler().ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var res newGameRes
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, modeRandom, res.Mode)
			assert.Equal(t, game.MaxAttempts, res.Remaining)
		})
	}
}

func TestDailyGame(t *testing.T) {
	env := newTestEnv(t, nil)
	ng := env.newGame(t, newGameReq{Mode: modeDaily})
	assert.Equal(t, "2026-10-19", ng.Date)
	assert.Equal(t, modeDaily, ng.Mode)

	_, secret := daily.Secret(words.MustEmbedded(), env.now, "test-salt")
	rec := env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: secret})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeGuess(t, rec)
	assert.Equal(t, store.StateWon, res.State)
	assert.Equal(t, secret, res.Answer)
}

func TestValidateEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		guess  string
		valid  bool
		reason string
	}{
		{" crane ", true, ""},
		{"Öster", false, "not_ascii"},
		{"hi", false, "wrong_length"},
		{"olleh", false, "not_a_word"},
	}
	for _, tt := range tests {
		rec := env.do(t, http.MethodPost, "/game/validate", "", validateReq{Guess: tt.guess})
		require.Equal(t, http.StatusOK, rec.Code)
		var res validateRes
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, tt.valid, res.Valid, tt.guess)
		assert.Equal(t, tt.reason, res.Reason, tt.guess)
	}
}

func TestKeyboardEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	ng := env.newGame(t, newGameReq{Answer: "dyson"})

	for _, g := range []string{"wordy", "daddy"} {
		rec := env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: g})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/game/"+ng.GameID+"/keyboard", ng.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var kb keyboardRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kb))
	assert.Len(t, kb.Keyboard, 26)
	assert.Equal(t, letters.Correct, kb.Keyboard["D"])
	assert.Equal(t, letters.WrongPosition, kb.Keyboard["O"])
	assert.Equal(t, letters.NotInWord, kb.Keyboard["A"])
	assert.Equal(t, letters.Unknown, kb.Keyboard["Z"])
	assert.Len(t, kb.Guesses, 2)
	assert.Equal(t, 4, kb.Remaining)
	assert.Empty(t, kb.Answer)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, nil)
	ng := env.newGame(t, newGameReq{Answer: "dyson"})
	env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "olleh"})
	env.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: "dyson"})

	rec := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `wordle_games_started_total{mode="random"} 1`)
	assert.Contains(t, body, `wordle_guesses_total{result="accepted"} 1`)
	assert.Contains(t, body, `wordle_guesses_total{result="not_a_word"} 1`)
	assert.Contains(t, body, `wordle_games_finished_total{outcome="won"} 1`)
	assert.Contains(t, body, "wordle_live_sessions 1")
}
