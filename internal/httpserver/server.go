// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/metrics", "/debug/words".
//   - Game endpoints: POST /game/new, POST /game/validate (no token needed),
//     POST /game/guess and GET /game/{id}/keyboard (session token required).
//
// Notes:
//   - The engine keeps no attempt counter; store.Session does that here.
//   - CORS is origin-aware for a single configured client origin.
//   - Sessions live only in memory; nothing about a game is persisted.

package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/daily"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/letters"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/metrics"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/store"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/words"
)

// Game modes accepted by POST /game/new.
const (
	modeRandom = "random"
	modeDaily  = "daily"
)

// Options configures a Server.
type Options struct {
	ClientOrigin     string        // CORS origin; empty disables the CORS headers
	JWTSecret        string        // HS256 key for session tokens
	TokenTTL         time.Duration // session token lifetime
	DailySalt        string        // key for the daily word index
	AllowFixedAnswer bool          // honour "answer" in POST /game/new (testing only)
	Rand             words.Rand    // secret picker; defaults to words.CryptoRand
	Now              func() time.Time
	Logger           *zerolog.Logger // defaults to the global zerolog logger
}

// Server bundles router, session store, word lists and metrics.
type Server struct {
	r       *chi.Mux
	store   store.Store
	words   *words.List
	metrics *metrics.Metrics
	tokens  *tokenIssuer
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, list *words.List, m *metrics.Metrics, opts Options) *Server {
	if opts.Rand == nil {
		opts.Rand = words.CryptoRand{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = &log.Logger
	}
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		words:   list,
		metrics: m,
		tokens:  &tokenIssuer{secret: []byte(opts.JWTSecret), ttl: opts.TokenTTL, now: opts.Now},
		opts:    opts,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(*opts.Logger))   // request-scoped logger
	s.r.Use(accessLog())                     // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // single-origin CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-go",
			"endpoints": []string{
				"/health", "/metrics", "POST /game/new", "POST /game/validate",
				"POST /game/guess", "GET /game/{id}/keyboard",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.words.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})
	if m != nil {
		s.r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	// --- game ---
	s.r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/validate", s.handleValidate)
		r.Group(func(r chi.Router) {
			r.Use(s.requireToken())
			r.Post("/guess", s.handleGuess)
			r.Get("/{id}/keyboard", s.handleKeyboard)
		})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog logs method, path, status and latency through the request logger.
func accessLog() func(http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("took", d).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // optional fixed answer; only with AllowFixedAnswer
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Mode      string    `json:"mode"`
	Remaining int       `json:"remaining"`
	Date      string    `json:"date,omitempty"` // daily mode only
}

// handleNewGame creates a session and issues its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body (including an empty chunked one) means a default random game.
	if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Mode == "" {
		req.Mode = modeRandom
	}

	var (
		g    *game.Game
		err  error
		date string
	)
	switch {
	case req.Answer != "":
		if !s.opts.AllowFixedAnswer {
			writeError(w, http.StatusForbidden, "fixed_answer_disabled")
			return
		}
		g, err = game.NewWithSecret(s.words, req.Answer)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_answer")
			return
		}
	case req.Mode == modeDaily:
		now := s.opts.Now()
		date = daily.DateKey(now)
		_, secret := daily.Secret(s.words, now, s.opts.DailySalt)
		g, err = game.NewWithSecret(s.words, secret)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Str("secret", secret).Msg("daily secret")
			writeError(w, http.StatusInternalServerError, "daily_failed")
			return
		}
	case req.Mode == modeRandom:
		g = game.New(s.words, s.opts.Rand)
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	sess := store.NewSession(g, req.Mode)
	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.tokens.Issue(g.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	if s.metrics != nil {
		s.metrics.GamesStarted.WithLabelValues(req.Mode).Inc()
	}
	hlog.FromRequest(r).Debug().Str("gameId", g.ID).Str("mode", req.Mode).Msg("game started")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID:    g.ID,
		Token:     tok,
		ExpiresAt: exp.UTC(),
		Mode:      req.Mode,
		Remaining: game.MaxAttempts,
		Date:      date,
	})
}

// validateReq/Res payloads for POST /game/validate.
type validateReq struct {
	Guess string `json:"guess"`
}
type validateRes struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// handleValidate lets input layers check text while the user types.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.words.Validate(strings.TrimSpace(req.Guess)); err != nil {
		writeJSON(w, http.StatusOK, validateRes{Valid: false, Reason: words.Reason(err), Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateRes{Valid: true})
}

// letterDTO is the wire form of a scored letter.
type letterDTO struct {
	Char     string           `json:"char"`
	Position letters.Position `json:"position"` // hit | present | miss
}

func toDTO(r game.Result) []letterDTO {
	out := make([]letterDTO, len(r))
	for i, l := range r {
		out[i] = letterDTO{Char: string(l.Char), Position: l.Position}
	}
	return out
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Letters   []letterDTO `json:"letters"`
	Remaining int         `json:"remaining"`
	State     store.State `json:"state"`            // "playing" | "won" | "lost"
	Answer    string      `json:"answer,omitempty"` // revealed once the game is over
}

// handleGuess applies a guess to an in-memory session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID != tokenGameID(r) {
		writeError(w, http.StatusUnauthorized, "token_mismatch")
		return
	}
	sess, ok := s.session(w, r, req.GameID)
	if !ok {
		return
	}

	res, snap, err := sess.Guess(strings.TrimSpace(req.Guess))
	switch {
	case errors.Is(err, store.ErrFinished):
		writeJSON(w, http.StatusConflict, map[string]any{"error": "game_finished", "state": snap.State, "answer": snap.Secret})
		return
	case err != nil:
		reason := words.Reason(err)
		if reason == "" {
			hlog.FromRequest(r).Error().Err(err).Msg("guess")
			writeError(w, http.StatusInternalServerError, "guess_failed")
			return
		}
		s.countGuess(reason)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": reason, "message": err.Error()})
		return
	}

	s.countGuess("accepted")
	if snap.State != store.StatePlaying && s.metrics != nil {
		s.metrics.GamesFinished.WithLabelValues(string(snap.State)).Inc()
	}
	writeJSON(w, http.StatusOK, guessRes{
		Letters:   toDTO(res),
		Remaining: snap.Remaining,
		State:     snap.State,
		Answer:    snap.Secret,
	})
}

// keyboardRes is returned by GET /game/{id}/keyboard.
type keyboardRes struct {
	Keyboard  map[string]letters.Position `json:"keyboard"` // "A".."Z" -> unknown | miss | present | hit
	Guesses   [][]letterDTO               `json:"guesses"`
	Remaining int                         `json:"remaining"`
	State     store.State                 `json:"state"`
	Answer    string                      `json:"answer,omitempty"`
}

// handleKeyboard returns the keyboard hints and board for a session.
func (s *Server) handleKeyboard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != tokenGameID(r) {
		writeError(w, http.StatusUnauthorized, "token_mismatch")
		return
	}
	sess, ok := s.session(w, r, id)
	if !ok {
		return
	}
	snap := sess.Snapshot()
	board := make([][]letterDTO, len(snap.History))
	for i, res := range snap.History {
		board[i] = toDTO(res)
	}
	writeJSON(w, http.StatusOK, keyboardRes{
		Keyboard:  snap.Keyboard.Map(),
		Guesses:   board,
		Remaining: snap.Remaining,
		State:     snap.State,
		Answer:    snap.Secret,
	})
}

// session loads a session or writes the error response.
func (s *Server) session(w http.ResponseWriter, r *http.Request, id string) (*store.Session, bool) {
	sess, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("gameId", id).Msg("load session")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return nil, false
	}
	return sess, true
}

func (s *Server) countGuess(result string) {
	if s.metrics != nil {
		s.metrics.Guesses.WithLabelValues(result).Inc()
	}
}
