// internal/httpserver/server.go
//
// HTTP wiring for the browser presentation layer.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/state.
//
// Notes:
//   - One browser session drives one game; the session token (see session.go)
//     carries the game ID. There is no cross-player interaction.
//   - Per-guess problems (bad text, out of range, already won) are normal
//     200 responses carrying an outcome; only protocol problems are HTTP errors.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/store"
)

// Options configures a Server.
type Options struct {
	Game          game.Config   // range used when a request omits min/max; zero selects 1..100
	Source        game.Source   // nil selects game.CryptoSource; shared, so New wraps it with game.Locked
	SessionSecret []byte        // HS256 key for session tokens
	SessionTTL    time.Duration // token + cookie lifetime
	ClientOrigin  string        // credentialed CORS origin
	SecureCookies bool          // Secure + SameSite=None (production)
}

// Server bundles router, game registry and options.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Game.IsZero() {
		opts.Game = game.DefaultConfig()
	}
	opts.Source = game.Locked(opts.Source)
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 14 * 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"numguess","endpoints":["/health","POST /game/new","POST /game/guess","GET /game/state"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/game", func(r chi.Router) {
		r.Use(chimw.RequestSize(maxBodyBytes)) // bodies past this fail with 413
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Get("/state", s.handleState)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

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

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ GAME ---------------------------------------

// maxBodyBytes bounds request bodies; both payloads are a few dozen bytes.
const maxBodyBytes = 1 << 10

// readJSON decodes the body into v, writing the error response and
// returning false on failure. allowEmpty accepts a missing body.
func readJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil, allowEmpty && errors.Is(err, io.EOF):
		return true
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
	default:
		writeError(w, http.StatusBadRequest, "bad_json")
	}
	return false
}

// newGameReq/Res payloads for POST /game/new. Omitted bounds fall back
// to the server's configured range.
type newGameReq struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}
type newGameRes struct {
	GameID string     `json:"gameId"`
	Token  string     `json:"token"`
	State  game.State `json:"state"`
}

// handleNewGame restarts the caller's game when the session is valid,
// otherwise creates a fresh one and issues a session token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !readJSON(w, r, &req, true) {
		return
	}
	cfg := s.opts.Game
	if req.Min != nil {
		cfg.Min = *req.Min
	}
	if req.Max != nil {
		cfg.Max = *req.Max
	}

	var st game.State
	id, hasSession := s.sessionGameID(r)
	err := store.ErrNotFound
	if hasSession {
		err = s.store.Update(r.Context(), id, func(g *game.Game) error {
			if err := g.Start(cfg); err != nil {
				return err
			}
			st = g.State()
			return nil
		})
	}
	if errors.Is(err, store.ErrNotFound) {
		var g *game.Game
		g, err = game.New(cfg, game.WithSource(s.opts.Source))
		if err == nil {
			id, st = g.ID, g.State()
			err = s.store.Save(r.Context(), g)
		}
	}
	switch {
	case errors.Is(err, game.ErrInvalidConfiguration):
		writeError(w, http.StatusBadRequest, "invalid_configuration")
		return
	case err != nil:
		log.Error().Err(err).Msg("start game")
		writeError(w, http.StatusInternalServerError, "start_failed")
		return
	}

	tok, exp, err := s.signSession(id)
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Debug().Str("gameId", id).Int("min", st.Min).Int("max", st.Max).Msg("game started")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: id, Token: tok, State: st})
}

// guessReq is the payload for POST /game/guess. Guess is the raw text
// the player typed; it is forwarded to the engine untouched.
type guessReq struct {
	Guess string `json:"guess"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionGameID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}
	var req guessReq
	if !readJSON(w, r, &req, false) {
		return
	}

	var res game.Result
	err := s.store.Update(r.Context(), id, func(g *game.Game) error {
		res = g.Submit(req.Guess)
		return nil
	})
	if !s.checkLookup(w, err) {
		return
	}
	log.Debug().Str("gameId", id).Str("outcome", string(res.Outcome)).Int("attempts", res.Attempts).Msg("guess")
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionGameID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "no_session")
		return
	}
	st, err := s.store.View(r.Context(), id)
	if !s.checkLookup(w, err) {
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}

// checkLookup maps store errors to responses; true means carry on.
func (s *Server) checkLookup(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		log.Error().Err(err).Msg("store access")
		writeError(w, http.StatusInternalServerError, "store_failed")
	}
	return false
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
