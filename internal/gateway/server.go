// Package gateway exposes the dialogue engine over WebSocket. Each
// connection is one phone call: the telephony side streams caller
// utterances in and receives the agent's speech frames back.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tavolahq/tavola/internal/config"
	"github.com/tavolahq/tavola/internal/dialog"
	"github.com/tavolahq/tavola/internal/logging"
	"github.com/tavolahq/tavola/internal/nlu"
	"github.com/tavolahq/tavola/internal/store"
	"github.com/tavolahq/tavola/internal/version"
)

const helloTimeout = 10 * time.Second

// Server is the Tavola call gateway HTTP + WebSocket server.
type Server struct {
	cfg     config.Config
	log     *logging.Logger
	port    nlu.Port
	history store.CallStore
	token   string
	clock   func() time.Time

	active     atomic.Int64
	callsTotal atomic.Int64
	startedAt  time.Time
	httpServer *http.Server
	upgrader   websocket.Upgrader
	limiter    *authRateLimiter
}

// New creates a call gateway serving calls through the given NLU port.
// history may be nil when recording is disabled.
func New(cfg config.Config, port nlu.Port, history store.CallStore, log *logging.Logger) *Server {
	loc := cfg.Engine.Location()
	return &Server{
		cfg:     cfg,
		log:     log.Sub("gateway"),
		port:    port,
		history: history,
		token:   resolveToken(cfg.Gateway),
		clock:   func() time.Time { return time.Now().In(loc) },
		limiter: newAuthRateLimiter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Telephony bridges are not browsers; Origin is meaningless here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// resolveToken resolves the gateway token from config or environment.
func resolveToken(cfg config.GatewayConfig) string {
	if cfg.Token != "" {
		return cfg.Token
	}
	return os.Getenv("TAVOLA_GATEWAY_TOKEN")
}

// resolveBindAddr computes the listen address from config.
func resolveBindAddr(cfg config.GatewayConfig) string {
	switch cfg.Bind {
	case "lan":
		return fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	default:
		return fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}
}

// Handler returns the HTTP handler tree, for Start and for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/call", s.handleCall)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start begins listening for call connections. It blocks until the
// context is cancelled or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	addr := resolveBindAddr(s.cfg.Gateway)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  0, // calls are long-lived
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(l net.Listener) context.Context { return ctx },
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	if s.cfg.Gateway.Bind == "lan" && s.token == "" {
		s.log.Warn().Msg("listening on the LAN without a gateway token")
	}

	s.startedAt = time.Now()
	s.log.Info().
		Str("addr", ln.Addr().String()).
		Str("bind", s.cfg.Gateway.Bind).
		Bool("auth", s.token != "").
		Msg("call gateway ready")

	go func() {
		<-ctx.Done()
		s.log.Info().Msg("shutting down call gateway")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address, or empty string if not started.
func (s *Server) Addr() string {
	if s.httpServer != nil {
		return s.httpServer.Addr
	}
	return ""
}

// handleCall upgrades to WebSocket and runs one full call on the connection.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(r.RemoteAddr) {
		s.log.Warn().Str("remote", r.RemoteAddr).Msg("rate limited, too many failed auth attempts")
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(helloTimeout))
	var hello Frame
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != FrameTypeHello {
		conn.WriteJSON(errorFrame("expected hello frame"))
		return
	}
	conn.SetReadDeadline(time.Time{})

	if s.token != "" && !safeEqual(hello.Token, s.token) {
		s.limiter.recordFailure(r.RemoteAddr)
		s.log.Warn().Str("remote", r.RemoteAddr).Msg("call rejected, bad token")
		conn.WriteJSON(errorFrame("unauthorized"))
		return
	}

	callID := uuid.NewString()
	line := newWSLine(conn)
	defer line.Close()

	engine, err := dialog.NewEngine(s.port, line, s.cfg.Restaurant, s.log,
		dialog.WithCallID(callID), dialog.WithClock(s.clock))
	if err != nil {
		s.log.Error().Err(err).Msg("engine construction failed")
		line.send(errorFrame("internal error"))
		return
	}

	if err := line.send(connectedFrame(callID)); err != nil {
		return
	}

	s.active.Add(1)
	s.callsTotal.Add(1)
	defer s.active.Add(-1)

	rec, runErr := engine.Run(r.Context())
	if runErr != nil {
		s.log.Warn().Err(runErr).Str("callId", callID).Msg("call ended abnormally")
	}
	line.send(endFrame(rec.ID, string(rec.Outcome)))

	if s.history != nil && s.cfg.History.RecordingEnabled() {
		if err := s.history.Save(rec); err != nil {
			s.log.Error().Err(err).Str("callId", callID).Msg("saving call record failed")
		}
	}
}

// handleHealth reports liveness and basic counters.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"version":     version.Version,
		"uptimeSec":   int(time.Since(s.startedAt).Seconds()),
		"activeCalls": s.active.Load(),
		"callsTotal":  s.callsTotal.Load(),
	})
}
