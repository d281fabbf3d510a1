// Package agentserver expone el registry de tools a agentes vía
// JSON-RPC 2.0 sobre HTTP, con sesiones, métricas y auth opcional.
package agentserver

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"github.com/dropDatabas3/falconbridge/internal/session"
	"github.com/dropDatabas3/falconbridge/internal/tools"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Config del server.
type Config struct {
	Addr       string
	Name       string
	Version    string
	AuthSecret string
	SessionTTL time.Duration
}

// Server es el transporte del protocolo de agentes.
type Server struct {
	name       string
	version    string
	registry   *tools.Registry
	sessions   session.Store
	sessionTTL time.Duration
	handlers   map[string]rpcHandler

	srv *http.Server
	log *zap.Logger
}

func NewServer(cfg Config, registry *tools.Registry, sessions session.Store) *Server {
	s := &Server{
		name:       cfg.Name,
		version:    cfg.Version,
		registry:   registry,
		sessions:   sessions,
		sessionTTL: cfg.SessionTTL,
		log:        logger.Named("agentserver"),
	}
	s.handlers = map[string]rpcHandler{
		"initialize": s.rpcInitialize,
		"ping":       s.rpcPing,
		"tools/list": s.rpcToolsList,
		"tools/call": s.rpcToolsCall,
	}
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler expone el router (para tests con httptest).
func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) routes(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", RegisterMetrics(nil))

	rpc := Chain(http.HandlerFunc(s.handleRPC),
		WithRequestID(),
		WithLogging(),
		WithRecover(),
		WithAuth(cfg.AuthSecret),
	)
	r.Method(http.MethodPost, "/rpc", rpc)

	return r
}

// Start arranca el listener; bloquea hasta Shutdown o fallo.
func (s *Server) Start() error {
	s.log.Info("listening", zap.String("addr", s.srv.Addr))
	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown cierra el server de forma graceful.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// RunSessionSweeper barre sesiones expiradas cada interval hasta que el
// contexto se cancele. Con backends de expiry nativo es un no-op barato.
func (s *Server) RunSessionSweeper(ctx context.Context, interval time.Duration) {
	if s.sessions == nil || interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			swept, err := s.sessions.SweepExpired(ctx)
			if err != nil {
				s.log.Warn("session sweep failed", logger.Err(err))
				continue
			}
			if swept > 0 {
				s.log.Debug("sessions swept", zap.Int("count", swept))
			}
		}
	}
}
