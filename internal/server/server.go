package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 10 * time.Second

// Server owns one http.Server and its lifecycle.
type Server struct {
	Srv             *http.Server
	name            string
	shutdownTimeout time.Duration
	logger          *zerolog.Logger
}

func newServer(name, addr string, handler http.Handler, logger *zerolog.Logger) *Server {
	return &Server{
		Srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		name:            name,
		shutdownTimeout: defaultShutdownTimeout,
		logger:          logger,
	}
}

// NewMetricsServer serves handler on addr, used for the Prometheus listener.
func NewMetricsServer(addr string, handler http.Handler, logger *zerolog.Logger) *Server {
	return newServer("prometheus", addr, handler, logger)
}

// SetShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func (s *Server) SetShutdownTimeout(d time.Duration) {
	if d > 0 {
		s.shutdownTimeout = d
	}
}

func (s *Server) Run(ctx context.Context, runner *errgroup.Group) {
	s.logger.Info().Str("server", s.name).Str("addr", s.Srv.Addr).Msg("Http server started.")

	runner.Go(func() error {
		if err := s.Srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

// Shutdown stops accepting connections and drains in-flight requests.
// ctx is usually already done here, so the drain timeout is detached from it.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Str("server", s.name).Msg("Http server stopped.")

	nctx, stop := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer stop()

	return s.Srv.Shutdown(nctx)
}

func (s *Server) Handler() http.Handler {
	return s.Srv.Handler
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
