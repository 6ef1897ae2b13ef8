package server

import (
	"net/http"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Heidric/localaws.git/internal/customerrors"
	"github.com/Heidric/localaws.git/internal/logger"
	"github.com/Heidric/localaws.git/internal/model"
	"github.com/Heidric/localaws.git/internal/server/middleware"
)

type Gateway interface {
	Track(path string) error
	RecordError() error
	MetricsReport() (model.MetricsReport, error)
	Health() model.Health
	Services() model.ServiceDirectory
}

type GatewayServer struct {
	*Server
	gateway Gateway
}

// handlerFunc is a route handler whose error goes to the fallback handler.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func NewGatewayServer(addr string, bodyLimit int64, gateway Gateway, log *zerolog.Logger) *GatewayServer {
	r := chi.NewRouter()
	s := &GatewayServer{
		Server:  newServer("apigateway", addr, r, log),
		gateway: gateway,
	}

	// Registered before Use: chi chains the current middleware stack into
	// these handlers, and the stack already ran by the time routing fails.
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	r.Use(middleware.RequestID)
	r.Use(middleware.Track(gateway, log))
	r.Use(logger.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
	r.Use(middleware.Recover(s.handleError))
	r.Use(middleware.JSONBody(bodyLimit, s.handleError))
	r.Use(chimiddleware.GetHead)

	r.Get("/health", s.handle(s.healthHandler))
	r.Get("/metrics", s.handle(s.metricsHandler))
	r.Get("/v1/services", s.handle(s.servicesHandler))

	return s
}

func (s *GatewayServer) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handleError(w, r, err)
		}
	}
}

// handleError is the single fallback for failed gateway requests: the
// error is logged with the request id, counted once and answered with 500
// unless the response status was already sent.
func (s *GatewayServer) handleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	s.logger.Error().Stack().Err(err).Str("requestId", requestID).Msg("request failed")

	if rerr := s.gateway.RecordError(); rerr != nil {
		s.logger.Warn().Err(rerr).Msg("count error")
	} else {
		middleware.MarkErrorCounted(r.Context())
	}

	if middleware.Committed(w) {
		return
	}

	customerrors.WriteServerError(w, requestID, err)
}

func (s *GatewayServer) healthHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, s.gateway.Health())
}

func (s *GatewayServer) metricsHandler(w http.ResponseWriter, r *http.Request) error {
	report, err := s.gateway.MetricsReport()
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, report)
}

func (s *GatewayServer) servicesHandler(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, s.gateway.Services())
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	customerrors.WriteError(w, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
}
