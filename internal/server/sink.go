package server

import (
	"net/http"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog"

	"github.com/Heidric/localaws.git/internal/customerrors"
	"github.com/Heidric/localaws.git/internal/logger"
	"github.com/Heidric/localaws.git/internal/model"
	"github.com/Heidric/localaws.git/internal/server/middleware"
)

type Sink interface {
	Store(raw []byte) error
	Current() model.MetricsDocument
	Health() model.Health
}

type SinkServer struct {
	*Server
	sink      Sink
	bodyLimit int64
}

func NewSinkServer(addr string, bodyLimit int64, sink Sink, log *zerolog.Logger) *SinkServer {
	r := chi.NewRouter()
	s := &SinkServer{
		Server:    newServer("cloudwatch", addr, r, log),
		sink:      sink,
		bodyLimit: bodyLimit,
	}

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	r.Use(logger.Middleware)
	r.Use(chimiddleware.GetHead)

	r.Get("/health", s.healthHandler)
	r.Post("/metrics", s.storeMetricsHandler)
	r.Get("/metrics", s.getMetricsHandler)

	return s
}

func (s *SinkServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, s.sink.Health())
}

func (s *SinkServer) storeMetricsHandler(w http.ResponseWriter, r *http.Request) {
	body, err := middleware.ReadBody(r, s.bodyLimit)
	if err == nil {
		err = s.sink.Store(body)
	}
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejected metrics document")
		customerrors.WriteError(w, customerrors.StatusFor(err), err.Error())
		return
	}

	_ = writeJSON(w, http.StatusOK, model.StatusResponse{Status: "success"})
}

func (s *SinkServer) getMetricsHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, s.sink.Current())
}
