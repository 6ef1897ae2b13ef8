package logger

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Heidric/localaws.git/internal/server/middleware"
	"github.com/Heidric/localaws.git/pkg/log"
)

// Log is the process-wide logger; Nop until Initialize runs.
var Log = nopLogger()

// Initialize builds the logger for service from config and installs it as Log.
func Initialize(service string, config *log.Config) (*log.Logger, error) {
	logger, err := log.NewLogger(service, config)
	if err != nil {
		return nil, errors.Wrap(err, "new logger")
	}

	Log = logger.Zerolog()

	return logger, nil
}

// Middleware writes one access-log line per request: method, path,
// status, size, duration and, when set, the request id.
func Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &responseData{}
		lw := loggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}
		next.ServeHTTP(&lw, r)

		if responseData.status == 0 {
			responseData.status = http.StatusOK
		}

		event := Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", responseData.status).
			Int("size", responseData.size).
			Dur("duration", time.Since(start))
		if id := middleware.GetRequestID(r.Context()); id != "" {
			event = event.Str("requestId", id)
		}
		event.Msg("got HTTP request")
	}

	return http.HandlerFunc(fn)
}

type responseData struct {
	status int
	size   int
}

type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	if r.responseData.status == 0 {
		r.responseData.status = statusCode
	}
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
