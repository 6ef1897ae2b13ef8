package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// Tracker receives request and error counts.
type Tracker interface {
	Track(path string) error
	RecordError() error
}

type trackState struct {
	errorCounted bool
}

// Track counts every request against its path and, once the handler
// returns, counts an error if the final status is 400 or above and the
// error was not already counted by MarkErrorCounted.
func Track(tracker Tracker, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := tracker.Track(r.URL.Path); err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("track request")
			}

			state := &trackState{}
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), trackStateKey, state)))

			if sw.Status() >= http.StatusBadRequest && !state.errorCounted {
				if err := tracker.RecordError(); err != nil {
					logger.Warn().Err(err).Str("path", r.URL.Path).Msg("track error")
				}
			}
		})
	}
}

// MarkErrorCounted tells Track that the error of this request was
// already recorded.
func MarkErrorCounted(ctx context.Context) {
	if state, ok := ctx.Value(trackStateKey).(*trackState); ok {
		state.errorCounted = true
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Status is the status sent to the client; 200 if the handler wrote nothing.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// Committed reports whether a status was already sent through w.
func Committed(w http.ResponseWriter) bool {
	sw, ok := w.(*statusWriter)
	return ok && sw.status != 0
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
