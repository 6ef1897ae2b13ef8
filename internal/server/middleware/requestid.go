package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is written verbatim, bypassing header canonicalization.
const RequestIDHeader = "x-amzn-RequestId"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	trackStateKey
	bodyKey
)

// RequestID assigns a UUIDv4 to every request, exposes it through the
// request context and echoes it in the x-amzn-RequestId response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header()[RequestIDHeader] = []string{id}
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request id stored in ctx, or "" if none.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
