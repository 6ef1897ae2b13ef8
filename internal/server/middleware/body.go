package middleware

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Heidric/localaws.git/internal/customerrors"
)

// ErrorHandler renders err for the request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ReadBody reads at most limit bytes of the request body.
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if r.ContentLength > limit {
		return nil, customerrors.ErrBodyTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if int64(len(data)) > limit {
		return nil, customerrors.ErrBodyTooLarge
	}
	return data, nil
}

// JSONBody parses application/json request bodies up to limit bytes and
// makes them available through Body. Failures go to onError.
func JSONBody(limit int64, onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isJSON(r) {
				next.ServeHTTP(w, r)
				return
			}

			data, err := ReadBody(r, limit)
			if err != nil {
				onError(w, r, err)
				return
			}
			if len(data) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			if !json.Valid(data) {
				onError(w, r, customerrors.ErrInvalidJSON)
				return
			}

			ctx := context.WithValue(r.Context(), bodyKey, json.RawMessage(data))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Body returns the parsed JSON body, or nil when the request had none.
func Body(ctx context.Context) json.RawMessage {
	body, _ := ctx.Value(bodyKey).(json.RawMessage)
	return body
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}
