package middleware

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Recover turns a handler panic into an error passed to onError. The
// writer handed downstream reports through Committed whether a status
// was already sent.
func Recover(onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			w := &statusWriter{ResponseWriter: rw}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				onError(w, r, errors.WithStack(err))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
