package agent

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Heidric/localaws.git/internal/customerrors"
)

var retryDelays = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// statusError is a non-200 response from a peer service.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return customerrors.ErrUnexpectedStatus.Error() + ": " + strconv.Itoa(e.code)
}

func (e *statusError) Unwrap() error {
	return customerrors.ErrUnexpectedStatus
}

func withRetry(ctx context.Context, delays []time.Duration, fn func() error, isRetriable func(error) bool) error {
	var err error
	for attempt := 0; attempt <= len(delays); attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetriable(err) {
			return err
		}
		if attempt < len(delays) {
			select {
			case <-time.After(delays[attempt]):
			case <-ctx.Done():
				return err
			}
		}
	}
	return err
}

// isRetriable reports transport failures and 5xx responses.
func isRetriable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	return false
}
