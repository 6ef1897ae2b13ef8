package agent

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Heidric/localaws.git/internal/customerrors"
)

func TestWithRetry(t *testing.T) {
	temporary := errors.New("temporary")
	permanent := errors.New("permanent")
	retryTemporary := func(err error) bool { return errors.Is(err, temporary) }
	delays := []time.Duration{0, 0, 0}

	tests := []struct {
		name      string
		failures  []error
		wantErr   error
		wantTries int
	}{
		{"succeeds first time", nil, nil, 1},
		{"succeeds after some failures", []error{temporary, temporary}, nil, 3},
		{"fails after all retries", []error{temporary, temporary, temporary, temporary}, temporary, 4},
		{"stops on permanent error", []error{temporary, permanent}, permanent, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tries := 0
			err := withRetry(context.Background(), delays, func() error {
				tries++
				if tries <= len(tt.failures) {
					return tt.failures[tries-1]
				}
				return nil
			}, retryTemporary)

			assert.Equal(t, tt.wantTries, tries)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tries := 0
	err := withRetry(ctx, []time.Duration{time.Hour}, func() error {
		tries++
		return errors.New("down")
	}, func(error) bool { return true })

	assert.Error(t, err)
	assert.Equal(t, 1, tries)
}

func TestIsRetriable(t *testing.T) {
	assert.True(t, isRetriable(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.True(t, isRetriable(&statusError{code: 503}))
	assert.False(t, isRetriable(&statusError{code: 404}))
	assert.False(t, isRetriable(errors.New("other")))
	assert.ErrorIs(t, &statusError{code: 500}, customerrors.ErrUnexpectedStatus)
}
