package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heidric/localaws.git/internal/server/middleware"
	"github.com/Heidric/localaws.git/pkg/log"
)

func TestInitialize(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	l, err := Initialize("apigateway", &log.Config{Level: "info"})
	require.NoError(t, err)
	assert.Same(t, l.Zerolog(), Log)

	_, err = Initialize("apigateway", &log.Config{Level: "nope"})
	require.Error(t, err)
}

func TestMiddleware_LogsRequest(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	Log = &l

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})
	h := middleware.RequestID(Middleware(next))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/health?x=1", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/health", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, float64(15), line["size"])
	assert.Equal(t, w.Header()[middleware.RequestIDHeader][0], line["requestId"])
	assert.Contains(t, line, "duration")
}

func TestMiddleware_DefaultStatus(t *testing.T) {
	prev := Log
	defer func() { Log = prev }()

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	Log = &l

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, float64(http.StatusOK), line["status"])
	assert.NotContains(t, line, "requestId")
}
