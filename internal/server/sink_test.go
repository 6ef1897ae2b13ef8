package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heidric/localaws.git/internal/customerrors"
	"github.com/Heidric/localaws.git/internal/db"
	"github.com/Heidric/localaws.git/internal/model"
	"github.com/Heidric/localaws.git/internal/services"
)

func newTestSink(t *testing.T) http.Handler {
	t.Helper()
	nop := zerolog.Nop()
	return NewSinkServer(":0", 64, services.NewSinkService(db.NewSnapshotStore()), &nop).Handler()
}

func TestSinkServer_Health(t *testing.T) {
	h := newTestSink(t)

	w := serve(h, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body model.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.NotEmpty(t, body.Timestamp)
}

func TestSinkServer_EmptyBeforeFirstPost(t *testing.T) {
	h := newTestSink(t)

	w := serve(h, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{},"timestamp":null}`, w.Body.String())
}

func TestSinkServer_PostThenGet(t *testing.T) {
	h := newTestSink(t)

	w := serve(h, http.MethodPost, "/metrics", strings.NewReader(`{"a":1}`),
		map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success"}`, w.Body.String())

	w = serve(h, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc model.MetricsDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.JSONEq(t, `{"a":1}`, string(doc.Data))
	require.NotNil(t, doc.Timestamp)
	assert.NotEmpty(t, *doc.Timestamp)
}

func TestSinkServer_RejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed", `this is not json`, http.StatusBadRequest},
		{"truncated", `{"a":`, http.StatusBadRequest},
		{"too large", `{"a":"` + strings.Repeat("x", 128) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestSink(t)

			w := serve(h, http.MethodPost, "/metrics", strings.NewReader(`{"kept":true}`), nil)
			require.Equal(t, http.StatusOK, w.Code)
			before := serve(h, http.MethodGet, "/metrics", nil, nil).Body.String()

			w = serve(h, http.MethodPost, "/metrics", strings.NewReader(tt.body),
				map[string]string{"Content-Type": "application/json"})
			assert.Equal(t, tt.status, w.Code)

			var e customerrors.CommonError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
			assert.Equal(t, tt.status, e.Status)

			after := serve(h, http.MethodGet, "/metrics", nil, nil).Body.String()
			assert.Equal(t, before, after)
		})
	}
}

func TestSinkServer_NotFound(t *testing.T) {
	h := newTestSink(t)

	w := serve(h, http.MethodDelete, "/metrics", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSinkServer_UnroutedRequestLoggedOnce(t *testing.T) {
	buf := captureLog(t)
	h := newTestSink(t)

	w := serve(h, http.MethodPut, "/metrics", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.Len(t, accessLines(t, buf), 1)
}

func TestSinkServer_HeadFallsBackToGet(t *testing.T) {
	h := newTestSink(t)

	w := serve(h, http.MethodHead, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
