package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHandleHealthAlwaysOK(t *testing.T) {
	s := NewServer(Config{ServiceName: "goleador", Version: "test"})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "goleador", body.Service)
	assert.Equal(t, "test", body.Version)
}

func TestHandleReadyReflectsState(t *testing.T) {
	s := NewServer(Config{ServiceName: "goleador", DB: &stubPinger{}})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	rec = httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body ReadyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Checks["service"])
	assert.Equal(t, "ok", body.Checks["database"])
}

func TestHandleReadyFailsOnDatabaseError(t *testing.T) {
	s := NewServer(Config{ServiceName: "goleador", DB: &stubPinger{err: fmt.Errorf("down")}})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ReadyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Checks["database"], "down")
}
