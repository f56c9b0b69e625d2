package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

func newTestApp(t *testing.T, metrics bool) *App {
	t.Helper()
	clearConfigEnv(t)
	gin.SetMode(gin.TestMode)

	cfg, err := LoadFile("")
	require.NoError(t, err)
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.HTTP.ShutdownTimeout = Duration{Duration: time.Second}
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	cfg.Metrics.Enabled = metrics
	cfg.Metrics.ScrapeInterval = Duration{Duration: 10 * time.Millisecond}

	a, err := New(context.Background(), cfg, Options{Log: logger.Nop(), Version: "test"})
	require.NoError(t, err)
	t.Cleanup(func() {
		a.Close(context.Background())
	})
	return a
}

func TestNew_WiresRoutes(t *testing.T) {
	a := newTestApp(t, true)

	body, err := json.Marshal(map[string]any{"title": "T1", "content": "C1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `kb_usecase_calls_total{usecase="documents.Create",outcome="ok"} 1.000000`)

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_MetricsDisabled(t *testing.T) {
	a := newTestApp(t, false)
	assert.Nil(t, a.Metrics)

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	a := newTestApp(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Database.Driver = "oracle"
	_, err := New(context.Background(), cfg, Options{Log: logger.Nop()})
	assert.Error(t, err)
}

func TestNew_AppsKeepSeparateMetrics(t *testing.T) {
	first := newTestApp(t, true)
	second := newTestApp(t, true)

	body, err := json.Marshal(map[string]any{"name": "D1"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/datasets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	first.Server.Engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var buf bytes.Buffer
	require.NoError(t, first.Metrics.WritePrometheus(&buf))
	assert.Contains(t, buf.String(), `kb_usecase_calls_total{usecase="datasets.Create",outcome="ok"} 1.000000`)

	buf.Reset()
	require.NoError(t, second.Metrics.WritePrometheus(&buf))
	assert.NotContains(t, buf.String(), `usecase="datasets.Create"`)
}
