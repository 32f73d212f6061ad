package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	n   int
	err error
}

func (s *fakeStore) Len() int                   { return s.n }
func (s *fakeStore) Ping(context.Context) error { return s.err }

func newEngine(cfg *config.Config, store any) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if cfg != nil {
			c.Set("config", cfg)
		}
		if store != nil {
			c.Set("session_store", store)
		}
		c.Next()
	})
	r.GET("/health", HealthCheck)
	r.GET("/ready", ReadinessCheck)
	r.GET("/live", LivenessCheck)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Version: "1.2.3"},
		Session: config.SessionConfig{Store: config.SessionStoreMemory},
	}

	w := get(newEngine(cfg, &fakeStore{n: 3}), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, common.ParseJSONBytes(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	require.NotNil(t, resp.Sessions)
	assert.Equal(t, config.SessionStoreMemory, resp.Sessions.Store)
	require.NotNil(t, resp.Sessions.Active)
	assert.Equal(t, 3, *resp.Sessions.Active)
}

func TestHealthCheckWithoutConfig(t *testing.T) {
	w := get(newEngine(nil, nil), "/health")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReadinessCheck(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(newEngine(nil, &fakeStore{}), "/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(newEngine(nil, &fakeStore{err: errors.New("refused")}), "/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(newEngine(nil, nil), "/ready").Code)
}

func TestLivenessCheck(t *testing.T) {
	w := get(newEngine(nil, nil), "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}
