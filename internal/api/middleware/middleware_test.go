package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, body)
	})
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterRefills(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	rl := newRateLimiter(2, time.Second, clock.now)

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	clock.advance(500 * time.Millisecond)
	assert.True(t, rl.Allow(), "half a window refills one token")
	assert.False(t, rl.Allow())

	clock.advance(10 * time.Second)
	assert.True(t, rl.full())
}

func TestRateLimitPerClient(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	r := newEngine(rateLimit(config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Minute}, clock.now))

	first := httptest.NewRequest(http.MethodGet, "/ping", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, first)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, first)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), common.ErrCodeTooManyRequests)

	other := httptest.NewRequest(http.MethodGet, "/ping", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code, "other clients have their own bucket")
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(RateLimit(config.RateLimitConfig{Enabled: false, Requests: 1, Window: time.Minute}))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)
	}
}

func TestDeduplication(t *testing.T) {
	d := NewDeduplicator(time.Second)
	defer d.Close()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	d.now = clock.now

	r := newEngine(d.Middleware())

	w := do(r, http.MethodPost, "/echo", `{"text":"pizza"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"pizza"}`, w.Body.String(), "body is restored for the handler")

	w = do(r, http.MethodPost, "/echo", `{"text":"pizza"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/echo", `{"text":"pasta"}`).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "").Code, "GET is never deduplicated")

	clock.advance(2 * time.Second)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/echo", `{"text":"pizza"}`).Code)

	clock.advance(time.Hour)
	d.cleanup()
	assert.Empty(t, d.seen)
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(16))

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/echo", `{"a":1}`).Code)

	w := do(r, http.MethodPost, "/echo", `{"text":"a much longer body"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeRequestTooLarge)
}

func TestRecovery(t *testing.T) {
	r := newEngine(requestid.New(), Recovery(), Logger())

	w := do(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), common.ErrCodeInternalError)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
