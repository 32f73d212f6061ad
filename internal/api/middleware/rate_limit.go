package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64
	lastTime time.Time
	now      func() time.Time
}

// NewRateLimiter 創建新的限流器
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return newRateLimiter(requests, window, time.Now)
}

func newRateLimiter(requests int, window time.Duration, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		tokens:   float64(requests),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		lastTime: now(),
		now:      now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastTime).Seconds()
	rl.lastTime = now

	// 添加新令牌
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)

	// 檢查是否有可用令牌
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}

	return false
}

// full 桶已滿表示該用戶端閒置
func (rl *RateLimiter) full() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	elapsed := rl.now().Sub(rl.lastTime).Seconds()
	return rl.tokens+elapsed*rl.rate >= rl.capacity
}

// clientLimiters 每個用戶端 IP 一個令牌桶
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*RateLimiter
	requests int
	window   time.Duration
	now      func() time.Time
	calls    int
}

func (l *clientLimiters) get(ip string) *RateLimiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// 每 1024 次請求清掉已回滿的桶
	l.calls++
	if l.calls%1024 == 0 {
		for k, rl := range l.limiters {
			if rl.full() {
				delete(l.limiters, k)
			}
		}
	}

	rl, ok := l.limiters[ip]
	if !ok {
		rl = newRateLimiter(l.requests, l.window, l.now)
		l.limiters[ip] = rl
	}
	return rl
}

// RateLimit 依用戶端 IP 限流的中間件，未啟用時直接放行
func RateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	return rateLimit(cfg, time.Now)
}

func rateLimit(cfg config.RateLimitConfig, now func() time.Time) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiters := &clientLimiters{
		limiters: make(map[string]*RateLimiter),
		requests: cfg.Requests,
		window:   cfg.Window,
		now:      now,
	}
	retryAfter := strconv.Itoa(int(cfg.Window.Seconds()))

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":        common.ErrCodeTooManyRequests,
				"message":     common.ErrTooManyRequests.Message,
				"retry_after": cfg.Window.Seconds(),
			})
			return
		}

		c.Next()
	}
}
