package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// readinessTimeout 就緒檢查時等待儲存回應的上限
const readinessTimeout = 2 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Sessions  *SessionStatus         `json:"sessions,omitempty"`
}

// SessionStatus 會話儲存狀態
type SessionStatus struct {
	Store  string `json:"store"`
	Active *int   `json:"active,omitempty"` // 僅記憶體儲存可取得
}

type pinger interface {
	Ping(ctx context.Context) error
}

type counter interface {
	Len() int
}

func configFrom(c *gin.Context) (*config.Config, bool) {
	value, exists := c.Get("config")
	if !exists {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return nil, false
	}
	cfg, ok := value.(*config.Config)
	if !ok {
		common.LogError("Invalid configuration type in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid configuration type",
		})
		return nil, false
	}
	return cfg, true
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, ok := configFrom(c)
	if !ok {
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Sessions: &SessionStatus{Store: cfg.Session.Store},
	}

	if store, exists := c.Get("session_store"); exists {
		if n, ok := store.(counter); ok {
			active := n.Len()
			response.Sessions.Active = &active
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，Redis 儲存需可連線
func ReadinessCheck(c *gin.Context) {
	store, exists := c.Get("session_store")
	if !exists {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"error":  "session store not configured",
		})
		return
	}

	if p, ok := store.(pinger); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			common.LogWarn("Session store not ready", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"error":  "session store unreachable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
