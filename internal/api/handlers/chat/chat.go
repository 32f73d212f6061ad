package chat

import (
	"errors"
	"net/http"

	chatCore "cookmate/internal/core/chat"
	recipeService "cookmate/internal/core/recipe"
	"cookmate/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageRequest 使用者送出的一則訊息
type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SessionResponse 會話與完整對話紀錄
type SessionResponse struct {
	Session *chatCore.Session `json:"session"`
}

// MessageResponse 本次回覆與更新後的會話
type MessageResponse struct {
	Reply   *recipeService.Reply `json:"reply"`
	Session *chatCore.Session    `json:"session"`
}

// Handler 聊天處理程序
type Handler struct {
	store   chatCore.Store
	service *recipeService.Service
	debug   bool
}

// NewHandler 創建新的聊天處理程序，debug 時錯誤響應附帶原始錯誤
func NewHandler(store chatCore.Store, service *recipeService.Service, debug bool) *Handler {
	return &Handler{
		store:   store,
		service: service,
		debug:   debug,
	}
}

// CreateSession 建立新的空會話
func (h *Handler) CreateSession(c *gin.Context) {
	session, err := h.store.Create(c.Request.Context())
	if err != nil {
		h.fail(c, "建立會話失敗", err)
		return
	}

	common.LogInfo("會話已建立",
		zap.String("session_id", session.ID()),
		zap.String("request_id", requestid.Get(c)),
	)
	c.JSON(http.StatusCreated, SessionResponse{Session: session})
}

// GetSession 取得會話對話紀錄
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "讀取會話失敗", err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// SendMessage 提交一則訊息並取得機器人回覆
func (h *Handler) SendMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(c, "請求體過大", common.ErrRequestTooLarge.Wrap(err))
			return
		}
		h.fail(c, "請求格式無效", common.NewValidationError("text is required"))
		return
	}

	session, reply, err := h.service.Submit(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.fail(c, "訊息處理失敗", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{
		Reply:   reply,
		Session: session,
	})
}

// DeleteSession 結束會話
func (h *Handler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, "刪除會話失敗", err)
		return
	}

	common.LogInfo("會話已刪除",
		zap.String("session_id", id),
		zap.String("request_id", requestid.Get(c)),
	)
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	status := common.StatusOf(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.Int("status", status),
		zap.String("session_id", c.Param("id")),
		zap.String("request_id", requestid.Get(c)),
	}
	if status >= http.StatusInternalServerError {
		common.LogError(msg, fields...)
	} else {
		common.LogWarn(msg, fields...)
	}

	_ = c.Error(err)
	c.JSON(status, common.ToErrorResponse(err, h.debug))
}
