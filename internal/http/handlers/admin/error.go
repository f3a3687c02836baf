package admin

import (
	"github.com/parcelx-next/internal/http/response"
	"github.com/parcelx-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.S().With("request_id", id)
		}
	}
	return logger.S()
}

func respondError(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		requestLog(c).Warnw("request_failed",
			"code", code,
			"msg", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

func getAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("admin_id")
	if !exists {
		respondError(c, response.CodeUnauthorized, "未登录", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v > 0 {
			return uint(v), true
		}
	case float64:
		if v > 0 {
			return uint(v), true
		}
	}
	respondError(c, response.CodeUnauthorized, "登录状态无效", nil)
	return 0, false
}
