package public

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
