package admin

import (
	"errors"

	"github.com/parcelx-next/internal/http/response"
	"github.com/parcelx-next/internal/queue"
	"github.com/parcelx-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SendEmailRequest 自定义邮件发送请求
type SendEmailRequest struct {
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	IsHTML  bool   `json:"is_html"`
}

// SendAdminEmail 发送自定义邮件 (Admin)，队列可用时异步发送
func (h *Handler) SendAdminEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueCustomEmail(queue.CustomEmailPayload{
			To:      req.To,
			Subject: req.Subject,
			Body:    req.Body,
			IsHTML:  req.IsHTML,
		}); err != nil {
			respondError(c, response.CodeInternal, "邮件任务入队失败", err)
			return
		}
		response.SuccessWithMsg(c, "邮件任务已入队", gin.H{"queued": true})
		return
	}

	if err := h.EmailService.SendCustomEmail(req.To, req.Subject, req.Body, req.IsHTML); err != nil {
		respondEmailSendError(c, err)
		return
	}
	response.SuccessWithMsg(c, "邮件已发送", gin.H{"queued": false})
}

// SendTestEmailRequest 测试邮件请求
type SendTestEmailRequest struct {
	To string `json:"to" binding:"required"`
}

// SendAdminTestEmail 发送 SMTP 配置测试邮件 (Admin)，始终同步直发
func (h *Handler) SendAdminTestEmail(c *gin.Context) {
	var req SendTestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if err := h.EmailService.SendCustomEmail(req.To, "", "", false); err != nil {
		respondEmailSendError(c, err)
		return
	}
	response.SuccessWithMsg(c, "测试邮件已发送", nil)
}

func respondEmailSendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmailServiceDisabled):
		respondError(c, response.CodeBadRequest, "邮件服务未启用", nil)
	case errors.Is(err, service.ErrEmailServiceNotConfigured):
		respondError(c, response.CodeBadRequest, "邮件服务配置不完整", nil)
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, response.CodeBadRequest, "邮箱格式不正确", nil)
	case errors.Is(err, service.ErrEmailRecipientRejected):
		respondError(c, response.CodeBadRequest, "收件人地址被拒绝", nil)
	default:
		respondError(c, response.CodeInternal, "邮件发送失败", err)
	}
}
