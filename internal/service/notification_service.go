package service

import (
	"strings"

	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/models"
	"github.com/parcelx-next/internal/queue"
)

// DispatchOutcome 通知派发结果，派发失败不影响订单写入
type DispatchOutcome struct {
	OK     bool   `json:"ok"`
	Queued bool   `json:"queued"`
	Reason string `json:"reason,omitempty"`
}

// NotificationService 订单通知派发服务。
// 队列可用时入队异步发送，否则同步直发，两种路径的失败都只记录不上抛。
type NotificationService struct {
	emailService *EmailService
	queueClient  *queue.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(emailService *EmailService, queueClient *queue.Client) *NotificationService {
	return &NotificationService{
		emailService: emailService,
		queueClient:  queueClient,
	}
}

// DispatchOrderConfirmation 派发下单确认通知
func (s *NotificationService) DispatchOrderConfirmation(order *models.Order) DispatchOutcome {
	if s == nil || order == nil {
		return DispatchOutcome{Reason: "notification service unavailable"}
	}
	if strings.TrimSpace(order.Customer.Email) == "" {
		return DispatchOutcome{Reason: "customer email missing"}
	}

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{OrderID: order.ID}); err != nil {
			logger.Errorw("order_confirmation_enqueue_failed",
				"order_id", order.ID,
				"tracking_id", order.TrackingID,
				"error", err,
			)
			return DispatchOutcome{Reason: err.Error()}
		}
		return DispatchOutcome{OK: true, Queued: true}
	}

	if err := s.SendOrderConfirmation(order); err != nil {
		return DispatchOutcome{Reason: err.Error()}
	}
	return DispatchOutcome{OK: true}
}

// DispatchStatusUpdate 派发状态更新通知
func (s *NotificationService) DispatchStatusUpdate(order *models.Order, status string) DispatchOutcome {
	if s == nil || order == nil {
		return DispatchOutcome{Reason: "notification service unavailable"}
	}
	if strings.TrimSpace(order.Customer.Email) == "" {
		return DispatchOutcome{Reason: "customer email missing"}
	}

	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
			OrderID: order.ID,
			Status:  strings.TrimSpace(status),
		}); err != nil {
			logger.Errorw("status_update_enqueue_failed",
				"order_id", order.ID,
				"tracking_id", order.TrackingID,
				"status", status,
				"error", err,
			)
			return DispatchOutcome{Reason: err.Error()}
		}
		return DispatchOutcome{OK: true, Queued: true}
	}

	if err := s.SendStatusUpdate(order, status); err != nil {
		return DispatchOutcome{Reason: err.Error()}
	}
	return DispatchOutcome{OK: true}
}

// SendOrderConfirmation 同步发送下单确认邮件（worker 与直发共用）
func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	if s == nil || s.emailService == nil || order == nil {
		return ErrEmailServiceDisabled
	}
	err := s.emailService.SendOrderConfirmationEmail(order.Customer.Email, OrderConfirmationEmailInput{
		TrackingID:       order.TrackingID,
		CustomerName:     order.Customer.Name,
		From:             order.Shipping.From,
		To:               order.Shipping.To,
		ExpectedDelivery: order.Shipping.ExpectedDelivery,
	})
	if err != nil {
		logger.Errorw("order_confirmation_send_failed",
			"order_id", order.ID,
			"tracking_id", order.TrackingID,
			"error", err,
		)
		return err
	}
	logger.Infow("order_confirmation_sent",
		"order_id", order.ID,
		"tracking_id", order.TrackingID,
	)
	return nil
}

// SendStatusUpdate 同步发送状态更新邮件（worker 与直发共用）
func (s *NotificationService) SendStatusUpdate(order *models.Order, status string) error {
	if s == nil || s.emailService == nil || order == nil {
		return ErrEmailServiceDisabled
	}
	status = strings.TrimSpace(status)
	location := ""
	notes := ""
	if last := order.Timeline.Last(); last != nil {
		if status == "" {
			status = last.Status
		}
		location = last.Location
		notes = last.Notes
	}
	err := s.emailService.SendStatusUpdateEmail(order.Customer.Email, StatusUpdateEmailInput{
		TrackingID:   order.TrackingID,
		CustomerName: order.Customer.Name,
		Status:       status,
		Location:     location,
		Notes:        notes,
	})
	if err != nil {
		logger.Errorw("status_update_send_failed",
			"order_id", order.ID,
			"tracking_id", order.TrackingID,
			"status", status,
			"error", err,
		)
		return err
	}
	logger.Infow("status_update_sent",
		"order_id", order.ID,
		"tracking_id", order.TrackingID,
		"status", status,
	)
	return nil
}
