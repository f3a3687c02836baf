package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/provider"
	"github.com/parcelx-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskCustomEmail, c.handleCustomEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmation_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_confirmation_skip_notifier_nil", "order_id", order.ID)
		return nil
	}
	return c.NotificationService.SendOrderConfirmation(order)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	if strings.TrimSpace(order.Customer.Email) == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "tracking_id", order.TrackingID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_status_email_skip_notifier_nil", "order_id", order.ID)
		return nil
	}
	return c.NotificationService.SendStatusUpdate(order, payload.Status)
}

func (c *Consumer) handleCustomEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_custom_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CustomEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_custom_email_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.To) == "" {
		logger.Debugw("worker_custom_email_skip_empty_receiver")
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_custom_email_skip_email_service_nil", "to", payload.To)
		return nil
	}
	if err := c.EmailService.SendCustomEmail(payload.To, payload.Subject, payload.Body, payload.IsHTML); err != nil {
		logger.Warnw("worker_custom_email_send_failed", "to", payload.To, "error", err)
		return err
	}
	return nil
}
