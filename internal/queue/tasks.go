package queue

import (
	"encoding/json"

	"github.com/parcelx-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 下单确认邮件任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
	// TaskOrderStatusEmail 状态更新邮件任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskCustomEmail 自定义邮件任务
	TaskCustomEmail = constants.TaskCustomEmail
)

// OrderConfirmationEmailPayload 下单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderStatusEmailPayload 状态更新邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// CustomEmailPayload 自定义邮件任务载荷
type CustomEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	IsHTML  bool   `json:"is_html"`
}

// NewOrderConfirmationEmailTask 创建下单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// NewOrderStatusEmailTask 创建状态更新邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}

// NewCustomEmailTask 创建自定义邮件任务
func NewCustomEmailTask(payload CustomEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCustomEmail, body), nil
}
