package service

import (
	"errors"
	"testing"

	"github.com/parcelx-next/internal/config"
	"github.com/parcelx-next/internal/constants"
	"github.com/parcelx-next/internal/models"
)

func TestDispatchOrderConfirmationMissingEmail(t *testing.T) {
	svc := NewNotificationService(NewEmailService(&config.EmailConfig{}), nil)

	outcome := svc.DispatchOrderConfirmation(&models.Order{
		TrackingID: "PXNOEMAIL01",
		Customer:   models.Customer{Name: "Alice Johnson"},
	})
	if outcome.OK {
		t.Fatalf("missing email should not report ok")
	}
	if outcome.Reason != "customer email missing" {
		t.Fatalf("reason want customer email missing got %q", outcome.Reason)
	}
}

func TestDispatchOrderConfirmationDisabledEmailService(t *testing.T) {
	svc := NewNotificationService(NewEmailService(&config.EmailConfig{}), nil)

	outcome := svc.DispatchOrderConfirmation(&models.Order{
		TrackingID: "PXDISABLE01",
		Customer:   models.Customer{Name: "Alice Johnson", Email: "alice@example.com"},
	})
	if outcome.OK || outcome.Queued {
		t.Fatalf("disabled email service should fail dispatch, got %+v", outcome)
	}
	if outcome.Reason != ErrEmailServiceDisabled.Error() {
		t.Fatalf("reason want %q got %q", ErrEmailServiceDisabled.Error(), outcome.Reason)
	}
}

func TestDispatchStatusUpdateMissingOrder(t *testing.T) {
	svc := NewNotificationService(NewEmailService(&config.EmailConfig{}), nil)

	outcome := svc.DispatchStatusUpdate(nil, constants.OrderStatusInTransit)
	if outcome.OK {
		t.Fatalf("nil order should not report ok")
	}
	if outcome.Reason == "" {
		t.Fatalf("nil order should carry a reason")
	}
}

func TestSendStatusUpdateFallsBackToTimeline(t *testing.T) {
	svc := NewNotificationService(NewEmailService(&config.EmailConfig{}), nil)

	// 邮件服务未启用时同步发送返回禁用错误，不应 panic
	err := svc.SendStatusUpdate(&models.Order{
		TrackingID: "PXSTATUS001",
		Customer:   models.Customer{Name: "Carol Chen", Email: "carol@example.com"},
		Timeline: models.Timeline{
			{Status: constants.OrderStatusInTransit, Location: "Hartford, CT"},
		},
	}, "")
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("disabled email service want ErrEmailServiceDisabled got %v", err)
	}
}

func TestSendOrderConfirmationNilGuards(t *testing.T) {
	var svc *NotificationService
	if err := svc.SendOrderConfirmation(&models.Order{}); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("nil service want ErrEmailServiceDisabled got %v", err)
	}

	real := NewNotificationService(nil, nil)
	if err := real.SendOrderConfirmation(nil); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("nil order want ErrEmailServiceDisabled got %v", err)
	}
}
