package public

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parcelx-next/internal/config"
	"github.com/parcelx-next/internal/http/response"
	"github.com/parcelx-next/internal/models"
	"github.com/parcelx-next/internal/provider"
	"github.com/parcelx-next/internal/repository"
	"github.com/parcelx-next/internal/service"

	"github.com/gin-gonic/gin"
)

type stubOrderRepo struct {
	repository.OrderRepository

	getByIDFunc         func(id uint) (*models.Order, error)
	getByTrackingIDFunc func(trackingID string) (*models.Order, error)
	createFunc          func(order *models.Order) error
}

func (s *stubOrderRepo) GetByID(id uint) (*models.Order, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(id)
	}
	return nil, nil
}

func (s *stubOrderRepo) GetByTrackingID(trackingID string) (*models.Order, error) {
	if s.getByTrackingIDFunc != nil {
		return s.getByTrackingIDFunc(trackingID)
	}
	return nil, nil
}

func (s *stubOrderRepo) Create(order *models.Order) error {
	if s.createFunc != nil {
		return s.createFunc(order)
	}
	return nil
}

func newTestHandler(repo repository.OrderRepository) *Handler {
	emailService := service.NewEmailService(&config.EmailConfig{})
	notifier := service.NewNotificationService(emailService, nil)
	return New(&provider.Container{
		OrderRepo:    repo,
		OrderService: service.NewOrderService(repo, notifier),
	})
}

func TestCreateOrderBindFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestHandler(&stubOrderRepo{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/public/orders", strings.NewReader(`{"customer":`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.CreateOrder(c)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status code want %d got %d", response.CodeBadRequest, resp.StatusCode)
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubOrderRepo{
		createFunc: func(order *models.Order) error {
			order.ID = 5
			return nil
		},
	}
	handler := newTestHandler(repo)

	body := `{
		"customer": {"name": "Alice Johnson", "email": "alice@example.com", "phone": "+1-202-555-0143", "address": "221B Maple Street"},
		"shipping": {"from": "Chicago, IL", "to": "Springfield, IL", "expected_delivery": "2026-09-05T00:00:00Z"},
		"package": {"category": "Electronics", "weight": "2.4 kg", "dimensions": "30x20x15 cm", "value": "350 USD"}
	}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/public/orders", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.CreateOrder(c)

	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Order        models.Order            `json:"order"`
			Notification service.DispatchOutcome `json:"notification"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.Order.ID != 5 {
		t.Fatalf("order id want 5 got %d", resp.Data.Order.ID)
	}
	if !strings.HasPrefix(resp.Data.Order.TrackingID, "PX") {
		t.Fatalf("tracking id should be generated, got %q", resp.Data.Order.TrackingID)
	}
	// 邮件服务未启用，通知失败但订单创建成功
	if resp.Data.Notification.OK {
		t.Fatalf("notification outcome should not be ok with email disabled")
	}
}

func TestTrackOrderByTrackingID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &stubOrderRepo{
		getByTrackingIDFunc: func(trackingID string) (*models.Order, error) {
			if strings.EqualFold(trackingID, "PXTRACK0001") {
				return &models.Order{ID: 3, TrackingID: "PXTRACK0001"}, nil
			}
			return nil, nil
		},
	}
	handler := newTestHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/public/track/pxtrack0001", nil)
	c.Params = gin.Params{{Key: "ref", Value: "pxtrack0001"}}

	handler.TrackOrder(c)

	var resp struct {
		StatusCode int          `json:"status_code"`
		Data       models.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.TrackingID != "PXTRACK0001" {
		t.Fatalf("tracking id want PXTRACK0001 got %q", resp.Data.TrackingID)
	}
}

func TestTrackOrderNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestHandler(&stubOrderRepo{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/public/track/PXNOSUCH001", nil)
	c.Params = gin.Params{{Key: "ref", Value: "PXNOSUCH001"}}

	handler.TrackOrder(c)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("status code want %d got %d", response.CodeNotFound, resp.StatusCode)
	}
}
