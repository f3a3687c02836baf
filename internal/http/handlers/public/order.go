package public

import (
	"errors"
	"strings"
	"time"

	"github.com/parcelx-next/internal/cache"
	"github.com/parcelx-next/internal/http/response"
	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/models"
	"github.com/parcelx-next/internal/service"

	"github.com/gin-gonic/gin"
)

const trackCacheTTL = 30 * time.Second

// CustomerRequest 客户信息请求
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ShippingRequest 运输信息请求
type ShippingRequest struct {
	From             string     `json:"from"`
	To               string     `json:"to"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
}

// PackageRequest 包裹信息请求
type PackageRequest struct {
	Category            string `json:"category"`
	Weight              string `json:"weight"`
	Dimensions          string `json:"dimensions"`
	Value               string `json:"value"`
	SpecialInstructions string `json:"special_instructions"`
}

// TimelineEntryRequest 随单提交的时间线事件
type TimelineEntryRequest struct {
	Status          string                  `json:"status"`
	Date            *time.Time              `json:"date"`
	Time            string                  `json:"time"`
	Location        string                  `json:"location"`
	Completed       bool                    `json:"completed"`
	Notes           string                  `json:"notes"`
	ProofOfDelivery *models.ProofOfDelivery `json:"proof_of_delivery"`
}

// CreateOrderRequest 创建订单请求，时间线可省略
type CreateOrderRequest struct {
	Customer CustomerRequest        `json:"customer" binding:"required"`
	Shipping ShippingRequest        `json:"shipping" binding:"required"`
	Package  PackageRequest         `json:"package" binding:"required"`
	Timeline []TimelineEntryRequest `json:"timeline"`
}

func buildTimeline(entries []TimelineEntryRequest) models.Timeline {
	timeline := make(models.Timeline, 0, len(entries))
	for _, entry := range entries {
		date := time.Now()
		if entry.Date != nil {
			date = *entry.Date
		}
		timeline = append(timeline, models.TimelineEntry{
			Status:          entry.Status,
			Date:            date,
			Time:            entry.Time,
			Location:        entry.Location,
			Completed:       entry.Completed,
			Notes:           entry.Notes,
			ProofOfDelivery: entry.ProofOfDelivery,
		})
	}
	return timeline
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	order, outcome, err := h.OrderService.Create(service.CreateOrderInput{
		Customer: models.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		},
		Shipping: models.Shipping{
			From:             req.Shipping.From,
			To:               req.Shipping.To,
			ExpectedDelivery: req.Shipping.ExpectedDelivery,
		},
		Package: models.Package{
			Category:            req.Package.Category,
			Weight:              req.Package.Weight,
			Dimensions:          req.Package.Dimensions,
			DeclaredValue:       req.Package.Value,
			SpecialInstructions: req.Package.SpecialInstructions,
		},
		Timeline: buildTimeline(req.Timeline),
	})
	if err != nil {
		respondCreateOrderError(c, err)
		return
	}

	response.Success(c, gin.H{
		"order":        order,
		"notification": outcome,
	})
}

func respondCreateOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCustomerInfoRequired),
		errors.Is(err, service.ErrShippingInfoRequired),
		errors.Is(err, service.ErrPackageInfoRequired),
		errors.Is(err, service.ErrInvalidEmail):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrTrackingIDConflict):
		respondError(c, response.CodeConflict, err.Error(), err)
	default:
		respondError(c, response.CodeInternal, "订单创建失败", err)
	}
}

// TrackOrder 公开包裹追踪（按 ID 或追踪编号），短缓存降低热点单查询压力
func (h *Handler) TrackOrder(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
	}

	ctx := c.Request.Context()
	cacheKey := service.TrackCacheKey(ref)
	var cached models.Order
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	} else if err != nil {
		logger.Debugw("track_cache_get_failed", "key", cacheKey, "error", err)
	}

	order, err := h.OrderService.GetByRef(ref)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "订单查询失败", err)
		return
	}

	if err := cache.SetJSON(ctx, cacheKey, order, trackCacheTTL); err != nil {
		logger.Debugw("track_cache_set_failed", "key", cacheKey, "error", err)
	}
	response.Success(c, order)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}
