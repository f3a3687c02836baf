package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/parcelx-next/internal/http/response"
	"github.com/parcelx-next/internal/models"
	"github.com/parcelx-next/internal/repository"
	"github.com/parcelx-next/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// GetAdminOrders 获取订单列表 (Admin)
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		TrackingID: c.Query("tracking_id"),
		Search:     c.Query("search"),
	}
	if from := strings.TrimSpace(c.Query("created_from")); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := strings.TrimSpace(c.Query("created_to")); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	orders, total, err := h.OrderService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "订单列表获取失败", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetAdminOrderStats 获取订单统计概览 (Admin)
func (h *Handler) GetAdminOrderStats(c *gin.Context) {
	stats, err := h.OrderService.Stats()
	if err != nil {
		respondError(c, response.CodeInternal, "订单统计获取失败", err)
		return
	}
	response.Success(c, stats)
}

// GetAdminOrder 获取订单详情 (Admin)
func (h *Handler) GetAdminOrder(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("id"))
	if ref == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
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
	response.Success(c, order)
}

// TimelineEntryRequest 时间线事件请求
type TimelineEntryRequest struct {
	Status          string                  `json:"status"`
	Date            *time.Time              `json:"date"`
	Time            string                  `json:"time"`
	Location        string                  `json:"location"`
	Completed       bool                    `json:"completed"`
	Notes           string                  `json:"notes"`
	ProofOfDelivery *models.ProofOfDelivery `json:"proof_of_delivery"`
}

// UpdateOrderRequest 更新订单请求，省略的分组保持原值
type UpdateOrderRequest struct {
	Customer *struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	} `json:"customer"`
	Shipping *struct {
		From             string     `json:"from"`
		To               string     `json:"to"`
		ExpectedDelivery *time.Time `json:"expected_delivery"`
	} `json:"shipping"`
	Package *struct {
		Category            string `json:"category"`
		Weight              string `json:"weight"`
		Dimensions          string `json:"dimensions"`
		Value               string `json:"value"`
		SpecialInstructions string `json:"special_instructions"`
	} `json:"package"`
	Timeline []TimelineEntryRequest `json:"timeline"`
}

// UpdateAdminOrder 更新订单 (Admin)
func (h *Handler) UpdateAdminOrder(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("id"))
	if ref == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	input := service.UpdateOrderInput{}
	if req.Customer != nil {
		input.Customer = &models.Customer{
			Name:    req.Customer.Name,
			Email:   req.Customer.Email,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
		}
	}
	if req.Shipping != nil {
		input.Shipping = &models.Shipping{
			From:             req.Shipping.From,
			To:               req.Shipping.To,
			ExpectedDelivery: req.Shipping.ExpectedDelivery,
		}
	}
	if req.Package != nil {
		input.Package = &models.Package{
			Category:            req.Package.Category,
			Weight:              req.Package.Weight,
			Dimensions:          req.Package.Dimensions,
			DeclaredValue:       req.Package.Value,
			SpecialInstructions: req.Package.SpecialInstructions,
		}
	}
	if req.Timeline != nil {
		input.Timeline = buildTimeline(req.Timeline)
	}

	order, outcome, err := h.OrderService.Update(ref, input)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "订单更新失败", err)
		return
	}

	response.Success(c, gin.H{
		"order":        order,
		"notification": outcome,
	})
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

// AppendStatusRequest 追加状态请求
type AppendStatusRequest struct {
	Status          string                  `json:"status" binding:"required"`
	Location        string                  `json:"location"`
	Notes           string                  `json:"notes"`
	Date            *time.Time              `json:"date"`
	ProofOfDelivery *models.ProofOfDelivery `json:"proof_of_delivery"`
}

// AppendAdminOrderStatus 追加订单时间线状态 (Admin)
func (h *Handler) AppendAdminOrderStatus(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("id"))
	if ref == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
	}

	var req AppendStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	order, err := h.OrderService.AppendStatus(ref, service.AppendStatusInput{
		Status:          req.Status,
		Location:        req.Location,
		Notes:           req.Notes,
		Date:            req.Date,
		ProofOfDelivery: req.ProofOfDelivery,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "订单不存在", nil)
		case errors.Is(err, service.ErrInvalidStatus):
			respondError(c, response.CodeBadRequest, "状态不能为空", nil)
		default:
			respondError(c, response.CodeInternal, "状态更新失败", err)
		}
		return
	}

	response.Success(c, order)
}

// DeleteAdminOrder 删除订单 (Admin)
func (h *Handler) DeleteAdminOrder(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("id"))
	if ref == "" {
		respondError(c, response.CodeBadRequest, "请求参数错误", nil)
		return
	}

	if err := h.OrderService.Delete(ref); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "订单不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "订单删除失败", err)
		return
	}

	response.SuccessWithMsg(c, "订单已删除", nil)
}
