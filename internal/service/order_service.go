package service

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/parcelx-next/internal/constants"
	"github.com/parcelx-next/internal/logger"
	"github.com/parcelx-next/internal/models"
	"github.com/parcelx-next/internal/repository"
)

const maxTrackingIDAttempts = 3

// OrderService 订单服务
type OrderService struct {
	orderRepo repository.OrderRepository
	notifier  *NotificationService
}

// NewOrderService 创建订单服务实例
func NewOrderService(orderRepo repository.OrderRepository, notifier *NotificationService) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

// CreateOrderInput 创建订单输入，时间线缺省时合成初始事件
type CreateOrderInput struct {
	Customer models.Customer
	Shipping models.Shipping
	Package  models.Package
	Timeline models.Timeline
}

// validateCreateOrderInput 创建订单入参校验，同时规整包裹类别
func validateCreateOrderInput(input *CreateOrderInput) error {
	input.Customer.Name = strings.TrimSpace(input.Customer.Name)
	input.Customer.Email = strings.TrimSpace(input.Customer.Email)
	input.Customer.Phone = strings.TrimSpace(input.Customer.Phone)
	input.Customer.Address = strings.TrimSpace(input.Customer.Address)
	input.Shipping.From = strings.TrimSpace(input.Shipping.From)
	input.Shipping.To = strings.TrimSpace(input.Shipping.To)
	input.Package.Weight = strings.TrimSpace(input.Package.Weight)
	input.Package.Dimensions = strings.TrimSpace(input.Package.Dimensions)
	input.Package.DeclaredValue = strings.TrimSpace(input.Package.DeclaredValue)
	input.Package.Category = normalizePackageCategory(input.Package.Category)

	if input.Customer.Name == "" || input.Customer.Email == "" ||
		input.Customer.Phone == "" || input.Customer.Address == "" {
		return ErrCustomerInfoRequired
	}
	if _, err := mail.ParseAddress(input.Customer.Email); err != nil {
		return ErrInvalidEmail
	}
	if input.Shipping.From == "" || input.Shipping.To == "" || input.Shipping.ExpectedDelivery == nil {
		return ErrShippingInfoRequired
	}
	if input.Package.Weight == "" || input.Package.Dimensions == "" || input.Package.DeclaredValue == "" {
		return ErrPackageInfoRequired
	}
	return nil
}

// normalizePackageCategory 规整包裹类别，未知类别回退为 Other
func normalizePackageCategory(category string) string {
	category = strings.TrimSpace(category)
	for _, supported := range constants.SupportedPackageCategories {
		if strings.EqualFold(category, supported) {
			return supported
		}
	}
	return constants.PackageCategoryOther
}

// Create 创建订单并派发下单确认通知。
// 追踪编号冲突时重新生成，重试耗尽返回 ErrTrackingIDConflict。
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, DispatchOutcome, error) {
	if err := validateCreateOrderInput(&input); err != nil {
		return nil, DispatchOutcome{}, err
	}

	now := time.Now()
	timeline := input.Timeline
	if len(timeline) == 0 {
		timeline = initialTimeline(input.Shipping, now)
	}

	var order *models.Order
	for attempt := 0; attempt < maxTrackingIDAttempts; attempt++ {
		candidate := &models.Order{
			TrackingID: GenerateTrackingID(),
			Customer:   input.Customer,
			Shipping:   input.Shipping,
			Package:    input.Package,
			Timeline:   timeline,
		}
		err := s.orderRepo.Create(candidate)
		if err == nil {
			order = candidate
			break
		}
		if errors.Is(err, repository.ErrDuplicateTrackingID) {
			logger.Warnw("tracking_id_collision_retry",
				"tracking_id", candidate.TrackingID,
				"attempt", attempt+1,
			)
			continue
		}
		return nil, DispatchOutcome{}, err
	}
	if order == nil {
		return nil, DispatchOutcome{}, ErrTrackingIDConflict
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"tracking_id", order.TrackingID,
		"customer_email", order.Customer.Email,
	)

	outcome := s.notifier.DispatchOrderConfirmation(order)
	return order, outcome, nil
}

// GetByRef 按引用查询订单：纯数字按 ID，否则按追踪编号（大小写不敏感）
func (s *OrderService) GetByRef(ref string) (*models.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrOrderNotFound
	}

	var order *models.Order
	var err error
	if id, parseErr := strconv.ParseUint(ref, 10, 64); parseErr == nil {
		order, err = s.orderRepo.GetByID(uint(id))
	} else {
		order, err = s.orderRepo.GetByTrackingID(ref)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderInput 更新订单输入，nil 分组保持原值
type UpdateOrderInput struct {
	Customer *models.Customer
	Shipping *models.Shipping
	Package  *models.Package
	Timeline models.Timeline
}

// Update 更新订单：非空字段覆盖合并，时间线提供时整体替换。
// 末位状态发生变化时派发状态更新通知。
func (s *OrderService) Update(ref string, input UpdateOrderInput) (*models.Order, DispatchOutcome, error) {
	order, err := s.GetByRef(ref)
	if err != nil {
		return nil, DispatchOutcome{}, err
	}

	before := order.Timeline

	if input.Customer != nil {
		overlayCustomer(&order.Customer, *input.Customer)
	}
	if input.Shipping != nil {
		overlayShipping(&order.Shipping, *input.Shipping)
	}
	if input.Package != nil {
		overlayPackage(&order.Package, *input.Package)
	}
	if input.Timeline != nil {
		order.Timeline = input.Timeline
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, DispatchOutcome{}, err
	}

	invalidateTrackCache(order)
	logger.Infow("order_updated",
		"order_id", order.ID,
		"tracking_id", order.TrackingID,
	)

	var outcome DispatchOutcome
	if status := order.Timeline.CurrentStatus(); status != "" && timelineStatusChanged(before, order.Timeline) {
		outcome = s.notifier.DispatchStatusUpdate(order, status)
	}
	return order, outcome, nil
}

// AppendStatusInput 追加时间线状态输入，Date 缺省取当前时间
type AppendStatusInput struct {
	Status          string
	Location        string
	Notes           string
	Date            *time.Time
	ProofOfDelivery *models.ProofOfDelivery
}

// AppendStatus 向订单时间线追加一条状态事件。
// 该路径只写入不通知，状态通知由更新路径负责。
func (s *OrderService) AppendStatus(ref string, input AppendStatusInput) (*models.Order, error) {
	if strings.TrimSpace(input.Status) == "" {
		return nil, ErrInvalidStatus
	}

	order, err := s.GetByRef(ref)
	if err != nil {
		return nil, err
	}

	entry := newStatusEntry(input.Status, input.Location, input.Notes, order.Shipping, time.Now())
	if input.Date != nil {
		entry.Date = *input.Date
	}
	entry.ProofOfDelivery = input.ProofOfDelivery
	order.Timeline = append(order.Timeline, entry)

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	invalidateTrackCache(order)
	logger.Infow("order_status_appended",
		"order_id", order.ID,
		"tracking_id", order.TrackingID,
		"status", entry.Status,
	)
	return order, nil
}

// Delete 删除订单
func (s *OrderService) Delete(ref string) error {
	order, err := s.GetByRef(ref)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(order.ID); err != nil {
		return err
	}
	invalidateTrackCache(order)
	logger.Infow("order_deleted",
		"order_id", order.ID,
		"tracking_id", order.TrackingID,
	)
	return nil
}

// List 按过滤条件查询订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// OrderStats 订单统计概览
type OrderStats struct {
	Total        int64            `json:"total"`
	StatusCounts map[string]int64 `json:"status_counts"`
	Recent       []models.Order   `json:"recent"`
}

// Stats 统计订单总量、各状态数量与最近订单
func (s *OrderService) Stats() (*OrderStats, error) {
	total, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListAll()
	if err != nil {
		return nil, err
	}
	statusCounts := make(map[string]int64)
	for i := range orders {
		status := orders[i].Timeline.CurrentStatus()
		if status == "" {
			continue
		}
		statusCounts[status]++
	}

	recent, err := s.orderRepo.ListRecent(5)
	if err != nil {
		return nil, err
	}

	return &OrderStats{
		Total:        total,
		StatusCounts: statusCounts,
		Recent:       recent,
	}, nil
}

func overlayCustomer(dst *models.Customer, patch models.Customer) {
	if v := strings.TrimSpace(patch.Name); v != "" {
		dst.Name = v
	}
	if v := strings.TrimSpace(patch.Email); v != "" {
		dst.Email = v
	}
	if v := strings.TrimSpace(patch.Phone); v != "" {
		dst.Phone = v
	}
	if v := strings.TrimSpace(patch.Address); v != "" {
		dst.Address = v
	}
}

func overlayShipping(dst *models.Shipping, patch models.Shipping) {
	if v := strings.TrimSpace(patch.From); v != "" {
		dst.From = v
	}
	if v := strings.TrimSpace(patch.To); v != "" {
		dst.To = v
	}
	if patch.ExpectedDelivery != nil {
		dst.ExpectedDelivery = patch.ExpectedDelivery
	}
}

func overlayPackage(dst *models.Package, patch models.Package) {
	if v := strings.TrimSpace(patch.Category); v != "" {
		dst.Category = normalizePackageCategory(v)
	}
	if v := strings.TrimSpace(patch.Weight); v != "" {
		dst.Weight = v
	}
	if v := strings.TrimSpace(patch.Dimensions); v != "" {
		dst.Dimensions = v
	}
	if v := strings.TrimSpace(patch.DeclaredValue); v != "" {
		dst.DeclaredValue = v
	}
	if v := strings.TrimSpace(patch.SpecialInstructions); v != "" {
		dst.SpecialInstructions = v
	}
}
