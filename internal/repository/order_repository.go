package repository

import (
	"errors"
	"strings"

	"github.com/parcelx-next/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateTrackingID 追踪编号唯一索引冲突
var ErrDuplicateTrackingID = errors.New("duplicate tracking id")

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByTrackingID(trackingID string) (*models.Order, error)
	Update(order *models.Order) error
	Delete(id uint) error
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListAll() ([]models.Order, error)
	ListRecent(limit int) ([]models.Order, error)
	Count() (int64, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create 创建订单，追踪编号冲突时返回 ErrDuplicateTrackingID
func (r *GormOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateTrackingID
		}
		return err
	}
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByTrackingID 根据追踪编号获取订单（大小写不敏感）
func (r *GormOrderRepository) GetByTrackingID(trackingID string) (*models.Order, error) {
	normalized := strings.ToUpper(strings.TrimSpace(trackingID))
	if normalized == "" {
		return nil, nil
	}
	var order models.Order
	if err := r.db.Where("tracking_id = ?", normalized).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Update 保存订单全部字段
func (r *GormOrderRepository) Update(order *models.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateTrackingID
		}
		return err
	}
	return nil
}

// Delete 删除订单
func (r *GormOrderRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.Order{}, id).Error
}

// List 按过滤条件查询订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.TrackingID != "" {
		query = query.Where("tracking_id = ?", strings.ToUpper(strings.TrimSpace(filter.TrackingID)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildJSONLikeCondition(r.db,
			[]string{"tracking_id"},
			[]jsonColumnKey{
				{Column: "customer", Key: "name"},
				{Column: "customer", Key: "email"},
				{Column: "shipping", Key: "from"},
				{Column: "shipping", Key: "to"},
			},
		)
		if condition != "" {
			like := "%" + search + "%"
			query = query.Where(condition, repeatLikeArgs(like, argCount)...)
		}
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(paginate(filter.Page, filter.PageSize))

	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAll 获取全部订单（新单在前）
func (r *GormOrderRepository) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListRecent 获取最近创建的订单
func (r *GormOrderRepository) ListRecent(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []models.Order
	if err := r.db.Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count 统计订单总数
func (r *GormOrderRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// isDuplicateKeyError 判断唯一索引冲突，sqlite 驱动不会返回 gorm.ErrDuplicatedKey
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") ||
		strings.Contains(message, "duplicate key")
}
