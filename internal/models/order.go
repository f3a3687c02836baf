package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Customer 收件客户信息（JSON 列）
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Value 实现 driver.Valuer 接口
func (c Customer) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan 实现 sql.Scanner 接口
func (c *Customer) Scan(value interface{}) error {
	if value == nil {
		*c = Customer{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, ok := value.(string); ok {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, c)
}

// Shipping 运输信息（JSON 列）
type Shipping struct {
	From             string     `json:"from"`
	To               string     `json:"to"`
	ExpectedDelivery *time.Time `json:"expected_delivery,omitempty"`
}

// Value 实现 driver.Valuer 接口
func (s Shipping) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *Shipping) Scan(value interface{}) error {
	if value == nil {
		*s = Shipping{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, ok := value.(string); ok {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

// Package 包裹信息（JSON 列），重量/尺寸/声明价值均为自由文本
type Package struct {
	Category            string `json:"category"`
	Weight              string `json:"weight"`
	Dimensions          string `json:"dimensions"`
	DeclaredValue       string `json:"value"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

// Value 实现 driver.Valuer 接口
func (p Package) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan 实现 sql.Scanner 接口
func (p *Package) Scan(value interface{}) error {
	if value == nil {
		*p = Package{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, ok := value.(string); ok {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, p)
}

// ProofOfDelivery 签收凭证
type ProofOfDelivery struct {
	Kind    string `json:"kind,omitempty"` // image / text
	URL     string `json:"url,omitempty"`
	Alt     string `json:"alt,omitempty"`
	Content string `json:"content,omitempty"`
}

// TimelineEntry 时间线事件，末位条目即订单当前状态
type TimelineEntry struct {
	Status          string           `json:"status"`
	Date            time.Time        `json:"date"`
	Time            string           `json:"time"`
	Location        string           `json:"location"`
	Completed       bool             `json:"completed"`
	Notes           string           `json:"notes,omitempty"`
	ProofOfDelivery *ProofOfDelivery `json:"proof_of_delivery,omitempty"`
}

// Timeline 只追加的状态时间线（JSON 列）
type Timeline []TimelineEntry

// Value 实现 driver.Valuer 接口
func (t Timeline) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(Timeline{})
	}
	return json.Marshal(t)
}

// Scan 实现 sql.Scanner 接口
func (t *Timeline) Scan(value interface{}) error {
	if value == nil {
		*t = Timeline{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if text, ok := value.(string); ok {
			bytes = []byte(text)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, t)
}

// Last 返回最后一条时间线事件，空时间线返回 nil
func (t Timeline) Last() *TimelineEntry {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// CurrentStatus 返回当前状态（末位事件的状态）
func (t Timeline) CurrentStatus() string {
	if last := t.Last(); last != nil {
		return last.Status
	}
	return ""
}

// Order 订单表
type Order struct {
	ID         uint      `gorm:"primarykey" json:"id"`                    // 主键
	TrackingID string    `gorm:"uniqueIndex;not null" json:"tracking_id"` // 追踪编号（大写存储）
	Customer   Customer  `gorm:"type:json;not null" json:"customer"`      // 客户信息
	Shipping   Shipping  `gorm:"type:json;not null" json:"shipping"`      // 运输信息
	Package    Package   `gorm:"type:json;not null" json:"package"`       // 包裹信息
	Timeline   Timeline  `gorm:"type:json;not null" json:"timeline"`      // 状态时间线
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                 // 更新时间
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeSave 入库前统一大写追踪编号、小写客户邮箱
func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.TrackingID = strings.ToUpper(strings.TrimSpace(o.TrackingID))
	o.Customer.Email = strings.ToLower(strings.TrimSpace(o.Customer.Email))
	return nil
}

// Status 返回订单当前状态
func (o *Order) Status() string {
	return o.Timeline.CurrentStatus()
}
