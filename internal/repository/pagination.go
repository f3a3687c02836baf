package repository

import "gorm.io/gorm"

// paginate 返回分页 scope，pageSize 不合法时不做分页，页码越界回落到第一页。
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return query
		}
		if page < 1 {
			page = 1
		}
		return query.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
