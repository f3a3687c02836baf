package service

import "errors"

// 业务错误定义
var (
	ErrOrderNotFound             = errors.New("订单不存在")
	ErrCustomerInfoRequired      = errors.New("客户姓名与邮箱不能为空")
	ErrShippingInfoRequired      = errors.New("寄件地与收件地不能为空")
	ErrPackageInfoRequired       = errors.New("包裹重量与尺寸不能为空")
	ErrInvalidEmail              = errors.New("邮箱格式不正确")
	ErrInvalidStatus             = errors.New("状态不能为空")
	ErrTrackingIDConflict        = errors.New("追踪编号生成冲突")
	ErrInvalidCredentials        = errors.New("用户名或密码错误")
	ErrInvalidPassword           = errors.New("原密码错误")
	ErrNotFound                  = errors.New("记录不存在")
	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务配置不完整")
	ErrEmailRecipientRejected    = errors.New("收件人地址被拒绝")
)
