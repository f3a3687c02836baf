package constants

// 订单时间线状态常量
const (
	OrderStatusPlaced           = "Order Placed"
	OrderStatusPickedUp         = "Picked Up"
	OrderStatusInTransit        = "In Transit"
	OrderStatusOutForDelivery   = "Out for Delivery"
	OrderStatusDelivered        = "Delivered"
	OrderStatusFailedAttempt    = "Failed Attempt"
	OrderStatusReturnedToSender = "Returned to Sender"
)

// 包裹类别常量
const (
	PackageCategoryElectronics = "Electronics"
	PackageCategoryClothing    = "Clothing"
	PackageCategoryDocuments   = "Documents"
	PackageCategoryFragile     = "Fragile"
	PackageCategoryOther       = "Other"
)

// 支持的包裹类别（校验与默认回退顺序）
var SupportedPackageCategories = []string{
	PackageCategoryElectronics,
	PackageCategoryClothing,
	PackageCategoryDocuments,
	PackageCategoryFragile,
	PackageCategoryOther,
}

// 追踪编号常量
const (
	TrackingIDPrefix       = "PX"
	TrackingIDRandomLength = 9
)

// 队列常量
const (
	QueueDefault               = "default"
	TaskOrderConfirmationEmail = "email:order_confirmation"
	TaskOrderStatusEmail       = "email:status_update"
	TaskCustomEmail            = "email:custom"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "px"
)
