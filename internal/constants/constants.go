package constants

// 支付方式常量
const (
	PaymentMethodCash = "cash"
)

// 订单类型常量（堂食/打包，来自收银台下单表单）
const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeaway = "takeaway"
)

// 异步任务名称常量
const (
	TaskReservationSweep = "reservation:sweep"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 库存提示阈值：剩余可用库存不高于该值时在通知中附带剩余数量
const LowStockNoticeThreshold = 5

// 仪表盘低库存统计阈值：库存低于该值的在售商品计入低库存
const DashboardLowStockThreshold = 3

// 无客户姓名时客户编号的固定前缀
const CustomerIDFallbackPrefix = "CUST"

// 客户编号随机后缀长度与生成重试次数上限
const (
	CustomerIDSuffixLength   = 6
	CustomerIDMaxGenAttempts = 5
)
