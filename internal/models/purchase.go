package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase 销售流水表
// 每条记录对应一次结账中的一行商品，商品名称与成交单价做快照冗余，
// 除后台手工修正外不再变更。
type Purchase struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                     // 主键
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`                           // 店主ID
	ProductName   string         `gorm:"not null" json:"product_name"`                             // 商品名称快照
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`       // 成交单价
	Quantity      int            `gorm:"not null" json:"quantity"`                                 // 数量
	TotalPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 行小计
	IsPromo       bool           `gorm:"default:false" json:"is_promo"`                            // 是否按促销价成交
	PaymentMethod string         `gorm:"not null" json:"payment_method"`                           // 支付方式
	OrderType     string         `json:"order_type"`                                               // 订单类型（可选）
	CustomerName  string         `json:"customer_name"`                                            // 客户姓名（可选）
	CustomerID    string         `gorm:"index" json:"customer_id"`                                 // 客户编号
	PurchasedAt   time.Time      `gorm:"index" json:"purchased_at"`                                // 成交时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间
}

// TableName 指定表名
func (Purchase) TableName() string {
	return "purchases"
}
