package models

import (
	"time"
)

// StockReservation 库存预留表
// 商品 stock 列始终是权威库存，加入购物车只写预留行，结账时才真正扣减。
// 可售库存 = stock − 未过期预留数量之和。
type StockReservation struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                 // 主键
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_reservation_owner_product" json:"owner_id"`   // 店主ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_reservation_owner_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                             // 预留数量
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`                                     // 过期时间
	CreatedAt time.Time `json:"created_at"`                                                           // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                           // 更新时间
}

// TableName 指定表名
func (StockReservation) TableName() string {
	return "stock_reservations"
}
