package models

import (
	"time"
)

// CartItem 购物车项
// 每个店主同一商品只有一行；Position 保持加入顺序。
// 购物车行是临时数据, 硬删除, 不做软删除,
// 否则已删行会一直占用 (owner_id, product_id) 唯一索引。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                          // 主键
	OwnerID   uint      `gorm:"not null;uniqueIndex:idx_cart_owner_product" json:"owner_id"`   // 店主ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_owner_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                      // 数量（≥1）
	Position  int       `gorm:"not null;default:0;index" json:"position"`                      // 加入顺序
	CreatedAt time.Time `json:"created_at"`                                                    // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                    // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
