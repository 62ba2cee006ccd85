package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
// Stock 为 NULL 表示该商品不启用库存管理（视为库存无限）。
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                               // 主键
	OwnerID       uint           `gorm:"not null;index" json:"owner_id"`                     // 店主ID
	Name          string         `gorm:"not null" json:"name"`                               // 商品名称
	Category      string         `gorm:"index" json:"category"`                              // 分类
	Description   string         `json:"description"`                                        // 描述
	Image         string         `json:"image"`                                              // 图片路径
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 原价
	PromoPrice    *Money         `gorm:"type:decimal(20,2)" json:"promo_price"`              // 促销价
	IsPromoActive bool           `gorm:"default:false" json:"is_promo_active"`               // 促销是否生效
	PromoText     string         `json:"promo_text"`                                         // 促销提示文案
	Stock         *int           `json:"stock"`                                              // 库存（NULL 表示不限量）
	IsVisible     bool           `gorm:"default:true;index" json:"is_visible"`               // 是否在售卖页展示
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// UsesStockManagement 是否启用库存管理
func (p *Product) UsesStockManagement() bool {
	return p != nil && p.Stock != nil
}
