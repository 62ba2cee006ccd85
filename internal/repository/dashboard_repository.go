package repository

import (
	"time"

	"github.com/cashere-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository 经营统计数据访问接口
type DashboardRepository interface {
	SalesBetween(ownerID uint, from, to time.Time) (decimal.Decimal, error)
	TransactionCountBetween(ownerID uint, from, to time.Time) (int64, error)
	LowStockCount(ownerID uint, threshold int) (int64, error)
	ActiveProductCount(ownerID uint) (int64, error)
	TopPaymentMethod(ownerID uint, from, to time.Time) (string, error)
	TopProduct(ownerID uint, from, to time.Time) (string, int, error)
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建统计仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// SalesBetween 统计区间内的销售额
func (r *GormDashboardRepository) SalesBetween(ownerID uint, from, to time.Time) (decimal.Decimal, error) {
	var total *string
	if err := r.db.Model(&models.Purchase{}).
		Where("owner_id = ? AND purchased_at >= ? AND purchased_at < ?", ownerID, from, to).
		Select("SUM(total_price)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if total == nil || *total == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(*total)
	if err != nil {
		return decimal.Zero, err
	}
	return value, nil
}

// TransactionCountBetween 统计区间内的交易笔数, 同一次结账的多条记录算多笔商品行
func (r *GormDashboardRepository) TransactionCountBetween(ownerID uint, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Purchase{}).
		Where("owner_id = ? AND purchased_at >= ? AND purchased_at < ?", ownerID, from, to).
		Distinct("customer_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// LowStockCount 统计库存低于阈值的可见商品数量
func (r *GormDashboardRepository) LowStockCount(ownerID uint, threshold int) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("owner_id = ? AND is_visible = ? AND stock IS NOT NULL AND stock < ?", ownerID, true, threshold).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ActiveProductCount 统计上架中的商品数量
func (r *GormDashboardRepository) ActiveProductCount(ownerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).
		Where("owner_id = ? AND is_visible = ?", ownerID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TopPaymentMethod 统计区间内使用最多的支付方式
func (r *GormDashboardRepository) TopPaymentMethod(ownerID uint, from, to time.Time) (string, error) {
	var method string
	err := r.db.Model(&models.Purchase{}).
		Where("owner_id = ? AND purchased_at >= ? AND purchased_at < ?", ownerID, from, to).
		Select("payment_method").
		Group("payment_method").
		Order("COUNT(*) DESC").
		Limit(1).
		Scan(&method).Error
	if err != nil {
		return "", err
	}
	return method, nil
}

type topProductRow struct {
	ProductName string
	Total       int
}

// TopProduct 统计区间内销量最高的商品
func (r *GormDashboardRepository) TopProduct(ownerID uint, from, to time.Time) (string, int, error) {
	var row topProductRow
	err := r.db.Model(&models.Purchase{}).
		Where("owner_id = ? AND purchased_at >= ? AND purchased_at < ?", ownerID, from, to).
		Select("product_name, SUM(quantity) AS total").
		Group("product_name").
		Order("total DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return "", 0, err
	}
	return row.ProductName, row.Total, nil
}
