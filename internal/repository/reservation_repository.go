package repository

import (
	"errors"
	"time"

	"github.com/cashere-pos/internal/models"

	"gorm.io/gorm"
)

// ReservationRepository 库存预占数据访问接口
type ReservationRepository interface {
	GetByOwnerAndProduct(ownerID, productID uint) (*models.StockReservation, error)
	ReservedByProduct(productID uint, now time.Time) (int, error)
	AddQuantity(ownerID, productID uint, delta int, expiresAt time.Time) error
	ReleaseQuantity(ownerID, productID uint, delta int) error
	SetQuantity(ownerID, productID uint, quantity int, expiresAt time.Time) error
	DeleteByOwnerAndProduct(ownerID, productID uint) error
	DeleteByOwner(ownerID uint) error
	DeleteExpired(now time.Time) (int64, error)
	WithTx(tx *gorm.DB) ReservationRepository
}

// GormReservationRepository GORM 实现
type GormReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建库存预占仓库
func NewReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReservationRepository) WithTx(tx *gorm.DB) ReservationRepository {
	if tx == nil {
		return r
	}
	return &GormReservationRepository{db: tx}
}

// GetByOwnerAndProduct 获取当前预占记录
func (r *GormReservationRepository) GetByOwnerAndProduct(ownerID, productID uint) (*models.StockReservation, error) {
	var reservation models.StockReservation
	err := r.db.Where("owner_id = ? AND product_id = ?", ownerID, productID).First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ReservedByProduct 统计某商品未过期的预占总量
func (r *GormReservationRepository) ReservedByProduct(productID uint, now time.Time) (int, error) {
	var total *int
	if err := r.db.Model(&models.StockReservation{}).
		Where("product_id = ? AND expires_at > ?", productID, now).
		Select("SUM(quantity)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// AddQuantity 增加预占数量并刷新过期时间, 无记录时创建
func (r *GormReservationRepository) AddQuantity(ownerID, productID uint, delta int, expiresAt time.Time) error {
	existing, err := r.GetByOwnerAndProduct(ownerID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(&models.StockReservation{
			OwnerID:   ownerID,
			ProductID: productID,
			Quantity:  delta,
			ExpiresAt: expiresAt,
		}).Error
	}
	return r.db.Model(&models.StockReservation{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"expires_at": expiresAt,
		}).Error
}

// ReleaseQuantity 减少预占数量, 归零后删除记录
func (r *GormReservationRepository) ReleaseQuantity(ownerID, productID uint, delta int) error {
	existing, err := r.GetByOwnerAndProduct(ownerID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.Quantity-delta <= 0 {
		return r.db.Delete(&models.StockReservation{}, existing.ID).Error
	}
	return r.db.Model(&models.StockReservation{}).
		Where("id = ?", existing.ID).
		Update("quantity", gorm.Expr("quantity - ?", delta)).Error
}

// SetQuantity 将预占数量修正为给定值, 非正数时删除记录
func (r *GormReservationRepository) SetQuantity(ownerID, productID uint, quantity int, expiresAt time.Time) error {
	if quantity <= 0 {
		return r.DeleteByOwnerAndProduct(ownerID, productID)
	}
	existing, err := r.GetByOwnerAndProduct(ownerID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(&models.StockReservation{
			OwnerID:   ownerID,
			ProductID: productID,
			Quantity:  quantity,
			ExpiresAt: expiresAt,
		}).Error
	}
	return r.db.Model(&models.StockReservation{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"expires_at": expiresAt,
		}).Error
}

// DeleteByOwnerAndProduct 删除单条预占记录
func (r *GormReservationRepository) DeleteByOwnerAndProduct(ownerID, productID uint) error {
	return r.db.Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Delete(&models.StockReservation{}).Error
}

// DeleteByOwner 删除店主的全部预占记录
func (r *GormReservationRepository) DeleteByOwner(ownerID uint) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&models.StockReservation{}).Error
}

// DeleteExpired 清理过期预占, 返回清理条数
func (r *GormReservationRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.StockReservation{})
	return result.RowsAffected, result.Error
}
