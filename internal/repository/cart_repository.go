package repository

import (
	"errors"

	"github.com/cashere-pos/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByOwner(ownerID uint) ([]models.CartItem, error)
	GetByOwnerAndProduct(ownerID, productID uint) (*models.CartItem, error)
	Create(item *models.CartItem) error
	UpdateQuantity(ownerID, productID uint, quantity int) error
	DeleteByOwnerAndProduct(ownerID, productID uint) error
	ClearByOwner(ownerID uint) error
	NextPosition(ownerID uint) (int, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByOwner 按加入顺序获取购物车项
func (r *GormCartRepository) ListByOwner(ownerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").
		Where("owner_id = ?", ownerID).
		Order("position ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByOwnerAndProduct 获取单个购物车项
func (r *GormCartRepository) GetByOwnerAndProduct(ownerID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("owner_id = ? AND product_id = ?", ownerID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create 新增购物车项
func (r *GormCartRepository) Create(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Create(item).Error
}

// UpdateQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateQuantity(ownerID, productID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Update("quantity", quantity).Error
}

// DeleteByOwnerAndProduct 删除购物车项
func (r *GormCartRepository) DeleteByOwnerAndProduct(ownerID, productID uint) error {
	return r.db.Where("owner_id = ? AND product_id = ?", ownerID, productID).
		Delete(&models.CartItem{}).Error
}

// ClearByOwner 清空购物车
func (r *GormCartRepository) ClearByOwner(ownerID uint) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&models.CartItem{}).Error
}

// NextPosition 返回下一个加入顺序号
func (r *GormCartRepository) NextPosition(ownerID uint) (int, error) {
	var maxPosition *int
	if err := r.db.Model(&models.CartItem{}).
		Where("owner_id = ?", ownerID).
		Select("MAX(position)").
		Scan(&maxPosition).Error; err != nil {
		return 0, err
	}
	if maxPosition == nil {
		return 1, nil
	}
	return *maxPosition + 1, nil
}
