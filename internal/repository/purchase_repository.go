package repository

import (
	"errors"

	"github.com/cashere-pos/internal/models"

	"gorm.io/gorm"
)

// PurchaseRepository 交易记录数据访问接口
type PurchaseRepository interface {
	Create(purchase *models.Purchase) error
	GetOwned(ownerID, id uint) (*models.Purchase, error)
	ListByOwner(ownerID uint, filter PurchaseListFilter) ([]models.Purchase, int64, error)
	ListOwnedByIDs(ownerID uint, ids []uint) ([]models.Purchase, error)
	ListAllByOwner(ownerID uint) ([]models.Purchase, error)
	CountByCustomerID(customerID string) (int64, error)
	Update(purchase *models.Purchase) error
	Delete(ownerID, id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PurchaseRepository
}

// GormPurchaseRepository GORM 实现
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository 创建交易记录仓库
func NewPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPurchaseRepository) WithTx(tx *gorm.DB) PurchaseRepository {
	if tx == nil {
		return r
	}
	return &GormPurchaseRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPurchaseRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 写入交易记录
func (r *GormPurchaseRepository) Create(purchase *models.Purchase) error {
	if purchase == nil {
		return nil
	}
	return r.db.Create(purchase).Error
}

// GetOwned 获取店主的单条交易记录
func (r *GormPurchaseRepository) GetOwned(ownerID, id uint) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Where("owner_id = ? AND id = ?", ownerID, id).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ListByOwner 分页查询交易记录
func (r *GormPurchaseRepository) ListByOwner(ownerID uint, filter PurchaseListFilter) ([]models.Purchase, int64, error) {
	query := r.db.Model(&models.Purchase{}).Where("owner_id = ?", ownerID)
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("purchased_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("purchased_at < ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var purchases []models.Purchase
	if err := applyPagination(query, filter.Page, filter.PageSize).
		Order("purchased_at DESC, id DESC").
		Find(&purchases).Error; err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

// ListOwnedByIDs 按 ID 集合查询店主的交易记录
func (r *GormPurchaseRepository) ListOwnedByIDs(ownerID uint, ids []uint) ([]models.Purchase, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var purchases []models.Purchase
	if err := r.db.Where("owner_id = ? AND id IN ?", ownerID, ids).
		Order("purchased_at DESC, id DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ListAllByOwner 查询店主的全部交易记录, 用于导出
func (r *GormPurchaseRepository) ListAllByOwner(ownerID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("purchased_at DESC, id DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// CountByCustomerID 统计顾客编号出现次数, 用于唯一性校验
func (r *GormPurchaseRepository) CountByCustomerID(customerID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Purchase{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update 保存交易记录修改
func (r *GormPurchaseRepository) Update(purchase *models.Purchase) error {
	if purchase == nil {
		return nil
	}
	return r.db.Save(purchase).Error
}

// Delete 删除店主的交易记录
func (r *GormPurchaseRepository) Delete(ownerID, id uint) error {
	return r.db.Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&models.Purchase{}).Error
}
