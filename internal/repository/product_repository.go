package repository

import (
	"errors"

	"github.com/cashere-pos/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
// 所有查询都以店主 ID 过滤，多租户隔离在仓库层兜底。
type ProductRepository interface {
	List(ownerID uint, filter ProductListFilter) ([]models.Product, int64, error)
	ListVisibleOwned(ownerID uint) ([]models.Product, error)
	GetOwned(ownerID, id uint) (*models.Product, error)
	GetVisibleOwned(ownerID, id uint) (*models.Product, error)
	ListOwnedByIDs(ownerID uint, ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(ownerID, id uint) error
	AdjustStock(id uint, delta int) (int64, error)
	ConsumeStock(id uint, quantity int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(ownerID uint, filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{}).Where("owner_id = ?", ownerID)
	if filter.OnlyVisible {
		query = query.Where("is_visible = ?", true)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("category ASC, name ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListVisibleOwned 售卖页商品列表（按分类、名称排序）
func (r *GormProductRepository) ListVisibleOwned(ownerID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("owner_id = ? AND is_visible = ?", ownerID, true).
		Order("category ASC, name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetOwned 获取店主名下商品（不区分可见性）
func (r *GormProductRepository) GetOwned(ownerID, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("owner_id = ?", ownerID).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetVisibleOwned 获取店主名下可见商品
func (r *GormProductRepository) GetVisibleOwned(ownerID, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("owner_id = ? AND is_visible = ?", ownerID, true).
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListOwnedByIDs 批量获取店主名下商品
func (r *GormProductRepository) ListOwnedByIDs(ownerID uint, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("owner_id = ? AND id IN ?", ownerID, ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(ownerID, id uint) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&models.Product{}, id).Error
}

// AdjustStock 调整库存：stock = max(0, stock + delta)，仅作用于启用库存管理的商品
func (r *GormProductRepository) AdjustStock(id uint, delta int) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid stock adjust params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock IS NOT NULL", id).
		Update("stock", gorm.Expr("CASE WHEN stock + ? >= 0 THEN stock + ? ELSE 0 END", delta, delta))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ConsumeStock 结账扣减库存：stock = max(0, stock − quantity)
func (r *GormProductRepository) ConsumeStock(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock consume params")
	}
	return r.AdjustStock(id, -quantity)
}
