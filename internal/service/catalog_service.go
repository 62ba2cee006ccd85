package service

import (
	"strings"
	"time"

	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogService 商品目录服务
type CatalogService struct {
	productRepo     repository.ProductRepository
	reservationRepo repository.ReservationRepository
}

// NewCatalogService 创建商品目录服务
func NewCatalogService(productRepo repository.ProductRepository, reservationRepo repository.ReservationRepository) *CatalogService {
	return &CatalogService{
		productRepo:     productRepo,
		reservationRepo: reservationRepo,
	}
}

// UpsertProductInput 创建/更新商品输入
type UpsertProductInput struct {
	Name          string
	Category      string
	Description   string
	Image         string
	Price         decimal.Decimal
	PromoPrice    *decimal.Decimal
	IsPromoActive bool
	PromoText     string
	Stock         *int
	IsVisible     *bool
}

// List 查询店主的商品列表
func (s *CatalogService) List(ownerID uint, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if ownerID == 0 {
		return nil, 0, ErrOwnerRequired
	}
	return s.productRepo.List(ownerID, filter)
}

// ListShop 查询收银界面的在售商品, 按分类与名称排序
func (s *CatalogService) ListShop(ownerID uint) ([]models.Product, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	return s.productRepo.ListVisibleOwned(ownerID)
}

// Get 获取店主的单个商品
func (s *CatalogService) Get(ownerID, productID uint) (*models.Product, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	product, err := s.productRepo.GetOwned(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *CatalogService) Create(ownerID uint, input UpsertProductInput) (*models.Product, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price.IsNegative() {
		return nil, ErrProductInvalid
	}
	product := &models.Product{
		OwnerID:       ownerID,
		Name:          name,
		Category:      strings.TrimSpace(input.Category),
		Description:   strings.TrimSpace(input.Description),
		Image:         strings.TrimSpace(input.Image),
		Price:         models.NewMoneyFromDecimal(input.Price),
		IsPromoActive: input.IsPromoActive,
		PromoText:     strings.TrimSpace(input.PromoText),
		Stock:         input.Stock,
		IsVisible:     true,
	}
	if input.PromoPrice != nil {
		promo := models.NewMoneyFromDecimal(*input.PromoPrice)
		product.PromoPrice = &promo
	}
	if input.IsVisible != nil {
		product.IsVisible = *input.IsVisible
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *CatalogService) Update(ownerID, productID uint, input UpsertProductInput) (*models.Product, error) {
	product, err := s.Get(ownerID, productID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Price.IsNegative() {
		return nil, ErrProductInvalid
	}
	product.Name = name
	product.Category = strings.TrimSpace(input.Category)
	product.Description = strings.TrimSpace(input.Description)
	product.Image = strings.TrimSpace(input.Image)
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.IsPromoActive = input.IsPromoActive
	product.PromoText = strings.TrimSpace(input.PromoText)
	product.Stock = input.Stock
	product.PromoPrice = nil
	if input.PromoPrice != nil {
		promo := models.NewMoneyFromDecimal(*input.PromoPrice)
		product.PromoPrice = &promo
	}
	if input.IsVisible != nil {
		product.IsVisible = *input.IsVisible
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *CatalogService) Delete(ownerID, productID uint) error {
	if _, err := s.Get(ownerID, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ownerID, productID)
}

// EffectivePrice 返回生效单价, 促销激活且设置了促销价时取促销价
func EffectivePrice(product *models.Product) models.Money {
	if product == nil {
		return models.NewMoneyFromInt(0)
	}
	if product.IsPromoActive && product.PromoPrice != nil {
		return *product.PromoPrice
	}
	return product.Price
}

// DiscountPercent 返回促销折扣百分比, 四舍五入为整数; 未促销返回 0
func DiscountPercent(product *models.Product) int {
	if product == nil || !product.IsPromoActive || product.PromoPrice == nil {
		return 0
	}
	if product.Price.Decimal.IsZero() {
		return 0
	}
	diff := product.Price.Decimal.Sub(product.PromoPrice.Decimal)
	percent := diff.Div(product.Price.Decimal).Mul(decimal.NewFromInt(100))
	return int(percent.Round(0).IntPart())
}

// AvailableStock 返回可售库存（实际库存减去未过期预占）; 不管理库存时返回 nil
func (s *CatalogService) AvailableStock(product *models.Product, now time.Time) (*int, error) {
	if product == nil || !product.UsesStockManagement() {
		return nil, nil
	}
	reserved, err := s.reservationRepo.ReservedByProduct(product.ID, now)
	if err != nil {
		return nil, err
	}
	available := *product.Stock - reserved
	if available < 0 {
		available = 0
	}
	return &available, nil
}

// IsAvailable 判断商品当前是否有 quantity 件可售; 不管理库存时恒为可售
func (s *CatalogService) IsAvailable(product *models.Product, quantity int, now time.Time) (bool, error) {
	if product == nil || !product.IsVisible {
		return false, nil
	}
	available, err := s.AvailableStock(product, now)
	if err != nil {
		return false, err
	}
	if available == nil {
		return true, nil
	}
	return *available >= quantity, nil
}
