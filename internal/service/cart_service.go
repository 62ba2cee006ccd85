package service

import (
	"time"

	"github.com/cashere-pos/internal/config"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartLine 购物车行（用于响应）
type CartLine struct {
	ProductID       uint            `json:"product_id"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       models.Money    `json:"unit_price"`
	OriginalPrice   models.Money    `json:"original_price"`
	DiscountPercent int             `json:"discount_percent"`
	PromoText       string          `json:"promo_text,omitempty"`
	LineTotal       models.Money    `json:"line_total"`
	AvailableStock  *int            `json:"available_stock,omitempty"`
	LowStock        bool            `json:"low_stock"`
	Product         *models.Product `json:"product"`
}

// CartAdjustment 购物车数量修正说明
type CartAdjustment struct {
	ProductID    uint   `json:"product_id"`
	Name         string `json:"name"`
	FromQuantity int    `json:"from_quantity"`
	ToQuantity   int    `json:"to_quantity"`
}

// CartView 购物车读取结果, 读取本身不修改任何数据
type CartView struct {
	Lines       []CartLine       `json:"lines"`
	Adjustments []CartAdjustment `json:"adjustments"`
	Pruned      []string         `json:"pruned"`
	Subtotal    models.Money     `json:"subtotal"`
}

// CartMutationResult 购物车变更结果
type CartMutationResult struct {
	Item           *models.CartItem `json:"item"`
	Product        *models.Product  `json:"product"`
	Created        bool             `json:"created"`
	RemainingStock *int             `json:"remaining_stock,omitempty"`
	LowStock       bool             `json:"low_stock"`
}

// CartService 购物车服务, 管理购物车项与对应的库存预占
type CartService struct {
	cfg             *config.Config
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	reservationRepo repository.ReservationRepository
}

// NewCartService 创建购物车服务
func NewCartService(cfg *config.Config, cartRepo repository.CartRepository, productRepo repository.ProductRepository, reservationRepo repository.ReservationRepository) *CartService {
	return &CartService{
		cfg:             cfg,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		reservationRepo: reservationRepo,
	}
}

func (s *CartService) reservationExpiry(now time.Time) time.Time {
	minutes := 30
	if s.cfg != nil && s.cfg.Cart.ReservationExpireMinutes > 0 {
		minutes = s.cfg.Cart.ReservationExpireMinutes
	}
	return now.Add(time.Duration(minutes) * time.Minute)
}

func (s *CartService) lowStockThreshold() int {
	if s.cfg != nil && s.cfg.Cart.LowStockThreshold > 0 {
		return s.cfg.Cart.LowStockThreshold
	}
	return 5
}

// AddToCart 将商品加入购物车; 已存在时数量加一
// 可售库存为实际库存减去所有未过期预占, 加入成功会同步追加本店主的预占
func (s *CartService) AddToCart(ownerID, productID uint) (*CartMutationResult, error) {
	if ownerID == 0 || productID == 0 {
		return nil, ErrProductInvalid
	}
	product, err := s.productRepo.GetVisibleOwned(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotAvailable
	}

	now := time.Now()
	existing, err := s.cartRepo.GetByOwnerAndProduct(ownerID, productID)
	if err != nil {
		return nil, err
	}

	var available *int
	if product.UsesStockManagement() {
		reserved, err := s.reservationRepo.ReservedByProduct(productID, now)
		if err != nil {
			return nil, err
		}
		remaining := *product.Stock - reserved
		if remaining < 1 {
			if existing != nil {
				return nil, ErrStockLimited
			}
			return nil, ErrOutOfStock
		}
		available = &remaining
	}

	result := &CartMutationResult{Product: product, Created: existing == nil}
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		reservationRepo := s.reservationRepo.WithTx(tx)

		if existing == nil {
			position, err := cartRepo.NextPosition(ownerID)
			if err != nil {
				return err
			}
			item := &models.CartItem{
				OwnerID:   ownerID,
				ProductID: productID,
				Quantity:  1,
				Position:  position,
			}
			if err := cartRepo.Create(item); err != nil {
				return err
			}
			result.Item = item
		} else {
			existing.Quantity++
			if err := cartRepo.UpdateQuantity(ownerID, productID, existing.Quantity); err != nil {
				return err
			}
			result.Item = existing
		}

		if product.UsesStockManagement() {
			return reservationRepo.AddQuantity(ownerID, productID, 1, s.reservationExpiry(now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if available != nil {
		remaining := *available - 1
		result.RemainingStock = &remaining
		result.LowStock = remaining > 0 && remaining <= s.lowStockThreshold()
	}
	return result, nil
}

// IncreaseQuantity 购物车项数量加一
func (s *CartService) IncreaseQuantity(ownerID, productID uint) (*CartMutationResult, error) {
	existing, err := s.cartRepo.GetByOwnerAndProduct(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCartItemNotFound
	}
	return s.AddToCart(ownerID, productID)
}

// DecreaseQuantity 购物车项数量减一, 数量为一时不做任何修改
func (s *CartService) DecreaseQuantity(ownerID, productID uint) (*CartMutationResult, error) {
	if ownerID == 0 || productID == 0 {
		return nil, ErrProductInvalid
	}
	existing, err := s.cartRepo.GetByOwnerAndProduct(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCartItemNotFound
	}
	product, err := s.productRepo.GetOwned(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if existing.Quantity <= 1 {
		return &CartMutationResult{Item: existing, Product: product}, nil
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		reservationRepo := s.reservationRepo.WithTx(tx)

		existing.Quantity--
		if err := cartRepo.UpdateQuantity(ownerID, productID, existing.Quantity); err != nil {
			return err
		}
		if product != nil && product.UsesStockManagement() {
			return reservationRepo.ReleaseQuantity(ownerID, productID, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CartMutationResult{Item: existing, Product: product}, nil
}

// RemoveFromCart 移除购物车项并释放全部预占
func (s *CartService) RemoveFromCart(ownerID, productID uint) error {
	if ownerID == 0 || productID == 0 {
		return ErrProductInvalid
	}
	existing, err := s.cartRepo.GetByOwnerAndProduct(ownerID, productID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		reservationRepo := s.reservationRepo.WithTx(tx)
		if err := cartRepo.DeleteByOwnerAndProduct(ownerID, productID); err != nil {
			return err
		}
		return reservationRepo.DeleteByOwnerAndProduct(ownerID, productID)
	})
}

// ClearCart 清空购物车并释放店主的全部预占
func (s *CartService) ClearCart(ownerID uint) error {
	if ownerID == 0 {
		return ErrOwnerRequired
	}
	return s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		reservationRepo := s.reservationRepo.WithTx(tx)
		if err := cartRepo.ClearByOwner(ownerID); err != nil {
			return err
		}
		return reservationRepo.DeleteByOwner(ownerID)
	})
}

// List 读取购物车视图
// 读取是纯查询: 下架商品以 Pruned 列出, 超出可售库存的数量以 Adjustments
// 标注并在视图中按修正后的数量计价, 均不回写数据库
func (s *CartService) List(ownerID uint) (*CartView, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	items, err := s.cartRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	view := &CartView{
		Lines:       make([]CartLine, 0, len(items)),
		Adjustments: make([]CartAdjustment, 0),
		Pruned:      make([]string, 0),
		Subtotal:    models.NewMoneyFromInt(0),
	}
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 || !product.IsVisible {
			name := ""
			if product != nil {
				name = product.Name
			}
			view.Pruned = append(view.Pruned, name)
			continue
		}

		quantity := item.Quantity
		var availableStock *int
		if product.UsesStockManagement() {
			totalReserved, err := s.reservationRepo.ReservedByProduct(product.ID, now)
			if err != nil {
				return nil, err
			}
			ownReserved := 0
			reservation, err := s.reservationRepo.GetByOwnerAndProduct(ownerID, product.ID)
			if err != nil {
				return nil, err
			}
			if reservation != nil && reservation.ExpiresAt.After(now) {
				ownReserved = reservation.Quantity
			}
			// 本店主可占的上限 = 实际库存 - 他人预占
			availableForEntry := *product.Stock - totalReserved + ownReserved
			if quantity > availableForEntry {
				clamped := availableForEntry
				if clamped < 1 {
					clamped = 1
				}
				if clamped != quantity {
					view.Adjustments = append(view.Adjustments, CartAdjustment{
						ProductID:    product.ID,
						Name:         product.Name,
						FromQuantity: quantity,
						ToQuantity:   clamped,
					})
					quantity = clamped
				}
			}
			remaining := *product.Stock - totalReserved
			if remaining < 0 {
				remaining = 0
			}
			availableStock = &remaining
		}

		unitPrice := EffectivePrice(product)
		lineTotal := models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
		view.Lines = append(view.Lines, CartLine{
			ProductID:       product.ID,
			Name:            product.Name,
			Quantity:        quantity,
			UnitPrice:       unitPrice,
			OriginalPrice:   product.Price,
			DiscountPercent: DiscountPercent(product),
			PromoText:       product.PromoText,
			LineTotal:       lineTotal,
			AvailableStock:  availableStock,
			LowStock:        availableStock != nil && *availableStock > 0 && *availableStock <= s.lowStockThreshold(),
			Product:         product,
		})
		view.Subtotal = models.NewMoneyFromDecimal(view.Subtotal.Decimal.Add(lineTotal.Decimal))
	}
	return view, nil
}

// SweepExpiredReservations 清理过期的库存预占
func (s *CartService) SweepExpiredReservations(now time.Time) (int64, error) {
	return s.reservationRepo.DeleteExpired(now)
}
