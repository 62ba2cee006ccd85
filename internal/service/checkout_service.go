package service

import (
	"strings"
	"time"

	"github.com/cashere-pos/internal/config"
	"github.com/cashere-pos/internal/constants"
	"github.com/cashere-pos/internal/logger"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 结账输入
type CheckoutInput struct {
	PaymentMethod string
	OrderType     string
	CustomerName  string
}

// CheckoutResult 结账结果
type CheckoutResult struct {
	Purchases     []models.Purchase `json:"purchases"`
	CustomerID    string            `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod string            `json:"payment_method"`
	OrderType     string            `json:"order_type"`
	Subtotal      models.Money      `json:"subtotal"`
	Tax           models.Money      `json:"tax"`
	Total         models.Money      `json:"total"`
	PurchasedAt   time.Time         `json:"purchased_at"`
}

// CheckoutService 结账服务
type CheckoutService struct {
	cfg             *config.Config
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	reservationRepo repository.ReservationRepository
	purchaseRepo    repository.PurchaseRepository
	purchaseService *PurchaseService
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(cfg *config.Config, cartRepo repository.CartRepository, productRepo repository.ProductRepository, reservationRepo repository.ReservationRepository, purchaseRepo repository.PurchaseRepository, purchaseService *PurchaseService) *CheckoutService {
	return &CheckoutService{
		cfg:             cfg,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		reservationRepo: reservationRepo,
		purchaseRepo:    purchaseRepo,
		purchaseService: purchaseService,
	}
}

// TaxRate 返回配置的税率, 非法配置按零处理
func (s *CheckoutService) TaxRate() decimal.Decimal {
	if s.cfg == nil {
		return decimal.Zero
	}
	raw := strings.TrimSpace(s.cfg.Checkout.TaxRate)
	if raw == "" {
		return decimal.Zero
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		logger.Warnw("checkout_tax_rate_invalid", "tax_rate", raw)
		return decimal.Zero
	}
	return rate
}

func (s *CheckoutService) paymentMethodSupported(method string) bool {
	methods := []string{constants.PaymentMethodCash}
	if s.cfg != nil && len(s.cfg.Checkout.PaymentMethods) > 0 {
		methods = s.cfg.Checkout.PaymentMethods
	}
	for _, m := range methods {
		if strings.EqualFold(strings.TrimSpace(m), method) {
			return true
		}
	}
	return false
}

// GetCartItems 读取结账用的购物车项, 仅按店主归属过滤
func (s *CheckoutService) GetCartItems(ownerID uint) ([]models.CartItem, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	items, err := s.cartRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	owned := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || item.Product.ID == 0 || item.Product.OwnerID != ownerID {
			continue
		}
		owned = append(owned, item)
	}
	return owned, nil
}

// CompleteCheckout 完成结账
// 在单个事务内写入销售流水、扣减库存、释放预占并清空购物车,
// 任何一步失败则整体回滚
func (s *CheckoutService) CompleteCheckout(ownerID uint, input CheckoutInput) (*CheckoutResult, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}

	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method == "" {
		method = constants.PaymentMethodCash
	}
	if !s.paymentMethodSupported(method) {
		return nil, ErrPaymentMethodUnsupported
	}

	orderType := strings.ToLower(strings.TrimSpace(input.OrderType))
	if orderType == "" {
		orderType = constants.OrderTypeDineIn
	}
	if orderType != constants.OrderTypeDineIn && orderType != constants.OrderTypeTakeaway {
		return nil, ErrOrderTypeInvalid
	}

	items, err := s.GetCartItems(ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	customerName := strings.TrimSpace(input.CustomerName)
	customerID, err := s.purchaseService.GenerateCustomerID(customerName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	taxRate := s.TaxRate()
	subtotal := decimal.Zero
	var purchases []models.Purchase

	err = s.purchaseRepo.Transaction(func(tx *gorm.DB) error {
		purchaseRepo := s.purchaseRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		reservationRepo := s.reservationRepo.WithTx(tx)

		subtotal = decimal.Zero
		purchases = make([]models.Purchase, 0, len(items))
		for _, item := range items {
			product := item.Product
			quantity := item.Quantity

			// 购物车读取时的修正只是提示, 成交数量必须在事务内
			// 按权威库存重新校验, 超出可售库存时收敛到可售量
			if product.UsesStockManagement() {
				fresh, err := productRepo.GetOwned(ownerID, item.ProductID)
				if err != nil {
					return err
				}
				if fresh == nil {
					return ErrProductNotAvailable
				}
				if fresh.UsesStockManagement() {
					totalReserved, err := reservationRepo.ReservedByProduct(item.ProductID, now)
					if err != nil {
						return err
					}
					ownReserved := 0
					reservation, err := reservationRepo.GetByOwnerAndProduct(ownerID, item.ProductID)
					if err != nil {
						return err
					}
					if reservation != nil && reservation.ExpiresAt.After(now) {
						ownReserved = reservation.Quantity
					}
					available := *fresh.Stock - totalReserved + ownReserved
					if available < 1 {
						return ErrOutOfStock
					}
					if quantity > available {
						quantity = available
					}
				}
			}

			unitPrice := EffectivePrice(product)
			lineTotal := unitPrice.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
			subtotal = subtotal.Add(lineTotal)
			purchase := models.Purchase{
				OwnerID:       ownerID,
				ProductName:   product.Name,
				Price:         unitPrice,
				Quantity:      quantity,
				TotalPrice:    models.NewMoneyFromDecimal(lineTotal),
				IsPromo:       product.IsPromoActive && product.PromoPrice != nil,
				PaymentMethod: method,
				OrderType:     orderType,
				CustomerName:  customerName,
				CustomerID:    customerID,
				PurchasedAt:   now,
			}
			if err := purchaseRepo.Create(&purchase); err != nil {
				return err
			}
			purchases = append(purchases, purchase)

			if product.UsesStockManagement() {
				if _, err := productRepo.ConsumeStock(item.ProductID, quantity); err != nil {
					return err
				}
			}
		}

		if err := cartRepo.ClearByOwner(ownerID); err != nil {
			return err
		}
		return reservationRepo.DeleteByOwner(ownerID)
	})
	if err != nil {
		return nil, err
	}

	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax)
	return &CheckoutResult{
		Purchases:     purchases,
		CustomerID:    customerID,
		CustomerName:  customerName,
		PaymentMethod: method,
		OrderType:     orderType,
		Subtotal:      models.NewMoneyFromDecimal(subtotal),
		Tax:           models.NewMoneyFromDecimal(tax),
		Total:         models.NewMoneyFromDecimal(total),
		PurchasedAt:   now,
	}, nil
}
