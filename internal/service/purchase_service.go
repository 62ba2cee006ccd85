package service

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/cashere-pos/internal/constants"
	"github.com/cashere-pos/internal/logger"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// PurchaseService 销售流水服务
type PurchaseService struct {
	purchaseRepo repository.PurchaseRepository
}

// NewPurchaseService 创建销售流水服务
func NewPurchaseService(purchaseRepo repository.PurchaseRepository) *PurchaseService {
	return &PurchaseService{purchaseRepo: purchaseRepo}
}

// UpdatePurchaseInput 手工修改流水输入
type UpdatePurchaseInput struct {
	ProductName   string
	Price         *decimal.Decimal
	Quantity      *int
	PaymentMethod string
	OrderType     string
	CustomerName  string
}

// List 分页查询店主的销售流水
func (s *PurchaseService) List(ownerID uint, filter repository.PurchaseListFilter) ([]models.Purchase, int64, error) {
	if ownerID == 0 {
		return nil, 0, ErrOwnerRequired
	}
	return s.purchaseRepo.ListByOwner(ownerID, filter)
}

// Get 获取店主的单条流水
func (s *PurchaseService) Get(ownerID, purchaseID uint) (*models.Purchase, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	purchase, err := s.purchaseRepo.GetOwned(ownerID, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return purchase, nil
}

// ListByIDs 按 ID 集合查询店主的流水
func (s *PurchaseService) ListByIDs(ownerID uint, ids []uint) ([]models.Purchase, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	if len(ids) == 0 {
		return nil, ErrNoPurchasesSelected
	}
	return s.purchaseRepo.ListOwnedByIDs(ownerID, ids)
}

// ListAll 查询店主的全部流水, 用于整单导出
func (s *PurchaseService) ListAll(ownerID uint) ([]models.Purchase, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}
	return s.purchaseRepo.ListAllByOwner(ownerID)
}

// Update 手工修正流水记录, 单价或数量变化时同步重算行总价
func (s *PurchaseService) Update(ownerID, purchaseID uint, input UpdatePurchaseInput) (*models.Purchase, error) {
	purchase, err := s.Get(ownerID, purchaseID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.ProductName); name != "" {
		purchase.ProductName = name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrProductInvalid
		}
		purchase.Price = models.NewMoneyFromDecimal(*input.Price)
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, ErrQuantityInvalid
		}
		purchase.Quantity = *input.Quantity
	}
	if method := strings.ToLower(strings.TrimSpace(input.PaymentMethod)); method != "" {
		purchase.PaymentMethod = method
	}
	if orderType := strings.ToLower(strings.TrimSpace(input.OrderType)); orderType != "" {
		if orderType != constants.OrderTypeDineIn && orderType != constants.OrderTypeTakeaway {
			return nil, ErrOrderTypeInvalid
		}
		purchase.OrderType = orderType
	}
	if customerName := strings.TrimSpace(input.CustomerName); customerName != "" {
		purchase.CustomerName = customerName
	}
	purchase.TotalPrice = models.NewMoneyFromDecimal(
		purchase.Price.Decimal.Mul(decimal.NewFromInt(int64(purchase.Quantity))),
	)
	if err := s.purchaseRepo.Update(purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

// Delete 删除店主的流水记录
func (s *PurchaseService) Delete(ownerID, purchaseID uint) error {
	if _, err := s.Get(ownerID, purchaseID); err != nil {
		return err
	}
	return s.purchaseRepo.Delete(ownerID, purchaseID)
}

// GenerateCustomerID 生成顾客编号: 姓名首字母前缀加随机后缀
// 多次碰撞后直接使用最后一个候选, 不阻塞结账
func (s *PurchaseService) GenerateCustomerID(customerName string) (string, error) {
	prefix := customerInitials(customerName)
	if prefix == "" {
		prefix = constants.CustomerIDFallbackPrefix
	}

	var candidate string
	for attempt := 0; attempt < constants.CustomerIDMaxGenAttempts; attempt++ {
		suffix, err := randomAlphanumeric(constants.CustomerIDSuffixLength)
		if err != nil {
			return "", err
		}
		candidate = prefix + suffix
		count, err := s.purchaseRepo.CountByCustomerID(candidate)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	logger.Warnw("purchase_customer_id_collision_budget_exhausted", "customer_id", candidate)
	return candidate, nil
}

// customerInitials 取两个字符: 姓名首字符加首个空格后的字符,
// 无空格时取姓名的第二个字符, 统一为大写
func customerInitials(name string) string {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return ""
	}
	initials := []rune{runes[0]}
	for i, r := range runes {
		if r == ' ' {
			if i+1 < len(runes) {
				initials = append(initials, runes[i+1])
			}
			return strings.ToUpper(string(initials))
		}
	}
	if len(runes) > 1 {
		initials = append(initials, runes[1])
	}
	return strings.ToUpper(string(initials))
}

func randomAlphanumeric(length int) (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var builder strings.Builder
	builder.Grow(length)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(alphabet[n.Int64()])
	}
	return builder.String(), nil
}
