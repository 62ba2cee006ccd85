package panel

import (
	"time"

	"github.com/cashere-pos/internal/cache"
	"github.com/cashere-pos/internal/http/response"
	"github.com/cashere-pos/internal/i18n"
	"github.com/cashere-pos/internal/logger"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/service"

	"github.com/gin-gonic/gin"
)

// ShopProductView 收银台商品视图
type ShopProductView struct {
	ID              uint         `json:"id"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	Description     string       `json:"description,omitempty"`
	Image           string       `json:"image,omitempty"`
	Price           models.Money `json:"price"`
	EffectivePrice  models.Money `json:"effective_price"`
	DiscountPercent int          `json:"discount_percent"`
	PromoText       string       `json:"promo_text,omitempty"`
	AvailableStock  *int         `json:"available_stock,omitempty"`
	IsSoldOut       bool         `json:"is_sold_out"`
	LowStock        bool         `json:"low_stock"`
}

// ShopCategoryGroup 按分类分组的商品
type ShopCategoryGroup struct {
	Category string            `json:"category"`
	Products []ShopProductView `json:"products"`
}

// AddToCartRequest 加入购物车请求
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// ListShopProducts 收银台商品列表, 按分类分组
func (h *Handler) ListShopProducts(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	products, err := h.CatalogService.ListShop(ownerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	now := time.Now()
	threshold := h.Config.Cart.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}
	groups := make([]ShopCategoryGroup, 0)
	for i := range products {
		product := &products[i]
		available, err := h.CatalogService.AvailableStock(product, now)
		if err != nil {
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
			return
		}
		view := ShopProductView{
			ID:              product.ID,
			Name:            product.Name,
			Category:        product.Category,
			Description:     product.Description,
			Image:           product.Image,
			Price:           product.Price,
			EffectivePrice:  service.EffectivePrice(product),
			DiscountPercent: service.DiscountPercent(product),
			PromoText:       product.PromoText,
			AvailableStock:  available,
			IsSoldOut:       available != nil && *available <= 0,
			LowStock:        available != nil && *available > 0 && *available <= threshold,
		}
		if len(groups) == 0 || groups[len(groups)-1].Category != product.Category {
			groups = append(groups, ShopCategoryGroup{Category: product.Category, Products: make([]ShopProductView, 0, 4)})
		}
		groups[len(groups)-1].Products = append(groups[len(groups)-1].Products, view)
	}
	response.Success(c, gin.H{"categories": groups})
}

// GetCart 获取购物车视图
// 读取为纯查询, 数量修正与失效商品仅体现在响应的提示中
func (h *Handler) GetCart(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	view, err := h.CartService.List(ownerID)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}

	locale := i18n.ResolveLocale(c)
	notices := make([]string, 0, 2)
	if len(view.Adjustments) > 0 {
		notices = append(notices, i18n.T(locale, "notify.cart_adjusted"))
	}
	if len(view.Pruned) > 0 {
		notices = append(notices, i18n.T(locale, "notify.cart_pruned"))
	}

	pref, err := cache.GetDisplayPreference(c.Request.Context(), ownerID)
	if err != nil {
		pref = cache.DefaultDisplayPreference()
	}

	taxRate := h.CheckoutService.TaxRate()
	tax := view.Subtotal.Decimal.Mul(taxRate).Round(2)
	total := view.Subtotal.Decimal.Add(tax)
	response.Success(c, gin.H{
		"lines":       view.Lines,
		"adjustments": view.Adjustments,
		"pruned":      view.Pruned,
		"notices":     notices,
		"subtotal":    view.Subtotal,
		"tax":         models.NewMoneyFromDecimal(tax),
		"total":       models.NewMoneyFromDecimal(total),
		"preferences": pref,
	})
}

// scheduleReservationSweep 在预占到期后补一次清理任务, 兜底 worker 定时循环
func (h *Handler) scheduleReservationSweep() {
	if h.QueueClient == nil || !h.QueueClient.Enabled() {
		return
	}
	minutes := h.Config.Cart.ReservationExpireMinutes
	if minutes <= 0 {
		minutes = 30
	}
	delay := time.Duration(minutes)*time.Minute + time.Minute
	if err := h.QueueClient.EnqueueReservationSweepIn(delay); err != nil {
		logger.Warnw("cart_schedule_reservation_sweep_failed", "error", err)
	}
}

func (h *Handler) respondCartMutation(c *gin.Context, result *service.CartMutationResult, messageKey string) {
	locale := i18n.ResolveLocale(c)
	notices := []string{i18n.T(locale, messageKey)}
	if result.Product != nil && result.Product.IsPromoActive && result.Product.PromoText != "" {
		notices = append(notices, result.Product.PromoText)
	}
	if result.LowStock && result.RemainingStock != nil {
		notices = append(notices, i18n.Sprintf(locale, "notify.stock_remaining", *result.RemainingStock))
	}
	response.SuccessWithMsg(c, notices[0], gin.H{
		"item":            result.Item,
		"remaining_stock": result.RemainingStock,
		"notices":         notices,
	})
}

// AddToCart 加入购物车
func (h *Handler) AddToCart(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.CartService.AddToCart(ownerID, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	h.scheduleReservationSweep()
	messageKey := "notify.added_to_cart"
	if !result.Created {
		messageKey = "notify.quantity_added"
	}
	h.respondCartMutation(c, result, messageKey)
}

// IncreaseCartQuantity 购物车数量加一
func (h *Handler) IncreaseCartQuantity(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	result, err := h.CartService.IncreaseQuantity(ownerID, productID)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	h.scheduleReservationSweep()
	h.respondCartMutation(c, result, "notify.quantity_added")
}

// DecreaseCartQuantity 购物车数量减一, 数量为一时保持不变
func (h *Handler) DecreaseCartQuantity(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	result, err := h.CartService.DecreaseQuantity(ownerID, productID)
	if err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, gin.H{"item": result.Item})
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.CartService.RemoveFromCart(ownerID, productID); err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, nil)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	if err := h.CartService.ClearCart(ownerID); err != nil {
		respondWithMappedError(c, err, cartCommonErrorRules, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, nil)
}
