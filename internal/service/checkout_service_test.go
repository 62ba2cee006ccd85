package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cashere-pos/internal/models"

	"github.com/shopspring/decimal"
)

func TestCompleteCheckoutWritesPurchasesAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	nasi := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Nasi Goreng",
		Price:     models.NewMoneyFromInt(100),
		Stock:     intPtr(10),
		IsVisible: true,
	})
	teh := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Es Teh",
		Price:     models.NewMoneyFromInt(50),
		Stock:     intPtr(10),
		IsVisible: true,
	})

	for i := 0; i < 2; i++ {
		if _, err := env.cart.AddToCart(1, nasi.ID); err != nil {
			t.Fatalf("add nasi failed: %v", err)
		}
	}
	if _, err := env.cart.AddToCart(1, teh.ID); err != nil {
		t.Fatalf("add teh failed: %v", err)
	}

	result, err := env.checkout.CompleteCheckout(1, CheckoutInput{
		PaymentMethod: "cash",
		OrderType:     "dine_in",
		CustomerName:  "Budi Santoso",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if len(result.Purchases) != 2 {
		t.Fatalf("purchases = %d, want 2", len(result.Purchases))
	}
	if !result.Subtotal.Decimal.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("subtotal = %s, want 250", result.Subtotal.String())
	}
	if !result.Tax.Decimal.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("tax = %s, want 25", result.Tax.String())
	}
	if !result.Total.Decimal.Equal(decimal.NewFromInt(275)) {
		t.Fatalf("total = %s, want 275", result.Total.String())
	}
	if result.CustomerID == "" || !strings.HasPrefix(result.CustomerID, "BS") {
		t.Fatalf("customer id = %q, want BS prefix", result.CustomerID)
	}

	// 购物车与预占清空
	items, err := env.cartRepo.ListByOwner(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart items after checkout = %d, want 0", len(items))
	}
	reserved, err := env.reservationRepo.ReservedByProduct(nasi.ID, time.Now())
	if err != nil {
		t.Fatalf("reserved failed: %v", err)
	}
	if reserved != 0 {
		t.Fatalf("reserved after checkout = %d, want 0", reserved)
	}

	// 库存扣减
	refreshed, err := env.productRepo.GetOwned(1, nasi.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if refreshed.Stock == nil || *refreshed.Stock != 8 {
		t.Fatalf("stock after checkout = %v, want 8", refreshed.Stock)
	}
}

func TestCompleteCheckoutRejectsUnsupportedPaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Kopi",
		Price:     models.NewMoneyFromInt(18000),
		Stock:     intPtr(5),
		IsVisible: true,
	})
	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, err := env.checkout.CompleteCheckout(1, CheckoutInput{PaymentMethod: "card"})
	if !errors.Is(err, ErrPaymentMethodUnsupported) {
		t.Fatalf("checkout error = %v, want ErrPaymentMethodUnsupported", err)
	}

	var count int64
	if err := env.db.Model(&models.Purchase{}).Count(&count).Error; err != nil {
		t.Fatalf("count purchases failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("purchases = %d, want 0 after rejected checkout", count)
	}
}

func TestCompleteCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.checkout.CompleteCheckout(1, CheckoutInput{PaymentMethod: "cash"})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("checkout error = %v, want ErrCartEmpty", err)
	}
}

func TestCompleteCheckoutUsesPromoPrice(t *testing.T) {
	env := newTestEnv(t)
	promo := models.NewMoneyFromInt(150)
	product := env.createProduct(t, &models.Product{
		OwnerID:       1,
		Name:          "Mie Ayam",
		Price:         models.NewMoneyFromInt(200),
		PromoPrice:    &promo,
		IsPromoActive: true,
		Stock:         intPtr(5),
		IsVisible:     true,
	})
	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	result, err := env.checkout.CompleteCheckout(1, CheckoutInput{PaymentMethod: "cash"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !result.Purchases[0].Price.Decimal.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("purchase price = %s, want promo price 150", result.Purchases[0].Price.String())
	}
	if !result.Purchases[0].IsPromo {
		t.Fatalf("purchase should be flagged as promo")
	}
}

func TestCompleteCheckoutClampsQuantityToStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Bakso",
		Price:     models.NewMoneyFromInt(100),
		Stock:     intPtr(10),
		IsVisible: true,
	})
	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 制造购物车数量超出库存的状态
	if err := env.db.Model(&models.CartItem{}).
		Where("owner_id = ? AND product_id = ?", 1, product.ID).
		Update("quantity", 10).Error; err != nil {
		t.Fatalf("bump cart quantity failed: %v", err)
	}
	if err := env.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("stock", 4).Error; err != nil {
		t.Fatalf("shrink stock failed: %v", err)
	}

	result, err := env.checkout.CompleteCheckout(1, CheckoutInput{PaymentMethod: "cash"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if len(result.Purchases) != 1 {
		t.Fatalf("purchases = %d, want 1", len(result.Purchases))
	}
	if result.Purchases[0].Quantity != 4 {
		t.Fatalf("sold quantity = %d, want clamped to 4", result.Purchases[0].Quantity)
	}
	if !result.Subtotal.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("subtotal = %s, want 400", result.Subtotal.String())
	}

	refreshed, err := env.productRepo.GetOwned(1, product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if refreshed.Stock == nil || *refreshed.Stock != 0 {
		t.Fatalf("stock after checkout = %v, want 0", refreshed.Stock)
	}
}

func TestCompleteCheckoutRejectsExhaustedStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Sate",
		Price:     models.NewMoneyFromInt(30000),
		Stock:     intPtr(3),
		IsVisible: true,
	})
	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := env.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Update("stock", 0).Error; err != nil {
		t.Fatalf("drain stock failed: %v", err)
	}

	_, err := env.checkout.CompleteCheckout(1, CheckoutInput{PaymentMethod: "cash"})
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("checkout error = %v, want ErrOutOfStock", err)
	}

	var count int64
	if err := env.db.Model(&models.Purchase{}).Count(&count).Error; err != nil {
		t.Fatalf("count purchases failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("purchases = %d, want 0 after rolled back checkout", count)
	}
}

func TestAddToCartAfterCheckout(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Gado Gado",
		Price:     models.NewMoneyFromInt(22000),
		Stock:     intPtr(10),
		IsVisible: true,
	})
	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := env.checkout.CompleteCheckout(1, CheckoutInput{PaymentMethod: "cash"}); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	result, err := env.cart.AddToCart(1, product.ID)
	if err != nil {
		t.Fatalf("re-add after checkout failed: %v", err)
	}
	if !result.Created || result.Item.Quantity != 1 {
		t.Fatalf("re-added item = %+v, want fresh entry with quantity 1", result.Item)
	}
}

func TestCompleteCheckoutRejectsInvalidOrderType(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Soto",
		Price:     models.NewMoneyFromInt(17000),
		IsVisible: true,
	})
	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	_, err := env.checkout.CompleteCheckout(1, CheckoutInput{PaymentMethod: "cash", OrderType: "delivery"})
	if !errors.Is(err, ErrOrderTypeInvalid) {
		t.Fatalf("checkout error = %v, want ErrOrderTypeInvalid", err)
	}
}
