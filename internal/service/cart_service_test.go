package service

import (
	"errors"
	"testing"
	"time"

	"github.com/cashere-pos/internal/models"
)

func TestAddToCartReservesStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Nasi Goreng",
		Price:     models.NewMoneyFromInt(25000),
		Stock:     intPtr(3),
		IsVisible: true,
	})

	result, err := env.cart.AddToCart(1, product.ID)
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if !result.Created {
		t.Fatalf("first add should create the cart item")
	}
	if result.Item.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", result.Item.Quantity)
	}
	if result.RemainingStock == nil || *result.RemainingStock != 2 {
		t.Fatalf("remaining stock = %v, want 2", result.RemainingStock)
	}
	if !result.LowStock {
		t.Fatalf("remaining 2 of threshold 5 should flag low stock")
	}

	reserved, err := env.reservationRepo.ReservedByProduct(product.ID, time.Now())
	if err != nil {
		t.Fatalf("reserved by product failed: %v", err)
	}
	if reserved != 1 {
		t.Fatalf("reserved = %d, want 1", reserved)
	}
}

func TestAddToCartStockLimited(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Kerupuk",
		Price:     models.NewMoneyFromInt(3000),
		Stock:     intPtr(1),
		IsVisible: true,
	})

	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	// 可售库存已被购物车预占耗尽
	if _, err := env.cart.AddToCart(1, product.ID); !errors.Is(err, ErrStockLimited) {
		t.Fatalf("second add error = %v, want ErrStockLimited", err)
	}

	item, err := env.cartRepo.GetByOwnerAndProduct(1, product.ID)
	if err != nil {
		t.Fatalf("get cart item failed: %v", err)
	}
	if item == nil || item.Quantity != 1 {
		t.Fatalf("cart quantity = %v, want 1", item)
	}
}

func TestAddToCartOutOfStockForNewEntry(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Sate Ayam",
		Price:     models.NewMoneyFromInt(30000),
		Stock:     intPtr(0),
		IsVisible: true,
	})

	if _, err := env.cart.AddToCart(1, product.ID); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("add error = %v, want ErrOutOfStock", err)
	}
}

func TestDecreaseQuantityFloorsAtOne(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Es Teh",
		Price:     models.NewMoneyFromInt(5000),
		Stock:     intPtr(10),
		IsVisible: true,
	})

	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	result, err := env.cart.DecreaseQuantity(1, product.ID)
	if err != nil {
		t.Fatalf("decrease failed: %v", err)
	}
	if result.Item.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1 (floor)", result.Item.Quantity)
	}

	reserved, err := env.reservationRepo.ReservedByProduct(product.ID, time.Now())
	if err != nil {
		t.Fatalf("reserved by product failed: %v", err)
	}
	if reserved != 1 {
		t.Fatalf("reserved = %d, want 1 (decrease at floor keeps reservation)", reserved)
	}
}

func TestRemoveFromCartReleasesReservation(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Mie Ayam",
		Price:     models.NewMoneyFromInt(20000),
		Stock:     intPtr(5),
		IsVisible: true,
	})

	for i := 0; i < 3; i++ {
		if _, err := env.cart.AddToCart(1, product.ID); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}

	now := time.Now()
	reserved, err := env.reservationRepo.ReservedByProduct(product.ID, now)
	if err != nil {
		t.Fatalf("reserved by product failed: %v", err)
	}
	if reserved != 3 {
		t.Fatalf("reserved = %d, want 3", reserved)
	}

	if err := env.cart.RemoveFromCart(1, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	available, err := env.catalog.AvailableStock(product, now)
	if err != nil {
		t.Fatalf("available stock failed: %v", err)
	}
	if available == nil || *available != 5 {
		t.Fatalf("available after remove = %v, want 5", available)
	}
}

func TestCartListClampsToAvailableStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Ayam Geprek",
		Price:     models.NewMoneyFromInt(22000),
		Stock:     intPtr(4),
		IsVisible: true,
	})

	// 库存被调低前购物车已有 10 份
	if err := env.cartRepo.Create(&models.CartItem{OwnerID: 1, ProductID: product.ID, Quantity: 10, Position: 1}); err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	if err := env.reservationRepo.AddQuantity(1, product.ID, 10, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("add reservation failed: %v", err)
	}

	view, err := env.cart.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(view.Lines))
	}
	if view.Lines[0].Quantity != 4 {
		t.Fatalf("clamped quantity = %d, want 4", view.Lines[0].Quantity)
	}
	if len(view.Adjustments) != 1 {
		t.Fatalf("adjustments = %d, want 1", len(view.Adjustments))
	}
	if view.Adjustments[0].FromQuantity != 10 || view.Adjustments[0].ToQuantity != 4 {
		t.Fatalf("adjustment = %+v, want 10 -> 4", view.Adjustments[0])
	}

	// 读取是纯查询, 数据库中的数量保持不变
	item, err := env.cartRepo.GetByOwnerAndProduct(1, product.ID)
	if err != nil {
		t.Fatalf("get cart item failed: %v", err)
	}
	if item.Quantity != 10 {
		t.Fatalf("stored quantity = %d, want 10 (read must not mutate)", item.Quantity)
	}
}

func TestCartListPrunesHiddenProducts(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Bakso",
		Price:     models.NewMoneyFromInt(15000),
		IsVisible: true,
	})

	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := env.db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_visible", false).Error; err != nil {
		t.Fatalf("hide product failed: %v", err)
	}

	view, err := env.cart.List(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("lines = %d, want 0", len(view.Lines))
	}
	if len(view.Pruned) != 1 || view.Pruned[0] != "Bakso" {
		t.Fatalf("pruned = %v, want [Bakso]", view.Pruned)
	}
}

func TestSweepExpiredReservationsFreesStock(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Soto",
		Price:     models.NewMoneyFromInt(17000),
		Stock:     intPtr(5),
		IsVisible: true,
	})

	now := time.Now()
	if err := env.reservationRepo.AddQuantity(1, product.ID, 2, now.Add(-time.Minute)); err != nil {
		t.Fatalf("add expired reservation failed: %v", err)
	}
	if err := env.reservationRepo.AddQuantity(2, product.ID, 1, now.Add(time.Hour)); err != nil {
		t.Fatalf("add active reservation failed: %v", err)
	}

	removed, err := env.cart.SweepExpiredReservations(now)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	reserved, err := env.reservationRepo.ReservedByProduct(product.ID, now)
	if err != nil {
		t.Fatalf("reserved by product failed: %v", err)
	}
	if reserved != 1 {
		t.Fatalf("reserved = %d, want 1", reserved)
	}
}

func TestAddToCartAfterRemove(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Nasi Goreng",
		Price:     models.NewMoneyFromInt(25000),
		Stock:     intPtr(10),
		IsVisible: true,
	})

	if _, err := env.cart.AddToCart(1, product.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := env.cart.RemoveFromCart(1, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	result, err := env.cart.AddToCart(1, product.ID)
	if err != nil {
		t.Fatalf("re-add after remove failed: %v", err)
	}
	if !result.Created || result.Item.Quantity != 1 {
		t.Fatalf("re-added item = %+v, want fresh entry with quantity 1", result.Item)
	}
}
