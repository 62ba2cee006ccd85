package service

import (
	"testing"
	"time"

	"github.com/cashere-pos/internal/models"

	"github.com/shopspring/decimal"
)

func TestEffectivePriceUsesPromoWhenActive(t *testing.T) {
	promo := models.NewMoneyFromInt(300)
	product := &models.Product{
		Price:         models.NewMoneyFromInt(500),
		PromoPrice:    &promo,
		IsPromoActive: true,
	}

	got := EffectivePrice(product)
	if !got.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("effective price = %s, want 300", got.String())
	}
	if percent := DiscountPercent(product); percent != 40 {
		t.Fatalf("discount percent = %d, want 40", percent)
	}
}

func TestEffectivePriceIgnoresInactivePromo(t *testing.T) {
	promo := models.NewMoneyFromInt(300)
	product := &models.Product{
		Price:         models.NewMoneyFromInt(500),
		PromoPrice:    &promo,
		IsPromoActive: false,
	}

	got := EffectivePrice(product)
	if !got.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("effective price = %s, want 500", got.String())
	}
	if percent := DiscountPercent(product); percent != 0 {
		t.Fatalf("discount percent = %d, want 0", percent)
	}
}

func TestDiscountPercentRoundsToInteger(t *testing.T) {
	promo := models.NewMoneyFromInt(200)
	product := &models.Product{
		Price:         models.NewMoneyFromInt(300),
		PromoPrice:    &promo,
		IsPromoActive: true,
	}

	// (300-200)/300 = 33.33...% 四舍五入到 33
	if percent := DiscountPercent(product); percent != 33 {
		t.Fatalf("discount percent = %d, want 33", percent)
	}
}

func TestAvailableStockSubtractsReservations(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Nasi Goreng",
		Price:     models.NewMoneyFromInt(25000),
		Stock:     intPtr(10),
		IsVisible: true,
	})

	now := time.Now()
	if err := env.reservationRepo.AddQuantity(2, product.ID, 4, now.Add(time.Hour)); err != nil {
		t.Fatalf("add reservation failed: %v", err)
	}

	available, err := env.catalog.AvailableStock(product, now)
	if err != nil {
		t.Fatalf("available stock failed: %v", err)
	}
	if available == nil || *available != 6 {
		t.Fatalf("available stock = %v, want 6", available)
	}
}

func TestAvailableStockNilForUnmanagedProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.createProduct(t, &models.Product{
		OwnerID:   1,
		Name:      "Es Teh",
		Price:     models.NewMoneyFromInt(5000),
		IsVisible: true,
	})

	available, err := env.catalog.AvailableStock(product, time.Now())
	if err != nil {
		t.Fatalf("available stock failed: %v", err)
	}
	if available != nil {
		t.Fatalf("available stock = %v, want nil", available)
	}

	ok, err := env.catalog.IsAvailable(product, 999, time.Now())
	if err != nil {
		t.Fatalf("is available failed: %v", err)
	}
	if !ok {
		t.Fatalf("unmanaged product should always be available")
	}
}

func TestCatalogCRUDScopedToOwner(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.catalog.Create(1, UpsertProductInput{
		Name:     "Kopi Susu",
		Category: "Minuman",
		Price:    decimal.NewFromInt(18000),
		Stock:    intPtr(10),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := env.catalog.Get(2, created.ID); err != ErrProductNotFound {
		t.Fatalf("cross-owner get error = %v, want ErrProductNotFound", err)
	}

	updated, err := env.catalog.Update(1, created.ID, UpsertProductInput{
		Name:     "Kopi Susu Gula Aren",
		Category: "Minuman",
		Price:    decimal.NewFromInt(20000),
		Stock:    intPtr(8),
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Name != "Kopi Susu Gula Aren" {
		t.Fatalf("updated name = %q", updated.Name)
	}
	if !updated.Price.Decimal.Equal(decimal.NewFromInt(20000)) {
		t.Fatalf("updated price = %s, want 20000", updated.Price.String())
	}

	if err := env.catalog.Delete(1, created.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := env.catalog.Get(1, created.ID); err != ErrProductNotFound {
		t.Fatalf("get after delete error = %v, want ErrProductNotFound", err)
	}
}
