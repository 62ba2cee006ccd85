package service

import (
	"fmt"
	"testing"

	"github.com/cashere-pos/internal/config"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db              *gorm.DB
	cfg             *config.Config
	productRepo     repository.ProductRepository
	cartRepo        repository.CartRepository
	reservationRepo repository.ReservationRepository
	purchaseRepo    repository.PurchaseRepository

	catalog  *CatalogService
	cart     *CartService
	purchase *PurchaseService
	checkout *CheckoutService
	invoice  *InvoiceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.StockReservation{},
		&models.Purchase{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Checkout.TaxRate = "0.1"
	cfg.Checkout.PaymentMethods = []string{"cash"}
	cfg.Cart.ReservationExpireMinutes = 30
	cfg.Cart.LowStockThreshold = 5

	env := &testEnv{
		db:              db,
		cfg:             cfg,
		productRepo:     repository.NewProductRepository(db),
		cartRepo:        repository.NewCartRepository(db),
		reservationRepo: repository.NewReservationRepository(db),
		purchaseRepo:    repository.NewPurchaseRepository(db),
	}
	env.catalog = NewCatalogService(env.productRepo, env.reservationRepo)
	env.cart = NewCartService(cfg, env.cartRepo, env.productRepo, env.reservationRepo)
	env.purchase = NewPurchaseService(env.purchaseRepo)
	env.checkout = NewCheckoutService(cfg, env.cartRepo, env.productRepo, env.reservationRepo, env.purchaseRepo, env.purchase)
	env.invoice = NewInvoiceService(cfg, env.checkout)
	return env
}

func intPtr(v int) *int { return &v }

func (e *testEnv) createProduct(t *testing.T, product *models.Product) *models.Product {
	t.Helper()
	if err := e.productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
