package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/shopspring/decimal"
)

func (e *testEnv) createPurchase(t *testing.T, purchase *models.Purchase) *models.Purchase {
	t.Helper()
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = time.Now()
	}
	if err := e.purchaseRepo.Create(purchase); err != nil {
		t.Fatalf("create purchase failed: %v", err)
	}
	return purchase
}

func TestGenerateCustomerIDUsesNameInitials(t *testing.T) {
	env := newTestEnv(t)
	cases := []struct {
		name   string
		prefix string
	}{
		{"Budi Santoso", "BS"},
		{"John Ronald Reuel", "JR"},
		{"Madonna", "MA"},
	}
	for _, tc := range cases {
		id, err := env.purchase.GenerateCustomerID(tc.name)
		if err != nil {
			t.Fatalf("generate %q failed: %v", tc.name, err)
		}
		pattern := regexp.MustCompile(`^` + tc.prefix + `[A-Z0-9]{6}$`)
		if !pattern.MatchString(id) {
			t.Fatalf("customer id for %q = %q, want prefix %s plus 6 alphanumerics", tc.name, id, tc.prefix)
		}
	}
}

func TestGenerateCustomerIDFallbackPrefix(t *testing.T) {
	env := newTestEnv(t)
	for _, name := range []string{"", "   "} {
		id, err := env.purchase.GenerateCustomerID(name)
		if err != nil {
			t.Fatalf("generate %q failed: %v", name, err)
		}
		if matched := regexp.MustCompile(`^CUST[A-Z0-9]{6}$`).MatchString(id); !matched {
			t.Fatalf("customer id for %q = %q, want CUST prefix", name, id)
		}
	}
}

func TestPurchaseUpdateRecomputesTotalPrice(t *testing.T) {
	env := newTestEnv(t)
	purchase := env.createPurchase(t, &models.Purchase{
		OwnerID:       1,
		ProductName:   "Nasi Goreng",
		Price:         models.NewMoneyFromInt(100),
		Quantity:      1,
		TotalPrice:    models.NewMoneyFromInt(100),
		PaymentMethod: "cash",
		OrderType:     "dine_in",
		CustomerID:    "BSABC123",
	})

	price := decimal.NewFromInt(120)
	qty := 3
	updated, err := env.purchase.Update(1, purchase.ID, UpdatePurchaseInput{
		Price:    &price,
		Quantity: &qty,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.TotalPrice.Decimal.Equal(decimal.NewFromInt(360)) {
		t.Fatalf("total price = %s, want 360", updated.TotalPrice.String())
	}
}

func TestPurchaseUpdateRejectsInvalidValues(t *testing.T) {
	env := newTestEnv(t)
	purchase := env.createPurchase(t, &models.Purchase{
		OwnerID:       1,
		ProductName:   "Kopi",
		Price:         models.NewMoneyFromInt(18000),
		Quantity:      1,
		TotalPrice:    models.NewMoneyFromInt(18000),
		PaymentMethod: "cash",
		OrderType:     "dine_in",
		CustomerID:    "KO000001",
	})

	negative := decimal.NewFromInt(-5)
	if _, err := env.purchase.Update(1, purchase.ID, UpdatePurchaseInput{Price: &negative}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("negative price error = %v, want ErrProductInvalid", err)
	}
	zero := 0
	if _, err := env.purchase.Update(1, purchase.ID, UpdatePurchaseInput{Quantity: &zero}); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("zero quantity error = %v, want ErrQuantityInvalid", err)
	}
	if _, err := env.purchase.Update(1, purchase.ID, UpdatePurchaseInput{OrderType: "delivery"}); !errors.Is(err, ErrOrderTypeInvalid) {
		t.Fatalf("order type error = %v, want ErrOrderTypeInvalid", err)
	}
}

func TestPurchaseGetScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	purchase := env.createPurchase(t, &models.Purchase{
		OwnerID:       1,
		ProductName:   "Soto",
		Price:         models.NewMoneyFromInt(17000),
		Quantity:      1,
		TotalPrice:    models.NewMoneyFromInt(17000),
		PaymentMethod: "cash",
		OrderType:     "takeaway",
		CustomerID:    "SOXYZ789",
	})

	if _, err := env.purchase.Get(2, purchase.ID); !errors.Is(err, ErrPurchaseNotFound) {
		t.Fatalf("cross-owner get error = %v, want ErrPurchaseNotFound", err)
	}
	got, err := env.purchase.Get(1, purchase.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ProductName != "Soto" {
		t.Fatalf("product name = %q, want Soto", got.ProductName)
	}
}

func TestPurchaseListByIDsRequiresSelection(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.purchase.ListByIDs(1, nil); !errors.Is(err, ErrNoPurchasesSelected) {
		t.Fatalf("empty selection error = %v, want ErrNoPurchasesSelected", err)
	}
}

func TestPurchaseListFiltersByPaymentMethod(t *testing.T) {
	env := newTestEnv(t)
	env.createPurchase(t, &models.Purchase{
		OwnerID: 1, ProductName: "A", Price: models.NewMoneyFromInt(10), Quantity: 1,
		TotalPrice: models.NewMoneyFromInt(10), PaymentMethod: "cash", OrderType: "dine_in", CustomerID: "AA111111",
	})
	env.createPurchase(t, &models.Purchase{
		OwnerID: 1, ProductName: "B", Price: models.NewMoneyFromInt(20), Quantity: 1,
		TotalPrice: models.NewMoneyFromInt(20), PaymentMethod: "qris", OrderType: "dine_in", CustomerID: "BB222222",
	})

	rows, total, err := env.purchase.List(1, repository.PurchaseListFilter{
		PaymentMethod: "cash",
		Page:          1,
		PageSize:      20,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ProductName != "A" {
		t.Fatalf("filtered list = %d rows (total %d), want single cash row", len(rows), total)
	}
}
