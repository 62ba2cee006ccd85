package service

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/cashere-pos/internal/models"
)

func testInvoicePurchases() []models.Purchase {
	now := time.Date(2026, 8, 30, 12, 30, 0, 0, time.Local)
	return []models.Purchase{
		{
			OwnerID:       1,
			ProductName:   "Nasi Goreng",
			Price:         models.NewMoneyFromInt(25000),
			Quantity:      2,
			TotalPrice:    models.NewMoneyFromInt(50000),
			PaymentMethod: "cash",
			OrderType:     "dine_in",
			CustomerID:    "BSABC123",
			CustomerName:  "Budi Santoso",
			PurchasedAt:   now,
		},
		{
			OwnerID:       1,
			ProductName:   "Es Teh",
			Price:         models.NewMoneyFromInt(5000),
			Quantity:      1,
			TotalPrice:    models.NewMoneyFromInt(5000),
			PaymentMethod: "cash",
			OrderType:     "dine_in",
			CustomerID:    "BSABC123",
			CustomerName:  "Budi Santoso",
			PurchasedAt:   now,
		},
	}
}

func testOwner() *models.User {
	return &models.User{DisplayName: "Warung Tester"}
}

func assertPDF(t *testing.T, data []byte) {
	t.Helper()
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF, got %q", data[:min(len(data), 8)])
	}
}

func TestRenderInvoiceProducesPDF(t *testing.T) {
	env := newTestEnv(t)
	purchases := testInvoicePurchases()
	data, err := env.invoice.RenderInvoice(testOwner(), &purchases[0])
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	assertPDF(t, data)
}

func TestRenderInvoiceNilPurchase(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.invoice.RenderInvoice(testOwner(), nil); !errors.Is(err, ErrPurchaseNotFound) {
		t.Fatalf("error = %v, want ErrPurchaseNotFound", err)
	}
}

func TestRenderBulkInvoice(t *testing.T) {
	env := newTestEnv(t)
	data, err := env.invoice.RenderBulkInvoice(testOwner(), testInvoicePurchases())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	assertPDF(t, data)
}

func TestRenderBulkInvoiceRequiresSelection(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.invoice.RenderBulkInvoice(testOwner(), nil); !errors.Is(err, ErrNoPurchasesSelected) {
		t.Fatalf("error = %v, want ErrNoPurchasesSelected", err)
	}
}

func TestRenderPurchaseHistoryProducesPDF(t *testing.T) {
	env := newTestEnv(t)
	data, err := env.invoice.RenderPurchaseHistory(testOwner(), testInvoicePurchases())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	assertPDF(t, data)
}
