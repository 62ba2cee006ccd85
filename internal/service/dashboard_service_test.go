package service

import (
	"testing"
	"time"

	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/shopspring/decimal"
)

func TestDashboardStatsAggregatesSales(t *testing.T) {
	env := newTestEnv(t)
	dashboard := NewDashboardService(repository.NewDashboardRepository(env.db))
	now := time.Date(2026, 8, 30, 14, 0, 0, 0, time.Local)

	rows := []models.Purchase{
		// 今日两笔, 同一客户编号算一单
		{OwnerID: 1, ProductName: "Nasi Goreng", Price: models.NewMoneyFromInt(100), Quantity: 2,
			TotalPrice: models.NewMoneyFromInt(200), PaymentMethod: "cash", OrderType: "dine_in",
			CustomerID: "BS111111", PurchasedAt: now.Add(-time.Hour)},
		{OwnerID: 1, ProductName: "Es Teh", Price: models.NewMoneyFromInt(50), Quantity: 1,
			TotalPrice: models.NewMoneyFromInt(50), PaymentMethod: "cash", OrderType: "dine_in",
			CustomerID: "BS111111", PurchasedAt: now.Add(-time.Hour)},
		// 本月内但非本日
		{OwnerID: 1, ProductName: "Nasi Goreng", Price: models.NewMoneyFromInt(100), Quantity: 1,
			TotalPrice: models.NewMoneyFromInt(100), PaymentMethod: "cash", OrderType: "takeaway",
			CustomerID: "AA222222", PurchasedAt: now.AddDate(0, 0, -10)},
		// 其他店主, 不计入
		{OwnerID: 2, ProductName: "Kopi", Price: models.NewMoneyFromInt(999), Quantity: 1,
			TotalPrice: models.NewMoneyFromInt(999), PaymentMethod: "cash", OrderType: "dine_in",
			CustomerID: "XX333333", PurchasedAt: now.Add(-time.Hour)},
	}
	for i := range rows {
		if err := env.purchaseRepo.Create(&rows[i]); err != nil {
			t.Fatalf("create purchase failed: %v", err)
		}
	}

	env.createProduct(t, &models.Product{
		OwnerID: 1, Name: "Kerupuk", Price: models.NewMoneyFromInt(3000),
		Stock: intPtr(2), IsVisible: true,
	})

	stats, err := dashboard.Stats(1, now)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if !stats.TodaySales.Decimal.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("today sales = %s, want 250", stats.TodaySales.String())
	}
	if !stats.MonthlySales.Decimal.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("monthly sales = %s, want 350", stats.MonthlySales.String())
	}
	if stats.TodayTransactions != 1 {
		t.Fatalf("today transactions = %d, want 1", stats.TodayTransactions)
	}
	if !stats.AvgOrderValue.Decimal.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("avg order value = %s, want 250", stats.AvgOrderValue.String())
	}
	if stats.LowStockProducts != 1 {
		t.Fatalf("low stock products = %d, want 1", stats.LowStockProducts)
	}
	if stats.ActiveProducts != 1 {
		t.Fatalf("active products = %d, want 1", stats.ActiveProducts)
	}
	if stats.TopPaymentMethod != "cash" {
		t.Fatalf("top payment method = %q, want cash", stats.TopPaymentMethod)
	}
	if stats.TopProductName != "Nasi Goreng" || stats.TopProductSold != 3 {
		t.Fatalf("top product = %q sold %d, want Nasi Goreng sold 3", stats.TopProductName, stats.TopProductSold)
	}
}

func TestDashboardStatsRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	dashboard := NewDashboardService(repository.NewDashboardRepository(env.db))
	if _, err := dashboard.Stats(0, time.Now()); err == nil {
		t.Fatalf("owner id 0 should be rejected")
	}
}
