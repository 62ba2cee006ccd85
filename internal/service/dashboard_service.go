package service

import (
	"time"

	"github.com/cashere-pos/internal/constants"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardStats 经营统计结果
type DashboardStats struct {
	TodaySales        models.Money `json:"today_sales"`
	WeeklySales       models.Money `json:"weekly_sales"`
	MonthlySales      models.Money `json:"monthly_sales"`
	TodayTransactions int64        `json:"today_transactions"`
	AvgOrderValue     models.Money `json:"avg_order_value"`
	LowStockProducts  int64        `json:"low_stock_products"`
	ActiveProducts    int64        `json:"active_products"`
	TopPaymentMethod  string       `json:"top_payment_method"`
	TopProductName    string       `json:"top_product_name"`
	TopProductSold    int          `json:"top_product_sold"`
}

// DashboardService 经营统计服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService 创建统计服务
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// Stats 汇总店主经营数据, 时间区间按本地时区对齐到自然日
func (s *DashboardService) Stats(ownerID uint, now time.Time) (*DashboardStats, error) {
	if ownerID == 0 {
		return nil, ErrOwnerRequired
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todaySales, err := s.dashboardRepo.SalesBetween(ownerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	weeklySales, err := s.dashboardRepo.SalesBetween(ownerID, weekStart, dayEnd)
	if err != nil {
		return nil, err
	}
	monthlySales, err := s.dashboardRepo.SalesBetween(ownerID, monthStart, dayEnd)
	if err != nil {
		return nil, err
	}
	todayTransactions, err := s.dashboardRepo.TransactionCountBetween(ownerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.dashboardRepo.LowStockCount(ownerID, constants.DashboardLowStockThreshold)
	if err != nil {
		return nil, err
	}
	activeProducts, err := s.dashboardRepo.ActiveProductCount(ownerID)
	if err != nil {
		return nil, err
	}
	topMethod, err := s.dashboardRepo.TopPaymentMethod(ownerID, monthStart, dayEnd)
	if err != nil {
		return nil, err
	}
	topProduct, topSold, err := s.dashboardRepo.TopProduct(ownerID, monthStart, dayEnd)
	if err != nil {
		return nil, err
	}

	avgOrderValue := decimal.Zero
	if todayTransactions > 0 {
		avgOrderValue = todaySales.Div(decimal.NewFromInt(todayTransactions)).Round(2)
	}

	return &DashboardStats{
		TodaySales:        models.NewMoneyFromDecimal(todaySales),
		WeeklySales:       models.NewMoneyFromDecimal(weeklySales),
		MonthlySales:      models.NewMoneyFromDecimal(monthlySales),
		TodayTransactions: todayTransactions,
		AvgOrderValue:     models.NewMoneyFromDecimal(avgOrderValue),
		LowStockProducts:  lowStock,
		ActiveProducts:    activeProducts,
		TopPaymentMethod:  topMethod,
		TopProductName:    topProduct,
		TopProductSold:    topSold,
	}, nil
}
