package main

import (
	"github.com/cashere-pos/internal/config"
	"github.com/cashere-pos/internal/logger"
	"github.com/cashere-pos/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func intPtr(v int) *int { return &v }

func moneyPtr(value int64) *models.Money {
	m := models.NewMoneyFromInt(value)
	return &m
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示店主
	ownerEmail := "demo@cashere.local"
	var owner models.User
	if err := models.DB.Where("email = ?", ownerEmail).First(&owner).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte("cashere123"), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		owner = models.User{
			Email:        ownerEmail,
			PasswordHash: string(hash),
			DisplayName:  "Warung Demo",
			Locale:       "id-ID",
		}
		if err := models.DB.Create(&owner).Error; err != nil {
			stdLog.Fatalf("Failed to create demo owner: %v", err)
		}
		stdLog.Printf("Created demo owner: %s", ownerEmail)
	} else {
		stdLog.Printf("Demo owner already exists: %s", ownerEmail)
	}

	// 添加演示商品
	products := []models.Product{
		{
			OwnerID:     owner.ID,
			Name:        "Nasi Goreng Spesial",
			Category:    "Makanan",
			Description: "Nasi goreng dengan telur dan ayam",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(25000)),
			Stock:       intPtr(30),
			IsVisible:   true,
		},
		{
			OwnerID:       owner.ID,
			Name:          "Mie Ayam Bakso",
			Category:      "Makanan",
			Description:   "Mie ayam dengan bakso sapi",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromInt(20000)),
			PromoPrice:    moneyPtr(15000),
			IsPromoActive: true,
			PromoText:     "Promo makan siang",
			Stock:         intPtr(20),
			IsVisible:     true,
		},
		{
			OwnerID:   owner.ID,
			Name:      "Es Teh Manis",
			Category:  "Minuman",
			Price:     models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			IsVisible: true,
		},
		{
			OwnerID:   owner.ID,
			Name:      "Kopi Susu Gula Aren",
			Category:  "Minuman",
			Price:     models.NewMoneyFromDecimal(decimal.NewFromInt(18000)),
			Stock:     intPtr(15),
			IsVisible: true,
		},
		{
			OwnerID:   owner.ID,
			Name:      "Kerupuk Udang",
			Category:  "Camilan",
			Price:     models.NewMoneyFromDecimal(decimal.NewFromInt(3000)),
			Stock:     intPtr(4),
			IsVisible: true,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("owner_id = ? AND name = ?", owner.ID, product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	stdLog.Printf("Seed finished")
}
