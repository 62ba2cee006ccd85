package router

import (
	"fmt"
	"strings"

	"github.com/cashere-pos/internal/cache"
	"github.com/cashere-pos/internal/config"
	panelhandlers "github.com/cashere-pos/internal/http/handlers/panel"
	"github.com/cashere-pos/internal/logger"
	"github.com/cashere-pos/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	panelHandler := panelhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cashere"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（商品图片）
	r.Static("/uploads", "./uploads")

	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), panelHandler.Login)
		}

		// 面板接口（需鉴权）
		panel := apiV1.Group("")
		panel.Use(OwnerJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			panel.GET("/me", panelHandler.Me)

			// 商品管理
			panel.GET("/products", panelHandler.ListProducts)
			panel.GET("/products/:id", panelHandler.GetProduct)
			panel.POST("/products", panelHandler.CreateProduct)
			panel.PUT("/products/:id", panelHandler.UpdateProduct)
			panel.DELETE("/products/:id", panelHandler.DeleteProduct)

			// 收银台
			panel.GET("/shop/products", panelHandler.ListShopProducts)
			panel.GET("/cart", panelHandler.GetCart)
			panel.POST("/cart/items", panelHandler.AddToCart)
			panel.POST("/cart/items/:product_id/increase", panelHandler.IncreaseCartQuantity)
			panel.POST("/cart/items/:product_id/decrease", panelHandler.DecreaseCartQuantity)
			panel.DELETE("/cart/items/:product_id", panelHandler.RemoveCartItem)
			panel.DELETE("/cart", panelHandler.ClearCart)
			panel.POST("/checkout", panelHandler.CompleteCheckout)

			// 销售流水
			panel.GET("/purchases", panelHandler.ListPurchases)
			panel.GET("/purchases/:id", panelHandler.GetPurchase)
			panel.PUT("/purchases/:id", panelHandler.UpdatePurchase)
			panel.DELETE("/purchases/:id", panelHandler.DeletePurchase)
			panel.GET("/purchases/:id/invoice.pdf", panelHandler.DownloadInvoice)
			panel.GET("/invoices/bulk.pdf", panelHandler.DownloadBulkInvoice)
			panel.GET("/invoices/history.pdf", panelHandler.DownloadPurchaseHistory)

			// 仪表盘与偏好
			panel.GET("/dashboard", panelHandler.GetDashboard)
			panel.GET("/preferences", panelHandler.GetPreferences)
			panel.PUT("/preferences", panelHandler.UpdatePreferences)
		}
	}

	return r
}
