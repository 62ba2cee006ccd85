package provider

import (
	"github.com/cashere-pos/internal/cache"
	"github.com/cashere-pos/internal/config"
	"github.com/cashere-pos/internal/logger"
	"github.com/cashere-pos/internal/models"
	"github.com/cashere-pos/internal/queue"
	"github.com/cashere-pos/internal/repository"
	"github.com/cashere-pos/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	ProductRepo     repository.ProductRepository
	CartRepo        repository.CartRepository
	ReservationRepo repository.ReservationRepository
	PurchaseRepo    repository.PurchaseRepository
	DashboardRepo   repository.DashboardRepository

	// Services
	AuthService      *service.AuthService
	CatalogService   *service.CatalogService
	CartService      *service.CartService
	PurchaseService  *service.PurchaseService
	CheckoutService  *service.CheckoutService
	InvoiceService   *service.InvoiceService
	DashboardService *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.ReservationRepo = repository.NewReservationRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config
	c.AuthService = service.NewAuthService(cfg, c.UserRepo)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.ReservationRepo)
	c.CartService = service.NewCartService(cfg, c.CartRepo, c.ProductRepo, c.ReservationRepo)
	c.PurchaseService = service.NewPurchaseService(c.PurchaseRepo)
	c.CheckoutService = service.NewCheckoutService(cfg, c.CartRepo, c.ProductRepo, c.ReservationRepo, c.PurchaseRepo, c.PurchaseService)
	c.InvoiceService = service.NewInvoiceService(cfg, c.CheckoutService)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}
