package provider

import (
	"github.com/mobipos/mobipos/internal/authz"
	"github.com/mobipos/mobipos/internal/cache"
	"github.com/mobipos/mobipos/internal/config"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/models"
	"github.com/mobipos/mobipos/internal/notify"
	"github.com/mobipos/mobipos/internal/queue"
	"github.com/mobipos/mobipos/internal/repository"
	"github.com/mobipos/mobipos/internal/service"
)

// Container wires repositories and services together
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Notifier    notify.Notifier

	// Repositories
	ShopRepo      repository.ShopRepository
	UserRepo      repository.UserRepository
	ProductRepo   repository.ProductRepository
	InventoryRepo repository.InventoryRepository
	CustomerRepo  repository.CustomerRepository
	SupplierRepo  repository.SupplierRepository
	PurchaseRepo  repository.PurchaseRepository
	CartRepo      repository.CartRepository
	SaleRepo      repository.SaleRepository
	PaymentRepo   repository.PaymentRepository
	LoanRepo      repository.LoanRepository
	AuditLogRepo  repository.AuditLogRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	StaffService     *service.StaffService
	ShopResolver     *service.ShopResolver
	ProductService   *service.ProductService
	InventoryService *service.InventoryService
	CustomerService  *service.CustomerService
	SupplierService  *service.SupplierService
	PurchaseService  *service.PurchaseService
	CartService      *service.CartService
	CheckoutService  *service.CheckoutService
	SaleService      *service.SaleService
	PaymentService   *service.PaymentService
	LoanService      *service.LoanService
	DashboardService *service.DashboardService
}

// NewContainer initializes the container
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
		Notifier:    notify.NewLogNotifier(),
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ShopRepo = repository.NewShopRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.SupplierRepo = repository.NewSupplierRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.SaleRepo = repository.NewSaleRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.LoanRepo = repository.NewLoanRepository(db)
	c.AuditLogRepo = repository.NewAuditLogRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.StaffService = service.NewStaffService(c.UserRepo, c.AuthService, c.AuthzService)
	c.ShopResolver = service.NewShopResolver(c.ShopRepo, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.InventoryRepo)
	c.InventoryService = service.NewInventoryService(c.InventoryRepo, c.ProductRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo)
	c.SupplierService = service.NewSupplierService(c.SupplierRepo)
	c.PurchaseService = service.NewPurchaseService(c.PurchaseRepo, c.SupplierRepo, c.ProductRepo, c.InventoryRepo, c.AuditLogRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.InventoryRepo)
	c.CheckoutService = service.NewCheckoutService(
		c.Config,
		c.CartRepo,
		c.ProductRepo,
		c.InventoryRepo,
		c.SaleRepo,
		c.PaymentRepo,
		c.CustomerRepo,
		c.AuditLogRepo,
		c.QueueClient,
	)
	c.SaleService = service.NewSaleService(c.SaleRepo, c.InventoryRepo, c.PaymentRepo, c.AuditLogRepo)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.SaleRepo)
	c.LoanService = service.NewLoanService(c.LoanRepo, c.CustomerRepo, c.SaleRepo, c.AuditLogRepo)
	c.DashboardService = service.NewDashboardService(c.Config, c.DashboardRepo)
}
