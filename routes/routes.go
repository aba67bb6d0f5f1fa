package routes

import (
	"time"

	"laundrypos/configs"
	"laundrypos/controllers"
	"laundrypos/entity"
	"laundrypos/middlewares"
	"laundrypos/notify"
	"laundrypos/repository"
	"laundrypos/services"
	"laundrypos/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services is everything the HTTP layer and the background jobs share.
type Services struct {
	Auth      *services.AuthService
	Audit     *services.AuditService
	Catalog   *services.CatalogLoader
	Checkout  *services.CheckoutService
	Orders    *services.OrderService
	Pricing   *services.PricingService
	Inventory *services.InventoryService
	Workers   *services.WorkerService
	Dashboard *services.DashboardService
}

func NewServices(db *gorm.DB, cfg *configs.Config, loc *time.Location, events notify.Publisher) *Services {
	pricingRepo := repository.NewPricingRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	workerRepo := repository.NewWorkerRepository(db)

	audit := services.NewAuditService(repository.NewAuditRepository(db))
	catalog := services.NewCatalogLoader(pricingRepo, productRepo)

	return &Services{
		Auth:      services.NewAuthService(workerRepo, audit, cfg.JWTSecret, cfg.JWTTTL),
		Audit:     audit,
		Catalog:   catalog,
		Checkout:  services.NewCheckoutService(catalog, orderRepo, productRepo, audit, events, cfg.HighValueThreshold),
		Orders:    services.NewOrderService(db, orderRepo, audit, events),
		Pricing:   services.NewPricingService(pricingRepo, audit),
		Inventory: services.NewInventoryService(productRepo, audit, events),
		Workers:   services.NewWorkerService(workerRepo, audit),
		Dashboard: services.NewDashboardService(orderRepo, productRepo, cfg.LowStockThreshold, loc),
	}
}

func RegisterRoutes(r *gin.Engine, s *Services, feed *ws.OrderFeed, secret string, loc *time.Location) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Controllers
	authCtrl := controllers.NewAuthController(s.Auth)
	checkoutCtrl := controllers.NewCheckoutController(s.Checkout, s.Catalog)
	orderCtrl := controllers.NewOrderController(s.Orders, loc)
	pricingCtrl := controllers.NewPricingController(s.Pricing)
	invCtrl := controllers.NewInventoryController(s.Inventory)
	adminCtrl := controllers.NewAdminController(s.Workers, s.Audit, loc)
	dashCtrl := controllers.NewDashboardController(s.Dashboard)

	admin := entity.RoleAdmin
	cashier := entity.RoleCashier
	inventory := entity.RoleInventory

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(secret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/password", authCtrl.ChangePassword)
		aAuth.POST("/logout", authCtrl.Logout)
	}

	// Catalog (cashier screen)
	cat := r.Group("/catalog", middlewares.AuthMiddleware(secret, cashier, admin))
	{
		cat.GET("/services", checkoutCtrl.Services)
		cat.GET("/laundry-types", checkoutCtrl.LaundryTypes)
		cat.GET("/products", checkoutCtrl.Products)
	}

	// Checkout (cashier)
	co := r.Group("/checkout", middlewares.AuthMiddleware(secret, cashier, admin))
	{
		co.GET("/draft", checkoutCtrl.Draft)
		co.DELETE("/draft", checkoutCtrl.Clear)
		co.PUT("/draft/weights/:typeId", checkoutCtrl.SetWeight)
		co.POST("/draft/services/:serviceId", checkoutCtrl.SelectService)
		co.DELETE("/draft/services/:serviceId", checkoutCtrl.DeselectService)
		co.POST("/draft/products", checkoutCtrl.AddProduct)
		co.DELETE("/draft/products/:entryId", checkoutCtrl.RemoveProduct)
		co.DELETE("/draft/items/:itemId", checkoutCtrl.RemoveItem)
		co.POST("/submit", checkoutCtrl.Submit)
	}

	// Order log (cashier/admin)
	orders := r.Group("/orders", middlewares.AuthMiddleware(secret, cashier, admin))
	{
		orders.GET("", orderCtrl.List)
		orders.GET("/export", orderCtrl.Export)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id/complete", orderCtrl.Complete)
		orders.PATCH("/:id/cancel", orderCtrl.Cancel)
	}

	// Inventory
	inv := r.Group("/inventory", middlewares.AuthMiddleware(secret, inventory, admin))
	{
		inv.GET("/categories", invCtrl.Categories)
		inv.GET("/items", invCtrl.ListItems)
		inv.POST("/items", invCtrl.CreateItem)
		inv.PATCH("/items/:id", invCtrl.UpdateItem)
		inv.GET("/items/:id/entries", invCtrl.ListEntries)
		inv.POST("/entries", invCtrl.AddEntry)
	}

	// Admin (admin only)
	adm := r.Group("/admin", middlewares.AuthMiddleware(secret, admin))
	{
		adm.GET("/services", pricingCtrl.ListServices)
		adm.POST("/services", pricingCtrl.CreateService)
		adm.PATCH("/services/:id", pricingCtrl.UpdateService)
		adm.DELETE("/services/:id", pricingCtrl.DeleteService)

		adm.GET("/laundry-types", pricingCtrl.ListLaundryTypes)
		adm.POST("/laundry-types", pricingCtrl.CreateLaundryType)
		adm.PATCH("/laundry-types/:id", pricingCtrl.UpdateLaundryType)
		adm.DELETE("/laundry-types/:id", pricingCtrl.DeleteLaundryType)

		adm.GET("/workers", adminCtrl.ListWorkers)
		adm.POST("/workers", adminCtrl.CreateWorker)
		adm.PATCH("/workers/:id", adminCtrl.UpdateWorker)
		adm.PATCH("/workers/:id/status", adminCtrl.SetStatus)
		adm.PUT("/workers/:id/roles", adminCtrl.ReplaceRoles)
		adm.POST("/workers/:id/reset-password", adminCtrl.ResetPassword)
		adm.GET("/roles", adminCtrl.ListRoles)

		adm.GET("/audit-logs", adminCtrl.AuditLogs)
		adm.GET("/audit-logs/actions", adminCtrl.AuditActions)
	}

	// Dashboard (admin only)
	dash := r.Group("/dashboard", middlewares.AuthMiddleware(secret, admin))
	{
		dash.GET("/summary", dashCtrl.Summary)
		dash.GET("/recent-sales", dashCtrl.RecentSales)
		dash.GET("/payment-methods", dashCtrl.PaymentMethods)
		dash.GET("/status-breakdown", dashCtrl.StatusBreakdown)
		dash.GET("/low-stock", dashCtrl.LowStock)
		dash.GET("/expiring", dashCtrl.Expiring)
		dash.GET("/daily-sales", dashCtrl.DailySales)
	}

	// Order event feed
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(secret), feed.HandleWebSocket)
}
