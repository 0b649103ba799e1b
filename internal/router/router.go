package router

import (
	"fmt"

	"github.com/mobipos/mobipos/internal/cache"
	"github.com/mobipos/mobipos/internal/config"
	"github.com/mobipos/mobipos/internal/http/handlers/admin"
	"github.com/mobipos/mobipos/internal/http/handlers/pos"
	"github.com/mobipos/mobipos/internal/http/response"
	"github.com/mobipos/mobipos/internal/logger"
	"github.com/mobipos/mobipos/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires the HTTP surface
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	gin.SetMode(resolveGinMode(cfg.Server.Mode))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	posHandler := pos.New(c)
	adminHandler := admin.New(c)

	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", cfg.Redis.Prefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login",
			RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")),
			posHandler.Login,
		)

		authed := api.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		authed.Use(ShopContextMiddleware(c.ShopResolver))
		authed.Use(RBACMiddleware(c.AuthzService))
		{
			authed.GET("/auth/me", posHandler.Me)
			authed.PUT("/auth/password", posHandler.ChangePassword)

			posGroup := authed.Group("/pos")
			{
				posGroup.GET("/cart", posHandler.GetCart)
				posGroup.POST("/cart/items", posHandler.UpsertCartItem)
				posGroup.DELETE("/cart/items/:product_id", posHandler.DeleteCartItem)
				posGroup.DELETE("/cart", posHandler.ClearCart)

				posGroup.POST("/checkout", posHandler.Checkout)

				posGroup.GET("/sales", posHandler.ListSales)
				posGroup.GET("/sales/:id", posHandler.GetSale)
				posGroup.POST("/sales/:id/payments", posHandler.RecordSalePayment)
				posGroup.PATCH("/sales/:id/status", posHandler.UpdateSaleStatus)
				posGroup.DELETE("/sales/:id", posHandler.DeleteSale)

				posGroup.GET("/dashboard", posHandler.Dashboard)
			}

			adminGroup := authed.Group("/admin")
			{
				adminGroup.GET("/products", adminHandler.ListProducts)
				adminGroup.POST("/products", adminHandler.CreateProduct)
				adminGroup.GET("/products/:id", adminHandler.GetProduct)
				adminGroup.PUT("/products/:id", adminHandler.UpdateProduct)
				adminGroup.DELETE("/products/:id", adminHandler.DeleteProduct)

				adminGroup.GET("/inventory", adminHandler.ListInventory)
				adminGroup.POST("/inventory/units", adminHandler.AddInventoryUnits)
				adminGroup.PATCH("/inventory/units/:id/status", adminHandler.ChangeUnitStatus)
				adminGroup.GET("/inventory/stock/:product_id", adminHandler.GetStockCount)

				adminGroup.GET("/purchases", adminHandler.ListPurchases)
				adminGroup.POST("/purchases", adminHandler.CreatePurchase)
				adminGroup.GET("/purchases/:id", adminHandler.GetPurchase)
				adminGroup.POST("/purchases/:id/cancel", adminHandler.CancelPurchase)

				adminGroup.GET("/customers", adminHandler.ListCustomers)
				adminGroup.POST("/customers", adminHandler.CreateCustomer)
				adminGroup.GET("/customers/:id", adminHandler.GetCustomer)
				adminGroup.PUT("/customers/:id", adminHandler.UpdateCustomer)
				adminGroup.DELETE("/customers/:id", adminHandler.DeleteCustomer)

				adminGroup.GET("/suppliers", adminHandler.ListSuppliers)
				adminGroup.POST("/suppliers", adminHandler.CreateSupplier)
				adminGroup.GET("/suppliers/:id", adminHandler.GetSupplier)
				adminGroup.PUT("/suppliers/:id", adminHandler.UpdateSupplier)
				adminGroup.DELETE("/suppliers/:id", adminHandler.DeleteSupplier)

				adminGroup.GET("/loans", adminHandler.ListLoans)
				adminGroup.POST("/loans", adminHandler.CreateLoan)
				adminGroup.GET("/loans/:id", adminHandler.GetLoan)
				adminGroup.POST("/loans/:id/installments/:installment_id/payments", adminHandler.RecordInstallmentPayment)
				adminGroup.POST("/loans/:id/default", adminHandler.MarkLoanDefaulted)

				adminGroup.GET("/payments", adminHandler.ListPayments)
				adminGroup.GET("/reports/payments", adminHandler.PaymentReport)
				adminGroup.GET("/dashboard", adminHandler.DashboardOverview)

				adminGroup.GET("/audit-logs", adminHandler.ListAuditLogs)

				adminGroup.GET("/workers", adminHandler.ListWorkers)
				adminGroup.POST("/workers", adminHandler.CreateWorker)
				adminGroup.PATCH("/workers/:id/active", adminHandler.SetWorkerActive)
			}
		}
	}

	return r
}

func resolveGinMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
