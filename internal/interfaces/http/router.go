package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/restocker/internal/application/analytics"
	"github.com/jhoicas/restocker/internal/application/auth"
	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/inventory"
	"github.com/jhoicas/restocker/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *inventory.StockUseCase
	InStockUC   *appanalytics.InStockUseCase
	ReportUC    *appanalytics.ReportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ChatUC      *usecase.ChatUseCase
	JWTSecret   string
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/signup", authHandler.Signup)

	// Rutas protegidas (requieren Bearer Token de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/verify", authHandler.Verify)
	protected.Post("/auth/logout", authHandler.Logout)

	// Products y lotes
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:productId/stock", inventoryHandler.ProductStock)
	products.Post("/:productId/stock", inventoryHandler.AddStock)
	products.Post("/:productId/stock/use", inventoryHandler.UseStock)

	// En stock: listado, gráficos y reporte
	analyticsHandler := NewAnalyticsHandler(deps.InStockUC, deps.ReportUC)
	instock := protected.Group("/instock")
	instock.Get("/", analyticsHandler.InStock)
	instock.Get("/chart", analyticsHandler.StockChart)
	instock.Get("/report.pdf", analyticsHandler.Report)
	instock.Get("/:productId/chart", analyticsHandler.ProductChart)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/overview", dashboardHandler.Overview)

	// Chat
	chatHandler := NewChatHandler(deps.ChatUC)
	protected.Post("/chat", chatHandler.Send)
}
