package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/restocker/internal/application/analytics"
	"github.com/jhoicas/restocker/internal/application/auth"
	appinv "github.com/jhoicas/restocker/internal/application/inventory"
	"github.com/jhoicas/restocker/internal/application/usecase"
	"github.com/jhoicas/restocker/internal/domain/inventory"
	infrapdf "github.com/jhoicas/restocker/internal/infrastructure/pdf"
	"github.com/jhoicas/restocker/internal/infrastructure/restapi"
	httpRouter "github.com/jhoicas/restocker/internal/interfaces/http"
	"github.com/jhoicas/restocker/pkg/config"
	"github.com/jhoicas/restocker/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.APIBaseURL).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	backend := restapi.NewClient(cfg.Backend, log)

	aggregator := inventory.NewAggregator(inventory.Thresholds{
		LowStock:         cfg.Stock.LowStockThreshold,
		BatchLowQty:      cfg.Stock.BatchLowQtyThreshold,
		ExpiringSoonDays: cfg.Stock.ExpiringSoonDays,
	}, time.Now)

	authUC := auth.NewAuthUseCase(backend, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	productUC := usecase.NewProductUseCase(backend)
	stockUC := appinv.NewStockUseCase(backend, aggregator, log)
	instockUC := appanalytics.NewInStockUseCase(backend, aggregator, log)
	dashboardUC := appanalytics.NewDashboardUseCase(backend, aggregator)
	chatUC := usecase.NewChatUseCase(backend, cfg.Chat.Timeout())

	// PDF: reporte del stock agregado
	reportUC := appanalytics.NewReportUseCase(instockUC, infrapdf.NewStockReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Restocker Dashboard API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger.json no encontrado; /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		StockUC:     stockUC,
		InStockUC:   instockUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		ChatUC:      chatUC,
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
