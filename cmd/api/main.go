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
	"github.com/tu-usuario/comercial-pro/internal/application/auth"
	"github.com/tu-usuario/comercial-pro/internal/application/inventory"
	"github.com/tu-usuario/comercial-pro/internal/application/purchases"
	"github.com/tu-usuario/comercial-pro/internal/application/sales"
	"github.com/tu-usuario/comercial-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/comercial-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/comercial-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/comercial-pro/internal/interfaces/http"
	"github.com/tu-usuario/comercial-pro/pkg/config"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, log)
	customerUC := usecase.NewCustomerUseCase(customerRepo, log)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, log)

	salesSvc := sales.NewService(txRunner, saleRepo, productRepo, customerRepo, log)
	purchaseSvc := purchases.NewService(txRunner, purchaseRepo, productRepo, supplierRepo, log)
	invSvc := inventory.NewService(txRunner, productRepo, movementRepo, log)

	// PDF: representación imprimible del comprobante de venta
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	pdfUC := usecase.NewPDFUseCase(saleRepo, customerRepo, productRepo, receiptGenerator, log)

	authUC := auth.NewUseCase(userRepo, auth.Config{
		JWTSecret:  cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		PDFUC:       pdfUC,
		SalesSvc:    salesSvc,
		PurchaseSvc: purchaseSvc,
		InvSvc:      invSvc,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
