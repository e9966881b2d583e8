package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercial-pro/internal/application/auth"
	"github.com/tu-usuario/comercial-pro/internal/application/inventory"
	"github.com/tu-usuario/comercial-pro/internal/application/purchases"
	"github.com/tu-usuario/comercial-pro/internal/application/sales"
	"github.com/tu-usuario/comercial-pro/internal/application/usecase"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	PDFUC       *usecase.PDFUseCase
	SalesSvc    *sales.Service
	PurchaseSvc *purchases.Service
	InvSvc      *inventory.Service
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/buscar", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)

	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Deactivate)

	// Terceros (protegido)
	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/documento/:documento", customerHandler.GetByDocument)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Deactivate)

	suppliers := protected.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Deactivate)

	// Ventas (protegido)
	salesGroup := protected.Group("/ventas")
	saleHandler := NewSaleHandler(deps.SalesSvc, deps.PDFUC)
	salesGroup.Post("/", saleHandler.Register)
	salesGroup.Get("/", saleHandler.ListByState)
	salesGroup.Get("/dia", saleHandler.DaySales)
	salesGroup.Get("/estadisticas", saleHandler.PeriodStats)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.ReceiptPDF)
	salesGroup.Post("/:id/anular", saleHandler.Annul)

	// Compras (protegido)
	purchasesGroup := protected.Group("/compras")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseSvc)
	purchasesGroup.Post("/", purchaseHandler.Register)
	purchasesGroup.Get("/", purchaseHandler.ListByState)
	purchasesGroup.Get("/estadisticas", purchaseHandler.PeriodStats)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Post("/:id/recibir", purchaseHandler.Receive)
	purchasesGroup.Post("/:id/cancelar", purchaseHandler.Cancel)

	// Inventario (protegido; el ajuste manual es de admin o almacenero)
	invGroup := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.InvSvc)
	invGroup.Post("/ajustes", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), inventoryHandler.Adjust)
	invGroup.Get("/movimientos", inventoryHandler.Movements)
	invGroup.Get("/stock-critico", inventoryHandler.LowStock)
	invGroup.Get("/valorizacion", inventoryHandler.Valuation)
	invGroup.Get("/rotacion", inventoryHandler.Rotation)
	invGroup.Get("/sin-movimiento", inventoryHandler.WithoutMovement)
}
