package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario/internal/application/auth"
	"github.com/jhoicas/resto-inventario/internal/application/catalog"
	appitem "github.com/jhoicas/resto-inventario/internal/application/item"
	"github.com/jhoicas/resto-inventario/internal/application/ledger"
	"github.com/jhoicas/resto-inventario/internal/application/report"
	apptrx "github.com/jhoicas/resto-inventario/internal/application/transaction"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ItemUC        *appitem.UseCase
	LedgerUC      *ledger.UseCase
	CatalogUC     *catalog.UseCase
	TransactionUC *apptrx.UseCase
	ReportUC      *report.UseCase
	JWTSecret     string
	Logger        *logger.Logger
}

// Router registra las rutas de la API. Las eliminaciones y el registro de
// usuarios llevan RequireRole(ADMIN) además del chequeo del caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	setErrorLogger(deps.Logger)
	adminOnly := RequireRole(entity.RoleAdmin)

	api := app.Group("/api")

	// Auth: login público, el resto requiere Bearer Token
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items + ledger de movimientos
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.LedgerUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.Get)
	items.Patch("/:id", itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Get("/:id/movements", itemHandler.Movements)
	items.Get("/:id/movements/aggregate", itemHandler.Aggregate)
	items.Get("/:id/reconcile", itemHandler.Reconcile)

	// Catálogo: proveedores, unidades, categorías
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Get("/:id", catalogHandler.GetSupplier)
	suppliers.Patch("/:id", catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", adminOnly, catalogHandler.DeleteSupplier)

	units := protected.Group("/units")
	units.Post("/", catalogHandler.CreateUnit)
	units.Get("/", catalogHandler.ListUnits)
	units.Patch("/:id", catalogHandler.UpdateUnit)
	units.Delete("/:id", adminOnly, catalogHandler.DeleteUnit)

	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Patch("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", adminOnly, catalogHandler.DeleteCategory)

	// Transacciones y sus líneas
	trxHandler := NewTransactionHandler(deps.TransactionUC)
	transactions := protected.Group("/transactions")
	transactions.Post("/", trxHandler.Create)
	transactions.Get("/", trxHandler.List)
	transactions.Get("/pending-counts", trxHandler.PendingCounts)
	transactions.Get("/:id", trxHandler.Get)
	transactions.Delete("/:id", adminOnly, trxHandler.Delete)
	transactions.Post("/:id/details", trxHandler.AddDetails)

	details := protected.Group("/details")
	details.Patch("/:detailID", trxHandler.UpdateDetail)
	details.Patch("/:detailID/status", trxHandler.UpdateDetailStatus)
	details.Delete("/:detailID", adminOnly, trxHandler.DeleteDetail)

	// Reportes y dashboard
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/stock", reportHandler.StockReport)
	reports.Get("/stock/export", reportHandler.ExportStockReport)
	reports.Get("/low-stock", reportHandler.LowStock)
	protected.Get("/dashboard", reportHandler.Dashboard)
}
