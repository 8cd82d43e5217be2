package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-compras/internal/application/inventory"
	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
	"github.com/jhoicas/inventario-compras/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticleUC     *usecase.ArticleUseCase
	SupplierUC    *usecase.SupplierUseCase
	LinkUC        *usecase.LinkUseCase
	SaleUC        *usecase.SaleUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Resolver      *inventory.LinkResolver
	Composer      *purchasing.Composer
	Lifecycle     *purchasing.LifecycleController
	PDF           *purchasing.PDFUseCase // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Articles
	articles := api.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC, deps.Resolver)
	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", articleHandler.Update)
	articles.Delete("/:id", articleHandler.Delete)
	articles.Put("/:id/default-supplier", articleHandler.SetDefaultSupplier)
	articles.Get("/:id/suppliers", articleHandler.SupplierOptions)
	articles.Get("/:id/replenishment", inventoryHandler.Suggestion)

	// Inventory
	invGroup := api.Group("/inventory")
	invGroup.Get("/to-replenish", inventoryHandler.ToReplenish)
	invGroup.Get("/missing", inventoryHandler.Missing)

	// Suppliers y vínculos
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.LinkUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
	suppliers.Get("/:id/links", supplierHandler.ListLinks)

	links := api.Group("/links")
	links.Post("/", supplierHandler.CreateLink)
	links.Put("/:id", supplierHandler.UpdateLink)

	// Purchase order drafts
	drafts := api.Group("/purchase-order-drafts")
	draftHandler := NewDraftHandler(deps.Composer)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Discard)
	drafts.Put("/:id/lines/:articleId", draftHandler.AddArticle)
	drafts.Patch("/:id/lines/:articleId", draftHandler.SetQuantity)
	drafts.Delete("/:id/lines/:articleId", draftHandler.RemoveArticle)
	drafts.Post("/:id/submit", draftHandler.Submit)

	// Purchase orders
	orders := api.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.Lifecycle, deps.PDF)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Modify)
	orders.Post("/:id/confirm", orderHandler.Confirm)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/finalize", orderHandler.Finalize)
	orders.Get("/:id/suppliers", orderHandler.SupplierOptions)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Sales
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
}
