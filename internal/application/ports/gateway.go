package ports

import (
	"context"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// Puertos de salida hacia el servidor de inventario. El servidor es la fuente de verdad;
// cualquier adaptador (REST, fake de pruebas) debe devolver entidades ya normalizadas.
// Las fallas de transporte o HTTP llegan como *domain.GatewayError.

// ArticleGateway operaciones sobre artículos.
type ArticleGateway interface {
	ListArticles(ctx context.Context) ([]entity.Article, error)
	GetArticle(ctx context.Context, id int64) (*entity.Article, error)
	CreateArticle(ctx context.Context, a entity.Article) (*entity.Article, error)
	UpdateArticle(ctx context.Context, a entity.Article) (*entity.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
	// ListToReplenish artículos que el servidor marca para reponer.
	ListToReplenish(ctx context.Context) ([]entity.Article, error)
	// ListMissing artículos por debajo del stock de seguridad.
	ListMissing(ctx context.Context) ([]entity.Article, error)
	SetDefaultSupplier(ctx context.Context, articleID, supplierID int64) error
}

// SupplierGateway operaciones sobre proveedores.
type SupplierGateway interface {
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error)
	CreateSupplier(ctx context.Context, s entity.Supplier) (*entity.Supplier, error)
	UpdateSupplier(ctx context.Context, s entity.Supplier) (*entity.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

// LinkGateway operaciones sobre vínculos artículo-proveedor.
type LinkGateway interface {
	ListLinks(ctx context.Context) ([]entity.ArticleSupplier, error)
	ListLinksBySupplier(ctx context.Context, supplierID int64) ([]entity.ArticleSupplier, error)
	CreateLink(ctx context.Context, l entity.ArticleSupplier) (*entity.ArticleSupplier, error)
	UpdateLink(ctx context.Context, l entity.ArticleSupplier) (*entity.ArticleSupplier, error)
}

// PurchaseOrderGateway operaciones sobre órdenes de compra.
type PurchaseOrderGateway interface {
	ListOrders(ctx context.Context) ([]entity.PurchaseOrder, error)
	GetOrder(ctx context.Context, id int64) (*entity.PurchaseOrder, error)
	CreateOrder(ctx context.Context, supplierID int64, lines []entity.OrderLineInput) (*entity.PurchaseOrder, error)
	UpdateOrder(ctx context.Context, id, supplierID int64, lines []entity.OrderLineInput) (*entity.PurchaseOrder, error)
	ConfirmOrder(ctx context.Context, id int64) error
	CancelOrder(ctx context.Context, id int64) error
	FinalizeOrder(ctx context.Context, id int64) error
	// ListActiveByArticle órdenes pendientes o enviadas que incluyen el artículo.
	ListActiveByArticle(ctx context.Context, articleID int64) ([]entity.PurchaseOrder, error)
}

// SaleGateway operaciones sobre ventas.
type SaleGateway interface {
	ListSales(ctx context.Context) ([]entity.Sale, error)
	GetSale(ctx context.Context, id int64) (*entity.Sale, error)
	CreateSale(ctx context.Context, lines []entity.OrderLineInput) (*entity.Sale, error)
}

// Gateway agrupa todos los puertos; lo implementa el cliente REST.
type Gateway interface {
	ArticleGateway
	SupplierGateway
	LinkGateway
	PurchaseOrderGateway
	SaleGateway
}
