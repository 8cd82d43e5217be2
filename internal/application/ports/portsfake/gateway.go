// Package portsfake implementación en memoria de ports.Gateway para pruebas.
// Se comporta como el servidor de inventario: valida transiciones y registra cada llamada.
package portsfake

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

var _ ports.Gateway = (*Gateway)(nil)

// mutations métodos que modifican datos en el servidor.
var mutations = map[string]bool{
	"CreateArticle": true, "UpdateArticle": true, "DeleteArticle": true, "SetDefaultSupplier": true,
	"CreateSupplier": true, "UpdateSupplier": true, "DeleteSupplier": true,
	"CreateLink": true, "UpdateLink": true,
	"CreateOrder": true, "UpdateOrder": true, "ConfirmOrder": true, "CancelOrder": true, "FinalizeOrder": true,
	"CreateSale": true,
}

// Gateway servidor de inventario en memoria.
type Gateway struct {
	mu        sync.Mutex
	articles  map[int64]entity.Article
	suppliers map[int64]entity.Supplier
	links     []entity.ArticleSupplier
	orders    map[int64]entity.PurchaseOrder
	sales     map[int64]entity.Sale
	nextID    int64
	calls     []string
	fail      map[string]error

	// Before se invoca al inicio de cada llamada, sin el lock tomado.
	Before func(method string)
}

// New gateway vacío.
func New() *Gateway {
	return &Gateway{
		articles:  map[int64]entity.Article{},
		suppliers: map[int64]entity.Supplier{},
		orders:    map[int64]entity.PurchaseOrder{},
		sales:     map[int64]entity.Sale{},
		nextID:    1000,
		fail:      map[string]error{},
	}
}

// ── Preparación ──────────────────────────────────────────────────────────────

func (g *Gateway) PutArticle(a entity.Article) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !a.Active && a.DeletedAt == nil {
		a.Active = true
	}
	g.articles[a.ID] = a
}

func (g *Gateway) PutSupplier(s entity.Supplier) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s.Active = true
	g.suppliers[s.ID] = s
}

func (g *Gateway) PutLink(l entity.ArticleSupplier) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if l.ID == 0 {
		g.nextID++
		l.ID = g.nextID
	}
	g.links = append(g.links, l)
}

func (g *Gateway) PutOrder(o entity.PurchaseOrder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	o.ComputeTotals()
	g.orders[o.ID] = o
}

// SetStock cambia el stock de un artículo, simulando otro cliente.
func (g *Gateway) SetStock(articleID int64, stock int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a := g.articles[articleID]
	a.Stock = stock
	g.articles[articleID] = a
}

// Fail hace que el método devuelva err hasta que se limpie con Fail(method, nil).
func (g *Gateway) Fail(method string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.fail, method)
		return
	}
	g.fail[method] = err
}

// ── Inspección ───────────────────────────────────────────────────────────────

// Calls métodos invocados en orden.
func (g *Gateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// Mutations cantidad de llamadas que modifican datos.
func (g *Gateway) Mutations() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if mutations[c] {
			n++
		}
	}
	return n
}

// CallCount cantidad de invocaciones de un método.
func (g *Gateway) CallCount(method string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, c := range g.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (g *Gateway) Order(id int64) entity.PurchaseOrder {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.orders[id]
}

func (g *Gateway) Article(id int64) entity.Article {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.articles[id]
}

// enter registra la llamada y devuelve el error configurado. Deja el lock tomado.
func (g *Gateway) enter(method string) error {
	if g.Before != nil {
		g.Before(method)
	}
	g.mu.Lock()
	g.calls = append(g.calls, method)
	return g.fail[method]
}

func notFound(op string) error {
	return &domain.GatewayError{Op: op, Status: 404, Message: "no encontrado"}
}

func badRequest(op, msg string) error {
	return &domain.GatewayError{Op: op, Status: 400, Message: msg}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ── Artículos ────────────────────────────────────────────────────────────────

func (g *Gateway) ListArticles(ctx context.Context) ([]entity.Article, error) {
	err := g.enter("ListArticles")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.Article{}
	for _, id := range sortedKeys(g.articles) {
		if a := g.articles[id]; a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (g *Gateway) GetArticle(ctx context.Context, id int64) (*entity.Article, error) {
	err := g.enter("GetArticle")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	a, ok := g.articles[id]
	if !ok {
		return nil, notFound("articulos.obtener")
	}
	return &a, nil
}

func (g *Gateway) CreateArticle(ctx context.Context, a entity.Article) (*entity.Article, error) {
	err := g.enter("CreateArticle")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	g.nextID++
	a.ID = g.nextID
	a.Active = true
	g.articles[a.ID] = a
	return &a, nil
}

func (g *Gateway) UpdateArticle(ctx context.Context, a entity.Article) (*entity.Article, error) {
	err := g.enter("UpdateArticle")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if _, ok := g.articles[a.ID]; !ok {
		return nil, notFound("articulos.modificar")
	}
	g.articles[a.ID] = a
	return &a, nil
}

func (g *Gateway) DeleteArticle(ctx context.Context, id int64) error {
	err := g.enter("DeleteArticle")
	defer g.mu.Unlock()
	if err != nil {
		return err
	}
	a, ok := g.articles[id]
	if !ok {
		return notFound("articulos.baja")
	}
	a.Active = false
	g.articles[id] = a
	return nil
}

// ListToReplenish artículos con stock por debajo del punto de pedido de su proveedor predeterminado.
func (g *Gateway) ListToReplenish(ctx context.Context) ([]entity.Article, error) {
	err := g.enter("ListToReplenish")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.Article{}
	for _, id := range sortedKeys(g.articles) {
		a := g.articles[id]
		for _, l := range g.links {
			if l.ArticleID == a.ID && l.SupplierID == a.DefaultSupplierID && a.Stock <= l.ReorderPoint {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

// ListMissing artículos por debajo del stock de seguridad de algún vínculo.
func (g *Gateway) ListMissing(ctx context.Context) ([]entity.Article, error) {
	err := g.enter("ListMissing")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.Article{}
	for _, id := range sortedKeys(g.articles) {
		a := g.articles[id]
		for _, l := range g.links {
			if l.ArticleID == a.ID && a.Stock < l.SafetyStock {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (g *Gateway) SetDefaultSupplier(ctx context.Context, articleID, supplierID int64) error {
	err := g.enter("SetDefaultSupplier")
	defer g.mu.Unlock()
	if err != nil {
		return err
	}
	a, ok := g.articles[articleID]
	if !ok {
		return notFound("articulos.proveedor_predeterminado")
	}
	a.DefaultSupplierID = supplierID
	g.articles[articleID] = a
	return nil
}

// ── Proveedores ──────────────────────────────────────────────────────────────

func (g *Gateway) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	err := g.enter("ListSuppliers")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.Supplier{}
	for _, id := range sortedKeys(g.suppliers) {
		if s := g.suppliers[id]; s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (g *Gateway) GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error) {
	err := g.enter("GetSupplier")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s, ok := g.suppliers[id]
	if !ok {
		return nil, notFound("proveedores.obtener")
	}
	return &s, nil
}

func (g *Gateway) CreateSupplier(ctx context.Context, s entity.Supplier) (*entity.Supplier, error) {
	err := g.enter("CreateSupplier")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	g.nextID++
	s.ID = g.nextID
	s.Active = true
	g.suppliers[s.ID] = s
	return &s, nil
}

func (g *Gateway) UpdateSupplier(ctx context.Context, s entity.Supplier) (*entity.Supplier, error) {
	err := g.enter("UpdateSupplier")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if _, ok := g.suppliers[s.ID]; !ok {
		return nil, notFound("proveedores.modificar")
	}
	g.suppliers[s.ID] = s
	return &s, nil
}

func (g *Gateway) DeleteSupplier(ctx context.Context, id int64) error {
	err := g.enter("DeleteSupplier")
	defer g.mu.Unlock()
	if err != nil {
		return err
	}
	s, ok := g.suppliers[id]
	if !ok {
		return notFound("proveedores.baja")
	}
	s.Active = false
	g.suppliers[id] = s
	return nil
}

// ── Vínculos ─────────────────────────────────────────────────────────────────

func (g *Gateway) ListLinks(ctx context.Context) ([]entity.ArticleSupplier, error) {
	err := g.enter("ListLinks")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return append([]entity.ArticleSupplier{}, g.links...), nil
}

func (g *Gateway) ListLinksBySupplier(ctx context.Context, supplierID int64) ([]entity.ArticleSupplier, error) {
	err := g.enter("ListLinksBySupplier")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.ArticleSupplier{}
	for _, l := range g.links {
		if l.SupplierID == supplierID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (g *Gateway) CreateLink(ctx context.Context, l entity.ArticleSupplier) (*entity.ArticleSupplier, error) {
	err := g.enter("CreateLink")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	g.nextID++
	l.ID = g.nextID
	g.links = append(g.links, l)
	return &l, nil
}

func (g *Gateway) UpdateLink(ctx context.Context, l entity.ArticleSupplier) (*entity.ArticleSupplier, error) {
	err := g.enter("UpdateLink")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for i := range g.links {
		if g.links[i].ID == l.ID {
			g.links[i] = l
			return &l, nil
		}
	}
	return nil, notFound("articulo_proveedor.modificar")
}

// ── Órdenes ──────────────────────────────────────────────────────────────────

func (g *Gateway) ListOrders(ctx context.Context) ([]entity.PurchaseOrder, error) {
	err := g.enter("ListOrders")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.PurchaseOrder{}
	for _, id := range sortedKeys(g.orders) {
		out = append(out, g.orders[id])
	}
	return out, nil
}

func (g *Gateway) GetOrder(ctx context.Context, id int64) (*entity.PurchaseOrder, error) {
	err := g.enter("GetOrder")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	o, ok := g.orders[id]
	if !ok {
		return nil, notFound("ordenes.obtener")
	}
	return &o, nil
}

func (g *Gateway) buildLines(supplierID int64, in []entity.OrderLineInput) []entity.PurchaseOrderLine {
	lines := make([]entity.PurchaseOrderLine, 0, len(in))
	for _, li := range in {
		price := decimal.Zero
		for _, l := range g.links {
			if l.ArticleID == li.ArticleID && l.SupplierID == supplierID {
				price = l.UnitPrice
				break
			}
		}
		lines = append(lines, entity.PurchaseOrderLine{
			ArticleID:   li.ArticleID,
			ArticleName: g.articles[li.ArticleID].Name,
			Quantity:    li.Quantity,
			UnitPrice:   price,
		})
	}
	return lines
}

func (g *Gateway) CreateOrder(ctx context.Context, supplierID int64, lines []entity.OrderLineInput) (*entity.PurchaseOrder, error) {
	err := g.enter("CreateOrder")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if supplierID == 0 || len(lines) == 0 {
		return nil, badRequest("ordenes.crear", "El DTO de orden de compra debe incluir un proveedor y al menos un artículo")
	}
	g.nextID++
	o := entity.PurchaseOrder{
		ID:           g.nextID,
		SupplierID:   supplierID,
		SupplierName: g.suppliers[supplierID].Name,
		Status:       entity.OrderPending,
		Lines:        g.buildLines(supplierID, lines),
	}
	o.ComputeTotals()
	g.orders[o.ID] = o
	return &o, nil
}

func (g *Gateway) UpdateOrder(ctx context.Context, id, supplierID int64, lines []entity.OrderLineInput) (*entity.PurchaseOrder, error) {
	err := g.enter("UpdateOrder")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	o, ok := g.orders[id]
	if !ok {
		return nil, notFound("ordenes.modificar")
	}
	if o.Status != entity.OrderPending {
		return nil, badRequest("ordenes.modificar", "Solo se pueden modificar órdenes en estado Pendiente")
	}
	o.SupplierID = supplierID
	o.SupplierName = g.suppliers[supplierID].Name
	o.Lines = g.buildLines(supplierID, lines)
	o.TotalAmount = decimal.Zero
	o.TotalQuantity = 0
	o.ComputeTotals()
	g.orders[id] = o
	return &o, nil
}

func (g *Gateway) transition(method, action string, id int64) error {
	err := g.enter(method)
	defer g.mu.Unlock()
	if err != nil {
		return err
	}
	o, ok := g.orders[id]
	if !ok {
		return notFound("ordenes." + action)
	}
	if !o.Status.Allows(action) {
		return badRequest("ordenes."+action, fmt.Sprintf("No se puede %s una orden en estado %s", action, o.Status))
	}
	o.Status = o.Status.Next(action)
	g.orders[id] = o
	return nil
}

func (g *Gateway) ConfirmOrder(ctx context.Context, id int64) error {
	return g.transition("ConfirmOrder", entity.ActionConfirm, id)
}

func (g *Gateway) CancelOrder(ctx context.Context, id int64) error {
	return g.transition("CancelOrder", entity.ActionCancel, id)
}

func (g *Gateway) FinalizeOrder(ctx context.Context, id int64) error {
	return g.transition("FinalizeOrder", entity.ActionFinalize, id)
}

func (g *Gateway) ListActiveByArticle(ctx context.Context, articleID int64) ([]entity.PurchaseOrder, error) {
	err := g.enter("ListActiveByArticle")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.PurchaseOrder{}
	for _, id := range sortedKeys(g.orders) {
		o := g.orders[id]
		if o.Status.IsActive() && o.HasArticle(articleID) {
			out = append(out, o)
		}
	}
	return out, nil
}

// ── Ventas ───────────────────────────────────────────────────────────────────

func (g *Gateway) ListSales(ctx context.Context) ([]entity.Sale, error) {
	err := g.enter("ListSales")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []entity.Sale{}
	for _, id := range sortedKeys(g.sales) {
		out = append(out, g.sales[id])
	}
	return out, nil
}

func (g *Gateway) GetSale(ctx context.Context, id int64) (*entity.Sale, error) {
	err := g.enter("GetSale")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s, ok := g.sales[id]
	if !ok {
		return nil, notFound("ventas.obtener")
	}
	return &s, nil
}

// CreateSale descuenta stock como lo haría el servidor.
func (g *Gateway) CreateSale(ctx context.Context, lines []entity.OrderLineInput) (*entity.Sale, error) {
	err := g.enter("CreateSale")
	defer g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	g.nextID++
	s := entity.Sale{ID: g.nextID, Total: decimal.Zero}
	for _, li := range lines {
		a := g.articles[li.ArticleID]
		if a.Stock < li.Quantity {
			return nil, badRequest("ventas.crear", "Stock insuficiente para el artículo: "+a.Name)
		}
		a.Stock -= li.Quantity
		g.articles[a.ID] = a
		sub := a.SalePrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
		s.Lines = append(s.Lines, entity.SaleLine{
			ArticleID: a.ID, ArticleName: a.Name, Quantity: li.Quantity, UnitPrice: a.SalePrice, Subtotal: sub,
		})
		s.Total = s.Total.Add(sub)
	}
	g.sales[s.ID] = s
	return &s, nil
}
