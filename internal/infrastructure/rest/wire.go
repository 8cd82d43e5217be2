package rest

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// El servidor no es consistente con los nombres de campo (idArticulo / id, id_proveedor /
// idProveedor / proveedor.id, estado / estadoOrdenCompra, cantidad / cantOCA...).
// Los tipos *Wire aceptan todas las variantes observadas y solo este archivo las conoce.

// flexInt acepta número entero, decimal o string numérico; null = 0.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = flexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Valores no numéricos se tratan como ausentes.
		*f = 0
		return nil
	}
	*f = flexInt(math.Round(fl))
	return nil
}

// flexString acepta solo strings; cualquier otro tipo queda vacío.
// "estado" es booleano en artículos y un enum en órdenes.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*f = ""
		return nil
	}
	*f = flexString(s)
	return nil
}

// flexBool acepta bool o strings como "true", "ACTIVO". Ausente = sin valor.
type flexBool struct {
	Set   bool
	Value bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*f = flexBool{Set: true, Value: v}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "TRUE", "ACTIVO", "ALTA", "1":
			*f = flexBool{Set: true, Value: true}
		case "FALSE", "INACTIVO", "BAJA", "0":
			*f = flexBool{Set: true, Value: false}
		}
	}
	return nil
}

// timeLayouts formatos de LocalDateTime / ISO 8601 que envía el servidor.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// flexTime fecha del servidor; formato desconocido = tiempo cero.
type flexTime struct{ time.Time }

func (f *flexTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		f.Time = time.Time{}
		return nil
	}
	f.Time = parseTime(s)
	return nil
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (f flexTime) ptr() *time.Time {
	if f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}

// refWire referencia anidada (proveedor / artículo como objeto).
type refWire struct {
	ID              flexInt `json:"id"`
	IDArticulo      flexInt `json:"idArticulo"`
	IDProveedor     flexInt `json:"idProveedor"`
	NombreArticulo  string  `json:"nombreArticulo"`
	NombreProveedor string  `json:"nombreProveedor"`
}

func (r *refWire) articleID() int64 {
	if r == nil {
		return 0
	}
	return firstID(r.IDArticulo, r.ID)
}

func (r *refWire) supplierID() int64 {
	if r == nil {
		return 0
	}
	return firstID(r.IDProveedor, r.ID)
}

func firstID(ids ...flexInt) int64 {
	for _, id := range ids {
		if id != 0 {
			return int64(id)
		}
	}
	return 0
}

func firstString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}

func firstDecimal(ds ...decimal.Decimal) decimal.Decimal {
	for _, d := range ds {
		if !d.IsZero() {
			return d
		}
	}
	return decimal.Zero
}

// ── Artículo ─────────────────────────────────────────────────────────────────

type articleWire struct {
	ID                        flexInt         `json:"id"`
	IDArticulo                flexInt         `json:"idArticulo"`
	Nombre                    string          `json:"nombreArticulo"`
	Descripcion               string          `json:"descripcionArticulo"`
	PrecioVenta               decimal.Decimal `json:"precioVentaArt"`
	CostoAlmacenamientoUnidad decimal.Decimal `json:"costoAlmacenamientoUnidad"`
	CostoAlmacenamiento       decimal.Decimal `json:"costoAlmacenamiento"`
	StockActual               flexInt         `json:"stockActual"`
	Demanda                   flexInt         `json:"demandaArticulo"`
	InventarioMaximo          flexInt         `json:"inventarioMaximo"`
	StockMaximo               flexInt         `json:"stockMaximo"`
	ProveedorPredeterminadoID flexInt         `json:"proveedorPredeterminadoId"`
	IDProveedorPredeterminado flexInt         `json:"idProveedorPredeterminado"`
	ProveedorPredeterminado   *refWire        `json:"proveedorPredeterminado"`
	Proveedor                 *refWire        `json:"proveedor"`
	Estado                    flexBool        `json:"estado"`
	FechaBaja                 flexTime        `json:"fechaBaja"`
}

func (w articleWire) toEntity() entity.Article {
	a := entity.Article{
		ID:           firstID(w.IDArticulo, w.ID),
		Name:         w.Nombre,
		Description:  w.Descripcion,
		SalePrice:    w.PrecioVenta,
		StorageCost:  firstDecimal(w.CostoAlmacenamientoUnidad, w.CostoAlmacenamiento),
		Stock:        int(w.StockActual),
		Demand:       int(w.Demanda),
		MaxInventory: int(firstID(w.InventarioMaximo, w.StockMaximo)),
		DeletedAt:    w.FechaBaja.ptr(),
	}
	a.DefaultSupplierID = firstID(w.ProveedorPredeterminadoID, w.IDProveedorPredeterminado)
	if a.DefaultSupplierID == 0 {
		a.DefaultSupplierID = w.ProveedorPredeterminado.supplierID()
	}
	if a.DefaultSupplierID == 0 {
		a.DefaultSupplierID = w.Proveedor.supplierID()
	}
	if a.Stock < 0 {
		a.Stock = 0
	}
	a.Active = a.DeletedAt == nil
	if w.Estado.Set {
		a.Active = w.Estado.Value
	}
	return a
}

type articleOut struct {
	Nombre                    string          `json:"nombreArticulo"`
	Descripcion               string          `json:"descripcionArticulo"`
	PrecioVenta               decimal.Decimal `json:"precioVentaArt"`
	CostoAlmacenamientoUnidad decimal.Decimal `json:"costoAlmacenamientoUnidad"`
	StockActual               int             `json:"stockActual"`
	Demanda                   int             `json:"demandaArticulo"`
	InventarioMaximo          int             `json:"inventarioMaximo"`
	ProveedorPredeterminadoID int64           `json:"proveedorPredeterminadoId,omitempty"`
}

func articleToWire(a entity.Article) articleOut {
	return articleOut{
		Nombre:                    a.Name,
		Descripcion:               a.Description,
		PrecioVenta:               a.SalePrice,
		CostoAlmacenamientoUnidad: a.StorageCost,
		StockActual:               a.Stock,
		Demanda:                   a.Demand,
		InventarioMaximo:          a.MaxInventory,
		ProveedorPredeterminadoID: a.DefaultSupplierID,
	}
}

// ── Proveedor ────────────────────────────────────────────────────────────────

type supplierWire struct {
	ID          flexInt  `json:"id"`
	IDProveedor flexInt  `json:"idProveedor"`
	Nombre      string   `json:"nombreProveedor"`
	CUIT        string   `json:"cuit"`
	Telefono    string   `json:"telefonoProveedor"`
	Email       string   `json:"emailProveedor"`
	Estado      flexBool `json:"estado"`
	FechaBaja   flexTime `json:"fechaBaja"`
}

func (w supplierWire) toEntity() entity.Supplier {
	s := entity.Supplier{
		ID:        firstID(w.IDProveedor, w.ID),
		Name:      w.Nombre,
		TaxID:     w.CUIT,
		Phone:     w.Telefono,
		Email:     w.Email,
		DeletedAt: w.FechaBaja.ptr(),
	}
	s.Active = s.DeletedAt == nil
	if w.Estado.Set {
		s.Active = w.Estado.Value
	}
	return s
}

type supplierOut struct {
	Nombre   string `json:"nombreProveedor"`
	CUIT     string `json:"cuit"`
	Telefono string `json:"telefonoProveedor,omitempty"`
	Email    string `json:"emailProveedor,omitempty"`
}

func supplierToWire(s entity.Supplier) supplierOut {
	return supplierOut{Nombre: s.Name, CUIT: s.TaxID, Telefono: s.Phone, Email: s.Email}
}

// ── Vínculo artículo-proveedor ───────────────────────────────────────────────

type linkWire struct {
	ID                  flexInt         `json:"id"`
	IDArticuloProveedor flexInt         `json:"idArticuloProveedor"`
	IDArticulo          flexInt         `json:"idArticulo"`
	IDArticuloSnake     flexInt         `json:"id_articulo"`
	Articulo            *refWire        `json:"articulo"`
	IDProveedor         flexInt         `json:"idProveedor"`
	IDProveedorSnake    flexInt         `json:"id_proveedor"`
	Proveedor           *refWire        `json:"proveedor"`
	NombreProveedor     string          `json:"nombreProveedor"`
	PrecioUnitario      decimal.Decimal `json:"precioUnitario"`
	CostoCompra         decimal.Decimal `json:"costoCompra"`
	CostoPedido         decimal.Decimal `json:"costoPedido"`
	CostoPorPedido      decimal.Decimal `json:"costoPorPedido"`
	DemoraEntrega       flexInt         `json:"demoraEntrega"`
	DesviacionEstandar  float64         `json:"desviacionEstandar"`
	Modelo              modelWire       `json:"modeloInventario"`
	StockSeguridad      flexInt         `json:"stockSeguridad"`
	PuntoPedido         flexInt         `json:"puntoPedido"`
	LoteOptimo          flexInt         `json:"loteOptimo"`
	CantidadPedido      flexInt         `json:"cantidadPedido"`
	IntervaloRevision   flexInt         `json:"intervaloRevision"`
	InventarioMaximo    flexInt         `json:"inventarioMaximo"`
}

// modelWire modelo de inventario: nombre ("LOTE_FIJO", "intervaloFijo") u ordinal
// del enum (0 lote fijo, 1 intervalo fijo).
type modelWire string

func (m *modelWire) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*m = modelWire(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*m = modelWire(n.String())
		return nil
	}
	if string(bytes.TrimSpace(b)) == "null" {
		*m = ""
		return nil
	}
	*m = modelWire(b)
	return nil
}

// parseModel traduce el modelo. Ausente es lote fijo; ok es false si el valor no se reconoce
// (también se asume lote fijo).
func parseModel(w modelWire) (entity.InventoryModel, bool) {
	m := strings.ToUpper(strings.TrimSpace(string(w)))
	m = strings.ReplaceAll(m, " ", "_")
	switch m {
	case "", "LOTE_FIJO", "LOTEFIJO", "FIXED_LOT", "0":
		return entity.ModelFixedLot, true
	case "INTERVALO_FIJO", "INTERVALOFIJO", "FIXED_INTERVAL", "1":
		return entity.ModelFixedInterval, true
	default:
		return entity.ModelFixedLot, false
	}
}

func model(w modelWire) entity.InventoryModel {
	m, _ := parseModel(w)
	return m
}

func (w linkWire) toEntity() entity.ArticleSupplier {
	l := entity.ArticleSupplier{
		ID:                 firstID(w.IDArticuloProveedor, w.ID),
		ArticleID:          firstID(w.IDArticulo, w.IDArticuloSnake),
		SupplierID:         firstID(w.IDProveedor, w.IDProveedorSnake),
		UnitPrice:          firstDecimal(w.PrecioUnitario, w.CostoCompra),
		OrderCost:          firstDecimal(w.CostoPedido, w.CostoPorPedido),
		LeadTimeDays:       int(w.DemoraEntrega),
		DemandStdDev:       w.DesviacionEstandar,
		Model:              model(w.Modelo),
		SafetyStock:        int(w.StockSeguridad),
		ReorderPoint:       int(w.PuntoPedido),
		OptimalLot:         int(firstID(w.LoteOptimo, w.CantidadPedido)),
		ReviewIntervalDays: int(w.IntervaloRevision),
		MaxLevel:           int(w.InventarioMaximo),
	}
	if l.ArticleID == 0 {
		l.ArticleID = w.Articulo.articleID()
	}
	if l.SupplierID == 0 {
		l.SupplierID = w.Proveedor.supplierID()
	}
	l.SupplierName = w.NombreProveedor
	if l.SupplierName == "" && w.Proveedor != nil {
		l.SupplierName = w.Proveedor.NombreProveedor
	}
	l.Normalize()
	return l
}

type linkOut struct {
	IDArticulo         int64           `json:"idArticulo"`
	IDProveedor        int64           `json:"idProveedor"`
	PrecioUnitario     decimal.Decimal `json:"precioUnitario"`
	CostoPedido        decimal.Decimal `json:"costoPedido"`
	DemoraEntrega      int             `json:"demoraEntrega"`
	DesviacionEstandar float64         `json:"desviacionEstandar"`
	Modelo             string          `json:"modeloInventario"`
	StockSeguridad     int             `json:"stockSeguridad"`
	PuntoPedido        int             `json:"puntoPedido"`
	LoteOptimo         int             `json:"loteOptimo"`
	IntervaloRevision  int             `json:"intervaloRevision"`
	InventarioMaximo   int             `json:"inventarioMaximo"`
}

func linkToWire(l entity.ArticleSupplier) linkOut {
	l.Normalize()
	return linkOut{
		IDArticulo:         l.ArticleID,
		IDProveedor:        l.SupplierID,
		PrecioUnitario:     l.UnitPrice,
		CostoPedido:        l.OrderCost,
		DemoraEntrega:      l.LeadTimeDays,
		DesviacionEstandar: l.DemandStdDev,
		Modelo:             l.Model.String(),
		StockSeguridad:     l.SafetyStock,
		PuntoPedido:        l.ReorderPoint,
		LoteOptimo:         l.OptimalLot,
		IntervaloRevision:  l.ReviewIntervalDays,
		InventarioMaximo:   l.MaxLevel,
	}
}

// ── Orden de compra ──────────────────────────────────────────────────────────

type orderLineWire struct {
	IDArticuloSnake      flexInt         `json:"id_articulo"`
	IDArticulo           flexInt         `json:"idArticulo"`
	Articulo             *refWire        `json:"articulo"`
	NombreArticulo       string          `json:"nombreArticulo"`
	Cantidad             flexInt         `json:"cantidad"`
	CantOCA              flexInt         `json:"cantOCA"`
	CantArticuloOC       flexInt         `json:"cantArticuloOC"`
	PrecioUnitarioOCA    decimal.Decimal `json:"precioUnitarioOCA"`
	CostoUnitarioArtOC   decimal.Decimal `json:"costoUnitarioArtOC"`
	PrecioUnitario       decimal.Decimal `json:"precioUnitario"`
	PrecioSubTotalOCA    decimal.Decimal `json:"precioSubTotalOCA"`
	CostoTotalArticuloOC decimal.Decimal `json:"costoTotalArticuloOC"`
	SubTotal             decimal.Decimal `json:"subTotal"`
}

func (w orderLineWire) toEntity() entity.PurchaseOrderLine {
	l := entity.PurchaseOrderLine{
		ArticleID: firstID(w.IDArticuloSnake, w.IDArticulo),
		Quantity:  int(firstID(w.Cantidad, w.CantOCA, w.CantArticuloOC)),
		UnitPrice: firstDecimal(w.PrecioUnitarioOCA, w.CostoUnitarioArtOC, w.PrecioUnitario),
		Subtotal:  firstDecimal(w.PrecioSubTotalOCA, w.CostoTotalArticuloOC, w.SubTotal),
	}
	if l.ArticleID == 0 {
		l.ArticleID = w.Articulo.articleID()
	}
	l.ArticleName = w.NombreArticulo
	if l.ArticleName == "" && w.Articulo != nil {
		l.ArticleName = w.Articulo.NombreArticulo
	}
	return l
}

type orderWire struct {
	ID                  flexInt         `json:"id"`
	IDOrdenCompra       flexInt         `json:"idOrdenCompra"`
	IDProveedorSnake    flexInt         `json:"id_proveedor"`
	IDProveedor         flexInt         `json:"idProveedor"`
	Proveedor           *refWire        `json:"proveedor"`
	NombreProveedor     string          `json:"nombreProveedor"`
	Estado              flexString      `json:"estado"`
	EstadoOrdenCompra   flexString      `json:"estadoOrdenCompra"`
	TotalOrdenCompra    decimal.Decimal `json:"totalOrdenCompra"`
	MontoTotal          decimal.Decimal `json:"montoTotal"`
	CantidadOrdenCompra flexInt         `json:"cantidadOrdenCompra"`
	FechaPendiente      flexTime        `json:"fechaPendiente"`
	FechaConfirmada     flexTime        `json:"fechaConfirmada"`
	FechaRecibida       flexTime        `json:"fechaRecibida"`
	FechaCancelada      flexTime        `json:"fechaCancelada"`
	Articulos           []orderLineWire `json:"articulosOrdenCompra"`
}

// parseStatus normaliza "PENDIENTE", "Pendiente", "pendiente", "CONFIRMADA"...
func parseStatus(raw string) entity.OrderStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDIENTE", "PENDING":
		return entity.OrderPending
	case "ENVIADA", "CONFIRMADA", "CONFIRMED", "SENT":
		return entity.OrderConfirmed
	case "CANCELADA", "CANCELLED", "CANCELED":
		return entity.OrderCancelled
	case "FINALIZADA", "RECIBIDA", "FINALIZED":
		return entity.OrderFinalized
	default:
		return entity.OrderStatus(strings.ToUpper(strings.TrimSpace(raw)))
	}
}

func (w orderWire) toEntity() entity.PurchaseOrder {
	o := entity.PurchaseOrder{
		ID:            firstID(w.IDOrdenCompra, w.ID),
		SupplierID:    firstID(w.IDProveedorSnake, w.IDProveedor),
		Status:        parseStatus(firstString(string(w.EstadoOrdenCompra), string(w.Estado))),
		TotalAmount:   firstDecimal(w.TotalOrdenCompra, w.MontoTotal),
		TotalQuantity: int(w.CantidadOrdenCompra),
		PendingAt:     w.FechaPendiente.ptr(),
		ConfirmedAt:   w.FechaConfirmada.ptr(),
		ReceivedAt:    w.FechaRecibida.ptr(),
		CancelledAt:   w.FechaCancelada.ptr(),
	}
	if o.SupplierID == 0 {
		o.SupplierID = w.Proveedor.supplierID()
	}
	o.SupplierName = w.NombreProveedor
	if o.SupplierName == "" && w.Proveedor != nil {
		o.SupplierName = w.Proveedor.NombreProveedor
	}
	o.Lines = make([]entity.PurchaseOrderLine, 0, len(w.Articulos))
	for _, lw := range w.Articulos {
		o.Lines = append(o.Lines, lw.toEntity())
	}
	o.ComputeTotals()
	return o
}

type orderLineOut struct {
	IDArticulo int64 `json:"id_articulo"`
	Cantidad   int   `json:"cantidad"`
}

type orderOut struct {
	IDProveedor int64          `json:"id_proveedor"`
	Articulos   []orderLineOut `json:"articulosOrdenCompra"`
}

func orderToWire(supplierID int64, lines []entity.OrderLineInput) orderOut {
	out := orderOut{IDProveedor: supplierID, Articulos: make([]orderLineOut, 0, len(lines))}
	for _, l := range lines {
		out.Articulos = append(out.Articulos, orderLineOut{IDArticulo: l.ArticleID, Cantidad: l.Quantity})
	}
	return out
}

// ── Venta ────────────────────────────────────────────────────────────────────

type saleLineWire struct {
	IDArticulo        flexInt         `json:"idArticulo"`
	IDArticuloSnake   flexInt         `json:"id_articulo"`
	Articulo          *refWire        `json:"articulo"`
	NombreArticulo    string          `json:"nombreArticulo"`
	Cantidad          flexInt         `json:"cantidad"`
	CantArticuloVenta flexInt         `json:"cantArticuloVenta"`
	PrecioUnitario    decimal.Decimal `json:"precioUnitario"`
	PrecioSubTotal    decimal.Decimal `json:"precioSubTotal"`
	SubTotal          decimal.Decimal `json:"subTotal"`
}

type saleWire struct {
	ID         flexInt         `json:"id"`
	IDVenta    flexInt         `json:"idVenta"`
	FechaVenta flexTime        `json:"fechaVenta"`
	FechaAlta  flexTime        `json:"fechaAlta"`
	MontoTotal decimal.Decimal `json:"montoTotal"`
	CostoTotal decimal.Decimal `json:"costoTotal"`
	TotalVenta decimal.Decimal `json:"totalVenta"`
	Articulos  []saleLineWire  `json:"articulosVenta"`
}

func (w saleWire) toEntity() entity.Sale {
	s := entity.Sale{
		ID:    firstID(w.IDVenta, w.ID),
		Date:  w.FechaVenta.Time,
		Total: firstDecimal(w.MontoTotal, w.CostoTotal, w.TotalVenta),
	}
	if s.Date.IsZero() {
		s.Date = w.FechaAlta.Time
	}
	total := decimal.Zero
	for _, lw := range w.Articulos {
		l := entity.SaleLine{
			ArticleID:   firstID(lw.IDArticulo, lw.IDArticuloSnake),
			ArticleName: lw.NombreArticulo,
			Quantity:    int(firstID(lw.Cantidad, lw.CantArticuloVenta)),
			UnitPrice:   lw.PrecioUnitario,
			Subtotal:    firstDecimal(lw.PrecioSubTotal, lw.SubTotal),
		}
		if l.ArticleID == 0 {
			l.ArticleID = lw.Articulo.articleID()
		}
		if l.ArticleName == "" && lw.Articulo != nil {
			l.ArticleName = lw.Articulo.NombreArticulo
		}
		if l.Subtotal.IsZero() {
			l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		}
		total = total.Add(l.Subtotal)
		s.Lines = append(s.Lines, l)
	}
	if s.Total.IsZero() {
		s.Total = total
	}
	return s
}

type saleLineOut struct {
	IDArticulo int64 `json:"idArticulo"`
	Cantidad   int   `json:"cantidad"`
}

type saleOut struct {
	Articulos []saleLineOut `json:"articulosVenta"`
}

func saleToWire(lines []entity.OrderLineInput) saleOut {
	out := saleOut{Articulos: make([]saleLineOut, 0, len(lines))}
	for _, l := range lines {
		out.Articulos = append(out.Articulos, saleLineOut{IDArticulo: l.ArticleID, Cantidad: l.Quantity})
	}
	return out
}
