package purchasing

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
	"github.com/jhoicas/inventario-compras/pkg/logger"
)

// SupplierOptioner proveedores elegibles para un artículo (lo implementa el resolvedor de vínculos).
type SupplierOptioner interface {
	SupplierOptions(ctx context.Context, articleID int64) ([]dto.SupplierOptionResponse, error)
}

// LifecycleController transiciones de estado de las órdenes de compra.
// Cada transición relee la orden, verifica que el estado la permita y recién entonces
// pide el cambio al servidor. La respuesta refleja lo que el servidor confirmó.
type LifecycleController struct {
	orders    ports.PurchaseOrderGateway
	validator *OrderValidator
	options   SupplierOptioner
	guard     *KeyedGuard
	metrics   OperationRecorder
	log       *logger.Logger
}

// NewLifecycleController construye el controlador. metrics puede ser nil.
func NewLifecycleController(
	orders ports.PurchaseOrderGateway,
	validator *OrderValidator,
	options SupplierOptioner,
	guard *KeyedGuard,
	metrics OperationRecorder,
	log *logger.Logger,
) *LifecycleController {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &LifecycleController{
		orders:    orders,
		validator: validator,
		options:   options,
		guard:     guard,
		metrics:   metrics,
		log:       log.Component("lifecycle"),
	}
}

func orderKey(id int64) string { return "orden:" + strconv.FormatInt(id, 10) }

// List órdenes de compra paginadas.
func (lc *LifecycleController) List(ctx context.Context, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page.DefaultPage()
	all, err := lc.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("ordenes: listar: %w", err)
	}
	from, to := page.Bounds(len(all))
	items := make([]dto.PurchaseOrderResponse, 0, to-from)
	for _, o := range all[from:to] {
		items = append(items, dto.ToPurchaseOrderResponse(o))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(all)},
	}, nil
}

// Get orden por id.
func (lc *LifecycleController) Get(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	o, err := lc.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ordenes: obtener %d: %w", id, err)
	}
	out := dto.ToPurchaseOrderResponse(*o)
	return &out, nil
}

// Confirm Pendiente -> Enviada.
func (lc *LifecycleController) Confirm(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	return lc.transition(ctx, id, entity.ActionConfirm, lc.orders.ConfirmOrder)
}

// Cancel Pendiente -> Cancelada.
func (lc *LifecycleController) Cancel(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	return lc.transition(ctx, id, entity.ActionCancel, lc.orders.CancelOrder)
}

// Finalize Enviada -> Finalizada.
func (lc *LifecycleController) Finalize(ctx context.Context, id int64) (*dto.PurchaseOrderResponse, error) {
	return lc.transition(ctx, id, entity.ActionFinalize, lc.orders.FinalizeOrder)
}

// current relee la orden y verifica que la acción sea legal desde su estado.
func (lc *LifecycleController) current(ctx context.Context, id int64, action string) (*entity.PurchaseOrder, error) {
	o, err := lc.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ordenes: obtener %d: %w", id, err)
	}
	if !o.Status.Allows(action) {
		lc.log.Info().Int64("order_id", id).Str("status", o.Status.String()).Str("action", action).Msg("transición ilegal")
		return nil, &domain.IllegalTransitionError{OrderID: id, Current: o.Status.String(), Attempted: action}
	}
	return o, nil
}

func (lc *LifecycleController) transition(
	ctx context.Context,
	id int64,
	action string,
	apply func(ctx context.Context, id int64) error,
) (out *dto.PurchaseOrderResponse, err error) {
	release, err := lc.guard.Acquire(orderKey(id))
	if err != nil {
		return nil, err
	}
	defer release()
	defer func() { lc.metrics.ObserveOrderOperation(action, err) }()

	before, err := lc.current(ctx, id, action)
	if err != nil {
		return nil, err
	}
	if err := apply(ctx, id); err != nil {
		return nil, fmt.Errorf("ordenes: %s %d: %w", action, id, err)
	}
	lc.log.Info().Int64("order_id", id).Str("action", action).Msg("transición aplicada")

	// la transición ya quedó aplicada en el servidor; si la relectura falla se responde
	// con la orden leída antes y el estado destino
	after, err := lc.Get(ctx, id)
	if err != nil {
		lc.log.Warn().Err(err).Int64("order_id", id).Str("action", action).Msg("no se pudo releer la orden tras la transición")
		before.Status = before.Status.Next(action)
		resp := dto.ToPurchaseOrderResponse(*before)
		return &resp, nil
	}
	return after, nil
}

// Modify reemplaza las líneas (y opcionalmente el proveedor) de una orden Pendiente.
// supplierID 0 conserva el proveedor actual. Las líneas pasan por las mismas reglas
// que un envío nuevo; la propia orden no cuenta como duplicada.
func (lc *LifecycleController) Modify(ctx context.Context, id, supplierID int64, lines []entity.OrderLineInput) (out *dto.PurchaseOrderResponse, err error) {
	release, err := lc.guard.Acquire(orderKey(id))
	if err != nil {
		return nil, err
	}
	defer release()
	defer func() { lc.metrics.ObserveOrderOperation(entity.ActionModify, err) }()

	o, err := lc.current(ctx, id, entity.ActionModify)
	if err != nil {
		return nil, err
	}
	if supplierID == 0 {
		supplierID = o.SupplierID
	}
	if err := lc.validator.Validate(ctx, lines, id); err != nil {
		return nil, err
	}
	updated, err := lc.orders.UpdateOrder(ctx, id, supplierID, lines)
	if err != nil {
		return nil, fmt.Errorf("ordenes: modificar %d: %w", id, err)
	}
	lc.log.Info().Int64("order_id", id).Int64("supplier_id", supplierID).Int("lines", len(lines)).Msg("orden modificada")
	resp := dto.ToPurchaseOrderResponse(*updated)
	return &resp, nil
}

// SupplierOptions proveedores a elegir al editar la orden: los vinculados a su primer artículo.
func (lc *LifecycleController) SupplierOptions(ctx context.Context, id int64) ([]dto.SupplierOptionResponse, error) {
	o, err := lc.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ordenes: obtener %d: %w", id, err)
	}
	if len(o.Lines) == 0 {
		return []dto.SupplierOptionResponse{}, nil
	}
	return lc.options.SupplierOptions(ctx, o.Lines[0].ArticleID)
}
