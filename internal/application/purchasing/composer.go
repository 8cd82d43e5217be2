package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/application/ports"
	"github.com/jhoicas/inventario-compras/internal/domain"
	"github.com/jhoicas/inventario-compras/pkg/logger"
)

// ActionCreate operación de creación de orden en métricas.
const ActionCreate = "crear"

// Composer arma la selección de artículos de una orden de compra y la envía al servidor.
// Enviar es la única operación con efecto en el servidor; el resto solo cambia el borrador.
type Composer struct {
	store     DraftStore
	articles  ports.ArticleGateway
	orders    ports.PurchaseOrderGateway
	suggester Suggester
	validator *OrderValidator
	guard     *KeyedGuard
	metrics   OperationRecorder
	log       *logger.Logger
	now       func() time.Time
	lease     time.Duration
}

// DefaultSubmitLease plazo máximo de un envío.
const DefaultSubmitLease = 2 * time.Minute

// restoreAttempts intentos de guardar el borrador tras un envío fallido.
const restoreAttempts = 3

// ComposerOption configura dependencias opcionales del compositor.
type ComposerOption func(*Composer)

// WithComposerMetrics registra cada envío.
func WithComposerMetrics(r OperationRecorder) ComposerOption {
	return func(c *Composer) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithSubmitLease fija el plazo máximo de un envío. Un borrador que sigue en Enviando
// después del plazo vuelve a Componiendo en la siguiente operación.
func WithSubmitLease(d time.Duration) ComposerOption {
	return func(c *Composer) {
		if d > 0 {
			c.lease = d
		}
	}
}

// WithClock reemplaza el reloj (pruebas).
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) { c.now = now }
}

// NewComposer construye el compositor de órdenes.
func NewComposer(
	store DraftStore,
	gw ports.Gateway,
	suggester Suggester,
	validator *OrderValidator,
	guard *KeyedGuard,
	log *logger.Logger,
	opts ...ComposerOption,
) *Composer {
	c := &Composer{
		store:     store,
		articles:  gw,
		orders:    gw,
		suggester: suggester,
		validator: validator,
		guard:     guard,
		metrics:   nopRecorder{},
		log:       log.Component("composer"),
		now:       time.Now,
		lease:     DefaultSubmitLease,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func draftKey(id string) string { return "borrador:" + id }

// NewDraft crea un borrador vacío.
func (c *Composer) NewDraft(ctx context.Context) (*dto.DraftResponse, error) {
	d := &Draft{ID: uuid.NewString(), State: DraftEmpty, UpdatedAt: c.now()}
	if err := c.store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("composer: guardar borrador: %w", err)
	}
	out := ToDraftResponse(d)
	return &out, nil
}

// GetDraft devuelve el borrador. Un envío vencido se informa como Componiendo.
func (c *Composer) GetDraft(ctx context.Context, draftID string) (*dto.DraftResponse, error) {
	d, err := c.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	d.recoverAbandoned(c.now(), c.lease)
	out := ToDraftResponse(d)
	return &out, nil
}

// mutate ejecuta fn sobre el borrador con la clave tomada y lo guarda si fn no falla.
// Si fn falla el borrador almacenado no cambia.
func (c *Composer) mutate(ctx context.Context, draftID string, fn func(d *Draft) error) (*dto.DraftResponse, error) {
	release, err := c.guard.Acquire(draftKey(draftID))
	if err != nil {
		return nil, err
	}
	defer release()

	d, err := c.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.inFlight(c.now(), c.lease) {
		return nil, domain.ErrOperationInFlight
	}
	work := d.Clone()
	if work.recoverAbandoned(c.now(), c.lease) {
		c.log.Warn().Str("draft_id", d.ID).Msg("envío vencido, borrador vuelve a componiendo")
	}
	if err := fn(work); err != nil {
		return nil, err
	}
	work.UpdatedAt = c.now()
	if err := c.store.Save(ctx, work); err != nil {
		return nil, fmt.Errorf("composer: guardar borrador: %w", err)
	}
	out := ToDraftResponse(work)
	return &out, nil
}

// AddArticle agrega el artículo al borrador o reemplaza su cantidad si ya estaba.
// Con quantity 0 se usa la cantidad sugerida; si no hay sugerencia se devuelve el motivo.
// Antes de modificar el borrador verifica el proveedor predeterminado y que no exista
// una orden activa con ese proveedor. El inventario máximo se revisa al enviar.
// El primer artículo fija el proveedor de la orden.
func (c *Composer) AddArticle(ctx context.Context, draftID string, articleID int64, quantity int) (*dto.DraftResponse, error) {
	if quantity < 0 {
		return nil, &domain.FieldError{Field: "quantity", Rule: "gte", Param: "0"}
	}
	return c.mutate(ctx, draftID, func(d *Draft) error {
		a, err := c.articles.GetArticle(ctx, articleID)
		if err != nil {
			return fmt.Errorf("composer: artículo %d: %w", articleID, err)
		}
		if !a.HasDefaultSupplier() {
			c.log.Info().Int64("article_id", a.ID).Str("draft_id", d.ID).Msg("artículo sin proveedor predeterminado")
			return &domain.ConfigurationWarning{ArticleID: a.ID, ArticleName: a.Name}
		}

		suggested := false
		if quantity == 0 {
			s, _, err := c.suggester.Suggest(ctx, articleID)
			if err != nil {
				return err
			}
			if !s.OK() {
				return s.Err()
			}
			quantity, suggested = s.Quantity, true
		}

		if err := c.validator.CheckDuplicate(ctx, *a); err != nil {
			var dup *domain.DuplicateActiveOrderWarning
			if errors.As(err, &dup) {
				c.log.Info().Int64("article_id", a.ID).Int64("order_id", dup.OrderID).Msg("artículo con orden activa")
			}
			return err
		}

		line := DraftLine{
			ArticleID:         a.ID,
			ArticleName:       a.Name,
			Quantity:          quantity,
			DefaultSupplierID: a.DefaultSupplierID,
			Suggested:         suggested,
		}
		if i := d.indexOf(a.ID); i >= 0 {
			d.Lines[i] = line
		} else {
			d.Lines = append(d.Lines, line)
		}
		if d.State == DraftEmpty {
			d.State = DraftComposing
			d.SupplierID = a.DefaultSupplierID
		}
		d.LastError = ""
		return nil
	})
}

// SetQuantity cambia la cantidad de un artículo ya seleccionado.
func (c *Composer) SetQuantity(ctx context.Context, draftID string, articleID int64, quantity int) (*dto.DraftResponse, error) {
	if quantity <= 0 {
		return nil, &domain.FieldError{Field: "quantity", Rule: "gt", Param: "0"}
	}
	return c.mutate(ctx, draftID, func(d *Draft) error {
		i := d.indexOf(articleID)
		if i < 0 {
			return &domain.NotFoundError{Resource: "artículo", ID: articleID, Reason: "no está en el borrador"}
		}
		d.Lines[i].Quantity = quantity
		d.Lines[i].Suggested = false
		return nil
	})
}

// RemoveArticle quita un artículo. Sin artículos el borrador vuelve a Vacío y libera el proveedor.
func (c *Composer) RemoveArticle(ctx context.Context, draftID string, articleID int64) (*dto.DraftResponse, error) {
	return c.mutate(ctx, draftID, func(d *Draft) error {
		i := d.indexOf(articleID)
		if i < 0 {
			return &domain.NotFoundError{Resource: "artículo", ID: articleID, Reason: "no está en el borrador"}
		}
		d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
		if len(d.Lines) == 0 {
			d.reset()
		}
		return nil
	})
}

// Discard elimina el borrador.
func (c *Composer) Discard(ctx context.Context, draftID string) error {
	release, err := c.guard.Acquire(draftKey(draftID))
	if err != nil {
		return err
	}
	defer release()
	if _, err := c.store.Get(ctx, draftID); err != nil {
		return err
	}
	return c.store.Delete(ctx, draftID)
}

// restore guarda el borrador tras un envío fallido, con reintentos. Si todos fallan el
// borrador queda en Enviando hasta que venza el plazo del envío.
func (c *Composer) restore(ctx context.Context, d *Draft) {
	var err error
	for attempt := 1; attempt <= restoreAttempts; attempt++ {
		if err = c.store.Save(ctx, d); err == nil {
			return
		}
		c.log.Warn().Err(err).Str("draft_id", d.ID).Int("attempt", attempt).Msg("reintento al restaurar el borrador")
	}
	c.log.Error().Err(err).Str("draft_id", d.ID).Dur("lease", c.lease).Msg("no se pudo restaurar el borrador")
}

// Submit valida la selección con datos frescos y crea la orden con el proveedor fijado.
// Si la validación o el servidor fallan el borrador queda en Componiendo con la selección
// intacta y el error en LastError. Si la orden se crea el borrador vuelve a Vacío.
func (c *Composer) Submit(ctx context.Context, draftID string) (out *dto.PurchaseOrderResponse, err error) {
	release, err := c.guard.Acquire(draftKey(draftID))
	if err != nil {
		return nil, err
	}
	defer release()
	defer func() { c.metrics.ObserveOrderOperation(ActionCreate, err) }()

	d, err := c.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.inFlight(c.now(), c.lease) {
		return nil, domain.ErrOperationInFlight
	}
	if d.recoverAbandoned(c.now(), c.lease) {
		c.log.Warn().Str("draft_id", d.ID).Msg("envío vencido, borrador vuelve a componiendo")
	}
	switch d.State {
	case DraftEmpty:
		errs := &domain.ValidationErrors{}
		errs.Add(fmt.Errorf("%w: la orden debe tener al menos un artículo", domain.ErrInvalidInput))
		return nil, errs
	}

	since := c.now()
	d.State = DraftSubmitting
	d.SubmittingSince = &since
	d.UpdatedAt = since
	if err := c.store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("composer: guardar borrador: %w", err)
	}

	// el envío no puede durar más que el plazo; vencido, otro proceso puede recuperar el borrador
	ctx, cancel := context.WithTimeout(ctx, c.lease)
	defer cancel()

	// el borrador debe volver a un estado estable aunque se cancele la petición
	persist := context.WithoutCancel(ctx)
	fail := func(cause error) error {
		d.State = DraftComposing
		d.SubmittingSince = nil
		d.LastError = cause.Error()
		d.UpdatedAt = c.now()
		c.restore(persist, d)
		return cause
	}

	inputs := d.Inputs()
	if err := c.validator.Validate(ctx, inputs, 0); err != nil {
		c.log.Info().Str("draft_id", d.ID).Err(err).Msg("envío rechazado")
		return nil, fail(err)
	}

	order, err := c.orders.CreateOrder(ctx, d.SupplierID, inputs)
	if err != nil {
		c.log.Warn().Str("draft_id", d.ID).Err(err).Msg("el servidor rechazó la orden")
		return nil, fail(fmt.Errorf("composer: crear orden: %w", err))
	}

	d.reset()
	d.UpdatedAt = c.now()
	if err := c.store.Save(persist, d); err != nil {
		c.log.Error().Err(err).Str("draft_id", d.ID).Int64("order_id", order.ID).Msg("orden creada pero no se pudo vaciar el borrador")
	}
	c.log.Info().Str("draft_id", d.ID).Int64("order_id", order.ID).Int64("supplier_id", order.SupplierID).Msg("orden de compra creada")

	resp := dto.ToPurchaseOrderResponse(*order)
	return &resp, nil
}
