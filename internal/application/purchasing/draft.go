package purchasing

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-compras/internal/application/dto"
	"github.com/jhoicas/inventario-compras/internal/domain/entity"
)

// DraftState estado de un borrador de orden de compra.
type DraftState string

const (
	DraftEmpty      DraftState = "VACIO"
	DraftComposing  DraftState = "COMPONIENDO"
	DraftSubmitting DraftState = "ENVIANDO"
)

// DraftLine artículo seleccionado en un borrador.
type DraftLine struct {
	ArticleID         int64  `json:"article_id"`
	ArticleName       string `json:"article_name"`
	Quantity          int    `json:"quantity"`
	DefaultSupplierID int64  `json:"default_supplier_id"`
	Suggested         bool   `json:"suggested"`
}

// Draft selección en curso antes de crear la orden en el servidor.
// SupplierID queda fijado por el primer artículo agregado.
// SubmittingSince marca el inicio de un envío; pasado el plazo del envío el estado
// Enviando se considera abandonado.
type Draft struct {
	ID              string      `json:"id"`
	State           DraftState  `json:"state"`
	SupplierID      int64       `json:"supplier_id"`
	Lines           []DraftLine `json:"lines"`
	LastError       string      `json:"last_error,omitempty"`
	SubmittingSince *time.Time  `json:"submitting_since,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Clone copia profunda; los stores nunca comparten slices con el llamador.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Lines = append([]DraftLine(nil), d.Lines...)
	if d.SubmittingSince != nil {
		since := *d.SubmittingSince
		c.SubmittingSince = &since
	}
	return &c
}

// inFlight indica si hay un envío vigente a la hora now.
func (d *Draft) inFlight(now time.Time, lease time.Duration) bool {
	if d.State != DraftSubmitting {
		return false
	}
	return d.SubmittingSince != nil && now.Sub(*d.SubmittingSince) < lease
}

// recoverAbandoned devuelve a Componiendo un envío vencido. Reporta si cambió algo.
func (d *Draft) recoverAbandoned(now time.Time, lease time.Duration) bool {
	if d.State != DraftSubmitting || d.inFlight(now, lease) {
		return false
	}
	d.State = DraftComposing
	d.SubmittingSince = nil
	d.LastError = "el envío anterior no terminó; revise la selección y vuelva a enviar"
	return true
}

func (d *Draft) indexOf(articleID int64) int {
	for i, l := range d.Lines {
		if l.ArticleID == articleID {
			return i
		}
	}
	return -1
}

// reset vuelve el borrador a Vacío y libera el proveedor.
func (d *Draft) reset() {
	d.State = DraftEmpty
	d.SupplierID = 0
	d.Lines = nil
	d.LastError = ""
	d.SubmittingSince = nil
}

// Inputs pares artículo-cantidad para el servidor.
func (d *Draft) Inputs() []entity.OrderLineInput {
	out := make([]entity.OrderLineInput, 0, len(d.Lines))
	for _, l := range d.Lines {
		out = append(out, entity.OrderLineInput{ArticleID: l.ArticleID, Quantity: l.Quantity})
	}
	return out
}

// DraftStore persistencia de borradores. Get devuelve un error que cumple
// errors.Is(err, domain.ErrNotFound) si el borrador no existe o expiró.
type DraftStore interface {
	Get(ctx context.Context, id string) (*Draft, error)
	Save(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, id string) error
}

// ToDraftResponse mapea un borrador a su salida HTTP.
func ToDraftResponse(d *Draft) dto.DraftResponse {
	lines := make([]dto.DraftLineResponse, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, dto.DraftLineResponse{
			ArticleID:         l.ArticleID,
			ArticleName:       l.ArticleName,
			Quantity:          l.Quantity,
			DefaultSupplierID: l.DefaultSupplierID,
			Suggested:         l.Suggested,
		})
	}
	return dto.DraftResponse{
		ID:         d.ID,
		State:      string(d.State),
		SupplierID: d.SupplierID,
		Lines:      lines,
		LastError:  d.LastError,
		UpdatedAt:  d.UpdatedAt,
	}
}
