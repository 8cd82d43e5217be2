package dto

// PageRequest paginación para listados. El servidor devuelve listas completas;
// la página se corta en este servicio.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Bounds devuelve los índices [from, to) para una lista de n elementos.
func (p PageRequest) Bounds(n int) (int, int) {
	from := p.Offset
	if from > n {
		from = n
	}
	to := from + p.Limit
	if to > n {
		to = n
	}
	return from, to
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorDetail una falla puntual dentro de un error de validación.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ArticleID int64  `json:"article_id,omitempty"`
	OrderID   int64  `json:"order_id,omitempty"`
	Field     string `json:"field,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}
