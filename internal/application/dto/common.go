package dto

// ErrorResponse cuerpo de error HTTP.
// Fields nombra los campos rechazados por validación; Items los productos sin stock suficiente.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Items   []ShortageItem    `json:"items,omitempty"`
}

// ShortageItem producto que no alcanzó para el pedido.
type ShortageItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}
