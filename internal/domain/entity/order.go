package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderStatusPending   = "pending"   // creado en checkout, sin pago confirmado
	OrderStatusPaid      = "paid"      // pago verificado en caja
	OrderStatusDelivered = "delivered" // terminal
	OrderStatusCanceled  = "canceled"  // terminal
)

// Métodos de pago.
const (
	PaymentInStore        = "in_store"
	PaymentMobileTransfer = "mobile_transfer"
)

// OrderItem es la copia congelada de una línea del carrito al momento de la compra.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// Subtotal precio unitario por cantidad.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order representa una compra. Los datos del cliente se copian al crearla y Items no cambia después.
type Order struct {
	ID               string
	CustomerIDNumber string
	CustomerName     string
	CustomerPhone    string
	Total            decimal.Decimal
	PaymentMethod    string
	PaymentReference string
	ReceiptImage     string // comprobante de pago (URL o data URI)
	Status           string
	Items            []OrderItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderStatusEvent registro de auditoría de un cambio de estado.
type OrderStatusEvent struct {
	ID         string
	OrderID    string
	FromStatus string
	ToStatus   string
	ActorID    string // usuario que aplicó el cambio
	CreatedAt  time.Time
}
