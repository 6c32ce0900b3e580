package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerInput datos de contacto capturados en el checkout.
type CustomerInput struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	IDNumber string `json:"id_number" validate:"required,max=30"`
	Phone    string `json:"phone" validate:"required,max=40"`
	Email    string `json:"email" validate:"omitempty,email,max=200"`
	Address  string `json:"address" validate:"omitempty,max=500"`
}

// PaymentInput método de pago. Reference y ReceiptImage solo aplican a pago móvil.
type PaymentInput struct {
	Method       string `json:"method" validate:"required"`
	Reference    string `json:"reference" validate:"max=60"`
	ReceiptImage string `json:"receipt_image"`
}

// OrderItemInput línea del carrito con la copia de precio, nombre e imagen tomada al agregarla.
type OrderItemInput struct {
	ProductID string          `json:"product_id" validate:"required"`
	Name      string          `json:"name" validate:"required,max=300"`
	Quantity  int             `json:"quantity" validate:"min=1,max=1000"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	ImageURL  string          `json:"image_url"`
}

// SubmitOrderRequest entrada del checkout.
type SubmitOrderRequest struct {
	Customer CustomerInput    `json:"customer"`
	Payment  PaymentInput     `json:"payment"`
	Items    []OrderItemInput `json:"items" validate:"min=1,dive"`
}

// SubmitOrderResponse número de pedido que el cliente presenta en caja.
type SubmitOrderResponse struct {
	OrderID   string          `json:"order_id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListOrdersQuery filtros del panel de caja (query string).
type ListOrdersQuery struct {
	Since  time.Time
	Status string
	Limit  int
}

// TransitionStatusRequest cambio de estado; AuthSecret solo se exige al cancelar.
type TransitionStatusRequest struct {
	OrderID    string `json:"-"`
	Status     string `json:"status" validate:"required"`
	AuthSecret string `json:"auth_secret"`
}

// OrderItemResponse línea congelada del pedido.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// StatusEventResponse entrada del historial de estados.
type StatusEventResponse struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ActorID   string    `json:"actor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResponse salida de un pedido para caja.
type OrderResponse struct {
	ID               string                `json:"id"`
	CustomerIDNumber string                `json:"customer_id_number"`
	CustomerName     string                `json:"customer_name"`
	CustomerPhone    string                `json:"customer_phone"`
	Total            decimal.Decimal       `json:"total"`
	PaymentMethod    string                `json:"payment_method"`
	PaymentReference string                `json:"payment_reference,omitempty"`
	ReceiptImage     string                `json:"receipt_image,omitempty"`
	Status           string                `json:"status"`
	NextStatuses     []string              `json:"next_statuses"`
	Items            []OrderItemResponse   `json:"items"`
	History          []StatusEventResponse `json:"history,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// OrderListResponse listado para el panel de caja.
type OrderListResponse struct {
	Items        []OrderResponse `json:"items"`
	PollInterval int             `json:"poll_interval_seconds"`
}
