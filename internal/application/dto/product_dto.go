package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto (administración del catálogo).
type ProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Brand       string          `json:"brand" validate:"max=100"`
	Category    string          `json:"category" validate:"required,max=100"`
	Price       decimal.Decimal `json:"price" validate:"min=0"`
	Stock       int             `json:"stock" validate:"min=0"`
	ImageURL    string          `json:"image_url" validate:"max=1000"`
	Description string          `json:"description"`
	Specs       []string        `json:"specs"`
}

// ListProductsQuery filtro del catálogo público.
type ListProductsQuery struct {
	InStockOnly bool
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"in_stock"`
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
	Specs       []string        `json:"specs"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado del catálogo.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
