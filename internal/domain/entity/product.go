package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un equipo o componente del catálogo de la tienda.
// Stock se descuenta solo al confirmar un pedido o por edición del administrador.
type Product struct {
	ID          string
	Name        string
	Brand       string
	Category    string // etiqueta libre: Laptops, Componentes, Accesorios...
	Price       decimal.Decimal
	Stock       int
	ImageURL    string
	Description string
	Specs       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// InStock indica si queda al menos una unidad disponible.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
