package repository

import (
	"context"

	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

// ProductFilter filtros de listado del catálogo.
type ProductFilter struct {
	InStockOnly bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// Update reemplaza los atributos, incluido el stock (valor absoluto).
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// DecrementStock descuenta qty solo si hay existencias suficientes.
	// Devuelve domain.ErrNotFound si el producto no existe y *domain.InsufficientStockError si no alcanza.
	DecrementStock(ctx context.Context, productID string, qty int) error
}
