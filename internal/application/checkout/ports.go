package checkout

import (
	"context"

	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Si fn devuelve error no queda nada escrito: ni cliente, ni pedido, ni descuento de stock.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}
