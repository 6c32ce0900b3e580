package orders

import (
	"context"

	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repo de pedidos atado a esa tx.
type TxRunner interface {
	RunLifecycle(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// StoreInfo datos de la tienda que encabezan el comprobante.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// ReceiptRenderer genera el comprobante de retiro de un pedido (PDF).
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, order *entity.Order, store StoreInfo) ([]byte, error)
}
