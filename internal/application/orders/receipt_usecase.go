package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

// ReceiptUseCase comprobante de retiro que el cliente presenta en caja.
type ReceiptUseCase struct {
	orderRepo repository.OrderRepository
	renderer  ReceiptRenderer
	store     StoreInfo
	timeout   time.Duration
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orderRepo repository.OrderRepository, renderer ReceiptRenderer, store StoreInfo, timeout time.Duration) *ReceiptUseCase {
	return &ReceiptUseCase{orderRepo: orderRepo, renderer: renderer, store: store, timeout: timeout}
}

// Download devuelve el PDF del pedido y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) Download(ctx context.Context, id string) ([]byte, string, error) {
	if !validOrderID(id) {
		return nil, "", domain.ErrNotFound
	}
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener pedido: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	pdf, err := uc.renderer.RenderReceipt(ctx, o, uc.store)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("pedido_%s.pdf", shortID(o.ID)), nil
}

// shortID primeros 8 caracteres del UUID, el número que se dicta en caja.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
