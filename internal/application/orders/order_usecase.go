package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/order"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// OrderUseCase lectura de pedidos para el panel de caja.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	timeout   time.Duration
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository, timeout time.Duration) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, timeout: timeout}
}

// List pedidos del más reciente al más antiguo. Since permite pedir solo lo nuevo desde el último refresco.
func (uc *OrderUseCase) List(ctx context.Context, in dto.ListOrdersQuery) ([]dto.OrderResponse, error) {
	filter := repository.OrderFilter{Since: in.Since, Limit: in.Limit}
	if in.Status != "" {
		status, ok := order.ParseStatus(in.Status)
		if !ok {
			verr := domain.NewValidationError()
			verr.Add("status", "estado desconocido")
			return nil, verr
		}
		filter.Status = status
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()
	list, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// Get pedido con su historial de estados.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	if !validOrderID(id) {
		return nil, domain.ErrNotFound
	}
	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	o, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	events, err := uc.orderRepo.ListStatusEvents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("historial del pedido: %w", err)
	}
	out := toOrderResponse(o)
	out.History = toEventResponses(events)
	return &out, nil
}
