package repository

import (
	"context"
	"time"

	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

// OrderFilter filtros del listado de caja. Since vacío lista todo.
type OrderFilter struct {
	Since  time.Time
	Status string
	Limit  int
}

// OrderRepository define el puerto de persistencia para Order y su historial de estados.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// List ordena del más reciente al más antiguo.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// UpdateStatus aplica el cambio solo si el estado actual sigue siendo from; false si no coincidió.
	UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error)
	AddStatusEvent(ctx context.Context, event *entity.OrderStatusEvent) error
	ListStatusEvents(ctx context.Context, orderID string) ([]*entity.OrderStatusEvent, error)
}
