package repository

import (
	"context"

	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// Upsert inserta o actualiza los datos de contacto en una sola operación atómica por cédula.
	Upsert(ctx context.Context, customer *entity.Customer) error
	GetByIDNumber(ctx context.Context, idNumber string) (*entity.Customer, error)
}
