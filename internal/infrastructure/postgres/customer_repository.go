package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Upsert inserta el cliente o actualiza sus datos de contacto si la cédula ya existe.
// created_at se conserva del primer pedido.
func (r *CustomerRepo) Upsert(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (id_number, full_name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (id_number) DO UPDATE SET
			full_name  = EXCLUDED.full_name,
			email      = EXCLUDED.email,
			phone      = EXCLUDED.phone,
			address    = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		c.IDNumber, c.FullName, c.Email, c.Phone, c.Address, c.UpdatedAt,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert customer: %w", translate(err))
	}
	return nil
}

// GetByIDNumber obtiene un cliente por cédula. nil, nil si no existe.
func (r *CustomerRepo) GetByIDNumber(ctx context.Context, idNumber string) (*entity.Customer, error) {
	query := `
		SELECT id_number, full_name, email, phone, address, created_at, updated_at
		FROM customers WHERE id_number = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, idNumber).Scan(
		&c.IDNumber, &c.FullName, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", translate(err))
	}
	return &c, nil
}
