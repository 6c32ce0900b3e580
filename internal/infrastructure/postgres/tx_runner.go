package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zone-laptop/zone-store/internal/application/checkout"
	"github.com/zone-laptop/zone-store/internal/application/orders"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

// Ensure TxRunner implements checkout.TxRunner and orders.TxRunner.
var _ checkout.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCheckout abre una transacción con los repos de clientes, pedidos y productos.
// Cualquier error de fn (o del commit) deshace todo.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewCustomerRepository(tx), NewOrderRepository(tx), NewProductRepository(tx))
	})
}

// RunLifecycle abre una transacción con el repo de pedidos (cambio de estado + auditoría).
func (r *TxRunner) RunLifecycle(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", translate(err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", translate(err))
	}
	return nil
}
