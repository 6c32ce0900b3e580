package memory

import (
	"context"

	"github.com/zone-laptop/zone-store/internal/application/checkout"
	"github.com/zone-laptop/zone-store/internal/application/orders"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

var _ checkout.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones sobre una copia del Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunCheckout ver checkout.TxRunner.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(v view) error {
		return fn(&CustomerRepo{v: v}, &OrderRepo{v: v}, &ProductRepo{v: v})
	})
}

// RunLifecycle ver orders.TxRunner.
func (r *TxRunner) RunLifecycle(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	return r.inTx(ctx, func(v view) error {
		return fn(&OrderRepo{v: v})
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(v view) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := r.s.state.clone()
	if err := fn(txView{st: work, fail: r.s.fail}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.state = work
	return nil
}
