package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/application/orders"
)

// scriptedLister devuelve una respuesta distinta en cada consulta; después repite la última.
type scriptedLister struct {
	mu      sync.Mutex
	calls   int
	results [][]dto.OrderResponse
	errs    []error
	queries []dto.ListOrdersQuery
}

func (l *scriptedLister) List(_ context.Context, in dto.ListOrdersQuery) ([]dto.OrderResponse, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.calls
	if i >= len(l.results) {
		i = len(l.results) - 1
	}
	l.calls++
	l.queries = append(l.queries, in)
	var err error
	if i < len(l.errs) {
		err = l.errs[i]
	}
	return l.results[i], err
}

func (l *scriptedLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestWatcher_EntregaCadaPedidoUnaVez(t *testing.T) {
	defer goleak.VerifyNone(t)

	start := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	a := dto.OrderResponse{ID: "a", CreatedAt: start.Add(1 * time.Second)}
	b := dto.OrderResponse{ID: "b", CreatedAt: start.Add(2 * time.Second)}
	c := dto.OrderResponse{ID: "c", CreatedAt: start.Add(3 * time.Second)}
	lister := &scriptedLister{
		results: [][]dto.OrderResponse{
			{b, a},
			nil,
			{c, b, a},
		},
		errs: []error{nil, errors.New("sin conexión")},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan error, 1)
	go func() {
		done <- orders.NewWatcher(lister, 5*time.Millisecond, start).Run(ctx, func(o dto.OrderResponse) {
			mu.Lock()
			got = append(got, o.ID)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool { return lister.callCount() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "c"}, got, "del más antiguo al más reciente, sin repetir")
}

func TestWatcher_ConsultaConSolape(t *testing.T) {
	defer goleak.VerifyNone(t)

	start := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	lister := &scriptedLister{results: [][]dto.OrderResponse{nil}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- orders.NewWatcher(lister, time.Hour, start).Run(ctx, func(dto.OrderResponse) {})
	}()

	require.Eventually(t, func() bool { return lister.callCount() >= 1 }, time.Second, time.Millisecond)
	cancel()
	<-done

	lister.mu.Lock()
	defer lister.mu.Unlock()
	assert.True(t, lister.queries[0].Since.Before(start), "la consulta retrocede para no perder pedidos confirmados tarde")
	assert.Positive(t, lister.queries[0].Limit)
}
