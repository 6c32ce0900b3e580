package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zone-laptop/zone-store/internal/application/checkout"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/application/orders"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/customer"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/infrastructure/postgres"
	"github.com/zone-laptop/zone-store/pkg/config"
)

// Estas pruebas corren contra una base real: TEST_DATABASE_URL=postgres://... go test ./...
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, stock int) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:        "test-" + uuid.New().String(),
		Name:      "Laptop de prueba",
		Category:  "Laptops",
		Price:     decimal.RequireFromString("100.00"),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(context.Background(), p))
	return p
}

func request(idNumber string, items ...dto.OrderItemInput) dto.SubmitOrderRequest {
	return dto.SubmitOrderRequest{
		Customer: dto.CustomerInput{FullName: "Cliente Prueba", IDNumber: idNumber, Phone: "0414-0000000"},
		Payment:  dto.PaymentInput{Method: entity.PaymentInStore},
		Items:    items,
	}
}

func item(p *entity.Product, qty int) dto.OrderItemInput {
	return dto.OrderItemInput{ProductID: p.ID, Name: p.Name, Quantity: qty, UnitPrice: p.Price}
}

func stockOf(t *testing.T, pool *pgxpool.Pool, id string) int {
	t.Helper()
	p, err := postgres.NewProductRepository(pool).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestCheckout_Postgres_UltimaUnidad(t *testing.T) {
	pool := testPool(t)
	p := seedProduct(t, pool, 1)
	uc := checkout.NewSubmitOrderUseCase(postgres.NewTxRunner(pool), 5*time.Second)

	const buyers = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Submit(context.Background(), request("V"+uuid.New().String()[:8], item(p, 1)))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 0, stockOf(t, pool, p.ID))
}

func TestCheckout_Postgres_FaltanteRevierteTodo(t *testing.T) {
	pool := testPool(t)
	p1 := seedProduct(t, pool, 5)
	p2 := seedProduct(t, pool, 1)
	idNumber := "E" + uuid.New().String()[:8]
	uc := checkout.NewSubmitOrderUseCase(postgres.NewTxRunner(pool), 5*time.Second)

	_, err := uc.Submit(context.Background(), request(idNumber, item(p1, 2), item(p2, 2)))

	var short *domain.InsufficientStockError
	require.True(t, errors.As(err, &short))
	assert.Equal(t, 5, stockOf(t, pool, p1.ID))
	assert.Equal(t, 1, stockOf(t, pool, p2.ID))

	c, err := postgres.NewCustomerRepository(pool).GetByIDNumber(context.Background(), customer.NormalizeIDNumber(idNumber))
	require.NoError(t, err)
	assert.Nil(t, c, "el cliente tampoco se guarda")
}

func TestCheckout_Postgres_UpsertYCicloDeEstados(t *testing.T) {
	pool := testPool(t)
	p := seedProduct(t, pool, 10)
	idNumber := "V" + uuid.New().String()[:8]
	runner := postgres.NewTxRunner(pool)
	uc := checkout.NewSubmitOrderUseCase(runner, 5*time.Second)

	first, err := uc.Submit(context.Background(), request(idNumber, item(p, 1)))
	require.NoError(t, err)
	second := request(idNumber, item(p, 2))
	second.Customer.FullName = "Cliente Renombrado"
	_, err = uc.Submit(context.Background(), second)
	require.NoError(t, err)

	c, err := postgres.NewCustomerRepository(pool).GetByIDNumber(context.Background(), customer.NormalizeIDNumber(idNumber))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Cliente Renombrado", c.FullName)
	assert.Equal(t, 7, stockOf(t, pool, p.ID))

	lifecycle := orders.NewLifecycleUseCase(runner, "", 5*time.Second)
	out, err := lifecycle.TransitionStatus(context.Background(), dto.TransitionStatusRequest{OrderID: first.OrderID, Status: "paid"}, "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, out.Status)

	_, err = lifecycle.TransitionStatus(context.Background(), dto.TransitionStatusRequest{OrderID: first.OrderID, Status: "pending"}, "")
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	got, err := orders.NewOrderUseCase(postgres.NewOrderRepository(pool), 5*time.Second).Get(context.Background(), first.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente Prueba", got.CustomerName, "el pedido guarda la copia del momento")
	require.Len(t, got.History, 1)
	assert.Equal(t, entity.OrderStatusPaid, got.History[0].To)
}
