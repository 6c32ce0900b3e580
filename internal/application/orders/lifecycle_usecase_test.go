package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/application/orders"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/infrastructure/memory"
)

const (
	cancelSecret = "clave-gerente"
	cashierID    = "7d1f0c52-2a7b-4c1e-8f3e-5b9d2a6c4e10"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func cancelHash(t *testing.T) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(cancelSecret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func seedOrder(s *memory.Store, status string, createdAt time.Time) entity.Order {
	o := entity.Order{
		ID:               uuid.New().String(),
		CustomerIDNumber: "V12345678",
		CustomerName:     "Ana Pérez",
		CustomerPhone:    "0414-1234567",
		Total:            decimal.NewFromInt(200),
		PaymentMethod:    entity.PaymentInStore,
		Status:           status,
		Items: []entity.OrderItem{
			{ProductID: "P1", Name: "Laptop", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.SeedOrders(o)
	return o
}

func newLifecycle(t *testing.T, s *memory.Store) *orders.LifecycleUseCase {
	return orders.NewLifecycleUseCase(memory.NewTxRunner(s), cancelHash(t), time.Second)
}

func transition(uc *orders.LifecycleUseCase, id, status, secret string) (*dto.OrderResponse, error) {
	return uc.TransitionStatus(context.Background(), dto.TransitionStatusRequest{
		OrderID: id, Status: status, AuthSecret: secret,
	}, cashierID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_CicloCompleto(t *testing.T) {
	s := memory.NewStore()
	o := seedOrder(s, entity.OrderStatusPending, time.Now().UTC())
	uc := newLifecycle(t, s)

	out, err := transition(uc, o.ID, "paid", "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, out.Status)
	assert.ElementsMatch(t, []string{entity.OrderStatusDelivered, entity.OrderStatusCanceled}, out.NextStatuses)

	out, err = transition(uc, o.ID, "entregado", "")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, out.Status)
	assert.Empty(t, out.NextStatuses)

	snap := s.Snapshot()
	assert.Equal(t, entity.OrderStatusDelivered, snap.Orders[o.ID].Status)
	require.Len(t, snap.Events, 2)
	assert.Equal(t, entity.OrderStatusPending, snap.Events[0].FromStatus)
	assert.Equal(t, entity.OrderStatusPaid, snap.Events[0].ToStatus)
	assert.Equal(t, cashierID, snap.Events[0].ActorID)
	assert.Equal(t, entity.OrderStatusDelivered, snap.Events[1].ToStatus)
}

func TestTransition_Ilegal_NoCambiaNada(t *testing.T) {
	cases := []struct {
		from, to string
	}{
		{entity.OrderStatusPending, entity.OrderStatusDelivered},
		{entity.OrderStatusPaid, entity.OrderStatusPending},
		{entity.OrderStatusDelivered, entity.OrderStatusPaid},
		{entity.OrderStatusDelivered, entity.OrderStatusCanceled},
		{entity.OrderStatusCanceled, entity.OrderStatusPaid},
		{entity.OrderStatusPending, entity.OrderStatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			s := memory.NewStore()
			o := seedOrder(s, tc.from, time.Now().UTC())
			before := s.Snapshot()

			_, err := transition(newLifecycle(t, s), o.ID, tc.to, cancelSecret)

			var ill *domain.IllegalTransitionError
			require.True(t, errors.As(err, &ill), "llegó %v", err)
			assert.Equal(t, tc.from, ill.From)
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestTransition_EstadoDesconocido_Validacion(t *testing.T) {
	s := memory.NewStore()
	o := seedOrder(s, entity.OrderStatusPending, time.Now().UTC())

	_, err := transition(newLifecycle(t, s), o.ID, "shipped", "")

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "status")
}

func TestTransition_PedidoInexistente(t *testing.T) {
	uc := newLifecycle(t, memory.NewStore())

	_, err := transition(uc, uuid.New().String(), "paid", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = transition(uc, "no-es-uuid", "paid", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación con clave de gerente
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_ClaveCorrecta(t *testing.T) {
	for _, from := range []string{entity.OrderStatusPending, entity.OrderStatusPaid} {
		s := memory.NewStore()
		o := seedOrder(s, from, time.Now().UTC())

		out, err := transition(newLifecycle(t, s), o.ID, "canceled", cancelSecret)
		require.NoError(t, err, from)
		assert.Equal(t, entity.OrderStatusCanceled, out.Status)
	}
}

func TestCancel_ClaveIncorrectaOVacia(t *testing.T) {
	for _, secret := range []string{"", "otra-clave"} {
		s := memory.NewStore()
		o := seedOrder(s, entity.OrderStatusPending, time.Now().UTC())
		before := s.Snapshot()

		_, err := transition(newLifecycle(t, s), o.ID, "canceled", secret)

		assert.ErrorIs(t, err, domain.ErrInvalidSecret, "secret %q", secret)
		assert.Equal(t, before, s.Snapshot())
	}
}

func TestCancel_SinHashConfigurado_RechazaSiempre(t *testing.T) {
	s := memory.NewStore()
	o := seedOrder(s, entity.OrderStatusPending, time.Now().UTC())
	uc := orders.NewLifecycleUseCase(memory.NewTxRunner(s), "", time.Second)

	_, err := transition(uc, o.ID, "canceled", cancelSecret)

	assert.ErrorIs(t, err, domain.ErrInvalidSecret)
}

func TestCancel_NoDevuelveStock(t *testing.T) {
	s := memory.NewStore()
	s.SeedProducts(entity.Product{ID: "P1", Name: "Laptop", Price: decimal.NewFromInt(100), Stock: 3})
	o := seedOrder(s, entity.OrderStatusPending, time.Now().UTC())

	_, err := transition(newLifecycle(t, s), o.ID, "canceled", cancelSecret)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Snapshot().Products["P1"].Stock)
}

func TestTransition_FallaAuditoria_Revierte(t *testing.T) {
	s := memory.NewStore()
	o := seedOrder(s, entity.OrderStatusPending, time.Now().UTC())
	s.FailOn("order.add_event", errors.New("sin conexión"))

	_, err := transition(newLifecycle(t, s), o.ID, "paid", "")

	require.Error(t, err)
	assert.Equal(t, entity.OrderStatusPending, s.Snapshot().Orders[o.ID].Status)
}
