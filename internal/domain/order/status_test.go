package order_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/order"
)

var allStatuses = []string{
	entity.OrderStatusPending,
	entity.OrderStatusPaid,
	entity.OrderStatusDelivered,
	entity.OrderStatusCanceled,
}

// ──────────────────────────────────────────────────────────────────────────────
// Diagrama de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_TablaCompleta(t *testing.T) {
	allowed := map[[2]string]bool{
		{entity.OrderStatusPending, entity.OrderStatusPaid}:     true,
		{entity.OrderStatusPending, entity.OrderStatusCanceled}: true,
		{entity.OrderStatusPaid, entity.OrderStatusDelivered}:   true,
		{entity.OrderStatusPaid, entity.OrderStatusCanceled}:    true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, order.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCheckTransition_DevuelveErrorTipado(t *testing.T) {
	err := order.CheckTransition(entity.OrderStatusDelivered, entity.OrderStatusPaid)

	var ill *domain.IllegalTransitionError
	assert.True(t, errors.As(err, &ill))
	assert.Equal(t, entity.OrderStatusDelivered, ill.From)
	assert.Equal(t, entity.OrderStatusPaid, ill.To)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	assert.NoError(t, order.CheckTransition(entity.OrderStatusPending, entity.OrderStatusPaid))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, order.IsTerminal(entity.OrderStatusPending))
	assert.False(t, order.IsTerminal(entity.OrderStatusPaid))
	assert.True(t, order.IsTerminal(entity.OrderStatusDelivered))
	assert.True(t, order.IsTerminal(entity.OrderStatusCanceled))
}

func TestNextStatuses_TerminalesSinSalida(t *testing.T) {
	assert.ElementsMatch(t, []string{entity.OrderStatusPaid, entity.OrderStatusCanceled}, order.NextStatuses(entity.OrderStatusPending))
	assert.ElementsMatch(t, []string{entity.OrderStatusDelivered, entity.OrderStatusCanceled}, order.NextStatuses(entity.OrderStatusPaid))
	assert.Empty(t, order.NextStatuses(entity.OrderStatusDelivered))
	assert.Empty(t, order.NextStatuses(entity.OrderStatusCanceled))
}

func TestNextStatuses_CopiaIndependiente(t *testing.T) {
	next := order.NextStatuses(entity.OrderStatusPending)
	next[0] = "x"
	assert.True(t, order.CanTransition(entity.OrderStatusPending, entity.OrderStatusPaid))
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"pending", entity.OrderStatusPending, true},
		{" PAID ", entity.OrderStatusPaid, true},
		{"pendiente", entity.OrderStatusPending, true},
		{"Pagado", entity.OrderStatusPaid, true},
		{"entregado", entity.OrderStatusDelivered, true},
		{"cancelado", entity.OrderStatusCanceled, true},
		{"cancelled", entity.OrderStatusCanceled, true},
		{"", "", false},
		{"shipped", "", false},
	}
	for _, tc := range cases {
		got, ok := order.ParseStatus(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
