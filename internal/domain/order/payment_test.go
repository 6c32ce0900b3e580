package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/order"
)

func TestParsePaymentMethod(t *testing.T) {
	cases := map[string]string{
		"in_store":        entity.PaymentInStore,
		"tienda":          entity.PaymentInStore,
		"Store":           entity.PaymentInStore,
		"mobile_transfer": entity.PaymentMobileTransfer,
		"pago_movil":      entity.PaymentMobileTransfer,
		"PagoMovil":       entity.PaymentMobileTransfer,
	}
	for in, want := range cases {
		got, ok := order.ParsePaymentMethod(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"efectivo", "", "   "} {
		_, ok := order.ParsePaymentMethod(in)
		assert.False(t, ok, "%q", in)
	}
}

func TestValidReference(t *testing.T) {
	assert.True(t, order.ValidReference("0123"))
	assert.True(t, order.ValidReference("AB12cd"))
	assert.False(t, order.ValidReference("123"), "menos de 4 caracteres")
	assert.False(t, order.ValidReference("12-34"), "solo letras y dígitos")
	assert.False(t, order.ValidReference("ñandú"))
	assert.False(t, order.ValidReference(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Total y demanda
// ──────────────────────────────────────────────────────────────────────────────

func TestTotal_SumaSubtotales(t *testing.T) {
	items := []entity.OrderItem{
		{ProductID: "P1", UnitPrice: decimal.RequireFromString("100"), Quantity: 2},
		{ProductID: "P2", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3},
	}
	assert.Equal(t, "259.97", order.Total(items).StringFixed(2))
	assert.True(t, order.Total(nil).IsZero())
}

func TestDemand_AgrupaLineasRepetidas(t *testing.T) {
	items := []entity.OrderItem{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
		{ProductID: "P1", Quantity: 3},
	}
	assert.Equal(t, map[string]int{"P1": 5, "P2": 1}, order.Demand(items))
}
