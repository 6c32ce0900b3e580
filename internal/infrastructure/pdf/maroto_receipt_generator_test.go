package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zone-laptop/zone-store/internal/application/orders"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

func sampleOrder(method string) *entity.Order {
	now := time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)
	return &entity.Order{
		ID:               "3f2c1a9e-7b44-4d0e-9a51-0c6f5e2b8d11",
		CustomerIDNumber: "V12345678",
		CustomerName:     "Ana Pérez",
		CustomerPhone:    "0414-1234567",
		Total:            decimal.RequireFromString("1234.50"),
		PaymentMethod:    method,
		PaymentReference: "00123456",
		Status:           entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{ProductID: "P1", Name: "Laptop Lenovo IdeaPad 3", UnitPrice: decimal.RequireFromString("1200"), Quantity: 1},
			{ProductID: "P2", Name: "Mouse inalámbrico", UnitPrice: decimal.RequireFromString("17.25"), Quantity: 2},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRenderReceipt_GeneraPDF(t *testing.T) {
	g := NewReceiptGenerator()
	store := orders.StoreInfo{Name: "Z-ONE LAPTOP", Address: "El Tigre, Anzoátegui", Phone: "0283-0000000"}

	for _, method := range []string{entity.PaymentInStore, entity.PaymentMobileTransfer} {
		out, err := g.RenderReceipt(context.Background(), sampleOrder(method), store)
		require.NoError(t, err, method)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), method)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$1.234,50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "$1.000.000,00", formatMoney(decimal.NewFromInt(1000000)))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2c1a9e", shortID("3f2c1a9e-7b44-4d0e-9a51-0c6f5e2b8d11"))
}

func TestMaskIDNumber(t *testing.T) {
	assert.Equal(t, "V*****678", maskIDNumber("V12345678"))
	assert.Equal(t, "E****321", maskIDNumber("E7654321"))
	assert.Equal(t, "*****789", maskIDNumber("12345789"))
	assert.Equal(t, "****", maskIDNumber("V123"))
	assert.Equal(t, "", maskIDNumber(""))
}
