package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zone-laptop/zone-store/internal/application/dto"
)

func TestValidate_NombresJSONYRutas(t *testing.T) {
	in := dto.SubmitOrderRequest{
		Customer: dto.CustomerInput{FullName: "Ana", IDNumber: "V1", Phone: "0414", Email: "no-es-email"},
		Payment:  dto.PaymentInput{Method: "in_store"},
		Items: []dto.OrderItemInput{
			{ProductID: "P1", Name: "Laptop", Quantity: 0, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: "P2", Name: "Mouse", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
		},
	}

	verr := dto.Validate(in)
	require.NotNil(t, verr)

	assert.Equal(t, "no es un email válido", verr.Fields["customer.email"])
	assert.Equal(t, "debe ser mayor o igual a 1", verr.Fields["items[0].quantity"])
	assert.Contains(t, verr.Fields, "items[1].unit_price")
	assert.Len(t, verr.Fields, 3)
}

func TestValidate_CarritoVacio(t *testing.T) {
	verr := dto.Validate(dto.SubmitOrderRequest{
		Customer: dto.CustomerInput{FullName: "Ana", IDNumber: "V1", Phone: "0414"},
		Payment:  dto.PaymentInput{Method: "in_store"},
		Items:    []dto.OrderItemInput{},
	})
	require.NotNil(t, verr)
	assert.Contains(t, verr.Fields, "items")
}

func TestValidate_Valido(t *testing.T) {
	assert.Nil(t, dto.Validate(dto.LoginRequest{Email: "a@b.co", Password: "x"}))
}
