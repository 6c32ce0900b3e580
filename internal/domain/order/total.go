package order

import (
	"github.com/shopspring/decimal"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

// Total suma precio unitario × cantidad sobre la copia de las líneas del pedido.
func Total(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Demand agrupa cantidades por producto; un mismo producto puede aparecer en varias líneas.
func Demand(items []entity.OrderItem) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		out[it.ProductID] += it.Quantity
	}
	return out
}
