package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/order"
)

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
			ImageURL:  it.ImageURL,
		})
	}
	return dto.OrderResponse{
		ID:               o.ID,
		CustomerIDNumber: o.CustomerIDNumber,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		Total:            o.Total,
		PaymentMethod:    o.PaymentMethod,
		PaymentReference: o.PaymentReference,
		ReceiptImage:     o.ReceiptImage,
		Status:           o.Status,
		NextStatuses:     order.NextStatuses(o.Status),
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toEventResponses(events []*entity.OrderStatusEvent) []dto.StatusEventResponse {
	out := make([]dto.StatusEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.StatusEventResponse{
			From:      e.FromStatus,
			To:        e.ToStatus,
			ActorID:   e.ActorID,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// validOrderID los ids de pedido son UUID; cualquier otra cosa no existe.
func validOrderID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
