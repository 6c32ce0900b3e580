package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain"
)

// Contratos mínimos que usa el handler; los implementan los casos de uso de checkout y orders.
type (
	orderSubmitter interface {
		Submit(ctx context.Context, in dto.SubmitOrderRequest) (*dto.SubmitOrderResponse, error)
	}
	orderReader interface {
		List(ctx context.Context, in dto.ListOrdersQuery) ([]dto.OrderResponse, error)
		Get(ctx context.Context, id string) (*dto.OrderResponse, error)
	}
	statusChanger interface {
		TransitionStatus(ctx context.Context, in dto.TransitionStatusRequest, actorID string) (*dto.OrderResponse, error)
	}
	receiptProvider interface {
		Download(ctx context.Context, id string) ([]byte, string, error)
	}
)

// OrderHandler checkout público y gestión de pedidos en caja.
type OrderHandler struct {
	submit       orderSubmitter
	reader       orderReader
	lifecycle    statusChanger
	receipts     receiptProvider
	pollInterval time.Duration
}

// NewOrderHandler construye el handler. pollInterval es el refresco sugerido al panel de caja.
func NewOrderHandler(submit orderSubmitter, reader orderReader, lifecycle statusChanger, receipts receiptProvider, pollInterval time.Duration) *OrderHandler {
	return &OrderHandler{
		submit:       submit,
		reader:       reader,
		lifecycle:    lifecycle,
		receipts:     receipts,
		pollInterval: pollInterval,
	}
}

// Submit godoc
// @Summary      Confirmar compra (checkout)
// @Description  Registra cliente, pedido pendiente y descuento de stock en una sola transacción.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitOrderRequest  true  "Cliente, pago y carrito"
// @Success      201   {object}  dto.SubmitOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.submit.Submit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Location("/api/orders/" + out.OrderID)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos (caja)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        since   query  string  false  "RFC3339; solo pedidos posteriores"
// @Param        status  query  string  false  "pending | paid | delivered | canceled"
// @Param        limit   query  int     false  "Máximo de pedidos"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	q := dto.ListOrdersQuery{Status: c.Query("status")}
	if s := c.Query("since"); s != "" {
		since, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return writeError(c, fieldError("since", "debe ser una fecha RFC3339"))
		}
		q.Since = since
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return writeError(c, fieldError("limit", "debe ser un entero positivo"))
		}
		q.Limit = n
	}
	list, err := h.reader.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	seconds := int(h.pollInterval / time.Second)
	c.Set("X-Poll-Interval", strconv.Itoa(seconds))
	return c.JSON(dto.OrderListResponse{Items: list, PollInterval: seconds})
}

// GetByID godoc
// @Summary      Detalle de pedido con historial
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.reader.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TransitionStatus godoc
// @Summary      Cambiar estado del pedido
// @Description  pending→paid→delivered; pending|paid→canceled (requiere auth_secret).
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del pedido"
// @Param        body  body  dto.TransitionStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse  "clave de cancelación inválida"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "transición no permitida"
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) TransitionStatus(c *fiber.Ctx) error {
	var in dto.TransitionStatusRequest
	if !parseBody(c, &in) {
		return nil
	}
	in.OrderID = c.Params("id")
	out, err := h.lifecycle.TransitionStatus(c.UserContext(), in, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

func fieldError(field, msg string) error {
	verr := domain.NewValidationError()
	verr.Add(field, msg)
	return verr
}
