package checkout

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/customer"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/order"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

// SubmitOrderUseCase convierte el carrito y los datos del cliente en un pedido pendiente,
// descontando el stock en la misma transacción.
type SubmitOrderUseCase struct {
	txRunner TxRunner
	timeout  time.Duration
	now      func() time.Time
	newID    func() string
}

// NewSubmitOrderUseCase construye el caso de uso. timeout acota toda la transacción.
func NewSubmitOrderUseCase(txRunner TxRunner, timeout time.Duration) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		txRunner: txRunner,
		timeout:  timeout,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Submit valida, hace upsert del cliente, inserta el pedido y descuenta stock; todo o nada.
func (uc *SubmitOrderUseCase) Submit(ctx context.Context, in dto.SubmitOrderRequest) (*dto.SubmitOrderResponse, error) {
	o, c, err := uc.prepare(in)
	if err != nil {
		return nil, err
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	err = uc.txRunner.RunCheckout(ctx, func(
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := customerRepo.Upsert(ctx, c); err != nil {
			return err
		}
		if err := orderRepo.Create(ctx, o); err != nil {
			return err
		}
		return decrementStock(ctx, productRepo, o.Items)
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrTransient) {
			err = errors.Join(domain.ErrTransient, err)
		}
		var short *domain.InsufficientStockError
		if errors.As(err, &short) {
			log.Ctx(ctx).Warn().Str("customer", c.IDNumber).Int("lines", len(short.Items)).Msg("pedido rechazado por stock insuficiente")
		} else {
			log.Ctx(ctx).Error().Err(err).Str("customer", c.IDNumber).Msg("no se pudo registrar el pedido")
		}
		return nil, err
	}

	log.Ctx(ctx).Info().Str("order_id", o.ID).Str("status", o.Status).Str("total", o.Total.StringFixed(2)).Msg("pedido registrado")
	return &dto.SubmitOrderResponse{
		OrderID:   o.ID,
		Status:    o.Status,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
	}, nil
}

// prepare valida la entrada y arma cliente y pedido sin tocar la base de datos.
func (uc *SubmitOrderUseCase) prepare(in dto.SubmitOrderRequest) (*entity.Order, *entity.Customer, error) {
	verr := dto.Validate(in)
	if verr == nil {
		verr = domain.NewValidationError()
	}

	fullName := customer.NormalizeName(in.Customer.FullName)
	if fullName == "" {
		verr.Add("customer.full_name", "es obligatorio")
	}
	idNumber := customer.NormalizeIDNumber(in.Customer.IDNumber)
	if idNumber == "" {
		verr.Add("customer.id_number", "es obligatorio")
	}
	phone := strings.TrimSpace(in.Customer.Phone)
	if phone == "" {
		verr.Add("customer.phone", "es obligatorio")
	}

	method, ok := order.ParsePaymentMethod(in.Payment.Method)
	if !ok {
		verr.Add("payment.method", "debe ser in_store o mobile_transfer")
	}
	reference := strings.TrimSpace(in.Payment.Reference)
	receipt := strings.TrimSpace(in.Payment.ReceiptImage)
	switch method {
	case entity.PaymentMobileTransfer:
		if reference == "" {
			verr.Add("payment.reference", "es obligatoria para pago móvil")
		} else if !order.ValidReference(reference) {
			verr.Add("payment.reference", "debe tener al menos "+strconv.Itoa(order.MinReferenceLength)+" letras o dígitos")
		}
	case entity.PaymentInStore:
		reference, receipt = "", ""
	}

	if len(in.Items) == 0 {
		verr.Add("items", "el carrito está vacío")
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			verr.Add("items["+strconv.Itoa(i)+"].product_id", "es obligatorio")
		}
		if it.Quantity < 1 {
			verr.Add("items["+strconv.Itoa(i)+"].quantity", "debe ser mayor o igual a 1")
		}
		if it.UnitPrice.IsNegative() {
			verr.Add("items["+strconv.Itoa(i)+"].unit_price", "no puede ser negativo")
		}
		items = append(items, entity.OrderItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      strings.TrimSpace(it.Name),
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			ImageURL:  strings.TrimSpace(it.ImageURL),
		})
	}

	if !verr.Empty() {
		return nil, nil, verr
	}

	now := uc.now().UTC()
	c := &entity.Customer{
		IDNumber:  idNumber,
		FullName:  fullName,
		Email:     strings.TrimSpace(in.Customer.Email),
		Phone:     phone,
		Address:   strings.TrimSpace(in.Customer.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	o := &entity.Order{
		ID:               uc.newID(),
		CustomerIDNumber: idNumber,
		CustomerName:     fullName,
		CustomerPhone:    phone,
		Total:            order.Total(items),
		PaymentMethod:    method,
		PaymentReference: reference,
		ReceiptImage:     receipt,
		Status:           entity.OrderStatusPending,
		Items:            items,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return o, c, nil
}

// decrementStock descuenta por producto en orden ascendente de id, así dos pedidos concurrentes
// toman los locks de fila en el mismo orden. Junta todos los faltantes antes de fallar.
func decrementStock(ctx context.Context, productRepo repository.ProductRepository, items []entity.OrderItem) error {
	demand := order.Demand(items)
	names := make(map[string]string, len(items))
	for _, it := range items {
		if _, ok := names[it.ProductID]; !ok {
			names[it.ProductID] = it.Name
		}
	}
	ids := make([]string, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var shortages []domain.StockShortage
	for _, id := range ids {
		err := productRepo.DecrementStock(ctx, id, demand[id])
		var short *domain.InsufficientStockError
		switch {
		case err == nil:
		case errors.As(err, &short):
			shortages = append(shortages, short.Items...)
		case errors.Is(err, domain.ErrNotFound):
			shortages = append(shortages, domain.StockShortage{
				ProductID: id, Name: names[id], Requested: demand[id], Available: 0,
			})
		default:
			return err
		}
	}
	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Items: shortages}
	}
	return nil
}
