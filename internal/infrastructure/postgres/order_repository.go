package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_id_number, customer_name, customer_phone, total, payment_method,
	payment_reference, receipt_image, status, items, created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera del pedido con la copia de las líneas en JSONB.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.CustomerIDNumber, o.CustomerName, o.CustomerPhone, o.Total, o.PaymentMethod,
		o.PaymentReference, o.ReceiptImage, o.Status, items, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", translate(err))
	}
	return nil
}

// GetByID obtiene un pedido. nil, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetByIDForUpdate igual que GetByID pero con SELECT ... FOR UPDATE; solo tiene sentido dentro de una tx.
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", translate(err))
	}
	return o, nil
}

// List pedidos del más reciente al más antiguo. Since filtra created_at > Since (refresco incremental).
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var (
		where []string
		args  []any
	)
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		where = append(where, fmt.Sprintf("created_at > $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", translate(err))
	}
	return list, nil
}

// UpdateStatus compara y asigna en un solo UPDATE; false si el estado ya no era from.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, at,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", translate(err))
	}
	return tag.RowsAffected() == 1, nil
}

// AddStatusEvent agrega una fila de auditoría al historial del pedido.
func (r *OrderRepo) AddStatusEvent(ctx context.Context, e *entity.OrderStatusEvent) error {
	query := `
		INSERT INTO order_status_history (id, order_id, from_status, to_status, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, e.ID, e.OrderID, e.FromStatus, e.ToStatus, e.ActorID, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert status event: %w", translate(err))
	}
	return nil
}

// ListStatusEvents historial en orden cronológico.
func (r *OrderRepo) ListStatusEvents(ctx context.Context, orderID string) ([]*entity.OrderStatusEvent, error) {
	query := `
		SELECT id, order_id, from_status, to_status, actor_id, created_at
		FROM order_status_history WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list status events: %w", translate(err))
	}
	defer rows.Close()
	var list []*entity.OrderStatusEvent
	for rows.Next() {
		var e entity.OrderStatusEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan status event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o     entity.Order
		items []byte
	)
	err := row.Scan(
		&o.ID, &o.CustomerIDNumber, &o.CustomerName, &o.CustomerPhone, &o.Total, &o.PaymentMethod,
		&o.PaymentReference, &o.ReceiptImage, &o.Status, &items, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}
