package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ v view }

// NewProductRepository repo fuera de transacción.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{v: storeView{s}} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.do("product.create", func(st *Snapshot) error {
		if _, ok := st.Products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.Products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do("product.get", func(st *Snapshot) error {
		if p, ok := st.Products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.do("product.list", func(st *Snapshot) error {
		for _, p := range st.Products {
			if filter.InStockOnly && p.Stock <= 0 {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.do("product.update", func(st *Snapshot) error {
		if _, ok := st.Products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.Products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.do("product.delete", func(st *Snapshot) error {
		if _, ok := st.Products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.Products, id)
		return nil
	})
}

func (r *ProductRepo) DecrementStock(_ context.Context, productID string, qty int) error {
	return r.v.do("product.decrement", func(st *Snapshot) error {
		p, ok := st.Products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		if p.Stock < qty {
			return &domain.InsufficientStockError{Items: []domain.StockShortage{{
				ProductID: productID, Name: p.Name, Requested: qty, Available: p.Stock,
			}}}
		}
		p.Stock -= qty
		st.Products[productID] = p
		return nil
	})
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ v view }

// NewCustomerRepository repo fuera de transacción.
func NewCustomerRepository(s *Store) *CustomerRepo { return &CustomerRepo{v: storeView{s}} }

func (r *CustomerRepo) Upsert(_ context.Context, c *entity.Customer) error {
	return r.v.do("customer.upsert", func(st *Snapshot) error {
		if prev, ok := st.Customers[c.IDNumber]; ok {
			c.CreatedAt = prev.CreatedAt
		}
		st.Customers[c.IDNumber] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByIDNumber(_ context.Context, idNumber string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.do("customer.get", func(st *Snapshot) error {
		if c, ok := st.Customers[idNumber]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// OrderRepo pedidos en memoria.
type OrderRepo struct{ v view }

// NewOrderRepository repo fuera de transacción.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{v: storeView{s}} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.v.do("order.create", func(st *Snapshot) error {
		if _, ok := st.Orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		cp := *o
		cp.Items = append([]entity.OrderItem(nil), o.Items...)
		st.Orders[o.ID] = cp
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v.do("order.get", func(st *Snapshot) error {
		if o, ok := st.Orders[id]; ok {
			o.Items = append([]entity.OrderItem(nil), o.Items...)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.v.do("order.list", func(st *Snapshot) error {
		for _, o := range st.Orders {
			if !filter.Since.IsZero() && !o.CreatedAt.After(filter.Since) {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			o := o
			out = append(out, &o)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return strings.Compare(out[i].ID, out[j].ID) > 0
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, err
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, from, to string, at time.Time) (bool, error) {
	applied := false
	err := r.v.do("order.update_status", func(st *Snapshot) error {
		o, ok := st.Orders[id]
		if !ok || o.Status != from {
			return nil
		}
		o.Status = to
		o.UpdatedAt = at
		st.Orders[id] = o
		applied = true
		return nil
	})
	return applied, err
}

func (r *OrderRepo) AddStatusEvent(_ context.Context, e *entity.OrderStatusEvent) error {
	return r.v.do("order.add_event", func(st *Snapshot) error {
		st.Events = append(st.Events, *e)
		return nil
	})
}

func (r *OrderRepo) ListStatusEvents(_ context.Context, orderID string) ([]*entity.OrderStatusEvent, error) {
	var out []*entity.OrderStatusEvent
	err := r.v.do("order.list_events", func(st *Snapshot) error {
		for _, e := range st.Events {
			if e.OrderID == orderID {
				e := e
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}

// UserRepo usuarios en memoria.
type UserRepo struct{ v view }

// NewUserRepository repo fuera de transacción.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{v: storeView{s}} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.do("user.create", func(st *Snapshot) error {
		for _, existing := range st.Users {
			if strings.EqualFold(existing.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.Users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do("user.get", func(st *Snapshot) error {
		if u, ok := st.Users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.v.do("user.get", func(st *Snapshot) error {
		for _, u := range st.Users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
