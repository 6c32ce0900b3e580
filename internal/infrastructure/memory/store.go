// Package memory implementa los puertos de persistencia en memoria. El TxRunner trabaja sobre
// una copia del estado y solo la publica si fn termina sin error, así un rollback deja el
// estado exactamente como estaba. Se usa en tests de casos de uso.
package memory

import (
	"sync"

	"github.com/zone-laptop/zone-store/internal/domain/entity"
)

// Snapshot copia completa del estado; comparable con assert.Equal.
type Snapshot struct {
	Products  map[string]entity.Product
	Customers map[string]entity.Customer
	Orders    map[string]entity.Order
	Events    []entity.OrderStatusEvent
	Users     map[string]entity.User
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		Products:  map[string]entity.Product{},
		Customers: map[string]entity.Customer{},
		Orders:    map[string]entity.Order{},
		Users:     map[string]entity.User{},
	}
}

func (s *Snapshot) clone() *Snapshot {
	out := newSnapshot()
	for k, p := range s.Products {
		p.Specs = append([]string(nil), p.Specs...)
		out.Products[k] = p
	}
	for k, c := range s.Customers {
		out.Customers[k] = c
	}
	for k, o := range s.Orders {
		o.Items = append([]entity.OrderItem(nil), o.Items...)
		out.Orders[k] = o
	}
	out.Events = append([]entity.OrderStatusEvent(nil), s.Events...)
	for k, u := range s.Users {
		out.Users[k] = u
	}
	return out
}

// Store estado compartido. Las transacciones se serializan con mu.
type Store struct {
	mu    sync.Mutex
	state *Snapshot
	fail  map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newSnapshot(), fail: map[string]error{}}
}

// Snapshot devuelve una copia del estado actual.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.state.clone()
}

// SeedProducts agrega productos fuera de cualquier transacción.
func (s *Store) SeedProducts(products ...entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.state.Products[p.ID] = p
	}
}

// SeedOrders agrega pedidos fuera de cualquier transacción.
func (s *Store) SeedOrders(orders ...entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		s.state.Orders[o.ID] = o
	}
}

// FailOn hace que la operación op ("customer.upsert", "order.create", "order.update_status",
// "order.add_event", "product.decrement", "order.list") devuelva err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

// view da acceso al estado: directo dentro de una tx, con lock fuera de ella.
type view interface {
	do(op string, fn func(st *Snapshot) error) error
}

type storeView struct{ s *Store }

func (v storeView) do(op string, fn func(st *Snapshot) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if err := v.s.fail[op]; err != nil {
		return err
	}
	return fn(v.s.state)
}

type txView struct {
	st   *Snapshot
	fail map[string]error
}

func (v txView) do(op string, fn func(st *Snapshot) error) error {
	if err := v.fail[op]; err != nil {
		return err
	}
	return fn(v.st)
}
