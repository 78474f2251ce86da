// Package memstore is an in-process datastore.Store. Transactions are
// serialized and applied by swapping in a modified copy of the data, so a
// failed transaction leaves no trace.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

type state struct {
	nextID     int64
	users      map[int64]models.User
	customers  map[int64]models.Customer
	categories map[int64]models.Category
	products   map[int64]models.Product
	comments   map[int64]models.Comment
	carts      map[uuid.UUID]models.Cart
	cartItems  map[int64]models.CartItem
	orders     map[int64]models.Order
	orderItems map[int64]models.OrderItem
}

func newState() *state {
	return &state{
		users:      map[int64]models.User{},
		customers:  map[int64]models.Customer{},
		categories: map[int64]models.Category{},
		products:   map[int64]models.Product{},
		comments:   map[int64]models.Comment{},
		carts:      map[uuid.UUID]models.Cart{},
		cartItems:  map[int64]models.CartItem{},
		orders:     map[int64]models.Order{},
		orderItems: map[int64]models.OrderItem{},
	}
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// clone copies every table. Rows are values, so a shallow map copy is enough.
func (s *state) clone() *state {
	return &state{
		nextID:     s.nextID,
		users:      copyMap(s.users),
		customers:  copyMap(s.customers),
		categories: copyMap(s.categories),
		products:   copyMap(s.products),
		comments:   copyMap(s.comments),
		carts:      copyMap(s.carts),
		cartItems:  copyMap(s.cartItems),
		orders:     copyMap(s.orders),
		orderItems: copyMap(s.orderItems),
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store guards one state with a mutex. Every call, and every whole
// transaction, runs under the lock.
type Store struct {
	mu     sync.Mutex
	data   *state
	faults map[string]error
}

var (
	_ datastore.Store   = (*Store)(nil)
	_ datastore.Queries = (*queries)(nil)
)

func New() *Store {
	return &Store{data: newState(), faults: map[string]error{}}
}

// FailOn makes the named operation return err until cleared with a nil err.
// Operation names are the datastore.Queries method names.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Unavailable("ping", err)
	}
	return nil
}

// WithTx runs fn against a copy of the data and installs the copy only when
// fn succeeds and ctx is still live.
func (s *Store) WithTx(ctx context.Context, fn func(q datastore.Queries) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return apperrors.Unavailable("begin transaction", err)
	}

	tx := &queries{data: s.data.clone(), faults: s.faults}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.Unavailable("commit transaction", err)
	}
	s.data = tx.data
	return nil
}

// run executes one operation outside a transaction.
func (s *Store) run(fn func(q *queries) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&queries{data: s.data, faults: s.faults})
}

// queries implements datastore.Queries over a state. Writes through a
// transaction's queries land in the transaction's copy.
type queries struct {
	data   *state
	faults map[string]error
}

func (q *queries) fault(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return apperrors.Unavailable(op, err)
	}
	if err, ok := q.faults[op]; ok {
		return err
	}
	return nil
}
