// Package memory implements the persistence layer in process memory. It backs the
// "memory" persistence driver and the cart store, which is never written to the database.
package memory

import (
	"maps"
	"slices"
	"sync"
	"time"

	"rescue/internal/domain/entity"

	"github.com/google/uuid"
)

// Store holds every aggregate behind one lock. Values are cloned on the way in and out
// so callers never share memory with the store.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time
	seq uint64

	accounts map[uuid.UUID]*entity.Account
	products map[uuid.UUID]*entity.Product
	orders   map[uuid.UUID]*entity.Order
	devices  map[uuid.UUID]*entity.Device
	order    map[uuid.UUID]uint64 // insertion sequence, breaks CreatedAt ties
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		accounts: make(map[uuid.UUID]*entity.Account),
		products: make(map[uuid.UUID]*entity.Product),
		orders:   make(map[uuid.UUID]*entity.Order),
		devices:  make(map[uuid.UUID]*entity.Device),
		order:    make(map[uuid.UUID]uint64),
	}
}

// snapshot is a point-in-time copy used to roll back a failed transaction.
type snapshot struct {
	seq      uint64
	accounts map[uuid.UUID]*entity.Account
	products map[uuid.UUID]*entity.Product
	orders   map[uuid.UUID]*entity.Order
	order    map[uuid.UUID]uint64
}

// take must be called with mu held. Devices are not transactional.
func (s *Store) take() snapshot {
	snap := snapshot{
		seq:      s.seq,
		accounts: make(map[uuid.UUID]*entity.Account, len(s.accounts)),
		products: make(map[uuid.UUID]*entity.Product, len(s.products)),
		orders:   make(map[uuid.UUID]*entity.Order, len(s.orders)),
		order:    maps.Clone(s.order),
	}
	for id, a := range s.accounts {
		snap.accounts[id] = a.Clone()
	}
	for id, p := range s.products {
		snap.products[id] = p.Clone()
	}
	for id, o := range s.orders {
		snap.orders[id] = o.Clone()
	}

	return snap
}

// restore must be called with mu held.
func (s *Store) restore(snap snapshot) {
	s.seq = snap.seq
	s.accounts = snap.accounts
	s.products = snap.products
	s.orders = snap.orders
	s.order = snap.order
}

// stamp assigns creation bookkeeping to a new record. Must be called with mu held.
func (s *Store) stamp(id uuid.UUID, createdAt, updatedAt *time.Time) {
	now := s.now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
	s.seq++
	s.order[id] = s.seq
}

// newestFirst sorts by CreatedAt descending, then by insertion order descending.
func newestFirst[T any](s *Store, items []T, key func(T) (uuid.UUID, time.Time)) []T {
	slices.SortFunc(items, func(a, b T) int {
		idA, atA := key(a)
		idB, atB := key(b)
		if c := atB.Compare(atA); c != 0 {
			return c
		}

		switch {
		case s.order[idA] > s.order[idB]:
			return -1
		case s.order[idA] < s.order[idB]:
			return 1
		default:
			return 0
		}
	})

	return items
}

// guard serialises access for repositories used outside a transaction. Inside a
// transaction the manager already holds the write lock and guard is a no-op.
type guard struct {
	store *Store
	inTx  bool
}

func (g guard) read(fn func()) {
	if !g.inTx {
		g.store.mu.RLock()
		defer g.store.mu.RUnlock()
	}
	fn()
}

func (g guard) write(fn func()) {
	if !g.inTx {
		g.store.mu.Lock()
		defer g.store.mu.Unlock()
	}
	fn()
}
