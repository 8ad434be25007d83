package memory

import (
	"context"
	"sync"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"

	"github.com/google/uuid"
)

// cartSlot guards one buyer's cart. A nil cart means the buyer has none yet.
type cartSlot struct {
	mu   sync.Mutex
	cart *entity.Cart
}

// cartRepository keeps one cart per buyer. It is independent from Store so cart
// traffic never contends with catalog or order transactions. Each buyer has its own
// lock, so a slow checkout only blocks that buyer.
type cartRepository struct {
	mu    sync.Mutex // guards slots only
	slots map[uuid.UUID]*cartSlot
	now   func() time.Time
}

// NewCartRepository returns an empty in-memory cart store.
func NewCartRepository() repository.CartRepository {
	return &cartRepository{
		slots: make(map[uuid.UUID]*cartSlot),
		now:   time.Now,
	}
}

// slot returns the buyer's slot, creating it on first use. Slots are never removed,
// so two callers can never end up holding different locks for the same buyer.
func (r *cartRepository) slot(buyerID uuid.UUID) *cartSlot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[buyerID]
	if !ok {
		s = &cartSlot{}
		r.slots[buyerID] = s
	}

	return s
}

func (r *cartRepository) Get(_ context.Context, buyerID uuid.UUID) (*entity.Cart, error) {
	s := r.slot(buyerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart != nil {
		return s.cart.Clone(), nil
	}

	return entity.NewCart(buyerID), nil
}

func (r *cartRepository) Mutate(_ context.Context, buyerID uuid.UUID, fn func(cart *entity.Cart) error) (*entity.Cart, error) {
	s := r.slot(buyerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	working := entity.NewCart(buyerID)
	if s.cart != nil {
		working = s.cart.Clone()
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	working.UpdatedAt = r.now()
	s.cart = working

	return working.Clone(), nil
}

func (r *cartRepository) Clear(_ context.Context, buyerID uuid.UUID) error {
	s := r.slot(buyerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil

	return nil
}

// RemoveProduct visits the carts one buyer lock at a time. A buyer whose cart is being
// mutated is visited after that mutation commits.
func (r *cartRepository) RemoveProduct(_ context.Context, productID uuid.UUID) (int, error) {
	r.mu.Lock()
	slots := make([]*cartSlot, 0, len(r.slots))
	for _, s := range r.slots {
		slots = append(slots, s)
	}
	r.mu.Unlock()

	touched := 0
	for _, s := range slots {
		s.mu.Lock()
		if s.cart != nil && s.cart.Remove(productID) {
			s.cart.UpdatedAt = r.now()
			touched++
		}
		s.mu.Unlock()
	}

	return touched, nil
}
