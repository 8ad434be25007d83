package memory

import (
	"context"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"

	"github.com/google/uuid"
)

type orderRepository struct {
	g guard
}

// NewOrderRepository returns an OrderRepository backed by the store.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{g: guard{store: store}}
}

func (r *orderRepository) Create(_ context.Context, order *entity.Order) error {
	r.g.write(func() {
		s := r.g.store
		if order.ID == uuid.Nil {
			order.ID = uuid.New()
		}
		s.stamp(order.ID, &order.CreatedAt, &order.UpdatedAt)
		s.orders[order.ID] = order.Clone()
	})

	return nil
}

func (r *orderRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	var found *entity.Order
	r.g.read(func() {
		found = r.g.store.orders[id].Clone()
	})
	if found == nil {
		return nil, repository.ErrOrderNotFound
	}

	return found, nil
}

func (r *orderRepository) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	var orders []*entity.Order
	r.g.read(func() {
		orders = make([]*entity.Order, 0)
		for _, o := range r.g.store.orders {
			if filter.BuyerID != nil && o.BuyerID != *filter.BuyerID {
				continue
			}
			if filter.SellerID != nil && o.SellerID != *filter.SellerID {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			orders = append(orders, o.Clone())
		}
		newestFirst(r.g.store, orders, func(o *entity.Order) (uuid.UUID, time.Time) { return o.ID, o.CreatedAt })
	})

	return orders, nil
}

func (r *orderRepository) UpdateStatus(_ context.Context, order *entity.Order) error {
	var err error
	r.g.write(func() {
		stored, ok := r.g.store.orders[order.ID]
		if !ok {
			err = repository.ErrOrderNotFound

			return
		}
		stored.Status = order.Status
		stored.PaymentStatus = order.PaymentStatus
		stored.UpdatedAt = order.UpdatedAt
	})

	return err
}
