package memory

import (
	"context"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	g guard
}

// NewProductRepository returns a ProductRepository backed by the store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{g: guard{store: store}}
}

func (r *productRepository) Create(_ context.Context, product *entity.Product) error {
	r.g.write(func() {
		s := r.g.store
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		s.stamp(product.ID, &product.CreatedAt, &product.UpdatedAt)
		s.products[product.ID] = product.Clone()
	})

	return nil
}

func (r *productRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	var found *entity.Product
	r.g.read(func() {
		found = r.g.store.products[id].Clone()
	})
	if found == nil {
		return nil, repository.ErrProductNotFound
	}

	return found, nil
}

// FindByIDForUpdate is FindByID. Inside a transaction the manager already holds the store lock.
func (r *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *productRepository) List(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var products []*entity.Product
	r.g.read(func() {
		products = make([]*entity.Product, 0, len(r.g.store.products))
		for _, p := range r.g.store.products {
			if filter.Matches(p) {
				products = append(products, p.Clone())
			}
		}
		newestFirst(r.g.store, products, func(p *entity.Product) (uuid.UUID, time.Time) { return p.ID, p.CreatedAt })
	})

	return products, nil
}

func (r *productRepository) Update(_ context.Context, product *entity.Product) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		stored, ok := s.products[product.ID]
		if !ok {
			err = repository.ErrProductNotFound

			return
		}
		updated := product.Clone()
		updated.SellerID = stored.SellerID
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = s.now()
		s.products[product.ID] = updated
		product.UpdatedAt = updated.UpdatedAt
	})

	return err
}

func (r *productRepository) Delete(_ context.Context, id uuid.UUID) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		if _, ok := s.products[id]; !ok {
			err = repository.ErrProductNotFound

			return
		}
		delete(s.products, id)
		delete(s.order, id)
	})

	return err
}

func (r *productRepository) DecrementIfAvailable(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	var (
		ok  bool
		err error
	)
	r.g.write(func() {
		s := r.g.store
		p, found := s.products[id]
		if !found {
			err = repository.ErrProductNotFound

			return
		}
		if p.Quantity < qty {
			return
		}
		p.Quantity -= qty
		p.UpdatedAt = s.now()
		ok = true
	})

	return ok, err
}

func (r *productRepository) IncrementStock(_ context.Context, id uuid.UUID, qty int) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		p, found := s.products[id]
		if !found {
			err = repository.ErrProductNotFound

			return
		}
		p.Quantity += qty
		p.UpdatedAt = s.now()
	})

	return err
}
