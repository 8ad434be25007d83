package memory

import (
	"context"
	"strings"
	"time"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"

	"github.com/google/uuid"
)

type accountRepository struct {
	g guard
}

// NewAccountRepository returns an AccountRepository backed by the store.
func NewAccountRepository(store *Store) repository.AccountRepository {
	return &accountRepository{g: guard{store: store}}
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (r *accountRepository) Create(_ context.Context, account *entity.Account) error {
	if err := account.CheckVariant(); err != nil {
		return err
	}

	var err error
	r.g.write(func() {
		s := r.g.store
		for _, existing := range s.accounts {
			if sameEmail(existing.Email, account.Email) {
				err = repository.ErrDuplicateEmail

				return
			}
		}
		if account.ID == uuid.Nil {
			account.ID = uuid.New()
		}
		s.stamp(account.ID, &account.CreatedAt, &account.UpdatedAt)
		s.accounts[account.ID] = account.Clone()
	})

	return err
}

func (r *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	var found *entity.Account
	r.g.read(func() {
		found = r.g.store.accounts[id].Clone()
	})
	if found == nil {
		return nil, repository.ErrAccountNotFound
	}

	return found, nil
}

func (r *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	var found *entity.Account
	r.g.read(func() {
		for _, a := range r.g.store.accounts {
			if sameEmail(a.Email, email) {
				found = a.Clone()

				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrAccountNotFound
	}

	return found, nil
}

func (r *accountRepository) List(_ context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	var accounts []*entity.Account
	r.g.read(func() {
		accounts = make([]*entity.Account, 0, len(r.g.store.accounts))
		for _, a := range r.g.store.accounts {
			if filter.Role != "" && a.Role != filter.Role {
				continue
			}
			if filter.Status != "" && a.Status != filter.Status {
				continue
			}
			accounts = append(accounts, a.Clone())
		}
		newestFirst(r.g.store, accounts, func(a *entity.Account) (uuid.UUID, time.Time) { return a.ID, a.CreatedAt })
	})

	return accounts, nil
}

func (r *accountRepository) Update(_ context.Context, account *entity.Account) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		stored, ok := s.accounts[account.ID]
		if !ok {
			err = repository.ErrAccountNotFound

			return
		}
		updated := stored.Clone()
		updated.Name = account.Name
		updated.Phone = account.Phone
		updated.Status = account.Status
		updated.Verified = account.Verified
		if account.Buyer != nil && updated.Buyer != nil {
			updated.Buyer.FullName = account.Buyer.FullName
			updated.Buyer.Address = account.Buyer.Address
			updated.Buyer.DateOfBirth = account.Buyer.DateOfBirth
		}
		if account.Seller != nil && updated.Seller != nil {
			updated.Seller.ShopName = account.Seller.ShopName
			updated.Seller.ShopAddress = account.Seller.ShopAddress
		}
		updated.UpdatedAt = s.now()
		s.accounts[account.ID] = updated
		account.UpdatedAt = updated.UpdatedAt
	})

	return err
}

func (r *accountRepository) Delete(_ context.Context, id uuid.UUID) error {
	var err error
	r.g.write(func() {
		s := r.g.store
		if _, ok := s.accounts[id]; !ok {
			err = repository.ErrAccountNotFound

			return
		}
		delete(s.accounts, id)
		delete(s.order, id)
	})

	return err
}
