package memory

import (
	"context"

	"rescue/internal/domain/repository"
)

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager that serialises transactions on the
// store lock and restores a snapshot when fn fails or panics.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

type repositoryFactory struct {
	g guard
}

func (f *repositoryFactory) NewAccountRepository() repository.AccountRepository {
	return &accountRepository{g: f.g}
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{g: f.g}
}

func (f *repositoryFactory) NewOrderRepository() repository.OrderRepository {
	return &orderRepository{g: f.g}
}

// Execute runs fn with exclusive access to the store.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snap := tm.store.take()
	committed := false
	defer func() {
		if !committed {
			tm.store.restore(snap)
		}
	}()

	if err := fn(&repositoryFactory{g: guard{store: tm.store, inTx: true}}); err != nil {
		return err
	}
	committed = true

	return nil
}
