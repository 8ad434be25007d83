package impl

import (
	"context"
	"log/slog"

	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *accountService) ListUsers(ctx context.Context, filter repository.AccountFilter) ([]*entity.Account, error) {
	accounts, err := srv.accountRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

// DeleteUser removes the profile and the account together.
func (srv *accountService) DeleteUser(ctx context.Context, actor usecase.Actor, id uuid.UUID) error {
	if actor.ID == id {
		return domainerrors.ErrCannotModifySelf
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewAccountRepository().Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrAccountNotFound) {
		return domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Info("Account deleted",
		slog.String("account_id", id.String()),
		slog.String("by", actor.ID.String()),
	)

	return nil
}

func (srv *accountService) VerifyUser(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Account, error) {
	return srv.moderate(ctx, actor, id, "verified", (*entity.Account).Verify)
}

func (srv *accountService) BlockUser(ctx context.Context, actor usecase.Actor, id uuid.UUID) (*entity.Account, error) {
	return srv.moderate(ctx, actor, id, "blocked", (*entity.Account).Block)
}

func (srv *accountService) moderate(ctx context.Context, actor usecase.Actor, id uuid.UUID, action string, apply func(*entity.Account)) (*entity.Account, error) {
	if actor.ID == id {
		return nil, domainerrors.ErrCannotModifySelf
	}

	account, err := srv.accountRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}

	apply(account)
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return nil, errors.Wrapf(err, "failed to save %s account", action)
	}

	srv.log(ctx).Info("Account moderated",
		slog.String("account_id", id.String()),
		slog.String("action", action),
	)

	return account, nil
}
