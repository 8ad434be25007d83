package impl

import (
	"context"
	"testing"

	"rescue/internal/domain/entity"
	"rescue/internal/domain/repository"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repositoryAccountFilter(role entity.Role) repository.AccountFilter {
	return repository.AccountFilter{Role: role}
}

func createTestAccountService(env *memoryEnv) usecase.AccountUsecase {
	return NewAccountService(AccountServiceParams{
		TxManager:   env.txManager,
		AccountRepo: env.accountRepo,
		Logger:      newDiscardLogger(),
	})
}

func TestAccountService_ListUsers(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestAccountService(env)
	env.addSeller(t, "Deli")
	env.addBuyer(t)
	env.addBuyer(t)

	all, err := svc.ListUsers(context.Background(), repository.AccountFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	buyers, err := svc.ListUsers(context.Background(), repositoryAccountFilter(entity.RoleBuyer))
	require.NoError(t, err)
	assert.Len(t, buyers, 2)
}

func TestAccountService_VerifyAndBlock(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestAccountService(env)
	admin := usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	seller := env.addSeller(t, "Deli")
	ctx := context.Background()

	blocked, err := svc.BlockUser(ctx, admin, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AccountStatusBlocked, blocked.Status)

	verified, err := svc.VerifyUser(ctx, admin, seller.ID)
	require.NoError(t, err)
	assert.True(t, verified.Verified)
	assert.Equal(t, entity.AccountStatusActive, verified.Status)

	stored, err := env.accountRepo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, stored.Verified)

	_, err = svc.BlockUser(ctx, admin, uuid.New())
	requireAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestAccountService_DeleteUser(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestAccountService(env)
	admin := usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	buyer := env.addBuyer(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteUser(ctx, admin, buyer.ID))

	_, err := env.accountRepo.FindByID(ctx, buyer.ID)
	require.ErrorIs(t, err, repository.ErrAccountNotFound)

	err = svc.DeleteUser(ctx, admin, buyer.ID)
	requireAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestAccountService_CannotModifySelf(t *testing.T) {
	env := newMemoryEnv()
	svc := createTestAccountService(env)
	admin := usecase.Actor{ID: uuid.New(), Role: entity.RoleAdmin}
	ctx := context.Background()

	requireAppError(t, svc.DeleteUser(ctx, admin, admin.ID), "CANNOT_MODIFY_SELF")

	_, err := svc.BlockUser(ctx, admin, admin.ID)
	requireAppError(t, err, "CANNOT_MODIFY_SELF")
}
