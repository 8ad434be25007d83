package impl

import (
	"context"
	"testing"

	"rescue/config"
	"rescue/internal/domain/entity"
	"rescue/internal/domain/service"
	"rescue/internal/infra/auth"
	"rescue/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixtures struct {
	env     *memoryEnv
	service usecase.AuthUsecase
	tokens  service.TokenService
}

func createTestAuthService(t *testing.T) authFixtures {
	t.Helper()
	cfg := newTestConfig()
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	env := newMemoryEnv()
	svc := NewAuthService(AuthServiceParams{
		TxManager:    env.txManager,
		AccountRepo:  env.accountRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Logger:       newDiscardLogger(),
	})

	return authFixtures{env: env, service: svc, tokens: tokens}
}

func TestAuthService_Register(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	t.Run("buyer by default", func(t *testing.T) {
		account, err := fx.service.Register(ctx, usecase.RegisterInput{
			Name:     "Ana",
			Email:    "  Ana@Example.com ",
			Password: "secret1",
			Address:  "Rua 1",
		})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleBuyer, account.Role)
		assert.Equal(t, "ana@example.com", account.Email)
		assert.True(t, account.Verified)
		assert.NotEqual(t, "secret1", account.PasswordHash)
		require.NotNil(t, account.Buyer)
		assert.Equal(t, "Rua 1", account.Buyer.Address)
	})

	t.Run("seller starts unverified", func(t *testing.T) {
		account, err := fx.service.Register(ctx, usecase.RegisterInput{
			Name:            "Bakery",
			Email:           "shop@example.com",
			Password:        "secret1",
			ConfirmPassword: "secret1",
			Role:            entity.RoleSeller,
			StoreName:       "Corner Bakery",
		})
		require.NoError(t, err)
		assert.False(t, account.Verified)
		assert.Equal(t, "Corner Bakery", account.StoreName())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := fx.service.Register(ctx, usecase.RegisterInput{
			Name:     "Other",
			Email:    "ANA@example.com",
			Password: "secret1",
		})
		requireAppError(t, err, "EMAIL_ALREADY_REGISTERED")
		assert.Equal(t, "Email already registered", err.Error())
	})
}

func TestAuthService_Register_Validation(t *testing.T) {
	fx := createTestAuthService(t)

	tests := []struct {
		name  string
		input usecase.RegisterInput
		code  string
	}{
		{
			name:  "short password",
			input: usecase.RegisterInput{Name: "A", Email: "a@x.io", Password: "12345"},
			code:  "PASSWORD_TOO_SHORT",
		},
		{
			name:  "confirmation mismatch",
			input: usecase.RegisterInput{Name: "A", Email: "a@x.io", Password: "123456", ConfirmPassword: "654321"},
			code:  "PASSWORD_MISMATCH",
		},
		{
			name:  "seller without store",
			input: usecase.RegisterInput{Name: "A", Email: "a@x.io", Password: "123456", Role: entity.RoleSeller},
			code:  "STORE_NAME_REQUIRED",
		},
		{
			name:  "admin self registration",
			input: usecase.RegisterInput{Name: "A", Email: "a@x.io", Password: "123456", Role: entity.RoleAdmin},
			code:  "INVALID_ROLE",
		},
		{
			name:  "missing email",
			input: usecase.RegisterInput{Name: "A", Password: "123456"},
			code:  "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.Register(context.Background(), tt.input)
			requireAppError(t, err, tt.code)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, fx.service.EnsureAdmin(ctx, "Admin", "admin@test.com", "admin123"))

	t.Run("wrong password", func(t *testing.T) {
		_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "admin@test.com", Password: "wrong"})
		requireAppError(t, err, "INVALID_CREDENTIALS")
		assert.Equal(t, "Invalid email or password", err.Error())
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := fx.service.Login(ctx, usecase.LoginInput{Email: "nobody@test.com", Password: "admin123"})
		requireAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("success issues tokens carrying the role", func(t *testing.T) {
		out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "Admin@Test.com", Password: "admin123"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, out.Account.Role)

		claims, err := fx.tokens.ValidateAccessToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, []string{"admin"}, claims.Roles)
		assert.Equal(t, out.Account.ID.String(), claims.Subject)
	})

	t.Run("blocked account", func(t *testing.T) {
		buyer, err := fx.service.Register(ctx, usecase.RegisterInput{Name: "B", Email: "b@test.com", Password: "123456"})
		require.NoError(t, err)
		buyer.Block()
		require.NoError(t, fx.env.accountRepo.Update(ctx, buyer))

		_, err = fx.service.Login(ctx, usecase.LoginInput{Email: "b@test.com", Password: "123456"})
		requireAppError(t, err, "ACCOUNT_BANNED")
		assert.Equal(t, "Your account has been banned. Please contact support.", err.Error())
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	_, err := fx.service.Register(ctx, usecase.RegisterInput{Name: "C", Email: "c@test.com", Password: "123456"})
	require.NoError(t, err)
	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "c@test.com", Password: "123456"})
	require.NoError(t, err)

	refreshed, err := fx.service.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, out.Account.ID, refreshed.Account.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = fx.service.RefreshToken(ctx, out.AccessToken)
	requireAppError(t, err, "REFRESH_TOKEN_INVALID")
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, fx.service.EnsureAdmin(ctx, "Admin", "admin@test.com", "admin123"))
	require.NoError(t, fx.service.EnsureAdmin(ctx, "Admin", "admin@test.com", "other-password"))

	admins, err := fx.env.accountRepo.List(ctx, repositoryAccountFilter(entity.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestSeedAdmin(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, seedAdmin(ctx, fx.service, &config.Config{}))
	require.NoError(t, seedAdmin(ctx, fx.service, &config.Config{
		Seed: &config.SeedConfig{AdminEmail: "root@test.com", AdminPassword: "rootpass"},
	}))

	out, err := fx.service.Login(ctx, usecase.LoginInput{Email: "root@test.com", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", out.Account.Name)
}
