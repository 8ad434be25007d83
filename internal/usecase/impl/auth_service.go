// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "rescue/internal/delivery/context"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/repository"
	"rescue/internal/domain/service"
	"rescue/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const minPasswordLength = 6

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input and creates the account with its role profile in one transaction.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.Account, error) {
	account, err := srv.buildAccount(input)
	if err != nil {
		return nil, err
	}

	if _, err := srv.accountRepo.FindByEmail(ctx, account.Email); err == nil {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}
	account.PasswordHash = hash

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewAccountRepository().Create(ctx, account)
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Info("Account registered",
		slog.String("account_id", account.ID.String()),
		slog.String("role", account.Role.String()),
	)

	return account, nil
}

func (srv *authService) buildAccount(input usecase.RegisterInput) (*entity.Account, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and email are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		return nil, domainerrors.ErrPasswordMismatch
	}

	role := input.Role
	if role == "" {
		role = entity.RoleBuyer
	}

	switch role {
	case entity.RoleBuyer:
		return entity.NewBuyer(name, email, input.Phone, input.Address), nil
	case entity.RoleSeller:
		storeName := strings.TrimSpace(input.StoreName)
		if storeName == "" {
			return nil, domainerrors.ErrStoreNameRequired
		}

		return entity.NewSeller(name, email, input.Phone, storeName, input.Address), nil
	default:
		return nil, domainerrors.ErrInvalidRole
	}
}

// Login checks the credentials and issues a token pair.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Info("Login rejected", slog.String("account_id", account.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !account.IsActive() {
		return nil, domainerrors.ErrAccountBanned
	}

	return srv.issueTokens(account)
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (srv *authService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}
	accountID, err := claims.AccountID()
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}
	if !account.IsActive() {
		return nil, domainerrors.ErrAccountBanned
	}

	return srv.issueTokens(account)
}

func (srv *authService) issueTokens(account *entity.Account) (*usecase.AuthOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.ID, account.Roles().ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.AuthOutput{
		Account:      account,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Me returns the caller's account.
func (srv *authService) Me(ctx context.Context, actor usecase.Actor) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, actor.ID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}

// EnsureAdmin seeds the admin account when the email is not registered yet.
func (srv *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	_, err := srv.accountRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(err, "failed to look up admin")
	}

	hash, err := srv.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}

	admin := entity.NewAdmin(name, strings.ToLower(strings.TrimSpace(email)))
	admin.PasswordHash = hash
	if err := srv.accountRepo.Create(ctx, admin); err != nil && !errors.Is(err, repository.ErrDuplicateEmail) {
		return errors.Wrap(err, "failed to create admin")
	}

	srv.log(ctx).Info("Admin account seeded", slog.String("email", admin.Email))

	return nil
}
