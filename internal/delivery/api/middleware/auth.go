package middleware

import (
	"strings"

	"rescue/internal/delivery/api/response"
	"rescue/internal/domain/entity"
	domainerrors "rescue/internal/domain/errors"
	"rescue/internal/domain/service"
	"rescue/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	contextKeyAccountID = "accountID"
	contextKeyRoles     = "roles"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	authUC   usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, authUC: authUC}
}

// Authenticate validates the bearer access token and stores the caller on the echo context.
// The account is looked up on every request, so blocking or deleting it takes effect
// before the access token expires.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
		}

		roles := entity.RolesFromStrings(claims.Roles)
		if len(roles) == 0 {
			return response.Unauthorized(c, "INVALID_TOKEN", "Role missing from token")
		}

		account, err := m.authUC.Me(c.Request().Context(), usecase.Actor{ID: accountID, Role: roles[0]})
		if errors.Is(err, domainerrors.ErrAccountNotFound) {
			return response.Unauthorized(c, "INVALID_TOKEN", "Account no longer exists")
		}
		if err != nil {
			return errors.WithStack(err)
		}
		if !account.IsActive() {
			return response.Forbidden(c, domainerrors.ErrAccountBanned.ErrorCode(), domainerrors.ErrAccountBanned.Error())
		}

		c.Set(contextKeyAccountID, accountID)
		c.Set(contextKeyRoles, roles)

		return next(c)
	}
}

// RequireRole allows the request through when the caller holds one of the given roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(contextKeyRoles).(entity.Roles)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: role information missing")
			}

			for _, role := range allowed {
				if roles.Contains(role) {
					return next(c)
				}
			}

			return response.Forbidden(c, "FORBIDDEN", "Permission denied for role "+roles[0].String())
		}
	}
}

// GetAccountID returns the authenticated account ID.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	accountID, ok := c.Get(contextKeyAccountID).(uuid.UUID)

	return accountID, ok
}

// GetActor returns the authenticated caller as a use case actor.
func GetActor(c echo.Context) (usecase.Actor, bool) {
	accountID, ok := GetAccountID(c)
	if !ok {
		return usecase.Actor{}, false
	}

	roles, ok := c.Get(contextKeyRoles).(entity.Roles)
	if !ok || len(roles) == 0 {
		return usecase.Actor{}, false
	}

	return usecase.Actor{ID: accountID, Role: roles[0]}, true
}
