package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/supplychain-service/internal/domain"
	"github.com/spec-kit/supplychain-service/internal/repository"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User *domain.User
	Role domain.UserRole
}

// SessionMiddleware resolves the session cookie into a principal when one is
// present and valid. It never rejects the request; handlers that need a
// caller decide what an absent principal means.
type SessionMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, users repository.UserRepository) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, users: users}
}

// Handle loads the principal for a valid session cookie, if any.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := TokenFromRequest(c)
	if token == "" {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return c.Next()
	}

	user, err := m.users.GetByUsername(c.UserContext(), claims.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Next()
		}
		return apperrors.NewUpstreamError("store", err)
	}

	c.Locals(principalKey, &Principal{User: user, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
