package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/supplychain-service/internal/domain"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

type staticUsersStore struct {
	user *domain.User
	err  error
}

func (s *staticUsersStore) Create(context.Context, *domain.User) error { return s.err }
func (s *staticUsersStore) Update(context.Context, *domain.User) error { return s.err }
func (s *staticUsersStore) GetByUsername(context.Context, string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}
func (s *staticUsersStore) Exists(context.Context, string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.user != nil, nil
}

func newMiddlewareApp(t *testing.T, store *staticUsersStore) (*fiber.App, string, *error) {
	t.Helper()
	tokens := NewTokenManager("test-secret", time.Hour)
	token, _, err := tokens.GenerateToken("alice", domain.RoleParticipant)
	require.NoError(t, err)

	var captured error
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			captured = err
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	app.Use(NewSessionMiddleware(tokens, store).Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if principal, ok := PrincipalFromContext(c); ok {
			return c.JSON(fiber.Map{"username": principal.User.Username})
		}
		return c.JSON(fiber.Map{"username": nil})
	})
	return app, token, &captured
}

func TestSessionMiddleware_ResolvesPrincipal(t *testing.T) {
	store := &staticUsersStore{user: &domain.User{Username: "alice", Role: domain.RoleParticipant}}
	app, token, _ := newMiddlewareApp(t, store)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionMiddleware_MissingUserContinuesAnonymously(t *testing.T) {
	store := &staticUsersStore{err: pgx.ErrNoRows}
	app, token, captured := newMiddlewareApp(t, store)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, *captured)
}

func TestSessionMiddleware_StoreFailureIsUpstreamError(t *testing.T) {
	store := &staticUsersStore{err: errors.New("connection refused")}
	app, token, captured := newMiddlewareApp(t, store)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, *captured, &domainErr)
	require.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
}
