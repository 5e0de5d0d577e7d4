package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCookiePolicy_Attach(t *testing.T) {
	policy := NewCookiePolicy(time.Hour)

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		policy.Attach(c, "session-token")
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, SessionCookieName, cookie.Name)
	require.Equal(t, "session-token", cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	require.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
}

func TestCookiePolicy_Clear(t *testing.T) {
	policy := NewCookiePolicy(time.Hour)

	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		policy.Clear(c)
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	require.Equal(t, SessionCookieName, cookie.Name)
	require.Empty(t, cookie.Value)
	require.True(t, cookie.Expires.Before(time.Now()))
}

func TestTokenFromRequest_MultipleCookies(t *testing.T) {
	app := fiber.New()
	var got string
	app.Get("/check", func(c *fiber.Ctx) error {
		got = TokenFromRequest(c)
		return c.SendStatus(http.StatusOK)
	})

	// the session cookie must be found regardless of ordering
	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "session-token"})
	req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "session-token", got)
}
