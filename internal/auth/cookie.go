package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// CookiePolicy maps session tokens to cookie attributes. The web client and
// API run on different origins, so SameSite must be None and Secure set.
type CookiePolicy struct {
	ttl time.Duration
}

// NewCookiePolicy builds the policy with the token TTL as cookie max age.
func NewCookiePolicy(ttl time.Duration) *CookiePolicy {
	return &CookiePolicy{ttl: ttl}
}

// Attach sets the session cookie on the response.
func (p *CookiePolicy) Attach(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		MaxAge:   int(p.ttl.Seconds()),
		Expires:  time.Now().Add(p.ttl),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// Clear expires the session cookie immediately.
func (p *CookiePolicy) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// TokenFromRequest reads the session token via the framework cookie parser.
// Returns "" when no session cookie is present.
func TokenFromRequest(c *fiber.Ctx) string {
	return c.Cookies(SessionCookieName)
}
