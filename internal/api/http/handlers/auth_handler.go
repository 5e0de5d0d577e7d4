package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/supplychain-service/internal/api/dto"
	"github.com/spec-kit/supplychain-service/internal/auth"
	"github.com/spec-kit/supplychain-service/internal/service"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

// AuthHandler exposes registration, sign-in/out and session endpoints.
type AuthHandler struct {
	auth    *service.AuthService
	cookies *auth.CookiePolicy
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookiePolicy) *AuthHandler {
	return &AuthHandler{auth: authService, cookies: cookies}
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, err := h.auth.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// SignIn handles POST /sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, token, _, err := h.auth.SignIn(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Attach(c, token)
	return c.JSON(fiber.Map{
		"message": "user signed in successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// SignOut handles POST /sign-out. Idempotent; no valid session required.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return c.JSON(fiber.Map{"message": "user signed out successfully"})
}

// CheckSession handles GET /check-session. Never errors to the caller.
func (h *AuthHandler) CheckSession(c *fiber.Ctx) error {
	status := h.auth.CheckSession(c.UserContext(), auth.TokenFromRequest(c))
	resp := dto.SessionResponse{Auth: status.Authenticated}
	if status.User != nil {
		user := dto.NewUserResponse(status.User)
		resp.User = &user
	}
	return c.JSON(resp)
}

// UpdateSettings handles POST /update-settings. The session principal wins
// over a username supplied in the body.
func (h *AuthHandler) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	username := req.Username
	if principal, ok := auth.PrincipalFromContext(c); ok && principal.User != nil {
		username = principal.User.Username
	}
	if username == "" {
		return apperrors.NewValidationError("username required", nil)
	}

	user, err := h.auth.UpdateSettings(c.UserContext(), username, req.WalletAddress, req.ProfileImage)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}
