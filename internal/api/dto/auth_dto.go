package dto

import (
	"time"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInRequest payload for sign-in.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateSettingsRequest payload for profile settings.
type UpdateSettingsRequest struct {
	Username      string `json:"username"`
	WalletAddress string `json:"walletAddress"`
	ProfileImage  string `json:"profileImage"`
}

// UserResponse is the public projection of a user record. The password hash
// is deliberately absent and must never be added here.
type UserResponse struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	Role          domain.UserRole `json:"role"`
	WalletAddress string          `json:"walletAddress"`
	WalletBalance int64           `json:"walletBalance"`
	ProfileImage  string          `json:"profileImage"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SessionResponse is the check-session result.
type SessionResponse struct {
	Auth bool          `json:"auth"`
	User *UserResponse `json:"user,omitempty"`
}

// NewUserResponse projects a domain user to its public view.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		WalletAddress: user.WalletAddress,
		WalletBalance: user.WalletBalance,
		ProfileImage:  user.ProfileImage,
		CreatedAt:     user.CreatedAt,
	}
}
