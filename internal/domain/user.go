package domain

import "time"

// UserRole is a free-text role label attached to accounts. It is carried in
// session claims but never enforced; there is no RBAC in this service.
type UserRole string

const (
	RoleParticipant UserRole = "participant"
)

// User is the stored credential record plus profile fields.
type User struct {
	ID            string
	Username      string
	PasswordHash  string
	Role          UserRole
	WalletAddress string
	WalletBalance int64
	ProfileImage  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
