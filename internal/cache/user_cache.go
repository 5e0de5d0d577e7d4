package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

const profileKeyPrefix = "user:profile:"

// UserCache keeps short-lived copies of user profiles keyed by username so
// check-session does not hit Postgres on every poll. Cache failures are
// logged and fall through to the store; they never fail a request.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewUserCache builds the cache. A nil client disables caching.
func NewUserCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *UserCache {
	return &UserCache{client: client, ttl: ttl, logger: logger}
}

type cachedProfile struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	Role          domain.UserRole `json:"role"`
	WalletAddress string          `json:"wallet_address"`
	WalletBalance int64           `json:"wallet_balance"`
	ProfileImage  string          `json:"profile_image"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Get returns the cached profile for the username, or nil on miss. The
// password hash is never cached, so the returned record carries none.
func (c *UserCache) Get(ctx context.Context, username string) *domain.User {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := c.client.Get(ctx, profileKeyPrefix+username).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("profile cache read failed", zap.Error(err))
		}
		return nil
	}
	var cached cachedProfile
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Debug("profile cache entry corrupt", zap.Error(err))
		return nil
	}
	return &domain.User{
		ID:            cached.ID,
		Username:      cached.Username,
		Role:          cached.Role,
		WalletAddress: cached.WalletAddress,
		WalletBalance: cached.WalletBalance,
		ProfileImage:  cached.ProfileImage,
		CreatedAt:     cached.CreatedAt,
		UpdatedAt:     cached.UpdatedAt,
	}
}

// Set stores the profile under its username.
func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}
	raw, err := json.Marshal(cachedProfile{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		WalletAddress: user.WalletAddress,
		WalletBalance: user.WalletBalance,
		ProfileImage:  user.ProfileImage,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, profileKeyPrefix+user.Username, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("profile cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached profile after a settings change.
func (c *UserCache) Invalidate(ctx context.Context, username string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, profileKeyPrefix+username).Err(); err != nil {
		c.logger.Debug("profile cache invalidate failed", zap.Error(err))
	}
}
