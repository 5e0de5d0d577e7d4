package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/supplychain-service/internal/domain"
)

// A nil client disables caching entirely; every operation must be a safe no-op
// so the service degrades to store lookups when Redis is absent.
func TestUserCache_NilClient(t *testing.T) {
	c := NewUserCache(nil, time.Minute, zap.NewNop())
	ctx := context.Background()

	require.Nil(t, c.Get(ctx, "alice"))
	c.Set(ctx, &domain.User{Username: "alice"})
	c.Invalidate(ctx, "alice")
	require.Nil(t, c.Get(ctx, "alice"))
}

func TestUserCache_NilReceiver(t *testing.T) {
	var c *UserCache
	ctx := context.Background()

	require.Nil(t, c.Get(ctx, "alice"))
	c.Set(ctx, &domain.User{Username: "alice"})
	c.Invalidate(ctx, "alice")
}
