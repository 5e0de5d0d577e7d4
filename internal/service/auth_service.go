package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/supplychain-service/internal/auth"
	"github.com/spec-kit/supplychain-service/internal/cache"
	"github.com/spec-kit/supplychain-service/internal/config"
	"github.com/spec-kit/supplychain-service/internal/domain"
	"github.com/spec-kit/supplychain-service/internal/events"
	"github.com/spec-kit/supplychain-service/internal/repository"
	apperrors "github.com/spec-kit/supplychain-service/pkg/util"
)

// SessionStatus is the result of a session check. Check failures are not
// errors; they degrade to an unauthenticated status.
type SessionStatus struct {
	Authenticated bool
	User          *domain.User
}

// ProfileCache keeps short-lived copies of user profiles for session checks.
// *cache.UserCache is the production implementation.
type ProfileCache interface {
	Get(ctx context.Context, username string) *domain.User
	Set(ctx context.Context, user *domain.User)
	Invalidate(ctx context.Context, username string)
}

var _ ProfileCache = (*cache.UserCache)(nil)

// AuthService coordinates registration, sign-in and session checks.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	profiles   ProfileCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Profiles   ProfileCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		profiles:   deps.Profiles,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account with creation-time profile defaults. The
// unique index on username is the authoritative duplicate check; the
// preceding lookup only produces the friendlier conflict message.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewUpstreamError("store", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrEmptyPassword) {
			return nil, apperrors.NewValidationError("password must not be empty", nil)
		}
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleParticipant,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
		}
		return nil, apperrors.NewUpstreamError("store", err)
	}

	s.publish(ctx, events.EventUserRegistered, user.Username, events.UserRegisteredPayload{
		Username: user.Username,
		Role:     user.Role,
	})
	return user, nil
}

// SignIn authenticates the credential and issues a session token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, "", time.Time{}, apperrors.NewUpstreamError("store", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.Username, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.cacheSet(ctx, user)
	return user, token, exp, nil
}

// CheckSession verifies the session token and re-resolves the backing user.
// Trust is bound to continued existence of the record: a valid token whose
// user row is gone reports unauthenticated, even when a cached profile is
// still present. The cache only spares the full row fetch; the store stays
// authoritative for liveness. Never returns an error.
func (s *AuthService) CheckSession(ctx context.Context, token string) SessionStatus {
	if token == "" {
		return SessionStatus{}
	}

	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		s.logger.Debug("session token rejected", zap.Error(err))
		return SessionStatus{}
	}

	if user := s.cacheGet(ctx, claims.Username); user != nil {
		alive, err := s.users.Exists(ctx, claims.Username)
		if err != nil {
			s.logger.Warn("session user liveness check failed", zap.Error(err))
			return SessionStatus{}
		}
		if !alive {
			s.cacheInvalidate(ctx, claims.Username)
			return SessionStatus{}
		}
		return SessionStatus{Authenticated: true, User: user}
	}

	user, err := s.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("session user lookup failed", zap.Error(err))
		}
		return SessionStatus{}
	}

	s.cacheSet(ctx, user)
	return SessionStatus{Authenticated: true, User: user}
}

// UpdateSettings updates the caller's profile fields.
func (s *AuthService) UpdateSettings(ctx context.Context, username, walletAddress, profileImage string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, apperrors.NewUpstreamError("store", err)
	}

	if walletAddress != "" {
		user.WalletAddress = walletAddress
	}
	if profileImage != "" {
		user.ProfileImage = profileImage
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return nil, apperrors.NewUpstreamError("store", err)
	}

	s.cacheInvalidate(ctx, username)
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) cacheGet(ctx context.Context, username string) *domain.User {
	if s.profiles == nil {
		return nil
	}
	return s.profiles.Get(ctx, username)
}

func (s *AuthService) cacheSet(ctx context.Context, user *domain.User) {
	if s.profiles != nil {
		s.profiles.Set(ctx, user)
	}
}

func (s *AuthService) cacheInvalidate(ctx context.Context, username string) {
	if s.profiles != nil {
		s.profiles.Invalidate(ctx, username)
	}
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
