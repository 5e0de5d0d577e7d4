package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/supplychain-service/internal/api/http/handlers"
	"github.com/spec-kit/supplychain-service/internal/auth"
	"github.com/spec-kit/supplychain-service/internal/cache"
	"github.com/spec-kit/supplychain-service/internal/config"
	"github.com/spec-kit/supplychain-service/internal/domain"
	"github.com/spec-kit/supplychain-service/internal/events"
	"github.com/spec-kit/supplychain-service/internal/observability"
	"github.com/spec-kit/supplychain-service/internal/persistence"
	"github.com/spec-kit/supplychain-service/internal/repository"
	"github.com/spec-kit/supplychain-service/internal/service"
)

// ---- fakes ----

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return repository.ErrDuplicate
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; !exists {
		return pgx.ErrNoRows
	}
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, exists := r.users[username]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	copied := user
	return &copied, nil
}

func (r *memUserRepo) Exists(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.users[username]
	return exists, nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func (r *memProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = uuid.NewString()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.products[product.ID] = *product
	return nil
}

func (r *memProductRepo) UpdateStatus(_ context.Context, id string, status domain.ProductStatus) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, exists := r.products[id]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	product.Status = status
	r.products[id] = product
	return &product, nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, exists := r.products[id]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	copied := product
	return &copied, nil
}

func (r *memProductRepo) List(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		out = append(out, product)
	}
	return out, nil
}

type memDealRepo struct {
	mu    sync.Mutex
	deals []domain.Deal
}

func (r *memDealRepo) Create(_ context.Context, deal *domain.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	deal.ID = uuid.NewString()
	deal.CreatedAt = time.Now()
	r.deals = append(r.deals, *deal)
	return nil
}

func (r *memDealRepo) List(_ context.Context) ([]domain.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Deal{}, r.deals...), nil
}

type stubPresigner struct{}

func (stubPresigner) PresignedUpload(_ context.Context, fileName, fileType, folder string) (string, string, error) {
	return "https://storage.example/upload/" + fileName, "https://storage.example/" + folder + "/" + fileName, nil
}

// ---- app setup ----

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			SessionTTLHours: 1,
			BcryptCost:      bcrypt.MinCost,
		},
	}
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher(nil)
	userRepo := &memUserRepo{users: make(map[string]domain.User)}
	productRepo := &memProductRepo{products: make(map[string]domain.Product)}
	dealRepo := &memDealRepo{}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Profiles:   cache.NewUserCache(nil, time.Minute, logger),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, logger, metrics, "http://localhost:3000", 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:            handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Auth:              handlers.NewAuthHandler(authService, auth.NewCookiePolicy(cfg.Auth.SessionTTL())),
		Products:          handlers.NewProductsHandler(service.NewProductService(productRepo, dispatcher)),
		Deals:             handlers.NewDealsHandler(service.NewDealService(dealRepo, productRepo, dispatcher)),
		Uploads:           handlers.NewUploadsHandler(stubPresigner{}),
		SessionMiddleware: auth.NewSessionMiddleware(authService.TokenManager(), userRepo),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

// ---- tests ----

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]any)
	require.Equal(t, "alice", user["username"])
	// the hash must never appear in a response
	_, leaked := user["passwordHash"]
	require.False(t, leaked)
	_, leaked = user["password"]
	require.False(t, leaked)

	resp, _ = doJSON(t, app, http.MethodPost, "/register", fiber.Map{"username": "alice", "password": "pw2"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/sign-in", fiber.Map{"username": "alice", "password": "pw2"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/sign-in", fiber.Map{"username": "carol", "password": "pw1"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/sign-in", fiber.Map{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteNoneMode, cookie.SameSite)

	resp, body = doJSON(t, app, http.MethodGet, "/check-session", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["auth"])
	require.Equal(t, "alice", body["user"].(map[string]any)["username"])

	resp, _ = doJSON(t, app, http.MethodPost, "/sign-out", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := sessionCookie(t, resp)
	require.Empty(t, cleared.Value)
	require.True(t, cleared.Expires.Before(time.Now()))

	resp, body = doJSON(t, app, http.MethodGet, "/check-session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["auth"])
	require.NotContains(t, body, "user")
}

func TestCheckSession_NeverErrors(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/check-session", nil,
		&http.Cookie{Name: auth.SessionCookieName, Value: "garbage-token"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, false, body["auth"])
}

func TestRegister_Validation(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"username": "alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestUpdateSettings(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/register", fiber.Map{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/sign-in", fiber.Map{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	// session principal overrides any username in the body
	resp, body := doJSON(t, app, http.MethodPost, "/update-settings",
		fiber.Map{"username": "mallory", "walletAddress": "0xabc"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	require.Equal(t, "alice", user["username"])
	require.Equal(t, "0xabc", user["walletAddress"])

	resp, _ = doJSON(t, app, http.MethodPost, "/update-settings", fiber.Map{"username": "nobody", "walletAddress": "0x1"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductAndDealFlow(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/add-product",
		fiber.Map{"name": "Coffee beans", "origin": "Colombia", "owner": "alice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := body["product"].(map[string]any)
	require.Equal(t, "REGISTERED", product["status"])
	productID := product["id"].(string)

	resp, body = doJSON(t, app, http.MethodPost, "/update-product-status",
		fiber.Map{"id": productID, "status": "IN_TRANSIT"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "IN_TRANSIT", body["product"].(map[string]any)["status"])

	resp, _ = doJSON(t, app, http.MethodPost, "/update-product-status",
		fiber.Map{"id": "missing", "status": "DELIVERED"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["products"], 1)

	resp, body = doJSON(t, app, http.MethodPost, "/create-deal",
		fiber.Map{"productId": productID, "seller": "alice", "buyer": "bob", "quantity": 10, "price": 250})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "PENDING", body["deal"].(map[string]any)["status"])

	resp, _ = doJSON(t, app, http.MethodPost, "/create-deal",
		fiber.Map{"productId": "missing", "seller": "a", "buyer": "b", "quantity": 1})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/deals", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["deals"], 1)
}

func TestGetPresignedURL(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/get-presigned-url",
		fiber.Map{"fileName": "invoice.pdf", "fileType": "application/pdf", "folder": "documents"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "https://storage.example/upload/invoice.pdf", body["uploadUrl"])
	require.Equal(t, "https://storage.example/documents/invoice.pdf", body["fileUrl"])

	resp, _ = doJSON(t, app, http.MethodPost, "/get-presigned-url", fiber.Map{"fileName": "x"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
