package handler

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

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/podplatform/backend/internal/application/identity"
	"github.com/podplatform/backend/internal/application/integration"
	apporder "github.com/podplatform/backend/internal/application/order"
	apppayment "github.com/podplatform/backend/internal/application/payment"
	appproduction "github.com/podplatform/backend/internal/application/production"
	appsiteconfig "github.com/podplatform/backend/internal/application/siteconfig"
	domainintegration "github.com/podplatform/backend/internal/domain/integration"
	"github.com/podplatform/backend/internal/domain/production"
	"github.com/podplatform/backend/internal/infrastructure/auth"
	"github.com/podplatform/backend/internal/infrastructure/cache"
	"github.com/podplatform/backend/internal/infrastructure/config"
	"github.com/podplatform/backend/internal/infrastructure/ecommerce"
	"github.com/podplatform/backend/internal/infrastructure/event"
	infrapayment "github.com/podplatform/backend/internal/infrastructure/payment"
	"github.com/podplatform/backend/internal/infrastructure/persistence"
	"github.com/podplatform/backend/internal/interfaces/http/dto"
	"github.com/podplatform/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// fakeRenderer returns a fixed PDF stub
type fakeRenderer struct {
	err error
}

func (r fakeRenderer) Render(_ context.Context, sheet production.Sheet) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 " + sheet.FileName()), nil
}

// memoryStore keeps saved files in a map
type memoryStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *memoryStore) Save(_ context.Context, name string, data []byte) (*production.StoredFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[name] = data
	return &production.StoredFile{Key: name, URL: "/production_files/" + name, Size: int64(len(data))}, nil
}

// testEnv wires the real services over an in-memory SQLite database
type testEnv struct {
	db          *persistence.Database
	jwt         *auth.JWTService
	revocations *auth.InMemoryTokenRevocations
	files       *memoryStore
	settings    *appsiteconfig.SiteConfigService

	auth        *AuthHandler
	users       *UserHandler
	orders      *OrderHandler
	payments    *PaymentHandler
	integration *IntegrationHandler
	siteConfig  *SiteConfigHandler
	system      *SystemHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zaptest.NewLogger(t)

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	lock := cache.NewInMemoryKeyLock()
	t.Cleanup(func() { _ = lock.Close() })

	bus := event.NewInMemoryEventBus(log)
	jwtService := auth.NewJWTService(config.AuthConfig{
		JWTSecret:             "handler-test-secret-0123456789abcdef",
		AccessTokenExpiration: time.Hour,
		Issuer:                "pod-test",
	})
	revocations := auth.NewInMemoryTokenRevocations()

	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	files := &memoryStore{}

	siteConfigService := appsiteconfig.NewSiteConfigService(persistence.NewGormSiteConfigRepository(db.DB), log)
	orderService := apporder.NewOrderService(orderRepo, userRepo, bus, log)
	productionService := appproduction.NewProductionService(orderRepo, fakeRenderer{}, files, bus, log)
	paymentService := apppayment.NewPaymentService(
		persistence.NewGormPaymentRepository(db.DB),
		orderRepo,
		infrapayment.NewRegistry(siteConfigService, false, log),
		lock,
		bus,
		log,
	)
	storeService := integration.NewStoreService(
		persistence.NewGormStoreRepository(db.DB),
		[]domainintegration.OrderSource{ecommerce.NewMockEtsySource(log), ecommerce.NewMockShopifySource(log)},
		integration.NewImportService(orderRepo, bus, log),
		lock,
		integration.StoreServiceConfig{SyncLockTTL: time.Minute, SyncTimeout: 5 * time.Second},
		log,
	)

	return &testEnv{
		db:          db,
		jwt:         jwtService,
		revocations: revocations,
		files:       files,
		settings:    siteConfigService,
		auth:        NewAuthHandler(identity.NewAuthService(userRepo, jwtService, revocations, bus, log)),
		users:       NewUserHandler(identity.NewUserService(userRepo, revocations, jwtService, bus, log)),
		orders:      NewOrderHandler(orderService, productionService),
		payments:    NewPaymentHandler(paymentService),
		integration: NewIntegrationHandler(storeService, orderService),
		siteConfig:  NewSiteConfigHandler(siteConfigService),
		system:      NewSystemHandler(db),
	}
}

// engine mounts the handlers the way the router does. With authEnabled the
// bearer token decides the actor; otherwise X-User-ID does and every caller
// is an admin.
func (e *testEnv) engine(authEnabled bool) *gin.Engine {
	r := gin.New()
	r.GET("/", e.system.Root)
	r.GET("/health", e.system.Health)

	api := r.Group("/api/v1", middleware.RequestID())
	api.POST("/auth/register", e.auth.Register)
	api.POST("/auth/login", e.auth.Login)
	api.GET("/site-config", e.siteConfig.Public)

	authn := middleware.Authenticate(middleware.AuthConfig{
		Enabled:     authEnabled,
		JWTService:  e.jwt,
		Revocations: e.revocations,
	})

	user := api.Group("", authn, middleware.RequireUser())
	user.POST("/auth/logout", e.auth.Logout)
	user.POST("/orders", e.orders.Create)
	user.GET("/orders/:id", e.orders.GetOwn)
	user.POST("/orders/:id/payments", e.payments.Pay)
	user.GET("/orders/:id/payments", e.payments.List)
	user.POST("/integrations/connect/:platform", e.integration.Connect)
	user.GET("/integrations/stores", e.integration.ListStores)
	user.POST("/integrations/sync/:store_id", e.integration.Sync)
	user.GET("/integrations/orders", e.integration.ImportedOrders)

	admin := api.Group("/admin", authn, middleware.RequireAdmin())
	admin.GET("/users", e.users.List)
	admin.GET("/users/:id", e.users.Get)
	admin.POST("/users/:id/activate", e.users.Activate)
	admin.POST("/users/:id/deactivate", e.users.Deactivate)
	admin.PUT("/users/:id/pricing", e.users.UpdatePricing)
	admin.GET("/orders", e.orders.List)
	admin.GET("/orders/:id", e.orders.Get)
	admin.POST("/orders/:id/verify", e.orders.Verify)
	admin.POST("/orders/:id/ship", e.orders.Ship)
	admin.POST("/orders/:id/production-file", e.orders.ProductionFile)
	admin.GET("/site-config", e.siteConfig.List)
	admin.POST("/site-config", e.siteConfig.BulkUpdate)
	admin.GET("/config/payment", e.siteConfig.GetPaymentConfig)
	admin.POST("/config/payment", e.siteConfig.UpdatePaymentConfig)
	return r
}

// request sends body as JSON. headers are alternating names and values.
func request(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// envelope mirrors dto.Response with a typed payload
type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
	Meta    *dto.Meta      `json:"meta"`
}

func decodeAs[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeAs[json.RawMessage](t, w)
	require.NotNil(t, env.Error, w.Body.String())
	return env.Error.Code
}

// registerSeller creates an active seller and returns their id
func (e *testEnv) registerSeller(t *testing.T, r http.Handler, email string) uuid.UUID {
	t.Helper()
	w := request(r, http.MethodPost, "/api/v1/auth/register", RegisterRequest{
		Email:    email,
		FullName: "Test Seller",
		Password: "correct-horse-battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decodeAs[identity.UserDTO](t, w).Data.ID

	w = request(r, http.MethodPost, "/api/v1/admin/users/"+id.String()+"/activate", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return id
}

func asUser(id uuid.UUID) []string {
	return []string{middleware.UserIDHeader, id.String()}
}

func bearer(token string) []string {
	return []string{middleware.AuthHeaderKey, middleware.BearerPrefix + token}
}

func sampleOrder() CreateOrderRequest {
	return CreateOrderRequest{
		Recipient: RecipientRequest{
			Name:    "Jane Roe",
			Email:   "jane@example.com",
			Street:  "1 Print Lane",
			City:    "Leeds",
			ZipCode: "LS1 1AA",
			Country: "UK",
		},
		Items: []LineItemRequest{
			{SKU: "WL-204", Title: "Tropical Jungle Wallpaper", Quantity: 1, Variant: "100x100 cm"},
			{SKU: "CNV-001", Title: "Abstract Canvas Art", Quantity: 2, Variant: "50x70 cm"},
		},
		Amount: decimalOf("120.00"),
	}
}

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
