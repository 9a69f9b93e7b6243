package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/axellelanca/catalog/internal/auth"
	"github.com/axellelanca/catalog/internal/database/dbtest"
	"github.com/axellelanca/catalog/internal/logger"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
	"github.com/axellelanca/catalog/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type submission struct {
	name string
	args []any
}

type fakeDispatcher struct {
	mu   sync.Mutex
	subs []submission
}

func (f *fakeDispatcher) Submit(name string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, submission{name: name, args: args})
	return nil
}

func (f *fakeDispatcher) named(name string) []submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []submission
	for _, s := range f.subs {
		if s.name == name {
			out = append(out, s)
		}
	}
	return out
}

type noopEnricher struct{}

func (noopEnricher) Enrich(string, *models.VisitMetadata) {}

type testServer struct {
	t          *testing.T
	router     *gin.Engine
	dispatcher *fakeDispatcher
	hasher     auth.PasswordHasher
	users      *repository.GormUserRepository
	brands     *repository.GormBrandRepository
	products   *repository.GormProductRepository
	channels   *repository.GormChannelRepository
	visits     *repository.GormVisitRepository
	tokens     *auth.JWTManager
}

func newTestServer(t *testing.T) *testServer {
	db := dbtest.New(t)
	log := logger.Discard()
	hasher := auth.PasswordHasher{Cost: bcrypt.MinCost}
	tokens := auth.NewJWTManager("test-secret-that-is-long-enough-for-hs256", "catalog", time.Minute, time.Hour)
	dispatcher := &fakeDispatcher{}

	users := repository.NewUserRepository(db)
	brands := repository.NewBrandRepository(db)
	products := repository.NewProductRepository(db)
	channels := repository.NewChannelRepository(db)
	prices := repository.NewPriceRepository(db)
	visits := repository.NewVisitRepository(db)

	notifier := services.NewProductNotifier(users, dispatcher, log)
	deps := Dependencies{
		Auth:     services.NewAuthService(users, hasher, tokens),
		Products: services.NewProductService(products, brands, dispatcher, notifier, log),
		Brands:   services.NewBrandService(brands, products, log),
		Channels: services.NewChannelService(channels, log),
		Prices:   services.NewPriceService(prices, products, channels),
		Accounts: services.NewAccountService(users, hasher, log),
		Visits:   services.NewVisitService(products, visits, noopEnricher{}, log),
	}

	return &testServer{
		t:          t,
		router:     NewRouter(deps, log),
		dispatcher: dispatcher,
		hasher:     hasher,
		users:      users,
		brands:     brands,
		products:   products,
		channels:   channels,
		visits:     visits,
		tokens:     tokens,
	}
}

func (s *testServer) user(email, password string, staff bool) *models.User {
	s.t.Helper()
	hash, err := s.hasher.Hash(password)
	require.NoError(s.t, err)
	u := &models.User{Email: email, Password: hash, IsStaff: staff, IsActive: true}
	require.NoError(s.t, s.users.CreateUser(context.Background(), u))
	return u
}

func (s *testServer) token(u *models.User) string {
	s.t.Helper()
	tok, err := s.tokens.Issue(auth.AccessToken, u.ID, u.Email)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) product(sku, name, price string) *models.Product {
	s.t.Helper()
	ctx := context.Background()
	brand, err := s.brands.GetBrandByName(ctx, "Acme")
	if err != nil {
		brand = &models.Brand{Name: "Acme"}
		require.NoError(s.t, s.brands.CreateBrand(ctx, brand))
	}
	p := &models.Product{SKU: sku, Name: name, Price: decimal.RequireFromString(price), BrandID: brand.ID}
	require.NoError(s.t, s.products.CreateProduct(ctx, p))
	return p
}

// do sends a request; token may be empty for anonymous calls and body nil.
func (s *testServer) do(method, path, token string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
