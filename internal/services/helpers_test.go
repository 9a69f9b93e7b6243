package services

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/axellelanca/catalog/internal/auth"
	"github.com/axellelanca/catalog/internal/database/dbtest"
	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/repository"
)

type submission struct {
	name string
	args []any
}

type fakeDispatcher struct {
	mu   sync.Mutex
	subs []submission
	err  error
}

func (f *fakeDispatcher) Submit(name string, args ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.subs = append(f.subs, submission{name: name, args: args})
	return nil
}

func (f *fakeDispatcher) submitted() []submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]submission(nil), f.subs...)
}

var testHasher = auth.PasswordHasher{Cost: bcrypt.MinCost}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	db       *gorm.DB
	products *repository.GormProductRepository
	brands   *repository.GormBrandRepository
	channels *repository.GormChannelRepository
	prices   *repository.GormPriceRepository
	users    *repository.GormUserRepository
	visits   *repository.GormVisitRepository
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.New(t)
	return &fixture{
		db:       db,
		products: repository.NewProductRepository(db),
		brands:   repository.NewBrandRepository(db),
		channels: repository.NewChannelRepository(db),
		prices:   repository.NewPriceRepository(db),
		users:    repository.NewUserRepository(db),
		visits:   repository.NewVisitRepository(db),
	}
}

func (f *fixture) brand(t *testing.T, name string) *models.Brand {
	t.Helper()
	b := &models.Brand{Name: name}
	require.NoError(t, f.brands.CreateBrand(context.Background(), b))
	return b
}

func (f *fixture) channel(t *testing.T, name string) *models.Channel {
	t.Helper()
	c := &models.Channel{Name: name}
	require.NoError(t, f.channels.CreateChannel(context.Background(), c))
	return c
}

func (f *fixture) product(t *testing.T, sku, name, price string, brand *models.Brand) *models.Product {
	t.Helper()
	p := &models.Product{SKU: sku, Name: name, Price: decimal.RequireFromString(price), BrandID: brand.ID, Brand: *brand}
	require.NoError(t, f.products.CreateProduct(context.Background(), p))
	return p
}

func (f *fixture) user(t *testing.T, email, password string, staff, active bool) *models.User {
	t.Helper()
	hash, err := testHasher.Hash(password)
	require.NoError(t, err)
	u := &models.User{Email: email, Password: hash, IsStaff: staff, IsActive: active}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
