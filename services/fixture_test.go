package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/database/memstore"
	"github.com/shadighanaat/DRF-store/models"
)

type fixture struct {
	store    *memstore.Store
	svc      *Services
	category *models.Category
	customer *models.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	cfg := &config.Config{
		Auth:    config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Catalog: config.CatalogConfig{PageSize: 10, TaxRate: "0.09", RialsPerDollar: 600000},
	}
	f := &fixture{store: store, svc: New(store, cfg, zap.NewNop())}

	ctx := context.Background()
	var err error
	f.category, err = f.svc.Catalog.CreateCategory(ctx, CategoryInput{Title: "Groceries"})
	require.NoError(t, err)

	user, err := f.svc.Accounts.Register(ctx, RegisterInput{Username: "alice", Password: "correct horse"})
	require.NoError(t, err)
	f.customer, err = store.FindCustomerByUserID(ctx, user.ID)
	require.NoError(t, err)
	return f
}

func (f *fixture) product(t *testing.T, name, price string) *models.Product {
	t.Helper()
	p, err := f.svc.Catalog.CreateProduct(context.Background(), ProductInput{
		Name:       name,
		UnitPrice:  decimal.RequireFromString(price),
		Inventory:  100,
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) cart(t *testing.T) *models.Cart {
	t.Helper()
	cart, err := f.svc.Carts.Create(context.Background())
	require.NoError(t, err)
	return cart
}
