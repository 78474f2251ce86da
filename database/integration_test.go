package database

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

// openTestStore connects to STORE_TEST_DATABASE_URL and skips the test when
// it is not set.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("STORE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("STORE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := Connect(ctx, config.DatabaseConfig{Driver: "postgres", URL: url, MaxOpenConns: 20}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitializeTables(ctx))

	return NewStore(db)
}

func seedProduct(t *testing.T, s *Store, price string) *models.Product {
	t.Helper()
	ctx := context.Background()

	category := &models.Category{Title: "Integration"}
	require.NoError(t, s.CreateCategory(ctx, category))

	p := &models.Product{
		Name:       "Integration product",
		Slug:       "integration-product",
		UnitPrice:  decimal.RequireFromString(price),
		Inventory:  10,
		CategoryID: category.ID,
	}
	require.NoError(t, s.CreateProduct(ctx, p))
	return p
}

func TestPostgresConcurrentUpsertKeepsOneLine(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	product := seedProduct(t, s, "4.50")

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpsertCartItem(ctx, cart.ID, product.ID, 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := s.ListCartItemsWithProducts(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 20, items[0].Quantity)
	assert.Equal(t, "4.5", items[0].Product.UnitPrice.String())
}

func TestPostgresUpsertUnknownCart(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	product := seedProduct(t, s, "1.00")

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)
	require.NoError(t, s.DeleteCart(ctx, cart.ID))

	_, err = s.UpsertCartItem(ctx, cart.ID, product.ID, 1)
	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "cart", nf.Resource)
}

func TestPostgresTransactionRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)

	err = s.WithTx(ctx, func(q datastore.Queries) error {
		if err := q.DeleteCart(ctx, cart.ID); err != nil {
			return err
		}
		return apperrors.ErrEmptyCart
	})
	require.ErrorIs(t, err, apperrors.ErrEmptyCart)

	exists, err := s.CartExists(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresProductProtectedByOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	product := seedProduct(t, s, "2.00")

	user := &models.User{Username: "integration-" + product.Slug + "-" + decimal.NewFromInt(product.ID).String(), PasswordHash: "x", IsActive: true}
	require.NoError(t, s.CreateUser(ctx, user))
	customer := &models.Customer{UserID: user.ID}
	require.NoError(t, s.CreateCustomer(ctx, customer))

	order, err := s.CreateOrder(ctx, customer.ID, models.OrderPending)
	require.NoError(t, err)
	items, err := s.BulkCreateOrderItems(ctx, []models.OrderItem{
		{OrderID: order.ID, ProductID: product.ID, Quantity: 3, UnitPrice: product.UnitPrice},
	})
	require.NoError(t, err)
	assert.NotZero(t, items[0].ID)

	err = s.DeleteProduct(ctx, product.ID)
	assert.ErrorIs(t, err, apperrors.ErrProtected)

	loaded, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, "6", loaded.TotalPrice().String())
	assert.Equal(t, user.Username, loaded.Customer.User.Username)
}

func TestPostgresCartItemQuantityBounds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	product := seedProduct(t, s, "1.00")

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)

	_, err = s.UpsertCartItem(ctx, cart.ID, product.ID, 3_000_000_000)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	_, err = s.UpsertCartItem(ctx, cart.ID, product.ID, models.MaxCartItemQuantity)
	require.NoError(t, err)
	_, err = s.UpsertCartItem(ctx, cart.ID, product.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	items, err := s.ListCartItemsWithProducts(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.MaxCartItemQuantity, items[0].Quantity)
}

func TestPostgresSearchMatchesWildcardsLiterally(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	category := &models.Category{Title: "Deals"}
	require.NoError(t, s.CreateCategory(ctx, category))
	for _, name := range []string{"100%_off voucher", "1000 off voucher"} {
		p := &models.Product{Name: name, Slug: "voucher", UnitPrice: decimal.RequireFromString("1.00"), CategoryID: category.ID}
		require.NoError(t, s.CreateProduct(ctx, p))
	}

	products, total, err := s.ListProducts(ctx, datastore.ProductFilter{Search: "100%_off", CategoryID: &category.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "100%_off voucher", products[0].Name)
}
