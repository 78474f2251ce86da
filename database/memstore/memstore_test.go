package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

func seed(t *testing.T, s *Store) (models.Category, []models.Product) {
	t.Helper()
	ctx := context.Background()

	tea := models.Category{Title: "Tea"}
	require.NoError(t, s.CreateCategory(ctx, &tea))
	snacks := models.Category{Title: "Snacks"}
	require.NoError(t, s.CreateCategory(ctx, &snacks))

	var products []models.Product
	for _, p := range []models.Product{
		{Name: "Green tea", UnitPrice: decimal.RequireFromString("4.50"), Inventory: 3, CategoryID: tea.ID},
		{Name: "Black tea", UnitPrice: decimal.RequireFromString("3.00"), Inventory: 12, CategoryID: tea.ID},
		{Name: "Biscuits", UnitPrice: decimal.RequireFromString("1.25"), Inventory: 40, CategoryID: snacks.ID},
	} {
		require.NoError(t, s.CreateProduct(ctx, &p))
		products = append(products, p)
	}
	return tea, products
}

func TestListProductsFiltersAndOrders(t *testing.T) {
	s := New()
	ctx := context.Background()
	tea, products := seed(t, s)

	page, total, err := s.ListProducts(ctx, datastore.ProductFilter{Search: "TEA"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)

	// Matches on the category title as well as the product name.
	page, _, err = s.ListProducts(ctx, datastore.ProductFilter{Search: "snack"})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Snacks", page[0].CategoryName)

	low := decimal.RequireFromString("2")
	page, total, err = s.ListProducts(ctx, datastore.ProductFilter{
		CategoryID: &tea.ID,
		PriceGT:    &low,
		Ordering:   "-unit_price",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []int64{products[0].ID, products[1].ID}, []int64{page[0].ID, page[1].ID})

	page, total, err = s.ListProducts(ctx, datastore.ProductFilter{Ordering: "name", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 1)
	assert.Equal(t, "Green tea", page[0].Name)
}

func TestUpsertCartItemAccumulates(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, products := seed(t, s)

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)

	first, err := s.UpsertCartItem(ctx, cart.ID, products[0].ID, 2)
	require.NoError(t, err)
	second, err := s.UpsertCartItem(ctx, cart.ID, products[0].ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	n, err := s.CountCartItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpsertCartItemMissingParents(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, products := seed(t, s)

	_, err := s.UpsertCartItem(ctx, uuid.New(), products[0].ID, 1)
	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "cart", nf.Resource)

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)
	_, err = s.UpsertCartItem(ctx, cart.ID, 999, 1)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "product", nf.Resource)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, products := seed(t, s)

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)
	_, err = s.UpsertCartItem(ctx, cart.ID, products[1].ID, 1)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.WithTx(ctx, func(q datastore.Queries) error {
		require.NoError(t, q.DeleteCart(ctx, cart.ID))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestWithTxCancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)

	err = s.WithTx(ctx, func(q datastore.Queries) error {
		if err := q.DeleteCart(ctx, cart.ID); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	exists, err := s.CartExists(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFailOn(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.FailOn("CreateCart", apperrors.Unavailable("create cart", errors.New("disk full")))
	_, err := s.CreateCart(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	s.FailOn("CreateCart", nil)
	_, err = s.CreateCart(ctx)
	assert.NoError(t, err)
}

func TestDeleteGuards(t *testing.T) {
	s := New()
	ctx := context.Background()
	tea, products := seed(t, s)

	assert.ErrorIs(t, s.DeleteCategory(ctx, tea.ID), apperrors.ErrProtected)

	user := models.User{Username: "ada", IsActive: true}
	require.NoError(t, s.CreateUser(ctx, &user))
	customer := models.Customer{UserID: user.ID}
	require.NoError(t, s.CreateCustomer(ctx, &customer))
	order, err := s.CreateOrder(ctx, customer.ID, models.OrderPending)
	require.NoError(t, err)
	_, err = s.BulkCreateOrderItems(ctx, []models.OrderItem{
		{OrderID: order.ID, ProductID: products[2].ID, Quantity: 1, UnitPrice: products[2].UnitPrice},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteProduct(ctx, products[2].ID), apperrors.ErrProtected)
	assert.NoError(t, s.DeleteProduct(ctx, products[0].ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, products[0].ID), apperrors.ErrNotFound)
}

func TestCartItemQuantityBounds(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, products := seed(t, s)
	cart, err := s.CreateCart(ctx)
	require.NoError(t, err)

	_, err = s.UpsertCartItem(ctx, cart.ID, products[0].ID, 3_000_000_000)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	item, err := s.UpsertCartItem(ctx, cart.ID, products[0].ID, models.MaxCartItemQuantity)
	require.NoError(t, err)
	_, err = s.UpsertCartItem(ctx, cart.ID, products[0].ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	item.Quantity = models.MaxCartItemQuantity + 1
	assert.ErrorIs(t, s.SaveCartItem(ctx, item), apperrors.ErrInvalid)

	stored, err := s.GetCartItem(ctx, cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaxCartItemQuantity, stored.Quantity)
}
