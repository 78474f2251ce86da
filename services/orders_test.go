package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/models"
)

func TestPlaceOrderExample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Product A", "10.00")
	b := f.product(t, "Product B", "5.00")
	cart := f.cart(t)

	_, err := f.svc.Carts.AddItem(ctx, cart.ID, a.ID, 2)
	require.NoError(t, err)
	_, err = f.svc.Carts.AddItem(ctx, cart.ID, b.ID, 1)
	require.NoError(t, err)

	order, err := f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, f.customer.ID, order.CustomerID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, a.ID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "10.00", order.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, b.ID, order.Items[1].ProductID)
	assert.Equal(t, 1, order.Items[1].Quantity)
	assert.Equal(t, "5.00", order.Items[1].UnitPrice.StringFixed(2))
	assert.Equal(t, "25.00", order.TotalPrice().StringFixed(2))

	_, err = f.svc.Carts.Get(ctx, cart.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	stored, err := f.store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
}

func TestPlaceOrderSnapshotsPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Product A", "10.00")
	cart := f.cart(t)
	_, err := f.svc.Carts.AddItem(ctx, cart.ID, a.ID, 1)
	require.NoError(t, err)

	order, err := f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
	require.NoError(t, err)

	_, err = f.svc.Catalog.UpdateProduct(ctx, a.ID, ProductInput{
		Name:       a.Name,
		UnitPrice:  decimal.RequireFromString("99.99"),
		CategoryID: a.CategoryID,
	})
	require.NoError(t, err)

	stored, err := f.store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "10.00", stored.Items[0].UnitPrice.StringFixed(2))
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := f.cart(t)

	_, err := f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	orders, err := f.store.ListOrders(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderUnknownCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Orders.Place(context.Background(), uuid.New(), f.customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPlaceOrderUnknownCustomerRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Product A", "10.00")
	cart := f.cart(t)
	_, err := f.svc.Carts.AddItem(ctx, cart.ID, a.ID, 1)
	require.NoError(t, err)

	_, err = f.svc.Orders.Place(ctx, cart.ID, 9999)
	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customer", nf.Resource)

	got, err := f.svc.Carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestPlaceOrderFailureLeavesCartUntouched(t *testing.T) {
	for _, op := range []string{"CreateOrder", "ListCartItemsWithProducts", "BulkCreateOrderItems", "DeleteCart"} {
		t.Run(op, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			a := f.product(t, "Product A", "10.00")
			b := f.product(t, "Product B", "5.00")
			cart := f.cart(t)
			_, err := f.svc.Carts.AddItem(ctx, cart.ID, a.ID, 2)
			require.NoError(t, err)
			_, err = f.svc.Carts.AddItem(ctx, cart.ID, b.ID, 1)
			require.NoError(t, err)

			f.store.FailOn(op, apperrors.Unavailable(op, assert.AnError))
			_, err = f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
			require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
			f.store.FailOn(op, nil)

			got, err := f.svc.Carts.Get(ctx, cart.ID)
			require.NoError(t, err)
			require.Len(t, got.Items, 2)
			assert.Equal(t, 2, got.Items[0].Quantity)
			assert.Equal(t, 1, got.Items[1].Quantity)

			orders, err := f.store.ListOrders(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestPlaceOrderCancelledContext(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "Product A", "10.00")
	cart := f.cart(t)
	_, err := f.svc.Carts.AddItem(context.Background(), cart.ID, a.ID, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	exists, err := f.store.CartExists(context.Background(), cart.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPlaceOrderConcurrentlyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Product A", "10.00")
	cart := f.cart(t)
	_, err := f.svc.Carts.AddItem(ctx, cart.ID, a.ID, 3)
	require.NoError(t, err)

	const attempts = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		placed int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
			if err == nil {
				mu.Lock()
				placed++
				mu.Unlock()
				return
			}
			// Losers see the cart gone, or see it empty when they counted
			// its lines just after the winner committed.
			assert.True(t, errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrEmptyCart), err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, placed)
	orders, err := f.store.ListOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 3, orders[0].Items[0].Quantity)
}

func TestOrderVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Product A", "10.00")
	cart := f.cart(t)
	_, err := f.svc.Carts.AddItem(ctx, cart.ID, a.ID, 1)
	require.NoError(t, err)
	order, err := f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
	require.NoError(t, err)

	bob, err := f.svc.Accounts.Register(ctx, RegisterInput{Username: "bob", Password: "another secret"})
	require.NoError(t, err)

	owner := Actor{UserID: f.customer.UserID}
	mine, err := f.svc.Orders.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.svc.Orders.List(ctx, Actor{UserID: bob.ID})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.svc.Orders.Get(ctx, Actor{UserID: bob.ID}, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := f.svc.Orders.List(ctx, Actor{UserID: bob.ID, IsStaff: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Customer)
	assert.Equal(t, "alice", all[0].Customer.User.Username)
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.product(t, "Product A", "10.00")
	cart := f.cart(t)
	_, err := f.svc.Carts.AddItem(ctx, cart.ID, a.ID, 1)
	require.NoError(t, err)
	order, err := f.svc.Orders.Place(ctx, cart.ID, f.customer.ID)
	require.NoError(t, err)

	_, err = f.svc.Orders.UpdateStatus(ctx, order.ID, models.OrderComplete)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	_, err = f.svc.Orders.UpdateStatus(ctx, order.ID, "shipped")
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	updated, err := f.svc.Orders.UpdateStatus(ctx, order.ID, models.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, updated.Status)

	updated, err = f.svc.Orders.UpdateStatus(ctx, order.ID, models.OrderComplete)
	require.NoError(t, err)
	assert.Equal(t, models.OrderComplete, updated.Status)

	_, err = f.svc.Orders.UpdateStatus(ctx, order.ID, models.OrderCancelled)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	require.NoError(t, f.svc.Orders.Delete(ctx, order.ID))
	_, err = f.store.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
