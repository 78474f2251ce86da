package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/models"
)

func TestAddItemMergesSameProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tea := f.product(t, "Tea", "4.00")
	cart := f.cart(t)

	first, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 2)
	require.NoError(t, err)
	second, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := f.svc.Carts.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemKeepsProductsDistinct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tea := f.product(t, "Tea", "4.00")
	milk := f.product(t, "Milk", "1.50")
	cart := f.cart(t)

	a, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 2)
	require.NoError(t, err)
	b, err := f.svc.Carts.AddItem(ctx, cart.ID, milk.ID, 4)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	got, err := f.svc.Carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 4, got.Items[1].Quantity)
	assert.Equal(t, "14.00", got.TotalPrice().StringFixed(2))
}

func TestAddItemConcurrentIncrementsAreNotLost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tea := f.product(t, "Tea", "4.00")
	cart := f.cart(t)

	const workers = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := f.svc.Carts.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tea := f.product(t, "Tea", "4.00")
	cart := f.cart(t)

	_, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	_, err = f.svc.Carts.AddItem(ctx, uuid.New(), tea.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.Carts.AddItem(ctx, cart.ID, 12345, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddItemQuantityBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tea := f.product(t, "Tea", "4.00")
	cart := f.cart(t)

	_, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 3_000_000_000)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	item, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, models.MaxCartItemQuantity-1)
	require.NoError(t, err)

	_, err = f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	_, err = f.svc.Carts.UpdateQuantity(ctx, cart.ID, item.ID, models.MaxCartItemQuantity+1)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	got, err := f.svc.Carts.GetItem(ctx, cart.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.MaxCartItemQuantity-1, got.Quantity)
}

func TestUpdateQuantityReplaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tea := f.product(t, "Tea", "4.00")
	cart := f.cart(t)

	item, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 2)
	require.NoError(t, err)

	updated, err := f.svc.Carts.UpdateQuantity(ctx, cart.ID, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = f.svc.Carts.UpdateQuantity(ctx, cart.ID, item.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalid)

	other := f.cart(t)
	_, err = f.svc.Carts.UpdateQuantity(ctx, other.ID, item.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, f.svc.Carts.RemoveItem(ctx, cart.ID, item.ID))
	_, err = f.svc.Carts.GetItem(ctx, cart.ID, item.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddItemStoreFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tea := f.product(t, "Tea", "4.00")
	cart := f.cart(t)

	f.store.FailOn("UpsertCartItem", apperrors.Unavailable("upsert cart item", assert.AnError))
	_, err := f.svc.Carts.AddItem(ctx, cart.ID, tea.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}
