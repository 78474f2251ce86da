package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/models"
)

func (q *queries) CreateCart(ctx context.Context) (*models.Cart, error) {
	if err := q.fault(ctx, "CreateCart"); err != nil {
		return nil, err
	}
	cart := models.Cart{ID: uuid.New(), CreatedAt: time.Now()}
	q.data.carts[cart.ID] = cart
	cart.Items = []models.CartItem{}
	return &cart, nil
}

func (q *queries) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	if err := q.fault(ctx, "GetCart"); err != nil {
		return nil, err
	}
	cart, ok := q.data.carts[id]
	if !ok {
		return nil, apperrors.NotFound("cart", id)
	}
	cart.Items = q.cartLines(id)
	return &cart, nil
}

func (q *queries) CartExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := q.fault(ctx, "CartExists"); err != nil {
		return false, err
	}
	_, ok := q.data.carts[id]
	return ok, nil
}

// LockCart only checks existence; the store lock already serializes
// transactions.
func (q *queries) LockCart(ctx context.Context, id uuid.UUID) error {
	if err := q.fault(ctx, "LockCart"); err != nil {
		return err
	}
	if _, ok := q.data.carts[id]; !ok {
		return apperrors.NotFound("cart", id)
	}
	return nil
}

func (q *queries) DeleteCart(ctx context.Context, id uuid.UUID) error {
	if err := q.fault(ctx, "DeleteCart"); err != nil {
		return err
	}
	if _, ok := q.data.carts[id]; !ok {
		return apperrors.NotFound("cart", id)
	}
	for itemID, item := range q.data.cartItems {
		if item.CartID == id {
			delete(q.data.cartItems, itemID)
		}
	}
	delete(q.data.carts, id)
	return nil
}

func (q *queries) FindCartItem(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	if err := q.fault(ctx, "FindCartItem"); err != nil {
		return nil, err
	}
	if item, ok := q.findLine(cartID, productID); ok {
		return &item, nil
	}
	return nil, nil
}

func (q *queries) findLine(cartID uuid.UUID, productID int64) (models.CartItem, bool) {
	for _, item := range q.data.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			return item, true
		}
	}
	return models.CartItem{}, false
}

func (q *queries) GetCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error) {
	if err := q.fault(ctx, "GetCartItem"); err != nil {
		return nil, err
	}
	item, ok := q.data.cartItems[itemID]
	if !ok || item.CartID != cartID {
		return nil, apperrors.NotFound("cart item", itemID)
	}
	p := q.withCategory(q.data.products[item.ProductID])
	item.Product = &p
	return &item, nil
}

// checkLine enforces the constraints the cart_items table carries.
func (q *queries) checkLine(cartID uuid.UUID, productID int64, quantity int) error {
	if _, ok := q.data.carts[cartID]; !ok {
		return apperrors.NotFound("cart", nil)
	}
	if _, ok := q.data.products[productID]; !ok {
		return apperrors.NotFound("product", nil)
	}
	return checkQuantity(quantity)
}

func checkQuantity(quantity int) error {
	if quantity < 1 {
		return apperrors.Invalid("cart item violates cart_items_quantity_check")
	}
	if quantity > models.MaxCartItemQuantity {
		return apperrors.Invalid("cart item violates cart_items_quantity_max")
	}
	return nil
}

func (q *queries) CreateCartItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	if err := q.fault(ctx, "CreateCartItem"); err != nil {
		return nil, err
	}
	if err := q.checkLine(cartID, productID, quantity); err != nil {
		return nil, err
	}
	if _, ok := q.findLine(cartID, productID); ok {
		return nil, apperrors.ErrConflict
	}
	item := models.CartItem{ID: q.data.id(), CartID: cartID, ProductID: productID, Quantity: quantity}
	q.data.cartItems[item.ID] = item
	return &item, nil
}

func (q *queries) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	if err := q.fault(ctx, "SaveCartItem"); err != nil {
		return err
	}
	stored, ok := q.data.cartItems[item.ID]
	if !ok || stored.CartID != item.CartID {
		return apperrors.NotFound("cart item", item.ID)
	}
	if err := checkQuantity(item.Quantity); err != nil {
		return err
	}
	stored.Quantity = item.Quantity
	q.data.cartItems[item.ID] = stored
	return nil
}

func (q *queries) UpsertCartItem(ctx context.Context, cartID uuid.UUID, productID int64, delta int) (*models.CartItem, error) {
	if err := q.fault(ctx, "UpsertCartItem"); err != nil {
		return nil, err
	}
	item, ok := q.findLine(cartID, productID)
	if err := q.checkLine(cartID, productID, item.Quantity+delta); err != nil {
		return nil, err
	}
	if !ok {
		item = models.CartItem{ID: q.data.id(), CartID: cartID, ProductID: productID}
	}
	item.Quantity += delta
	q.data.cartItems[item.ID] = item
	return &item, nil
}

func (q *queries) DeleteCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	if err := q.fault(ctx, "DeleteCartItem"); err != nil {
		return err
	}
	item, ok := q.data.cartItems[itemID]
	if !ok || item.CartID != cartID {
		return apperrors.NotFound("cart item", itemID)
	}
	delete(q.data.cartItems, itemID)
	return nil
}

func (q *queries) CountCartItems(ctx context.Context, cartID uuid.UUID) (int, error) {
	if err := q.fault(ctx, "CountCartItems"); err != nil {
		return 0, err
	}
	n := 0
	for _, item := range q.data.cartItems {
		if item.CartID == cartID {
			n++
		}
	}
	return n, nil
}

func (q *queries) ListCartItemsWithProducts(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	if err := q.fault(ctx, "ListCartItemsWithProducts"); err != nil {
		return nil, err
	}
	return q.cartLines(cartID), nil
}

func (q *queries) cartLines(cartID uuid.UUID) []models.CartItem {
	items := []models.CartItem{}
	for _, item := range q.data.cartItems {
		if item.CartID != cartID {
			continue
		}
		p := q.withCategory(q.data.products[item.ProductID])
		item.Product = &p
		items = append(items, item)
	}
	slices.SortFunc(items, func(a, b models.CartItem) int { return cmp.Compare(a.ID, b.ID) })
	return items
}
