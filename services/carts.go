package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

type CartService struct {
	store  datastore.Store
	logger *zap.Logger
}

func NewCartService(store datastore.Store, logger *zap.Logger) *CartService {
	return &CartService{store: store, logger: logger}
}

func (s *CartService) Create(ctx context.Context) (*models.Cart, error) {
	cart, err := s.store.CreateCart(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("cart created", zap.String("cart_id", cart.ID.String()))
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return s.store.GetCart(ctx, id)
}

func (s *CartService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteCart(ctx, id)
}

func (s *CartService) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	if err := s.requireCart(ctx, cartID); err != nil {
		return nil, err
	}
	return s.store.ListCartItemsWithProducts(ctx, cartID)
}

func (s *CartService) GetItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error) {
	return s.store.GetCartItem(ctx, cartID, itemID)
}

func (s *CartService) requireCart(ctx context.Context, cartID uuid.UUID) error {
	exists, err := s.store.CartExists(ctx, cartID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("cart", cartID)
	}
	return nil
}

// validateQuantity checks a single request's quantity. The store enforces the
// same bound on the merged line total.
func validateQuantity(quantity int) error {
	if quantity < 1 {
		return apperrors.Invalid("quantity must be at least 1")
	}
	if quantity > models.MaxCartItemQuantity {
		return apperrors.Invalid("quantity must be at most %d", models.MaxCartItemQuantity)
	}
	return nil
}

// AddItem merges quantity into the cart's line for the product, creating
// the line when the cart has none. Concurrent adds for the same product
// never produce a second line and never lose an increment.
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.requireCart(ctx, cartID); err != nil {
		return nil, err
	}
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.UpsertCartItem(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.Product = product

	s.logger.Debug("cart item upserted",
		zap.String("cart_id", cartID.String()),
		zap.Int64("product_id", productID),
		zap.Int("quantity", item.Quantity),
	)
	return item, nil
}

// UpdateQuantity sets, rather than adds to, a line's quantity.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID uuid.UUID, itemID int64, quantity int) (*models.CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	item, err := s.store.GetCartItem(ctx, cartID, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := s.store.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return s.store.DeleteCartItem(ctx, cartID, itemID)
}
