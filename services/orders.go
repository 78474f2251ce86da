package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID  int64
	IsStaff bool
}

type OrderService struct {
	store  datastore.Store
	logger *zap.Logger
}

func NewOrderService(store datastore.Store, logger *zap.Logger) *OrderService {
	return &OrderService{store: store, logger: logger}
}

// PlaceForUser places the cart on behalf of the customer owned by userID.
func (s *OrderService) PlaceForUser(ctx context.Context, cartID uuid.UUID, userID int64) (*models.Order, error) {
	customer, err := s.store.FindCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Place(ctx, cartID, customer.ID)
}

// Place converts a cart into a pending order. The order, its items and the
// removal of the cart commit together or not at all. Each item records the
// product's price at this moment.
func (s *OrderService) Place(ctx context.Context, cartID uuid.UUID, customerID int64) (*models.Order, error) {
	if err := s.checkCart(ctx, s.store, cartID); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.store.WithTx(ctx, func(q datastore.Queries) error {
		// A concurrent placement may have consumed the cart since the check
		// above; holding the lock makes the re-check authoritative.
		if err := q.LockCart(ctx, cartID); err != nil {
			return err
		}
		if err := s.checkCart(ctx, q, cartID); err != nil {
			return err
		}

		customer, err := q.FindCustomer(ctx, customerID)
		if err != nil {
			return err
		}

		o, err := q.CreateOrder(ctx, customer.ID, models.OrderPending)
		if err != nil {
			return err
		}

		lines, err := q.ListCartItemsWithProducts(ctx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperrors.ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:     o.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitPrice:   line.Product.UnitPrice,
				ProductName: line.Product.Name,
			})
		}

		o.Items, err = q.BulkCreateOrderItems(ctx, items)
		if err != nil {
			return err
		}

		if err := q.DeleteCart(ctx, cartID); err != nil {
			return err
		}

		o.Customer = customer
		order = o
		return nil
	})
	if err != nil {
		s.logger.Warn("order placement failed",
			zap.String("cart_id", cartID.String()),
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", order.ID),
		zap.String("cart_id", cartID.String()),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalPrice().StringFixed(2)),
	)
	return order, nil
}

// checkCart fails with NotFound for a missing cart and EmptyCart for a cart
// without lines.
func (s *OrderService) checkCart(ctx context.Context, q datastore.Queries, cartID uuid.UUID) error {
	exists, err := q.CartExists(ctx, cartID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("cart", cartID)
	}
	n, err := q.CountCartItems(ctx, cartID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrEmptyCart
	}
	return nil
}

// List returns every order for staff and the caller's own orders otherwise.
func (s *OrderService) List(ctx context.Context, actor Actor) ([]models.Order, error) {
	if actor.IsStaff {
		return s.store.ListOrders(ctx, nil)
	}
	customer, err := s.store.FindCustomerByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.store.ListOrders(ctx, &customer.ID)
}

// Get hides orders of other customers behind NotFound.
func (s *OrderService) Get(ctx context.Context, actor Actor, id int64) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsStaff {
		return order, nil
	}
	customer, err := s.store.FindCustomerByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customer.ID {
		return nil, apperrors.NotFound("order", id)
	}
	return order, nil
}

// UpdateStatus moves an order along pending -> processing -> complete, or
// to cancelled from either non-terminal state.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Invalid("%q is not a valid choice", status)
	}

	var order *models.Order
	err := s.store.WithTx(ctx, func(q datastore.Queries) error {
		current, err := q.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		if !current.Status.CanTransition(status) {
			return apperrors.Invalid("cannot change order status from %s to %s", current.Status, status)
		}
		if err := q.UpdateOrderStatus(ctx, id, status); err != nil {
			return err
		}
		current.Status = status
		order = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status changed", zap.Int64("order_id", id), zap.String("status", string(status)))
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteOrder(ctx, id)
}
