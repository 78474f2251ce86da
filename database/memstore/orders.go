package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/models"
)

func (q *queries) CreateOrder(ctx context.Context, customerID int64, status models.OrderStatus) (*models.Order, error) {
	if err := q.fault(ctx, "CreateOrder"); err != nil {
		return nil, err
	}
	if _, ok := q.data.customers[customerID]; !ok {
		return nil, apperrors.NotFound("customer", nil)
	}
	if !status.Valid() {
		return nil, apperrors.Invalid("order violates orders_status_check")
	}
	order := models.Order{ID: q.data.id(), CustomerID: customerID, Status: status, CreatedAt: time.Now()}
	q.data.orders[order.ID] = order
	order.Items = []models.OrderItem{}
	return &order, nil
}

// BulkCreateOrderItems validates every line before inserting any, like the
// single INSERT statement it stands in for.
func (q *queries) BulkCreateOrderItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error) {
	if err := q.fault(ctx, "BulkCreateOrderItems"); err != nil {
		return nil, err
	}
	type key struct{ order, product int64 }
	seen := make(map[key]bool, len(items))
	for _, item := range q.data.orderItems {
		seen[key{item.OrderID, item.ProductID}] = true
	}
	for _, item := range items {
		if _, ok := q.data.orders[item.OrderID]; !ok {
			return nil, apperrors.NotFound("order", nil)
		}
		if _, ok := q.data.products[item.ProductID]; !ok {
			return nil, apperrors.NotFound("product", nil)
		}
		if item.Quantity < 1 {
			return nil, apperrors.Invalid("order item violates order_items_quantity_check")
		}
		k := key{item.OrderID, item.ProductID}
		if seen[k] {
			return nil, apperrors.ErrConflict
		}
		seen[k] = true
	}

	created := make([]models.OrderItem, len(items))
	for i, item := range items {
		item.ID = q.data.id()
		q.data.orderItems[item.ID] = item
		created[i] = item
	}
	return created, nil
}

func (q *queries) withDetails(o models.Order) models.Order {
	o.Items = []models.OrderItem{}
	for _, item := range q.data.orderItems {
		if item.OrderID == o.ID {
			item.ProductName = q.data.products[item.ProductID].Name
			o.Items = append(o.Items, item)
		}
	}
	slices.SortFunc(o.Items, func(a, b models.OrderItem) int { return cmp.Compare(a.ID, b.ID) })
	if c, ok := q.data.customers[o.CustomerID]; ok {
		c = q.withUser(c)
		o.Customer = &c
	}
	return o
}

func (q *queries) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	if err := q.fault(ctx, "GetOrder"); err != nil {
		return nil, err
	}
	o, ok := q.data.orders[id]
	if !ok {
		return nil, apperrors.NotFound("order", id)
	}
	o = q.withDetails(o)
	return &o, nil
}

func (q *queries) ListOrders(ctx context.Context, customerID *int64) ([]models.Order, error) {
	if err := q.fault(ctx, "ListOrders"); err != nil {
		return nil, err
	}
	orders := []models.Order{}
	for _, o := range q.data.orders {
		if customerID != nil && o.CustomerID != *customerID {
			continue
		}
		orders = append(orders, q.withDetails(o))
	}
	slices.SortFunc(orders, func(a, b models.Order) int { return cmp.Compare(a.ID, b.ID) })
	return orders, nil
}

func (q *queries) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	if err := q.fault(ctx, "UpdateOrderStatus"); err != nil {
		return err
	}
	o, ok := q.data.orders[id]
	if !ok {
		return apperrors.NotFound("order", id)
	}
	if !status.Valid() {
		return apperrors.Invalid("order violates orders_status_check")
	}
	o.Status = status
	q.data.orders[id] = o
	return nil
}

func (q *queries) DeleteOrder(ctx context.Context, id int64) error {
	if err := q.fault(ctx, "DeleteOrder"); err != nil {
		return err
	}
	if _, ok := q.data.orders[id]; !ok {
		return apperrors.NotFound("order", id)
	}
	for itemID, item := range q.data.orderItems {
		if item.OrderID == id {
			delete(q.data.orderItems, itemID)
		}
	}
	delete(q.data.orders, id)
	return nil
}
