package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/shadighanaat/DRF-store/models"
)

func (q *Queries) CreateOrder(ctx context.Context, customerID int64, status models.OrderStatus) (*models.Order, error) {
	order := &models.Order{CustomerID: customerID, Status: status, Items: []models.OrderItem{}}
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, status) VALUES ($1, $2)
		RETURNING id, created_at`, customerID, status,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, classify("create order", "order", nil, err)
	}
	return order, nil
}

// BulkCreateOrderItems inserts all lines in a single statement.
func (q *Queries) BulkCreateOrderItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error) {
	if len(items) == 0 {
		return items, nil
	}

	values := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*4)
	for i, item := range items {
		n := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice)
	}

	rows, err := q.q.QueryContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES `+strings.Join(values, ", ")+`
		RETURNING id, order_id, product_id`, args...)
	if err != nil {
		return nil, classify("create order items", "order item", nil, err)
	}
	defer rows.Close()

	// Rows come back keyed by (order, product), which is unique.
	type key struct{ order, product int64 }
	ids := make(map[key]int64, len(items))
	for rows.Next() {
		var id int64
		var k key
		if err := rows.Scan(&id, &k.order, &k.product); err != nil {
			return nil, classify("scan order item", "order item", nil, err)
		}
		ids[k] = id
	}
	if err := rows.Err(); err != nil {
		return nil, classify("create order items", "order item", nil, err)
	}

	created := make([]models.OrderItem, len(items))
	for i, item := range items {
		item.ID = ids[key{item.OrderID, item.ProductID}]
		created[i] = item
	}
	return created, nil
}

func (q *Queries) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	err := q.q.QueryRowContext(ctx, `SELECT id, customer_id, status, created_at FROM orders WHERE id = $1`, id).
		Scan(&order.ID, &order.CustomerID, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, classify("get order", "order", id, err)
	}

	orders := []models.Order{*order}
	if err := q.attachOrderDetails(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (q *Queries) ListOrders(ctx context.Context, customerID *int64) ([]models.Order, error) {
	query := `SELECT id, customer_id, status, created_at FROM orders`
	var args []any
	if customerID != nil {
		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}
	query += ` ORDER BY id`

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list orders", "order", nil, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.CreatedAt); err != nil {
			return nil, classify("scan order", "order", nil, err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list orders", "order", nil, err)
	}

	if err := q.attachOrderDetails(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachOrderDetails loads items and customers for orders with two queries.
func (q *Queries) attachOrderDetails(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	orderIDs := make([]int64, len(orders))
	byID := make(map[int64]*models.Order, len(orders))
	customerIDs := make([]int64, 0, len(orders))
	seen := make(map[int64]bool)
	for i := range orders {
		orders[i].Items = []models.OrderItem{}
		orderIDs[i] = orders[i].ID
		byID[orders[i].ID] = &orders[i]
		if !seen[orders[i].CustomerID] {
			seen[orders[i].CustomerID] = true
			customerIDs = append(customerIDs, orders[i].CustomerID)
		}
	}

	rows, err := q.q.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, p.name
		FROM order_items oi JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, pq.Array(orderIDs))
	if err != nil {
		return classify("list order items", "order item", nil, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.ProductName); err != nil {
			return classify("scan order item", "order item", nil, err)
		}
		o := byID[item.OrderID]
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return classify("list order items", "order item", nil, err)
	}

	custRows, err := q.q.QueryContext(ctx, `SELECT `+customerColumns+`
		FROM customers cu JOIN users u ON u.id = cu.user_id
		WHERE cu.id = ANY($1)`, pq.Array(customerIDs))
	if err != nil {
		return classify("list customers", "customer", nil, err)
	}
	defer custRows.Close()

	customers := make(map[int64]*models.Customer, len(customerIDs))
	for custRows.Next() {
		c := &models.Customer{}
		if err := scanCustomer(custRows, c); err != nil {
			return classify("scan customer", "customer", nil, err)
		}
		customers[c.ID] = c
	}
	if err := custRows.Err(); err != nil {
		return classify("list customers", "customer", nil, err)
	}

	for i := range orders {
		orders[i].Customer = customers[orders[i].CustomerID]
	}
	return nil
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	res, err := q.q.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return classify("update order", "order", id, err)
	}
	return mustAffect(res, "update order", "order", id)
}

func (q *Queries) DeleteOrder(ctx context.Context, id int64) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return classifyDelete("delete order", "order", id, err)
	}
	return mustAffect(res, "delete order", "order", id)
}
