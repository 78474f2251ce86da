package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/shadighanaat/DRF-store/models"
)

func (q *Queries) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{Items: []models.CartItem{}}
	err := q.q.QueryRowContext(ctx, `INSERT INTO carts DEFAULT VALUES RETURNING id, created_at`).
		Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		return nil, classify("create cart", "cart", nil, err)
	}
	return cart, nil
}

func (q *Queries) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	cart := &models.Cart{}
	err := q.q.QueryRowContext(ctx, `SELECT id, created_at FROM carts WHERE id = $1`, id).
		Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		return nil, classify("get cart", "cart", id, err)
	}

	cart.Items, err = q.ListCartItemsWithProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (q *Queries) CartExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := q.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM carts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, classify("check cart", "cart", id, err)
	}
	return exists, nil
}

// LockCart blocks until no other transaction holds the cart row. Outside a
// transaction the lock is released as soon as the statement ends.
func (q *Queries) LockCart(ctx context.Context, id uuid.UUID) error {
	var locked uuid.UUID
	err := q.q.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	return classify("lock cart", "cart", id, err)
}

func (q *Queries) DeleteCart(ctx context.Context, id uuid.UUID) error {
	if _, err := q.q.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, id); err != nil {
		return classify("delete cart items", "cart", id, err)
	}
	res, err := q.q.ExecContext(ctx, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		return classify("delete cart", "cart", id, err)
	}
	return mustAffect(res, "delete cart", "cart", id)
}

func (q *Queries) FindCartItem(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	item := &models.CartItem{}
	err := q.q.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		err = classify("find cart item", "cart item", nil, err)
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (q *Queries) GetCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error) {
	item := &models.CartItem{Product: &models.Product{}}
	p := item.Product
	err := q.q.QueryRowContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.slug, p.description, p.unit_price, p.inventory,
		       p.category_id, p.created_at, p.modified_at
		FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1 AND ci.id = $2`, cartID, itemID,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory,
		&p.CategoryID, &p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		return nil, classify("get cart item", "cart item", itemID, err)
	}
	return item, nil
}

func (q *Queries) CreateCartItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	item := &models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
		RETURNING id`, cartID, productID, quantity,
	).Scan(&item.ID)
	if err != nil {
		return nil, classify("create cart item", "cart item", nil, err)
	}
	return item, nil
}

func (q *Queries) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	res, err := q.q.ExecContext(ctx, `UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND id = $2`,
		item.CartID, item.ID, item.Quantity)
	if err != nil {
		return classify("save cart item", "cart item", item.ID, err)
	}
	return mustAffect(res, "save cart item", "cart item", item.ID)
}

// UpsertCartItem relies on the (cart_id, product_id) unique constraint so
// that concurrent adds of the same product serialize on the line's row.
func (q *Queries) UpsertCartItem(ctx context.Context, cartID uuid.UUID, productID int64, delta int) (*models.CartItem, error) {
	item := &models.CartItem{}
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, cart_id, product_id, quantity`, cartID, productID, delta,
	).Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		return nil, classify("upsert cart item", "cart item", nil, err)
	}
	return item, nil
}

func (q *Queries) DeleteCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	if err != nil {
		return classify("delete cart item", "cart item", itemID, err)
	}
	return mustAffect(res, "delete cart item", "cart item", itemID)
}

func (q *Queries) CountCartItems(ctx context.Context, cartID uuid.UUID) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM cart_items WHERE cart_id = $1`, cartID).Scan(&n)
	if err != nil {
		return 0, classify("count cart items", "cart", cartID, err)
	}
	return n, nil
}

// ListCartItemsWithProducts loads the lines with their products in one
// query. Inside a transaction the lines are locked so the snapshot taken for
// an order cannot change underneath it.
func (q *Queries) ListCartItemsWithProducts(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.slug, p.description, p.unit_price, p.inventory,
		       p.category_id, c.title, p.created_at, p.modified_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`
	if q.inTx {
		query += ` FOR UPDATE OF ci`
	}

	rows, err := q.q.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, classify("list cart items", "cart", cartID, err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		item := models.CartItem{Product: &models.Product{}}
		p := item.Product
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory,
			&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.ModifiedAt); err != nil {
			return nil, classify("scan cart item", "cart item", nil, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list cart items", "cart", cartID, err)
	}
	return items, nil
}
