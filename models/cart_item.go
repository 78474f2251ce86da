package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxCartItemQuantity bounds a cart line, merged adds included.
const MaxCartItemQuantity = 32767

type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	CartID    uuid.UUID `json:"cart_id" db:"cart_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	// Product is populated when the item is loaded together with its product.
	Product *Product `json:"product,omitempty"`
}

// Total is quantity times the live product price. Zero when the product was
// not loaded.
func (i CartItem) Total() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (CartItem) TableName() string {
	return "cart_items"
}

func (CartItem) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS cart_items (
		id BIGSERIAL PRIMARY KEY,
		cart_id UUID NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		CONSTRAINT cart_items_quantity_max CHECK (quantity <= 32767),
		UNIQUE (cart_id, product_id)
	);`
}
