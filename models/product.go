package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxUnitPrice is the exclusive upper bound of NUMERIC(6,2).
var MaxUnitPrice = decimal.NewFromInt(10000)

type Product struct {
	ID           int64           `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Slug         string          `json:"slug" db:"slug"`
	Description  string          `json:"description" db:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"unit_price"`
	Inventory    int             `json:"inventory" db:"inventory"`
	CategoryID   int64           `json:"category_id" db:"category_id"`
	CategoryName string          `json:"category,omitempty"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	ModifiedAt   time.Time       `json:"modified_at" db:"modified_at"`
}

// PriceAfterTax returns the unit price with the given tax rate applied,
// rounded to cents.
func (p Product) PriceAfterTax(rate decimal.Decimal) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
}

// PriceIn converts the unit price with an integer exchange rate, truncating
// the fractional part.
func (p Product) PriceIn(rate int64) int64 {
	return p.UnitPrice.Mul(decimal.NewFromInt(rate)).IntPart()
}

func (Product) TableName() string {
	return "products"
}

func (Product) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		unit_price NUMERIC(6,2) NOT NULL CHECK (unit_price >= 0),
		inventory INTEGER NOT NULL DEFAULT 0 CHECK (inventory >= 0),
		category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
		modified_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);`
}
