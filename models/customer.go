package models

import (
	"time"
)

// Customer is the shopping identity attached to exactly one user.
type Customer struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Phone     string     `json:"phone" db:"phone"`
	BirthDate *time.Time `json:"birth_date" db:"birth_date"`
	// User is populated for staff listings.
	User *User `json:"user,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

func (Customer) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		phone VARCHAR(32) NOT NULL DEFAULT '',
		birth_date DATE
	);

	CREATE INDEX IF NOT EXISTS idx_customers_user_id ON customers(user_id);
	`
}
