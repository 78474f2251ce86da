// Package datastore declares the persistence contract the services run on.
// database.Store implements it over Postgres and memstore.Store in process.
package datastore

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shadighanaat/DRF-store/models"
)

// Queries is the set of operations available both on the store and inside a
// transaction. Lookups of a single row return an error matching
// apperrors.ErrNotFound when the row does not exist.
type Queries interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CountOrderItemsForProduct(ctx context.Context, productID int64) (int, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListComments(ctx context.Context, productID int64) ([]models.Comment, error)
	GetComment(ctx context.Context, productID, id int64) (*models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	UpdateComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, productID, id int64) error

	CreateCart(ctx context.Context) (*models.Cart, error)
	GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	CartExists(ctx context.Context, id uuid.UUID) (bool, error)
	// LockCart takes a row lock on the cart for the rest of the transaction.
	LockCart(ctx context.Context, id uuid.UUID) error
	// DeleteCart removes the cart's items and then the cart.
	DeleteCart(ctx context.Context, id uuid.UUID) error

	// FindCartItem and CreateCartItem are the read-then-insert path that
	// UpsertCartItem supersedes. Nothing outside the stores' tests calls them.
	//
	// FindCartItem returns nil and no error when the pair has no line.
	FindCartItem(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error)
	GetCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error)
	CreateCartItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error)
	SaveCartItem(ctx context.Context, item *models.CartItem) error
	// UpsertCartItem adds delta to the (cart, product) line, creating it when
	// absent, as one atomic step.
	UpsertCartItem(ctx context.Context, cartID uuid.UUID, productID int64, delta int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) error
	CountCartItems(ctx context.Context, cartID uuid.UUID) (int, error)
	ListCartItemsWithProducts(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)

	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateCustomer(ctx context.Context, c *models.Customer) error
	FindCustomer(ctx context.Context, id int64) (*models.Customer, error)
	FindCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)

	CreateOrder(ctx context.Context, customerID int64, status models.OrderStatus) (*models.Order, error)
	BulkCreateOrderItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error)
	// GetOrder loads the order with its items and customer.
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	// ListOrders loads orders with items and customers, restricted to one
	// customer when customerID is non-nil.
	ListOrders(ctx context.Context, customerID *int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, id int64) error
}

// Store is a Queries implementation that can also open transactions.
type Store interface {
	Queries
	// WithTx runs fn inside one transaction. The transaction commits when fn
	// returns nil and rolls back when fn returns an error, panics, or ctx is
	// cancelled.
	WithTx(ctx context.Context, fn func(q Queries) error) error
	Ping(ctx context.Context) error
}

// ProductFilter selects a page of products.
type ProductFilter struct {
	Search      string
	CategoryID  *int64
	InventoryGT *int
	InventoryLT *int
	PriceGT     *decimal.Decimal
	PriceLT     *decimal.Decimal
	// Ordering is one of ProductOrderings, optionally prefixed with "-".
	Ordering string
	Limit    int
	Offset   int
}

// ProductOrderings maps the accepted ordering keys to columns.
var ProductOrderings = map[string]string{
	"name":       "name",
	"unit_price": "unit_price",
	"inventory":  "inventory",
}

// ParseOrdering splits an ordering key into its column and direction.
// ok is false for keys outside ProductOrderings.
func ParseOrdering(key string) (column string, desc bool, ok bool) {
	desc = strings.HasPrefix(key, "-")
	column, ok = ProductOrderings[strings.TrimPrefix(key, "-")]
	return column, desc, ok
}
