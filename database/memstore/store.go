package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

// The methods below run a single queries call under the store lock.

func call[T any](s *Store, fn func(q *queries) (T, error)) (T, error) {
	var out T
	err := s.run(func(q *queries) error {
		var err error
		out, err = fn(q)
		return err
	})
	return out, err
}

func (s *Store) ListProducts(ctx context.Context, f datastore.ProductFilter) ([]models.Product, int, error) {
	var total int
	products, err := call(s, func(q *queries) ([]models.Product, error) {
		var (
			products []models.Product
			err      error
		)
		products, total, err = q.ListProducts(ctx, f)
		return products, err
	})
	return products, total, err
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return call(s, func(q *queries) (*models.Product, error) { return q.GetProduct(ctx, id) })
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.run(func(q *queries) error { return q.CreateProduct(ctx, p) })
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	return s.run(func(q *queries) error { return q.UpdateProduct(ctx, p) })
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.run(func(q *queries) error { return q.DeleteProduct(ctx, id) })
}

func (s *Store) CountOrderItemsForProduct(ctx context.Context, productID int64) (int, error) {
	return call(s, func(q *queries) (int, error) { return q.CountOrderItemsForProduct(ctx, productID) })
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	return call(s, func(q *queries) ([]models.Category, error) { return q.ListCategories(ctx) })
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return call(s, func(q *queries) (*models.Category, error) { return q.GetCategory(ctx, id) })
}

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.run(func(q *queries) error { return q.CreateCategory(ctx, c) })
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	return s.run(func(q *queries) error { return q.UpdateCategory(ctx, c) })
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.run(func(q *queries) error { return q.DeleteCategory(ctx, id) })
}

func (s *Store) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	return call(s, func(q *queries) ([]models.Comment, error) { return q.ListComments(ctx, productID) })
}

func (s *Store) GetComment(ctx context.Context, productID, id int64) (*models.Comment, error) {
	return call(s, func(q *queries) (*models.Comment, error) { return q.GetComment(ctx, productID, id) })
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	return s.run(func(q *queries) error { return q.CreateComment(ctx, c) })
}

func (s *Store) UpdateComment(ctx context.Context, c *models.Comment) error {
	return s.run(func(q *queries) error { return q.UpdateComment(ctx, c) })
}

func (s *Store) DeleteComment(ctx context.Context, productID, id int64) error {
	return s.run(func(q *queries) error { return q.DeleteComment(ctx, productID, id) })
}

func (s *Store) CreateCart(ctx context.Context) (*models.Cart, error) {
	return call(s, func(q *queries) (*models.Cart, error) { return q.CreateCart(ctx) })
}

func (s *Store) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return call(s, func(q *queries) (*models.Cart, error) { return q.GetCart(ctx, id) })
}

func (s *Store) CartExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return call(s, func(q *queries) (bool, error) { return q.CartExists(ctx, id) })
}

func (s *Store) LockCart(ctx context.Context, id uuid.UUID) error {
	return s.run(func(q *queries) error { return q.LockCart(ctx, id) })
}

func (s *Store) DeleteCart(ctx context.Context, id uuid.UUID) error {
	return s.run(func(q *queries) error { return q.DeleteCart(ctx, id) })
}

func (s *Store) FindCartItem(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	return call(s, func(q *queries) (*models.CartItem, error) { return q.FindCartItem(ctx, cartID, productID) })
}

func (s *Store) GetCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) (*models.CartItem, error) {
	return call(s, func(q *queries) (*models.CartItem, error) { return q.GetCartItem(ctx, cartID, itemID) })
}

func (s *Store) CreateCartItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (*models.CartItem, error) {
	return call(s, func(q *queries) (*models.CartItem, error) {
		return q.CreateCartItem(ctx, cartID, productID, quantity)
	})
}

func (s *Store) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return s.run(func(q *queries) error { return q.SaveCartItem(ctx, item) })
}

func (s *Store) UpsertCartItem(ctx context.Context, cartID uuid.UUID, productID int64, delta int) (*models.CartItem, error) {
	return call(s, func(q *queries) (*models.CartItem, error) {
		return q.UpsertCartItem(ctx, cartID, productID, delta)
	})
}

func (s *Store) DeleteCartItem(ctx context.Context, cartID uuid.UUID, itemID int64) error {
	return s.run(func(q *queries) error { return q.DeleteCartItem(ctx, cartID, itemID) })
}

func (s *Store) CountCartItems(ctx context.Context, cartID uuid.UUID) (int, error) {
	return call(s, func(q *queries) (int, error) { return q.CountCartItems(ctx, cartID) })
}

func (s *Store) ListCartItemsWithProducts(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	return call(s, func(q *queries) ([]models.CartItem, error) { return q.ListCartItemsWithProducts(ctx, cartID) })
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.run(func(q *queries) error { return q.CreateUser(ctx, u) })
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return call(s, func(q *queries) (*models.User, error) { return q.GetUser(ctx, id) })
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return call(s, func(q *queries) (*models.User, error) { return q.FindUserByUsername(ctx, username) })
}

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return s.run(func(q *queries) error { return q.CreateCustomer(ctx, c) })
}

func (s *Store) FindCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return call(s, func(q *queries) (*models.Customer, error) { return q.FindCustomer(ctx, id) })
}

func (s *Store) FindCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	return call(s, func(q *queries) (*models.Customer, error) { return q.FindCustomerByUserID(ctx, userID) })
}

func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	return s.run(func(q *queries) error { return q.UpdateCustomer(ctx, c) })
}

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return call(s, func(q *queries) ([]models.Customer, error) { return q.ListCustomers(ctx) })
}

func (s *Store) CreateOrder(ctx context.Context, customerID int64, status models.OrderStatus) (*models.Order, error) {
	return call(s, func(q *queries) (*models.Order, error) { return q.CreateOrder(ctx, customerID, status) })
}

func (s *Store) BulkCreateOrderItems(ctx context.Context, items []models.OrderItem) ([]models.OrderItem, error) {
	return call(s, func(q *queries) ([]models.OrderItem, error) { return q.BulkCreateOrderItems(ctx, items) })
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return call(s, func(q *queries) (*models.Order, error) { return q.GetOrder(ctx, id) })
}

func (s *Store) ListOrders(ctx context.Context, customerID *int64) ([]models.Order, error) {
	return call(s, func(q *queries) ([]models.Order, error) { return q.ListOrders(ctx, customerID) })
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	return s.run(func(q *queries) error { return q.UpdateOrderStatus(ctx, id, status) })
}

func (s *Store) DeleteOrder(ctx context.Context, id int64) error {
	return s.run(func(q *queries) error { return q.DeleteOrder(ctx, id) })
}
