package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/database/memstore"
	"github.com/shadighanaat/DRF-store/models"
	"github.com/shadighanaat/DRF-store/services"
)

type orderTestContext struct {
	store    *memstore.Store
	svc      *services.Services
	category *models.Category
	products map[string]*models.Product
	customer *models.Customer
	cartID   uuid.UUID
	order    *models.Order
	err      error
}

func (c *orderTestContext) reset() {
	c.store = memstore.New()
	cfg := &config.Config{
		Auth:    config.AuthConfig{JWTSecret: "features", TokenTTL: time.Hour},
		Catalog: config.CatalogConfig{PageSize: 10, TaxRate: "0.09", RialsPerDollar: 600000},
	}
	c.svc = services.New(c.store, cfg, zap.NewNop())
	c.category = nil
	c.products = map[string]*models.Product{}
	c.customer = nil
	c.cartID = uuid.Nil
	c.order = nil
	c.err = nil
}

func (c *orderTestContext) aProductPriced(name, price string) error {
	ctx := context.Background()
	if c.category == nil {
		category, err := c.svc.Catalog.CreateCategory(ctx, services.CategoryInput{Title: "Features"})
		if err != nil {
			return err
		}
		c.category = category
	}
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	p, err := c.svc.Catalog.CreateProduct(ctx, services.ProductInput{
		Name:       name,
		UnitPrice:  unitPrice,
		Inventory:  50,
		CategoryID: c.category.ID,
	})
	if err != nil {
		return err
	}
	c.products[name] = p
	return nil
}

func (c *orderTestContext) aRegisteredCustomer() error {
	ctx := context.Background()
	user, err := c.svc.Accounts.Register(ctx, services.RegisterInput{Username: "shopper", Password: "feature secret"})
	if err != nil {
		return err
	}
	c.customer, err = c.svc.Customers.Me(ctx, user.ID)
	return err
}

func (c *orderTestContext) anEmptyCart() error {
	cart, err := c.svc.Carts.Create(context.Background())
	if err != nil {
		return err
	}
	c.cartID = cart.ID
	return nil
}

func (c *orderTestContext) aCartIDThatWasNeverCreated() error {
	c.cartID = uuid.New()
	return nil
}

func (c *orderTestContext) aCartHolding(table *godog.Table) error {
	if err := c.anEmptyCart(); err != nil {
		return err
	}
	for _, row := range table.Rows[1:] {
		quantity, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		if err := c.iAddOfToTheCart(quantity, row.Cells[0].Value); err != nil {
			return err
		}
	}
	return nil
}

func (c *orderTestContext) theStoreFailsWhenWritingOrderItems() error {
	c.store.FailOn("BulkCreateOrderItems", apperrors.Unavailable("create order items", errors.New("connection reset")))
	return nil
}

func (c *orderTestContext) iAddOfToTheCart(quantity int, name string) error {
	p, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %q", name)
	}
	_, err := c.svc.Carts.AddItem(context.Background(), c.cartID, p.ID, quantity)
	return err
}

func (c *orderTestContext) iPlaceTheOrder() error {
	c.order, c.err = c.svc.Orders.Place(context.Background(), c.cartID, c.customer.ID)
	return nil
}

func (c *orderTestContext) thePriceOfChangesTo(name, price string) error {
	p := c.products[name]
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	_, err = c.svc.Catalog.UpdateProduct(context.Background(), p.ID, services.ProductInput{
		Name:       p.Name,
		UnitPrice:  unitPrice,
		Inventory:  p.Inventory,
		CategoryID: p.CategoryID,
	})
	return err
}

func (c *orderTestContext) theCartHasLines(n int) error {
	items, err := c.svc.Carts.ListItems(context.Background(), c.cartID)
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, len(items))
	}
	return nil
}

func (c *orderTestContext) theCartLineForHasQuantity(name string, quantity int) error {
	item, err := c.store.FindCartItem(context.Background(), c.cartID, c.products[name].ID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("no cart line for %q", name)
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected quantity %d for %q, got %d", quantity, name, item.Quantity)
	}
	return nil
}

func (c *orderTestContext) theOrderIsPendingWithItems(n int) error {
	if c.err != nil {
		return fmt.Errorf("placement failed: %w", c.err)
	}
	if c.order.Status != models.OrderPending {
		return fmt.Errorf("expected pending order, got %s", c.order.Status)
	}
	if len(c.order.Items) != n {
		return fmt.Errorf("expected %d order items, got %d", n, len(c.order.Items))
	}
	return nil
}

func findOrderItem(order *models.Order, productID int64) (*models.OrderItem, error) {
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			return &order.Items[i], nil
		}
	}
	return nil, fmt.Errorf("order %d has no item for product %d", order.ID, productID)
}

func (c *orderTestContext) theOrderItemForHasQuantityAndUnitPrice(name string, quantity int, price string) error {
	item, err := findOrderItem(c.order, c.products[name].ID)
	if err != nil {
		return err
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, item.Quantity)
	}
	if got := item.UnitPrice.StringFixed(2); got != price {
		return fmt.Errorf("expected unit price %s, got %s", price, got)
	}
	return nil
}

func (c *orderTestContext) theStoredOrderItemForHasUnitPrice(name, price string) error {
	stored, err := c.store.GetOrder(context.Background(), c.order.ID)
	if err != nil {
		return err
	}
	item, err := findOrderItem(stored, c.products[name].ID)
	if err != nil {
		return err
	}
	if got := item.UnitPrice.StringFixed(2); got != price {
		return fmt.Errorf("expected unit price %s, got %s", price, got)
	}
	return nil
}

func (c *orderTestContext) theCartNoLongerExists() error {
	exists, err := c.store.CartExists(context.Background(), c.cartID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("cart %s still exists", c.cartID)
	}
	return nil
}

var placementErrors = map[string]error{
	"empty cart":  apperrors.ErrEmptyCart,
	"not found":   apperrors.ErrNotFound,
	"unavailable": apperrors.ErrStoreUnavailable,
}

func (c *orderTestContext) placementFailsWith(kind string) error {
	want, ok := placementErrors[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if !errors.Is(c.err, want) {
		return fmt.Errorf("expected %s error, got %v", kind, c.err)
	}
	return nil
}

func (c *orderTestContext) noOrderExists() error {
	orders, err := c.store.ListOrders(context.Background(), nil)
	if err != nil {
		return err
	}
	if len(orders) != 0 {
		return fmt.Errorf("expected no orders, found %d", len(orders))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &orderTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a product "([^"]*)" priced (\d+\.\d{2})$`, tc.aProductPriced)
	ctx.Step(`^a registered customer$`, tc.aRegisteredCustomer)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^a cart id that was never created$`, tc.aCartIDThatWasNeverCreated)
	ctx.Step(`^a cart holding:$`, tc.aCartHolding)
	ctx.Step(`^the store fails when writing order items$`, tc.theStoreFailsWhenWritingOrderItems)

	// When steps
	ctx.Step(`^I add (\d+) of "([^"]*)" to the cart$`, tc.iAddOfToTheCart)
	ctx.Step(`^I place the order$`, tc.iPlaceTheOrder)
	ctx.Step(`^the price of "([^"]*)" changes to (\d+\.\d{2})$`, tc.thePriceOfChangesTo)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart still has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart line for "([^"]*)" has quantity (\d+)$`, tc.theCartLineForHasQuantity)
	ctx.Step(`^the order is pending with (\d+) items$`, tc.theOrderIsPendingWithItems)
	ctx.Step(`^the order item for "([^"]*)" has quantity (\d+) and unit price (\d+\.\d{2})$`, tc.theOrderItemForHasQuantityAndUnitPrice)
	ctx.Step(`^the stored order item for "([^"]*)" has unit price (\d+\.\d{2})$`, tc.theStoredOrderItemForHasUnitPrice)
	ctx.Step(`^the cart no longer exists$`, tc.theCartNoLongerExists)
	ctx.Step(`^placement fails with "([^"]*)"$`, tc.placementFailsWith)
	ctx.Step(`^no order exists$`, tc.noOrderExists)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"order_placement.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
