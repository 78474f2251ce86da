package services

import (
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/datastore"
)

// Services bundles the workflows the HTTP handlers call into.
type Services struct {
	Catalog   *CatalogService
	Comments  *CommentService
	Carts     *CartService
	Orders    *OrderService
	Customers *CustomerService
	Accounts  *AccountService
}

// New wires every service to one store.
func New(store datastore.Store, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Catalog:   NewCatalogService(store, logger),
		Comments:  NewCommentService(store),
		Carts:     NewCartService(store, logger),
		Orders:    NewOrderService(store, logger),
		Customers: NewCustomerService(store),
		Accounts:  NewAccountService(store, cfg.Auth, logger),
	}
}
