package services

import (
	"context"
	"time"

	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

type CustomerInput struct {
	Phone     string
	BirthDate *time.Time
}

type CustomerService struct {
	store datastore.Store
}

func NewCustomerService(store datastore.Store) *CustomerService {
	return &CustomerService{store: store}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *CustomerService) Me(ctx context.Context, userID int64) (*models.Customer, error) {
	return s.store.FindCustomerByUserID(ctx, userID)
}

func (s *CustomerService) UpdateMe(ctx context.Context, userID int64, in CustomerInput) (*models.Customer, error) {
	customer, err := s.store.FindCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	customer.Phone = in.Phone
	customer.BirthDate = in.BirthDate
	if err := s.store.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
