package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/models"
)

func (q *queries) CreateUser(ctx context.Context, u *models.User) error {
	if err := q.fault(ctx, "CreateUser"); err != nil {
		return err
	}
	for _, existing := range q.data.users {
		if existing.Username == u.Username {
			return apperrors.ErrConflict
		}
	}
	u.ID = q.data.id()
	u.DateJoined = time.Now()
	q.data.users[u.ID] = *u
	return nil
}

func (q *queries) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := q.fault(ctx, "GetUser"); err != nil {
		return nil, err
	}
	u, ok := q.data.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return &u, nil
}

func (q *queries) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := q.fault(ctx, "FindUserByUsername"); err != nil {
		return nil, err
	}
	for _, u := range q.data.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", username)
}

func (q *queries) withUser(c models.Customer) models.Customer {
	if u, ok := q.data.users[c.UserID]; ok {
		c.User = &u
	}
	return c
}

func (q *queries) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if err := q.fault(ctx, "CreateCustomer"); err != nil {
		return err
	}
	if _, ok := q.data.users[c.UserID]; !ok {
		return apperrors.NotFound("user", nil)
	}
	for _, existing := range q.data.customers {
		if existing.UserID == c.UserID {
			return apperrors.ErrConflict
		}
	}
	c.ID = q.data.id()
	stored := *c
	stored.User = nil
	q.data.customers[c.ID] = stored
	return nil
}

func (q *queries) FindCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	if err := q.fault(ctx, "FindCustomer"); err != nil {
		return nil, err
	}
	c, ok := q.data.customers[id]
	if !ok {
		return nil, apperrors.NotFound("customer", id)
	}
	c = q.withUser(c)
	return &c, nil
}

func (q *queries) FindCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	if err := q.fault(ctx, "FindCustomerByUserID"); err != nil {
		return nil, err
	}
	for _, c := range q.data.customers {
		if c.UserID == userID {
			c = q.withUser(c)
			return &c, nil
		}
	}
	return nil, apperrors.NotFound("customer", nil)
}

func (q *queries) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	if err := q.fault(ctx, "UpdateCustomer"); err != nil {
		return err
	}
	stored, ok := q.data.customers[c.ID]
	if !ok {
		return apperrors.NotFound("customer", c.ID)
	}
	stored.Phone = c.Phone
	stored.BirthDate = c.BirthDate
	q.data.customers[c.ID] = stored
	return nil
}

func (q *queries) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	if err := q.fault(ctx, "ListCustomers"); err != nil {
		return nil, err
	}
	customers := make([]models.Customer, 0, len(q.data.customers))
	for _, c := range q.data.customers {
		customers = append(customers, q.withUser(c))
	}
	slices.SortFunc(customers, func(a, b models.Customer) int { return cmp.Compare(a.ID, b.ID) })
	return customers, nil
}
