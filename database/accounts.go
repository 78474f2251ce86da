package database

import (
	"context"
	"database/sql"

	"github.com/shadighanaat/DRF-store/models"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, is_staff, is_active, date_joined`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.IsStaff, &u.IsActive, &u.DateJoined)
}

func (q *Queries) CreateUser(ctx context.Context, u *models.User) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, date_joined`,
		u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsStaff, u.IsActive,
	).Scan(&u.ID, &u.DateJoined)
	return classify("create user", "user", nil, err)
}

func (q *Queries) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	row := q.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err := scanUser(row, &u); err != nil {
		return nil, classify("get user", "user", id, err)
	}
	return &u, nil
}

func (q *Queries) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	row := q.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err := scanUser(row, &u); err != nil {
		return nil, classify("find user", "user", username, err)
	}
	return &u, nil
}

const customerColumns = `cu.id, cu.user_id, cu.phone, cu.birth_date,
	u.id, u.username, u.email, u.first_name, u.last_name, u.password_hash, u.is_staff, u.is_active, u.date_joined`

func scanCustomer(row interface{ Scan(...any) error }, c *models.Customer) error {
	var birth sql.NullTime
	u := &models.User{}
	err := row.Scan(&c.ID, &c.UserID, &c.Phone, &birth,
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.IsStaff, &u.IsActive, &u.DateJoined)
	if err != nil {
		return err
	}
	if birth.Valid {
		c.BirthDate = &birth.Time
	}
	c.User = u
	return nil
}

func (q *Queries) CreateCustomer(ctx context.Context, c *models.Customer) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO customers (user_id, phone, birth_date) VALUES ($1, $2, $3)
		RETURNING id`, c.UserID, c.Phone, nullTime(c.BirthDate),
	).Scan(&c.ID)
	return classify("create customer", "customer", nil, err)
}

func (q *Queries) FindCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	row := q.q.QueryRowContext(ctx, `SELECT `+customerColumns+`
		FROM customers cu JOIN users u ON u.id = cu.user_id
		WHERE cu.id = $1`, id)
	if err := scanCustomer(row, &c); err != nil {
		return nil, classify("find customer", "customer", id, err)
	}
	return &c, nil
}

func (q *Queries) FindCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	var c models.Customer
	row := q.q.QueryRowContext(ctx, `SELECT `+customerColumns+`
		FROM customers cu JOIN users u ON u.id = cu.user_id
		WHERE cu.user_id = $1`, userID)
	if err := scanCustomer(row, &c); err != nil {
		return nil, classify("find customer", "customer", nil, err)
	}
	return &c, nil
}

func (q *Queries) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	res, err := q.q.ExecContext(ctx, `UPDATE customers SET phone = $2, birth_date = $3 WHERE id = $1`,
		c.ID, c.Phone, nullTime(c.BirthDate))
	if err != nil {
		return classify("update customer", "customer", c.ID, err)
	}
	return mustAffect(res, "update customer", "customer", c.ID)
}

func (q *Queries) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := q.q.QueryContext(ctx, `SELECT `+customerColumns+`
		FROM customers cu JOIN users u ON u.id = cu.user_id
		ORDER BY cu.id`)
	if err != nil {
		return nil, classify("list customers", "customer", nil, err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, classify("scan customer", "customer", nil, err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list customers", "customer", nil, err)
	}
	return customers, nil
}
