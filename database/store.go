package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the data store operations against a connection or a
// transaction.
type Queries struct {
	q    querier
	inTx bool
}

// Store is the Postgres implementation of datastore.Store.
type Store struct {
	*Queries
	db *DB
}

var _ datastore.Store = (*Store)(nil)

func NewStore(db *DB) *Store {
	return &Store{Queries: &Queries{q: db.DB}, db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.HealthCheck(ctx); err != nil {
		return apperrors.Unavailable("ping", err)
	}
	return nil
}

// WithTx runs fn in a transaction bound to ctx. Cancelling ctx makes
// database/sql roll the transaction back.
func (s *Store) WithTx(ctx context.Context, fn func(q datastore.Queries) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Unavailable("begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.db.logger.Warn("rollback failed", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(&Queries{q: tx, inTx: true}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return apperrors.Unavailable("commit transaction", err)
	}
	return nil
}

// Postgres error codes the stores translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// classify maps a driver error onto the apperrors taxonomy. resource names
// the row looked up, for NotFound messages.
func classify(op, resource string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(resource, id)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", op, apperrors.ErrConflict)
		case codeForeignKeyViolation:
			return apperrors.NotFound(referencedResource(pqErr), nil)
		case codeCheckViolation:
			return apperrors.Invalid("%s violates %s", resource, pqErr.Constraint)
		case codeNumericOutOfRange:
			return apperrors.Invalid("%s value out of range", resource)
		}
	}
	return apperrors.Unavailable(op, err)
}

// referencedResource guesses the missing parent from the violated
// constraint name, e.g. cart_items_product_id_fkey -> product.
func referencedResource(err *pq.Error) string {
	switch err.Constraint {
	case "cart_items_cart_id_fkey":
		return "cart"
	case "cart_items_product_id_fkey", "order_items_product_id_fkey":
		return "product"
	case "products_category_id_fkey":
		return "category"
	case "orders_customer_id_fkey":
		return "customer"
	case "comments_product_id_fkey":
		return "product"
	}
	return "referenced row"
}

// classifyDelete is classify for deletes, where a foreign key violation
// means dependents still reference the row.
func classifyDelete(op, resource string, id any, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation {
		return apperrors.Protected(fmt.Sprintf("%s %v is still referenced", resource, id))
	}
	return classify(op, resource, id, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// mustAffect turns a zero-row update or delete into NotFound.
func mustAffect(res sql.Result, op, resource string, id any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Unavailable(op, err)
	}
	if n == 0 {
		return apperrors.NotFound(resource, id)
	}
	return nil
}
