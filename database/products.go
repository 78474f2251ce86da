package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

const productColumns = `p.id, p.name, p.slug, p.description, p.unit_price, p.inventory,
	p.category_id, c.title, p.created_at, p.modified_at`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.UnitPrice, &p.Inventory,
		&p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.ModifiedAt,
	)
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// productWhere builds the WHERE clause and its arguments for a filter.
func productWhere(f datastore.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(f.Search))+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(lower(p.name) LIKE $%d ESCAPE '\' OR lower(c.title) LIKE $%d ESCAPE '\')`, n, n))
	}
	if f.CategoryID != nil {
		add("p.category_id = $%d", *f.CategoryID)
	}
	if f.InventoryGT != nil {
		add("p.inventory > $%d", *f.InventoryGT)
	}
	if f.InventoryLT != nil {
		add("p.inventory < $%d", *f.InventoryLT)
	}
	if f.PriceGT != nil {
		add("p.unit_price > $%d", *f.PriceGT)
	}
	if f.PriceLT != nil {
		add("p.unit_price < $%d", *f.PriceLT)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func productOrderBy(ordering string) string {
	column, desc, ok := datastore.ParseOrdering(ordering)
	if !ok {
		return " ORDER BY p.id"
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY p.%s %s, p.id", column, dir)
}

func (q *Queries) ListProducts(ctx context.Context, f datastore.ProductFilter) ([]models.Product, int, error) {
	where, args := productWhere(f)
	from := ` FROM products p JOIN categories c ON c.id = p.category_id`

	var total int
	if err := q.q.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, classify("count products", "product", nil, err)
	}

	query := `SELECT ` + productColumns + from + where + productOrderBy(f.Ordering)
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := q.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, classify("list products", "product", nil, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0, f.Limit)
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, classify("scan product", "product", nil, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list products", "product", nil, err)
	}
	return products, total, nil
}

func (q *Queries) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	row := q.q.QueryRowContext(ctx, `SELECT `+productColumns+`
		FROM products p JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, id)
	if err := scanProduct(row, &p); err != nil {
		return nil, classify("get product", "product", id, err)
	}
	return &p, nil
}

func (q *Queries) CreateProduct(ctx context.Context, p *models.Product) error {
	now := time.Now()
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO products (name, slug, description, unit_price, inventory, category_id, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, modified_at`,
		p.Name, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CategoryID, now,
	).Scan(&p.ID, &p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		return classify("create product", "product", nil, err)
	}
	return q.fillCategoryName(ctx, p)
}

func (q *Queries) UpdateProduct(ctx context.Context, p *models.Product) error {
	err := q.q.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, slug = $3, description = $4, unit_price = $5, inventory = $6,
		    category_id = $7, modified_at = now()
		WHERE id = $1
		RETURNING modified_at`,
		p.ID, p.Name, p.Slug, p.Description, p.UnitPrice, p.Inventory, p.CategoryID,
	).Scan(&p.ModifiedAt)
	if err != nil {
		return classify("update product", "product", p.ID, err)
	}
	return q.fillCategoryName(ctx, p)
}

func (q *Queries) fillCategoryName(ctx context.Context, p *models.Product) error {
	err := q.q.QueryRowContext(ctx, `SELECT title FROM categories WHERE id = $1`, p.CategoryID).Scan(&p.CategoryName)
	return classify("get category", "category", p.CategoryID, err)
}

func (q *Queries) DeleteProduct(ctx context.Context, id int64) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return classifyDelete("delete product", "product", id, err)
	}
	return mustAffect(res, "delete product", "product", id)
}

func (q *Queries) CountOrderItemsForProduct(ctx context.Context, productID int64) (int, error) {
	var n int
	err := q.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_items WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, classify("count order items", "product", productID, err)
	}
	return n, nil
}

func (q *Queries) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT c.id, c.title, c.description, c.created_at, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id
		ORDER BY c.id`)
	if err != nil {
		return nil, classify("list categories", "category", nil, err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.ProductCount); err != nil {
			return nil, classify("scan category", "category", nil, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list categories", "category", nil, err)
	}
	return categories, nil
}

func (q *Queries) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := q.q.QueryRowContext(ctx, `
		SELECT c.id, c.title, c.description, c.created_at,
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
		FROM categories c
		WHERE c.id = $1`, id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.CreatedAt, &c.ProductCount)
	if err != nil {
		return nil, classify("get category", "category", id, err)
	}
	return &c, nil
}

func (q *Queries) CreateCategory(ctx context.Context, c *models.Category) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO categories (title, description) VALUES ($1, $2)
		RETURNING id, created_at`, c.Title, c.Description,
	).Scan(&c.ID, &c.CreatedAt)
	return classify("create category", "category", nil, err)
}

func (q *Queries) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := q.q.ExecContext(ctx, `UPDATE categories SET title = $2, description = $3 WHERE id = $1`,
		c.ID, c.Title, c.Description)
	if err != nil {
		return classify("update category", "category", c.ID, err)
	}
	return mustAffect(res, "update category", "category", c.ID)
}

func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return classifyDelete("delete category", "category", id, err)
	}
	return mustAffect(res, "delete category", "category", id)
}

func (q *Queries) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	rows, err := q.q.QueryContext(ctx, `
		SELECT id, product_id, name, body, status, created_at
		FROM comments WHERE product_id = $1 ORDER BY id`, productID)
	if err != nil {
		return nil, classify("list comments", "comment", nil, err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ProductID, &c.Name, &c.Body, &c.Status, &c.CreatedAt); err != nil {
			return nil, classify("scan comment", "comment", nil, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list comments", "comment", nil, err)
	}
	return comments, nil
}

func (q *Queries) GetComment(ctx context.Context, productID, id int64) (*models.Comment, error) {
	var c models.Comment
	err := q.q.QueryRowContext(ctx, `
		SELECT id, product_id, name, body, status, created_at
		FROM comments WHERE product_id = $1 AND id = $2`, productID, id,
	).Scan(&c.ID, &c.ProductID, &c.Name, &c.Body, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, classify("get comment", "comment", id, err)
	}
	return &c, nil
}

func (q *Queries) CreateComment(ctx context.Context, c *models.Comment) error {
	err := q.q.QueryRowContext(ctx, `
		INSERT INTO comments (product_id, name, body, status) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`, c.ProductID, c.Name, c.Body, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	return classify("create comment", "comment", nil, err)
}

func (q *Queries) UpdateComment(ctx context.Context, c *models.Comment) error {
	res, err := q.q.ExecContext(ctx, `
		UPDATE comments SET name = $3, body = $4, status = $5
		WHERE product_id = $1 AND id = $2`, c.ProductID, c.ID, c.Name, c.Body, c.Status)
	if err != nil {
		return classify("update comment", "comment", c.ID, err)
	}
	return mustAffect(res, "update comment", "comment", c.ID)
}

func (q *Queries) DeleteComment(ctx context.Context, productID, id int64) error {
	res, err := q.q.ExecContext(ctx, `DELETE FROM comments WHERE product_id = $1 AND id = $2`, productID, id)
	if err != nil {
		return classify("delete comment", "comment", id, err)
	}
	return mustAffect(res, "delete comment", "comment", id)
}

// nullTime adapts an optional timestamp for Exec arguments.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
