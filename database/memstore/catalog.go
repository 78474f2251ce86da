package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
)

func (q *queries) withCategory(p models.Product) models.Product {
	p.CategoryName = q.data.categories[p.CategoryID].Title
	return p
}

func (q *queries) matches(p models.Product, f datastore.ProductFilter) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		title := strings.ToLower(q.data.categories[p.CategoryID].Title)
		if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(title, term) {
			return false
		}
	}
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if f.InventoryGT != nil && p.Inventory <= *f.InventoryGT {
		return false
	}
	if f.InventoryLT != nil && p.Inventory >= *f.InventoryLT {
		return false
	}
	if f.PriceGT != nil && !p.UnitPrice.GreaterThan(*f.PriceGT) {
		return false
	}
	if f.PriceLT != nil && !p.UnitPrice.LessThan(*f.PriceLT) {
		return false
	}
	return true
}

func compareProducts(ordering string) func(a, b models.Product) int {
	column, desc, ok := datastore.ParseOrdering(ordering)
	return func(a, b models.Product) int {
		var c int
		if ok {
			switch column {
			case "name":
				c = strings.Compare(a.Name, b.Name)
			case "unit_price":
				c = a.UnitPrice.Cmp(b.UnitPrice)
			case "inventory":
				c = cmp.Compare(a.Inventory, b.Inventory)
			}
			if desc {
				c = -c
			}
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	}
}

func (q *queries) ListProducts(ctx context.Context, f datastore.ProductFilter) ([]models.Product, int, error) {
	if err := q.fault(ctx, "ListProducts"); err != nil {
		return nil, 0, err
	}

	var all []models.Product
	for _, p := range q.data.products {
		if q.matches(p, f) {
			all = append(all, q.withCategory(p))
		}
	}
	slices.SortFunc(all, compareProducts(f.Ordering))

	total := len(all)
	if f.Limit > 0 {
		start := min(f.Offset, total)
		end := min(start+f.Limit, total)
		all = all[start:end]
	}
	if all == nil {
		all = []models.Product{}
	}
	return all, total, nil
}

func (q *queries) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if err := q.fault(ctx, "GetProduct"); err != nil {
		return nil, err
	}
	p, ok := q.data.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	p = q.withCategory(p)
	return &p, nil
}

func (q *queries) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := q.fault(ctx, "CreateProduct"); err != nil {
		return err
	}
	if _, ok := q.data.categories[p.CategoryID]; !ok {
		return apperrors.NotFound("category", nil)
	}
	p.ID = q.data.id()
	p.CreatedAt = time.Now()
	p.ModifiedAt = p.CreatedAt
	*p = q.withCategory(*p)
	q.data.products[p.ID] = *p
	return nil
}

func (q *queries) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := q.fault(ctx, "UpdateProduct"); err != nil {
		return err
	}
	old, ok := q.data.products[p.ID]
	if !ok {
		return apperrors.NotFound("product", p.ID)
	}
	if _, ok := q.data.categories[p.CategoryID]; !ok {
		return apperrors.NotFound("category", nil)
	}
	p.CreatedAt = old.CreatedAt
	p.ModifiedAt = time.Now()
	*p = q.withCategory(*p)
	q.data.products[p.ID] = *p
	return nil
}

func (q *queries) DeleteProduct(ctx context.Context, id int64) error {
	if err := q.fault(ctx, "DeleteProduct"); err != nil {
		return err
	}
	if _, ok := q.data.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	for _, item := range q.data.orderItems {
		if item.ProductID == id {
			return apperrors.Protected("product is still referenced")
		}
	}
	for itemID, item := range q.data.cartItems {
		if item.ProductID == id {
			delete(q.data.cartItems, itemID)
		}
	}
	for commentID, c := range q.data.comments {
		if c.ProductID == id {
			delete(q.data.comments, commentID)
		}
	}
	delete(q.data.products, id)
	return nil
}

func (q *queries) CountOrderItemsForProduct(ctx context.Context, productID int64) (int, error) {
	if err := q.fault(ctx, "CountOrderItemsForProduct"); err != nil {
		return 0, err
	}
	n := 0
	for _, item := range q.data.orderItems {
		if item.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (q *queries) categoryWithCount(c models.Category) models.Category {
	c.ProductCount = 0
	for _, p := range q.data.products {
		if p.CategoryID == c.ID {
			c.ProductCount++
		}
	}
	return c
}

func (q *queries) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := q.fault(ctx, "ListCategories"); err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(q.data.categories))
	for _, c := range q.data.categories {
		categories = append(categories, q.categoryWithCount(c))
	}
	slices.SortFunc(categories, func(a, b models.Category) int { return cmp.Compare(a.ID, b.ID) })
	return categories, nil
}

func (q *queries) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	if err := q.fault(ctx, "GetCategory"); err != nil {
		return nil, err
	}
	c, ok := q.data.categories[id]
	if !ok {
		return nil, apperrors.NotFound("category", id)
	}
	c = q.categoryWithCount(c)
	return &c, nil
}

func (q *queries) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := q.fault(ctx, "CreateCategory"); err != nil {
		return err
	}
	c.ID = q.data.id()
	c.CreatedAt = time.Now()
	q.data.categories[c.ID] = *c
	return nil
}

func (q *queries) UpdateCategory(ctx context.Context, c *models.Category) error {
	if err := q.fault(ctx, "UpdateCategory"); err != nil {
		return err
	}
	old, ok := q.data.categories[c.ID]
	if !ok {
		return apperrors.NotFound("category", c.ID)
	}
	c.CreatedAt = old.CreatedAt
	q.data.categories[c.ID] = *c
	return nil
}

func (q *queries) DeleteCategory(ctx context.Context, id int64) error {
	if err := q.fault(ctx, "DeleteCategory"); err != nil {
		return err
	}
	if _, ok := q.data.categories[id]; !ok {
		return apperrors.NotFound("category", id)
	}
	for _, p := range q.data.products {
		if p.CategoryID == id {
			return apperrors.Protected("category is still referenced")
		}
	}
	delete(q.data.categories, id)
	return nil
}

func (q *queries) ListComments(ctx context.Context, productID int64) ([]models.Comment, error) {
	if err := q.fault(ctx, "ListComments"); err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	for _, c := range q.data.comments {
		if c.ProductID == productID {
			comments = append(comments, c)
		}
	}
	slices.SortFunc(comments, func(a, b models.Comment) int { return cmp.Compare(a.ID, b.ID) })
	return comments, nil
}

func (q *queries) GetComment(ctx context.Context, productID, id int64) (*models.Comment, error) {
	if err := q.fault(ctx, "GetComment"); err != nil {
		return nil, err
	}
	c, ok := q.data.comments[id]
	if !ok || c.ProductID != productID {
		return nil, apperrors.NotFound("comment", id)
	}
	return &c, nil
}

func (q *queries) CreateComment(ctx context.Context, c *models.Comment) error {
	if err := q.fault(ctx, "CreateComment"); err != nil {
		return err
	}
	if _, ok := q.data.products[c.ProductID]; !ok {
		return apperrors.NotFound("product", nil)
	}
	c.ID = q.data.id()
	c.CreatedAt = time.Now()
	q.data.comments[c.ID] = *c
	return nil
}

func (q *queries) UpdateComment(ctx context.Context, c *models.Comment) error {
	if err := q.fault(ctx, "UpdateComment"); err != nil {
		return err
	}
	old, ok := q.data.comments[c.ID]
	if !ok || old.ProductID != c.ProductID {
		return apperrors.NotFound("comment", c.ID)
	}
	c.CreatedAt = old.CreatedAt
	q.data.comments[c.ID] = *c
	return nil
}

func (q *queries) DeleteComment(ctx context.Context, productID, id int64) error {
	if err := q.fault(ctx, "DeleteComment"); err != nil {
		return err
	}
	c, ok := q.data.comments[id]
	if !ok || c.ProductID != productID {
		return apperrors.NotFound("comment", id)
	}
	delete(q.data.comments, id)
	return nil
}
