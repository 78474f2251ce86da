package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/models"
	"github.com/shadighanaat/DRF-store/utils"
)

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description string
	UnitPrice   decimal.Decimal
	Inventory   int
	CategoryID  int64
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.Invalid("title may not be blank")
	}
	if err := ValidatePrice(in.UnitPrice); err != nil {
		return err
	}
	if in.Inventory < 0 {
		return apperrors.Invalid("inventory must be zero or more")
	}
	return nil
}

// ValidatePrice checks a price fits NUMERIC(6,2).
func ValidatePrice(p decimal.Decimal) error {
	if p.IsNegative() {
		return apperrors.Invalid("price must be zero or more")
	}
	if !p.LessThan(models.MaxUnitPrice) {
		return apperrors.Invalid("price must be less than %s", models.MaxUnitPrice)
	}
	if !p.Round(2).Equal(p) {
		return apperrors.Invalid("price may have at most 2 decimal places")
	}
	return nil
}

type CatalogService struct {
	store  datastore.Store
	logger *zap.Logger
}

func NewCatalogService(store datastore.Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

func (s *CatalogService) ListProducts(ctx context.Context, f datastore.ProductFilter) ([]models.Product, int, error) {
	return s.store.ListProducts(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &models.Product{
		Name:        in.Name,
		Slug:        utils.Slugify(in.Name),
		Description: in.Description,
		UnitPrice:   in.UnitPrice,
		Inventory:   in.Inventory,
		CategoryID:  in.CategoryID,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.Int64("product_id", p.ID), zap.String("slug", p.Slug))
	return p, nil
}

// UpdateProduct replaces the writable fields. The slug is kept.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = in.Name
	p.Description = in.Description
	p.UnitPrice = in.UnitPrice
	p.Inventory = in.Inventory
	p.CategoryID = in.CategoryID
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct refuses to remove a product that appears on any order.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.store.GetProduct(ctx, id); err != nil {
		return err
	}
	n, err := s.store.CountOrderItemsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.Protected("There is some order items including this product. Please remove them first.")
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Title       string
	Description string
}

func (in CategoryInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperrors.Invalid("title may not be blank")
	}
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := &models.Category{Title: in.Title, Description: in.Description}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*models.Category, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Title = in.Title
	c.Description = in.Description
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses to remove a category that still has products.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if c.ProductCount > 0 {
		return apperrors.Protected("There is some products relating this category. Please remove them first.")
	}
	return s.store.DeleteCategory(ctx, id)
}
