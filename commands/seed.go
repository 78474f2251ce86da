package commands

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/services"
)

type seedProduct struct {
	name      string
	price     string
	inventory int
}

// demoCatalog maps category titles to their products.
var demoCatalog = map[string][]seedProduct{
	"Groceries": {
		{"Basmati Rice 5kg", "12.50", 40},
		{"Olive Oil 1L", "8.99", 25},
		{"Green Tea", "3.20", 60},
		{"Saffron 1g", "9.75", 15},
	},
	"Dairy": {
		{"Whole Milk 1L", "1.10", 80},
		{"Feta Cheese", "4.35", 30},
		{"Plain Yogurt", "2.05", 45},
	},
	"Bakery": {
		{"Sangak Bread", "0.90", 100},
		{"Date Cookies", "3.60", 35},
	},
	"Household": {
		{"Dish Soap", "2.40", 50},
		{"Paper Towels", "5.15", 20},
		{"Laundry Detergent 3kg", "11.80", 12},
	},
}

var (
	seedStaffUsername string
	seedStaffPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo categories, products and a staff account",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedStaffUsername, "staff-username", "admin", "username of the staff account to create")
	seedCmd.Flags().StringVar(&seedStaffPassword, "staff-password", "", "password of the staff account; skipped when empty")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Database.Driver != "postgres" {
		return errors.New("seed needs the postgres driver")
	}

	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := services.New(store, cfg, logger)
	products := seedCatalog(ctx, svc.Catalog, logger)

	if seedStaffPassword != "" {
		user, err := svc.Accounts.Register(ctx, services.RegisterInput{
			Username: seedStaffUsername,
			Password: seedStaffPassword,
			IsStaff:  true,
		})
		if err != nil {
			logger.Error("failed to create staff account", zap.String("username", seedStaffUsername), zap.Error(err))
		} else {
			logger.Info("created staff account", zap.String("username", user.Username))
		}
	}

	logger.Info("seeding completed", zap.Int("products", products))
	return nil
}

// seedCatalog inserts every category and product, logging and skipping
// entries that fail. It returns the number of products created.
func seedCatalog(ctx context.Context, catalog *services.CatalogService, logger *zap.Logger) int {
	created := 0
	for title, products := range demoCatalog {
		category, err := catalog.CreateCategory(ctx, services.CategoryInput{Title: title})
		if err != nil {
			logger.Error("failed to create category", zap.String("title", title), zap.Error(err))
			continue
		}
		logger.Info("created category", zap.String("title", title), zap.Int64("id", category.ID))

		for _, p := range products {
			_, err := catalog.CreateProduct(ctx, services.ProductInput{
				Name:       p.name,
				UnitPrice:  decimal.RequireFromString(p.price),
				Inventory:  p.inventory,
				CategoryID: category.ID,
			})
			if err != nil {
				logger.Error("failed to create product", zap.String("name", p.name), zap.Error(err))
				continue
			}
			created++
		}
	}
	return created
}
