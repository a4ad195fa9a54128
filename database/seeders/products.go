package seeders

import (
	"gorm.io/gorm"

	"github.com/acme/productstore/app/models"
	"github.com/acme/productstore/app/repositories"
	"github.com/acme/productstore/database/factories"
	"github.com/acme/productstore/pkg/collection"
	"github.com/acme/productstore/pkg/logger"
)

// ProductCount is how many random products SeedProducts inserts.
// The CLI overrides it via --count.
var ProductCount = 25

func init() {
	Register("products", SeedProducts)
}

// SeedProducts fills the catalogue with random factory products.
func SeedProducts(db *gorm.DB) error {
	repo := repositories.NewProductRepository(db)

	batch := factories.Batch(ProductCount)
	for i := range batch {
		if err := repo.Create(&batch[i]); err != nil {
			return err
		}
	}

	byCategory := collection.GroupBy(batch, func(p models.Product) string {
		return p.Category.String()
	})
	for category, group := range byCategory {
		logger.Debug("seeded category", "category", category, "count", len(group))
	}

	logger.Info("seeded products", "count", len(batch))
	return nil
}
