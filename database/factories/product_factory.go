// Package factories produces randomized, always-valid entities for tests
// and seeding. It plays the role of an external data source: nothing in it
// touches the database.
package factories

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/acme/productstore/app/models"
)

// productNames is a small pool on purpose: batches are expected to contain
// duplicate names so lookup tests have something to find.
var productNames = []string{
	"Hat", "Pants", "Shirt", "Apple", "Banana", "Pots",
	"Towels", "Ford", "Chevy", "Hammer", "Wrench",
}

// NewProduct returns one random unpersisted product (zero ID).
func NewProduct() models.Product {
	categories := models.Categories()

	return models.Product{
		Name:        gofakeit.RandomString(productNames),
		Description: gofakeit.Sentence(8),
		Price:       decimal.NewFromFloat(gofakeit.Price(0.5, 2000)).Round(2),
		Available:   gofakeit.Bool(),
		Category:    categories[gofakeit.Number(0, len(categories)-1)],
	}
}

// Batch returns n random unpersisted products.
func Batch(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = NewProduct()
	}
	return products
}
