package factories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/acme/productstore/database/factories"
)

func TestNewProductIsValid(t *testing.T) {
	for i := 0; i < 50; i++ {
		product := factories.NewProduct()

		assert.NoError(t, product.Validate())
		assert.Zero(t, product.ID, "factory products must be unpersisted")
		assert.False(t, product.Price.IsNegative())
		assert.True(t, product.Price.Equal(product.Price.Round(2)), "prices carry two decimal places")
	}
}

func TestBatchSize(t *testing.T) {
	assert.Len(t, factories.Batch(10), 10)
	assert.Empty(t, factories.Batch(0))
}
