package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/productstore/app/models"
)

func TestProductValidate(t *testing.T) {
	product := models.Product{
		Name:        "Fedora",
		Description: "A red hat",
		Price:       decimal.RequireFromString("12.50"),
		Available:   true,
		Category:    models.CategoryCloths,
	}
	require.NoError(t, product.Validate())

	noName := product
	noName.Name = ""
	require.ErrorIs(t, noName.Validate(), models.ErrNameRequired)

	negative := product
	negative.Price = decimal.NewFromInt(-5)
	require.ErrorIs(t, negative.Validate(), models.ErrNegativePrice)

	badCategory := product
	badCategory.Category = models.Category("HATS")
	require.ErrorIs(t, badCategory.Validate(), models.ErrInvalidCategory)
}

func TestProductString(t *testing.T) {
	product := models.Product{ID: 3, Name: "Fedora"}
	assert.Equal(t, "Product<Fedora id=3>", product.String())
}

func TestNormalizePrice(t *testing.T) {
	want := decimal.RequireFromString("12.50")

	for _, input := range []interface{}{
		"12.50",
		"12.5",
		12.5,
		float32(12.5),
		decimal.NewFromFloat(12.5),
	} {
		got, err := models.NormalizePrice(input)
		require.NoError(t, err, "input %v", input)
		assert.True(t, got.Equal(want), "input %v: got %s", input, got)
	}

	got, err := models.NormalizePrice(12)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(12)))

	_, err = models.NormalizePrice("not-a-price")
	require.Error(t, err)

	_, err = models.NormalizePrice([]string{"12.50"})
	require.Error(t, err)
}

func TestNormalizePriceRoundsToCents(t *testing.T) {
	got, err := models.NormalizePrice("12.505")
	require.NoError(t, err)
	assert.Equal(t, "12.51", got.StringFixed(2))
}
