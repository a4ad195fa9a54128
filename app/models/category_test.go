package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/productstore/app/models"
)

func TestParseCategory(t *testing.T) {
	c, err := models.ParseCategory("food")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFood, c)

	c, err = models.ParseCategory("  TOOLS ")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTools, c)

	_, err = models.ParseCategory("GADGETS")
	require.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestCategoriesAreValid(t *testing.T) {
	for _, c := range models.Categories() {
		assert.True(t, c.Valid(), "category %s", c)
	}
}

func TestCategoryScan(t *testing.T) {
	var c models.Category

	require.NoError(t, c.Scan("CLOTHS"))
	assert.Equal(t, models.CategoryCloths, c)

	require.NoError(t, c.Scan([]byte("AUTOMOTIVE")))
	assert.Equal(t, models.CategoryAutomotive, c)

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, models.CategoryUnknown, c)

	require.Error(t, c.Scan(42))
	require.ErrorIs(t, c.Scan("GADGETS"), models.ErrInvalidCategory)
}

func TestCategoryValue(t *testing.T) {
	v, err := models.CategoryHousewares.Value()
	require.NoError(t, err)
	assert.Equal(t, "HOUSEWARES", v)

	_, err = models.Category("GADGETS").Value()
	require.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestCategoryJSON(t *testing.T) {
	var c models.Category
	require.NoError(t, json.Unmarshal([]byte(`"FOOD"`), &c))
	assert.Equal(t, models.CategoryFood, c)

	require.ErrorIs(t, json.Unmarshal([]byte(`"GADGETS"`), &c), models.ErrInvalidCategory)
	require.Error(t, json.Unmarshal([]byte(`7`), &c))
}
