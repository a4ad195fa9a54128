package repositories_test

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/acme/productstore/app/models"
	"github.com/acme/productstore/app/repositories"
	"github.com/acme/productstore/database/factories"
	"github.com/acme/productstore/pkg/collection"
	"github.com/acme/productstore/pkg/database"
)

var dbSeq atomic.Int64

// newRepo opens a fresh in-memory sqlite database per test. The named
// shared-cache DSN keeps every pooled connection on the same database while
// still isolating tests from each other.
func newRepo(t *testing.T) *repositories.ProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	return repositories.NewProductRepository(db)
}

// createBatch persists n random products and returns them with ids assigned.
func createBatch(t *testing.T, repo *repositories.ProductRepository, n int) []models.Product {
	t.Helper()

	batch := factories.Batch(n)
	for i := range batch {
		require.NoError(t, repo.Create(&batch[i]))
		require.NotZero(t, batch[i].ID)
	}
	return batch
}

func TestCreateAssignsID(t *testing.T) {
	repo := newRepo(t)

	products, err := repo.All()
	require.NoError(t, err)
	require.Empty(t, products)

	product := factories.NewProduct()
	require.NoError(t, repo.Create(&product))
	assert.NotZero(t, product.ID)

	products, err = repo.All()
	require.NoError(t, err)
	require.Len(t, products, 1)

	stored := products[0]
	assert.Equal(t, product.ID, stored.ID)
	assert.Equal(t, product.Name, stored.Name)
	assert.Equal(t, product.Description, stored.Description)
	assert.True(t, stored.Price.Equal(product.Price), "stored %s != created %s", stored.Price, product.Price)
	assert.Equal(t, product.Available, stored.Available)
	assert.Equal(t, product.Category, stored.Category)
}

func TestCreateAssignsUnusedIDs(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 5)

	ids := map[uint]bool{}
	for _, p := range batch {
		assert.False(t, ids[p.ID], "id %d assigned twice", p.ID)
		ids[p.ID] = true
	}
}

func TestCreateRejectsExistingID(t *testing.T) {
	repo := newRepo(t)

	product := factories.NewProduct()
	product.ID = 42

	err := repo.Create(&product)
	require.ErrorIs(t, err, repositories.ErrIDSet)
}

func TestCreateValidation(t *testing.T) {
	repo := newRepo(t)

	missingName := factories.NewProduct()
	missingName.Name = ""
	require.ErrorIs(t, repo.Create(&missingName), models.ErrNameRequired)

	badCategory := factories.NewProduct()
	badCategory.Category = models.Category("GADGETS")
	require.ErrorIs(t, repo.Create(&badCategory), models.ErrInvalidCategory)

	negative := factories.NewProduct()
	negative.Price = decimal.NewFromInt(-1)
	require.ErrorIs(t, repo.Create(&negative), models.ErrNegativePrice)

	// No partial writes.
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFindByID(t *testing.T) {
	repo := newRepo(t)

	product := factories.NewProduct()
	require.NoError(t, repo.Create(&product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)
	assert.Equal(t, product.Name, found.Name)
	assert.Equal(t, product.Description, found.Description)
	assert.True(t, found.Price.Equal(product.Price))
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByID(9999)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	repo := newRepo(t)

	product := factories.NewProduct()
	require.NoError(t, repo.Create(&product))
	originalID := product.ID

	product.Description = "updated description"
	require.NoError(t, repo.Update(&product))
	assert.Equal(t, originalID, product.ID)

	products, err := repo.All()
	require.NoError(t, err)
	require.Len(t, products, 1, "update must not change the row count")
	assert.Equal(t, originalID, products[0].ID)
	assert.Equal(t, "updated description", products[0].Description)
}

func TestUpdateWithoutID(t *testing.T) {
	repo := newRepo(t)

	product := factories.NewProduct()
	err := repo.Update(&product)
	require.ErrorIs(t, err, repositories.ErrEmptyID)
}

func TestUpdateMissingRow(t *testing.T) {
	repo := newRepo(t)

	product := factories.NewProduct()
	require.NoError(t, repo.Create(&product))
	require.NoError(t, repo.Delete(&product))

	product.Description = "ghost"
	err := repo.Update(&product)
	require.ErrorIs(t, err, repositories.ErrNotFound)

	// The failed update must not have resurrected the row.
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDelete(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 2)

	require.NoError(t, repo.Delete(&batch[0]))

	products, err := repo.All()
	require.NoError(t, err)
	require.Len(t, products, 1, "delete removes exactly one row")
	assert.Equal(t, batch[1].ID, products[0].ID)

	_, err = repo.FindByID(batch[0].ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeleteAbsentIsSilent(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.Delete(&models.Product{ID: 12345}))
}

func TestListAll(t *testing.T) {
	repo := newRepo(t)

	createBatch(t, repo, 5)

	products, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, products, 5)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)
}

func TestFindByName(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 5)
	name := batch[0].Name

	expected := collection.Filter(batch, func(p models.Product) bool {
		return p.Name == name
	})

	found, err := repo.FindByName(name)
	require.NoError(t, err)
	require.Len(t, found, len(expected))
	for _, p := range found {
		assert.Equal(t, name, p.Name)
	}
}

func TestFindByAvailability(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 10)
	available := batch[0].Available

	expected := collection.Filter(batch, func(p models.Product) bool {
		return p.Available == available
	})

	found, err := repo.FindByAvailability(available)
	require.NoError(t, err)
	require.Len(t, found, len(expected))
	for _, p := range found {
		assert.Equal(t, available, p.Available)
	}
}

func TestFindByCategory(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 10)
	category := batch[0].Category

	expected := collection.Filter(batch, func(p models.Product) bool {
		return p.Category == category
	})

	found, err := repo.FindByCategory(category)
	require.NoError(t, err)
	require.Len(t, found, len(expected))
	for _, p := range found {
		assert.Equal(t, category, p.Category)
	}
}

func TestFindByCategoryRejectsUnknownMember(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByCategory(models.Category("GADGETS"))
	require.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestFindByPrice(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 10)
	price := batch[0].Price

	expected := collection.Filter(batch, func(p models.Product) bool {
		return p.Price.Equal(price)
	})

	found, err := repo.FindByPrice(price)
	require.NoError(t, err)
	require.Len(t, found, len(expected))
	for _, p := range found {
		assert.True(t, p.Price.Equal(price))
	}
}

func TestFindByPriceRepresentations(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 10)
	price := batch[0].Price

	byDecimal, err := repo.FindByPrice(price)
	require.NoError(t, err)

	byString, err := repo.FindByPrice(price.String())
	require.NoError(t, err)
	require.Len(t, byString, len(byDecimal), "string price must match the decimal result set")

	byFloat, err := repo.FindByPrice(price.InexactFloat64())
	require.NoError(t, err)
	require.Len(t, byFloat, len(byDecimal), "float price must match the decimal result set")

	ids := func(products []models.Product) []uint {
		return collection.Map(products, func(p models.Product) uint { return p.ID })
	}
	assert.ElementsMatch(t, ids(byDecimal), ids(byString))
	assert.ElementsMatch(t, ids(byDecimal), ids(byFloat))
}

func TestFindByPriceUnsupportedType(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByPrice(struct{}{})
	require.Error(t, err)
}

func TestAllCachedWithoutCacheServer(t *testing.T) {
	repo := newRepo(t)

	batch := createBatch(t, repo, 3)

	// No cache connection: AllCached must behave exactly like All.
	products, err := repo.AllCached(0)
	require.NoError(t, err)
	require.Len(t, products, len(batch))
}
