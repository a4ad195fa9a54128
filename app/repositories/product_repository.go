package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/acme/productstore/app/models"
	"github.com/acme/productstore/pkg/cache"
	"github.com/acme/productstore/pkg/logger"
	"github.com/acme/productstore/pkg/orm"
)

var (
	// ErrNotFound reports an operation against an id with no matching row.
	ErrNotFound = errors.New("product not found")
	// ErrEmptyID reports an update or delete on a product that was never persisted.
	ErrEmptyID = errors.New("product id is not set")
	// ErrIDSet reports a create on a product that already has an id.
	ErrIDSet = errors.New("product id must be unset on create")
)

const cacheKeyAll = "products:all"

// ProductRepository handles database operations for Product. It holds an
// explicit database handle, so tests and callers decide which session it
// works against.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) query() *orm.Query {
	return orm.New(r.db).Model(&models.Product{})
}

// Create persists a new product. The product must not have an id yet; the
// store assigns one and never reuses it. Nothing is written when validation
// fails.
func (r *ProductRepository) Create(product *models.Product) error {
	if product.ID != 0 {
		return fmt.Errorf("%w: id=%d", ErrIDSet, product.ID)
	}
	product.Price = product.Price.Round(2)
	if err := product.Validate(); err != nil {
		return err
	}

	if err := orm.New(r.db).Create(product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	_ = cache.Del(cacheKeyAll)
	logger.Debug("product created", "id", product.ID, "name", product.Name)
	return nil
}

// Update overwrites every mutable field of the row matching the product's id.
// The id itself never changes. Returns ErrNotFound when the row is gone.
func (r *ProductRepository) Update(product *models.Product) error {
	if product.ID == 0 {
		return ErrEmptyID
	}
	product.Price = product.Price.Round(2)
	if err := product.Validate(); err != nil {
		return err
	}

	affected, err := orm.New(r.db).Save(product)
	if err != nil {
		return fmt.Errorf("update product %d: %w", product.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id=%d", ErrNotFound, product.ID)
	}

	_ = cache.Del(cacheKeyAll)
	logger.Debug("product updated", "id", product.ID)
	return nil
}

// Delete removes the row matching the product's id. Deleting an id that is
// already absent is a silent success.
func (r *ProductRepository) Delete(product *models.Product) error {
	if product.ID == 0 {
		return ErrEmptyID
	}

	if err := orm.New(r.db).Delete(product); err != nil {
		return fmt.Errorf("delete product %d: %w", product.ID, err)
	}

	_ = cache.Del(cacheKeyAll)
	logger.Debug("product deleted", "id", product.ID)
	return nil
}

// FindByID looks up a single product by primary key.
func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.query().Where("id = ?", id).First(&product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find product %d: %w", id, err)
	}
	return &product, nil
}

// All returns every persisted product in store order.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.query().Get(&products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// AllCached is All with a Redis read-through for hot listing paths. Without
// a cache connection it behaves exactly like All.
func (r *ProductRepository) AllCached(ttl time.Duration) ([]models.Product, error) {
	var products []models.Product
	if err := r.query().Cache(cacheKeyAll, ttl, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Count returns the number of persisted products.
func (r *ProductRepository) Count() (int64, error) {
	n, err := r.query().Count()
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// FindByName returns every product whose name matches exactly.
func (r *ProductRepository) FindByName(name string) ([]models.Product, error) {
	var products []models.Product
	if err := r.query().Where("name = ?", name).Get(&products); err != nil {
		return nil, fmt.Errorf("find products by name %q: %w", name, err)
	}
	return products, nil
}

// FindByAvailability returns every product with the given availability flag.
func (r *ProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	var products []models.Product
	if err := r.query().Where("available = ?", available).Get(&products); err != nil {
		return nil, fmt.Errorf("find products by availability %t: %w", available, err)
	}
	return products, nil
}

// FindByCategory returns every product in the given category.
func (r *ProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidCategory, string(category))
	}

	var products []models.Product
	if err := r.query().Where("category = ?", category).Get(&products); err != nil {
		return nil, fmt.Errorf("find products by category %s: %w", category, err)
	}
	return products, nil
}

// FindByPrice returns every product with exactly the given price. The value
// may be a decimal, a string, or a native numeric type; all representations
// of the same amount return the same result set.
func (r *ProductRepository) FindByPrice(value interface{}) ([]models.Product, error) {
	price, err := models.NormalizePrice(value)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := r.query().Where("price = ?", price).Get(&products); err != nil {
		return nil, fmt.Errorf("find products by price %s: %w", price, err)
	}
	return products, nil
}
