package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Validation errors surfaced before any write reaches the store.
var (
	ErrNameRequired    = errors.New("product name is required")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrInvalidCategory = errors.New("unknown product category")
)

// priceScale is the number of decimal places a stored price carries.
// Every write and every price comparison normalises to this scale, so
// "12.5" and "12.50" are the same price on any driver.
const priceScale = 2

// Product is one catalogue item, mapped to a single row of the products
// table. A zero ID means the product has never been persisted; the store
// assigns the ID on create and it never changes afterwards.
type Product struct {
	ID          uint            `gorm:"primaryKey"            json:"id"`
	Name        string          `gorm:"size:255;not null;index" json:"name"`
	Description string          `gorm:"type:text"             json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool            `gorm:"not null"              json:"available"`
	Category    Category        `gorm:"size:32;not null;index" json:"category"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (Product) TableName() string { return "products" }

func (p *Product) String() string {
	return fmt.Sprintf("Product<%s id=%d>", p.Name, p.ID)
}

// Validate checks the fields a row must carry before create or update.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(p.Category))
	}
	return nil
}

// NormalizePrice converts any supported price representation into the
// canonical decimal form. String and numeric inputs that are numerically
// equal normalise to the same value.
func NormalizePrice(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.Round(priceScale), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse price %q: %w", v, err)
		}
		return d.Round(priceScale), nil
	case float64:
		return decimal.NewFromFloat(v).Round(priceScale), nil
	case float32:
		return decimal.NewFromFloat32(v).Round(priceScale), nil
	case int:
		return decimal.NewFromInt(int64(v)).Round(priceScale), nil
	case int64:
		return decimal.NewFromInt(v).Round(priceScale), nil
	case uint:
		return decimal.NewFromInt(int64(v)).Round(priceScale), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported price type %T", value)
	}
}
