package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the closed set of catalogue categories. It is stored as text
// and rejected on scan/parse when the value is not one of the known members.
type Category string

const (
	CategoryUnknown    Category = "UNKNOWN"
	CategoryCloths     Category = "CLOTHS"
	CategoryFood       Category = "FOOD"
	CategoryHousewares Category = "HOUSEWARES"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryTools      Category = "TOOLS"
)

// Categories returns every known category, CategoryUnknown included.
func Categories() []Category {
	return []Category{
		CategoryUnknown,
		CategoryCloths,
		CategoryFood,
		CategoryHousewares,
		CategoryAutomotive,
		CategoryTools,
	}
}

// ParseCategory converts a string (case-insensitive) into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return CategoryUnknown, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// Valid reports whether c is a known category member.
func (c Category) Valid() bool {
	switch c {
	case CategoryUnknown, CategoryCloths, CategoryFood,
		CategoryHousewares, CategoryAutomotive, CategoryTools:
		return true
	}
	return false
}

func (c Category) String() string { return string(c) }

// Value implements driver.Valuer so gorm stores the category as text.
func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}
	return string(c), nil
}

// Scan implements sql.Scanner; unknown column values are an error rather
// than silently becoming an out-of-range member.
func (c *Category) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseCategory(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		parsed, err := ParseCategory(string(v))
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case nil:
		*c = CategoryUnknown
		return nil
	default:
		return fmt.Errorf("category: cannot scan %T", src)
	}
}

// UnmarshalJSON accepts only known members so malformed payloads fail at
// deserialization time instead of at the database.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
