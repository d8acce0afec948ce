// internal/domain/product/entity.go
package product

import (
	"database/sql"
	"time"
)

type Product struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	// Pricing: base price is mandatory, bounds are optional and constrain
	// customer-specific overrides when set.
	BasePrice float64         `json:"base_price" db:"base_price"`
	MinPrice  sql.NullFloat64 `json:"min_price,omitempty" db:"min_price"`
	MaxPrice  sql.NullFloat64 `json:"max_price,omitempty" db:"max_price"`

	Description sql.NullString `json:"description,omitempty" db:"description"`
	IsActive    bool           `json:"is_active" db:"is_active"`

	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt sql.NullTime `json:"deleted_at,omitempty" db:"deleted_at"`
}
