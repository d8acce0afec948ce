// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Customer struct {
	ID       int64  `json:"id" db:"id"`
	FullName string `json:"full_name" db:"full_name"`

	// Contact details
	PhoneNumber    string         `json:"phone_number" db:"phone_number"`
	AltPhoneNumber sql.NullString `json:"alt_phone_number,omitempty" db:"alt_phone_number"`
	Email          sql.NullString `json:"email,omitempty" db:"email"`
	Address        sql.NullString `json:"address,omitempty" db:"address"`

	// Legacy single-product opening bottle count. Only the one-time migration
	// into customer_product_balances reads this; balance math never does.
	OpeningBottles int `json:"opening_bottles" db:"opening_bottles"`

	IsActive bool           `json:"is_active" db:"is_active"`
	Notes    sql.NullString `json:"notes,omitempty" db:"notes"`
	Tags     pq.StringArray `json:"tags,omitempty" db:"tags"`

	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt sql.NullTime `json:"deleted_at,omitempty" db:"deleted_at"`
}
