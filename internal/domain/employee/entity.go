// internal/domain/employee/entity.go
package employee

import (
	"database/sql"
	"time"
)

type EmployeeType string

const (
	TypeWorker  EmployeeType = "worker"
	TypeManager EmployeeType = "manager"
	TypeRider   EmployeeType = "rider"
)

// ValidType reports whether t is a known employee type.
func ValidType(t EmployeeType) bool {
	switch t {
	case TypeWorker, TypeManager, TypeRider:
		return true
	}
	return false
}

type Employee struct {
	ID           int64        `json:"id" db:"id"`
	FullName     string       `json:"full_name" db:"full_name"`
	PhoneNumber  string       `json:"phone_number" db:"phone_number"`
	EmployeeType EmployeeType `json:"employee_type" db:"employee_type"`

	MonthlySalary float64 `json:"monthly_salary" db:"monthly_salary"`

	IsActive bool           `json:"is_active" db:"is_active"`
	Notes    sql.NullString `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt sql.NullTime `json:"deleted_at,omitempty" db:"deleted_at"`
}
