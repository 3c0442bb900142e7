package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the domain model for an employee record.
type Employee struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	DepartmentID int64
	Position     string
	Salary       decimal.Decimal
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
