package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
)

// EmployeeCreateRequest is the creation payload. IsActive is a pointer so the
// handler can tell an omitted value (defaults true) from an explicit false.
type EmployeeCreateRequest struct {
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	DepartmentID int64           `json:"department_id"`
	Position     string          `json:"position"`
	Salary       decimal.Decimal `json:"salary"`
	IsActive     *bool           `json:"is_active"`
}

// EmployeeUpdateRequest is a merge-patch body: absent fields stay nil and the
// corresponding columns keep their prior values.
type EmployeeUpdateRequest struct {
	FirstName    *string          `json:"first_name"`
	LastName     *string          `json:"last_name"`
	Email        *string          `json:"email"`
	DepartmentID *int64           `json:"department_id"`
	Position     *string          `json:"position"`
	Salary       *decimal.Decimal `json:"salary"`
	IsActive     *bool            `json:"is_active"`
}

// EmployeeResponse is the wire representation of an employee.
type EmployeeResponse struct {
	ID           int64           `json:"id"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Email        string          `json:"email"`
	DepartmentID int64           `json:"department_id"`
	Position     string          `json:"position"`
	Salary       decimal.Decimal `json:"salary"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at"`
}

// EmployeeListResponse is one page of employees plus pagination metadata.
type EmployeeListResponse struct {
	Items      []EmployeeResponse `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// NewEmployeeResponse maps the domain model to its wire form.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           emp.ID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
		Position:     emp.Position,
		Salary:       emp.Salary,
		IsActive:     emp.IsActive,
		CreatedAt:    emp.CreatedAt,
		UpdatedAt:    emp.UpdatedAt,
	}
}
