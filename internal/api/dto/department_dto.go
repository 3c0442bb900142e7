package dto

import (
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentResponse carries a department with its derived employee count.
type DepartmentResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	EmployeeCount int64  `json:"employee_count"`
}

// NewDepartmentResponse maps the domain model to its wire form.
func NewDepartmentResponse(dept domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:            dept.ID,
		Name:          dept.Name,
		Code:          dept.Code,
		EmployeeCount: dept.EmployeeCount,
	}
}

// HealthResponse reports service status.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
