package service

import (
	"context"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// DepartmentService exposes department reads. Departments are seeded at
// bootstrap and never mutated through the API.
type DepartmentService struct {
	departments repository.DepartmentRepository
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departmentRepo repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departments: departmentRepo}
}

// List returns every department with its live employee count.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.departments.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []domain.Department{}
	}
	return departments, nil
}
