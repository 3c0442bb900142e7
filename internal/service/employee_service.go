package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const (
	maxNameLength     = 100
	maxEmailLength    = 255
	maxPositionLength = 200

	maxPageSize = 100
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmployeeService coordinates employee workflows.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
}

// EmployeeDependencies bundles repositories for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
}

// EmployeeCreateInput describes the creation payload. IsActive is a pointer
// so an omitted value can default to true.
type EmployeeCreateInput struct {
	FirstName    string
	LastName     string
	Email        string
	DepartmentID int64
	Position     string
	Salary       decimal.Decimal
	IsActive     *bool
}

// EmployeeUpdateInput is a merge-patch: nil fields are left untouched.
type EmployeeUpdateInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	DepartmentID *int64
	Position     *string
	Salary       *decimal.Decimal
	IsActive     *bool
}

// EmployeeListInput captures listing parameters after transport parsing.
type EmployeeListInput struct {
	Page         int
	PageSize     int
	DepartmentID *int64
	IsActive     *bool
	Search       *string
}

// EmployeeListResult is one page of employees plus pagination metadata.
type EmployeeListResult struct {
	Items      []domain.Employee
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:   deps.EmployeeRepo,
		departments: deps.DepartmentRepo,
	}
}

// List returns a filtered, paginated employee page. Total and total_pages
// describe the full filtered set even when the requested page is past the end.
func (s *EmployeeService) List(ctx context.Context, input EmployeeListInput) (*EmployeeListResult, error) {
	details := map[string]any{}
	if input.Page < 1 {
		details["page"] = "must be greater than or equal to 1"
	}
	if input.PageSize < 1 || input.PageSize > maxPageSize {
		details["page_size"] = fmt.Sprintf("must be between 1 and %d", maxPageSize)
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid pagination parameters", details)
	}

	filter := repository.EmployeeFilter{
		DepartmentID: input.DepartmentID,
		IsActive:     input.IsActive,
		Search:       input.Search,
		Limit:        input.PageSize,
		Offset:       (input.Page - 1) * input.PageSize,
	}
	items, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(input.PageSize) - 1) / int64(input.PageSize))
	}

	if items == nil {
		items = []domain.Employee{}
	}
	return &EmployeeListResult{
		Items:      items,
		Total:      total,
		Page:       input.Page,
		PageSize:   input.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Create validates the payload, enforces email uniqueness and the department
// referential check (in that order), then persists the new employee.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeCreateInput) (*domain.Employee, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	existing, err := s.employees.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("Email %s already exists", input.Email),
			map[string]any{"email": input.Email})
	}

	if _, err := s.departments.GetByID(ctx, input.DepartmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(
				fmt.Sprintf("Department %d", input.DepartmentID),
				map[string]any{"department_id": input.DepartmentID})
		}
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	emp := &domain.Employee{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        input.Email,
		DepartmentID: input.DepartmentID,
		Position:     strings.TrimSpace(input.Position),
		Salary:       input.Salary,
		IsActive:     isActive,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Get fetches a single employee by id.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Employee %d", id), nil)
		}
		return nil, err
	}
	return emp, nil
}

// Update applies a merge-patch to an existing employee. Only provided fields
// change; updated_at is set on every successful update, empty patch included.
func (s *EmployeeService) Update(ctx context.Context, id int64, input EmployeeUpdateInput) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Employee %d", id), nil)
		}
		return nil, err
	}

	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	if input.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *input.DepartmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound(
					fmt.Sprintf("Department %d", *input.DepartmentID),
					map[string]any{"department_id": *input.DepartmentID})
			}
			return nil, err
		}
	}

	if input.Email != nil {
		// Re-submitting one's own current email is allowed.
		existing, err := s.employees.GetByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("Email %s already exists", *input.Email),
				map[string]any{"email": *input.Email})
		}
	}

	if input.FirstName != nil {
		emp.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		emp.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		emp.Email = *input.Email
	}
	if input.DepartmentID != nil {
		emp.DepartmentID = *input.DepartmentID
	}
	if input.Position != nil {
		emp.Position = strings.TrimSpace(*input.Position)
	}
	if input.Salary != nil {
		emp.Salary = *input.Salary
	}
	if input.IsActive != nil {
		emp.IsActive = *input.IsActive
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Delete removes an employee. Deleting an absent id fails, so the operation
// is deliberately not idempotent.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound(fmt.Sprintf("Employee %d", id), nil)
		}
		return err
	}
	return nil
}

func validateCreateInput(input EmployeeCreateInput) error {
	details := map[string]any{}
	validateName(details, "first_name", input.FirstName)
	validateName(details, "last_name", input.LastName)
	validateEmail(details, input.Email)
	if input.DepartmentID < 1 {
		details["department_id"] = "must be greater than or equal to 1"
	}
	validatePosition(details, input.Position)
	validateSalary(details, input.Salary)
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee payload", details)
	}
	return nil
}

func validateUpdateInput(input EmployeeUpdateInput) error {
	details := map[string]any{}
	if input.FirstName != nil {
		validateName(details, "first_name", *input.FirstName)
	}
	if input.LastName != nil {
		validateName(details, "last_name", *input.LastName)
	}
	if input.Email != nil {
		validateEmail(details, *input.Email)
	}
	if input.DepartmentID != nil && *input.DepartmentID < 1 {
		details["department_id"] = "must be greater than or equal to 1"
	}
	if input.Position != nil {
		validatePosition(details, *input.Position)
	}
	if input.Salary != nil {
		validateSalary(details, *input.Salary)
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee payload", details)
	}
	return nil
}

func validateName(details map[string]any, field, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		details[field] = "must not be empty"
	} else if len(trimmed) > maxNameLength {
		details[field] = fmt.Sprintf("must be at most %d characters", maxNameLength)
	}
}

func validateEmail(details map[string]any, value string) {
	if value == "" {
		details["email"] = "must not be empty"
		return
	}
	if len(value) > maxEmailLength {
		details["email"] = fmt.Sprintf("must be at most %d characters", maxEmailLength)
		return
	}
	if !emailPattern.MatchString(value) {
		details["email"] = "must be a valid email address"
	}
}

func validatePosition(details map[string]any, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		details["position"] = "must not be empty"
	} else if len(trimmed) > maxPositionLength {
		details["position"] = fmt.Sprintf("must be at most %d characters", maxPositionLength)
	}
}

func validateSalary(details map[string]any, value decimal.Decimal) {
	if value.Cmp(decimal.Zero) <= 0 {
		details["salary"] = "must be greater than 0"
		return
	}
	if !value.Equal(value.Round(2)) {
		details["salary"] = "must have at most 2 decimal places"
	}
}
