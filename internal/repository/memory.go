package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/domain"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// MemoryStore is an in-memory substitute for the Postgres repositories. It
// mirrors their semantics, including pgx.ErrNoRows sentinels and the unique
// email constraint, so services can be exercised without a database.
type MemoryStore struct {
	mu               sync.Mutex
	employees        map[int64]domain.Employee
	departments      map[int64]domain.Department
	nextEmployeeID   int64
	nextDepartmentID int64
}

// NewMemoryStore initializes an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:        make(map[int64]domain.Employee),
		departments:      make(map[int64]domain.Department),
		nextEmployeeID:   1,
		nextDepartmentID: 1,
	}
}

// AddDepartment seeds a department and returns it.
func (s *MemoryStore) AddDepartment(name, code string) domain.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	dept := domain.Department{ID: s.nextDepartmentID, Name: name, Code: code}
	s.departments[dept.ID] = dept
	s.nextDepartmentID++
	return dept
}

// Employees returns the employee repository view of the store.
func (s *MemoryStore) Employees() EmployeeRepository {
	return &memoryEmployeeRepository{store: s}
}

// Departments returns the department repository view of the store.
func (s *MemoryStore) Departments() DepartmentRepository {
	return &memoryDepartmentRepository{store: s}
}

type memoryEmployeeRepository struct {
	store *MemoryStore
}

func (r *memoryEmployeeRepository) Create(_ context.Context, emp *domain.Employee) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.employees {
		if existing.Email == emp.Email {
			return apperrors.NewConflict(
				fmt.Sprintf("Email %s already exists", emp.Email),
				map[string]any{"email": emp.Email})
		}
	}

	emp.ID = s.nextEmployeeID
	s.nextEmployeeID++
	emp.CreatedAt = time.Now().UTC()
	emp.UpdatedAt = nil
	s.employees[emp.ID] = *emp
	return nil
}

func (r *memoryEmployeeRepository) Update(_ context.Context, emp *domain.Employee) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range s.employees {
		if id != emp.ID && existing.Email == emp.Email {
			return apperrors.NewConflict(
				fmt.Sprintf("Email %s already exists", emp.Email),
				map[string]any{"email": emp.Email})
		}
	}

	now := time.Now().UTC()
	emp.UpdatedAt = &now
	s.employees[emp.ID] = *emp
	return nil
}

func (r *memoryEmployeeRepository) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &emp, nil
}

func (r *memoryEmployeeRepository) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, emp := range s.employees {
		if emp.Email == email {
			found := emp
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryEmployeeRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.employees, id)
	return nil
}

func (r *memoryEmployeeRepository) List(_ context.Context, filter EmployeeFilter) ([]domain.Employee, int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]domain.Employee, 0, len(s.employees))
	for _, emp := range s.employees {
		if filter.DepartmentID != nil && emp.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.IsActive != nil && emp.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			if !strings.Contains(strings.ToLower(emp.FirstName), needle) &&
				!strings.Contains(strings.ToLower(emp.LastName), needle) &&
				!strings.Contains(strings.ToLower(emp.Email), needle) {
				continue
			}
		}
		matched = append(matched, emp)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []domain.Employee{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

type memoryDepartmentRepository struct {
	store *MemoryStore
}

func (r *memoryDepartmentRepository) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	dept, ok := s.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (r *memoryDepartmentRepository) ListWithCounts(_ context.Context) ([]domain.Department, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Department, 0, len(s.departments))
	for _, dept := range s.departments {
		dept.EmployeeCount = 0
		for _, emp := range s.employees {
			if emp.DepartmentID == dept.ID {
				dept.EmployeeCount++
			}
		}
		result = append(result, dept)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
