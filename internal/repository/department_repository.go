package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentRepository provides read access to departments. Departments are
// created only by bootstrap seeding, so no mutation methods are exposed.
type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	ListWithCounts(ctx context.Context) ([]domain.Department, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `SELECT id, name, code FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&dept.ID,
		&dept.Name,
		&dept.Code,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}

// ListWithCounts returns all departments with the live count of employees
// referencing each one, computed per call.
func (r *departmentRepository) ListWithCounts(ctx context.Context) ([]domain.Department, error) {
	const query = `
        SELECT d.id, d.name, d.code, COUNT(e.id)
        FROM departments d
        LEFT JOIN employees e ON e.department_id = d.id
        GROUP BY d.id, d.name, d.code
        ORDER BY d.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Code, &dept.EmployeeCount); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}
