package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DefaultDepartments is the fixed set created on first bootstrap.
var DefaultDepartments = []struct {
	Name string
	Code string
}{
	{Name: "Engineering", Code: "ENG"},
	{Name: "Human Resources", Code: "HR"},
	{Name: "Finance", Code: "FIN"},
	{Name: "Marketing", Code: "MKT"},
	{Name: "Sales", Code: "SLS"},
	{Name: "Information Technology", Code: "IT"},
	{Name: "Operations", Code: "OPS"},
}

// Conn is the subset of pool operations the seeder needs.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SeedDepartments inserts the default departments when the table is empty.
// Running it against a populated table is a no-op, so repeated boots never
// duplicate rows.
func SeedDepartments(ctx context.Context, db Conn, logger *zap.Logger) error {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count); err != nil {
		return fmt.Errorf("count departments: %w", err)
	}
	if count > 0 {
		logger.Info("departments already seeded", zap.Int64("count", count))
		return nil
	}

	for _, dept := range DefaultDepartments {
		if _, err := db.Exec(ctx,
			`INSERT INTO departments (name, code) VALUES ($1, $2)`,
			dept.Name, dept.Code,
		); err != nil {
			return fmt.Errorf("seed department %s: %w", dept.Code, err)
		}
	}

	logger.Info("departments seeded", zap.Int("count", len(DefaultDepartments)))
	return nil
}
