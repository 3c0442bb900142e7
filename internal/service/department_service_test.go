package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/repository"
)

func TestDepartmentListIncludesZeroCounts(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddDepartment("Engineering", "ENG")
	store.AddDepartment("Finance", "FIN")
	svc := NewDepartmentService(store.Departments())

	departments, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, "ENG", departments[0].Code)
	assert.Equal(t, int64(0), departments[0].EmployeeCount)
	assert.Equal(t, int64(0), departments[1].EmployeeCount)
}

func TestDepartmentCountTracksEmployeeLifecycle(t *testing.T) {
	store := repository.NewMemoryStore()
	dept := store.AddDepartment("Engineering", "ENG")
	deptSvc := NewDepartmentService(store.Departments())
	empSvc := NewEmployeeService(EmployeeDependencies{
		EmployeeRepo:   store.Employees(),
		DepartmentRepo: store.Departments(),
	})

	countFor := func(id int64) int64 {
		departments, err := deptSvc.List(context.Background())
		require.NoError(t, err)
		for _, d := range departments {
			if d.ID == id {
				return d.EmployeeCount
			}
		}
		t.Fatalf("department %d missing from listing", id)
		return 0
	}

	before := countFor(dept.ID)

	created, err := empSvc.Create(context.Background(), validCreateInput(dept.ID))
	require.NoError(t, err)
	assert.Equal(t, before+1, countFor(dept.ID), "count rises by exactly 1 on create")

	require.NoError(t, empSvc.Delete(context.Background(), created.ID))
	assert.Equal(t, before, countFor(dept.ID), "count returns to prior value on delete")
}
