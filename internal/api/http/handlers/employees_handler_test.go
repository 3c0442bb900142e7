package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/employee-service/internal/api/http"
	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, *repository.MemoryStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:   store.Employees(),
		DepartmentRepo: store.Departments(),
	})
	departmentService := service.NewDepartmentService(store.Departments())

	cfg := &config.Config{
		App:  config.AppConfig{RequestTimeoutSeconds: 5, Version: "1.0.0"},
		CORS: config.CORSConfig{Origins: []string{"*"}},
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), cfg)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Version),
		Employees:   handlers.NewEmployeesHandler(employeeService),
		Departments: handlers.NewDepartmentsHandler(departmentService),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	payload := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &payload)
	}
	return resp, payload
}

func createEmployeeBody(email string) string {
	return fmt.Sprintf(`{
        "first_name": "Alice",
        "last_name": "Smith",
        "email": %q,
        "department_id": 1,
        "position": "Engineer",
        "salary": 50000.00
    }`, email)
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, payload := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "1.0.0", payload["version"])
	assert.Contains(t, payload, "timestamp")
}

func TestEmployeeLifecycleStatusCodes(t *testing.T) {
	app, store := newTestApp(t)
	store.AddDepartment("Engineering", "ENG")

	resp, created := doJSON(t, app, http.MethodPost, "/api/v1/employees", createEmployeeBody("alice@company.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := int64(created["id"].(float64))
	assert.Equal(t, "alice@company.com", created["email"])
	assert.Equal(t, "50000.00", created["salary"])
	assert.Equal(t, true, created["is_active"])
	assert.Nil(t, created["updated_at"])

	resp, fetched := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", id), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created["first_name"], fetched["first_name"])
	assert.Equal(t, created["salary"], fetched["salary"])
	assert.Equal(t, created["created_at"], fetched["created_at"])

	resp, updated := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", id), `{"position": "Senior Engineer"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Senior Engineer", updated["position"])
	assert.NotNil(t, updated["updated_at"])

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", id), nil)
	delResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/employees/%d", id), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "second delete fails")
}

func TestCreateValidationFailure(t *testing.T) {
	app, store := newTestApp(t)
	store.AddDepartment("Engineering", "ENG")

	body := `{"first_name": "", "last_name": "Smith", "email": "bad", "department_id": 1, "position": "Engineer", "salary": -5}`
	resp, payload := doJSON(t, app, http.MethodPost, "/api/v1/employees", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errBody := payload["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
	details := errBody["details"].(map[string]any)
	assert.Contains(t, details, "first_name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "salary")
}

func TestCreateDuplicateEmail(t *testing.T) {
	app, store := newTestApp(t)
	store.AddDepartment("Engineering", "ENG")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/employees", createEmployeeBody("alice@company.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/v1/employees", createEmployeeBody("alice@company.com"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, "CONFLICT", errBody["code"])
	assert.Contains(t, errBody["message"], "alice@company.com")
}

func TestCreateUnknownDepartment(t *testing.T) {
	app, _ := newTestApp(t)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/v1/employees", createEmployeeBody("alice@company.com"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errBody := payload["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
	assert.Contains(t, errBody["message"], "Department 1")
}

func TestGetUnknownEmployee(t *testing.T) {
	app, _ := newTestApp(t)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/v1/employees/42", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	errBody := payload["error"].(map[string]any)
	assert.Contains(t, errBody["message"], "Employee 42")
}

func TestNonIntegerIDRejected(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/employees/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestEmptyPatchSetsUpdatedAt(t *testing.T) {
	app, store := newTestApp(t)
	store.AddDepartment("Engineering", "ENG")

	resp, created := doJSON(t, app, http.MethodPost, "/api/v1/employees", createEmployeeBody("alice@company.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Nil(t, created["updated_at"])
	id := int64(created["id"].(float64))

	resp, updated := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/employees/%d", id), `{}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, updated["updated_at"])
	assert.Equal(t, created["email"], updated["email"])
	assert.Equal(t, created["salary"], updated["salary"])
}

func TestListQueryValidation(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{
		"/api/v1/employees?page=0",
		"/api/v1/employees?page=abc",
		"/api/v1/employees?page_size=0",
		"/api/v1/employees?page_size=101",
		"/api/v1/employees?is_active=maybe",
		"/api/v1/employees?department_id=abc",
	} {
		resp, _ := doJSON(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, path)
	}
}

func TestListResponseShape(t *testing.T) {
	app, store := newTestApp(t)
	store.AddDepartment("Engineering", "ENG")

	for i := 0; i < 5; i++ {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/employees",
			createEmployeeBody(fmt.Sprintf("user%d@company.com", i)))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, payload := doJSON(t, app, http.MethodGet, "/api/v1/employees?page=1&page_size=2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), payload["total"])
	assert.Equal(t, float64(1), payload["page"])
	assert.Equal(t, float64(2), payload["page_size"])
	assert.Equal(t, float64(3), payload["total_pages"])
	assert.Len(t, payload["items"], 2)

	resp, payload = doJSON(t, app, http.MethodGet, "/api/v1/employees?page=100&page_size=2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), payload["total"])
	assert.Len(t, payload["items"], 0)
}

func TestListSearchFilter(t *testing.T) {
	app, store := newTestApp(t)
	store.AddDepartment("Engineering", "ENG")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/employees", createEmployeeBody("alice@company.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/v1/employees", `{
        "first_name": "Bob", "last_name": "Jones", "email": "bob@company.com",
        "department_id": 1, "position": "Analyst", "salary": 40000.00
    }`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/v1/employees?search=ALICE", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["total"])
}

func TestDepartmentsListing(t *testing.T) {
	app, store := newTestApp(t)
	store.AddDepartment("Engineering", "ENG")
	store.AddDepartment("Finance", "FIN")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/employees", createEmployeeBody("alice@company.com"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/departments", nil)
	listResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)

	var departments []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&departments))
	require.Len(t, departments, 2)
	assert.Equal(t, "Engineering", departments[0]["name"])
	assert.Equal(t, "ENG", departments[0]["code"])
	assert.Equal(t, float64(1), departments[0]["employee_count"])
	assert.Equal(t, float64(0), departments[1]["employee_count"])
}
