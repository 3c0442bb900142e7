package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Employees   *handlers.EmployeesHandler
	Departments *handlers.DepartmentsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Check)

	v1 := app.Group("/api/v1")
	v1.Get("/employees", cfg.Employees.List)
	v1.Post("/employees", cfg.Employees.Create)
	v1.Get("/employees/:id", cfg.Employees.Get)
	v1.Put("/employees/:id", cfg.Employees.Update)
	v1.Delete("/employees/:id", cfg.Employees.Delete)

	v1.Get("/departments", cfg.Departments.List)
}
