package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeesHandler exposes the employee CRUD endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List handles GET /api/v1/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	input, err := parseListQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.UserContext(), input)
	if err != nil {
		return err
	}

	items := make([]dto.EmployeeResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, dto.NewEmployeeResponse(&result.Items[i]))
	}
	return c.JSON(dto.EmployeeListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// Create handles POST /api/v1/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.service.Create(c.UserContext(), service.EmployeeCreateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Salary:       req.Salary,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEmployeeResponse(emp))
}

// Get handles GET /api/v1/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	emp, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(emp))
}

// Update handles PUT /api/v1/employees/:id with merge-patch semantics.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	emp, err := h.service.Update(c.UserContext(), id, service.EmployeeUpdateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Salary:       req.Salary,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(emp))
}

// Delete handles DELETE /api/v1/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid employee id",
			map[string]any{"id": "must be an integer"})
	}
	return id, nil
}

func parseListQuery(c *fiber.Ctx) (service.EmployeeListInput, error) {
	input := service.EmployeeListInput{Page: 1, PageSize: 20}
	details := map[string]any{}

	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			details["page"] = "must be an integer"
		} else {
			input.Page = parsed
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			details["page_size"] = "must be an integer"
		} else {
			input.PageSize = parsed
		}
	}
	if raw := c.Query("department_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			details["department_id"] = "must be an integer"
		} else {
			input.DepartmentID = &parsed
		}
	}
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			details["is_active"] = "must be a boolean"
		} else {
			input.IsActive = &parsed
		}
	}
	if raw := c.Query("search"); raw != "" {
		input.Search = &raw
	}

	if len(details) > 0 {
		return input, apperrors.NewValidationError("invalid query parameters", details)
	}
	return input, nil
}
