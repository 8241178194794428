package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/api/dto"
	"github.com/spec-kit/labtrack/internal/service"
)

// TestsHandler manages the test catalogue.
type TestsHandler struct {
	tests *service.LabTestService
}

// NewTestsHandler constructs handler.
func NewTestsHandler(testService *service.LabTestService) *TestsHandler {
	return &TestsHandler{tests: testService}
}

// List handles GET /tests.
func (h *TestsHandler) List(c *fiber.Ctx) error {
	tests, err := h.tests.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.TestResponse, 0, len(tests))
	for i := range tests {
		out = append(out, testResponse(&tests[i]))
	}
	return c.JSON(out)
}

// Get handles GET /tests/:id.
func (h *TestsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	test, err := h.tests.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(testResponse(test))
}

// Create handles POST /tests.
func (h *TestsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	test, err := h.tests.Create(c.UserContext(), service.LabTestInput{
		Name:        req.TestName,
		Type:        req.TestType,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(testResponse(test))
}

// Update handles PUT /tests/:id.
func (h *TestsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	test, err := h.tests.Update(c.UserContext(), id, service.LabTestUpdateInput{
		Name:        req.TestName,
		Type:        req.TestType,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(testResponse(test))
}
