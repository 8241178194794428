package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/api/dto"
	"github.com/spec-kit/labtrack/internal/repository"
	"github.com/spec-kit/labtrack/internal/service"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// ResultsHandler manages test result endpoints.
type ResultsHandler struct {
	results *service.ResultService
}

// NewResultsHandler constructs handler.
func NewResultsHandler(resultService *service.ResultService) *ResultsHandler {
	return &ResultsHandler{results: resultService}
}

// List handles GET /results.
func (h *ResultsHandler) List(c *fiber.Ctx) error {
	filter := repository.ResultFilter{}
	fields := apperrors.FieldErrors{}
	for key, target := range map[string]**int64{"sample_id": &filter.SampleID, "test_id": &filter.TestID} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields.Add(key, "must be an id")
			continue
		}
		*target = &id
	}
	if err := fields.Err(); err != nil {
		return err
	}

	results, err := h.results.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]dto.ResultResponse, 0, len(results))
	for i := range results {
		out = append(out, resultResponse(&results[i]))
	}
	return c.JSON(out)
}

// Create handles POST /results. The caller is recorded as the performer.
func (h *ResultsHandler) Create(c *fiber.Ctx) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	var req dto.CreateResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	result, err := h.results.Record(c.UserContext(), actorID, service.ResultInput{
		SampleID:       req.SampleID,
		TestID:         req.TestID,
		Value:          req.ResultValue,
		Unit:           req.ResultUnit,
		ReferenceRange: req.ReferenceRange,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(resultResponse(result))
}

// Update handles PUT /results/:id.
func (h *ResultsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	result, err := h.results.Update(c.UserContext(), id, service.ResultUpdateInput{
		Value:          req.ResultValue,
		Unit:           req.ResultUnit,
		ReferenceRange: req.ReferenceRange,
		Status:         req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(resultResponse(result))
}
