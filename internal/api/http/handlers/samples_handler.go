package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/api/dto"
	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
	"github.com/spec-kit/labtrack/internal/service"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

const (
	maxPageSize = 200
	maxPage     = 100000
)

// SamplesHandler manages specimen endpoints.
type SamplesHandler struct {
	samples *service.SampleService
}

// NewSamplesHandler constructs handler.
func NewSamplesHandler(sampleService *service.SampleService) *SamplesHandler {
	return &SamplesHandler{samples: sampleService}
}

// List handles GET /samples.
func (h *SamplesHandler) List(c *fiber.Ctx) error {
	filter, err := parseSampleQuery(c)
	if err != nil {
		return err
	}
	samples, err := h.samples.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]dto.SampleResponse, 0, len(samples))
	for i := range samples {
		out = append(out, sampleResponse(&samples[i]))
	}
	return c.JSON(out)
}

// Get handles GET /samples/:id.
func (h *SamplesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	sample, err := h.samples.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(sampleResponse(sample))
}

// Create handles POST /samples.
func (h *SamplesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSampleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	collected, _ := dto.ParseDate(req.CollectionDate)
	sample, err := h.samples.Create(c.UserContext(), service.SampleCreateInput{
		SampleCode:     req.SampleID,
		PatientName:    req.PatientName,
		SampleType:     req.SampleType,
		CollectionDate: collected,
		Priority:       req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(sampleResponse(sample))
}

// Update handles PUT /samples/:id.
func (h *SamplesHandler) Update(c *fiber.Ctx) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateSampleRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	sample, err := h.samples.Update(c.UserContext(), actorID, id, service.SampleUpdateInput{
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		Priority:   req.Priority,
	})
	if err != nil {
		return err
	}
	return c.JSON(sampleResponse(sample))
}

func parseSampleQuery(c *fiber.Ctx) (repository.SampleFilter, error) {
	filter := repository.SampleFilter{}
	fields := apperrors.FieldErrors{}

	if raw := c.Query("status"); raw != "" {
		status := domain.SampleStatus(raw)
		if !status.Valid() {
			fields.Add("status", "must be one of pending, in_progress, completed, cancelled")
		}
		filter.Status = &status
	}
	if raw := c.Query("assigned_to"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields.Add("assigned_to", "must be a user id")
		}
		filter.AssignedTo = &id
	}

	size, sizeOK := queryInt(c, "size", 0)
	page, pageOK := queryInt(c, "page", 1)
	if !sizeOK || (c.Query("size") != "" && (size < 1 || size > maxPageSize)) {
		fields.Add("size", "must be an integer between 1 and 200")
	}
	if !pageOK || page < 1 || page > maxPage {
		fields.Add("page", "must be an integer between 1 and 100000")
	}
	if len(fields) == 0 && size > 0 {
		filter.Limit = size
		filter.Offset = (page - 1) * size
	}
	return filter, fields.Err()
}

// queryInt reads an optional integer query parameter. ok is false when the
// parameter is present but not an integer.
func queryInt(c *fiber.Ctx, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, false
	}
	return n, true
}
