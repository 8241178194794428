package dto

import (
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// CreateResultRequest payload for POST /results.
type CreateResultRequest struct {
	SampleID       int64   `json:"sample_id"`
	TestID         int64   `json:"test_id"`
	ResultValue    string  `json:"result_value"`
	ResultUnit     *string `json:"result_unit"`
	ReferenceRange *string `json:"reference_range"`
}

func (r CreateResultRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if r.SampleID <= 0 {
		fields.Add("sample_id", "required")
	}
	if r.TestID <= 0 {
		fields.Add("test_id", "required")
	}
	if blank(r.ResultValue) {
		fields.Add("result_value", "required")
	}
	return fields.Err()
}

// UpdateResultRequest payload for PUT /results/:id.
type UpdateResultRequest struct {
	ResultValue    *string              `json:"result_value"`
	ResultUnit     *string              `json:"result_unit"`
	ReferenceRange *string              `json:"reference_range"`
	Status         *domain.ResultStatus `json:"status"`
}

func (r UpdateResultRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if r.ResultValue != nil && blank(*r.ResultValue) {
		fields.Add("result_value", "must not be empty")
	}
	if r.Status != nil && !r.Status.Valid() {
		fields.Add("status", "must be one of pending, completed, verified, rejected")
	}
	return fields.Err()
}

// ResultResponse is the public view of a test result.
type ResultResponse struct {
	ID             int64               `json:"id"`
	SampleID       int64               `json:"sample_id"`
	TestID         int64               `json:"test_id"`
	ResultValue    string              `json:"result_value"`
	ResultUnit     *string             `json:"result_unit"`
	ReferenceRange *string             `json:"reference_range"`
	PerformedBy    int64               `json:"performed_by"`
	PerformedAt    time.Time           `json:"performed_at"`
	Status         domain.ResultStatus `json:"status"`
}
