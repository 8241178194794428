package dto

import (
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// CreateSampleRequest payload for POST /samples.
type CreateSampleRequest struct {
	SampleID       string                `json:"sample_id"`
	PatientName    string                `json:"patient_name"`
	SampleType     string                `json:"sample_type"`
	CollectionDate string                `json:"collection_date"`
	Priority       domain.SamplePriority `json:"priority"`
}

func (r CreateSampleRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if blank(r.SampleID) {
		fields.Add("sample_id", "required")
	}
	if blank(r.PatientName) {
		fields.Add("patient_name", "required")
	}
	if blank(r.SampleType) {
		fields.Add("sample_type", "required")
	}
	if _, err := ParseDate(r.CollectionDate); err != nil {
		fields.Add("collection_date", "must be a date in YYYY-MM-DD format")
	}
	if r.Priority != "" && !r.Priority.Valid() {
		fields.Add("priority", "must be one of low, normal, high, urgent")
	}
	return fields.Err()
}

// UpdateSampleRequest payload for PUT /samples/:id.
type UpdateSampleRequest struct {
	Status     *domain.SampleStatus   `json:"status"`
	AssignedTo *int64                 `json:"assigned_to"`
	Priority   *domain.SamplePriority `json:"priority"`
}

func (r UpdateSampleRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if r.Status != nil && !r.Status.Valid() {
		fields.Add("status", "must be one of pending, in_progress, completed, cancelled")
	}
	if r.Priority != nil && !r.Priority.Valid() {
		fields.Add("priority", "must be one of low, normal, high, urgent")
	}
	if r.AssignedTo != nil && *r.AssignedTo <= 0 {
		fields.Add("assigned_to", "must be a user id")
	}
	return fields.Err()
}

// SampleResponse is the public view of a sample.
type SampleResponse struct {
	ID             int64                 `json:"id"`
	SampleID       string                `json:"sample_id"`
	PatientName    string                `json:"patient_name"`
	SampleType     string                `json:"sample_type"`
	CollectionDate string                `json:"collection_date"`
	Priority       domain.SamplePriority `json:"priority"`
	Status         domain.SampleStatus   `json:"status"`
	AssignedTo     *int64                `json:"assigned_to"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}
