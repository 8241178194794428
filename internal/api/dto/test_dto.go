package dto

import (
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

const testTypeChoices = "must be one of hematology, biochemistry, microbiology, immunology, molecular"

// CreateTestRequest payload for POST /tests.
type CreateTestRequest struct {
	TestName    string          `json:"test_name"`
	TestType    domain.TestType `json:"test_type"`
	Description *string         `json:"description"`
}

func (r CreateTestRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if blank(r.TestName) {
		fields.Add("test_name", "required")
	}
	if !r.TestType.Valid() {
		fields.Add("test_type", testTypeChoices)
	}
	return fields.Err()
}

// UpdateTestRequest payload for PUT /tests/:id.
type UpdateTestRequest struct {
	TestName    *string          `json:"test_name"`
	TestType    *domain.TestType `json:"test_type"`
	Description *string          `json:"description"`
}

func (r UpdateTestRequest) Validate() error {
	fields := apperrors.FieldErrors{}
	if r.TestName != nil && blank(*r.TestName) {
		fields.Add("test_name", "must not be empty")
	}
	if r.TestType != nil && !r.TestType.Valid() {
		fields.Add("test_type", testTypeChoices)
	}
	return fields.Err()
}

// TestResponse is the public view of a test definition.
type TestResponse struct {
	ID          int64           `json:"id"`
	TestName    string          `json:"test_name"`
	TestType    domain.TestType `json:"test_type"`
	Description *string         `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
