package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/events"
	"github.com/spec-kit/labtrack/internal/repository"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// ResultInput describes a measured test outcome.
type ResultInput struct {
	SampleID       int64
	TestID         int64
	Value          string
	Unit           *string
	ReferenceRange *string
}

// ResultUpdateInput carries optional corrections to a recorded result.
type ResultUpdateInput struct {
	Value          *string
	Unit           *string
	ReferenceRange *string
	Status         *domain.ResultStatus
}

// ResultService records test outcomes against samples.
type ResultService struct {
	results    repository.TestResultRepository
	samples    repository.SampleRepository
	tests      repository.LabTestRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ResultDependencies bundles repositories for the result service.
type ResultDependencies struct {
	ResultRepo repository.TestResultRepository
	SampleRepo repository.SampleRepository
	TestRepo   repository.LabTestRepository
	Dispatcher events.Dispatcher
}

// NewResultService constructs the service.
func NewResultService(deps ResultDependencies, logger *zap.Logger) *ResultService {
	return &ResultService{
		results:    deps.ResultRepo,
		samples:    deps.SampleRepo,
		tests:      deps.TestRepo,
		dispatcher: deps.Dispatcher,
		logger:     nopIfNil(logger),
	}
}

func (s *ResultService) List(ctx context.Context, filter repository.ResultFilter) ([]domain.TestResult, error) {
	results, err := s.results.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "result", 0)
	}
	return results, nil
}

// Record stores a completed result performed by actorID.
func (s *ResultService) Record(ctx context.Context, actorID int64, input ResultInput) (*domain.TestResult, error) {
	fields := apperrors.FieldErrors{}
	if _, err := s.samples.GetByID(ctx, input.SampleID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, mapRepoError(err, "sample", input.SampleID)
		}
		fields.Add("sample_id", "unknown sample")
	}
	if _, err := s.tests.GetByID(ctx, input.TestID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, mapRepoError(err, "test", input.TestID)
		}
		fields.Add("test_id", "unknown test")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	result := &domain.TestResult{
		SampleID:       input.SampleID,
		TestID:         input.TestID,
		Value:          strings.TrimSpace(input.Value),
		Unit:           input.Unit,
		ReferenceRange: input.ReferenceRange,
		PerformedBy:    actorID,
		Status:         domain.ResultStatusCompleted,
	}
	if err := s.results.Create(ctx, result); err != nil {
		return nil, mapRepoError(err, "result", 0)
	}

	emit(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventResultRecorded, result.ID, actorID, events.ResultRecordedPayload{
		SampleID: result.SampleID,
		TestID:   result.TestID,
		Value:    result.Value,
	}))
	return result, nil
}

// Update applies corrections to a recorded result.
func (s *ResultService) Update(ctx context.Context, id int64, input ResultUpdateInput) (*domain.TestResult, error) {
	result, err := s.results.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "result", id)
	}
	if input.Value != nil {
		result.Value = strings.TrimSpace(*input.Value)
	}
	if input.Unit != nil {
		result.Unit = input.Unit
	}
	if input.ReferenceRange != nil {
		result.ReferenceRange = input.ReferenceRange
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid fields: status", map[string]any{"status": "unknown result status"})
		}
		result.Status = *input.Status
	}
	if err := s.results.Update(ctx, result); err != nil {
		return nil, mapRepoError(err, "result", id)
	}
	return result, nil
}
