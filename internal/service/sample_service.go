package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/events"
	"github.com/spec-kit/labtrack/internal/repository"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// SampleCreateInput describes a newly received specimen.
type SampleCreateInput struct {
	SampleCode     string
	PatientName    string
	SampleType     string
	CollectionDate time.Time
	Priority       domain.SamplePriority
}

// SampleUpdateInput carries optional workflow changes.
type SampleUpdateInput struct {
	Status     *domain.SampleStatus
	AssignedTo *int64
	Priority   *domain.SamplePriority
}

// SampleService coordinates specimen registration and workflow.
type SampleService struct {
	samples    repository.SampleRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSampleService constructs the service.
func NewSampleService(samples repository.SampleRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SampleService {
	return &SampleService{samples: samples, users: users, dispatcher: dispatcher, logger: nopIfNil(logger)}
}

func (s *SampleService) List(ctx context.Context, filter repository.SampleFilter) ([]domain.Sample, error) {
	samples, err := s.samples.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "sample", 0)
	}
	return samples, nil
}

func (s *SampleService) Get(ctx context.Context, id int64) (*domain.Sample, error) {
	sample, err := s.samples.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "sample", id)
	}
	return sample, nil
}

// Create registers a pending, unassigned sample.
func (s *SampleService) Create(ctx context.Context, input SampleCreateInput) (*domain.Sample, error) {
	priority := input.Priority
	if priority == "" {
		priority = domain.SamplePriorityNormal
	}
	sample := &domain.Sample{
		SampleCode:     strings.TrimSpace(input.SampleCode),
		PatientName:    strings.TrimSpace(input.PatientName),
		SampleType:     strings.TrimSpace(input.SampleType),
		CollectionDate: input.CollectionDate,
		Priority:       priority,
		Status:         domain.SampleStatusPending,
	}
	if err := s.samples.Create(ctx, sample); err != nil {
		return nil, mapRepoError(err, "sample", 0)
	}
	return sample, nil
}

// Update applies status, assignment and priority changes. A status change
// emits sample_status_changed.
func (s *SampleService) Update(ctx context.Context, actorID, id int64, input SampleUpdateInput) (*domain.Sample, error) {
	sample, err := s.samples.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "sample", id)
	}

	if input.AssignedTo != nil {
		if _, err := s.users.GetByID(ctx, *input.AssignedTo); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidationError("assigned user does not exist", map[string]any{"assigned_to": "unknown user"})
			}
			return nil, mapRepoError(err, "user", *input.AssignedTo)
		}
		assignee := *input.AssignedTo
		sample.AssignedTo = &assignee
	}
	if input.Priority != nil {
		sample.Priority = *input.Priority
	}

	oldStatus := sample.Status
	if input.Status != nil {
		sample.Status = *input.Status
	}

	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, mapRepoError(err, "sample", id)
	}

	if sample.Status != oldStatus {
		emit(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventSampleStatusChanged, sample.ID, actorID, events.SampleStatusChangedPayload{
			SampleCode: sample.SampleCode,
			OldStatus:  oldStatus,
			NewStatus:  sample.Status,
		}))
	}
	return sample, nil
}
