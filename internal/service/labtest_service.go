package service

import (
	"context"
	"strings"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

// LabTestInput describes a test definition.
type LabTestInput struct {
	Name        string
	Type        domain.TestType
	Description *string
}

// LabTestUpdateInput carries optional definition changes.
type LabTestUpdateInput struct {
	Name        *string
	Type        *domain.TestType
	Description *string
}

// LabTestService manages the test catalogue.
type LabTestService struct {
	tests repository.LabTestRepository
}

// NewLabTestService constructs the service.
func NewLabTestService(tests repository.LabTestRepository) *LabTestService {
	return &LabTestService{tests: tests}
}

func (s *LabTestService) List(ctx context.Context) ([]domain.LabTest, error) {
	tests, err := s.tests.List(ctx)
	if err != nil {
		return nil, mapRepoError(err, "test", 0)
	}
	return tests, nil
}

func (s *LabTestService) Get(ctx context.Context, id int64) (*domain.LabTest, error) {
	test, err := s.tests.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "test", id)
	}
	return test, nil
}

func (s *LabTestService) Create(ctx context.Context, input LabTestInput) (*domain.LabTest, error) {
	test := &domain.LabTest{
		Name:        strings.TrimSpace(input.Name),
		Type:        input.Type,
		Description: input.Description,
	}
	if err := s.tests.Create(ctx, test); err != nil {
		return nil, mapRepoError(err, "test", 0)
	}
	return test, nil
}

func (s *LabTestService) Update(ctx context.Context, id int64, input LabTestUpdateInput) (*domain.LabTest, error) {
	test, err := s.tests.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "test", id)
	}
	if input.Name != nil {
		test.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		test.Type = *input.Type
	}
	if input.Description != nil {
		test.Description = input.Description
	}
	if err := s.tests.Update(ctx, test); err != nil {
		return nil, mapRepoError(err, "test", id)
	}
	return test, nil
}
