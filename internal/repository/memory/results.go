package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

type testResultRepository struct {
	s *state
}

func cloneResult(result domain.TestResult) domain.TestResult {
	result.Unit = cloneString(result.Unit)
	result.ReferenceRange = cloneString(result.ReferenceRange)
	return result
}

func (r *testResultRepository) Create(_ context.Context, result *domain.TestResult) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.resultSeq++
	result.ID = r.s.resultSeq
	result.PerformedAt = r.s.timestamp()
	r.s.results[result.ID] = cloneResult(*result)
	return nil
}

func (r *testResultRepository) Update(_ context.Context, result *domain.TestResult) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.results[result.ID]
	if !ok {
		return repository.ErrNotFound
	}
	// Identity columns are immutable once recorded.
	result.SampleID = current.SampleID
	result.TestID = current.TestID
	result.PerformedBy = current.PerformedBy
	result.PerformedAt = current.PerformedAt
	r.s.results[result.ID] = cloneResult(*result)
	return nil
}

func (r *testResultRepository) GetByID(_ context.Context, id int64) (*domain.TestResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result, ok := r.s.results[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	result = cloneResult(result)
	return &result, nil
}

func (r *testResultRepository) List(_ context.Context, filter repository.ResultFilter) ([]domain.TestResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	results := make([]domain.TestResult, 0, len(r.s.results))
	for _, result := range r.s.results {
		if filter.SampleID != nil && result.SampleID != *filter.SampleID {
			continue
		}
		if filter.TestID != nil && result.TestID != *filter.TestID {
			continue
		}
		results = append(results, cloneResult(result))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}
