package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

type labTestRepository struct {
	s *state
}

func cloneLabTest(test domain.LabTest) domain.LabTest {
	test.Description = cloneString(test.Description)
	return test
}

func (r *labTestRepository) Create(_ context.Context, test *domain.LabTest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.testSeq++
	test.ID = r.s.testSeq
	test.CreatedAt = r.s.timestamp()
	r.s.tests[test.ID] = cloneLabTest(*test)
	return nil
}

func (r *labTestRepository) Update(_ context.Context, test *domain.LabTest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.tests[test.ID]
	if !ok {
		return repository.ErrNotFound
	}
	test.CreatedAt = current.CreatedAt
	r.s.tests[test.ID] = cloneLabTest(*test)
	return nil
}

func (r *labTestRepository) GetByID(_ context.Context, id int64) (*domain.LabTest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	test, ok := r.s.tests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	test = cloneLabTest(test)
	return &test, nil
}

func (r *labTestRepository) List(_ context.Context) ([]domain.LabTest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tests := make([]domain.LabTest, 0, len(r.s.tests))
	for _, test := range r.s.tests {
		tests = append(tests, cloneLabTest(test))
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}
