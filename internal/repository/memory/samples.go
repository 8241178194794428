package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

type sampleRepository struct {
	s *state
}

func cloneSample(sample domain.Sample) domain.Sample {
	sample.AssignedTo = cloneInt64(sample.AssignedTo)
	return sample
}

func (r *sampleRepository) Create(_ context.Context, sample *domain.Sample) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.samples {
		if sameKey(existing.SampleCode, sample.SampleCode) {
			return repository.ErrConflict
		}
	}
	r.s.sampleSeq++
	now := r.s.timestamp()
	sample.ID = r.s.sampleSeq
	sample.CreatedAt = now
	sample.UpdatedAt = now
	r.s.samples[sample.ID] = cloneSample(*sample)
	return nil
}

func (r *sampleRepository) Update(_ context.Context, sample *domain.Sample) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.samples[sample.ID]
	if !ok {
		return repository.ErrNotFound
	}
	sample.CreatedAt = current.CreatedAt
	sample.UpdatedAt = r.s.timestamp()
	r.s.samples[sample.ID] = cloneSample(*sample)
	return nil
}

func (r *sampleRepository) GetByID(_ context.Context, id int64) (*domain.Sample, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sample, ok := r.s.samples[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	sample = cloneSample(sample)
	return &sample, nil
}

func (r *sampleRepository) List(_ context.Context, filter repository.SampleFilter) ([]domain.Sample, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	samples := make([]domain.Sample, 0, len(r.s.samples))
	for _, sample := range r.s.samples {
		if !matchSample(sample, filter) {
			continue
		}
		samples = append(samples, cloneSample(sample))
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].ID < samples[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(samples) {
			return []domain.Sample{}, nil
		}
		samples = samples[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(samples) {
		samples = samples[:filter.Limit]
	}
	return samples, nil
}

func matchSample(sample domain.Sample, filter repository.SampleFilter) bool {
	if filter.Status != nil && sample.Status != *filter.Status {
		return false
	}
	if filter.AssignedTo != nil && (sample.AssignedTo == nil || *sample.AssignedTo != *filter.AssignedTo) {
		return false
	}
	if filter.CollectedFrom != nil && sample.CollectionDate.Before(*filter.CollectedFrom) {
		return false
	}
	if filter.CollectedTo != nil && sample.CollectionDate.After(*filter.CollectedTo) {
		return false
	}
	return true
}
