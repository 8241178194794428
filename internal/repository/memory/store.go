// Package memory is a process-local record store used for development and tests.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

// state holds every table behind one lock so cross-table reads stay consistent.
type state struct {
	mu  sync.RWMutex
	now func() time.Time

	users     map[int64]domain.User
	samples   map[int64]domain.Sample
	tests     map[int64]domain.LabTest
	results   map[int64]domain.TestResult
	items     map[int64]domain.InventoryItem
	ledger    []domain.InventoryTransaction
	userSeq   int64
	sampleSeq int64
	testSeq   int64
	resultSeq int64
	itemSeq   int64
	ledgerSeq int64
}

// Option customises the store.
type Option func(*state)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *state) {
		s.now = now
	}
}

// NewStore returns an empty in-memory store.
func NewStore(opts ...Option) *repository.Store {
	s := &state{
		now:     time.Now,
		users:   map[int64]domain.User{},
		samples: map[int64]domain.Sample{},
		tests:   map[int64]domain.LabTest{},
		results: map[int64]domain.TestResult{},
		items:   map[int64]domain.InventoryItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return &repository.Store{
		Users:     &userRepository{s},
		Samples:   &sampleRepository{s},
		Tests:     &labTestRepository{s},
		Results:   &testResultRepository{s},
		Inventory: &inventoryRepository{s},
	}
}

func (s *state) timestamp() time.Time {
	return s.now().UTC()
}

func sameKey(a, b string) bool {
	return strings.EqualFold(a, b)
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
