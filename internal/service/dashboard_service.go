package service

import (
	"context"
	"fmt"
	"time"

	"github.com/spec-kit/labtrack/internal/domain"
	"github.com/spec-kit/labtrack/internal/repository"
)

const reportDateLayout = "2006-01-02"

// DashboardService aggregates activity across the record store.
type DashboardService struct {
	store *repository.Store
}

// NewDashboardService constructs the service.
func NewDashboardService(store *repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Stats returns headline counters.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	samples, err := s.store.Samples.List(ctx, repository.SampleFilter{})
	if err != nil {
		return nil, mapRepoError(err, "sample", 0)
	}
	items, err := s.store.Inventory.List(ctx, repository.InventoryFilter{})
	if err != nil {
		return nil, mapRepoError(err, "inventory item", 0)
	}
	users, err := s.store.Users.Count(ctx)
	if err != nil {
		return nil, mapRepoError(err, "user", 0)
	}

	stats := &domain.DashboardStats{
		TotalSamples:        len(samples),
		TotalUsers:          users,
		TotalInventoryItems: len(items),
	}
	for _, sample := range samples {
		switch sample.Status {
		case domain.SampleStatusPending:
			stats.PendingSamples++
		case domain.SampleStatusCompleted:
			stats.CompletedSamples++
		}
	}
	for _, item := range items {
		if item.LowStock() {
			stats.LowStockItems++
		}
	}
	return stats, nil
}

// SampleReport aggregates samples collected within [start, end]. Both bounds
// must be set for the range to apply; otherwise every sample is counted.
func (s *DashboardService) SampleReport(ctx context.Context, start, end *time.Time) (*domain.SampleReport, error) {
	filter := repository.SampleFilter{}
	period := "All time"
	if start != nil && end != nil {
		filter.CollectedFrom = start
		filter.CollectedTo = end
		period = fmt.Sprintf("%s to %s", start.Format(reportDateLayout), end.Format(reportDateLayout))
	}

	samples, err := s.store.Samples.List(ctx, filter)
	if err != nil {
		return nil, mapRepoError(err, "sample", 0)
	}

	report := &domain.SampleReport{
		Period:          period,
		TotalSamples:    len(samples),
		SamplesByStatus: make(map[domain.SampleStatus]int, len(domain.SampleStatuses)),
		SamplesByType:   map[string]int{},
	}
	for _, status := range domain.SampleStatuses {
		report.SamplesByStatus[status] = 0
	}

	var completedHours float64
	var completed int
	for _, sample := range samples {
		report.SamplesByStatus[sample.Status]++
		report.SamplesByType[sample.SampleType]++
		if sample.Status == domain.SampleStatusCompleted {
			completedHours += sample.UpdatedAt.Sub(sample.CreatedAt).Hours()
			completed++
		}
	}
	if completed > 0 {
		avg := completedHours / float64(completed)
		report.AverageProcessingTime = &avg
	}
	return report, nil
}
