package domain

// DashboardStats summarises laboratory activity.
type DashboardStats struct {
	TotalSamples        int
	PendingSamples      int
	CompletedSamples    int
	LowStockItems       int
	TotalUsers          int
	TotalInventoryItems int
}

// SampleReport aggregates samples over a period.
type SampleReport struct {
	Period                string
	TotalSamples          int
	SamplesByStatus       map[SampleStatus]int
	SamplesByType         map[string]int
	AverageProcessingTime *float64
}
