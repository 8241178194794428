package dto

// DashboardStatsResponse is returned by GET /dashboard/stats.
type DashboardStatsResponse struct {
	TotalSamples        int `json:"total_samples"`
	PendingSamples      int `json:"pending_samples"`
	CompletedSamples    int `json:"completed_samples"`
	LowStockItems       int `json:"low_stock_items"`
	TotalUsers          int `json:"total_users"`
	TotalInventoryItems int `json:"total_inventory_items"`
}

// SampleReportResponse is returned by GET /reports/samples.
type SampleReportResponse struct {
	Period                string         `json:"period"`
	TotalSamples          int            `json:"total_samples"`
	SamplesByStatus       map[string]int `json:"samples_by_status"`
	SamplesByType         map[string]int `json:"samples_by_type"`
	AverageProcessingTime *float64       `json:"average_processing_time"`
}
