package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/labtrack/internal/api/dto"
	"github.com/spec-kit/labtrack/internal/service"
	apperrors "github.com/spec-kit/labtrack/pkg/util/errorutil"
)

// ReportsHandler serves dashboard counters and sample reports.
type ReportsHandler struct {
	dashboard *service.DashboardService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(dashboardService *service.DashboardService) *ReportsHandler {
	return &ReportsHandler{dashboard: dashboardService}
}

// Stats handles GET /dashboard/stats.
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.DashboardStatsResponse{
		TotalSamples:        stats.TotalSamples,
		PendingSamples:      stats.PendingSamples,
		CompletedSamples:    stats.CompletedSamples,
		LowStockItems:       stats.LowStockItems,
		TotalUsers:          stats.TotalUsers,
		TotalInventoryItems: stats.TotalInventoryItems,
	})
}

// Samples handles GET /reports/samples.
func (h *ReportsHandler) Samples(c *fiber.Ctx) error {
	fields := apperrors.FieldErrors{}
	start := parseOptionalDate(c.Query("start_date"), "start_date", fields)
	end := parseOptionalDate(c.Query("end_date"), "end_date", fields)
	if start != nil && end != nil && end.Before(*start) {
		fields.Add("end_date", "must not be before start_date")
	}
	if err := fields.Err(); err != nil {
		return err
	}

	report, err := h.dashboard.SampleReport(c.UserContext(), start, end)
	if err != nil {
		return err
	}
	byStatus := make(map[string]int, len(report.SamplesByStatus))
	for status, count := range report.SamplesByStatus {
		byStatus[string(status)] = count
	}
	return c.JSON(dto.SampleReportResponse{
		Period:                report.Period,
		TotalSamples:          report.TotalSamples,
		SamplesByStatus:       byStatus,
		SamplesByType:         report.SamplesByType,
		AverageProcessingTime: report.AverageProcessingTime,
	})
}

func parseOptionalDate(raw, field string, fields apperrors.FieldErrors) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := dto.ParseDate(raw)
	if err != nil {
		fields.Add(field, "must be a date in YYYY-MM-DD format")
		return nil
	}
	return &t
}
