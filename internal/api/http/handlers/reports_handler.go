package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/incident-report-service/internal/api/dto"
	"github.com/spec-kit/incident-report-service/internal/domain"
	"github.com/spec-kit/incident-report-service/internal/service"
	apperrors "github.com/spec-kit/incident-report-service/pkg/util"
)

// ReportsHandler serves the admin triage API.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// List GET /api/reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	reports, err := h.service.ListReports(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, reportResponse(&reports[i].Report, reports[i].Reporter))
	}
	return c.JSON(items)
}

// UpdateStatus PUT /api/reports/:id.
func (h *ReportsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		if de := apperrors.ToDomainError(err); de.Code == "NOT_FOUND" {
			return apperrors.NewNotFound("report", nil)
		}
		return err
	}

	return c.JSON(dto.UpdateReportResponse{
		Message: "Report updated successfully",
		Report:  reportResponse(report, nil),
	})
}

// Delete DELETE /api/reports/:id. The admin token middleware runs first.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteReport(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Report deleted successfully"})
}

// Stats GET /api/stats.
func (h *ReportsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.ComputeStats(c.UserContext(), time.Now())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.StatsResponse{
		Total:      stats.Total,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Resolved:   stats.Resolved,
		Dismissed:  stats.Dismissed,
		ByCategory: dto.CategoryStats{
			Flood:    stats.ByCategory.Flood,
			Fire:     stats.ByCategory.Fire,
			Accident: stats.ByCategory.Accident,
			Other:    stats.ByCategory.Other,
		},
		RecentCount: stats.RecentCount,
	})
}

func reportResponse(report *domain.Report, reporter *domain.Reporter) dto.ReportResponse {
	resp := dto.ReportResponse{
		ID:          report.ID,
		Category:    string(report.Category),
		Description: report.Description,
		Location:    report.Location,
		Status:      string(report.Status),
		CreatedAt:   report.CreatedAt,
	}
	if reporter != nil {
		resp.Reporter = &dto.ReporterInfo{
			FacebookID: reporter.FacebookID,
			Name:       reporter.Name,
		}
	}
	return resp
}
