package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/incident-report-service/internal/domain"
	"github.com/spec-kit/incident-report-service/internal/events"
	"github.com/spec-kit/incident-report-service/internal/repository"
	apperrors "github.com/spec-kit/incident-report-service/pkg/util"
)

// ReportService coordinates the admin triage operations over the report store.
type ReportService struct {
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{reports: reports, dispatcher: dispatcher}
}

// CategoryCounts breaks totals down by the fixed category set.
type CategoryCounts struct {
	Flood    int
	Fire     int
	Accident int
	Other    int
}

// ReportStats aggregates dashboard counters.
type ReportStats struct {
	Total       int
	Pending     int
	InProgress  int
	Resolved    int
	Dismissed   int
	ByCategory  CategoryCounts
	RecentCount int
}

// ListReports returns every report with reporter display info, newest first.
func (s *ReportService) ListReports(ctx context.Context) ([]domain.ReportWithReporter, error) {
	return s.reports.ListWithReporters(ctx)
}

// UpdateStatus validates and applies a status change.
func (s *ReportService) UpdateStatus(ctx context.Context, id, status string) (*domain.Report, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperrors.NewValidationError("status is required", nil)
	}
	newStatus := domain.ReportStatus(status)
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": status})
	}

	report, err := s.reports.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReportStatusChanged,
			ReportID:  report.ID,
			Timestamp: time.Now(),
			Payload:   events.ReportStatusChangedPayload{NewStatus: report.Status},
		})
	}
	return report, nil
}

// DeleteReport removes a report. Store failures (including an unknown id
// at the driver level) surface as internal errors; no not-found
// distinction is made on this path.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return apperrors.NewInternalError(err)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReportDeleted,
			ReportID:  id,
			Timestamp: time.Now(),
			Payload:   events.ReportDeletedPayload{},
		})
	}
	return nil
}

// ComputeStats aggregates per-status and per-category counts plus the
// count of reports created within the trailing 24 hours of now.
func (s *ReportService) ComputeStats(ctx context.Context, now time.Time) (*ReportStats, error) {
	snapshots, err := s.reports.StatusSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ReportStats{Total: len(snapshots)}
	cutoff := now.Add(-24 * time.Hour)
	for _, snap := range snapshots {
		switch snap.Status {
		case domain.ReportStatusInProgress:
			stats.InProgress++
		case domain.ReportStatusResolved:
			stats.Resolved++
		case domain.ReportStatusDismissed:
			stats.Dismissed++
		default:
			// Unset statuses count as Pending, as the dashboard always did.
			stats.Pending++
		}

		switch snap.Category {
		case domain.CategoryFlood:
			stats.ByCategory.Flood++
		case domain.CategoryFire:
			stats.ByCategory.Fire++
		case domain.CategoryAccident:
			stats.ByCategory.Accident++
		case domain.CategoryOther:
			stats.ByCategory.Other++
		}

		if !snap.CreatedAt.Before(cutoff) {
			stats.RecentCount++
		}
	}
	return stats, nil
}
