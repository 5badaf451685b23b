package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/incident-report-service/internal/domain"
	apperrors "github.com/spec-kit/incident-report-service/pkg/util"
)

type stubReportRepo struct {
	snapshots    []domain.StatusSnapshot
	snapshotsErr error
	updated      *domain.Report
	updateErr    error
	deleteErr    error
	deletedIDs   []string
	lastStatus   domain.ReportStatus
}

func (s *stubReportRepo) Create(ctx context.Context, report *domain.Report) error { return nil }

func (s *stubReportRepo) ListWithReporters(ctx context.Context) ([]domain.ReportWithReporter, error) {
	return nil, nil
}

func (s *stubReportRepo) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	s.lastStatus = status
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return s.updated, nil
}

func (s *stubReportRepo) Delete(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIDs = append(s.deletedIDs, id)
	return nil
}

func (s *stubReportRepo) ListRecentNonPending(ctx context.Context, limit int) ([]domain.Report, error) {
	return nil, nil
}

func (s *stubReportRepo) StatusSnapshots(ctx context.Context) ([]domain.StatusSnapshot, error) {
	return s.snapshots, s.snapshotsErr
}

func TestUpdateStatusValidation(t *testing.T) {
	svc := NewReportService(&stubReportRepo{}, nil)
	ctx := context.Background()

	for _, status := range []string{"", "   "} {
		_, err := svc.UpdateStatus(ctx, "id", status)
		require.Error(t, err)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	}

	for _, status := range []string{"Done", "pending", "RESOLVED", "In progress"} {
		_, err := svc.UpdateStatus(ctx, "id", status)
		require.Error(t, err, "status %q must be rejected", status)
		assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
	}
}

func TestUpdateStatusAcceptsExactLiterals(t *testing.T) {
	ctx := context.Background()
	for _, status := range []string{"Pending", "In Progress", "Resolved", "Dismissed"} {
		repo := &stubReportRepo{updated: &domain.Report{ID: "r1", Status: domain.ReportStatus(status)}}
		svc := NewReportService(repo, nil)

		report, err := svc.UpdateStatus(ctx, "r1", status)
		require.NoError(t, err, "status %q must be accepted", status)
		assert.Equal(t, domain.ReportStatus(status), repo.lastStatus)
		assert.Equal(t, domain.ReportStatus(status), report.Status)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	svc := NewReportService(&stubReportRepo{updateErr: pgx.ErrNoRows}, nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", "Resolved")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDeleteReportWrapsStoreErrors(t *testing.T) {
	svc := NewReportService(&stubReportRepo{deleteErr: errors.New("boom")}, nil)

	err := svc.DeleteReport(context.Background(), "r1")
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.ToDomainError(err).HTTPStatus)
}

func TestDeleteReportSucceeds(t *testing.T) {
	repo := &stubReportRepo{}
	svc := NewReportService(repo, nil)

	require.NoError(t, svc.DeleteReport(context.Background(), "r1"))
	assert.Equal(t, []string{"r1"}, repo.deletedIDs)
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-2 * time.Hour)
	old := now.Add(-48 * time.Hour)

	repo := &stubReportRepo{snapshots: []domain.StatusSnapshot{
		{Status: domain.ReportStatusPending, Category: domain.CategoryFlood, CreatedAt: recent},
		{Status: domain.ReportStatusPending, Category: domain.CategoryFire, CreatedAt: old},
		{Status: domain.ReportStatusInProgress, Category: domain.CategoryFire, CreatedAt: recent},
		{Status: domain.ReportStatusResolved, Category: domain.CategoryAccident, CreatedAt: old},
		{Status: domain.ReportStatusResolved, Category: domain.CategoryOther, CreatedAt: old},
		{Status: domain.ReportStatusDismissed, Category: domain.CategoryOther, CreatedAt: recent},
		// Legacy row with an unset status counts as Pending.
		{Status: "", Category: domain.CategoryFlood, CreatedAt: old},
	}}
	svc := NewReportService(repo, nil)

	stats, err := svc.ComputeStats(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 3, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 2, stats.Resolved)
	assert.Equal(t, 1, stats.Dismissed)
	assert.Equal(t, stats.Total, stats.Pending+stats.InProgress+stats.Resolved+stats.Dismissed,
		"status counts must sum to total")

	assert.Equal(t, 2, stats.ByCategory.Flood)
	assert.Equal(t, 2, stats.ByCategory.Fire)
	assert.Equal(t, 1, stats.ByCategory.Accident)
	assert.Equal(t, 2, stats.ByCategory.Other)

	assert.Equal(t, 3, stats.RecentCount)
}

func TestComputeStatsPropagatesStoreError(t *testing.T) {
	svc := NewReportService(&stubReportRepo{snapshotsErr: errors.New("boom")}, nil)

	_, err := svc.ComputeStats(context.Background(), time.Now())
	assert.Error(t, err)
}
