package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/incident-report-service/internal/domain"
)

// ReportRepository encapsulates incident report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	ListWithReporters(ctx context.Context) ([]domain.ReportWithReporter, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error)
	Delete(ctx context.Context, id string) error
	ListRecentNonPending(ctx context.Context, limit int) ([]domain.Report, error)
	StatusSnapshots(ctx context.Context) ([]domain.StatusSnapshot, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (user_id, category, description, location, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		report.UserID,
		report.Category,
		report.Description,
		report.Location,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) ListWithReporters(ctx context.Context) ([]domain.ReportWithReporter, error) {
	const query = `
        SELECT r.id, r.user_id, r.category, r.description, r.location, r.status, r.created_at,
               u.fb_id, u.name
        FROM reports r
        LEFT JOIN users u ON u.id = r.user_id
        ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReportWithReporter
	for rows.Next() {
		var item domain.ReportWithReporter
		var fbID *string
		var name *string
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Category,
			&item.Description,
			&item.Location,
			&item.Status,
			&item.CreatedAt,
			&fbID,
			&name,
		); err != nil {
			return nil, err
		}
		if fbID != nil {
			item.Reporter = &domain.Reporter{FacebookID: *fbID, Name: name}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) (*domain.Report, error) {
	const query = `
        UPDATE reports SET status=$1
        WHERE id=$2
        RETURNING id, user_id, category, description, location, status, created_at`

	var report domain.Report
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&report.ID,
		&report.UserID,
		&report.Category,
		&report.Description,
		&report.Location,
		&report.Status,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

// Delete removes a report. Deleting a nonexistent id is not an error,
// matching the admin API contract.
func (r *reportRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM reports WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *reportRepository) ListRecentNonPending(ctx context.Context, limit int) ([]domain.Report, error) {
	const query = `
        SELECT id, user_id, category, description, location, status, created_at
        FROM reports
        WHERE status <> $1
        ORDER BY created_at DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, domain.ReportStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

func (r *reportRepository) StatusSnapshots(ctx context.Context) ([]domain.StatusSnapshot, error) {
	const query = `SELECT status, category, created_at FROM reports`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusSnapshot
	for rows.Next() {
		var snap domain.StatusSnapshot
		if err := rows.Scan(&snap.Status, &snap.Category, &snap.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, snap)
	}
	return result, rows.Err()
}

func scanReports(rows pgx.Rows) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Category,
			&report.Description,
			&report.Location,
			&report.Status,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
