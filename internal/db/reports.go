package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rumorwatch/internal/models"
)

// reportColumns is the standard column list for report queries.
const reportColumns = `id, title, description, latitude, longitude, location_name,
	risk_score, risk_level, matched_keywords, source, status, created_at, updated_at`

func scanReport(row pgx.Row) (*models.Report, error) {
	var r models.Report
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.Latitude,
		&r.Longitude,
		&r.LocationName,
		&r.RiskScore,
		&r.RiskLevel,
		&r.MatchedKeywords,
		&r.Source,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	if r.MatchedKeywords == nil {
		r.MatchedKeywords = []models.MatchedKeyword{}
	}
	return &r, nil
}

func scanReports(rows pgx.Rows) ([]models.Report, error) {
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

// CreateReport inserts a fully scored report.
func (d *DB) CreateReport(ctx context.Context, r *models.Report) error {
	matches := r.MatchedKeywords
	if matches == nil {
		matches = []models.MatchedKeyword{}
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		r.ID,
		r.Title,
		r.Description,
		r.Latitude,
		r.Longitude,
		r.LocationName,
		r.RiskScore,
		r.RiskLevel,
		matches,
		r.Source,
		r.Status,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetReport returns one report.
func (d *DB) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return scanReport(d.Pool.QueryRow(ctx, `
		SELECT `+reportColumns+` FROM reports WHERE id = $1
	`, id))
}

// ListReports returns reports matching filter, newest first.
func (d *DB) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE ($1 = '' OR risk_level = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id
	`, string(filter.RiskLevel), string(filter.Status))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return scanReports(rows)
}

// ReportsInBox returns reports whose coordinates fall inside the given
// bounds, edges included.
func (d *DB) ReportsInBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]models.Report, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+reportColumns+` FROM reports
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		ORDER BY created_at DESC, id
	`, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, fmt.Errorf("list reports in box: %w", err)
	}
	return scanReports(rows)
}

// SetReportStatus checks the transition against policy and applies it in
// one transaction, holding a row lock between the check and the write.
func (d *DB) SetReportStatus(ctx context.Context, id uuid.UUID, status models.Status, policy models.TransitionPolicy, now time.Time) (*models.Report, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var current models.Status
	err = tx.QueryRow(ctx, `SELECT status FROM reports WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := policy.Allow(current, status); err != nil {
		return nil, err
	}

	r, err := scanReport(tx.QueryRow(ctx, `
		UPDATE reports SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+reportColumns,
		status, now, id,
	))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReport removes a report.
func (d *DB) DeleteReport(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrReportNotFound
	}
	return nil
}
