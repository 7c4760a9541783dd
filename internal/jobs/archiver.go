package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"rumorwatch/internal/metrics"
	"rumorwatch/internal/models"
)

// ReportStatusSetter lists reports and moves them between statuses through
// the normal transition path.
type ReportStatusSetter interface {
	ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
	SetStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Report, error)
}

// Archiver periodically archives resolved reports that have not changed
// for a while.
type Archiver struct {
	reports  ReportStatusSetter
	interval time.Duration
	after    time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewArchiver creates an archiver that runs every interval and archives
// VERIFIED, TRUE and FALSE reports last updated more than after ago.
func NewArchiver(reports ReportStatusSetter, interval, after time.Duration, clock clockwork.Clock, logger *slog.Logger, m *metrics.Metrics) *Archiver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{
		reports:  reports,
		interval: interval,
		after:    after,
		clock:    clock,
		logger:   logger,
		metrics:  m,
	}
}

// Start runs the archive loop until ctx is cancelled.
func (a *Archiver) Start(ctx context.Context) {
	a.logger.Info("archiver started", "interval", a.interval, "after", a.after)

	a.archiveOnce(ctx)

	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("archiver stopped")
			return
		case <-ticker.Chan():
			a.archiveOnce(ctx)
		}
	}
}

// archiveOnce archives every eligible report and returns how many moved.
func (a *Archiver) archiveOnce(ctx context.Context) int {
	cutoff := a.clock.Now().Add(-a.after)
	archived := 0

	for _, status := range models.Statuses {
		if !status.IsResolved() {
			continue
		}
		reports, err := a.reports.ListReports(ctx, models.ReportFilter{Status: status})
		if err != nil {
			a.logger.Error("archiver: failed to list reports", "status", status, "error", err)
			return archived
		}

		for i := range reports {
			if ctx.Err() != nil {
				return archived
			}
			if reports[i].UpdatedAt.After(cutoff) {
				continue
			}
			_, err := a.reports.SetStatus(ctx, reports[i].ID, models.StatusArchived)
			switch {
			case err == nil:
				archived++
			case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrInvalidTransition):
				// deleted or changed since listing
				a.logger.Debug("archiver: skipped report", "report_id", reports[i].ID, "error", err)
			default:
				a.logger.Error("archiver: failed to archive report", "report_id", reports[i].ID, "error", err)
			}
		}
	}

	if archived > 0 {
		a.metrics.Archived(archived)
		a.logger.Info("archiver: archived reports", "count", archived)
	}
	return archived
}
