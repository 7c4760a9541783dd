package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"rumorwatch/internal/models"
)

// ReportStore is an in-memory report store.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*models.Report
}

// NewReportStore creates an empty report store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[uuid.UUID]*models.Report)}
}

// CreateReport stores a copy of a fully built report.
func (s *ReportStore) CreateReport(_ context.Context, r *models.Report) error {
	c := r.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[c.ID] = &c
	return nil
}

// GetReport returns a copy of a report.
func (s *ReportStore) GetReport(_ context.Context, id uuid.UUID) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, models.ErrReportNotFound
	}
	c := r.Clone()
	return &c, nil
}

// ListReports returns the reports passing the filter, newest first.
func (s *ReportStore) ListReports(_ context.Context, filter models.ReportFilter) ([]models.Report, error) {
	s.mu.RLock()
	out := make([]models.Report, 0, len(s.reports))
	for _, r := range s.reports {
		if filter.Matches(r) {
			out = append(out, r.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// SetReportStatus checks the transition against policy and applies it in
// one critical section.
func (s *ReportStore) SetReportStatus(_ context.Context, id uuid.UUID, status models.Status, policy models.TransitionPolicy, now time.Time) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reports[id]
	if !ok {
		return nil, models.ErrReportNotFound
	}
	if err := policy.Allow(r.Status, status); err != nil {
		return nil, err
	}
	r.Status = status
	r.UpdatedAt = now
	c := r.Clone()
	return &c, nil
}

// DeleteReport removes a report.
func (s *ReportStore) DeleteReport(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return models.ErrReportNotFound
	}
	delete(s.reports, id)
	return nil
}
