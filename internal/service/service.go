// Package service implements the inbound operations of the rumor tracker on
// top of a keyword store and a report store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"rumorwatch/internal/geo"
	"rumorwatch/internal/metrics"
	"rumorwatch/internal/models"
	"rumorwatch/internal/risk"
	"rumorwatch/internal/stats"
	"rumorwatch/internal/validation"
)

// TopKeywordsLimit is the number of keywords included in risk statistics.
const TopKeywordsLimit = 10

// DefaultPublishTimeout bounds how long a submission waits on the publisher.
const DefaultPublishTimeout = 500 * time.Millisecond

// KeywordStore is the keyword dictionary the service scores against.
type KeywordStore interface {
	AddKeyword(ctx context.Context, in models.KeywordInput) (*models.Keyword, error)
	DeleteKeyword(ctx context.Context, id uuid.UUID) error
	UpdateKeywordWeight(ctx context.Context, id uuid.UUID, weight int) (*models.Keyword, error)
	ListKeywords(ctx context.Context) ([]models.Keyword, error)
	KeywordsByCategory(ctx context.Context, category string) ([]models.Keyword, error)
	KeywordSnapshot(ctx context.Context) ([]models.Keyword, error)
}

// ReportStore persists reports.
type ReportStore interface {
	CreateReport(ctx context.Context, r *models.Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error)
	SetReportStatus(ctx context.Context, id uuid.UUID, status models.Status, policy models.TransitionPolicy, now time.Time) (*models.Report, error)
	DeleteReport(ctx context.Context, id uuid.UUID) error
}

// BoxLister is implemented by report stores that can prefilter reports by
// bounding box. AreaQuery uses it when available.
type BoxLister interface {
	ReportsInBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]models.Report, error)
}

// Publisher receives every report after it is stored.
type Publisher interface {
	PublishReport(ctx context.Context, r *models.Report) error
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	Policy          models.TransitionPolicy
	Clock           clockwork.Clock
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	Publisher       Publisher
	PublishTimeout  time.Duration
	DefaultRadiusKm float64
}

// Service exposes the inbound operations.
type Service struct {
	keywords  KeywordStore
	reports   ReportStore
	policy    models.TransitionPolicy
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher Publisher
	pubWait   time.Duration
	radiusKm  float64
}

// New creates a Service.
func New(keywords KeywordStore, reports ReportStore, opts Options) *Service {
	s := &Service{
		keywords:  keywords,
		reports:   reports,
		policy:    opts.Policy,
		clock:     opts.Clock,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		publisher: opts.Publisher,
		pubWait:   opts.PublishTimeout,
		radiusKm:  opts.DefaultRadiusKm,
	}
	if s.policy == nil {
		s.policy = models.Unconstrained{}
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.pubWait <= 0 {
		s.pubWait = DefaultPublishTimeout
	}
	if s.radiusKm <= 0 {
		s.radiusKm = 10
	}
	return s
}

// DefaultRadiusKm is the radius used by area queries that omit one.
func (s *Service) DefaultRadiusKm() float64 {
	return s.radiusKm
}

// SubmitReport validates, scores and stores a new report. Scoring uses a
// keyword snapshot taken now; the result is never recomputed.
func (s *Service) SubmitReport(ctx context.Context, in models.ReportInput) (*models.Report, error) {
	r, err := validation.Report(in)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.keywords.KeywordSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	assessment := risk.Score(r.ScoredText(), snapshot)

	now := s.clock.Now()
	r.ID = uuid.New()
	r.RiskScore = assessment.Score
	r.RiskLevel = assessment.Level
	r.MatchedKeywords = assessment.Matches
	r.Status = models.StatusPending
	r.CreatedAt = now
	r.UpdatedAt = now

	if err := s.reports.CreateReport(ctx, &r); err != nil {
		return nil, err
	}

	s.metrics.ObserveReport(r.RiskLevel, r.RiskScore)
	s.logger.Info("report submitted",
		"report_id", r.ID,
		"risk_score", r.RiskScore,
		"risk_level", r.RiskLevel,
		"matches", len(r.MatchedKeywords),
	)
	s.publish(ctx, &r)
	return &r, nil
}

func (s *Service) publish(ctx context.Context, r *models.Report) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.pubWait)
	defer cancel()
	if err := s.publisher.PublishReport(ctx, r); err != nil {
		s.metrics.PublishFailed()
		s.logger.Warn("failed to publish report", "report_id", r.ID, "error", err)
	}
}

// GetReport returns one report.
func (s *Service) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return s.reports.GetReport(ctx, id)
}

// ListReports returns reports matching the filter, newest first.
func (s *Service) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.Report, error) {
	return s.reports.ListReports(ctx, filter)
}

// AreaQuery returns reports inside the bounding box around a point, newest
// first. See package geo for the approximation used.
func (s *Service) AreaQuery(ctx context.Context, lat, lon, radiusKm float64) ([]models.Report, error) {
	if err := validation.Coordinates(lat, lon); err != nil {
		return nil, err
	}
	if err := validation.Radius(radiusKm); err != nil {
		return nil, err
	}
	var candidates []models.Report
	var err error
	if bl, ok := s.reports.(BoxLister); ok {
		minLat, maxLat, minLon, maxLon := geo.NewBox(lat, lon, radiusKm).Bounds()
		candidates, err = bl.ReportsInBox(ctx, minLat, maxLat, minLon, maxLon)
	} else {
		candidates, err = s.reports.ListReports(ctx, models.ReportFilter{})
	}
	if err != nil {
		return nil, err
	}
	return geo.Within(lat, lon, radiusKm, candidates), nil
}

// SetStatus moves a report to a new status under the configured policy.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status models.Status) (*models.Report, error) {
	if !status.Valid() {
		return nil, models.Invalid("status", "is not a known status")
	}
	r, err := s.reports.SetReportStatus(ctx, id, status, s.policy, s.clock.Now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("report status changed", "report_id", id, "status", status)
	return r, nil
}

// DeleteReport removes a report.
func (s *Service) DeleteReport(ctx context.Context, id uuid.UUID) error {
	return s.reports.DeleteReport(ctx, id)
}

// AnalyzeReport re-scores a stored report against the current keywords
// without changing it.
func (s *Service) AnalyzeReport(ctx context.Context, id uuid.UUID) (*models.ReportAnalysis, error) {
	r, err := s.reports.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	current, err := s.ScoreText(ctx, r.ScoredText())
	if err != nil {
		return nil, err
	}
	return &models.ReportAnalysis{
		ReportID:     r.ID,
		Title:        r.Title,
		LocationName: r.LocationName,
		StoredScore:  r.RiskScore,
		StoredLevel:  r.RiskLevel,
		Current:      *current,
		Stale:        current.Score != r.RiskScore,
	}, nil
}

// ScoreText scores arbitrary text without creating a report.
func (s *Service) ScoreText(ctx context.Context, text string) (*models.RiskAssessment, error) {
	snapshot, err := s.keywords.KeywordSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	a := risk.Score(text, snapshot)
	return &a, nil
}

// AddKeyword adds one keyword to the dictionary.
func (s *Service) AddKeyword(ctx context.Context, in models.KeywordInput) (*models.Keyword, error) {
	k, err := s.keywords.AddKeyword(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("keyword added", "keyword", k.Text, "weight", k.Weight, "category", k.Category)
	return k, nil
}

// BatchAddKeywords adds each item independently. A failing item is
// reported in its result and does not stop the others. Only infrastructure
// failures abort the batch.
func (s *Service) BatchAddKeywords(ctx context.Context, items []models.KeywordInput) ([]models.BatchItemResult, error) {
	results := make([]models.BatchItemResult, 0, len(items))
	for _, in := range items {
		res := models.BatchItemResult{Input: in.Text}
		k, err := s.keywords.AddKeyword(ctx, in)
		switch {
		case err == nil:
			res.Keyword = k
			s.metrics.BatchItem("added")
		case errors.Is(err, models.ErrDuplicate), errors.Is(err, models.ErrValidation):
			res.Error = err.Error()
			s.metrics.BatchItem("rejected")
		default:
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// UpdateKeywordWeight changes a keyword's weight. Existing reports keep
// their stored scores.
func (s *Service) UpdateKeywordWeight(ctx context.Context, id uuid.UUID, weight int) (*models.Keyword, error) {
	return s.keywords.UpdateKeywordWeight(ctx, id, weight)
}

// DeleteKeyword removes a keyword.
func (s *Service) DeleteKeyword(ctx context.Context, id uuid.UUID) error {
	return s.keywords.DeleteKeyword(ctx, id)
}

// ListKeywords returns every keyword ordered by category, then text.
func (s *Service) ListKeywords(ctx context.Context) ([]models.Keyword, error) {
	return s.keywords.ListKeywords(ctx)
}

// KeywordsByCategory returns one category's keywords, heaviest first.
func (s *Service) KeywordsByCategory(ctx context.Context, category string) ([]models.Keyword, error) {
	return s.keywords.KeywordsByCategory(ctx, category)
}

// KeywordStats summarizes the keyword dictionary.
func (s *Service) KeywordStats(ctx context.Context) (*models.KeywordStats, error) {
	all, err := s.keywords.ListKeywords(ctx)
	if err != nil {
		return nil, err
	}
	st := stats.Keywords(all)
	return &st, nil
}

// RiskStats counts reports per risk level.
func (s *Service) RiskStats(ctx context.Context) (*models.RiskStats, error) {
	all, err := s.reports.ListReports(ctx, models.ReportFilter{})
	if err != nil {
		return nil, err
	}
	st := stats.Risk(all)
	return &st, nil
}

// TopKeywords returns the n heaviest keywords.
func (s *Service) TopKeywords(ctx context.Context, n int) ([]models.Keyword, error) {
	snapshot, err := s.keywords.KeywordSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.TopKeywords(snapshot, n), nil
}

// ReportCounts returns the number of reports per (risk level, status) pair.
// The metrics collector calls it on every scrape.
func (s *Service) ReportCounts(ctx context.Context) (map[models.RiskLevel]map[models.Status]int, error) {
	all, err := s.reports.ListReports(ctx, models.ReportFilter{})
	if err != nil {
		return nil, err
	}
	counts := make(map[models.RiskLevel]map[models.Status]int)
	for i := range all {
		byStatus, ok := counts[all[i].RiskLevel]
		if !ok {
			byStatus = make(map[models.Status]int)
			counts[all[i].RiskLevel] = byStatus
		}
		byStatus[all[i].Status]++
	}
	return counts, nil
}
