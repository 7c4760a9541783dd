package api

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"

	"rumorwatch/internal/service"
)

// RiskHandler exposes ad-hoc scoring and risk statistics.
type RiskHandler struct {
	svc *service.Service
}

// NewRiskHandler creates a new API risk handler.
func NewRiskHandler(svc *service.Service) *RiskHandler {
	return &RiskHandler{svc: svc}
}

// Calculate scores arbitrary text against the current keywords.
func (h *RiskHandler) Calculate(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(body.Text) == "" {
		return jsonError(c, fiber.StatusBadRequest, "text is required")
	}

	assessment, err := h.svc.ScoreText(c.Context(), body.Text)
	if err != nil {
		return serviceError(c, err, "failed to score text")
	}
	return jsonSuccess(c, assessment)
}

// Analyze re-scores a stored report without changing it.
func (h *RiskHandler) Analyze(c fiber.Ctx) error {
	id, err := parseID(c, "report")
	if err != nil {
		return serviceError(c, err, "")
	}

	analysis, err := h.svc.AnalyzeReport(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to analyze report")
	}
	return jsonSuccess(c, analysis)
}

// Stats returns per-level report counts and the heaviest keywords.
func (h *RiskHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.RiskStats(c.Context())
	if err != nil {
		return serviceError(c, err, "failed to compute risk statistics")
	}
	top, err := h.svc.TopKeywords(c.Context(), service.TopKeywordsLimit)
	if err != nil {
		return serviceError(c, err, "failed to compute risk statistics")
	}
	return jsonSuccess(c, fiber.Map{
		"risk_distribution": stats,
		"top_keywords":      top,
	})
}
