package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"rumorwatch/internal/models"
	"rumorwatch/internal/service"
)

// KeywordHandler manages the risk keyword dictionary via JSON API.
type KeywordHandler struct {
	svc *service.Service
}

// NewKeywordHandler creates a new API keyword handler.
func NewKeywordHandler(svc *service.Service) *KeywordHandler {
	return &KeywordHandler{svc: svc}
}

// Create adds one keyword.
func (h *KeywordHandler) Create(c fiber.Ctx) error {
	var body models.KeywordInput
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	keyword, err := h.svc.AddKeyword(c.Context(), body)
	if err != nil {
		return serviceError(c, err, "failed to add keyword")
	}
	return jsonCreated(c, keyword)
}

// Batch adds several keywords, reporting success or failure per item.
func (h *KeywordHandler) Batch(c fiber.Ctx) error {
	var body struct {
		Keywords []models.KeywordInput `json:"keywords"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(body.Keywords) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "keywords must be a non-empty list")
	}

	results, err := h.svc.BatchAddKeywords(c.Context(), body.Keywords)
	if err != nil {
		return serviceError(c, err, "failed to add keywords")
	}

	added := 0
	for _, r := range results {
		if r.Keyword != nil {
			added++
		}
	}
	return jsonSuccess(c, fiber.Map{
		"added":   added,
		"failed":  len(results) - added,
		"results": results,
	})
}

// List returns all keywords ordered by category and text.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	keywords, err := h.svc.ListKeywords(c.Context())
	if err != nil {
		return serviceError(c, err, "failed to fetch keywords")
	}
	return jsonSuccess(c, keywords)
}

// ByCategory returns one category's keywords, heaviest first.
func (h *KeywordHandler) ByCategory(c fiber.Ctx) error {
	keywords, err := h.svc.KeywordsByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return serviceError(c, err, "failed to fetch keywords")
	}
	return jsonSuccess(c, keywords)
}

// Stats summarizes the keyword dictionary.
func (h *KeywordHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.KeywordStats(c.Context())
	if err != nil {
		return serviceError(c, err, "failed to compute keyword statistics")
	}
	return jsonSuccess(c, stats)
}

// UpdateWeight changes a keyword's risk weight.
func (h *KeywordHandler) UpdateWeight(c fiber.Ctx) error {
	id, err := parseID(c, "keyword")
	if err != nil {
		return serviceError(c, err, "")
	}

	var body struct {
		Weight *int `json:"risk_weight"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Weight == nil {
		return jsonError(c, fiber.StatusBadRequest, "risk_weight is required")
	}

	keyword, err := h.svc.UpdateKeywordWeight(c.Context(), id, *body.Weight)
	if err != nil {
		return serviceError(c, err, "failed to update keyword")
	}
	return jsonSuccess(c, keyword)
}

// Delete removes a keyword.
func (h *KeywordHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c, "keyword")
	if err != nil {
		return serviceError(c, err, "")
	}

	if err := h.svc.DeleteKeyword(c.Context(), id); err != nil {
		return serviceError(c, err, "failed to delete keyword")
	}
	return jsonSuccess(c, fiber.Map{"deleted": id})
}
