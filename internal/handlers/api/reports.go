package api

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"rumorwatch/internal/models"
	"rumorwatch/internal/service"
	"rumorwatch/internal/validation"
)

// ReportHandler handles rumor report operations via JSON API.
type ReportHandler struct {
	svc *service.Service
}

// NewReportHandler creates a new API report handler.
func NewReportHandler(svc *service.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Create scores and stores a new report.
func (h *ReportHandler) Create(c fiber.Ctx) error {
	var body models.ReportInput
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.svc.SubmitReport(c.Context(), body)
	if err != nil {
		return serviceError(c, err, "failed to submit report")
	}
	return jsonCreated(c, report)
}

// List returns reports, optionally filtered by risk_level and status.
func (h *ReportHandler) List(c fiber.Ctx) error {
	var filter models.ReportFilter
	if v := c.Query("risk_level"); v != "" {
		level, err := validation.RiskLevel(v)
		if err != nil {
			return serviceError(c, err, "")
		}
		filter.RiskLevel = level
	}
	if v := c.Query("status"); v != "" {
		status, err := validation.Status(v)
		if err != nil {
			return serviceError(c, err, "")
		}
		filter.Status = status
	}

	reports, err := h.svc.ListReports(c.Context(), filter)
	if err != nil {
		return serviceError(c, err, "failed to fetch reports")
	}
	return jsonSuccess(c, reports)
}

// Area returns reports inside the bounding box around latitude/longitude.
func (h *ReportHandler) Area(c fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "latitude and longitude are required")
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "latitude and longitude are required")
	}

	radius := h.svc.DefaultRadiusKm()
	if v := c.Query("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "radius must be a number")
		}
	}

	reports, err := h.svc.AreaQuery(c.Context(), lat, lon, radius)
	if err != nil {
		return serviceError(c, err, "failed to fetch reports")
	}
	return jsonSuccess(c, reports)
}

// Get returns a single report by ID.
func (h *ReportHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c, "report")
	if err != nil {
		return serviceError(c, err, "")
	}

	report, err := h.svc.GetReport(c.Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to fetch report")
	}
	return jsonSuccess(c, report)
}

// UpdateStatus changes a report's review status.
func (h *ReportHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseID(c, "report")
	if err != nil {
		return serviceError(c, err, "")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	status, err := validation.Status(body.Status)
	if err != nil {
		return serviceError(c, err, "")
	}

	report, err := h.svc.SetStatus(c.Context(), id, status)
	if err != nil {
		return serviceError(c, err, "failed to update report status")
	}
	return jsonSuccess(c, report)
}

// Delete removes a report.
func (h *ReportHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c, "report")
	if err != nil {
		return serviceError(c, err, "")
	}

	if err := h.svc.DeleteReport(c.Context(), id); err != nil {
		return serviceError(c, err, "failed to delete report")
	}
	return jsonSuccess(c, fiber.Map{"deleted": id})
}
