package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel is the discrete band derived from a risk score.
type RiskLevel string

// Risk levels, lowest to highest.
const (
	RiskNone     RiskLevel = "NONE"
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskLevels lists every level in ascending order.
var RiskLevels = []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh, RiskCritical}

// Valid reports whether l is a known risk level.
func (l RiskLevel) Valid() bool {
	for _, v := range RiskLevels {
		if l == v {
			return true
		}
	}
	return false
}

// Status is the review state of a report.
type Status string

// Report statuses. New reports start as PENDING.
const (
	StatusPending  Status = "PENDING"
	StatusVerified Status = "VERIFIED"
	StatusFalse    Status = "FALSE"
	StatusTrue     Status = "TRUE"
	StatusArchived Status = "ARCHIVED"
)

// Statuses lists every status.
var Statuses = []Status{StatusPending, StatusVerified, StatusFalse, StatusTrue, StatusArchived}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsResolved reports whether a reviewer has reached a verdict on the report.
func (s Status) IsResolved() bool {
	return s == StatusVerified || s == StatusTrue || s == StatusFalse
}

// Report defaults applied at submission.
const (
	DefaultLocationName = "unknown"
	DefaultSource       = "anonymous"
)

// Report is a user-submitted incident ("rumor") at a geographic point.
// RiskScore, RiskLevel and MatchedKeywords are computed once at creation and
// are not recomputed when keyword weights change later.
type Report struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	Latitude        float64          `json:"latitude"`
	Longitude       float64          `json:"longitude"`
	LocationName    string           `json:"location_name"`
	RiskScore       int              `json:"risk_score"`
	RiskLevel       RiskLevel        `json:"risk_level"`
	MatchedKeywords []MatchedKeyword `json:"matched_keywords"`
	Source          string           `json:"source"`
	Status          Status           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ScoredText returns the text a report is scored on.
func (r *Report) ScoredText() string {
	if r.Description == nil {
		return r.Title
	}
	return r.Title + " " + *r.Description
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() Report {
	c := *r
	if r.Description != nil {
		d := *r.Description
		c.Description = &d
	}
	c.MatchedKeywords = append([]MatchedKeyword{}, r.MatchedKeywords...)
	return c
}

// ReportInput carries the fields of a report submission.
type ReportInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationName string   `json:"location_name"`
	Source       string   `json:"source"`
}

// ReportFilter narrows a report listing. Zero fields match everything.
type ReportFilter struct {
	RiskLevel RiskLevel
	Status    Status
}

// Matches reports whether r passes the filter.
func (f ReportFilter) Matches(r *Report) bool {
	if f.RiskLevel != "" && r.RiskLevel != f.RiskLevel {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}
