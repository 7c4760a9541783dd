package models

import "github.com/google/uuid"

// RiskAssessment is the result of scoring a text against a keyword snapshot.
type RiskAssessment struct {
	Score       int              `json:"score"`
	Level       RiskLevel        `json:"level"`
	Matches     []MatchedKeyword `json:"found_keywords"`
	Calculation string           `json:"calculation"`
}

// ReportAnalysis compares a stored report's risk with a fresh assessment
// against the current keywords.
type ReportAnalysis struct {
	ReportID     uuid.UUID      `json:"report_id"`
	Title        string         `json:"title"`
	LocationName string         `json:"location"`
	StoredScore  int            `json:"stored_score"`
	StoredLevel  RiskLevel      `json:"stored_level"`
	Current      RiskAssessment `json:"current"`
	Stale        bool           `json:"stale"`
}

// CategoryCount is the number of keywords in a category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// KeywordStats summarizes the keyword dictionary.
type KeywordStats struct {
	TotalKeywords   int             `json:"total_keywords"`
	TotalCategories int             `json:"total_categories"`
	AverageWeight   int             `json:"average_weight"`
	MaxWeight       int             `json:"max_weight"`
	ByCategory      []CategoryCount `json:"by_category"`
}

// RiskStats counts reports per risk level.
type RiskStats struct {
	TotalReports int               `json:"total_reports"`
	ByLevel      map[RiskLevel]int `json:"by_level"`
}
