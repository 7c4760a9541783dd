package validation

import (
	"math"
	"strings"
	"unicode/utf8"

	"rumorwatch/internal/models"
)

// Input limits.
const (
	MaxKeywordLength  = 100
	MaxCategoryLength = 50
	MaxTitleLength    = 200
	MaxWeight         = 1000
)

// NormalizeKeyword trims and lowercases a keyword so matching and uniqueness
// are case-insensitive.
func NormalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Keyword validates and normalizes a keyword input into a keyword without
// ID or creation time. An omitted weight becomes 1 and an empty category
// becomes the default category. An explicit weight is checked like an update.
func Keyword(in models.KeywordInput) (models.Keyword, error) {
	out := models.Keyword{
		Text:     NormalizeKeyword(in.Text),
		Weight:   1,
		Category: strings.TrimSpace(in.Category),
	}

	if out.Text == "" {
		return out, models.Invalid("keyword", "is required")
	}
	if utf8.RuneCountInString(out.Text) > MaxKeywordLength {
		return out, models.Invalid("keyword", "must be at most 100 characters")
	}
	if in.Weight != nil {
		out.Weight = *in.Weight
	}
	if err := Weight(out.Weight); err != nil {
		return out, err
	}
	if out.Category == "" {
		out.Category = models.DefaultKeywordCategory
	}
	if utf8.RuneCountInString(out.Category) > MaxCategoryLength {
		return out, models.Invalid("category", "must be at most 50 characters")
	}
	return out, nil
}

// Weight checks that a risk weight is a positive integer within range.
func Weight(weight int) error {
	if weight < 1 || weight > MaxWeight {
		return models.Invalid("risk_weight", "must be between 1 and 1000")
	}
	return nil
}

// Coordinates checks that a point is a finite WGS-84 latitude/longitude.
func Coordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return models.Invalid("latitude", "must be between -90 and 90")
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return models.Invalid("longitude", "must be between -180 and 180")
	}
	return nil
}

// Radius checks an area query radius in kilometres.
func Radius(radiusKm float64) error {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return models.Invalid("radius", "must be a non-negative number")
	}
	return nil
}

// Report validates a submission and fills in defaults. It returns the
// report fields ready to be scored; risk and status are left unset.
func Report(in models.ReportInput) (models.Report, error) {
	var r models.Report

	r.Title = strings.TrimSpace(in.Title)
	if r.Title == "" {
		return r, models.Invalid("title", "is required")
	}
	if utf8.RuneCountInString(r.Title) > MaxTitleLength {
		return r, models.Invalid("title", "must be at most 200 characters")
	}

	if in.Latitude == nil || in.Longitude == nil {
		return r, models.Invalid("latitude/longitude", "are required")
	}
	if err := Coordinates(*in.Latitude, *in.Longitude); err != nil {
		return r, err
	}
	r.Latitude = *in.Latitude
	r.Longitude = *in.Longitude

	if d := strings.TrimSpace(in.Description); d != "" {
		r.Description = &d
	}

	r.LocationName = strings.TrimSpace(in.LocationName)
	if r.LocationName == "" {
		r.LocationName = models.DefaultLocationName
	}
	r.Source = strings.TrimSpace(in.Source)
	if r.Source == "" {
		r.Source = models.DefaultSource
	}
	return r, nil
}

// Status parses a report status, accepting any letter case.
func Status(s string) (models.Status, error) {
	st := models.Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", models.Invalid("status", "must be one of PENDING, VERIFIED, FALSE, TRUE, ARCHIVED")
	}
	return st, nil
}

// RiskLevel parses a risk level, accepting any letter case.
func RiskLevel(s string) (models.RiskLevel, error) {
	l := models.RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", models.Invalid("risk_level", "must be one of NONE, LOW, MEDIUM, HIGH, CRITICAL")
	}
	return l, nil
}
