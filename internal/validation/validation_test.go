package validation

import (
	"errors"
	"math"
	"strings"
	"testing"

	"rumorwatch/internal/models"
)

func ptr(f float64) *float64 { return &f }

func TestNormalizeKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fire", "fire"},
		{"  EXPLOSION  ", "explosion"},
		{"Shots Fired", "shots fired"},
		{"", ""},
		{"\tvírus\n", "vírus"},
	}

	for _, tt := range tests {
		if got := NormalizeKeyword(tt.in); got != tt.want {
			t.Errorf("NormalizeKeyword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func weight(n int) *int {
	return &n
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		name    string
		in      models.KeywordInput
		want    models.Keyword
		wantErr bool
	}{
		{
			name: "normalizes text and keeps weight",
			in:   models.KeywordInput{Text: " Fire ", Weight: weight(10), Category: "disaster"},
			want: models.Keyword{Text: "fire", Weight: 10, Category: "disaster"},
		},
		{
			name: "defaults omitted weight and category",
			in:   models.KeywordInput{Text: "rumor"},
			want: models.Keyword{Text: "rumor", Weight: 1, Category: models.DefaultKeywordCategory},
		},
		{name: "empty text", in: models.KeywordInput{Text: "   "}, wantErr: true},
		{name: "explicit zero weight", in: models.KeywordInput{Text: "a", Weight: weight(0)}, wantErr: true},
		{name: "negative weight", in: models.KeywordInput{Text: "a", Weight: weight(-3)}, wantErr: true},
		{name: "weight too large", in: models.KeywordInput{Text: "a", Weight: weight(MaxWeight + 1)}, wantErr: true},
		{name: "text too long", in: models.KeywordInput{Text: strings.Repeat("a", 101)}, wantErr: true},
		{name: "category too long", in: models.KeywordInput{Text: "a", Category: strings.Repeat("c", 51)}, wantErr: true},
		{
			name: "regex metacharacters are plain text",
			in:   models.KeywordInput{Text: "c++ (beta)", Weight: weight(2)},
			want: models.Keyword{Text: "c++ (beta)", Weight: 2, Category: models.DefaultKeywordCategory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Keyword(tt.in)
			if tt.wantErr {
				if !errors.Is(err, models.ErrValidation) {
					t.Fatalf("Keyword() error = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Keyword() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Keyword() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		valid    bool
	}{
		{"origin", 0, 0, true},
		{"poles and antimeridian", 90, -180, true},
		{"south pole", -90, 180, true},
		{"latitude too high", 90.0001, 0, false},
		{"latitude too low", -91, 0, false},
		{"longitude too high", 0, 180.5, false},
		{"longitude too low", 0, -181, false},
		{"NaN latitude", math.NaN(), 0, false},
		{"NaN longitude", 0, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Coordinates(tt.lat, tt.lon)
			if (err == nil) != tt.valid {
				t.Errorf("Coordinates(%v, %v) error = %v, valid want %v", tt.lat, tt.lon, err, tt.valid)
			}
		})
	}
}

func TestRadius(t *testing.T) {
	for _, r := range []float64{0, 0.5, 10, 20000} {
		if err := Radius(r); err != nil {
			t.Errorf("Radius(%v) unexpected error: %v", r, err)
		}
	}
	for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := Radius(r); !errors.Is(err, models.ErrValidation) {
			t.Errorf("Radius(%v) error = %v, want ErrValidation", r, err)
		}
	}
}

func TestReport(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		r, err := Report(models.ReportInput{Title: " Fire downtown ", Latitude: ptr(-23.5), Longitude: ptr(-46.6)})
		if err != nil {
			t.Fatalf("Report() unexpected error: %v", err)
		}
		if r.Title != "Fire downtown" {
			t.Errorf("Title = %q", r.Title)
		}
		if r.Description != nil {
			t.Errorf("Description = %q, want nil", *r.Description)
		}
		if r.LocationName != models.DefaultLocationName {
			t.Errorf("LocationName = %q, want %q", r.LocationName, models.DefaultLocationName)
		}
		if r.Source != models.DefaultSource {
			t.Errorf("Source = %q, want %q", r.Source, models.DefaultSource)
		}
	})

	t.Run("keeps provided fields", func(t *testing.T) {
		r, err := Report(models.ReportInput{
			Title:        "Flood",
			Description:  "water rising",
			Latitude:     ptr(1),
			Longitude:    ptr(2),
			LocationName: "Riverside",
			Source:       "radio",
		})
		if err != nil {
			t.Fatalf("Report() unexpected error: %v", err)
		}
		if r.Description == nil || *r.Description != "water rising" {
			t.Errorf("Description = %v", r.Description)
		}
		if r.LocationName != "Riverside" || r.Source != "radio" {
			t.Errorf("LocationName/Source = %q/%q", r.LocationName, r.Source)
		}
	})

	failures := []struct {
		name string
		in   models.ReportInput
	}{
		{"missing title", models.ReportInput{Latitude: ptr(0), Longitude: ptr(0)}},
		{"blank title", models.ReportInput{Title: "  ", Latitude: ptr(0), Longitude: ptr(0)}},
		{"missing latitude", models.ReportInput{Title: "x", Longitude: ptr(0)}},
		{"missing longitude", models.ReportInput{Title: "x", Latitude: ptr(0)}},
		{"latitude out of range", models.ReportInput{Title: "x", Latitude: ptr(100), Longitude: ptr(0)}},
		{"title too long", models.ReportInput{Title: strings.Repeat("t", 201), Latitude: ptr(0), Longitude: ptr(0)}},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Report(tt.in); !errors.Is(err, models.ErrValidation) {
				t.Errorf("Report() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    models.Status
		wantErr bool
	}{
		{"PENDING", models.StatusPending, false},
		{"verified", models.StatusVerified, false},
		{" True ", models.StatusTrue, false},
		{"false", models.StatusFalse, false},
		{"archived", models.StatusArchived, false},
		{"approved", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := Status(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Status(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Status(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	if got, err := RiskLevel("critical"); err != nil || got != models.RiskCritical {
		t.Errorf("RiskLevel(critical) = %q, %v", got, err)
	}
	if _, err := RiskLevel("severe"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("RiskLevel(severe) error = %v, want ErrValidation", err)
	}
}
