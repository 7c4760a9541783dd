package stats

import (
	"slices"
	"testing"

	"rumorwatch/internal/models"
)

func keywords() []models.Keyword {
	return []models.Keyword{
		{Text: "fire", Weight: 10, Category: "disaster"},
		{Text: "flood", Weight: 8, Category: "disaster"},
		{Text: "riot", Weight: 15, Category: "violence"},
		{Text: "fake", Weight: 1, Category: "misinformation"},
		{Text: "explosion", Weight: 20, Category: "disaster"},
		{Text: "shooting", Weight: 20, Category: "violence"},
	}
}

func TestKeywords(t *testing.T) {
	st := Keywords(keywords())

	if st.TotalKeywords != 6 || st.TotalCategories != 3 {
		t.Errorf("totals = %d keywords, %d categories, want 6, 3", st.TotalKeywords, st.TotalCategories)
	}
	// (10+8+15+1+20+20)/6 = 12.33
	if st.AverageWeight != 12 {
		t.Errorf("AverageWeight = %d, want 12", st.AverageWeight)
	}
	if st.MaxWeight != 20 {
		t.Errorf("MaxWeight = %d, want 20", st.MaxWeight)
	}
	want := []models.CategoryCount{
		{Category: "disaster", Count: 3},
		{Category: "violence", Count: 2},
		{Category: "misinformation", Count: 1},
	}
	if !slices.Equal(st.ByCategory, want) {
		t.Errorf("ByCategory = %v, want %v", st.ByCategory, want)
	}
}

func TestKeywordsAverageRoundsToNearest(t *testing.T) {
	tests := []struct {
		name    string
		weights []int
		want    int
	}{
		{"1.5 rounds up", []int{1, 2}, 2},
		{"1.33 rounds down", []int{1, 1, 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kws []models.Keyword
			for _, w := range tt.weights {
				kws = append(kws, models.Keyword{Weight: w, Category: "a"})
			}
			if got := Keywords(kws).AverageWeight; got != tt.want {
				t.Errorf("AverageWeight = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKeywordsCategoryTiesByName(t *testing.T) {
	st := Keywords([]models.Keyword{
		{Weight: 1, Category: "zeta"},
		{Weight: 1, Category: "alpha"},
	})
	if st.ByCategory[0].Category != "alpha" || st.ByCategory[1].Category != "zeta" {
		t.Errorf("ByCategory = %v, want alpha before zeta", st.ByCategory)
	}
}

func TestKeywordsEmpty(t *testing.T) {
	st := Keywords(nil)
	if st.TotalKeywords != 0 || st.TotalCategories != 0 || st.AverageWeight != 0 || st.MaxWeight != 0 {
		t.Errorf("Keywords(nil) = %+v, want zero values", st)
	}
	if st.ByCategory == nil || len(st.ByCategory) != 0 {
		t.Errorf("ByCategory = %#v, want empty non-nil slice", st.ByCategory)
	}
}

func TestRisk(t *testing.T) {
	reports := []models.Report{
		{RiskLevel: models.RiskCritical},
		{RiskLevel: models.RiskCritical},
		{RiskLevel: models.RiskLow},
		{RiskLevel: models.RiskNone},
	}
	st := Risk(reports)

	if st.TotalReports != 4 {
		t.Errorf("TotalReports = %d, want 4", st.TotalReports)
	}
	want := map[models.RiskLevel]int{
		models.RiskNone:     1,
		models.RiskLow:      1,
		models.RiskMedium:   0,
		models.RiskHigh:     0,
		models.RiskCritical: 2,
	}
	if len(st.ByLevel) != len(want) {
		t.Errorf("ByLevel has %d levels, want %d", len(st.ByLevel), len(want))
	}
	for level, n := range want {
		if st.ByLevel[level] != n {
			t.Errorf("ByLevel[%s] = %d, want %d", level, st.ByLevel[level], n)
		}
	}
}

func TestRiskEmpty(t *testing.T) {
	st := Risk(nil)
	if st.TotalReports != 0 {
		t.Errorf("TotalReports = %d, want 0", st.TotalReports)
	}
	for _, l := range models.RiskLevels {
		if v, ok := st.ByLevel[l]; !ok || v != 0 {
			t.Errorf("ByLevel[%s] = %d, %v, want 0, true", l, v, ok)
		}
	}
}

func TestTopKeywords(t *testing.T) {
	kws := keywords()
	top := TopKeywords(kws, 3)

	var got []string
	for _, k := range top {
		got = append(got, k.Text)
	}
	if want := []string{"explosion", "shooting", "riot"}; !slices.Equal(got, want) {
		t.Errorf("TopKeywords(3) = %v, want %v", got, want)
	}
	if kws[0].Text != "fire" {
		t.Error("TopKeywords reordered its input")
	}

	tests := []struct {
		name string
		kws  []models.Keyword
		n    int
		want int
	}{
		{"n larger than dictionary", kws, 100, len(kws)},
		{"zero", kws, 0, 0},
		{"empty dictionary", nil, 10, 0},
	}
	for _, tt := range tests {
		if got := TopKeywords(tt.kws, tt.n); len(got) != tt.want {
			t.Errorf("%s: got %d keywords, want %d", tt.name, len(got), tt.want)
		}
	}
}
