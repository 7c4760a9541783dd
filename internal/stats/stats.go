// Package stats computes read-only rollups over keyword and report snapshots.
package stats

import (
	"math"
	"sort"

	"rumorwatch/internal/models"
)

// Keywords summarizes a keyword snapshot. Categories are ordered by count
// descending, then by name.
func Keywords(keywords []models.Keyword) models.KeywordStats {
	st := models.KeywordStats{ByCategory: []models.CategoryCount{}}
	if len(keywords) == 0 {
		return st
	}

	counts := make(map[string]int)
	sum := 0
	for _, k := range keywords {
		counts[k.Category]++
		sum += k.Weight
		if k.Weight > st.MaxWeight {
			st.MaxWeight = k.Weight
		}
	}

	st.TotalKeywords = len(keywords)
	st.TotalCategories = len(counts)
	st.AverageWeight = int(math.Round(float64(sum) / float64(len(keywords))))

	for cat, n := range counts {
		st.ByCategory = append(st.ByCategory, models.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(st.ByCategory, func(i, j int) bool {
		if st.ByCategory[i].Count != st.ByCategory[j].Count {
			return st.ByCategory[i].Count > st.ByCategory[j].Count
		}
		return st.ByCategory[i].Category < st.ByCategory[j].Category
	})
	return st
}

// Risk counts reports per risk level. Every level is present in the map.
func Risk(reports []models.Report) models.RiskStats {
	st := models.RiskStats{
		TotalReports: len(reports),
		ByLevel:      make(map[models.RiskLevel]int, len(models.RiskLevels)),
	}
	for _, l := range models.RiskLevels {
		st.ByLevel[l] = 0
	}
	for i := range reports {
		st.ByLevel[reports[i].RiskLevel]++
	}
	return st
}

// TopKeywords returns up to n keywords by weight descending. Equal weights
// keep snapshot order. n <= 0 yields an empty slice.
func TopKeywords(keywords []models.Keyword, n int) []models.Keyword {
	if n <= 0 || len(keywords) == 0 {
		return []models.Keyword{}
	}
	sorted := append([]models.Keyword(nil), keywords...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
