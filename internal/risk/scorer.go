// Package risk scores free text against a weighted keyword dictionary.
package risk

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"rumorwatch/internal/models"
)

// Level thresholds. Each is the lowest score of its band.
const (
	LowThreshold      = 1
	MediumThreshold   = 10
	HighThreshold     = 25
	CriticalThreshold = 50
)

// LevelFor maps a score to its risk level.
func LevelFor(score int) models.RiskLevel {
	switch {
	case score < LowThreshold:
		return models.RiskNone
	case score < MediumThreshold:
		return models.RiskLow
	case score < HighThreshold:
		return models.RiskMedium
	case score < CriticalThreshold:
		return models.RiskHigh
	default:
		return models.RiskCritical
	}
}

type pattern struct {
	keyword models.Keyword
	re      *regexp.Regexp
}

// Scorer holds compiled patterns for an immutable keyword snapshot.
// It is safe for concurrent use.
type Scorer struct {
	patterns []pattern
}

// NewScorer compiles a scorer for the given keywords. The slice is copied
// and stably ordered by weight descending, so equal weights keep the order
// the store returned them in.
func NewScorer(keywords []models.Keyword) *Scorer {
	ordered := make([]models.Keyword, 0, len(keywords))
	for _, k := range keywords {
		k.Text = strings.ToLower(strings.TrimSpace(k.Text))
		if k.Text == "" {
			continue
		}
		ordered = append(ordered, k)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})

	s := &Scorer{patterns: make([]pattern, len(ordered))}
	for i, k := range ordered {
		// Keyword text is user data; it is matched literally.
		s.patterns[i] = pattern{keyword: k, re: regexp.MustCompile(regexp.QuoteMeta(k.Text))}
	}
	return s
}

// Score scans text and returns the assessment. Matching is case-insensitive
// and whole-word: a match must be bounded on both sides by a non-word
// character or the edge of the text.
func (s *Scorer) Score(text string) models.RiskAssessment {
	normalized := strings.ToLower(text)

	total := 0
	matches := []models.MatchedKeyword{}
	if normalized != "" {
		for _, p := range s.patterns {
			n := countWholeWord(normalized, p.re)
			if n == 0 {
				continue
			}
			m := models.MatchedKeyword{
				Keyword:  p.keyword.Text,
				Weight:   p.keyword.Weight,
				Count:    n,
				Category: p.keyword.Category,
			}
			total += m.Points()
			matches = append(matches, m)
		}
	}

	level := LevelFor(total)
	return models.RiskAssessment{
		Score:       total,
		Level:       level,
		Matches:     matches,
		Calculation: fmt.Sprintf("Score: %d - Level: %s", total, level),
	}
}

// Score is a convenience for a one-off assessment.
func Score(text string, keywords []models.Keyword) models.RiskAssessment {
	return NewScorer(keywords).Score(text)
}

func countWholeWord(text string, re *regexp.Regexp) int {
	count := 0
	pos := 0
	for pos <= len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
			pos = end
			continue
		}
		// Retry one rune past the rejected start.
		_, size := utf8.DecodeRuneInString(text[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}
	return count
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}
