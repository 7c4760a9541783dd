package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultKeywordCategory is used when a keyword is added without a category.
const DefaultKeywordCategory = "general"

// Keyword is a weighted, categorized term used to score free text.
// Text is stored lower-cased and trimmed.
type Keyword struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"keyword"`
	Weight    int       `json:"risk_weight"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchedKeyword is a keyword found in a scored text. Reports keep their own
// copy; it never references the Keyword it came from.
type MatchedKeyword struct {
	Keyword  string `json:"keyword"`
	Weight   int    `json:"weight"`
	Count    int    `json:"count"`
	Category string `json:"category"`
}

// Points returns the contribution of the match to a risk score.
func (m MatchedKeyword) Points() int {
	return m.Weight * m.Count
}

// KeywordInput is one item of a keyword add or batch add. A nil Weight
// means the weight was omitted.
type KeywordInput struct {
	Text     string `json:"keyword" yaml:"text"`
	Weight   *int   `json:"risk_weight" yaml:"weight"`
	Category string `json:"category" yaml:"category"`
}

// BatchItemResult is the outcome of one item in a batch keyword add.
// Exactly one of Keyword and Error is set.
type BatchItemResult struct {
	Input   string   `json:"input"`
	Keyword *Keyword `json:"keyword,omitempty"`
	Error   string   `json:"error,omitempty"`
}
